package application_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Harbor Lights Festival", want: "harbor-lights-festival"},
		{in: "Low Tide (Original Score)", want: "low-tide-original-score"},
		{in: "  Café Society / Año Nuevo  ", want: "cafe-society-ano-nuevo"},
		{in: "What's new?", want: "what-s-new"},
		{in: "---", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := application.Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.True(t, application.ValidSlug(got))
			}
		})
	}
}

func TestSlugify_CapsLength(t *testing.T) {
	got := application.Slugify(strings.Repeat("word ", 40))

	assert.LessOrEqual(t, len(got), application.MaxSlugLength)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, application.ValidSlug(got))
}

func slugStore(t *testing.T) *memStore {
	t.Helper()

	return newMemStore(
		doc(t, "division-a", model.ContentTypeDivision, `"title":"Marquee Live","slug":{"current":"live"}`),
		doc(t, "division-b", model.ContentTypeDivision, `"title":"Live Events","slug":{"current":"live"}`),
		doc(t, "division-c", model.ContentTypeDivision, `"title":"Marquee Live"`),
		doc(t, "news-1", model.ContentTypeNewsArticle, `"title":"Big News","slug":{"current":"Big News!"}`),
		doc(t, "team-1", model.ContentTypeTeamMember, `"name":"Ava Reyes"`),
		doc(t, "page-ok", model.ContentTypePage, `"title":"About","slug":{"current":"about"}`),
		doc(t, "homePage", model.ContentTypeHomePage, `"heroTitle":"Hi"`),
	)
}

func TestSlugChecker_Check(t *testing.T) {
	checker := application.NewSlugChecker(slugStore(t), nil)

	issues, err := checker.Check(context.Background())
	require.NoError(t, err)

	byID := make(map[string]application.SlugIssue, len(issues))
	for _, issue := range issues {
		byID[issue.ID] = issue
	}
	require.Len(t, byID, 4)

	assert.Equal(t, application.SlugDuplicate, byID["division-b"].Problem)
	assert.Equal(t, "live-events-division-b", byID["division-b"].Suggestion)

	assert.Equal(t, application.SlugMissing, byID["division-c"].Problem)
	assert.Equal(t, "marquee-live", byID["division-c"].Suggestion)

	assert.Equal(t, application.SlugInvalid, byID["news-1"].Problem)
	assert.Equal(t, "big-news", byID["news-1"].Suggestion)

	assert.Equal(t, application.SlugMissing, byID["team-1"].Problem)
	assert.Equal(t, "ava-reyes", byID["team-1"].Suggestion)

	assert.NotContains(t, byID, "division-a")
	assert.NotContains(t, byID, "homePage")
}

func TestSlugChecker_SuggestionsAreUnique(t *testing.T) {
	store := newMemStore(
		doc(t, "division-a", model.ContentTypeDivision, `"title":"Film","slug":{"current":"film"}`),
		doc(t, "division-b", model.ContentTypeDivision, `"title":"Film"`),
		doc(t, "division-c", model.ContentTypeDivision, `"title":"Film"`),
	)
	checker := application.NewSlugChecker(store, nil)

	issues, err := checker.Check(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, "film-2", issues[0].Suggestion)
	assert.Equal(t, "film-3", issues[1].Suggestion)
}

func TestSlugChecker_Fix(t *testing.T) {
	store := slugStore(t)
	checker := application.NewSlugChecker(store, store)
	ctx := context.Background()

	issues, err := checker.Check(ctx)
	require.NoError(t, err)

	fixed, err := checker.Fix(ctx, issues)
	require.NoError(t, err)
	assert.Equal(t, len(issues), fixed)

	remaining, err := checker.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	got, err := store.GetBySlug(ctx, model.ContentTypeTeamMember, "ava-reyes")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "team-1", got.ID)
}

func TestSlugChecker_FixWithoutWriter(t *testing.T) {
	checker := application.NewSlugChecker(slugStore(t), nil)

	_, err := checker.Fix(context.Background(), []application.SlugIssue{{ID: "team-1"}})
	assert.Error(t, err)
}
