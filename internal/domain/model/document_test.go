package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	body := []byte(`{"_id":"division-film","_type":"division","_rev":"r1","_updatedAt":"2026-03-01T10:00:00Z","slug":{"current":" film "},"title":"Film"}`)

	doc, err := ParseDocument(body)

	require.NoError(t, err)
	assert.Equal(t, "division-film", doc.ID)
	assert.Equal(t, ContentTypeDivision, doc.Type)
	assert.Equal(t, "r1", doc.Rev)
	assert.Equal(t, "film", doc.Slug)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), doc.UpdatedAt)
	assert.JSONEq(t, string(body), string(doc.Body))
}

func TestParseDocument_PublishedAt(t *testing.T) {
	tests := []struct {
		name string
		body string
		want time.Time
	}{
		{
			name: "datetime",
			body: `{"_id":"n1","_type":"newsArticle","_updatedAt":"2026-10-01T00:00:00Z","publishedAt":"2024-01-01T08:00:00+02:00"}`,
			want: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "date only",
			body: `{"_id":"n1","_type":"newsArticle","publishedAt":"2024-01-01"}`,
			want: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "absent",
			body: `{"_id":"d1","_type":"division","_updatedAt":"2026-10-01T00:00:00Z"}`,
		},
		{
			name: "malformed is ignored",
			body: `{"_id":"n1","_type":"newsArticle","_updatedAt":"2026-10-01T00:00:00Z","publishedAt":42}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.body))

			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.PublishedAt)
		})
	}
}

func TestParseDocument_MissingID(t *testing.T) {
	_, err := ParseDocument([]byte(`{"_type":"division"}`))
	assert.Error(t, err)
}

func TestParseDocument_MissingType(t *testing.T) {
	_, err := ParseDocument([]byte(`{"_id":"x"}`))
	assert.Error(t, err)
}

func TestParseDocument_NotAnObject(t *testing.T) {
	_, err := ParseDocument([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestDocument_LinkTargetFallsBackToID(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"_id":"news-42","_type":"newsArticle","title":"No slug yet"}`))
	require.NoError(t, err)

	assert.Equal(t, "news-42", doc.LinkTarget())
}

func TestMeta_LinkTarget(t *testing.T) {
	tests := []struct {
		name string
		meta Meta
		want string
	}{
		{name: "slug present", meta: Meta{ID: "a", Slug: &Slug{Current: "alpha"}}, want: "alpha"},
		{name: "nil slug", meta: Meta{ID: "a"}, want: "a"},
		{name: "blank slug", meta: Meta{ID: "a", Slug: &Slug{Current: "   "}}, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.meta.LinkTarget())
		})
	}
}

func TestDocument_IsDraft(t *testing.T) {
	assert.True(t, Document{ID: "drafts.page-about"}.IsDraft())
	assert.False(t, Document{ID: "page-about"}.IsDraft())
}

func TestDocument_WithSlug(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"_id":"p1","_type":"page","title":"About"}`))
	require.NoError(t, err)

	updated, err := doc.WithSlug("about")
	require.NoError(t, err)

	assert.Equal(t, "about", updated.Slug)
	assert.Equal(t, "", doc.Slug, "original must not change")

	reparsed, err := ParseDocument(updated.Body)
	require.NoError(t, err)
	assert.Equal(t, "about", reparsed.Slug)
}

func TestDecode(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"_id":"pp1","_type":"portfolioProject","title":"Night Shift","year":2025,"division":{"_ref":"division-film"},"publishedAt":"2025-06-01"}`))
	require.NoError(t, err)

	project, err := Decode[PortfolioProject](doc)

	require.NoError(t, err)
	assert.Equal(t, "Night Shift", project.Title)
	assert.Equal(t, 2025, project.Year)
	require.NotNil(t, project.Division)
	assert.Equal(t, "division-film", project.Division.Ref)
	assert.Equal(t, "June 1, 2025", project.PublishedAt.Display())
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d Date

	require.NoError(t, json.Unmarshal([]byte(`"2026-01-15T09:30:00Z"`), &d))
	assert.Equal(t, time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2026-01-15"`), &d))
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"last tuesday"`), &d))
}

func TestContentType_Valid(t *testing.T) {
	assert.True(t, ContentTypeNewsArticle.Valid())
	assert.False(t, ContentType("sanity.imageAsset").Valid())
	assert.True(t, ContentTypeHomePage.Singleton())
	assert.False(t, ContentTypePage.Singleton())
}
