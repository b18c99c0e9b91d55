package application_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

func TestSeed_DefaultFixturesAreValid(t *testing.T) {
	svc := application.NewSeedService(newMemStore(), nil)

	docs, err := svc.Documents()
	require.NoError(t, err)
	assert.NotEmpty(t, docs)

	types := make(map[model.ContentType]bool)
	for _, d := range docs {
		types[d.Type] = true
	}
	for _, ct := range model.AllContentTypes() {
		assert.True(t, types[ct], "fixtures include a %s", ct)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	store := newMemStore()
	svc := application.NewSeedService(store, nil)
	ctx := context.Background()

	first, err := svc.Seed(ctx)
	require.NoError(t, err)
	firstIDs := store.ids()
	firstBodies := make(map[string]string, len(firstIDs))
	for _, id := range firstIDs {
		firstBodies[id] = string(store.docs[id].Body)
	}

	for range 2 {
		n, err := svc.Seed(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, n)
	}

	assert.Len(t, firstIDs, first, "one record per fixture id")
	assert.Equal(t, firstIDs, store.ids(), "repeated runs add no records")
	for _, id := range firstIDs {
		assert.JSONEq(t, firstBodies[id], string(store.docs[id].Body), "document %s unchanged by reseed", id)
	}
}

func TestSeed_AssignsArrayKeys(t *testing.T) {
	fixtures := []byte(`
documents:
  - _id: page-about
    _type: page
    title: About
    slug: {current: about}
    body:
      - _type: block
        children: [{text: hi}]
      - _type: block
        _key: keep-me
        children: [{text: there}]
`)
	svc := application.NewSeedService(newMemStore(), fixtures)

	docs, err := svc.Documents()
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var page struct {
		Body []struct {
			Key string `json:"_key"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(docs[0].Body, &page))
	require.Len(t, page.Body, 2)
	assert.Len(t, page.Body[0].Key, 12)
	assert.Equal(t, "keep-me", page.Body[1].Key)
}

func TestSeed_InvalidFixturesWriteNothing(t *testing.T) {
	tests := []struct {
		name     string
		fixtures string
		wantErr  string
	}{
		{
			name: "missing required field",
			fixtures: `
documents:
  - _id: division-a
    _type: division
    title: A
    slug: {current: a}
  - _id: division-b
    _type: division
    slug: {current: b}
`,
			wantErr: "division-b: title: is required",
		},
		{
			name: "duplicate id",
			fixtures: `
documents:
  - {_id: author-a, _type: author, name: A, slug: {current: a}}
  - {_id: author-a, _type: author, name: B, slug: {current: b}}
`,
			wantErr: "duplicate id",
		},
		{
			name:     "unknown type",
			fixtures: "documents:\n  - {_id: x, _type: podcast}\n",
			wantErr:  "unknown type",
		},
		{
			name:     "singleton with wrong id",
			fixtures: "documents:\n  - {_id: home, _type: homePage, heroTitle: Hi}\n",
			wantErr:  "must use id",
		},
		{
			name:     "draft id",
			fixtures: "documents:\n  - {_id: drafts.author-a, _type: author, name: A}\n",
			wantErr:  "must be published",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			svc := application.NewSeedService(store, []byte(tt.fixtures))

			n, err := svc.Seed(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Zero(t, n)
			assert.Zero(t, store.writes)
		})
	}
}
