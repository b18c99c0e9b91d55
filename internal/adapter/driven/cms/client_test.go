package cms_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmsadapter "github.com/ericfisherdev/marquee/internal/adapter/driven/cms"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler, token string) *cmsadapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := cmsadapter.NewClientWithHTTPClient(server.Client(), server.URL, "production", token)
	require.NoError(t, err)

	return client
}

func writeResult(t *testing.T, w http.ResponseWriter, result any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{"ms": 3, "result": result}))
}

func TestListByType(t *testing.T) {
	var gotPath, gotType, gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.URL.Query().Get("$type")
		gotQuery = r.URL.Query().Get("query")
		writeResult(t, w, []map[string]any{
			{"_id": "division-film", "_type": "division", "title": "Film", "slug": map[string]any{"current": "film"}},
			{"_id": "drafts.division-music", "_type": "division", "title": "Music"},
			{"_type": "division", "title": "no id"},
		})
	}), "")

	docs, err := client.ListByType(context.Background(), model.ContentTypeDivision)

	require.NoError(t, err)
	assert.Equal(t, "/v2021-10-21/data/query/production", gotPath)
	assert.Equal(t, `"division"`, gotType, "params are JSON-encoded")
	assert.Contains(t, gotQuery, "_type == $type")
	require.Len(t, docs, 1, "drafts and malformed documents are skipped")
	assert.Equal(t, "division-film", docs[0].ID)
	assert.Equal(t, "film", docs[0].Slug)
}

func TestListByType_EmptyResult(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeResult(t, w, []any{})
	}), "")

	docs, err := client.ListByType(context.Background(), model.ContentTypeNewsArticle)

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestGetBySlug(t *testing.T) {
	var gotSlug string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSlug = r.URL.Query().Get("$slug")
		writeResult(t, w, map[string]any{"_id": "news-1", "_type": "newsArticle", "slug": map[string]any{"current": "launch"}})
	}), "")

	doc, err := client.GetBySlug(context.Background(), model.ContentTypeNewsArticle, `launch"] | *[0`)

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "news-1", doc.ID)
	assert.Equal(t, `"launch\"] | *[0"`, gotSlug, "slug is passed as an escaped JSON string")
}

func TestGetBySlug_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeResult(t, w, nil)
	}), "")

	doc, err := client.GetBySlug(context.Background(), model.ContentTypeNewsArticle, "missing")

	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestGetByID_DraftIDNeverQueried(t *testing.T) {
	called := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		writeResult(t, w, nil)
	}), "")

	doc, err := client.GetByID(context.Background(), "drafts.page-about")

	require.NoError(t, err)
	assert.Nil(t, doc)
	assert.False(t, called)
}

func TestQuery_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeResult(t, w, nil)
	}), "sk-read")

	_, err := client.GetByID(context.Background(), "homePage")

	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-read", gotAuth)
}

func TestQuery_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"param $type referenced, but not provided"}}`))
	}), "")

	_, err := client.ListByType(context.Background(), model.ContentTypePage)

	require.Error(t, err)
	var apiErr *cmsadapter.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Description, "not provided")
}

func TestQuery_APIErrorTruncatesOnRuneBoundary(t *testing.T) {
	// 199 ASCII bytes followed by a two-byte rune straddles the 200 byte cap.
	body := strings.Repeat("x", 199) + strings.Repeat("é", 10)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	}), "")

	_, err := client.ListByType(context.Background(), model.ContentTypePage)

	var apiErr *cmsadapter.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, utf8.ValidString(apiErr.Description))
	assert.Equal(t, strings.Repeat("x", 199), apiErr.Description)
}

func TestCreateOrReplace(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"transactionId":"tx1","results":[{"id":"author-jane","operation":"create"}]}`))
	}), "sk-write")

	doc, err := model.ParseDocument([]byte(`{"_id":"author-jane","_type":"author","name":"Jane"}`))
	require.NoError(t, err)

	require.NoError(t, client.CreateOrReplace(context.Background(), doc))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/v2021-10-21/data/mutate/production", gotPath)
	assert.Equal(t, "Bearer sk-write", gotAuth)

	mutations, ok := gotBody["mutations"].([]any)
	require.True(t, ok)
	require.Len(t, mutations, 1)
	written := mutations[0].(map[string]any)["createOrReplace"].(map[string]any)
	assert.Equal(t, "author-jane", written["_id"])
}

func TestCreateOrReplace_RequiresToken(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler(), "")

	err := client.CreateOrReplace(context.Background(), model.Document{ID: "x", Body: []byte(`{}`)})

	assert.ErrorIs(t, err, cmsadapter.ErrNoToken)
}

func TestNewClient_Hosts(t *testing.T) {
	_, err := cmsadapter.NewClient(cmsadapter.Options{Dataset: "production"})
	assert.Error(t, err, "project ID or base URL is required")

	_, err = cmsadapter.NewClient(cmsadapter.Options{ProjectID: "abc123"})
	assert.Error(t, err, "dataset is required")

	client, err := cmsadapter.NewClient(cmsadapter.Options{ProjectID: "abc123", Dataset: "production", UseCDN: true})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
