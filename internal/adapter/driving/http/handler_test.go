package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	httphandler "github.com/ericfisherdev/marquee/internal/adapter/driving/http"
	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockSource struct {
	docs    []model.Document
	err     error
	typeErr map[model.ContentType]error
}

func (m *mockSource) ListByType(_ context.Context, ct model.ContentType) ([]model.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if err := m.typeErr[ct]; err != nil {
		return nil, err
	}
	var out []model.Document
	for _, d := range m.docs {
		if d.Type == ct {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockSource) GetBySlug(_ context.Context, ct model.ContentType, slug string) (*model.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.docs {
		if d.Type == ct && d.Slug != "" && d.Slug == slug {
			return &d, nil
		}
	}
	return nil, nil
}

func (m *mockSource) GetByID(_ context.Context, id string) (*model.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.docs {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, nil
}

// mockMirror is a map-backed MirrorStore.
type mockMirror struct {
	mockSource
	mu       sync.Mutex
	replaced map[model.ContentType]int
}

func (m *mockMirror) CreateOrReplace(_ context.Context, _ model.Document) error { return nil }

func (m *mockMirror) ReplaceType(_ context.Context, ct model.ContentType, docs []model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaced == nil {
		m.replaced = make(map[model.ContentType]int)
	}
	m.replaced[ct] = len(docs)
	return nil
}

// --- Test helpers ---

func mustDoc(t *testing.T, id string, ct model.ContentType, fields string) model.Document {
	t.Helper()

	d, err := model.ParseDocument([]byte(fmt.Sprintf(`{"_id":%q,"_type":%q,"_updatedAt":"2026-02-10T12:00:00Z",%s}`, id, ct, fields)))
	require.NoError(t, err)
	return d
}

func testDocs(t *testing.T) []model.Document {
	t.Helper()

	return []model.Document{
		mustDoc(t, "division-live", model.ContentTypeDivision, `"title":"Marquee Live","slug":{"current":"live"}`),
		mustDoc(t, "division-sound", model.ContentTypeDivision, `"title":"Marquee Sound"`),
		mustDoc(t, "news-1", model.ContentTypeNewsArticle, `"title":"Harbor Lights returns","slug":{"current":"harbor-returns"}`),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupMux creates an API mux without a sync service.
func setupMux(source *mockSource) http.Handler {
	h := httphandler.NewHandler(application.NewContentService(source), nil, "cms", "", discardLogger())
	return httphandler.NewServeMux(h, discardLogger())
}

// setupMuxWithSync creates an API mux backed by a running SyncService.
func setupMuxWithSync(t *testing.T, source *mockSource, mirror *mockMirror, secret string) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	syncSvc := application.NewSyncService(source, mirror, time.Hour)
	done := make(chan struct{})
	go func() {
		defer close(done)
		syncSvc.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	h := httphandler.NewHandler(application.NewContentService(mirror), syncSvc, "mirror", secret, discardLogger())
	return httphandler.NewServeMux(h, discardLogger())
}

func serve(handler http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	err := json.NewDecoder(rec.Body).Decode(v)
	require.NoError(t, err)
}

// --- Tests ---

func TestHealth(t *testing.T) {
	mux := setupMux(&mockSource{})

	rec := serve(mux, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var resp map[string]any
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "cms", resp["source"])
	assert.NotEmpty(t, resp["time"])
}

func TestHealth_ReusesRequestID(t *testing.T) {
	mux := setupMux(&mockSource{})

	rec := serve(mux, http.MethodGet, "/api/v1/health", http.Header{"X-Request-Id": {"abc-123"}})

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestListContent(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		source     *mockSource
		wantStatus int
		wantCount  int
	}{
		{
			name:       "two divisions",
			path:       "/api/v1/content/division",
			source:     &mockSource{docs: testDocs(t)},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "empty type",
			path:       "/api/v1/content/teamMember",
			source:     &mockSource{docs: testDocs(t)},
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name:       "unknown type",
			path:       "/api/v1/content/widget",
			source:     &mockSource{},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "source error",
			path:       "/api/v1/content/division",
			source:     &mockSource{err: errors.New("cms unavailable")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(setupMux(tt.source), http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp httphandler.ContentListResponse
			decodeJSON(t, rec, &resp)
			assert.Equal(t, tt.wantCount, resp.Count)
			assert.Len(t, resp.Documents, tt.wantCount)
			assert.NotNil(t, resp.Documents)
		})
	}
}

func TestListContent_DocumentFields(t *testing.T) {
	rec := serve(setupMux(&mockSource{docs: testDocs(t)}), http.MethodGet, "/api/v1/content/division", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Documents []map[string]any `json:"documents"`
	}
	decodeJSON(t, rec, &resp)
	require.Len(t, resp.Documents, 2)

	first := resp.Documents[0]
	assert.Equal(t, "division-live", first["id"])
	assert.Equal(t, "division", first["type"])
	assert.Equal(t, "live", first["slug"])
	assert.Equal(t, "live", first["link_target"])
	assert.Equal(t, "2026-02-10T12:00:00Z", first["updated_at"])
	body, ok := first["document"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Marquee Live", body["title"])

	second := resp.Documents[1]
	_, hasSlug := second["slug"]
	assert.False(t, hasSlug)
	assert.Equal(t, "division-sound", second["link_target"])
}

func TestGetContent(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		source     *mockSource
		wantStatus int
		wantID     string
		wantError  string
	}{
		{
			name:       "by slug",
			path:       "/api/v1/content/newsArticle/harbor-returns",
			source:     &mockSource{docs: testDocs(t)},
			wantStatus: http.StatusOK,
			wantID:     "news-1",
		},
		{
			name:       "slugless record by id",
			path:       "/api/v1/content/division/division-sound",
			source:     &mockSource{docs: testDocs(t)},
			wantStatus: http.StatusOK,
			wantID:     "division-sound",
		},
		{
			name:       "unknown slug",
			path:       "/api/v1/content/division/does-not-exist",
			source:     &mockSource{docs: testDocs(t)},
			wantStatus: http.StatusNotFound,
			wantError:  "document not found",
		},
		{
			name:       "id of another type",
			path:       "/api/v1/content/newsArticle/division-live",
			source:     &mockSource{docs: testDocs(t)},
			wantStatus: http.StatusNotFound,
			wantError:  "document not found",
		},
		{
			name:       "unknown type",
			path:       "/api/v1/content/widget/live",
			source:     &mockSource{docs: testDocs(t)},
			wantStatus: http.StatusNotFound,
			wantError:  "unknown content type",
		},
		{
			name:       "source error",
			path:       "/api/v1/content/division/live",
			source:     &mockSource{err: errors.New("cms unavailable")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(setupMux(tt.source), http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]any
			decodeJSON(t, rec, &resp)
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, resp["id"])
			}
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
		})
	}
}

func TestSync_DisabledWithoutMirror(t *testing.T) {
	rec := serve(setupMux(&mockSource{}), http.MethodPost, "/api/v1/sync", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSync(t *testing.T) {
	source := &mockSource{docs: testDocs(t)}
	mirror := &mockMirror{}
	mux := setupMuxWithSync(t, source, mirror, "")

	rec := serve(mux, http.MethodPost, "/api/v1/sync", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp httphandler.SyncResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, 3, resp.Documents)
	assert.Equal(t, len(model.AllContentTypes()), resp.Types)
	assert.Empty(t, resp.Failed)

	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	assert.Equal(t, 2, mirror.replaced[model.ContentTypeDivision])
}

func TestSync_WebhookSecret(t *testing.T) {
	tests := []struct {
		name       string
		header     http.Header
		wantStatus int
	}{
		{name: "missing", header: nil, wantStatus: http.StatusUnauthorized},
		{name: "wrong", header: http.Header{"X-Marquee-Webhook-Secret": {"nope"}}, wantStatus: http.StatusUnauthorized},
		{name: "header", header: http.Header{"X-Marquee-Webhook-Secret": {"s3cret"}}, wantStatus: http.StatusOK},
		{name: "bearer", header: http.Header{"Authorization": {"Bearer s3cret"}}, wantStatus: http.StatusOK},
		{name: "authorization without scheme", header: http.Header{"Authorization": {"s3cret"}}, wantStatus: http.StatusUnauthorized},
		{name: "other scheme", header: http.Header{"Authorization": {"Basic s3cret"}}, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := setupMuxWithSync(t, &mockSource{docs: testDocs(t)}, &mockMirror{}, "s3cret")

			rec := serve(mux, http.MethodPost, "/api/v1/sync", tt.header)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSync_PartialFailure(t *testing.T) {
	source := &mockSource{
		docs:    testDocs(t),
		typeErr: map[model.ContentType]error{model.ContentTypeNewsArticle: errors.New("query timeout")},
	}
	mux := setupMuxWithSync(t, source, &mockMirror{}, "")

	rec := serve(mux, http.MethodPost, "/api/v1/sync", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp httphandler.SyncResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, []string{"newsArticle"}, resp.Failed)
	assert.Equal(t, 2, resp.Documents)
}

func TestSyncStatus(t *testing.T) {
	t.Run("disabled without mirror", func(t *testing.T) {
		rec := serve(setupMux(&mockSource{}), http.MethodGet, "/api/v1/sync", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("schedules after sync", func(t *testing.T) {
		mux := setupMuxWithSync(t, &mockSource{docs: testDocs(t)}, &mockMirror{}, "")
		require.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/api/v1/sync", nil).Code)

		rec := serve(mux, http.MethodGet, "/api/v1/sync", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []httphandler.ScheduleResponse
		decodeJSON(t, rec, &resp)
		require.Len(t, resp, len(model.AllContentTypes()))
		for _, s := range resp {
			assert.NotEmpty(t, s.Tier)
			assert.NotEmpty(t, s.NextSyncAt)
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	// A handler without a content service panics on first use.
	h := httphandler.NewHandler(nil, nil, "cms", "", discardLogger())
	mux := httphandler.NewServeMux(h, discardLogger())

	rec := serve(mux, http.MethodGet, "/api/v1/content/division", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]any
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "internal server error", resp["error"])
}
