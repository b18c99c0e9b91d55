// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// webhookSecretHeader carries the shared secret on publish webhooks.
const webhookSecretHeader = "X-Marquee-Webhook-Secret"

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	content       *application.ContentService
	syncSvc       *application.SyncService
	sourceName    string
	webhookSecret string
	logger        *slog.Logger
}

// NewHandler creates a Handler. syncSvc is nil unless the site serves from
// the local mirror; the sync endpoint then answers 404.
func NewHandler(
	content *application.ContentService,
	syncSvc *application.SyncService,
	sourceName string,
	webhookSecret string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		content:       content,
		syncSvc:       syncSvc,
		sourceName:    sourceName,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// NewServeMux creates an http.Handler serving only the API routes, wrapped
// with middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// RegisterAPIRoutes registers all API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/content/{type}", h.ListContent)
	mux.HandleFunc("GET /api/v1/content/{type}/{slug}", h.GetContent)
	mux.HandleFunc("GET /api/v1/sync", h.SyncStatus)
	mux.HandleFunc("POST /api/v1/sync", h.Sync)
}

// ApplyMiddleware wraps the handler with logging and recovery middleware.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Source: h.sourceName,
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListContent returns every published document of a content type.
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	ct, ok := contentTypeParam(w, r)
	if !ok {
		return
	}

	docs, err := h.content.Documents(r.Context(), ct)
	if err != nil {
		h.logger.Error("failed to list content", "type", ct, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := ContentListResponse{Type: string(ct), Count: len(docs), Documents: make([]DocumentResponse, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, toDocumentResponse(doc))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetContent returns one published document by slug, or by ID for records
// without a slug.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	ct, ok := contentTypeParam(w, r)
	if !ok {
		return
	}
	slug := r.PathValue("slug")

	doc, err := h.content.Document(r.Context(), ct, slug)
	if errors.Is(err, application.ErrNotFound) {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get content", "type", ct, "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Sync runs an immediate mirror sync. It is the target of the CMS publish
// webhook.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.syncSvc == nil {
		writeError(w, http.StatusNotFound, "sync is not enabled")
		return
	}
	if !h.authorizedWebhook(r) {
		writeError(w, http.StatusUnauthorized, "invalid webhook secret")
		return
	}

	result, err := h.syncSvc.Refresh(r.Context())
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, "sync interrupted")
		return
	}

	resp := toSyncResponse(result)
	if err != nil {
		h.logger.Error("webhook sync failed", "error", err)
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SyncStatus returns the per-type sync schedule of the mirror.
func (h *Handler) SyncStatus(w http.ResponseWriter, _ *http.Request) {
	if h.syncSvc == nil {
		writeError(w, http.StatusNotFound, "sync is not enabled")
		return
	}

	schedules := h.syncSvc.Schedules()
	resp := make([]ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		resp = append(resp, toScheduleResponse(s))
	}

	writeJSON(w, http.StatusOK, resp)
}

// authorizedWebhook accepts the secret in the webhook header or as a bearer
// token. With no secret configured every request is accepted.
func (h *Handler) authorizedWebhook(r *http.Request) bool {
	if h.webhookSecret == "" {
		return true
	}

	got := r.Header.Get(webhookSecretHeader)
	if got == "" {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			return false
		}
		got = token
	}

	return subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) == 1
}

// contentTypeParam reads and validates the {type} path value, writing a 404
// for unknown types.
func contentTypeParam(w http.ResponseWriter, r *http.Request) (model.ContentType, bool) {
	ct := model.ContentType(r.PathValue("type"))
	if !ct.Valid() {
		writeError(w, http.StatusNotFound, "unknown content type")
		return "", false
	}
	return ct, true
}
