package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/marquee/internal/application"
	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Time   string `json:"time"`
}

// DocumentResponse is a published document with its envelope fields lifted
// out of the body.
type DocumentResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Slug       string          `json:"slug,omitempty"`
	LinkTarget string          `json:"link_target"`
	UpdatedAt  string          `json:"updated_at,omitempty"`
	Document   json.RawMessage `json:"document"`
}

// ContentListResponse is the JSON representation of a content type listing.
type ContentListResponse struct {
	Type      string             `json:"type"`
	Count     int                `json:"count"`
	Documents []DocumentResponse `json:"documents"`
}

// SyncResponse is the JSON representation of a mirror sync result.
type SyncResponse struct {
	Documents  int      `json:"documents"`
	Types      int      `json:"types"`
	Failed     []string `json:"failed"`
	DurationMS int64    `json:"duration_ms"`
}

// ScheduleResponse is the JSON representation of one content type's sync
// schedule.
type ScheduleResponse struct {
	Type       string `json:"type"`
	Tier       string `json:"tier"`
	NextSyncAt string `json:"next_sync_at"`
	LastSynced string `json:"last_synced"`
}

// toDocumentResponse converts a domain Document to its JSON representation.
func toDocumentResponse(doc model.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:         doc.ID,
		Type:       string(doc.Type),
		Slug:       doc.Slug,
		LinkTarget: doc.LinkTarget(),
		Document:   doc.Body,
	}
	if !doc.UpdatedAt.IsZero() {
		resp.UpdatedAt = doc.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// toSyncResponse converts an application SyncResult to its JSON representation.
func toSyncResponse(result application.SyncResult) SyncResponse {
	failed := make([]string, 0, len(result.Failed))
	for _, ct := range result.Failed {
		failed = append(failed, string(ct))
	}
	return SyncResponse{
		Documents:  result.Documents,
		Types:      result.Types,
		Failed:     failed,
		DurationMS: result.Duration.Milliseconds(),
	}
}

// toScheduleResponse converts an application ScheduleInfo to its JSON representation.
func toScheduleResponse(s application.ScheduleInfo) ScheduleResponse {
	return ScheduleResponse{
		Type:       string(s.Type),
		Tier:       s.Tier.String(),
		NextSyncAt: s.NextSyncAt.UTC().Format(time.RFC3339),
		LastSynced: s.LastSynced.UTC().Format(time.RFC3339),
	}
}
