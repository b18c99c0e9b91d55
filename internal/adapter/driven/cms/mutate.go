package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// ErrNoToken is returned by write operations when the client has no API token.
var ErrNoToken = errors.New("cms: write operations require an API token")

type mutation struct {
	CreateOrReplace json.RawMessage `json:"createOrReplace"`
}

type mutateRequest struct {
	Mutations []mutation `json:"mutations"`
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// CreateOrReplace writes the document under its ID, replacing any existing
// document. Repeating the call with the same document is a no-op on content.
func (c *Client) CreateOrReplace(ctx context.Context, doc model.Document) error {
	if c.token == "" {
		return ErrNoToken
	}

	reqBody, err := json.Marshal(mutateRequest{
		Mutations: []mutation{{CreateOrReplace: doc.Body}},
	})
	if err != nil {
		return fmt.Errorf("encode mutation for %s: %w", doc.ID, err)
	}

	u := *c.mutateURL
	u.Path += "/data/mutate/" + url.PathEscape(c.dataset)
	u.RawQuery = url.Values{"returnIds": {"true"}, "visibility": {"sync"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("create or replace %s: %w", doc.ID, err)
	}

	var resp mutateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode mutate response: %w", err)
	}

	for _, r := range resp.Results {
		slog.Debug("cms: document written", "id", r.ID, "operation", r.Operation, "transaction", resp.TransactionID)
	}

	return nil
}
