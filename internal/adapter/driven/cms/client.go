// Package cms implements the ContentSource and ContentWriter ports against the
// headless CMS HTTP API.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/marquee/internal/domain/model"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.ContentSource = (*Client)(nil)
	_ driven.ContentWriter = (*Client)(nil)
)

const (
	defaultAPIVersion = "2021-10-21"
	requestTimeout    = 30 * time.Second
	maxResponseBytes  = 16 << 20
)

// Options configures a Client.
type Options struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	// BaseURL replaces the project API host for both reads and writes.
	BaseURL string
}

// Client implements the driven content ports using the CMS query and mutate
// endpoints.
type Client struct {
	http      *http.Client
	queryURL  *url.URL // .../v<version>; CDN host when enabled
	mutateURL *url.URL // .../v<version>; always the live API host
	dataset   string
	token     string
}

// NewClient creates a CMS client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. http.DefaultTransport
//
// Reads go through the API CDN when UseCDN is set; writes always go to the
// live API.
func NewClient(opts Options) (*Client, error) {
	if opts.Dataset == "" {
		return nil, errors.New("cms: dataset is required")
	}
	version := opts.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	var queryBase, mutateBase string
	switch {
	case opts.BaseURL != "":
		queryBase = opts.BaseURL
		mutateBase = opts.BaseURL
	case opts.ProjectID != "":
		mutateBase = fmt.Sprintf("https://%s.api.sanity.io", opts.ProjectID)
		queryBase = mutateBase
		if opts.UseCDN {
			queryBase = fmt.Sprintf("https://%s.apicdn.sanity.io", opts.ProjectID)
		}
	default:
		return nil, errors.New("cms: project ID or base URL is required")
	}

	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := &http.Client{Transport: cacheTransport, Timeout: requestTimeout}

	queryURL, err := versionedURL(queryBase, version)
	if err != nil {
		return nil, err
	}
	mutateURL, err := versionedURL(mutateBase, version)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      httpClient,
		queryURL:  queryURL,
		mutateURL: mutateURL,
		dataset:   opts.Dataset,
		token:     opts.Token,
	}, nil
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, dataset, token string) (*Client, error) {
	u, err := versionedURL(baseURL, defaultAPIVersion)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      httpClient,
		queryURL:  u,
		mutateURL: u,
		dataset:   dataset,
		token:     token,
	}, nil
}

func versionedURL(base, version string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", base)
	}
	u.Path += "/v" + strings.TrimPrefix(version, "v")
	return u, nil
}

// ListByType returns every published document of the given type, newest first.
func (c *Client) ListByType(ctx context.Context, contentType model.ContentType) ([]model.Document, error) {
	var raw []json.RawMessage
	if err := c.query(ctx, listByTypeQuery, map[string]string{"type": string(contentType)}, &raw); err != nil {
		return nil, fmt.Errorf("list %s documents: %w", contentType, err)
	}

	docs := make([]model.Document, 0, len(raw))
	for _, body := range raw {
		doc, err := model.ParseDocument(body)
		if err != nil {
			slog.Warn("cms: skipping malformed document", "type", contentType, "error", err)
			continue
		}
		if doc.IsDraft() {
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// GetBySlug returns the published document of the given type with the given
// slug. Returns nil, nil if no document matches.
func (c *Client) GetBySlug(ctx context.Context, contentType model.ContentType, slug string) (*model.Document, error) {
	params := map[string]string{"type": string(contentType), "slug": slug}
	doc, err := c.queryOne(ctx, bySlugQuery, params)
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", contentType, slug, err)
	}
	return doc, nil
}

// GetByID returns the published document with the given ID. Returns nil, nil
// if no document matches.
func (c *Client) GetByID(ctx context.Context, id string) (*model.Document, error) {
	if strings.HasPrefix(id, "drafts.") {
		return nil, nil
	}
	doc, err := c.queryOne(ctx, byIDQuery, map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}

func (c *Client) queryOne(ctx context.Context, q string, params map[string]string) (*model.Document, error) {
	var raw json.RawMessage
	if err := c.query(ctx, q, params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	doc, err := model.ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	if doc.IsDraft() {
		return nil, nil
	}
	return &doc, nil
}

// queryResponse is the envelope returned by the query endpoint.
type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// query runs a templated query. Parameters are passed as JSON-encoded string
// values under $-prefixed query keys so they are never spliced into the query
// text.
func (c *Client) query(ctx context.Context, q string, params map[string]string, out any) error {
	u := *c.queryURL
	u.Path += "/data/query/" + url.PathEscape(c.dataset)

	values := url.Values{}
	values.Set("query", q)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode query response: %w", err)
	}
	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		if raw, ok := out.(*json.RawMessage); ok {
			*raw = nil
		}
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode query result: %w", err)
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// do executes the request and returns the body of a 2xx response. Any other
// status becomes an *APIError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	if resp.Header.Get(httpcache.XFromCache) != "" {
		slog.Debug("cms: served from cache", "path", req.URL.Path)
	}

	return body, nil
}
