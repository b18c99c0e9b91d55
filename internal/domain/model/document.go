package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// draftPrefix marks unpublished working copies in the CMS. The site never
// renders them.
const draftPrefix = "drafts."

// Document is a raw CMS document: the common envelope fields extracted for
// routing and storage, plus the complete JSON body.
type Document struct {
	ID        string
	Type      ContentType
	Rev       string
	Slug      string
	UpdatedAt time.Time
	// PublishedAt is the record's publishedAt field, zero when the type has
	// none or the value does not parse.
	PublishedAt time.Time
	Body        json.RawMessage
}

type envelope struct {
	ID        string `json:"_id"`
	Type      string `json:"_type"`
	Rev       string `json:"_rev"`
	UpdatedAt string `json:"_updatedAt"`
	Slug      *Slug  `json:"slug"`
	// Left untyped so a malformed value never rejects the whole document.
	PublishedAt any `json:"publishedAt"`
}

// ParseDocument extracts the envelope from a JSON document body. The body must
// be a JSON object with non-empty _id and _type fields.
func ParseDocument(body []byte) (Document, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Document{}, fmt.Errorf("decode document envelope: %w", err)
	}
	if env.ID == "" {
		return Document{}, errors.New("document has no _id")
	}
	if env.Type == "" {
		return Document{}, fmt.Errorf("document %s has no _type", env.ID)
	}

	doc := Document{
		ID:   env.ID,
		Type: ContentType(env.Type),
		Rev:  env.Rev,
		Body: append(json.RawMessage(nil), body...),
	}
	if env.Slug != nil {
		doc.Slug = strings.TrimSpace(env.Slug.Current)
	}
	if env.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, env.UpdatedAt); err == nil {
			doc.UpdatedAt = t.UTC()
		}
	}
	if s, ok := env.PublishedAt.(string); ok && s != "" {
		if t, err := ParseDate(s); err == nil {
			doc.PublishedAt = t
		}
	}

	return doc, nil
}

// IsDraft reports whether the document is an unpublished draft.
func (d Document) IsDraft() bool {
	return strings.HasPrefix(d.ID, draftPrefix)
}

// LinkTarget returns the slug when present, otherwise the document ID.
func (d Document) LinkTarget() string {
	if d.Slug != "" {
		return d.Slug
	}
	return d.ID
}

// Fields decodes the body into a generic field map.
func (d Document) Fields() (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(d.Body, &fields); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	return fields, nil
}

// WithSlug returns a copy of the document whose slug.current is set to slug.
func (d Document) WithSlug(slug string) (Document, error) {
	fields, err := d.Fields()
	if err != nil {
		return Document{}, err
	}
	fields["slug"] = map[string]any{"_type": "slug", "current": slug}

	body, err := json.Marshal(fields)
	if err != nil {
		return Document{}, fmt.Errorf("encode document %s: %w", d.ID, err)
	}

	out := d
	out.Slug = slug
	out.Body = body
	return out, nil
}

// Decode unmarshals a document body into a typed record.
func Decode[T any](d Document) (T, error) {
	var out T
	if err := json.Unmarshal(d.Body, &out); err != nil {
		return out, fmt.Errorf("decode %s %s: %w", d.Type, d.ID, err)
	}
	return out, nil
}
