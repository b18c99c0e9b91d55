package driven

import (
	"context"

	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// ContentSource defines the driven port for reading published CMS documents.
// Drafts are never returned. GetBySlug and GetByID return nil, nil when no
// document matches.
type ContentSource interface {
	ListByType(ctx context.Context, contentType model.ContentType) ([]model.Document, error)
	GetBySlug(ctx context.Context, contentType model.ContentType, slug string) (*model.Document, error)
	GetByID(ctx context.Context, id string) (*model.Document, error)
}

// ContentWriter defines the driven port for idempotent document writes.
// CreateOrReplace stores the document under its ID, replacing any existing
// document with the same ID.
type ContentWriter interface {
	CreateOrReplace(ctx context.Context, doc model.Document) error
}

// MirrorStore defines the driven port for the local document mirror.
// ReplaceType atomically replaces every stored document of the given type.
type MirrorStore interface {
	ContentSource
	ContentWriter
	ReplaceType(ctx context.Context, contentType model.ContentType, docs []model.Document) error
}
