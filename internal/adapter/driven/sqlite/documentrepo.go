package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/marquee/internal/domain/model"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MirrorStore = (*DocumentRepo)(nil)

// DocumentRepo is the SQLite implementation of the MirrorStore port interface.
// Each row holds the full JSON body; the id, type and slug columns exist for
// lookups only.
type DocumentRepo struct {
	db  *DB
	now func() time.Time
}

// NewDocumentRepo creates a new DocumentRepo backed by the given DB.
func NewDocumentRepo(db *DB) *DocumentRepo {
	return &DocumentRepo{db: db, now: time.Now}
}

// timeLayout stores timestamps as fixed-width UTC text so that lexical order
// is chronological. It matches SQLite's strftime('%Y-%m-%dT%H:%M:%fZ').
const timeLayout = "2006-01-02T15:04:05.000Z"

const upsertDocumentQuery = `
	INSERT INTO documents (id, type, slug, body, updated_at, published_at, synced_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		type         = excluded.type,
		slug         = excluded.slug,
		body         = excluded.body,
		updated_at   = excluded.updated_at,
		published_at = excluded.published_at,
		synced_at    = excluded.synced_at`

// CreateOrReplace inserts the document, replacing any stored document with
// the same ID.
func (r *DocumentRepo) CreateOrReplace(ctx context.Context, doc model.Document) error {
	if _, err := r.db.Writer.ExecContext(ctx, upsertDocumentQuery, r.upsertArgs(doc)...); err != nil {
		return fmt.Errorf("create or replace document %s: %w", doc.ID, err)
	}
	return nil
}

// ReplaceType deletes every stored document of the given type and inserts
// docs in a single transaction.
func (r *DocumentRepo) ReplaceType(ctx context.Context, contentType model.ContentType, docs []model.Document) error {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE type = ?`, string(contentType)); err != nil {
		return fmt.Errorf("clear %s documents: %w", contentType, err)
	}

	stmt, err := tx.PrepareContext(ctx, upsertDocumentQuery)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		if doc.Type != contentType {
			return fmt.Errorf("replace %s documents: document %s has type %s", contentType, doc.ID, doc.Type)
		}
		if _, err := stmt.ExecContext(ctx, r.upsertArgs(doc)...); err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *DocumentRepo) upsertArgs(doc model.Document) []any {
	return []any{
		doc.ID,
		string(doc.Type),
		doc.Slug,
		string(doc.Body),
		formatTime(doc.UpdatedAt),
		formatTime(doc.PublishedAt),
		formatTime(r.now()),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// ListByType returns all published documents of the given type, newest
// first by publishedAt, falling back to _updatedAt. This is the order the CMS
// list query uses.
func (r *DocumentRepo) ListByType(ctx context.Context, contentType model.ContentType) ([]model.Document, error) {
	const query = `
		SELECT body FROM documents
		WHERE type = ? AND id NOT LIKE 'drafts.%'
		ORDER BY coalesce(nullif(published_at, ''), updated_at) DESC, id`

	rows, err := r.db.Reader.QueryContext(ctx, query, string(contentType))
	if err != nil {
		return nil, fmt.Errorf("list %s documents: %w", contentType, err)
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// GetBySlug retrieves a published document by type and slug. Returns nil, nil
// if no document matches.
func (r *DocumentRepo) GetBySlug(ctx context.Context, contentType model.ContentType, slug string) (*model.Document, error) {
	if slug == "" {
		return nil, nil
	}

	const query = `
		SELECT body FROM documents
		WHERE type = ? AND slug = ? AND id NOT LIKE 'drafts.%'
		ORDER BY id LIMIT 1`

	doc, err := scanDocument(r.db.Reader.QueryRowContext(ctx, query, string(contentType), slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", contentType, slug, err)
	}

	return doc, nil
}

// GetByID retrieves a published document by ID. Returns nil, nil if the
// document does not exist.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	const query = `SELECT body FROM documents WHERE id = ? AND id NOT LIKE 'drafts.%'`

	doc, err := scanDocument(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}

	return doc, nil
}

// Count returns the number of stored documents, drafts included.
func (r *DocumentRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.Reader.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*model.Document, error) {
	var body string
	if err := s.Scan(&body); err != nil {
		return nil, err
	}

	doc, err := model.ParseDocument([]byte(body))
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
