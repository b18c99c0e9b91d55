package application

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/marquee/internal/domain/model"
	"github.com/ericfisherdev/marquee/internal/domain/port/driven"
	"github.com/ericfisherdev/marquee/internal/domain/schema"
)

//go:embed fixtures/seed.yaml
var defaultSeed []byte

// DefaultSeedFixtures returns the embedded sample content.
func DefaultSeedFixtures() []byte {
	return defaultSeed
}

type seedFile struct {
	Documents []map[string]any `yaml:"documents"`
}

// SeedService writes a fixed set of sample documents. Every document has a
// fixed ID and is written with create-or-replace, so repeated runs leave
// exactly one record per ID.
type SeedService struct {
	writer   driven.ContentWriter
	fixtures []byte
}

// NewSeedService creates a SeedService that writes fixtures through writer.
// A nil fixtures slice selects the embedded sample content.
func NewSeedService(writer driven.ContentWriter, fixtures []byte) *SeedService {
	if fixtures == nil {
		fixtures = defaultSeed
	}
	return &SeedService{writer: writer, fixtures: fixtures}
}

// Documents parses and validates the fixtures. No document is returned
// unless every document is valid.
func (s *SeedService) Documents() ([]model.Document, error) {
	var file seedFile
	if err := yaml.Unmarshal(s.fixtures, &file); err != nil {
		return nil, fmt.Errorf("parse seed fixtures: %w", err)
	}

	docs := make([]model.Document, 0, len(file.Documents))
	seen := make(map[string]bool, len(file.Documents))
	var problems []string

	for i, raw := range file.Documents {
		doc, err := seedDocument(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("document %d: %v", i, err))
			continue
		}
		if seen[doc.ID] {
			problems = append(problems, fmt.Sprintf("%s: duplicate id", doc.ID))
			continue
		}
		seen[doc.ID] = true

		for _, v := range validateDocument(doc) {
			problems = append(problems, fmt.Sprintf("%s: %s", doc.ID, v))
		}
		docs = append(docs, doc)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid seed fixtures:\n  %s", strings.Join(problems, "\n  "))
	}

	return docs, nil
}

// Seed validates the fixtures and writes every document. It stops at the
// first failed write and returns the number of documents written.
func (s *SeedService) Seed(ctx context.Context) (int, error) {
	docs, err := s.Documents()
	if err != nil {
		return 0, err
	}

	written := 0
	for _, doc := range docs {
		if err := s.writer.CreateOrReplace(ctx, doc); err != nil {
			return written, fmt.Errorf("seed %s %s: %w", doc.Type, doc.ID, err)
		}
		slog.Debug("seeded document", "type", doc.Type, "id", doc.ID)
		written++
	}

	slog.Info("seed complete", "documents", written)
	return written, nil
}

func seedDocument(raw map[string]any) (model.Document, error) {
	id, _ := raw["_id"].(string)
	if id == "" {
		return model.Document{}, errors.New("missing _id")
	}
	if strings.HasPrefix(id, "drafts.") {
		return model.Document{}, fmt.Errorf("%s: seed documents must be published", id)
	}

	ct := model.ContentType(fmt.Sprint(raw["_type"]))
	if !ct.Valid() {
		return model.Document{}, fmt.Errorf("%s: unknown type %q", id, ct)
	}
	if ct.Singleton() && id != string(ct) {
		return model.Document{}, fmt.Errorf("%s: singleton %s must use id %q", id, ct, ct)
	}

	for field, v := range raw {
		if items, ok := v.([]any); ok {
			assignKeys(id, field, items)
		}
	}

	body, err := json.Marshal(raw)
	if err != nil {
		return model.Document{}, fmt.Errorf("%s: encode: %w", id, err)
	}

	return model.ParseDocument(body)
}

// assignKeys gives every object in an array a _key, which the CMS requires
// for array items. Keys derive from the document ID, field and position, so
// reseeding produces identical documents.
func assignKeys(id, field string, items []any) {
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if key, _ := obj["_key"].(string); key != "" {
			continue
		}
		name := id + "/" + field + "/" + strconv.Itoa(i)
		obj["_key"] = strings.ReplaceAll(uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String(), "-", "")[:12]
	}
}

func validateDocument(doc model.Document) []schema.Violation {
	s, ok := schema.Lookup(doc.Type)
	if !ok {
		return []schema.Violation{{Field: "_type", Message: "has no schema"}}
	}

	fields, err := doc.Fields()
	if err != nil {
		return []schema.Violation{{Field: "_body", Message: err.Error()}}
	}

	return s.Validate(fields)
}
