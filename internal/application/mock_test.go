package application_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/marquee/internal/domain/model"
)

// memStore is an in-memory MirrorStore keyed by document ID.
type memStore struct {
	mu       sync.Mutex
	docs     map[string]model.Document
	listErr  map[model.ContentType]error
	getErr   error
	writes   int
	replaces []model.ContentType
}

func newMemStore(docs ...model.Document) *memStore {
	s := &memStore{docs: make(map[string]model.Document), listErr: make(map[model.ContentType]error)}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *memStore) ListByType(_ context.Context, ct model.ContentType) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.listErr[ct]; err != nil {
		return nil, err
	}

	var out []model.Document
	for _, d := range s.docs {
		if d.Type == ct && !d.IsDraft() {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetBySlug(_ context.Context, ct model.ContentType, slug string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, d := range s.docs {
		if d.Type == ct && d.Slug == slug && slug != "" && !d.IsDraft() {
			return &d, nil
		}
	}
	return nil, nil
}

func (s *memStore) GetByID(_ context.Context, id string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return nil, s.getErr
	}
	d, ok := s.docs[id]
	if !ok || d.IsDraft() {
		return nil, nil
	}
	return &d, nil
}

func (s *memStore) CreateOrReplace(_ context.Context, doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[doc.ID] = doc
	s.writes++
	return nil
}

func (s *memStore) ReplaceType(_ context.Context, ct model.ContentType, docs []model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, d := range s.docs {
		if d.Type == ct {
			delete(s.docs, id)
		}
	}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	s.replaces = append(s.replaces, ct)
	return nil
}

func (s *memStore) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.docs))
	for id := range s.docs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// doc builds a document from a JSON object literal, adding _id and _type.
func doc(t *testing.T, id string, ct model.ContentType, fields string) model.Document {
	t.Helper()

	body := fmt.Sprintf(`{"_id":%q,"_type":%q`, id, ct)
	if fields != "" {
		body += "," + fields
	}
	body += "}"

	d, err := model.ParseDocument([]byte(body))
	require.NoError(t, err)
	return d
}
