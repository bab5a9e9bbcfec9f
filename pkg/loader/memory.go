package loader

import (
	"context"
	"net/http"
	"sync"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Ramsey-B/fern/pkg/steps"
)

// MemoryRepository keeps documents in process. The service uses it when no
// database is configured.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]steps.Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: map[string]steps.Document{}}
}

func (r *MemoryRepository) Upsert(_ context.Context, doc steps.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (steps.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return steps.Document{}, httperror.NewHTTPError(http.StatusNotFound, "trained step not found")
	}
	return doc, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return httperror.NewHTTPError(http.StatusNotFound, "trained step not found")
	}
	delete(r.docs, id)
	return nil
}
