// Package memory provides an in-memory VariantStore. It is the default
// store for one-shot CLI runs and the fixture store for tests; nothing
// survives process exit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driven"
)

// VariantStore is a concurrency-safe map-backed variant store.
type VariantStore struct {
	mu       sync.RWMutex
	variants map[string]domain.VariantSpec
}

var _ driven.VariantStore = (*VariantStore)(nil)

// NewVariantStore creates an empty store.
func NewVariantStore() *VariantStore {
	return &VariantStore{
		variants: make(map[string]domain.VariantSpec),
	}
}

// Put stores a variant. A spec whose ID already exists is left
// untouched, which makes retried puts of the same variant no-ops.
func (s *VariantStore) Put(_ context.Context, spec domain.VariantSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.variants[spec.ID]; ok {
		return nil
	}
	s.variants[spec.ID] = spec
	return nil
}

// Get retrieves a variant by ID.
func (s *VariantStore) Get(_ context.Context, id string) (*domain.VariantSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spec, ok := s.variants[id]
	if !ok {
		return nil, fmt.Errorf("%w: variant %s", domain.ErrNotFound, id)
	}
	return &spec, nil
}

// List returns all stored variant IDs, sorted.
func (s *VariantStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.variants))
	for id := range s.variants {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a variant.
func (s *VariantStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.variants[id]; !ok {
		return fmt.Errorf("%w: variant %s", domain.ErrNotFound, id)
	}
	delete(s.variants, id)
	return nil
}

// Close releases nothing; present to satisfy the port.
func (s *VariantStore) Close() error {
	return nil
}
