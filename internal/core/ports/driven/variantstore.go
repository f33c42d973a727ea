package driven

import (
	"context"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// VariantStore persists completed pipeline outputs. A VariantSpec is
// created once and never updated, so implementations need no
// read-modify-write handling.
type VariantStore interface {
	// Put stores a variant. Idempotent on retry: storing a spec whose
	// ID already exists is a no-op, never an overwrite.
	Put(ctx context.Context, spec domain.VariantSpec) error

	// Get retrieves a variant by ID. Returns domain.ErrNotFound if it
	// does not exist.
	Get(ctx context.Context, id string) (*domain.VariantSpec, error)

	// List returns all stored variant IDs, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a variant. Returns domain.ErrNotFound if it does
	// not exist.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
