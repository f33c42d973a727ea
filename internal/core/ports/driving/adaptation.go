package driving

import (
	"context"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// AdaptationService runs adaptation pipelines and serves their results.
type AdaptationService interface {
	// Adapt validates the request, runs the five-stage pipeline and
	// persists the resulting variant. runID correlates logs and errors
	// for this run; if empty, the service mints one.
	Adapt(ctx context.Context, req domain.AdaptRequest, runID string) (*domain.VariantSpec, error)

	// Variant retrieves a persisted variant by ID.
	Variant(ctx context.Context, id string) (*domain.VariantSpec, error)

	// VariantIDs lists all persisted variant IDs.
	VariantIDs(ctx context.Context) ([]string, error)

	// DeleteVariant removes a persisted variant.
	DeleteVariant(ctx context.Context, id string) error

	// Audit re-runs the compliance audit for a persisted variant.
	// Strict mode raises essentializing severities and applies a fixed
	// score penalty.
	Audit(ctx context.Context, variantID string, strict bool) (*domain.AuditResult, error)
}
