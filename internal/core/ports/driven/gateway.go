package driven

import (
	"context"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// Gateway role identifiers. Each role selects the system behaviour the
// inference service assumes for a call.
const (
	RoleCulturalAnalyst = "cultural_analyst"
	RoleCopywriter      = "copywriter"
)

// InferenceRequest is the input contract of the inference gateway:
// a role identifier plus a structured context object. The context is
// serialised for the model; the core never inspects free-form output
// beyond the schema-conformant fields decoded into the caller's target.
type InferenceRequest struct {
	// Role identifies the system behaviour for this call.
	Role string

	// Context is the structured context object, serialised to JSON.
	Context any

	// MaxTokens caps the response size. Zero means adapter default.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// InferenceGateway is the opaque external text-inference capability.
// This is an optional service - when nil, pipeline stages degrade
// gracefully (no narrative enrichment, templated copy).
//
// Implementations must return the typed gateway errors from the domain
// package (ErrGatewayTimeout, ErrGatewayRateLimited, ErrGatewaySchema,
// ErrGatewayUnavailable) so stages can decide whether to retry,
// degrade, or escalate.
type InferenceGateway interface {
	// Complete sends the request and decodes the schema-conformant
	// structured reply into out (a pointer to the target schema type).
	// A reply that cannot be decoded is an ErrGatewaySchema failure.
	Complete(ctx context.Context, req InferenceRequest, out any) error

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// NarrativeResult is the output schema for RoleCulturalAnalyst calls:
// a narrative rationale summary for a resolved profile.
type NarrativeResult struct {
	Narrative string `json:"narrative"`
}

// FramedCopyResult is the output schema for RoleCopywriter calls.
// Every element must carry text and a traceable rationale; the copy
// stage rejects replies with missing elements as schema violations.
type FramedCopyResult struct {
	CTAPrimary       domain.CopyElement `json:"cta_primary"`
	CTASecondary     domain.CopyElement `json:"cta_secondary"`
	ValueProposition domain.CopyElement `json:"value_proposition"`
	UrgencyText      domain.CopyElement `json:"urgency_text"`
	SocialProofText  domain.CopyElement `json:"social_proof_text"`
	Microcopy        []domain.Microcopy `json:"microcopy"`
}
