package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a malformed or out-of-range request.
	// Requests failing validation are rejected before any pipeline run starts.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownRegion indicates no stored cultural prior exists for a country code.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrInvalidOverride indicates an override key is not a recognised dimension
	// or its value falls outside the score range.
	ErrInvalidOverride = errors.New("invalid dimension override")

	// ErrAuditIncomplete indicates a variant lacks an audit result.
	// A variant without an audit score must never be returned as complete.
	ErrAuditIncomplete = errors.New("audit incomplete")

	// ErrPipelineFailed indicates an adaptation run aborted at some stage.
	ErrPipelineFailed = errors.New("pipeline failed")

	// Gateway errors. The inference gateway is the only component with
	// external latency; its failures are typed so stages can decide
	// whether to retry, degrade, or escalate.

	// ErrGatewayTimeout indicates an inference call exceeded its deadline.
	ErrGatewayTimeout = errors.New("gateway timeout")

	// ErrGatewayRateLimited indicates the inference service throttled the call.
	ErrGatewayRateLimited = errors.New("gateway rate limited")

	// ErrGatewayUnavailable indicates the inference service is unreachable
	// or not configured.
	ErrGatewayUnavailable = errors.New("gateway unavailable")

	// ErrGatewaySchema indicates the inference service returned output that
	// does not conform to the requested schema.
	ErrGatewaySchema = errors.New("gateway schema violation")
)

// StageFailure wraps an error that aborted a pipeline run. It carries the
// failing stage and the run's correlation ID so callers and logs can
// correlate escalated failures.
type StageFailure struct {
	Stage Stage
	RunID string
	Err   error
}

// Error implements the error interface.
func (e *StageFailure) Error() string {
	return fmt.Sprintf("pipeline failed at stage %s (run %s): %v", e.Stage, e.RunID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StageFailure) Unwrap() error {
	return e.Err
}

// Is reports ErrPipelineFailed so callers can classify with errors.Is
// without knowing the concrete type.
func (e *StageFailure) Is(target error) bool {
	return target == ErrPipelineFailed
}

// NewStageFailure wraps err as a fatal failure of the given stage.
func NewStageFailure(stage Stage, runID string, err error) error {
	return &StageFailure{Stage: stage, RunID: runID, Err: err}
}
