package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/culturebridge-labs/culturebridge/internal/catalog"
	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driven"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driving"
	"github.com/culturebridge-labs/culturebridge/internal/logger"
)

const pipelineStages = 5

// RetryPolicy controls gateway call retries.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

// Config tunes the orchestrator. Zero values are replaced by
// DefaultConfig's values on construction.
type Config struct {
	Retry       RetryPolicy
	CallTimeout time.Duration
	Auditor     AuditorConfig
}

// DefaultConfig returns the standard orchestrator policy: three
// gateway attempts with a doubling backoff starting at 500ms, and a
// 30 second per-call timeout.
func DefaultConfig() Config {
	return Config{
		Retry:       RetryPolicy{MaxAttempts: 3, InitialBackoff: 500 * time.Millisecond},
		CallTimeout: 30 * time.Second,
		Auditor:     DefaultAuditorConfig(),
	}
}

// AdaptationService orchestrates the five-stage pipeline and serves
// variant retrieval and re-auditing. It is the implementation behind
// the driving AdaptationService port.
//
// The gateway is optional: a nil gateway (or a failing one) degrades
// the copy stage to templates and skips profile narrative enrichment,
// but never fails a run.
type AdaptationService struct {
	catalog   *catalog.Catalog
	resolver  *ProfileResolver
	engine    *RuleEngine
	auditor   *Auditor
	estimator *LiftEstimator
	gateway   driven.InferenceGateway
	store     driven.VariantStore
	cfg       Config
}

var _ driving.AdaptationService = (*AdaptationService)(nil)

// NewAdaptationService wires the orchestrator. gateway may be nil.
func NewAdaptationService(cat *catalog.Catalog, gateway driven.InferenceGateway, store driven.VariantStore, cfg Config) *AdaptationService {
	def := DefaultConfig()
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = def.Retry
	}
	if cfg.Retry.InitialBackoff == 0 {
		cfg.Retry.InitialBackoff = def.Retry.InitialBackoff
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	return &AdaptationService{
		catalog:   cat,
		resolver:  NewProfileResolver(cat),
		engine:    NewRuleEngine(cat.Rules()),
		auditor:   NewAuditor(cfg.Auditor),
		estimator: NewLiftEstimator(),
		gateway:   gateway,
		store:     store,
		cfg:       cfg,
	}
}

// Adapt runs the full pipeline for one request and persists the
// resulting variant. runID may be empty; a fresh correlation ID is
// generated then. Cancellation between stages aborts the run with no
// partial persistence.
func (s *AdaptationService) Adapt(ctx context.Context, req domain.AdaptRequest, runID string) (*domain.VariantSpec, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if runID == "" {
		runID = uuid.NewString()
	}
	log := logger.Run(runID)
	state := &domain.PipelineState{RunID: runID, Request: req}

	// Stage 1: Cultural Intelligence.
	log.Stage(1, pipelineStages, string(domain.StageCultural))
	profile, err := s.resolver.Resolve(req.CountryCode, req.Overrides)
	if err != nil {
		return nil, err
	}
	s.enrichNarrative(ctx, log, profile, req)
	state.Profile = profile
	state.Fired = s.engine.Evaluate(profile)
	log.Debug("%d mapping rules fired for %s", len(state.Fired), req.CountryCode)

	if err := stageCheckpoint(ctx, runID, domain.StageUX); err != nil {
		return nil, err
	}

	// Stage 2: UX Adaptation.
	log.Stage(2, pipelineStages, string(domain.StageUX))
	baseline, ok := s.catalog.Baseline(req.ProductCategory)
	if !ok {
		return nil, domain.NewStageFailure(domain.StageUX, runID,
			fmt.Errorf("%w: no baseline for category %q", domain.ErrValidation, req.ProductCategory))
	}
	state.UX = BuildUX(baseline, profile, state.Fired)

	if err := stageCheckpoint(ctx, runID, domain.StageCopy); err != nil {
		return nil, err
	}

	// Stage 3: Copy & Framing.
	log.Stage(3, pipelineStages, string(domain.StageCopy))
	state.Copy = s.frameCopy(ctx, log, baseline.Copy, profile, state)

	if err := stageCheckpoint(ctx, runID, domain.StageAudit); err != nil {
		return nil, err
	}

	// Stage 4: Compliance Audit. Advisory only: the result is recorded
	// on the variant whether or not it passes.
	log.Stage(4, pipelineStages, string(domain.StageAudit))
	state.Audit = s.auditor.Audit(state, false)
	if !state.Audit.Passed {
		log.Warn("compliance audit failed: %s", state.Audit.Summary)
	}

	if err := stageCheckpoint(ctx, runID, domain.StageExperimentation); err != nil {
		return nil, err
	}

	// Stage 5: Experimentation.
	log.Stage(5, pipelineStages, string(domain.StageExperimentation))
	state.Lift = s.estimator.Estimate(state.Fired, baseline.BaselineConversion)

	spec := domain.VariantSpec{
		ID:        newVariantID(),
		State:     *state,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, spec); err != nil {
		return nil, domain.NewStageFailure(domain.StageDone, runID,
			fmt.Errorf("persisting variant: %w", err))
	}
	log.Info("variant %s persisted", spec.ID)
	return &spec, nil
}

// Variant loads one persisted variant.
func (s *AdaptationService) Variant(ctx context.Context, id string) (*domain.VariantSpec, error) {
	return s.store.Get(ctx, id)
}

// VariantIDs lists all persisted variant IDs, sorted.
func (s *AdaptationService) VariantIDs(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// DeleteVariant removes one persisted variant.
func (s *AdaptationService) DeleteVariant(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Audit loads a persisted variant and re-runs the compliance auditor
// over it, optionally in strict mode.
func (s *AdaptationService) Audit(ctx context.Context, variantID string, strict bool) (*domain.AuditResult, error) {
	spec, err := s.store.Get(ctx, variantID)
	if err != nil {
		return nil, err
	}
	return s.auditor.Audit(&spec.State, strict), nil
}

// enrichNarrative asks the gateway for a prose summary of the resolved
// profile. Narrative is decoration; any failure is logged and ignored.
func (s *AdaptationService) enrichNarrative(ctx context.Context, log *logger.RunLogger, profile *domain.CulturalBehaviorProfile, req domain.AdaptRequest) {
	if s.gateway == nil {
		return
	}
	var result driven.NarrativeResult
	err := s.callGateway(ctx, log, driven.InferenceRequest{
		Role: driven.RoleCulturalAnalyst,
		Context: map[string]any{
			"profile":          profile,
			"product_category": req.ProductCategory,
			"price_band":       req.PriceBand,
			"audience":         req.Audience,
		},
		MaxTokens:   512,
		Temperature: 0.4,
	}, &result)
	if err != nil {
		log.Warn("narrative enrichment skipped: %v", err)
		return
	}
	profile.Narrative = result.Narrative
}

// frameCopy produces the copy payload. The gateway path is preferred;
// any gateway error after retries, including a malformed response,
// degrades to the deterministic template path.
func (s *AdaptationService) frameCopy(ctx context.Context, log *logger.RunLogger, baseline catalog.BaselineCopy, profile *domain.CulturalBehaviorProfile, state *domain.PipelineState) *domain.CopyPayload {
	if s.gateway == nil {
		return TemplateCopy(baseline, state.Fired)
	}

	var result driven.FramedCopyResult
	err := s.callGateway(ctx, log, driven.InferenceRequest{
		Role: driven.RoleCopywriter,
		Context: map[string]any{
			"profile":       profile,
			"ux":            state.UX,
			"baseline_copy": baseline,
			"price_band":    state.Request.PriceBand,
			"audience":      state.Request.Audience,
		},
		MaxTokens:   1024,
		Temperature: 0.7,
	}, &result)
	if err == nil {
		err = validateFramedCopy(&result)
	}
	if err != nil {
		log.Warn("copy framing degraded to templates: %v", err)
		return TemplateCopy(baseline, state.Fired)
	}

	return &domain.CopyPayload{
		CTAPrimary:       result.CTAPrimary,
		CTASecondary:     result.CTASecondary,
		ValueProposition: result.ValueProposition,
		UrgencyText:      result.UrgencyText,
		SocialProofText:  result.SocialProofText,
		Microcopy:        result.Microcopy,
		Source:           domain.CopySourceGateway,
	}
}

// callGateway invokes the gateway with the retry policy: transient
// errors (timeout, unavailable, rate limited) retry up to MaxAttempts
// with a doubling backoff; anything else returns immediately.
func (s *AdaptationService) callGateway(ctx context.Context, log *logger.RunLogger, req driven.InferenceRequest, out any) error {
	backoff := s.cfg.Retry.InitialBackoff
	for attempt := 1; ; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		err := s.gateway.Complete(callCtx, req, out)
		cancel()
		if err == nil {
			return nil
		}
		if !retryableGatewayError(err) || attempt >= s.cfg.Retry.MaxAttempts {
			return err
		}
		log.Warn("gateway %s call attempt %d/%d failed: %v; retrying in %s",
			req.Role, attempt, s.cfg.Retry.MaxAttempts, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func retryableGatewayError(err error) bool {
	return errors.Is(err, domain.ErrGatewayTimeout) ||
		errors.Is(err, domain.ErrGatewayUnavailable) ||
		errors.Is(err, domain.ErrGatewayRateLimited)
}

// stageCheckpoint aborts the run if the context was cancelled before
// the named stage could start.
func stageCheckpoint(ctx context.Context, runID string, next domain.Stage) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStageFailure(next, runID, err)
	}
	return nil
}

// newVariantID produces a short variant identifier, e.g. var_3f2a9c81d04e.
func newVariantID() string {
	return "var_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
