package services

import (
	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// Confidence bucket boundaries and their interval half-widths.
const (
	highConfidenceRules   = 5
	mediumConfidenceRules = 3

	spreadHigh   = 0.02
	spreadMedium = 0.04
	spreadLow    = 0.06
)

// liftAssumptions is the fixed disclosure attached to every prediction.
var liftAssumptions = []string{
	"Per-rule lift factors are heuristic estimates drawn from published conversion-optimization patterns",
	"Factors compound multiplicatively and assume every adaptation is implemented correctly",
	"Baseline conversion rates are category-level industry averages, not measured storefront data",
	"No A/B test data validates these predictions; treat them as simulated estimates",
	"Realized lift depends on product, market, competition, and execution quality",
}

// LiftEstimator produces the heuristic conversion-lift prediction for
// a variant from its fired rules' lift factors.
type LiftEstimator struct{}

// NewLiftEstimator creates an estimator.
func NewLiftEstimator() *LiftEstimator {
	return &LiftEstimator{}
}

// Estimate compounds the fired rules' lift factors multiplicatively:
// lift = product(1 + factor) - 1. Confidence comes from the fired-rule
// count alone: 5 or more is high, 3-4 medium, 2 or fewer low, with
// interval half-widths of 0.02, 0.04 and 0.06 around the point
// estimate. Zero fired rules means zero lift with a degenerate interval.
func (e *LiftEstimator) Estimate(fired []domain.FiredAdaptation, baselineConversion float64) *domain.LiftPrediction {
	compound := 1.0
	for _, fa := range fired {
		compound *= 1 + fa.LiftFactor
	}
	lift := compound - 1

	n := len(fired)
	var confidence domain.ConfidenceBucket
	var spread float64
	switch {
	case n >= highConfidenceRules:
		confidence = domain.ConfidenceHigh
		spread = spreadHigh
	case n >= mediumConfidenceRules:
		confidence = domain.ConfidenceMedium
		spread = spreadMedium
	default:
		confidence = domain.ConfidenceLow
		spread = spreadLow
	}
	if n == 0 {
		spread = 0
	}

	return &domain.LiftPrediction{
		Metric:       "conversion_rate",
		Baseline:     baselineConversion,
		Predicted:    baselineConversion * compound,
		Lift:         lift,
		IntervalLow:  lift - spread,
		IntervalHigh: lift + spread,
		Confidence:   confidence,
		RuleCount:    n,
		Assumptions:  liftAssumptions,
	}
}
