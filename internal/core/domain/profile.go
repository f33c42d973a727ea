package domain

import "fmt"

// ScoreSource identifies which input produced a dimension's value.
type ScoreSource string

// Score provenance. Overrides fully replace a prior's value, never blend.
const (
	// SourceRegionalPrior marks a value taken from the stored prior.
	SourceRegionalPrior ScoreSource = "regional_prior"

	// SourceCallerOverride marks a value supplied by the caller.
	SourceCallerOverride ScoreSource = "caller_override"
)

// DimensionScore is a bounded score plus the provenance of its value.
type DimensionScore struct {
	Value     int         `json:"value"`
	Rationale string      `json:"rationale"`
	Source    ScoreSource `json:"source"`
}

// CulturalBehaviorProfile maps every recognised dimension to a validated
// score. A profile exists only for the duration of one pipeline run,
// except as embedded in a persisted VariantSpec.
type CulturalBehaviorProfile struct {
	CountryCode string                       `json:"country_code"`
	CountryName string                       `json:"country_name"`
	Scores      map[Dimension]DimensionScore `json:"scores"`
	Notes       string                       `json:"notes,omitempty"`

	// Narrative is an optional gateway-produced rationale summary.
	// Empty when enrichment was unavailable.
	Narrative string `json:"narrative,omitempty"`
}

// Score returns the value for a dimension. The profile invariant
// guarantees every recognised dimension is present.
func (p *CulturalBehaviorProfile) Score(d Dimension) int {
	return p.Scores[d].Value
}

// Validate checks the profile invariant: every recognised dimension
// present with an in-range value.
func (p *CulturalBehaviorProfile) Validate() error {
	if p.CountryCode == "" {
		return fmt.Errorf("%w: empty country code", ErrValidation)
	}
	for _, dim := range AllDimensions() {
		score, ok := p.Scores[dim]
		if !ok {
			return fmt.Errorf("%w: missing dimension %s", ErrValidation, dim)
		}
		if !ValidScore(score.Value) {
			return fmt.Errorf("%w: dimension %s value %d outside [%d,%d]",
				ErrValidation, dim, score.Value, ScoreMin, ScoreMax)
		}
	}
	return nil
}
