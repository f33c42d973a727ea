package services

import (
	"fmt"

	"github.com/culturebridge-labs/culturebridge/internal/catalog"
	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// Rationale text recorded for caller-supplied dimension values.
const overrideRationale = "caller override"

// ProfileResolver merges stored regional priors with caller-supplied
// overrides into a validated CulturalBehaviorProfile. Resolution is
// all-or-nothing: no partial profiles are ever returned.
type ProfileResolver struct {
	catalog *catalog.Catalog
}

// NewProfileResolver creates a resolver over the loaded catalog.
func NewProfileResolver(cat *catalog.Catalog) *ProfileResolver {
	return &ProfileResolver{catalog: cat}
}

// Resolve builds the profile for a country. Overrides fully replace
// the prior's value for their dimension, never blend with it.
func (r *ProfileResolver) Resolve(countryCode string, overrides map[domain.Dimension]int) (*domain.CulturalBehaviorProfile, error) {
	prior, ok := r.catalog.Prior(countryCode)
	if !ok {
		return nil, fmt.Errorf("%w: no stored prior for %q", domain.ErrUnknownRegion, countryCode)
	}

	for dim, value := range overrides {
		if !dim.IsValid() {
			return nil, fmt.Errorf("%w: unknown dimension %q", domain.ErrInvalidOverride, dim)
		}
		if !domain.ValidScore(value) {
			return nil, fmt.Errorf("%w: %s=%d outside [%d,%d]",
				domain.ErrInvalidOverride, dim, value, domain.ScoreMin, domain.ScoreMax)
		}
	}

	scores := make(map[domain.Dimension]domain.DimensionScore, len(domain.AllDimensions()))
	for _, dim := range domain.AllDimensions() {
		if value, ok := overrides[dim]; ok {
			scores[dim] = domain.DimensionScore{
				Value:     value,
				Rationale: overrideRationale,
				Source:    domain.SourceCallerOverride,
			}
			continue
		}
		scores[dim] = domain.DimensionScore{
			Value:     prior.Dimensions[dim],
			Rationale: fmt.Sprintf("regional prior (%s)", prior.CountryName),
			Source:    domain.SourceRegionalPrior,
		}
	}

	profile := &domain.CulturalBehaviorProfile{
		CountryCode: prior.CountryCode,
		CountryName: prior.CountryName,
		Scores:      scores,
		Notes:       prior.Notes,
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}
