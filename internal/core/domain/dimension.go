package domain

// Dimension is one of the seven cultural behavior dimensions. The set
// is closed: every score map, override and mapping rule must use keys
// from this set, and validation rejects anything else.
type Dimension string

// The closed dimension set.
const (
	DimUncertaintyAvoidance Dimension = "uncertainty_avoidance"
	DimCollectivism         Dimension = "collectivism"
	DimAuthorityDistance    Dimension = "authority_distance"
	DimContextLevel         Dimension = "context_level"
	DimPriceSensitivity     Dimension = "price_sensitivity"
	DimTrustNeed            Dimension = "trust_need"
	DimFrictionTolerance    Dimension = "friction_tolerance"
)

// Dimension scores are integers in [ScoreMin, ScoreMax].
const (
	ScoreMin = 0
	ScoreMax = 100
)

// AllDimensions returns the closed dimension set in canonical order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimUncertaintyAvoidance,
		DimCollectivism,
		DimAuthorityDistance,
		DimContextLevel,
		DimPriceSensitivity,
		DimTrustNeed,
		DimFrictionTolerance,
	}
}

// IsValid returns true if the dimension is in the closed set.
func (d Dimension) IsValid() bool {
	switch d {
	case DimUncertaintyAvoidance, DimCollectivism, DimAuthorityDistance,
		DimContextLevel, DimPriceSensitivity, DimTrustNeed, DimFrictionTolerance:
		return true
	default:
		return false
	}
}

// ValidScore returns true if the value is inside the score range.
func ValidScore(value int) bool {
	return value >= ScoreMin && value <= ScoreMax
}
