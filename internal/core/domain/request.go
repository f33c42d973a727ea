package domain

import "fmt"

// ProductCategory is a supported storefront product category.
type ProductCategory string

// Supported product categories.
const (
	CategoryElectronics  ProductCategory = "electronics"
	CategoryFashion      ProductCategory = "fashion"
	CategoryFoodBeverage ProductCategory = "food_beverage"
	CategoryHomeGarden   ProductCategory = "home_garden"
	CategoryHealthBeauty ProductCategory = "health_beauty"
)

// IsValid returns true if the category is recognised.
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryFashion, CategoryFoodBeverage,
		CategoryHomeGarden, CategoryHealthBeauty:
		return true
	default:
		return false
	}
}

// PriceBand is a coarse price positioning of the storefront.
type PriceBand string

// Supported price bands.
const (
	BandBudget  PriceBand = "budget"
	BandMid     PriceBand = "mid"
	BandPremium PriceBand = "premium"
	BandLuxury  PriceBand = "luxury"
)

// IsValid returns true if the price band is recognised.
func (b PriceBand) IsValid() bool {
	switch b {
	case BandBudget, BandMid, BandPremium, BandLuxury:
		return true
	default:
		return false
	}
}

// Audience is the target shopper segment.
type Audience string

// Supported audiences.
const (
	AudienceGeneralConsumer Audience = "general_consumer"
	AudienceTechEnthusiast  Audience = "tech_enthusiast"
	AudienceYoungAdult      Audience = "young_adult"
	AudienceProfessional    Audience = "professional"
	AudienceFamily          Audience = "family"
)

// IsValid returns true if the audience is recognised.
func (a Audience) IsValid() bool {
	switch a {
	case AudienceGeneralConsumer, AudienceTechEnthusiast, AudienceYoungAdult,
		AudienceProfessional, AudienceFamily:
		return true
	default:
		return false
	}
}

// AdaptRequest is the caller-facing request for one adaptation run.
// Override keys must be drawn from the closed Dimension set with
// integer values in [0,100].
type AdaptRequest struct {
	CountryCode     string            `json:"country_code"`
	ProductCategory ProductCategory   `json:"product_category"`
	PriceBand       PriceBand         `json:"price_band"`
	Audience        Audience          `json:"audience"`
	Overrides       map[Dimension]int `json:"override_dimensions,omitempty"`
}

// Validate rejects malformed requests before any pipeline run starts.
// Country existence is checked later by the profile resolver; here only
// shape and ranges are enforced.
func (r AdaptRequest) Validate() error {
	if r.CountryCode == "" {
		return fmt.Errorf("%w: country_code is required", ErrValidation)
	}
	if !r.ProductCategory.IsValid() {
		return fmt.Errorf("%w: unknown product_category %q", ErrValidation, r.ProductCategory)
	}
	if !r.PriceBand.IsValid() {
		return fmt.Errorf("%w: unknown price_band %q", ErrValidation, r.PriceBand)
	}
	if !r.Audience.IsValid() {
		return fmt.Errorf("%w: unknown audience %q", ErrValidation, r.Audience)
	}
	for dim, value := range r.Overrides {
		if !dim.IsValid() {
			return fmt.Errorf("%w: %w: unknown dimension %q", ErrValidation, ErrInvalidOverride, dim)
		}
		if !ValidScore(value) {
			return fmt.Errorf("%w: %w: %s=%d outside [%d,%d]",
				ErrValidation, ErrInvalidOverride, dim, value, ScoreMin, ScoreMax)
		}
	}
	return nil
}
