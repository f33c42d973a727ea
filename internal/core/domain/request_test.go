package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() AdaptRequest {
	return AdaptRequest{
		CountryCode:     "JP",
		ProductCategory: CategoryElectronics,
		PriceBand:       BandPremium,
		Audience:        AudienceGeneralConsumer,
	}
}

func TestAdaptRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AdaptRequest)
		wantErr error
	}{
		{
			name:   "valid request passes",
			mutate: func(r *AdaptRequest) {},
		},
		{
			name: "valid overrides pass",
			mutate: func(r *AdaptRequest) {
				r.Overrides = map[Dimension]int{DimUncertaintyAvoidance: 90}
			},
		},
		{
			name:    "missing country code",
			mutate:  func(r *AdaptRequest) { r.CountryCode = "" },
			wantErr: ErrValidation,
		},
		{
			name:    "unknown product category",
			mutate:  func(r *AdaptRequest) { r.ProductCategory = "vehicles" },
			wantErr: ErrValidation,
		},
		{
			name:    "unknown price band",
			mutate:  func(r *AdaptRequest) { r.PriceBand = "free" },
			wantErr: ErrValidation,
		},
		{
			name:    "unknown audience",
			mutate:  func(r *AdaptRequest) { r.Audience = "robots" },
			wantErr: ErrValidation,
		},
		{
			name: "unknown override dimension rejected",
			mutate: func(r *AdaptRequest) {
				r.Overrides = map[Dimension]int{"shoe_size": 50}
			},
			wantErr: ErrInvalidOverride,
		},
		{
			name: "override above range rejected",
			mutate: func(r *AdaptRequest) {
				r.Overrides = map[Dimension]int{DimTrustNeed: 101}
			},
			wantErr: ErrInvalidOverride,
		},
		{
			name: "override below range rejected",
			mutate: func(r *AdaptRequest) {
				r.Overrides = map[Dimension]int{DimTrustNeed: -1}
			},
			wantErr: ErrInvalidOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			// Every rejected override is also a validation error.
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPredicateHolds(t *testing.T) {
	tests := []struct {
		name  string
		pred  Predicate
		value int
		want  bool
	}{
		{"at-least met on boundary", Predicate{OpAtLeast, 70}, 70, true},
		{"at-least met above", Predicate{OpAtLeast, 70}, 90, true},
		{"at-least not met", Predicate{OpAtLeast, 70}, 69, false},
		{"at-most met on boundary", Predicate{OpAtMost, 40}, 40, true},
		{"at-most not met", Predicate{OpAtMost, 40}, 41, false},
		{"unknown operator never holds", Predicate{"==", 50}, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred.Holds(tt.value))
		})
	}
}

func TestProfileValidate(t *testing.T) {
	full := func() *CulturalBehaviorProfile {
		p := &CulturalBehaviorProfile{
			CountryCode: "JP",
			Scores:      make(map[Dimension]DimensionScore),
		}
		for _, d := range AllDimensions() {
			p.Scores[d] = DimensionScore{Value: 50, Source: SourceRegionalPrior}
		}
		return p
	}

	t.Run("complete profile validates", func(t *testing.T) {
		assert.NoError(t, full().Validate())
	})

	t.Run("missing dimension rejected", func(t *testing.T) {
		p := full()
		delete(p.Scores, DimContextLevel)
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})

	t.Run("out-of-range score rejected", func(t *testing.T) {
		p := full()
		p.Scores[DimTrustNeed] = DimensionScore{Value: 120}
		assert.ErrorIs(t, p.Validate(), ErrValidation)
	})
}

func TestStageFailureClassification(t *testing.T) {
	err := NewStageFailure(StageCopy, "run-1", ErrGatewayTimeout)

	assert.ErrorIs(t, err, ErrPipelineFailed)
	assert.ErrorIs(t, err, ErrGatewayTimeout)
	assert.Contains(t, err.Error(), "copy_framing")
	assert.Contains(t, err.Error(), "run-1")
}
