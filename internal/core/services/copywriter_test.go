package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driven"
)

func TestTemplateCopyKeepsBaselineWhenNothingFires(t *testing.T) {
	cat := loadCatalog(t)
	baseline, ok := cat.Baseline(domain.CategoryElectronics)
	require.True(t, ok)

	payload := TemplateCopy(baseline.Copy, nil)

	assert.Equal(t, domain.CopySourceTemplate, payload.Source)
	assert.Equal(t, "Add to Cart", payload.CTAPrimary.Text)
	assert.Equal(t, baselineCopyRationale, payload.CTAPrimary.Rationale)
	assert.Equal(t, "Latest technology, fully warrantied", payload.ValueProposition.Text)
	assert.Empty(t, payload.Microcopy)
}

func TestTemplateCopyAppliesFramingDirectives(t *testing.T) {
	cat := loadCatalog(t)
	baseline, ok := cat.Baseline(domain.CategoryElectronics)
	require.True(t, ok)
	fired := evaluate(t, cat, "JP")

	payload := TemplateCopy(baseline.Copy, fired)

	// COL_HIGH_SOCIAL frames cta_primary as group validation.
	assert.Equal(t, "Join thousands of buyers: Add to Cart", payload.CTAPrimary.Text)
	assert.Contains(t, payload.CTAPrimary.Rationale, "collectivism=78")

	// CTX_HIGH_IMPLICIT frames the value proposition ambiently.
	assert.Equal(t, "Quality you can feel, service you can rely on", payload.ValueProposition.Text)

	// TRUST_HIGH_GUARANTEES frames urgency as reassurance.
	assert.Contains(t, payload.UrgencyText.Text, "covered by our guarantee")

	// cta_secondary had no directive and keeps the baseline.
	assert.Equal(t, "Save for Later", payload.CTASecondary.Text)
	assert.Equal(t, baselineCopyRationale, payload.CTASecondary.Rationale)
}

func TestTemplateCopyLastDirectiveWins(t *testing.T) {
	cat := loadCatalog(t)
	baseline, ok := cat.Baseline(domain.CategoryElectronics)
	require.True(t, ok)

	fired := []domain.FiredAdaptation{
		{
			RuleID:    "FIRST",
			Dimension: domain.DimAuthorityDistance,
			Value:     70,
			Rationale: "authority_distance=70: first",
			Effect: domain.RuleEffect{Copy: []domain.CopyDirective{
				{Element: "value_proposition", Framing: "authority"},
			}},
		},
		{
			RuleID:    "SECOND",
			Dimension: domain.DimPriceSensitivity,
			Value:     80,
			Rationale: "price_sensitivity=80: second",
			Effect: domain.RuleEffect{Copy: []domain.CopyDirective{
				{Element: "value_proposition", Framing: "value"},
			}},
		},
	}
	payload := TemplateCopy(baseline.Copy, fired)

	assert.Equal(t, "Premium quality at the best available price", payload.ValueProposition.Text)
	assert.Equal(t, "price_sensitivity=80: second", payload.ValueProposition.Rationale)
}

func TestTemplateMicrocopyDerivesFromFiredDimensions(t *testing.T) {
	cat := loadCatalog(t)
	fired := evaluate(t, cat, "JP")

	microcopy := templateMicrocopy(fired)

	locations := make([]string, len(microcopy))
	for i, mc := range microcopy {
		locations[i] = mc.Location
		assert.NotEmpty(t, mc.Text)
		assert.NotEmpty(t, mc.Rationale)
	}
	// JP fires uncertainty_avoidance and trust_need rules, not price.
	assert.Contains(t, locations, "trust_badge")
	assert.Contains(t, locations, "checkout_button")
	assert.NotContains(t, locations, "price_area")
}

func TestValidateFramedCopy(t *testing.T) {
	complete := func() driven.FramedCopyResult {
		el := domain.CopyElement{Text: "t", Rationale: "r"}
		return driven.FramedCopyResult{
			CTAPrimary: el, CTASecondary: el, ValueProposition: el,
			UrgencyText: el, SocialProofText: el,
			Microcopy: []domain.Microcopy{{Location: "checkout_button", Text: "t", Rationale: "r"}},
		}
	}

	t.Run("complete response passes", func(t *testing.T) {
		res := complete()
		assert.NoError(t, validateFramedCopy(&res))
	})

	t.Run("missing text is a schema violation", func(t *testing.T) {
		res := complete()
		res.CTAPrimary.Text = ""
		assert.ErrorIs(t, validateFramedCopy(&res), domain.ErrGatewaySchema)
	})

	t.Run("missing rationale is a schema violation", func(t *testing.T) {
		res := complete()
		res.UrgencyText.Rationale = ""
		assert.ErrorIs(t, validateFramedCopy(&res), domain.ErrGatewaySchema)
	})

	t.Run("incomplete microcopy is a schema violation", func(t *testing.T) {
		res := complete()
		res.Microcopy[0].Location = ""
		assert.ErrorIs(t, validateFramedCopy(&res), domain.ErrGatewaySchema)
	})
}
