package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

func TestEvaluateFiresExpectedRuleSets(t *testing.T) {
	cat := loadCatalog(t)

	tests := []struct {
		country string
		want    []string
	}{
		{
			country: "JP",
			want: []string{
				"UA_HIGH_TRUST", "UA_HIGH_CLARITY", "COL_HIGH_SOCIAL",
				"CTX_HIGH_IMPLICIT", "TRUST_HIGH_GUARANTEES",
			},
		},
		{
			country: "DE",
			want: []string{
				"UA_HIGH_TRUST", "UA_HIGH_CLARITY", "COL_LOW_INDIVIDUAL",
				"CTX_LOW_EXPLICIT",
			},
		},
		{
			country: "GT",
			want: []string{
				"COL_HIGH_SOCIAL", "AUTH_HIGH_SIGNALS", "CTX_HIGH_IMPLICIT",
				"PRICE_HIGH_VALUE", "TRUST_HIGH_GUARANTEES", "FRIC_LOW_STREAMLINE",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			fired := evaluate(t, cat, tt.country)
			assert.Equal(t, tt.want, firedIDs(fired))
		})
	}
}

func TestEvaluateOrderIndependentOfInput(t *testing.T) {
	cat := loadCatalog(t)
	profile := resolveProfile(t, cat, "JP", nil)

	rules := cat.Rules()
	reversed := make([]domain.MappingRule, len(rules))
	for i, rule := range rules {
		reversed[len(rules)-1-i] = rule
	}

	a := NewRuleEngine(rules).Evaluate(profile)
	b := NewRuleEngine(reversed).Evaluate(profile)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("evaluation order depends on input order (-ordered +reversed):\n%s", diff)
	}
}

func TestEvaluateIsReproducible(t *testing.T) {
	cat := loadCatalog(t)
	profile := resolveProfile(t, cat, "GT", nil)
	engine := NewRuleEngine(cat.Rules())

	first := engine.Evaluate(profile)
	second := engine.Evaluate(profile)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("identical inputs diverged (-first +second):\n%s", diff)
	}
}

func TestFiredAdaptationCarriesResolvedRationale(t *testing.T) {
	cat := loadCatalog(t)

	fired := evaluate(t, cat, "JP")
	require.NotEmpty(t, fired)

	assert.Equal(t, "UA_HIGH_TRUST", fired[0].RuleID)
	assert.Equal(t, 82, fired[0].Value)
	assert.Contains(t, fired[0].Rationale, "uncertainty_avoidance=82")
	assert.InDelta(t, 0.05, fired[0].LiftFactor, 1e-9)
}

func TestPredicateBoundariesFire(t *testing.T) {
	cat := loadCatalog(t)

	// trust_need >= 75 fires exactly at the boundary (GT prior is 75).
	fired := evaluate(t, cat, "GT")
	assert.Contains(t, firedIDs(fired), "TRUST_HIGH_GUARANTEES")
}
