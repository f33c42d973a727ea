package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// cleanState builds a full JP pipeline state through the template copy
// path, which carries rationales everywhere and no flagged language.
func cleanState(t *testing.T) *domain.PipelineState {
	t.Helper()
	cat := loadCatalog(t)
	profile := resolveProfile(t, cat, "JP", nil)
	fired := NewRuleEngine(cat.Rules()).Evaluate(profile)
	baseline, ok := cat.Baseline(domain.CategoryElectronics)
	require.True(t, ok)

	return &domain.PipelineState{
		RunID:   "run-test",
		Profile: profile,
		Fired:   fired,
		UX:      BuildUX(baseline, profile, fired),
		Copy:    TemplateCopy(baseline.Copy, fired),
	}
}

func TestAuditCleanVariantScoresFull(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})

	result := auditor.Audit(cleanState(t), false)

	assert.Empty(t, result.Flags)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
	assert.True(t, result.Passed)
	assert.InDelta(t, 0.75, result.Threshold, 1e-9)
	assert.Contains(t, result.Summary, "passed")
}

func TestAuditFlagsDenylistedTerm(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	state := cleanState(t)
	state.Copy.ValueProposition.Text = "An exotic find for adventurous shoppers"

	result := auditor.Audit(state, false)

	require.Len(t, result.Flags, 1)
	assert.Equal(t, domain.SeverityHigh, result.Flags[0].Severity)
	assert.Equal(t, "value_proposition", result.Flags[0].AffectedField)
	assert.InDelta(t, 0.75, result.Score, 1e-9)
}

func TestAuditFlagsEssentializingLanguage(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	state := cleanState(t)
	state.Copy.SocialProofText.Text = "Everyone in Japan shops this way"

	result := auditor.Audit(state, false)

	require.Len(t, result.Flags, 1)
	assert.Equal(t, domain.SeverityMedium, result.Flags[0].Severity)
	assert.InDelta(t, 0.90, result.Score, 1e-9)
	assert.True(t, result.Passed)
}

func TestAuditStrictModeRaisesSeverityAndPenalty(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	state := cleanState(t)
	state.Copy.SocialProofText.Text = "Everyone in Japan shops this way"

	result := auditor.Audit(state, true)

	require.Len(t, result.Flags, 1)
	assert.Equal(t, domain.SeverityHigh, result.Flags[0].Severity)
	// 1.0 - 0.25 (high) - 0.10 (strict penalty) = 0.65, below threshold.
	assert.InDelta(t, 0.65, result.Score, 1e-9)
	assert.False(t, result.Passed)
}

func TestAuditStrictModeOnCleanVariant(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})

	result := auditor.Audit(cleanState(t), true)

	assert.Empty(t, result.Flags)
	assert.InDelta(t, 0.90, result.Score, 1e-9)
	assert.True(t, result.Passed)
}

func TestAuditFlagsMissingRationales(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	state := cleanState(t)
	state.Copy.CTAPrimary.Rationale = ""
	state.Fired[0].Rationale = ""

	result := auditor.Audit(state, false)

	require.Len(t, result.Flags, 2)
	for _, flag := range result.Flags {
		assert.Equal(t, domain.SeverityMedium, flag.Severity)
	}
	assert.InDelta(t, 0.80, result.Score, 1e-9)
}

func TestAuditFlagsUntraceableFlowAdaptation(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	state := cleanState(t)
	require.NotEmpty(t, state.UX.Flow)
	for i := range state.UX.Flow {
		if len(state.UX.Flow[i].Adaptations) > 0 {
			state.UX.Flow[i].Adaptations[0].DimensionDriver = ""
			break
		}
	}

	result := auditor.Audit(state, false)

	require.Len(t, result.Flags, 1)
	assert.Equal(t, domain.SeverityMedium, result.Flags[0].Severity)
}

func TestAuditFlagsDisproportionateEmphasis(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	fired := []domain.FiredAdaptation{
		{RuleID: "A", Dimension: domain.DimTrustNeed, Rationale: "trust_need=80: a"},
		{RuleID: "B", Dimension: domain.DimTrustNeed, Rationale: "trust_need=80: b"},
		{RuleID: "C", Dimension: domain.DimTrustNeed, Rationale: "trust_need=80: c"},
		{RuleID: "D", Dimension: domain.DimCollectivism, Rationale: "collectivism=70: d"},
	}
	state := &domain.PipelineState{RunID: "run-test", Fired: fired}

	result := auditor.Audit(state, false)

	require.Len(t, result.Flags, 1)
	assert.Equal(t, domain.SeverityLow, result.Flags[0].Severity)
	assert.Equal(t, "fired_adaptations", result.Flags[0].AffectedField)
}

func TestAuditShareCheckSkipsSmallFiredSets(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	fired := []domain.FiredAdaptation{
		{RuleID: "A", Dimension: domain.DimTrustNeed, Rationale: "trust_need=80: a"},
		{RuleID: "B", Dimension: domain.DimTrustNeed, Rationale: "trust_need=80: b"},
	}
	state := &domain.PipelineState{RunID: "run-test", Fired: fired}

	result := auditor.Audit(state, false)
	assert.Empty(t, result.Flags)
}

func TestAuditScoreFloorsAtZero(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	state := cleanState(t)
	state.Copy.CTAPrimary.Text = "exotic oriental primitive"
	state.Copy.ValueProposition.Text = "backward and lazy"

	result := auditor.Audit(state, false)

	assert.GreaterOrEqual(t, len(result.Flags), 5)
	assert.InDelta(t, 0.0, result.Score, 1e-9)
	assert.False(t, result.Passed)
}

func TestAuditNeverExceedsBounds(t *testing.T) {
	auditor := NewAuditor(AuditorConfig{})
	state := cleanState(t)

	for _, strict := range []bool{false, true} {
		result := auditor.Audit(state, strict)
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 1.0)
	}
}
