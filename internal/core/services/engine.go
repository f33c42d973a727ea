package services

import (
	"sort"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// RuleEngine evaluates the fixed mapping rule set against a profile.
// It is a pure, side-effect-free function of (profile, rule set):
// identical inputs always produce identical, identically ordered
// output, which audits rely on for reproducibility.
type RuleEngine struct {
	rules []domain.MappingRule
}

// NewRuleEngine creates an engine over an immutable rule set. The
// rules are copied and sorted into the total evaluation order
// (priority ascending, ID ascending on ties) so callers may pass
// rules in any order.
func NewRuleEngine(rules []domain.MappingRule) *RuleEngine {
	sorted := make([]domain.MappingRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})
	return &RuleEngine{rules: sorted}
}

// Evaluate returns a FiredAdaptation for every rule whose predicate
// holds, in evaluation order. Rules fire independently; multiple rules
// touching the same UX surface are not deduplicated here. Conflict
// resolution belongs to the consuming UX stage.
func (e *RuleEngine) Evaluate(profile *domain.CulturalBehaviorProfile) []domain.FiredAdaptation {
	fired := make([]domain.FiredAdaptation, 0, len(e.rules))
	for _, rule := range e.rules {
		value := profile.Score(rule.Dimension)
		if !rule.Predicate.Holds(value) {
			continue
		}
		fired = append(fired, domain.FiredAdaptation{
			RuleID:     rule.ID,
			Dimension:  rule.Dimension,
			Value:      value,
			Rationale:  rule.ResolveRationale(value),
			Effect:     rule.Effect,
			LiftFactor: rule.LiftFactor,
		})
	}
	return fired
}
