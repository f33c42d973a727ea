package domain

import "fmt"

// PredicateOp is a threshold comparison operator.
type PredicateOp string

// The two supported threshold operators.
const (
	OpAtLeast PredicateOp = ">="
	OpAtMost  PredicateOp = "<="
)

// IsValid returns true if the operator is recognised.
func (op PredicateOp) IsValid() bool {
	return op == OpAtLeast || op == OpAtMost
}

// Predicate is a threshold test over one dimension's score.
type Predicate struct {
	Op        PredicateOp `json:"op"`
	Threshold int         `json:"threshold"`
}

// Holds reports whether the score satisfies the predicate.
func (p Predicate) Holds(value int) bool {
	switch p.Op {
	case OpAtLeast:
		return value >= p.Threshold
	case OpAtMost:
		return value <= p.Threshold
	default:
		return false
	}
}

// String renders the predicate in rule-definition form, e.g. ">=70".
func (p Predicate) String() string {
	return fmt.Sprintf("%s%d", p.Op, p.Threshold)
}

// UXFieldChange sets one field on one UX module surface.
// Multiple rules may target the same field; the UX stage applies
// changes in firing order and lets later changes win.
type UXFieldChange struct {
	Module string `json:"module"`
	Field  string `json:"field"`
	Value  string `json:"value"`
}

// CopyDirective steers the framing of one copy element.
type CopyDirective struct {
	Element string `json:"element"`
	Framing string `json:"framing"`
}

// FlowAction identifies a structural change to the checkout flow.
type FlowAction string

// Flow actions a rule effect may request.
const (
	FlowActionNone              FlowAction = ""
	FlowActionCollapseCheckout  FlowAction = "collapse_shipping_payment"
	FlowActionProgressIndicator FlowAction = "add_progress_indicator"
)

// RuleEffect is the structured payload a fired rule contributes:
// UX field settings, copy framing directives, at most one structural
// flow action, and an optional theme emphasis token.
type RuleEffect struct {
	UX           []UXFieldChange `json:"ux,omitempty"`
	Copy         []CopyDirective `json:"copy,omitempty"`
	Flow         FlowAction      `json:"flow,omitempty"`
	TrustModules []string        `json:"trust_modules,omitempty"`

	// Theme nominates a theme emphasis token for the variant. The UX
	// stage joins distinct tokens in firing order.
	Theme string `json:"theme,omitempty"`
}

// MappingRule is one immutable dimension→UX mapping rule. Rules are
// loaded once at process start and never mutated at runtime.
type MappingRule struct {
	ID        string    `json:"id"`
	Dimension Dimension `json:"dimension"`
	Predicate Predicate `json:"predicate"`

	// Priority orders evaluation, ascending; ties break by ID, ascending.
	Priority int `json:"priority"`

	Effect RuleEffect `json:"effect"`

	// LiftFactor is this rule's contribution to the heuristic lift model.
	LiftFactor float64 `json:"lift_factor"`

	// Rationale is a template with one %d verb for the triggering score.
	Rationale string `json:"rationale"`
}

// ResolveRationale renders the rule's rationale template against the
// score that satisfied it.
func (r MappingRule) ResolveRationale(value int) string {
	return fmt.Sprintf(r.Rationale, value)
}

// FiredAdaptation pairs a rule with the profile value that satisfied it
// and the resolved rationale text. Produced per pipeline run, never
// persisted independently of its VariantSpec.
type FiredAdaptation struct {
	RuleID     string     `json:"rule_id"`
	Dimension  Dimension  `json:"dimension"`
	Value      int        `json:"value"`
	Rationale  string     `json:"rationale"`
	Effect     RuleEffect `json:"effect"`
	LiftFactor float64    `json:"lift_factor"`
}
