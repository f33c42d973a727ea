package domain

// Severity grades a compliance risk flag.
type Severity string

// Risk flag severities, lowest to highest.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Weight returns the severity's contribution to the audit score penalty.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityLow:
		return 0.05
	case SeverityMedium:
		return 0.10
	case SeverityHigh:
		return 0.25
	case SeverityCritical:
		return 0.40
	default:
		return 0
	}
}

// RiskFlag is one compliance finding against a variant.
type RiskFlag struct {
	ID            string   `json:"id"`
	Severity      Severity `json:"severity"`
	Description   string   `json:"description"`
	AffectedField string   `json:"affected_field"`
	Remediation   string   `json:"remediation"`
}

// AuditResult is the compliance auditor's output. Score is in [0,1]:
// 1 minus the weighted sum of flag severities, floored at 0. Failing
// the threshold only sets Passed=false; withholding the variant is the
// caller's decision.
type AuditResult struct {
	Score     float64    `json:"score"`
	Flags     []RiskFlag `json:"flags"`
	Passed    bool       `json:"passed"`
	Threshold float64    `json:"threshold"`
	Summary   string     `json:"summary"`
}
