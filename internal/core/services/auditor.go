package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// AuditorConfig tunes the compliance auditor. Zero values are replaced
// by DefaultAuditorConfig's values on construction.
type AuditorConfig struct {
	// Threshold is the minimum passing score.
	Threshold float64

	// Denylist holds stereotype terms that must never appear in
	// generated copy. Matching is case-insensitive substring.
	Denylist []string

	// MaxDimensionShare caps the fraction of fired adaptations one
	// dimension may account for before an over-emphasis flag is raised.
	MaxDimensionShare float64

	// MinFiredForShare is the minimum fired-rule count before the
	// share check applies; tiny rule sets trip it trivially.
	MinFiredForShare int
}

// DefaultAuditorConfig returns the standard audit policy.
func DefaultAuditorConfig() AuditorConfig {
	return AuditorConfig{
		Threshold: 0.75,
		Denylist: []string{
			"exotic", "oriental", "primitive", "backward",
			"lazy", "submissive", "inscrutable",
		},
		MaxDimensionShare: 0.5,
		MinFiredForShare:  3,
	}
}

// essentializingPatterns are phrasings that present a population-level
// tendency as a universal trait. Matching is case-insensitive.
var essentializingPatterns = []string{
	"always", "never", "all people in", "everyone in",
	"they all", "typical of",
}

// strictPenalty is the flat score deduction strict mode applies on top
// of the per-flag weights.
const strictPenalty = 0.10

// Auditor scores a completed pipeline state against the compliance
// policy. Auditing is advisory: a failing score is recorded on the
// variant, never used to withhold it.
type Auditor struct {
	cfg AuditorConfig
}

// NewAuditor creates an auditor, filling unset config fields from
// DefaultAuditorConfig.
func NewAuditor(cfg AuditorConfig) *Auditor {
	def := DefaultAuditorConfig()
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Denylist == nil {
		cfg.Denylist = def.Denylist
	}
	if cfg.MaxDimensionShare == 0 {
		cfg.MaxDimensionShare = def.MaxDimensionShare
	}
	if cfg.MinFiredForShare == 0 {
		cfg.MinFiredForShare = def.MinFiredForShare
	}
	return &Auditor{cfg: cfg}
}

// Audit runs every check over the state's copy and adaptations. Strict
// mode raises essentializing findings from medium to high severity and
// applies a flat extra penalty, for pre-launch reviews.
func (a *Auditor) Audit(state *domain.PipelineState, strict bool) *domain.AuditResult {
	var flags []domain.RiskFlag
	add := func(severity domain.Severity, description, field, remediation string) {
		flags = append(flags, domain.RiskFlag{
			ID:            fmt.Sprintf("FLAG_%03d", len(flags)+1),
			Severity:      severity,
			Description:   description,
			AffectedField: field,
			Remediation:   remediation,
		})
	}

	essentializingSeverity := domain.SeverityMedium
	if strict {
		essentializingSeverity = domain.SeverityHigh
	}

	checkText := func(field, text string) {
		lower := strings.ToLower(text)
		for _, term := range a.cfg.Denylist {
			if strings.Contains(lower, term) {
				add(domain.SeverityHigh,
					fmt.Sprintf("copy contains denylisted stereotype term %q", term),
					field,
					"remove or replace the flagged term")
			}
		}
		for _, pattern := range essentializingPatterns {
			if strings.Contains(lower, pattern) {
				add(essentializingSeverity,
					fmt.Sprintf("copy presents a population tendency as universal (%q)", pattern),
					field,
					"reword to describe a tendency, not a universal trait")
			}
		}
	}

	if state.Copy != nil {
		names := make([]string, 0, 5)
		elements := state.Copy.Elements()
		for name := range elements {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			el := elements[name]
			checkText(name, el.Text)
			if el.Text != "" && el.Rationale == "" {
				add(domain.SeverityMedium,
					"copy element has no traceable rationale",
					name,
					"record the dimension-driven reasoning for this text")
			}
		}
		for i, mc := range state.Copy.Microcopy {
			field := fmt.Sprintf("microcopy[%d]:%s", i, mc.Location)
			checkText(field, mc.Text)
			if mc.Rationale == "" {
				add(domain.SeverityMedium,
					"microcopy has no traceable rationale",
					field,
					"record the dimension-driven reasoning for this text")
			}
		}
	}

	for _, fa := range state.Fired {
		if fa.Rationale == "" {
			add(domain.SeverityMedium,
				"fired adaptation has no rationale",
				fa.RuleID,
				"set a rationale template on the mapping rule")
		}
	}
	if state.UX != nil {
		for _, step := range state.UX.Flow {
			for _, sa := range step.Adaptations {
				if sa.DimensionDriver == "" {
					add(domain.SeverityMedium,
						"flow adaptation is not traceable to a dimension",
						step.StepID,
						"record the driving dimension and score")
				}
			}
		}
	}

	if n := len(state.Fired); n >= a.cfg.MinFiredForShare {
		counts := make(map[domain.Dimension]int)
		for _, fa := range state.Fired {
			counts[fa.Dimension]++
		}
		for _, dim := range domain.AllDimensions() {
			count := counts[dim]
			if float64(count)/float64(n) > a.cfg.MaxDimensionShare {
				add(domain.SeverityLow,
					fmt.Sprintf("%d of %d adaptations driven by %s", count, n, dim),
					"fired_adaptations",
					"review whether a single dimension should dominate the variant")
			}
		}
	}

	score := 1.0
	for _, f := range flags {
		score -= f.Severity.Weight()
	}
	if strict {
		score -= strictPenalty
	}
	if score < 0 {
		score = 0
	}

	result := &domain.AuditResult{
		Score:     score,
		Flags:     flags,
		Passed:    score >= a.cfg.Threshold,
		Threshold: a.cfg.Threshold,
	}
	mode := "standard"
	if strict {
		mode = "strict"
	}
	verdict := "passed"
	if !result.Passed {
		verdict = "failed"
	}
	result.Summary = fmt.Sprintf("%s audit %s with score %.2f (%d flags, threshold %.2f)",
		mode, verdict, score, len(flags), a.cfg.Threshold)
	return result
}
