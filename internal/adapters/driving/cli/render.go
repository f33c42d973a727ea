package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// Terminal styles for human-readable output. JSON output paths bypass
// these entirely.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func renderHeader(title string) string {
	return headerStyle.Render(title)
}

func renderLabel(label string) string {
	return labelStyle.Render(label + ":")
}

func renderPassFail(passed bool) string {
	if passed {
		return passStyle.Render("PASS")
	}
	return failStyle.Render("FAIL")
}

func renderSeverity(severity domain.Severity) string {
	switch severity {
	case domain.SeverityHigh, domain.SeverityCritical:
		return failStyle.Render(string(severity))
	case domain.SeverityMedium:
		return warnStyle.Render(string(severity))
	default:
		return string(severity)
	}
}

func renderAudit(result *domain.AuditResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  score %.2f (threshold %.2f)\n",
		renderLabel("Audit"), renderPassFail(result.Passed), result.Score, result.Threshold)
	if len(result.Flags) == 0 {
		b.WriteString(dimStyle.Render("  no risk flags") + "\n")
		return b.String()
	}
	for _, flag := range result.Flags {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", renderSeverity(flag.Severity), flag.ID, flag.Description)
		fmt.Fprintf(&b, "      field: %s\n", flag.AffectedField)
		if flag.Remediation != "" {
			fmt.Fprintf(&b, "      remediation: %s\n", flag.Remediation)
		}
	}
	return b.String()
}

func renderLift(lift *domain.LiftPrediction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %+.1f%% %s (interval %+.1f%% to %+.1f%%, confidence %s)\n",
		renderLabel("Predicted lift"),
		lift.Lift*100, lift.Metric,
		lift.IntervalLow*100, lift.IntervalHigh*100,
		lift.Confidence)
	fmt.Fprintf(&b, "  baseline %.2f%% predicted %.2f%% from %d fired rules\n",
		lift.Baseline, lift.Predicted, lift.RuleCount)
	b.WriteString(dimStyle.Render("  simulated estimate, not a measured result") + "\n")
	return b.String()
}

func renderVariant(spec *domain.VariantSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", renderHeader("Variant "+spec.ID))
	fmt.Fprintf(&b, "%s %s (%s)\n", renderLabel("Market"),
		spec.State.Profile.CountryName, spec.State.Profile.CountryCode)
	fmt.Fprintf(&b, "%s %s / %s / %s\n", renderLabel("Request"),
		spec.State.Request.ProductCategory, spec.State.Request.PriceBand, spec.State.Request.Audience)
	fmt.Fprintf(&b, "%s %s\n", renderLabel("Theme"), spec.State.UX.ThemeEmphasis)
	if spec.State.Profile.Narrative != "" {
		fmt.Fprintf(&b, "%s %s\n", renderLabel("Narrative"), spec.State.Profile.Narrative)
	}

	fmt.Fprintf(&b, "\n%s\n", renderLabel("Fired rules"))
	if len(spec.State.Fired) == 0 {
		b.WriteString(dimStyle.Render("  none; baseline storefront retained") + "\n")
	}
	for _, fa := range spec.State.Fired {
		fmt.Fprintf(&b, "  %-22s %s=%d (lift %+.0f%%)\n",
			fa.RuleID, fa.Dimension, fa.Value, fa.LiftFactor*100)
		fmt.Fprintf(&b, "      %s\n", dimStyle.Render(fa.Rationale))
	}

	fmt.Fprintf(&b, "\n%s ", renderLabel("Checkout flow"))
	steps := make([]string, len(spec.State.UX.Flow))
	for i, step := range spec.State.UX.Flow {
		steps[i] = step.StepID
	}
	b.WriteString(strings.Join(steps, " > ") + "\n")

	fmt.Fprintf(&b, "\n%s %s (%s)\n", renderLabel("Copy"),
		spec.State.Copy.CTAPrimary.Text, spec.State.Copy.Source)

	b.WriteString("\n" + renderAudit(spec.State.Audit))
	b.WriteString("\n" + renderLift(spec.State.Lift))
	return b.String()
}
