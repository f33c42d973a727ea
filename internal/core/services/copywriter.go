package services

import (
	"fmt"

	"github.com/culturebridge-labs/culturebridge/internal/catalog"
	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driven"
)

// Rationale recorded on copy elements the template path left unchanged.
const baselineCopyRationale = "Baseline copy retained; no dimension-driven change indicated."

// framedTemplates maps (element, framing) to deterministic replacement
// text. The template path is the guaranteed-available fallback when the
// inference gateway is absent or failing, so every framing a mapping
// rule can emit must have an entry here.
var framedTemplates = map[string]map[string]string{
	"cta_primary": {
		"group_validation":  "Join thousands of buyers: Add to Cart",
		"explicit_benefits": "Add to Cart with free shipping and 30-day returns",
	},
	"cta_secondary": {
		"individual": "Save to your wishlist",
	},
	"value_proposition": {
		"authority":     "Recommended by experts and certified for quality",
		"ambient":       "Quality you can feel, service you can rely on",
		"specification": "Full specifications, terms, and delivery details stated upfront",
		"value":         "Premium quality at the best available price",
	},
	"urgency_text": {
		"reassurance": "Order with confidence: every purchase is covered by our guarantee",
	},
	"social_proof_text": {
		"community":   "Chosen by a community of 25,000+ verified buyers, rated 4.8/5",
		"independent": "Independently reviewed and rated 4.8/5",
	},
}

// TemplateCopy produces the rule-driven copy payload without any
// gateway involvement. For each element the last fired directive wins;
// elements no directive touched keep their baseline text with a
// baseline rationale so the audit trail stays complete.
func TemplateCopy(baseline catalog.BaselineCopy, fired []domain.FiredAdaptation) *domain.CopyPayload {
	type pick struct {
		framing   string
		rationale string
	}
	picks := make(map[string]pick)
	for _, fa := range fired {
		for _, d := range fa.Effect.Copy {
			picks[d.Element] = pick{framing: d.Framing, rationale: fa.Rationale}
		}
	}

	element := func(name, baseText string) domain.CopyElement {
		p, ok := picks[name]
		if !ok {
			return domain.CopyElement{Text: baseText, Rationale: baselineCopyRationale}
		}
		text, ok := framedTemplates[name][p.framing]
		if !ok {
			// A rule requested a framing the template table lacks.
			// Keep the baseline text but preserve the rule's rationale.
			return domain.CopyElement{Text: baseText, Rationale: p.rationale}
		}
		return domain.CopyElement{Text: text, Rationale: p.rationale}
	}

	return &domain.CopyPayload{
		CTAPrimary:       element("cta_primary", baseline.CTAPrimary),
		CTASecondary:     element("cta_secondary", baseline.CTASecondary),
		ValueProposition: element("value_proposition", baseline.ValueProposition),
		UrgencyText:      element("urgency_text", baseline.UrgencyText),
		SocialProofText:  element("social_proof_text", baseline.SocialProofText),
		Microcopy:        templateMicrocopy(fired),
		Source:           domain.CopySourceTemplate,
	}
}

// templateMicrocopy derives location-bound microcopy from the fired
// dimensions. Each entry traces back to the rule that motivated it.
func templateMicrocopy(fired []domain.FiredAdaptation) []domain.Microcopy {
	var out []domain.Microcopy
	seen := make(map[domain.Dimension]bool)
	for _, fa := range fired {
		if seen[fa.Dimension] {
			continue
		}
		seen[fa.Dimension] = true

		switch fa.Dimension {
		case domain.DimTrustNeed:
			out = append(out, domain.Microcopy{
				Location:  "checkout_button",
				Text:      "Secure checkout. Your information is protected.",
				Rationale: fa.Rationale,
			})
		case domain.DimUncertaintyAvoidance:
			out = append(out, domain.Microcopy{
				Location:  "trust_badge",
				Text:      "Money-back guarantee. Verified seller. Secure payment.",
				Rationale: fa.Rationale,
			})
		case domain.DimPriceSensitivity:
			out = append(out, domain.Microcopy{
				Location:  "price_area",
				Text:      "Best price guarantee: we match any lower price.",
				Rationale: fa.Rationale,
			})
		}
	}
	return out
}

// validateFramedCopy checks that a gateway copy response carries every
// required element with both text and rationale. An incomplete response
// is a schema violation and triggers the template fallback.
func validateFramedCopy(res *driven.FramedCopyResult) error {
	elements := map[string]domain.CopyElement{
		"cta_primary":       res.CTAPrimary,
		"cta_secondary":     res.CTASecondary,
		"value_proposition": res.ValueProposition,
		"urgency_text":      res.UrgencyText,
		"social_proof_text": res.SocialProofText,
	}
	for name, el := range elements {
		if el.Text == "" {
			return fmt.Errorf("%w: element %s has no text", domain.ErrGatewaySchema, name)
		}
		if el.Rationale == "" {
			return fmt.Errorf("%w: element %s has no rationale", domain.ErrGatewaySchema, name)
		}
	}
	for i, mc := range res.Microcopy {
		if mc.Location == "" || mc.Text == "" {
			return fmt.Errorf("%w: microcopy entry %d incomplete", domain.ErrGatewaySchema, i)
		}
	}
	return nil
}
