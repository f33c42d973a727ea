package services

import (
	"fmt"
	"strings"

	"github.com/culturebridge-labs/culturebridge/internal/catalog"
	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

// Default theme when no fired rule nominates one.
const themeBalanced = "balanced"

// defaultModules returns the unadapted module surfaces in stable order.
// Rule effects mutate these; untouched modules ship as-is.
func defaultModules() []domain.UXModule {
	return []domain.UXModule{
		{Name: "reviews", Enabled: true, Fields: map[string]string{
			"placement": "below_fold",
			"style":     "stars",
		}},
		{Name: "guarantees", Enabled: true, Fields: map[string]string{
			"prominence": "medium",
			"types":      "money_back,secure_payment",
		}},
		{Name: "shipping_info", Enabled: true, Fields: map[string]string{
			"placement":    "product_detail",
			"detail_level": "standard",
		}},
		{Name: "returns", Enabled: true, Fields: map[string]string{
			"prominence": "medium",
		}},
		{Name: "payment_options", Enabled: true, Fields: map[string]string{
			"show_installments":  "false",
			"emphasized_methods": "credit_card,debit_card",
		}},
		{Name: "social_proof", Enabled: false, Fields: map[string]string{
			"type":      "individual",
			"placement": "sidebar",
		}},
	}
}

// BuildUX applies the fired adaptations to the category's baseline
// storefront. Field changes apply in firing order, so when two rules
// set the same field the later firing wins and its rationale is the
// one recorded on the module. Trust modules keep first-mention order
// with duplicates dropped.
func BuildUX(baseline catalog.ProductBaseline, profile *domain.CulturalBehaviorProfile, fired []domain.FiredAdaptation) *domain.UXPayload {
	payload := &domain.UXPayload{
		Modules: defaultModules(),
	}

	var collapse, progress *domain.FiredAdaptation
	var themes []string
	seenTheme := make(map[string]bool)
	seenTrust := make(map[string]bool)

	for i := range fired {
		fa := &fired[i]

		for _, change := range fa.Effect.UX {
			mod := payload.Module(change.Module)
			if mod == nil {
				payload.Modules = append(payload.Modules, domain.UXModule{
					Name:   change.Module,
					Fields: make(map[string]string),
				})
				mod = &payload.Modules[len(payload.Modules)-1]
			}
			if change.Field == "enabled" {
				mod.Enabled = change.Value == "true"
			} else {
				mod.Fields[change.Field] = change.Value
			}
			mod.Rationale = fa.Rationale
		}

		for _, name := range fa.Effect.TrustModules {
			if !seenTrust[name] {
				seenTrust[name] = true
				payload.TrustModules = append(payload.TrustModules, name)
			}
		}

		if t := fa.Effect.Theme; t != "" && !seenTheme[t] {
			seenTheme[t] = true
			themes = append(themes, t)
		}

		switch fa.Effect.Flow {
		case domain.FlowActionCollapseCheckout:
			collapse = fa
		case domain.FlowActionProgressIndicator:
			progress = fa
		}
	}

	payload.Flow = buildFlow(baseline.Flow, collapse, progress)

	if len(themes) == 0 {
		payload.ThemeEmphasis = themeBalanced
	} else {
		payload.ThemeEmphasis = strings.Join(themes, ", ")
	}
	payload.Rationale = fmt.Sprintf("%d mapping rules applied for %s (%s)",
		len(fired), profile.CountryName, profile.CountryCode)
	return payload
}

// buildFlow copies the baseline flow and applies the structural flow
// actions: collapsing shipping+payment into a single express step, and
// attaching a progress indicator to the start of checkout.
func buildFlow(base []domain.FlowStep, collapse, progress *domain.FiredAdaptation) []domain.FlowStep {
	flow := make([]domain.FlowStep, 0, len(base))
	for _, step := range base {
		step.Adaptations = nil

		if collapse != nil && step.StepID == "shipping" {
			flow = append(flow, domain.FlowStep{
				StepID:      "express_checkout",
				Name:        "Express Checkout",
				Description: "Shipping and payment combined into one streamlined step",
				Adaptations: []domain.StepAdaptation{{
					Change:          "Combined shipping and payment steps",
					DimensionDriver: driver(collapse),
					Rationale:       collapse.Rationale,
				}},
			})
			continue
		}
		if collapse != nil && step.StepID == "payment" {
			continue
		}
		flow = append(flow, step)
	}

	if progress != nil {
		for i := range flow {
			if flow[i].StepID == "shipping" || flow[i].StepID == "express_checkout" {
				flow[i].Adaptations = append(flow[i].Adaptations, domain.StepAdaptation{
					Change:          "Added step progress indicator",
					DimensionDriver: driver(progress),
					Rationale:       progress.Rationale,
				})
				break
			}
		}
	}
	return flow
}

func driver(fa *domain.FiredAdaptation) string {
	return fmt.Sprintf("%s=%d", fa.Dimension, fa.Value)
}
