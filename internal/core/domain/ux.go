package domain

// StepAdaptation records one rule-driven change to a flow step.
type StepAdaptation struct {
	Change          string `json:"change"`
	DimensionDriver string `json:"dimension_driver"`
	Rationale       string `json:"rationale"`
}

// FlowStep is one step of the adapted checkout flow.
type FlowStep struct {
	StepID      string           `json:"step_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Adaptations []StepAdaptation `json:"adaptations,omitempty"`
}

// UXModule is one adaptable storefront surface (reviews, guarantees,
// shipping info, returns, payment options, social proof). Fields holds
// the surface's settings; overlapping rule effects resolve last-fired-wins.
type UXModule struct {
	Name      string            `json:"name"`
	Enabled   bool              `json:"enabled"`
	Fields    map[string]string `json:"fields,omitempty"`
	Rationale string            `json:"rationale,omitempty"`
}

// UXPayload is the UX stage's output: the checkout flow ordering, the
// adapted module surfaces, and the ordered trust-module placement list.
type UXPayload struct {
	ThemeEmphasis string     `json:"theme_emphasis"`
	Flow          []FlowStep `json:"flow"`
	Modules       []UXModule `json:"modules"`
	TrustModules  []string   `json:"trust_modules,omitempty"`
	Rationale     string     `json:"rationale"`
}

// Module returns a pointer to the named module, or nil.
func (u *UXPayload) Module(name string) *UXModule {
	for i := range u.Modules {
		if u.Modules[i].Name == name {
			return &u.Modules[i]
		}
	}
	return nil
}
