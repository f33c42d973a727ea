package domain

// Copy sources. The copy stage records which path produced its payload
// so audits can distinguish gateway output from templated fallback.
const (
	CopySourceGateway  = "gateway"
	CopySourceTemplate = "template"
)

// CopyElement is one piece of storefront copy with its traceable rationale.
type CopyElement struct {
	Text      string `json:"text"`
	Rationale string `json:"rationale"`
}

// Microcopy is a short copy element tied to a specific UI location.
type Microcopy struct {
	Location  string `json:"location"`
	Text      string `json:"text"`
	Rationale string `json:"rationale"`
}

// CopyPayload is the copy stage's output: framed CTAs, value
// proposition, urgency and social-proof text, plus location-bound
// microcopy. Every element carries a rationale; elements without one
// are flagged by the compliance auditor.
type CopyPayload struct {
	CTAPrimary       CopyElement `json:"cta_primary"`
	CTASecondary     CopyElement `json:"cta_secondary"`
	ValueProposition CopyElement `json:"value_proposition"`
	UrgencyText      CopyElement `json:"urgency_text"`
	SocialProofText  CopyElement `json:"social_proof_text"`
	Microcopy        []Microcopy `json:"microcopy,omitempty"`

	// Source is CopySourceGateway or CopySourceTemplate.
	Source string `json:"source"`
}

// Elements returns the named top-level copy elements for auditing.
func (c *CopyPayload) Elements() map[string]CopyElement {
	return map[string]CopyElement{
		"cta_primary":       c.CTAPrimary,
		"cta_secondary":     c.CTASecondary,
		"value_proposition": c.ValueProposition,
		"urgency_text":      c.UrgencyText,
		"social_proof_text": c.SocialProofText,
	}
}
