// Package catalog loads the process-wide adaptation configuration:
// regional cultural priors, the dimension→UX mapping rule set, and
// product baselines. The catalog is an immutable value loaded once at
// startup and passed explicitly into each component, which makes
// unsynchronised concurrent reads safe and unit tests deterministic
// with injected fixture catalogs.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

//go:embed data/catalog.json
var embeddedCatalog []byte

// RegionalPrior holds the stored dimension scores for one country.
type RegionalPrior struct {
	CountryCode string                   `json:"-"`
	CountryName string                   `json:"country_name"`
	Dimensions  map[domain.Dimension]int `json:"dimensions"`
	Notes       string                   `json:"notes"`
}

// BaselineCopy is the unadapted storefront copy for a category.
type BaselineCopy struct {
	CTAPrimary       string `json:"cta_primary"`
	CTASecondary     string `json:"cta_secondary"`
	ValueProposition string `json:"value_proposition"`
	UrgencyText      string `json:"urgency_text"`
	SocialProofText  string `json:"social_proof_text"`
}

// ProductBaseline is the unadapted storefront specification for one
// product category.
type ProductBaseline struct {
	BaselineConversion float64           `json:"baseline_conversion"`
	Flow               []domain.FlowStep `json:"flow"`
	Copy               BaselineCopy      `json:"copy"`
}

// Catalog is the loaded configuration. Never mutated after Load.
type Catalog struct {
	priors    map[string]RegionalPrior
	rules     []domain.MappingRule
	baselines map[domain.ProductCategory]ProductBaseline
}

type catalogFile struct {
	RegionalPriors   map[string]RegionalPrior                   `json:"regional_priors"`
	MappingRules     []domain.MappingRule                       `json:"mapping_rules"`
	ProductBaselines map[domain.ProductCategory]ProductBaseline `json:"product_baselines"`
}

// Load parses and validates a catalog from JSON bytes. The rule set is
// sorted once here into its total evaluation order (priority ascending,
// ID ascending on ties) so every consumer sees the same order.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	for code, prior := range file.RegionalPriors {
		prior.CountryCode = code
		for dim, value := range prior.Dimensions {
			if !dim.IsValid() {
				return nil, fmt.Errorf("catalog: prior %s has unknown dimension %q", code, dim)
			}
			if !domain.ValidScore(value) {
				return nil, fmt.Errorf("catalog: prior %s dimension %s value %d out of range", code, dim, value)
			}
		}
		for _, dim := range domain.AllDimensions() {
			if _, ok := prior.Dimensions[dim]; !ok {
				return nil, fmt.Errorf("catalog: prior %s missing dimension %s", code, dim)
			}
		}
		file.RegionalPriors[code] = prior
	}

	seen := make(map[string]bool, len(file.MappingRules))
	for _, rule := range file.MappingRules {
		if rule.ID == "" {
			return nil, fmt.Errorf("catalog: rule with empty ID")
		}
		if seen[rule.ID] {
			return nil, fmt.Errorf("catalog: duplicate rule ID %s", rule.ID)
		}
		seen[rule.ID] = true
		if !rule.Dimension.IsValid() {
			return nil, fmt.Errorf("catalog: rule %s has unknown dimension %q", rule.ID, rule.Dimension)
		}
		if !rule.Predicate.Op.IsValid() {
			return nil, fmt.Errorf("catalog: rule %s has unknown operator %q", rule.ID, rule.Predicate.Op)
		}
	}

	rules := make([]domain.MappingRule, len(file.MappingRules))
	copy(rules, file.MappingRules)
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})

	return &Catalog{
		priors:    file.RegionalPriors,
		rules:     rules,
		baselines: file.ProductBaselines,
	}, nil
}

// Default loads the embedded catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Load(embeddedCatalog)
}

// Prior returns the stored prior for a country code, or false.
func (c *Catalog) Prior(countryCode string) (RegionalPrior, bool) {
	prior, ok := c.priors[countryCode]
	return prior, ok
}

// Regions returns all known country codes, sorted.
func (c *Catalog) Regions() []string {
	codes := make([]string, 0, len(c.priors))
	for code := range c.priors {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Rules returns the rule set in evaluation order. Callers must not
// mutate the returned slice.
func (c *Catalog) Rules() []domain.MappingRule {
	return c.rules
}

// Baseline returns the product baseline for a category, or false.
func (c *Catalog) Baseline(category domain.ProductCategory) (ProductBaseline, bool) {
	baseline, ok := c.baselines[category]
	return baseline, ok
}
