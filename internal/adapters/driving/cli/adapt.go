package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

var (
	adaptCountry   string
	adaptCategory  string
	adaptBand      string
	adaptAudience  string
	adaptOverrides []string
	adaptJSON      bool
)

var adaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Generate a culturally adapted storefront variant",
	Long: `Runs the adaptation pipeline for a target market and persists the
resulting variant.

Dimension overrides replace the stored regional prior for that dimension:

  culturebridge adapt --country JP --category electronics --band premium \
      --audience general_consumer --override uncertainty_avoidance=90`,
	RunE: runAdapt,
}

func init() {
	adaptCmd.Flags().StringVar(&adaptCountry, "country", "", "target country code, e.g. JP (required)")
	adaptCmd.Flags().StringVar(&adaptCategory, "category", "", "product category (required)")
	adaptCmd.Flags().StringVar(&adaptBand, "band", "mid", "price band")
	adaptCmd.Flags().StringVar(&adaptAudience, "audience", "general_consumer", "target audience")
	adaptCmd.Flags().StringArrayVar(&adaptOverrides, "override", nil, "dimension override as name=value, repeatable")
	adaptCmd.Flags().BoolVar(&adaptJSON, "json", false, "output the variant as JSON")
	adaptCmd.MarkFlagRequired("country")
	adaptCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(adaptCmd)
}

func runAdapt(cmd *cobra.Command, _ []string) error {
	overrides, err := parseOverrides(adaptOverrides)
	if err != nil {
		return err
	}

	req := domain.AdaptRequest{
		CountryCode:     strings.ToUpper(adaptCountry),
		ProductCategory: domain.ProductCategory(adaptCategory),
		PriceBand:       domain.PriceBand(adaptBand),
		Audience:        domain.Audience(adaptAudience),
		Overrides:       overrides,
	}

	spec, err := adaptationService.Adapt(context.Background(), req, "")
	if err != nil {
		return fmt.Errorf("adaptation failed: %w", err)
	}

	if adaptJSON {
		return printJSON(cmd, spec)
	}
	cmd.Print(renderVariant(spec))
	return nil
}

// parseOverrides parses repeated name=value flags into a typed override
// map. Values must be integers; range and dimension validity are
// checked by the core.
func parseOverrides(raw []string) (map[domain.Dimension]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	overrides := make(map[domain.Dimension]int, len(raw))
	for _, entry := range raw {
		name, valueStr, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override %q: expected name=value", entry)
		}
		value, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return nil, fmt.Errorf("invalid override %q: value must be an integer", entry)
		}
		overrides[domain.Dimension(strings.TrimSpace(name))] = value
	}
	return overrides, nil
}

func printJSON(cmd *cobra.Command, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
