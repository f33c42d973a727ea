package cli

import (
	"github.com/spf13/cobra"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions with stored cultural priors",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Println(renderHeader("Supported regions"))
		for _, code := range loadedCatalog.Regions() {
			prior, _ := loadedCatalog.Prior(code)
			cmd.Printf("\n%s %s\n", renderLabel(code), prior.CountryName)
			for _, dim := range domain.AllDimensions() {
				cmd.Printf("  %-22s %3d\n", dim, prior.Dimensions[dim])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
