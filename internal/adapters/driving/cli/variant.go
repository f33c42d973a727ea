package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var variantJSON bool

var variantCmd = &cobra.Command{
	Use:   "variant",
	Short: "Inspect stored variants",
}

var variantGetCmd = &cobra.Command{
	Use:   "get [variant-id]",
	Short: "Show one stored variant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := adaptationService.Variant(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("loading variant: %w", err)
		}
		if variantJSON {
			return printJSON(cmd, spec)
		}
		cmd.Print(renderVariant(spec))
		return nil
	},
}

var variantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored variant IDs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ids, err := adaptationService.VariantIDs(context.Background())
		if err != nil {
			return fmt.Errorf("listing variants: %w", err)
		}
		if variantJSON {
			return printJSON(cmd, ids)
		}
		if len(ids) == 0 {
			cmd.Println("No variants stored.")
			return nil
		}
		for _, id := range ids {
			cmd.Println(id)
		}
		return nil
	},
}

var variantDeleteCmd = &cobra.Command{
	Use:   "delete [variant-id]",
	Short: "Delete a stored variant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := adaptationService.DeleteVariant(context.Background(), args[0]); err != nil {
			return fmt.Errorf("deleting variant: %w", err)
		}
		cmd.Printf("Variant %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	variantCmd.PersistentFlags().BoolVar(&variantJSON, "json", false, "output as JSON")
	variantCmd.AddCommand(variantGetCmd)
	variantCmd.AddCommand(variantListCmd)
	variantCmd.AddCommand(variantDeleteCmd)
	rootCmd.AddCommand(variantCmd)
}
