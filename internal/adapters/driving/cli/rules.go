package cli

import (
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the mapping rules in evaluation order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Println(renderHeader("Mapping rules (evaluation order)"))
		for _, rule := range loadedCatalog.Rules() {
			cmd.Printf("  %3d  %-22s %s%s  lift %+.0f%%\n",
				rule.Priority, rule.ID, rule.Dimension, rule.Predicate, rule.LiftFactor*100)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
