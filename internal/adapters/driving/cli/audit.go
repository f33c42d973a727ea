package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	auditStrict bool
	auditJSON   bool
)

var auditCmd = &cobra.Command{
	Use:   "audit [variant-id]",
	Short: "Re-run the compliance audit on a stored variant",
	Long: `Loads a stored variant and re-runs the compliance auditor over it.

Strict mode raises essentializing-language findings to high severity
and applies an extra score penalty; use it for pre-launch review.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditStrict, "strict", false, "audit in strict mode")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	result, err := adaptationService.Audit(context.Background(), args[0], auditStrict)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if auditJSON {
		return printJSON(cmd, result)
	}
	cmd.Print(renderAudit(result))
	cmd.Println(result.Summary)
	return nil
}
