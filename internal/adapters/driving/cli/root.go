// Package cli implements the culturebridge command-line interface.
// Commands talk to the core exclusively through the driving ports;
// wiring of stores and the optional inference gateway happens once in
// the root command's PersistentPreRunE.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/culturebridge-labs/culturebridge/internal/adapters/driven/config/file"
	"github.com/culturebridge-labs/culturebridge/internal/adapters/driven/gateway/azureopenai"
	"github.com/culturebridge-labs/culturebridge/internal/adapters/driven/storage/memory"
	"github.com/culturebridge-labs/culturebridge/internal/adapters/driven/storage/sqlite"
	"github.com/culturebridge-labs/culturebridge/internal/catalog"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driven"
	"github.com/culturebridge-labs/culturebridge/internal/core/ports/driving"
	"github.com/culturebridge-labs/culturebridge/internal/core/services"
	"github.com/culturebridge-labs/culturebridge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Set by initServices, replaceable in tests.
var (
	adaptationService driving.AdaptationService
	loadedCatalog     *catalog.Catalog
	gatewayModel      string
	variantStore      driven.VariantStore
)

var (
	verboseFlag   bool
	configDirFlag string
	dbPathFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "culturebridge",
	Short: "Culturally adaptive storefront variants",
	Long: `CultureBridge generates culturally adapted e-commerce storefront variants.

A request names a target market, product category, price band and audience;
the pipeline resolves a cultural behavior profile, applies the dimension
mapping rules, frames the copy, audits the result for compliance and
predicts the conversion lift.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return initServices()
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		if variantStore != nil {
			variantStore.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.culturebridge)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "SQLite database path for variants (default in-memory)")
}

// initServices wires the catalog, stores and optional gateway into the
// adaptation service. Idempotent so tests can pre-inject services.
func initServices() error {
	if adaptationService != nil {
		return nil
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	loadedCatalog = cat

	configStore, err := file.NewConfigStore(configDirFlag)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	dbPath := dbPathFlag
	if dbPath == "" {
		dbPath = configStore.GetString("store.db_path")
	}
	if dbPath != "" {
		store, err := sqlite.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening variant store: %w", err)
		}
		variantStore = store
	} else {
		variantStore = memory.NewVariantStore()
	}

	gateway := buildGateway(configStore)
	if gateway != nil {
		gatewayModel = gateway.ModelName()
	}

	cfg := services.DefaultConfig()
	if threshold := configStore.GetFloat("audit.threshold"); threshold > 0 {
		cfg.Auditor.Threshold = threshold
	}

	adaptationService = services.NewAdaptationService(cat, gateway, variantStore, cfg)
	return nil
}

// buildGateway creates the inference gateway when configured. Missing
// configuration means rule-based operation, not an error.
func buildGateway(configStore driven.ConfigStore) driven.InferenceGateway {
	endpoint := configStore.GetString("gateway.endpoint")
	apiKey := configStore.GetString("gateway.api_key")
	deployment := configStore.GetString("gateway.deployment")
	if endpoint == "" || apiKey == "" || deployment == "" {
		logger.Debug("inference gateway not configured; running rule-based")
		return nil
	}

	gateway, err := azureopenai.New(azureopenai.Config{
		Endpoint:   endpoint,
		APIKey:     apiKey,
		Deployment: deployment,
		APIVersion: configStore.GetString("gateway.api_version"),
	})
	if err != nil {
		logger.Warn("inference gateway misconfigured, running rule-based: %v", err)
		return nil
	}
	return gateway
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
