package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/culturebridge-labs/culturebridge/internal/adapters/driven/storage/memory"
	"github.com/culturebridge-labs/culturebridge/internal/catalog"
	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
	"github.com/culturebridge-labs/culturebridge/internal/core/services"
)

// setupTestServices wires the commands to an in-memory service and
// returns a cleanup restoring the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()
	oldService := adaptationService
	oldCatalog := loadedCatalog
	oldStore := variantStore

	cat, err := catalog.Default()
	require.NoError(t, err)
	store := memory.NewVariantStore()

	adaptationService = services.NewAdaptationService(cat, nil, store, services.DefaultConfig())
	loadedCatalog = cat
	variantStore = store

	return func() {
		adaptationService = oldService
		loadedCatalog = oldCatalog
		variantStore = oldStore
	}
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// storeTestVariant runs one adaptation directly and returns the spec.
func storeTestVariant(t *testing.T) *domain.VariantSpec {
	t.Helper()
	spec, err := adaptationService.Adapt(context.Background(), domain.AdaptRequest{
		CountryCode:     "JP",
		ProductCategory: domain.CategoryElectronics,
		PriceBand:       domain.BandPremium,
		Audience:        domain.AudienceGeneralConsumer,
	}, "")
	require.NoError(t, err)
	return spec
}
