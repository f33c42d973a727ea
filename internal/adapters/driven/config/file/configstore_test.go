package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSetAndGetRoundTrip(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set("gateway.deployment", "gpt-4o"))
	require.NoError(t, store.Set("audit.threshold", 0.8))
	require.NoError(t, store.Set("gateway.max_attempts", 5))
	require.NoError(t, store.Set("server.verbose", true))

	assert.Equal(t, "gpt-4o", store.GetString("gateway.deployment"))
	assert.InDelta(t, 0.8, store.GetFloat("audit.threshold"), 1e-9)
	assert.Equal(t, 5, store.GetInt("gateway.max_attempts"))
	assert.True(t, store.GetBool("server.verbose"))
}

func TestMissingKeysReturnZeroValues(t *testing.T) {
	store := newStore(t)

	_, ok := store.Get("absent")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("absent"))
	assert.Zero(t, store.GetInt("absent"))
	assert.Zero(t, store.GetFloat("absent"))
	assert.False(t, store.GetBool("absent"))
}

func TestPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("gateway.endpoint", "https://example.openai.azure.com"))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://example.openai.azure.com", second.GetString("gateway.endpoint"))
}

func TestLoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[gateway]\nendpoint = \"https://x\"\ndeployment = \"gpt-test\"\n\n[audit]\nthreshold = 0.75\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://x", store.GetString("gateway.endpoint"))
	assert.Equal(t, "gpt-test", store.GetString("gateway.deployment"))
	assert.InDelta(t, 0.75, store.GetFloat("audit.threshold"), 1e-9)
}

func TestGetFloatAcceptsIntegers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[audit]\nthreshold = 1\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, store.GetFloat("audit.threshold"), 1e-9)
}

func TestConfigFileHasRestrictedPermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("gateway.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
