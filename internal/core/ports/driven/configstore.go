package driven

// ConfigStore provides persistent application configuration:
// gateway credentials, audit thresholds, retry policy knobs.
type ConfigStore interface {
	// Get retrieves a value by key, with a presence flag.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if absent.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if absent.
	GetInt(key string) int

	// GetFloat retrieves a float value, or 0 if absent.
	GetFloat(key string) float64

	// GetBool retrieves a boolean value, or false if absent.
	GetBool(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load reloads configuration from the backing store.
	Load() error
}
