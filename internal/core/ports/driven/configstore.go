package driven

// ConfigStore is the persisted key/value settings backend. Keys use
// "section.name" form (ai.provider, storage.backend, risk.medium).
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns "" for missing or non-string values.
	GetString(key string) string

	// GetInt returns 0 for missing or non-integer values.
	GetInt(key string) int

	// GetBool returns false for missing or non-boolean values.
	GetBool(key string) bool

	// GetStringSlice returns nil for missing values. Used for lists such
	// as server.allowed_origins.
	GetStringSlice(key string) []string

	// Set writes a value through to storage. On a failed write the
	// previous value is kept.
	Set(key string, value any) error

	// Keys lists the stored keys in sorted order.
	Keys() []string

	Save() error
	Load() error

	// Path is where the settings live, shown by "settings show".
	Path() string
}
