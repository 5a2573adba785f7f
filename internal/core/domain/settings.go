package domain

import "fmt"

const unknownDescription = "Unknown"

// AIProvider identifies the generative model service.
type AIProvider string

// Available AI providers.
const (
	// AIProviderVertex is Gemini on Google Cloud Vertex AI. Supports web-search grounding.
	AIProviderVertex AIProvider = "vertex"

	// AIProviderOpenAI is the OpenAI API or a compatible endpoint. Answers carry no sources.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderVertex, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// RequiresProject returns true if this provider needs a cloud project.
func (p AIProvider) RequiresProject() bool {
	return p == AIProviderVertex
}

// SupportsGrounding returns true if answers can cite web sources.
func (p AIProvider) SupportsGrounding() bool {
	return p == AIProviderVertex
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderVertex:
		return "Gemini on Vertex AI (Google Cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// AllAIProviders returns every supported provider.
func AllAIProviders() []AIProvider {
	return []AIProvider{AIProviderVertex, AIProviderOpenAI}
}

// DefaultAIModels returns default models for each provider.
func DefaultAIModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderVertex: "gemini-2.5-flash",
		AIProviderOpenAI: "gpt-4o-mini",
	}
}

// AISettings holds generative model configuration.
type AISettings struct {
	// Provider is the model service.
	Provider AIProvider

	// Model is the model name.
	Model string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// BaseURL overrides the API endpoint (for OpenAI-compatible servers).
	BaseURL string

	// Project is the Google Cloud project (for Vertex AI).
	Project string

	// Region is the Google Cloud region (for Vertex AI).
	Region string

	// RequestsPerMinute caps outbound model calls. Zero disables limiting.
	RequestsPerMinute int
}

// IsConfigured returns true if the provider is set up.
func (a AISettings) IsConfigured() bool {
	if !a.Provider.IsValid() {
		return false
	}
	if a.Provider.RequiresAPIKey() && a.APIKey == "" {
		return false
	}
	if a.Provider.RequiresProject() && a.Project == "" {
		return false
	}
	return true
}

// StorageBackend identifies where profiles and documents are persisted.
type StorageBackend string

// Available storage backends.
const (
	StorageBackendSQLite    StorageBackend = "sqlite"
	StorageBackendMemory    StorageBackend = "memory"
	StorageBackendFirestore StorageBackend = "firestore"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendMemory, StorageBackendFirestore:
		return true
	default:
		return false
	}
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	Backend StorageBackend

	// Path is the SQLite database file. Empty uses the default data directory.
	Path string

	// FirestoreProject is the Google Cloud project for Firestore.
	FirestoreProject string
}

// ExportBackend identifies where downloaded documents are written.
type ExportBackend string

// Available export backends.
const (
	ExportBackendFilesystem ExportBackend = "filesystem"
	ExportBackendGCS        ExportBackend = "gcs"
)

// IsValid returns true if the backend is recognised.
func (b ExportBackend) IsValid() bool {
	return b == ExportBackendFilesystem || b == ExportBackendGCS
}

// ExportSettings holds document export configuration.
type ExportSettings struct {
	Backend ExportBackend

	// Dir is the output directory for filesystem export.
	Dir string

	// Bucket is the Cloud Storage bucket for gcs export.
	Bucket string
}

// IntegrationSettings holds endpoints of the payment and email services.
// Empty endpoints select the offline implementations.
type IntegrationSettings struct {
	CheckoutURL   string
	NewsletterURL string
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	Addr           string
	AllowedOrigins []string
}

// AppSettings holds all application settings.
type AppSettings struct {
	AI           AISettings
	Storage      StorageSettings
	Export       ExportSettings
	Integrations IntegrationSettings
	Risk         RiskPolicy
	Server       ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The AI provider has no credentials by default and must be configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		AI: AISettings{
			Provider:          AIProviderVertex,
			Model:             DefaultAIModels()[AIProviderVertex],
			Region:            "us-central1",
			RequestsPerMinute: 30,
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Export: ExportSettings{
			Backend: ExportBackendFilesystem,
			Dir:     ".",
		},
		Risk: DefaultRiskPolicy(),
		Server: ServerSettings{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
}

// Validate checks the settings are internally consistent. It does not
// require the AI provider to be configured.
func (s AppSettings) Validate() error {
	if !s.AI.Provider.IsValid() {
		return fmt.Errorf("%w: unknown AI provider %q", ErrInvalidInput, s.AI.Provider)
	}
	if s.AI.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: requests per minute must not be negative", ErrInvalidInput)
	}
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidInput, s.Storage.Backend)
	}
	if s.Storage.Backend == StorageBackendFirestore && s.Storage.FirestoreProject == "" {
		return fmt.Errorf("%w: firestore storage requires a project", ErrInvalidInput)
	}
	if !s.Export.Backend.IsValid() {
		return fmt.Errorf("%w: unknown export backend %q", ErrInvalidInput, s.Export.Backend)
	}
	if s.Export.Backend == ExportBackendGCS && s.Export.Bucket == "" {
		return fmt.Errorf("%w: gcs export requires a bucket", ErrInvalidInput)
	}
	return s.Risk.Validate()
}
