package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAIProvider       = "ai.provider"
	keyAIModel          = "ai.model"
	keyAIAPIKey         = "ai.api_key"
	keyAIBaseURL        = "ai.base_url"
	keyAIProject        = "ai.project"
	keyAIRegion         = "ai.region"
	keyAIRPM            = "ai.requests_per_minute"
	keyStorageBackend   = "storage.backend"
	keyStoragePath      = "storage.path"
	keyStorageProject   = "storage.firestore_project"
	keyExportBackend    = "export.backend"
	keyExportDir        = "export.dir"
	keyExportBucket     = "export.bucket"
	keyBillingEndpoint  = "billing.endpoint"
	keyNewsletterURL    = "newsletter.endpoint"
	keyRiskMedium       = "risk.medium"
	keyRiskHigh         = "risk.high"
	keyRiskCritical     = "risk.critical"
	keyServerAddr       = "server.addr"
	keyServerOrigins    = "server.allowed_origins"
	envPrefix           = "LEXDRAFT_"
	secretMaskThreshold = 8
)

// envOverrides maps environment variables to the config key they override.
//
//nolint:gosec // G101: environment variable names, not credentials.
var envOverrides = map[string]string{
	envPrefix + "AI_PROVIDER":       keyAIProvider,
	envPrefix + "AI_MODEL":          keyAIModel,
	envPrefix + "AI_API_KEY":        keyAIAPIKey,
	envPrefix + "AI_BASE_URL":       keyAIBaseURL,
	envPrefix + "GCP_PROJECT":       keyAIProject,
	envPrefix + "GCP_REGION":        keyAIRegion,
	envPrefix + "STORAGE_BACKEND":   keyStorageBackend,
	envPrefix + "STORAGE_PATH":      keyStoragePath,
	envPrefix + "FIRESTORE_PROJECT": keyStorageProject,
	envPrefix + "EXPORT_BACKEND":    keyExportBackend,
	envPrefix + "EXPORT_DIR":        keyExportDir,
	envPrefix + "EXPORT_BUCKET":     keyExportBucket,
	envPrefix + "BILLING_ENDPOINT":  keyBillingEndpoint,
	envPrefix + "NEWSLETTER_URL":    keyNewsletterURL,
	envPrefix + "SERVER_ADDR":       keyServerAddr,
}

// SettingsService manages application settings.
// Values resolve as defaults, then the config file, then environment.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	provider := domain.AIProvider(s.getString(keyAIProvider, d.AI.Provider.String()))
	model := s.getString(keyAIModel, "")
	if model == "" {
		model = domain.DefaultAIModels()[provider]
	}

	settings := &domain.AppSettings{
		AI: domain.AISettings{
			Provider:          provider,
			Model:             model,
			APIKey:            s.getString(keyAIAPIKey, ""),
			BaseURL:           s.getString(keyAIBaseURL, ""),
			Project:           s.getString(keyAIProject, ""),
			Region:            s.getString(keyAIRegion, d.AI.Region),
			RequestsPerMinute: s.getInt(keyAIRPM, d.AI.RequestsPerMinute),
		},
		Storage: domain.StorageSettings{
			Backend:          domain.StorageBackend(s.getString(keyStorageBackend, string(d.Storage.Backend))),
			Path:             s.getString(keyStoragePath, d.Storage.Path),
			FirestoreProject: s.getString(keyStorageProject, ""),
		},
		Export: domain.ExportSettings{
			Backend: domain.ExportBackend(s.getString(keyExportBackend, string(d.Export.Backend))),
			Dir:     s.getString(keyExportDir, d.Export.Dir),
			Bucket:  s.getString(keyExportBucket, ""),
		},
		Integrations: domain.IntegrationSettings{
			CheckoutURL:   s.getString(keyBillingEndpoint, ""),
			NewsletterURL: s.getString(keyNewsletterURL, ""),
		},
		Risk: domain.RiskPolicy{
			Medium:   s.getInt(keyRiskMedium, d.Risk.Medium),
			High:     s.getInt(keyRiskHigh, d.Risk.High),
			Critical: s.getInt(keyRiskCritical, d.Risk.Critical),
		},
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, d.Server.Addr),
			AllowedOrigins: d.Server.AllowedOrigins,
		},
	}
	if origins := s.configStore.GetStringSlice(keyServerOrigins); len(origins) > 0 {
		settings.Server.AllowedOrigins = origins
	}

	// Firestore falls back to the Vertex project.
	if settings.Storage.FirestoreProject == "" {
		settings.Storage.FirestoreProject = settings.AI.Project
	}

	return settings, nil
}

// Save persists application settings. An empty API key leaves the stored
// key untouched.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key string
		val any
	}{
		{keyAIProvider, settings.AI.Provider.String()},
		{keyAIModel, settings.AI.Model},
		{keyAIBaseURL, settings.AI.BaseURL},
		{keyAIProject, settings.AI.Project},
		{keyAIRegion, settings.AI.Region},
		{keyAIRPM, settings.AI.RequestsPerMinute},
		{keyStorageBackend, string(settings.Storage.Backend)},
		{keyStoragePath, settings.Storage.Path},
		{keyStorageProject, settings.Storage.FirestoreProject},
		{keyExportBackend, string(settings.Export.Backend)},
		{keyExportDir, settings.Export.Dir},
		{keyExportBucket, settings.Export.Bucket},
		{keyBillingEndpoint, settings.Integrations.CheckoutURL},
		{keyNewsletterURL, settings.Integrations.NewsletterURL},
		{keyRiskMedium, settings.Risk.Medium},
		{keyRiskHigh, settings.Risk.High},
		{keyRiskCritical, settings.Risk.Critical},
		{keyServerAddr, settings.Server.Addr},
		{keyServerOrigins, settings.Server.AllowedOrigins},
	}
	if settings.AI.APIKey != "" {
		values = append(values, struct {
			key string
			val any
		}{keyAIAPIKey, settings.AI.APIKey})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates one setting by key. The resulting settings must validate
// before anything is written.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyAIProvider:
		provider := domain.AIProvider(strings.ToLower(value))
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown AI provider %q", domain.ErrInvalidInput, value)
		}
		if provider != settings.AI.Provider {
			settings.AI.Model = domain.DefaultAIModels()[provider]
		}
		settings.AI.Provider = provider
	case keyAIModel:
		settings.AI.Model = value
	case keyAIAPIKey:
		if value == "" {
			return fmt.Errorf("%w: api key must not be empty", domain.ErrInvalidInput)
		}
		settings.AI.APIKey = value
	case keyAIBaseURL:
		settings.AI.BaseURL = value
	case keyAIProject:
		settings.AI.Project = value
	case keyAIRegion:
		settings.AI.Region = value
	case keyAIRPM:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		settings.AI.RequestsPerMinute = n
	case keyStorageBackend:
		settings.Storage.Backend = domain.StorageBackend(strings.ToLower(value))
	case keyStoragePath:
		settings.Storage.Path = value
	case keyStorageProject:
		settings.Storage.FirestoreProject = value
	case keyExportBackend:
		settings.Export.Backend = domain.ExportBackend(strings.ToLower(value))
	case keyExportDir:
		settings.Export.Dir = value
	case keyExportBucket:
		settings.Export.Bucket = value
	case keyBillingEndpoint:
		settings.Integrations.CheckoutURL = value
	case keyNewsletterURL:
		settings.Integrations.NewsletterURL = value
	case keyRiskMedium, keyRiskHigh, keyRiskCritical:
		n, err := parseInt(key, value)
		if err != nil {
			return err
		}
		switch key {
		case keyRiskMedium:
			settings.Risk.Medium = n
		case keyRiskHigh:
			settings.Risk.High = n
		default:
			settings.Risk.Critical = n
		}
	case keyServerAddr:
		settings.Server.Addr = value
	case keyServerOrigins:
		settings.Server.AllowedOrigins = splitList(value)
	default:
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	return s.Save(settings)
}

// Keys returns the settable config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyAIProvider, keyAIModel, keyAIAPIKey, keyAIBaseURL, keyAIProject, keyAIRegion, keyAIRPM,
		keyStorageBackend, keyStoragePath, keyStorageProject,
		keyExportBackend, keyExportDir, keyExportBucket,
		keyBillingEndpoint, keyNewsletterURL,
		keyRiskMedium, keyRiskHigh, keyRiskCritical,
		keyServerAddr, keyServerOrigins,
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults and environment.

func (s *SettingsService) env(key string) (string, bool) {
	for name, k := range envOverrides {
		if k != key {
			continue
		}
		if v, ok := s.lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", domain.ErrInvalidInput, key)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MaskSecret hides all but the last four characters of a secret.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= secretMaskThreshold {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
