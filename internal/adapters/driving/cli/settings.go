package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the AI provider, storage, export and integrations.

Settings live in ~/.lexdraft/config.toml. LEXDRAFT_* environment variables
override the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting",
	Long:  `Set one setting by key. Run 'lexdraft settings keys' for the list.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate settings and test the AI provider",
	Args:  cobra.NoArgs,
	RunE:  runSettingsCheck,
}

var settingsAICmd = &cobra.Command{
	Use:   "ai",
	Short: "Configure the AI provider",
	Long:  `Interactively choose the AI provider, model and credentials.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsAI,
}

var settingsPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the editable model instructions",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPrompts,
}

var settingsPromptsResetCmd = &cobra.Command{
	Use:   "reset [name]",
	Short: "Restore a model instruction to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsPromptsReset,
}

func init() {
	settingsPromptsCmd.AddCommand(settingsPromptsResetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	settingsCmd.AddCommand(settingsAICmd)
	settingsCmd.AddCommand(settingsPromptsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[AI]")
	cmd.Printf("  Provider: %s\n", settings.AI.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.AI.Model)
	if settings.AI.Provider.RequiresProject() {
		cmd.Printf("  Project: %s\n", orNotSet(settings.AI.Project))
		cmd.Printf("  Region: %s\n", settings.AI.Region)
	}
	if settings.AI.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", orNotSet(services.MaskSecret(settings.AI.APIKey)))
		if settings.AI.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", settings.AI.BaseURL)
		}
	}
	cmd.Printf("  Requests per minute: %d\n", settings.AI.RequestsPerMinute)
	status := "configured"
	if !settings.AI.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	switch settings.Storage.Backend {
	case domain.StorageBackendSQLite:
		cmd.Printf("  Path: %s\n", orDefault(settings.Storage.Path))
	case domain.StorageBackendFirestore:
		cmd.Printf("  Project: %s\n", orNotSet(settings.Storage.FirestoreProject))
	}
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Backend: %s\n", settings.Export.Backend)
	if settings.Export.Backend == domain.ExportBackendGCS {
		cmd.Printf("  Bucket: %s\n", orNotSet(settings.Export.Bucket))
	} else {
		cmd.Printf("  Directory: %s\n", settings.Export.Dir)
	}
	cmd.Println()

	cmd.Println("[Integrations]")
	cmd.Printf("  Billing: %s\n", orValue(settings.Integrations.CheckoutURL, "(demo, no charge)"))
	cmd.Printf("  Newsletter: %s\n", orValue(settings.Integrations.NewsletterURL, "(disabled)"))
	cmd.Println()

	cmd.Println("[Risk]")
	cmd.Printf("  Medium above: %d\n", settings.Risk.Medium)
	cmd.Printf("  High above: %d\n", settings.Risk.High)
	cmd.Printf("  Critical above: %d\n", settings.Risk.Critical)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Allowed origins: %s\n", orValue(strings.Join(settings.Server.AllowedOrigins, ", "), "(none)"))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'lexdraft settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s.\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.Validate(); err != nil {
		return err
	}
	cmd.Println("Settings: OK")

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	if !settings.AI.IsConfigured() {
		cmd.Println("AI provider: not configured (run 'lexdraft settings ai')")
		return nil
	}
	if checkAI == nil {
		return nil
	}

	cmd.Print("AI provider: ")
	if err := checkAI(cmd.Context(), settings.AI); err != nil {
		cmd.Println("FAILED")
		return fmt.Errorf("AI provider check failed: %w", err)
	}
	cmd.Println("OK")
	return nil
}

func runSettingsAI(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	return configureAIProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
}

func configureAIProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select AI Provider")
	providers := domain.AllAIProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultAIModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	values := [][2]string{
		{"ai.provider", provider.String()},
		{"ai.model", model},
	}

	if provider.RequiresProject() {
		cmd.Print("Enter Google Cloud project ID: ")
		project := readLine(reader)
		if project == "" {
			return errors.New("a project is required for this provider")
		}
		values = append(values, [2]string{"ai.project", project})
	}

	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey := readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
		values = append(values, [2]string{"ai.api_key", apiKey})
	}

	for _, kv := range values {
		if err := settingsService.Set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("failed to configure AI provider: %w", err)
		}
	}

	cmd.Printf("AI provider configured: %s (%s)\n", provider.Description(), model)
	cmd.Println("Run 'lexdraft settings check' to test it.")
	return nil
}

func runSettingsPrompts(cmd *cobra.Command, _ []string) error {
	if promptFiles == nil {
		return errors.New("prompt store not configured")
	}
	cmd.Println("Model instructions (edit the files to customise):")
	for _, name := range promptFiles.Names() {
		cmd.Printf("  %-18s %s\n", name, promptFiles.Path(name))
	}
	return nil
}

func runSettingsPromptsReset(cmd *cobra.Command, args []string) error {
	if promptFiles == nil {
		return errors.New("prompt store not configured")
	}
	if err := promptFiles.Reset(args[0]); err != nil {
		return err
	}
	cmd.Printf("Restored %s to the default.\n", args[0])
	return nil
}

// Helper functions.

func orValue(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func orNotSet(s string) string {
	return orValue(s, "(not set)")
}

func orDefault(s string) string {
	return orValue(s, "(default)")
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo from a terminal, and falls back to reader
// when stdin is piped.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}
