// Package cli implements the lexdraft command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// PromptFiles exposes the editable model instructions.
type PromptFiles interface {
	Names() []string
	Path(name string) string
	Reset(name string) error
}

// Services holds the services commands run against. Nil services make the
// commands that need them fail with a "not configured" error.
type Services struct {
	Account  driving.AccountService
	Quiz     driving.QuizFactory
	Settings driving.SettingsService
	Actions  driving.DocumentActions
	Prompts  PromptFiles

	// CheckAI pings the model provider with the given settings.
	CheckAI func(ctx context.Context, settings domain.AISettings) error
}

var (
	accountService  driving.AccountService
	quizFactory     driving.QuizFactory
	settingsService driving.SettingsService
	documentActions driving.DocumentActions
	promptFiles     PromptFiles
	checkAI         func(ctx context.Context, settings domain.AISettings) error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lexdraft",
	Short: "AI legal document generator for Australian businesses",
	Long: `lexdraft drafts employment, contractor, service, privacy and website
documents for Australian businesses, scores their legal risk, and answers
legal questions from web sources.

Start with:
  lexdraft login you@example.com
  lexdraft templates
  lexdraft generate privacy --field businessName="Acme Pty Ltd" --save`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices configures the services used by all commands.
func SetServices(s Services) {
	accountService = s.Account
	quizFactory = s.Quiz
	settingsService = s.Settings
	documentActions = s.Actions
	promptFiles = s.Prompts
	checkAI = s.CheckAI
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command, printing a user-facing message on failure.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %s\n", Describe(err))
	}
	return err
}
