// Command lexdraft generates Australian legal documents with AI.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/lexdraft-cli/internal/core/services"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Error("Failed to open config: %v", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	prompts, err := file.NewPromptStore("")
	if err != nil {
		logger.Error("Failed to open prompts: %v", err)
		return err
	}

	wired, err := newApp(ctx, settingsService, prompts)
	if err != nil {
		// Settings commands still work so the problem can be fixed.
		logger.Warn("%v", err)
	}
	defer wired.Close()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Account:  wired.accountService(),
		Quiz:     wired.quiz,
		Settings: settingsService,
		Actions:  services.NewDocumentActions(),
		Prompts:  prompts,
		CheckAI:  ai.ValidateConfig,
	})

	err = cli.Execute()
	wired.Wait()
	return err
}
