package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/billing"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/export/filesystem"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/export/gcs"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/newsletter"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/storage/firestore"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexdraft-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft-cli/internal/core/services"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// app holds the wired services and the resources to release on exit.
type app struct {
	account *services.AccountService
	quiz    *services.QuizService
	closers []io.Closer
}

// newApp wires the services from settings. The quiz is always available; on
// error the account service is left unset.
func newApp(ctx context.Context, settingsService driving.SettingsService, prompts driven.PromptStore) (*app, error) {
	a := &app{quiz: services.NewQuizService(domain.DefaultRiskPolicy())}

	settings, err := settingsService.Get()
	if err != nil {
		return a, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return a, fmt.Errorf("invalid settings: %w", err)
	}
	a.quiz = services.NewQuizService(settings.Risk)

	store, err := a.openStore(ctx, settings.Storage)
	if err != nil {
		return a, fmt.Errorf("open %s storage: %w", settings.Storage.Backend, err)
	}
	exporter, err := a.openExporter(ctx, settings.Export)
	if err != nil {
		return a, fmt.Errorf("open %s export: %w", settings.Export.Backend, err)
	}

	deps := services.AccountDeps{
		Store:      store,
		Exporter:   exporter,
		Gateway:    newGateway(settings.Integrations),
		RiskPolicy: settings.Risk,
	}
	if settings.Integrations.NewsletterURL != "" {
		nl, err := newsletter.NewHTTPService(settings.Integrations.NewsletterURL, nil)
		if err != nil {
			return a, err
		}
		deps.Newsletter = nl
	}

	models, err := ai.CreateModels(ctx, settings.AI)
	switch {
	case err != nil:
		logger.Warn("AI provider unavailable: %v", err)
	case models == nil:
		logger.Debug("AI provider %s not configured; generation and questions are disabled", settings.AI.Provider)
	default:
		a.closers = append(a.closers, models)
		deps.Generator = services.NewDocumentGenerator(models.Generation, prompts, settings.Risk)
		deps.Assistant = services.NewAssistantService(models.Assistant, prompts)
	}

	a.account = services.NewAccountService(deps)
	return a, nil
}

func (a *app) openStore(ctx context.Context, cfg domain.StorageSettings) (driven.KeyValueStore, error) {
	switch cfg.Backend {
	case domain.StorageBackendMemory:
		return memory.NewKeyValueStore(), nil
	case domain.StorageBackendFirestore:
		s, err := firestore.NewStore(ctx, cfg.FirestoreProject, firestore.DefaultCollection)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		return s, nil
	default:
		s, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		return s, nil
	}
}

func (a *app) openExporter(ctx context.Context, cfg domain.ExportSettings) (driven.DocumentExporter, error) {
	if cfg.Backend == domain.ExportBackendGCS {
		e, err := gcs.NewExporter(ctx, cfg.Bucket, gcs.DefaultPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, e)
		return e, nil
	}
	return filesystem.NewExporter(cfg.Dir), nil
}

// newGateway selects the checkout service, or the demo gateway when no
// endpoint is configured.
func newGateway(cfg domain.IntegrationSettings) driven.PurchaseGateway {
	if cfg.CheckoutURL == "" {
		logger.Debug("No billing endpoint configured; purchases use the demo gateway")
		return billing.DemoGateway{}
	}
	g, err := billing.NewHTTPGateway(cfg.CheckoutURL, nil)
	if err != nil {
		logger.Warn("Billing endpoint rejected, using demo gateway: %v", err)
		return billing.DemoGateway{}
	}
	return g
}

// accountService returns the account service as a port, nil when unwired.
func (a *app) accountService() driving.AccountService {
	if a == nil || a.account == nil {
		return nil
	}
	return a.account
}

// Wait blocks until background account work has finished.
func (a *app) Wait() {
	if a != nil && a.account != nil {
		a.account.Wait()
	}
}

// Close releases resources in reverse order of opening.
func (a *app) Close() {
	if a == nil {
		return
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Debug("close: %v", err)
	}
}
