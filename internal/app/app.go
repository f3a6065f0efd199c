package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/handlers"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/services/ask"
	"github.com/ternarybob/doceo/internal/services/embeddings"
	"github.com/ternarybob/doceo/internal/services/indexer"
	"github.com/ternarybob/doceo/internal/services/llm"
	"github.com/ternarybob/doceo/internal/services/scheduler"
	"github.com/ternarybob/doceo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	LLMService       interfaces.LLMService
	EmbeddingService interfaces.EmbeddingService
	AskService       interfaces.AskService
	IndexerService   interfaces.IndexerService
	SchedulerService interfaces.SchedulerService

	// HTTP handlers
	APIHandler   *handlers.APIHandler
	AskHandler   *handlers.AskHandler
	IndexHandler *handlers.IndexHandler
}

// New creates the application, wiring storage, services, and handlers.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		app.StorageManager.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if cfg.Indexer.Schedule != "" {
		if err := app.SchedulerService.Start(cfg.Indexer.Schedule); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	logger.Info().
		Str("llm_provider", cfg.LLM.Provider).
		Str("rebuild_schedule", cfg.Indexer.Schedule).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage initializes the storage layer (Badger) and seeds source
// records from the content directory.
func (a *App) initStorage() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}
	a.StorageManager = storageManager

	if a.Config.Content.Dir != "" {
		if err := badger.LoadContentFromFiles(storageManager, a.Config.Content.Dir, a.Logger); err != nil {
			a.Logger.Warn().Err(err).
				Str("dir", a.Config.Content.Dir).
				Msg("Failed to load content files, continuing with existing records")
		}
	}

	return nil
}

// initServices wires the LLM, embedding, ask, indexer, and scheduler services.
func (a *App) initServices() error {
	llmService, err := llm.NewLLMService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM service: %w", err)
	}
	a.LLMService = llmService

	a.EmbeddingService = embeddings.NewService(llmService, a.Logger)

	a.AskService = ask.NewService(
		a.EmbeddingService,
		a.LLMService,
		a.StorageManager.DocumentStorage(),
		a.Config.Ask.SimilarityThreshold,
		a.Logger,
	)

	embedInterval := time.Duration(0)
	if a.Config.Indexer.EmbedRateLimit != "" {
		embedInterval, err = time.ParseDuration(a.Config.Indexer.EmbedRateLimit)
		if err != nil {
			return fmt.Errorf("invalid indexer.embed_rate_limit %q: %w", a.Config.Indexer.EmbedRateLimit, err)
		}
	}
	a.IndexerService = indexer.NewService(a.StorageManager, a.EmbeddingService, embedInterval, a.Logger)

	a.SchedulerService = scheduler.NewService(a.IndexerService, a.Logger)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.IndexerService)
	a.AskHandler = handlers.NewAskHandler(a.AskService, a.Logger)
	a.IndexHandler = handlers.NewIndexHandler(a.IndexerService, a.Logger)
}

// Close shuts down services in reverse initialization order.
func (a *App) Close() error {
	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		} else {
			a.Logger.Info().Msg("LLM service closed")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage manager")
			return err
		}
		a.Logger.Info().Msg("Storage manager closed")
	}

	return nil
}
