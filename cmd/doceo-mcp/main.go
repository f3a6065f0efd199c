package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/services/ask"
	"github.com/ternarybob/doceo/internal/services/embeddings"
	"github.com/ternarybob/doceo/internal/services/indexer"
	"github.com/ternarybob/doceo/internal/services/llm"
	"github.com/ternarybob/doceo/internal/storage/badger"
)

func main() {
	configPath := os.Getenv("DOCEO_CONFIG")
	if configPath == "" {
		configPath = "doceo.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer storageManager.Close()

	llmService, err := llm.NewLLMService(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize LLM service")
	}
	defer llmService.Close()

	embeddingService := embeddings.NewService(llmService, logger)
	askService := ask.NewService(
		embeddingService,
		llmService,
		storageManager.DocumentStorage(),
		config.Ask.SimilarityThreshold,
		logger,
	)
	indexerService := indexer.NewService(storageManager, embeddingService, 0, logger)

	mcpServer := server.NewMCPServer(
		"doceo",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createAskTool(), handleAsk(askService, logger))
	mcpServer.AddTool(createSearchDocumentsTool(), handleSearchDocuments(askService, logger))
	mcpServer.AddTool(createIndexStatsTool(), handleIndexStats(indexerService, logger))

	// Blocks on stdio
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
