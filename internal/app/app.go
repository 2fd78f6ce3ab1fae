// ABOUTME: Bootstrap that wires configuration, logging, provider and retriever together
// ABOUTME: Shared by the engineer CLI and the standalone MCP server
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/harper/race-engineer/internal/config"
	"github.com/harper/race-engineer/internal/core"
	"github.com/harper/race-engineer/internal/document"
	"github.com/harper/race-engineer/internal/llm"
	"github.com/harper/race-engineer/internal/logging"
	"github.com/harper/race-engineer/internal/mcp"
	"github.com/harper/race-engineer/internal/storage"
)

// ServerName is announced to MCP clients
const ServerName = "F1 Race Engineer"

// ErrMissingAPIKey is returned when no OpenAI key is configured
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")

// App holds the wired components of one process
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Retriever *core.Retriever
}

// LoadConfig loads .env if present, then the optional YAML file and environment
func LoadConfig(path string, logger *zap.Logger) (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.OrNop(logger).Debug("no .env file found", zap.Error(err))
	}
	return config.LoadFile(path)
}

// New wires the OpenAI embedder behind the query cache
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("%w: embeddings are required to build and query the index", ErrMissingAPIKey)
	}

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:            cfg.OpenAIKey,
		BaseURL:           cfg.OpenAIBaseURL,
		EmbeddingModel:    openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:           cfg.Timeout,
		MaxRetries:        cfg.MaxRetries,
		RetryDelay:        cfg.RetryDelay,
		BatchSize:         cfg.EmbedBatchSize,
		RequestsPerSecond: cfg.EmbedRPS,
		Logger:            logger.Named("openai"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	var embedder llm.Embedder = client
	if cfg.CacheSize > 0 && cfg.CacheTTL > 0 {
		embedder = llm.NewCachedEmbedder(client, cfg.CacheSize, cfg.CacheTTL, logger.Named("cache"))
	}

	return NewWithEmbedder(cfg, logger, embedder, embedder.ModelName())
}

// NewWithEmbedder wires a retriever around any embedder
func NewWithEmbedder(cfg *config.Config, logger *zap.Logger, embedder core.Embedder, model string) (*App, error) {
	logger = logging.OrNop(logger)

	chunker, err := core.NewTextChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("invalid chunking configuration: %w", err)
	}

	retriever := core.NewRetriever(embedder, chunker,
		core.WithIndexDir(cfg.IndexDir),
		core.WithTopK(cfg.TopK),
		core.WithQueryTimeout(cfg.QueryTimeout),
		core.WithEmbeddingModel(model),
		core.WithLogger(logger.Named("retriever")),
	)

	return &App{Config: cfg, Logger: logger, Retriever: retriever}, nil
}

// Start builds or loads the index for the configured document
func (a *App) Start(ctx context.Context) error {
	err := a.Retriever.BuildOrLoad(ctx, a.Config.DocumentPath)
	if errors.Is(err, core.ErrNotFound) {
		return missingDocumentError(a.Config.DocumentPath, err)
	}
	return err
}

// Rebuild deletes the persisted index and builds it again from the document.
// The document is checked first so a bad path never destroys a good index.
func (a *App) Rebuild(ctx context.Context) error {
	if a.Retriever.State() == core.StateReady {
		return errors.New("index already loaded in this process")
	}
	if err := document.Check(a.Config.DocumentPath); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return missingDocumentError(a.Config.DocumentPath, fmt.Errorf("%w: %w", core.ErrNotFound, err))
		}
		return err
	}

	if err := storage.RemoveIndex(a.Config.IndexDir); err != nil {
		return fmt.Errorf("%w: %w", core.ErrInitialization, err)
	}
	a.Logger.Info("removed existing index", zap.String("dir", a.Config.IndexDir))
	return a.Start(ctx)
}

// MCPServer creates an MCP server exposing the retriever and calculators
func (a *App) MCPServer(version string) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer(ServerName, version, mcpserver.WithToolCapabilities(false))
	mcp.RegisterTools(server, a.Retriever, a.Logger.Named("mcp"))
	return server
}

func missingDocumentError(path string, err error) error {
	abs, _ := filepath.Abs(path)
	wd, _ := os.Getwd()
	return fmt.Errorf("%w\nexpected the regulations document at %s (working directory %s); set ENGINEER_DOCUMENT or document in the config file", err, abs, wd)
}
