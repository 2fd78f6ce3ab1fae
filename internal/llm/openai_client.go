// ABOUTME: OpenAI client for regulation and question embeddings
// ABOUTME: Adds batching, client-side rate limiting and retry with exponential backoff
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/harper/race-engineer/internal/logging"
	"github.com/harper/race-engineer/internal/util"
)

const (
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// DefaultBatchSize is the number of texts sent per embeddings request
	DefaultBatchSize = 64
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey            string
	BaseURL           string
	EmbeddingModel    openai.EmbeddingModel
	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	BatchSize         int
	RequestsPerSecond float64
	Logger            *zap.Logger
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second,
		BatchSize:      DefaultBatchSize,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client         *openai.Client
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
	batchSize      int
	limiter        *rate.Limiter
	logger         *zap.Logger
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.EmbeddingModel
	if model == "" {
		model = DefaultEmbeddingModel
	}
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(clientConfig),
		embeddingModel: model,
		timeout:        config.Timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		batchSize:      batchSize,
		limiter:        rate.NewLimiter(limit, 1),
		logger:         logging.OrNop(config.Logger),
	}, nil
}

// ModelName returns the embedding model used by this client
func (c *OpenAIClient) ModelName() string {
	return string(c.embeddingModel)
}

// Embed generates an embedding vector for a single text
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.createEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for texts in order, one request per batch
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))

		batch, err := c.createEmbeddings(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", start, end, err)
		}
		vectors = append(vectors, batch...)

		c.logger.Debug("embedded batch",
			zap.Int("from", start),
			zap.Int("to", end),
			zap.Int("total", len(texts)))
	}
	return vectors, nil
}

// createEmbeddings sends one embeddings request, retrying transient failures
func (c *OpenAIClient) createEmbeddings(ctx context.Context, input []string) ([][]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := util.Backoff(ctx, c.retryDelay, attempt); err != nil {
				return nil, err
			}
			c.logger.Debug("retrying embeddings request", zap.Int("attempt", attempt+1), zap.Error(lastErr))
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		vectors, err := c.request(ctx, input)
		if err == nil {
			return vectors, nil
		}
		lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)

		if ctx.Err() != nil {
			return nil, lastErr
		}
		if !retryable(err) {
			return nil, lastErr
		}
	}

	return nil, fmt.Errorf("failed to generate embeddings after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *OpenAIClient) request(ctx context.Context, input []string) ([][]float64, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: input,
		Model: c.embeddingModel,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) != len(input) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(input), len(resp.Data))
	}

	vectors := make([][]float64, len(input))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(input) || vectors[d.Index] != nil {
			return nil, fmt.Errorf("unexpected embedding index %d", d.Index)
		}
		// Convert []float32 to []float64
		embedding64 := make([]float64, len(d.Embedding))
		for i, v := range d.Embedding {
			embedding64[i] = float64(v)
		}
		vectors[d.Index] = embedding64
	}
	return vectors, nil
}

// retryable reports whether an API failure is worth another attempt
func retryable(err error) bool {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return false
	}
	return true
}
