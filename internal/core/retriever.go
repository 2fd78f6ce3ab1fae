// ABOUTME: Retriever builds or loads the regulations index and answers questions against it
// ABOUTME: Query embeds the question, ranks entries by cosine similarity and formats citations
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harper/race-engineer/internal/document"
	"github.com/harper/race-engineer/internal/models"
	"github.com/harper/race-engineer/internal/storage"
)

const (
	// DefaultTopK is the number of sources returned per question
	DefaultTopK = 4
	// DefaultQueryTimeout bounds embedding plus search for one question
	DefaultQueryTimeout = 8 * time.Second

	// NoMatchSentinel is returned to the agent when nothing relevant was found
	NoMatchSentinel = "No relevant information found in the regulations."
	// ErrorTextPrefix starts the text returned to the agent when retrieval fails
	ErrorTextPrefix = "Error accessing regulations: "

	agentContextTemplate = `
Based on the FIA F1 Regulations, here is the relevant information:

%s

Use this information to answer the user's question accurately, citing specific articles when possible.
`
)

// Embedder maps text to a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// BatchEmbedder embeds many texts in one call; used during index builds when available
type BatchEmbedder interface {
	Embedder
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// State is the lifecycle state of a Retriever
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Retriever owns the loaded index and the query path
type Retriever struct {
	embedder     Embedder
	chunker      *TextChunker
	indexDir     string
	topK         int
	queryTimeout time.Duration
	model        string
	logger       *zap.Logger

	mu    sync.RWMutex
	index *storage.VectorIndex
}

// RetrieverOption configures a Retriever
type RetrieverOption func(*Retriever)

// WithIndexDir sets the directory holding the persisted index
func WithIndexDir(dir string) RetrieverOption {
	return func(r *Retriever) { r.indexDir = dir }
}

// WithTopK sets the number of sources returned per question
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithQueryTimeout bounds each query; zero disables the bound
func WithQueryTimeout(d time.Duration) RetrieverOption {
	return func(r *Retriever) { r.queryTimeout = d }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) RetrieverOption {
	return func(r *Retriever) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEmbeddingModel records the model name in index metadata
func WithEmbeddingModel(model string) RetrieverOption {
	return func(r *Retriever) { r.model = model }
}

// NewRetriever creates an uninitialized Retriever
func NewRetriever(embedder Embedder, chunker *TextChunker, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		embedder:     embedder,
		chunker:      chunker,
		indexDir:     "index",
		topK:         DefaultTopK,
		queryTimeout: DefaultQueryTimeout,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state
func (r *Retriever) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.index == nil {
		return StateUninitialized
	}
	return StateReady
}

// TopK returns the fixed number of sources per question
func (r *Retriever) TopK() int {
	return r.topK
}

// IndexDir returns the persisted index directory
func (r *Retriever) IndexDir() string {
	return r.indexDir
}

// IndexMeta returns the metadata of the loaded index
func (r *Retriever) IndexMeta() (models.IndexMeta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.index == nil {
		return models.IndexMeta{}, false
	}
	return r.index.Meta(), true
}

// BuildOrLoad makes the Retriever ready. An existing index is loaded as is;
// otherwise the document is chunked, embedded and persisted.
func (r *Retriever) BuildOrLoad(ctx context.Context, documentPath string) error {
	if err := document.Check(documentPath); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index != nil {
		return nil
	}

	idx, err := storage.OpenIndex(ctx, r.indexDir)
	switch {
	case err == nil:
		r.index = idx
		r.logger.Info("loaded index",
			zap.String("dir", r.indexDir),
			zap.Int("entries", idx.Len()),
			zap.String("build_id", idx.Meta().BuildID))
		r.warnIfStale(documentPath, idx.Meta())
		return nil
	case errors.Is(err, storage.ErrIndexAbsent):
		r.logger.Info("no index found, building", zap.String("dir", r.indexDir))
	default:
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	idx, err = r.build(ctx, documentPath)
	if err != nil {
		return err
	}
	r.index = idx
	return nil
}

// build runs load, chunk, embed and persist
func (r *Retriever) build(ctx context.Context, documentPath string) (*storage.VectorIndex, error) {
	started := time.Now()

	doc, err := document.Load(documentPath)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		case errors.Is(err, document.ErrContent):
			return nil, fmt.Errorf("%w: %w", ErrContent, err)
		}
		return nil, fmt.Errorf("%w: loading document: %w", ErrInitialization, err)
	}

	chunks, err := r.chunker.SplitPages(doc.Pages)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("chunked document",
		zap.Int("pages", doc.PageCount()),
		zap.Int("chunks", len(chunks)))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := r.embedAll(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	entries := make([]models.IndexEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = models.IndexEntry{
			Position: c.Position,
			Page:     c.Page,
			Text:     c.Text,
			Vector:   vectors[i],
		}
	}

	fingerprint, err := document.Fingerprint(documentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	meta := models.IndexMeta{
		BuildID:        uuid.New().String(),
		SourcePath:     documentPath,
		SourceSHA256:   fingerprint,
		EmbeddingModel: r.model,
		ChunkSize:      r.chunker.MaxLen(),
		ChunkOverlap:   r.chunker.Overlap(),
		CreatedAt:      time.Now(),
	}

	idx, err := storage.BuildIndex(ctx, r.indexDir, meta, entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	r.logger.Info("built index",
		zap.String("dir", r.indexDir),
		zap.Int("entries", idx.Len()),
		zap.Int("dimension", idx.Meta().Dimension),
		zap.Duration("took", time.Since(started)))
	return idx, nil
}

// embedAll embeds texts in order, batching when the provider supports it
func (r *Retriever) embedAll(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if batcher, ok := r.embedder.(BatchEmbedder); ok {
		vectors, err := batcher.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("provider returned %d vectors for %d texts", len(vectors), len(texts))
		}
		return vectors, nil
	}

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := r.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// warnIfStale logs when the document no longer matches the loaded index
func (r *Retriever) warnIfStale(documentPath string, meta models.IndexMeta) {
	fingerprint, err := document.Fingerprint(documentPath)
	if err != nil {
		r.logger.Debug("could not fingerprint document", zap.Error(err))
		return
	}
	if meta.SourceSHA256 != "" && fingerprint != meta.SourceSHA256 {
		r.logger.Warn("document changed since the index was built; rebuild to pick up changes",
			zap.String("document", documentPath),
			zap.String("index_build", meta.BuildID))
	}
}

// Query embeds the question and returns up to k sources in descending similarity
func (r *Retriever) Query(ctx context.Context, question string) (*models.QueryResult, error) {
	r.mu.RLock()
	idx := r.index
	r.mu.RUnlock()

	if idx == nil {
		return nil, ErrNotReady
	}

	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	result := &models.QueryResult{Question: question, Sources: []models.SearchResult{}}

	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	if len(vec) == 0 {
		return result, nil
	}

	sources, err := idx.Search(ctx, vec, r.topK)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIndex, err)
	}

	result.Sources = sources
	result.NumSources = len(sources)
	result.Context = FormatContext(sources)
	return result, nil
}

// GetContextForAgent answers with text in every case; failures become readable messages
func (r *Retriever) GetContextForAgent(ctx context.Context, question string) string {
	result, err := r.Query(ctx, question)
	if errors.Is(err, ErrTimeout) {
		r.logger.Warn("regulations query timed out", zap.String("question", question), zap.Error(err))
		return NoMatchSentinel
	}
	if err != nil {
		r.logger.Error("regulations query failed", zap.String("question", question), zap.Error(err))
		return ErrorTextPrefix + err.Error()
	}
	if result.Empty() {
		return NoMatchSentinel
	}
	return fmt.Sprintf(agentContextTemplate, result.Context)
}

// FormatContext renders sources as page-cited blocks separated by blank lines
func FormatContext(sources []models.SearchResult) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = fmt.Sprintf("[Source: Page %d]\n%s", s.Page, s.Text)
	}
	return strings.Join(parts, "\n\n")
}
