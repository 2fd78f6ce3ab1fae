// ABOUTME: Centralized configuration for the race engineer retrieval service
// ABOUTME: Defaults, then an optional YAML file, then environment variable overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the data directory under XDG_DATA_HOME
const AppName = "race-engineer"

// Config holds all configuration for the retrieval core and its provider
type Config struct {
	// OpenAI settings
	OpenAIKey      string        `yaml:"-"`
	OpenAIBaseURL  string        `yaml:"openai_base_url"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	EmbedBatchSize int           `yaml:"embed_batch_size"`
	EmbedRPS       float64       `yaml:"embed_rps"`

	// Retrieval settings
	DocumentPath string        `yaml:"document"`
	IndexDir     string        `yaml:"index_dir"`
	ChunkSize    int           `yaml:"chunk_size"`
	ChunkOverlap int           `yaml:"chunk_overlap"`
	TopK         int           `yaml:"top_k"`
	QueryTimeout time.Duration `yaml:"query_timeout"`

	// Query embedding cache
	CacheSize int           `yaml:"cache_size"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		EmbeddingModel: "text-embedding-3-small",
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second,
		EmbedBatchSize: 64,
		EmbedRPS:       5,
		DocumentPath:   filepath.Join("data", "fia2026.pdf"),
		IndexDir:       DefaultIndexDir(),
		ChunkSize:      1000,
		ChunkOverlap:   200,
		TopK:           4,
		QueryTimeout:   8 * time.Second,
		CacheSize:      256,
		CacheTTL:       30 * time.Minute,
	}
}

// DefaultIndexDir returns the XDG-compliant index directory.
// Respects an XDG_DATA_HOME override set after process start.
func DefaultIndexDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, AppName, "index")
}

// Load reads configuration from environment variables on top of defaults
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads an optional YAML file, then applies environment overrides.
// A missing file is not an error; the defaults are used instead.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.OpenAIKey = getEnv("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIBaseURL = getEnv("ENGINEER_OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.EmbeddingModel = getEnv("ENGINEER_EMBEDDING_MODEL", c.EmbeddingModel)
	c.Timeout = getEnvDuration("OPENAI_TIMEOUT", c.Timeout)
	c.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", c.RetryDelay)
	c.EmbedBatchSize = getEnvInt("ENGINEER_EMBED_BATCH", c.EmbedBatchSize)
	c.EmbedRPS = getEnvFloat("ENGINEER_EMBED_RPS", c.EmbedRPS)
	c.DocumentPath = getEnv("ENGINEER_DOCUMENT", c.DocumentPath)
	c.IndexDir = getEnv("ENGINEER_INDEX_DIR", c.IndexDir)
	c.ChunkSize = getEnvInt("ENGINEER_CHUNK_SIZE", c.ChunkSize)
	c.ChunkOverlap = getEnvInt("ENGINEER_CHUNK_OVERLAP", c.ChunkOverlap)
	c.TopK = getEnvInt("ENGINEER_TOP_K", c.TopK)
	c.QueryTimeout = getEnvDuration("ENGINEER_QUERY_TIMEOUT", c.QueryTimeout)
	c.CacheSize = getEnvInt("ENGINEER_CACHE_SIZE", c.CacheSize)
	c.CacheTTL = getEnvDuration("ENGINEER_CACHE_TTL", c.CacheTTL)
}

// Validate checks the invariants the retrieval core depends on
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("ENGINEER_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("ENGINEER_CHUNK_OVERLAP must be in [0, %d), got %d", c.ChunkSize, c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("ENGINEER_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("ENGINEER_EMBED_BATCH must be positive, got %d", c.EmbedBatchSize)
	}
	if c.EmbedRPS < 0 {
		return fmt.Errorf("ENGINEER_EMBED_RPS must not be negative, got %f", c.EmbedRPS)
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("ENGINEER_QUERY_TIMEOUT must not be negative, got %v", c.QueryTimeout)
	}
	if c.IndexDir == "" {
		return errors.New("ENGINEER_INDEX_DIR must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
