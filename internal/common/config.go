package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration loaded from one or more TOML files.
// Precedence: defaults -> config files (in order) -> environment -> CLI flags.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	LLM     LLMConfig     `toml:"llm"`
	Gemini  GeminiConfig  `toml:"gemini"`
	Claude  ClaudeConfig  `toml:"claude"`
	Ask     AskConfig     `toml:"ask"`
	Indexer IndexerConfig `toml:"indexer"`
	Content ContentConfig `toml:"content"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// LLM provider identifiers.
const (
	LLMProviderGemini = "gemini"
	LLMProviderClaude = "claude"
)

type LLMConfig struct {
	Provider string `toml:"provider"` // Completion provider: "gemini" or "claude". Embeddings always use Gemini.
	Timeout  string `toml:"timeout"`  // Per-call timeout for embedding and completion requests
}

type GeminiConfig struct {
	APIKey         string  `toml:"api_key"`         // User must provide API key (DOCEO_GEMINI_API_KEY or config)
	Model          string  `toml:"model"`           // Chat completion model
	EmbedModel     string  `toml:"embed_model"`     // Embedding model
	EmbedDimension int     `toml:"embed_dimension"` // Fixed output dimensionality; must match the stored corpus
	Temperature    float32 `toml:"temperature"`
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"` // User must provide API key (ANTHROPIC_API_KEY or config)
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

type AskConfig struct {
	// SimilarityThreshold gates context injection: a retrieved document is
	// only prepended to the prompt when its cosine similarity strictly
	// exceeds this value.
	SimilarityThreshold float64 `toml:"similarity_threshold"`
}

type IndexerConfig struct {
	Schedule       string `toml:"schedule"`         // Optional cron expression for scheduled rebuilds (empty = manual only)
	EmbedRateLimit string `toml:"embed_rate_limit"` // Minimum interval between embedding calls during rebuild, e.g. "250ms"
}

type ContentConfig struct {
	Dir string `toml:"dir"` // Directory containing course content TOML files, loaded at startup
}

// NewDefaultConfig returns the baseline configuration before any file,
// environment, or flag overrides are applied.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		LLM: LLMConfig{
			Provider: LLMProviderGemini,
			Timeout:  "60s",
		},
		Gemini: GeminiConfig{
			APIKey:         "", // User must provide API key (no fallback)
			Model:          "gemini-2.0-flash",
			EmbedModel:     "gemini-embedding-001",
			EmbedDimension: 768,
			Temperature:    0.7,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Temperature: 0.7,
		},
		Ask: AskConfig{
			SimilarityThreshold: 0.75,
		},
		Indexer: IndexerConfig{
			Schedule:       "", // Manual rebuilds only unless configured
			EmbedRateLimit: "250ms",
		},
		Content: ContentConfig{
			Dir: "./content",
		},
	}
}

// LoadFromFile loads configuration from a single TOML file.
func LoadFromFile(path string) (*Config, error) {
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration by merging each file in order; later files
// override earlier ones. Environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyFlagOverrides applies command-line flag values on top of the loaded
// configuration. Zero values mean "not set".
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks cross-field constraints that TOML parsing cannot express.
func (c *Config) Validate() error {
	if c.LLM.Provider != LLMProviderGemini && c.LLM.Provider != LLMProviderClaude {
		return fmt.Errorf("invalid llm.provider '%s': must be 'gemini' or 'claude'", c.LLM.Provider)
	}
	if c.Gemini.EmbedDimension <= 0 {
		return fmt.Errorf("gemini.embed_dimension must be positive, got %d", c.Gemini.EmbedDimension)
	}
	if c.Ask.SimilarityThreshold < -1 || c.Ask.SimilarityThreshold > 1 {
		return fmt.Errorf("ask.similarity_threshold must be in [-1, 1], got %g", c.Ask.SimilarityThreshold)
	}
	return nil
}

func applyEnvOverrides(config *Config) {
	if port := os.Getenv("DOCEO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCEO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("DOCEO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("DOCEO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DOCEO_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	if provider := os.Getenv("DOCEO_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if apiKey := os.Getenv("DOCEO_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = apiKey
	}

	if threshold := os.Getenv("DOCEO_ASK_SIMILARITY_THRESHOLD"); threshold != "" {
		if t, err := strconv.ParseFloat(threshold, 64); err == nil {
			config.Ask.SimilarityThreshold = t
		}
	}

	if contentDir := os.Getenv("DOCEO_CONTENT_DIR"); contentDir != "" {
		config.Content.Dir = contentDir
	}
}
