package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/harmony/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the resolved application configuration.
type Config struct {
	Storage   StorageConfig
	LLM       LLMConfig
	Server    ServerConfig
	Logging   LoggingConfig
	Content   ContentConfig
	Recommend RecommendConfig
}

// StorageConfig selects and locates the document store.
type StorageConfig struct {
	Backend    string
	DataDir    string
	SQLitePath string
	RedisAddr  string
	RedisDB    int
}

// LLMConfig holds completion provider settings.
type LLMConfig struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	RateLimit   int
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// ContentConfig controls the AI content cache.
type ContentConfig struct {
	RefreshInterval time.Duration
}

// RecommendConfig controls the recommendation cache.
type RecommendConfig struct {
	CacheTTL time.Duration
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("data.dir", "~/.local/share/harmony")
	v.SetDefault("storage.sqlite_path", "")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_db", 0)

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", 10*time.Second)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.rate_limit", 30)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("content.refresh_interval", 24*time.Hour)
	v.SetDefault("recommend.cache_ttl", time.Hour)
}

// LoadDotEnv loads a .env file into the process environment when present.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load resolves a Config from v, falling back to provider-specific API key
// environment variables when llm.api_key is unset.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Storage: StorageConfig{
			Backend:    strings.ToLower(v.GetString("storage.backend")),
			DataDir:    ExpandPath(v.GetString("data.dir")),
			SQLitePath: v.GetString("storage.sqlite_path"),
			RedisAddr:  v.GetString("storage.redis_addr"),
			RedisDB:    v.GetInt("storage.redis_db"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			BaseURL:     v.GetString("llm.base_url"),
			Timeout:     v.GetDuration("llm.timeout"),
			Temperature: v.GetFloat64("llm.temperature"),
			MaxTokens:   v.GetInt("llm.max_tokens"),
			RateLimit:   v.GetInt("llm.rate_limit"),
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Content: ContentConfig{
			RefreshInterval: v.GetDuration("content.refresh_interval"),
		},
		Recommend: RecommendConfig{
			CacheTTL: v.GetDuration("recommend.cache_ttl"),
		},
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(apiKeyEnv(cfg.LLM.Provider))
	}
	cfg.Storage.SQLitePath = sqlitePath(cfg.Storage.DataDir, cfg.Storage.SQLitePath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for impossible values.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, c.Storage.Backend)
	}
	if c.Storage.DataDir == "" && c.Storage.Backend == BackendFile {
		return fmt.Errorf("%w: data.dir", common.ErrMissingConfig)
	}
	switch c.LLM.Provider {
	case "groq", "openai", "anthropic":
	default:
		return fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("%w: llm.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.Content.RefreshInterval <= 0 {
		return fmt.Errorf("%w: content.refresh_interval must be positive", common.ErrInvalidConfig)
	}
	if c.Recommend.CacheTTL < 0 {
		return fmt.Errorf("%w: recommend.cache_ttl cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}

func apiKeyEnv(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}
