package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Together    TogetherConfig  `mapstructure:"together"`
	AI          AIConfig        `mapstructure:"ai"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig describes the running application.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// TogetherConfig holds the upstream chat-completion API settings.
type TogetherConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AIConfig tunes the recommendation pipeline.
type AIConfig struct {
	MinDelay            time.Duration `mapstructure:"min_delay"`
	MaxTokens           int           `mapstructure:"max_tokens"`
	ClassifierMaxTokens int           `mapstructure:"classifier_max_tokens"`
	CategoryCap         int           `mapstructure:"category_cap"`
	EnableCache         bool          `mapstructure:"enable_cache"`
}

// CatalogConfig locates the static product catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig controls the completion cache.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig controls inbound HTTP rate limiting.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig reads configuration from .env and the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("together.api_key", "TOGETHER_API_KEY")
	viper.BindEnv("together.base_url", "TOGETHER_BASE_URL")
	viper.BindEnv("together.model", "TOGETHER_MODEL")
	viper.BindEnv("together.timeout", "TOGETHER_TIMEOUT")
	viper.BindEnv("ai.min_delay", "AI_MIN_DELAY")
	viper.BindEnv("ai.max_tokens", "AI_MAX_TOKENS")
	viper.BindEnv("ai.category_cap", "AI_CATEGORY_CAP")
	viper.BindEnv("catalog.path", "CATALOG_PATH")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")
	viper.BindEnv("server.port", "SERVER_PORT")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	fmt.Println("Loading configuration", "together_api_key:", maskAPIKey(viper.GetString("together.api_key")), "together_model:", viper.GetString("together.model"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey shows only the first and last 4 characters of the key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "garden-advisor")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("together.base_url", "https://api.together.xyz/v1")
	viper.SetDefault("together.model", "mistralai/Mixtral-8x7B-Instruct-v0.1")
	viper.SetDefault("together.timeout", "30s")

	viper.SetDefault("ai.min_delay", "1s")
	viper.SetDefault("ai.max_tokens", 1000)
	viper.SetDefault("ai.classifier_max_tokens", 100)
	viper.SetDefault("ai.category_cap", 10)
	viper.SetDefault("ai.enable_cache", true)

	viper.SetDefault("catalog.path", "catalog/maquinaria.json")

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.redis_addr", "")
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("dedup_window", "1s")
}

// validateConfig rejects configurations that would only fail at first
// request. The upstream API settings and the catalog path must be present
// at startup.
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Together.APIKey == "" {
		return fmt.Errorf("TOGETHER_API_KEY is required")
	}
	if config.Together.BaseURL == "" {
		return fmt.Errorf("together base URL is required")
	}
	if config.Together.Model == "" {
		return fmt.Errorf("together model is required")
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	if config.AI.MinDelay < 0 {
		return fmt.Errorf("invalid ai min delay")
	}
	if config.AI.CategoryCap <= 0 {
		return fmt.Errorf("invalid ai category cap")
	}

	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	return nil
}
