package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GTDGit/lowstock/pkg/wildberries"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Redis       RedisConfig
	Marketplace MarketplaceConfig
	Search      SearchConfig
	HTTP        HTTPConfig
}

// RedisConfig contains Redis connection parameters.
// An empty Host disables Redis and the in-process cache is used instead.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// MarketplaceConfig contains upstream endpoints and protocol constants.
type MarketplaceConfig struct {
	TreeMirrors        []string
	SearchURL          string
	DetailURL          string
	ProductURLTemplate string
	Currency           string
	Dest               string
	Timeout            time.Duration
}

// SearchConfig contains pipeline tuning and form defaults.
type SearchConfig struct {
	TreeCacheTTL time.Duration
	// TreeRefreshInterval of zero disables the background refresh.
	TreeRefreshInterval time.Duration

	DetailBatchSize  int
	DefaultThreshold int
	DefaultMaxPages  int
}

// HTTPConfig contains inbound server options.
type HTTPConfig struct {
	AllowedOrigins []string
	MetricsEnabled bool
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Redis (optional)
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Marketplace
	cfg.Marketplace = MarketplaceConfig{
		TreeMirrors:        getEnvList("WB_TREE_MIRRORS", wildberries.DefaultTreeMirrors),
		SearchURL:          getEnv("WB_SEARCH_URL", wildberries.DefaultSearchURL),
		DetailURL:          getEnv("WB_DETAIL_URL", wildberries.DefaultDetailURL),
		ProductURLTemplate: getEnv("WB_PRODUCT_URL_TEMPLATE", wildberries.DefaultProductURLTemplate),
		Currency:           getEnv("WB_CURRENCY", wildberries.DefaultCurrency),
		Dest:               getEnv("WB_DEST", wildberries.DefaultDest),
	}

	cfg.Search = SearchConfig{
		DetailBatchSize:  getEnvInt("DETAIL_BATCH_SIZE", 100),
		DefaultThreshold: getEnvInt("DEFAULT_THRESHOLD", 2),
		DefaultMaxPages:  getEnvInt("DEFAULT_MAX_PAGES", 2),
	}

	cfg.HTTP = HTTPConfig{
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"localhost:3000", "127.0.0.1:3000", "localhost:8080"}),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	// Durations
	var err error
	if cfg.Marketplace.Timeout, err = parseDurationEnv("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if cfg.Search.TreeCacheTTL, err = parseDurationEnv("TREE_CACHE_TTL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid TREE_CACHE_TTL: %w", err)
	}
	if cfg.Search.TreeRefreshInterval, err = parseDurationEnv("TREE_REFRESH_INTERVAL", "0"); err != nil {
		return nil, fmt.Errorf("invalid TREE_REFRESH_INTERVAL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate keeps messages concise and points at the offending variable.
func (c *Config) validate() error {
	if len(c.Marketplace.TreeMirrors) == 0 {
		return errors.New("WB_TREE_MIRRORS must contain at least one URL")
	}
	if c.Search.DetailBatchSize < 1 || c.Search.DetailBatchSize > 100 {
		return fmt.Errorf("DETAIL_BATCH_SIZE must be between 1 and 100, got %d", c.Search.DetailBatchSize)
	}
	if c.Search.DefaultThreshold < 1 || c.Search.DefaultThreshold > 999 {
		return fmt.Errorf("DEFAULT_THRESHOLD must be between 1 and 999, got %d", c.Search.DefaultThreshold)
	}
	if c.Search.DefaultMaxPages < 1 || c.Search.DefaultMaxPages > 50 {
		return fmt.Errorf("DEFAULT_MAX_PAGES must be between 1 and 50, got %d", c.Search.DefaultMaxPages)
	}
	if !strings.Contains(c.Marketplace.ProductURLTemplate, "%d") {
		return errors.New("WB_PRODUCT_URL_TEMPLATE must contain a %d placeholder for the item id")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvBool returns the value of an environment variable as a bool or a default if empty/invalid.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvList splits a comma-separated variable, dropping blanks.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
