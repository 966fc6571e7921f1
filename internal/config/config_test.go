package config

import (
	"testing"
	"time"

	"github.com/GTDGit/lowstock/pkg/wildberries"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis should be disabled without REDIS_HOST")
	}
	if got := len(cfg.Marketplace.TreeMirrors); got != len(wildberries.DefaultTreeMirrors) {
		t.Errorf("TreeMirrors = %d entries, want %d", got, len(wildberries.DefaultTreeMirrors))
	}
	if cfg.Search.TreeCacheTTL != time.Hour {
		t.Errorf("TreeCacheTTL = %v, want 1h", cfg.Search.TreeCacheTTL)
	}
	if cfg.Search.TreeRefreshInterval != 0 {
		t.Errorf("TreeRefreshInterval = %v, want disabled", cfg.Search.TreeRefreshInterval)
	}
	if cfg.Search.DetailBatchSize != 100 {
		t.Errorf("DetailBatchSize = %d, want 100", cfg.Search.DetailBatchSize)
	}
	if cfg.Search.DefaultThreshold != 2 || cfg.Search.DefaultMaxPages != 2 {
		t.Errorf("defaults = %d/%d, want 2/2", cfg.Search.DefaultThreshold, cfg.Search.DefaultMaxPages)
	}
	if !cfg.HTTP.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WB_TREE_MIRRORS", " http://a/tree.json , ,http://b/tree.json")
	t.Setenv("TREE_CACHE_TTL", "5m")
	t.Setenv("TREE_REFRESH_INTERVAL", "50m")
	t.Setenv("DETAIL_BATCH_SIZE", "50")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mirrors := cfg.Marketplace.TreeMirrors
	if len(mirrors) != 2 || mirrors[0] != "http://a/tree.json" || mirrors[1] != "http://b/tree.json" {
		t.Errorf("TreeMirrors = %v", mirrors)
	}
	if cfg.Search.TreeCacheTTL != 5*time.Minute {
		t.Errorf("TreeCacheTTL = %v, want 5m", cfg.Search.TreeCacheTTL)
	}
	if cfg.Search.TreeRefreshInterval != 50*time.Minute {
		t.Errorf("TreeRefreshInterval = %v, want 50m", cfg.Search.TreeRefreshInterval)
	}
	if cfg.Search.DetailBatchSize != 50 {
		t.Errorf("DetailBatchSize = %d, want 50", cfg.Search.DetailBatchSize)
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis should be enabled with REDIS_HOST set")
	}
	if cfg.HTTP.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	cases := map[string]string{
		"DETAIL_BATCH_SIZE":       "101",
		"DEFAULT_THRESHOLD":       "0",
		"DEFAULT_MAX_PAGES":       "51",
		"TREE_CACHE_TTL":          "-1m",
		"HTTP_TIMEOUT":            "soon",
		"WB_PRODUCT_URL_TEMPLATE": "https://example.com/item",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%s: want error", key, val)
			}
		})
	}
}
