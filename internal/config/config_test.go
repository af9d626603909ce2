package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()
	if cfg.Draft.TTL != 7*24*time.Hour {
		t.Fatalf("draft ttl = %v", cfg.Draft.TTL)
	}
	if cfg.Draft.Store != "memory" || cfg.Upload.Backend != "local" {
		t.Fatalf("unexpected backends: %q %q", cfg.Draft.Store, cfg.Upload.Backend)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DRAFT_STORE", "Redis")
	t.Setenv("DRAFT_TTL", "48h")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")
	t.Setenv("GOODS_API_TIMEOUT", "not-a-duration")

	cfg := LoadEnv()
	if cfg.Draft.Store != "redis" {
		t.Fatalf("got %q want redis", cfg.Draft.Store)
	}
	if cfg.Draft.TTL != 48*time.Hour {
		t.Fatalf("got %v want 48h", cfg.Draft.TTL)
	}
	if cfg.Redis.DB != 3 || !cfg.Logger.DisableCaller {
		t.Fatalf("unexpected config: %+v %+v", cfg.Redis, cfg.Logger)
	}
	if cfg.Goods.Timeout != 10*time.Second {
		t.Fatalf("bad duration must fall back, got %v", cfg.Goods.Timeout)
	}
}
