package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Server.Port != 8000 {
		t.Errorf("server.port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Database.Name != "intern" || cfg.Database.Port != 5432 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("CacheTTL = %s", cfg.CacheTTL())
	}
	if cfg.ClientTimeout() != 0 {
		t.Errorf("ClientTimeout = %s, want none", cfg.ClientTimeout())
	}
	if len(cfg.Server.CorsAllowedOrigins) != 1 || cfg.Server.CorsAllowedOrigins[0] != "*" {
		t.Errorf("cors origins = %v", cfg.Server.CorsAllowedOrigins)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("server:\n  port: 9000\ndatabase:\n  host: yaml-host\n  name: quotes\nredis:\n  ttl_seconds: 60\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("CLIENT_BASE_URL", "http://store:8000")
	t.Setenv("REDIS_SERVICE_PORT", "6380")

	cfg := LoadFile(path)

	if cfg.Server.Port != 9000 {
		t.Errorf("server.port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 6543 {
		t.Errorf("DB_* overrides not applied: %+v", cfg.Database)
	}
	if cfg.Database.Name != "quotes" {
		t.Errorf("database.name = %q", cfg.Database.Name)
	}
	if cfg.CacheTTL() != time.Minute {
		t.Errorf("CacheTTL = %s", cfg.CacheTTL())
	}
	if cfg.Client.BaseURL != "http://store:8000" {
		t.Errorf("client.base_url = %q", cfg.Client.BaseURL)
	}
	if cfg.Redis.Port != 6380 {
		t.Errorf("redis.port = %d", cfg.Redis.Port)
	}
}
