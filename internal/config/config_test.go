package config

import (
	"os"
	"testing"
	"time"
)

// unsetEnv, değişkeni test süresince siler; t.Setenv eski değeri geri yükler.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "APP_ENV", "DB_ENGINE", "DB_NAME", "DB_CREATE", "CACHE_DRIVER", "CACHE_TTL",
		"DB_RATE_LIMIT_ENABLED", "DB_RATE_LIMIT_QPS")

	cfg := Load()

	if cfg.DB.Engine != "sqlite" || cfg.DB.Name != "fluentdb" {
		t.Errorf("Expected sqlite/fluentdb defaults, got %s/%s", cfg.DB.Engine, cfg.DB.Name)
	}
	if cfg.Cache.Driver != "none" {
		t.Errorf("Expected cache driver none, got %q", cfg.Cache.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
	if !cfg.DB.Create {
		t.Error("Expected DB.Create default true")
	}
	if cfg.Cache.TTL != 300*time.Second {
		t.Errorf("Expected cache TTL 5m, got %v", cfg.Cache.TTL)
	}
	if cfg.RateLimit.Enabled {
		t.Error("Expected rate limit disabled by default")
	}
	if cfg.RateLimitQPS() != 0 {
		t.Errorf("Expected QPS 0 when disabled, got %v", cfg.RateLimitQPS())
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_ENGINE", "mysql")
	t.Setenv("DB_NAME", "Inventory")
	t.Setenv("DB_CREATE", "false")
	t.Setenv("CACHE_DRIVER", "Memory")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("DB_RATE_LIMIT_ENABLED", "true")
	t.Setenv("DB_RATE_LIMIT_QPS", "2.5")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()

	if !cfg.IsTest() {
		t.Errorf("Expected test env, got %q", cfg.App.Env)
	}
	if cfg.DB.Engine != "mysql" || cfg.DB.Name != "Inventory" || cfg.DB.Create {
		t.Errorf("Unexpected DB config: %+v", cfg.DB)
	}
	if cfg.Cache.Driver != "memory" {
		t.Errorf("Expected cache driver lower-cased to memory, got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTL != time.Minute {
		t.Errorf("Expected 1m TTL, got %v", cfg.Cache.TTL)
	}
	if cfg.RateLimitQPS() != 2.5 {
		t.Errorf("Expected QPS 2.5, got %v", cfg.RateLimitQPS())
	}
	if cfg.RedisAddr() != "127.0.0.1:6380" {
		t.Errorf("Expected redis addr 127.0.0.1:6380, got %s", cfg.RedisAddr())
	}
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-port")
	t.Setenv("DB_RATE_LIMIT_QPS", "fast")

	cfg := Load()

	if cfg.Redis.Port != 6379 {
		t.Errorf("Expected default port 6379, got %d", cfg.Redis.Port)
	}
	if cfg.RateLimit.QPS != 100 {
		t.Errorf("Expected default QPS 100, got %v", cfg.RateLimit.QPS)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.App.Env = "development"
		cfg.DB.Engine = "sqlite"
		cfg.DB.Name = "app"
		cfg.Cache.Driver = "none"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown engine", func(c *Config) { c.DB.Engine = "derby" }, true},
		{"empty name", func(c *Config) { c.DB.Name = "  " }, true},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "memcached" }, true},
		{"redis cache driver", func(c *Config) { c.Cache.Driver = "redis" }, false},
		{"rate limit without qps", func(c *Config) { c.RateLimit.Enabled = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
