package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Icons.DefaultLimit != 3 {
			t.Errorf("Icons.DefaultLimit = %d, want 3", cfg.Icons.DefaultLimit)
		}
		if cfg.Icons.MaxLimit != 10 {
			t.Errorf("Icons.MaxLimit = %d, want 10", cfg.Icons.MaxLimit)
		}
		if cfg.Icons.DebugLogging {
			t.Error("Icons.DebugLogging = true, want false")
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Cache.MaxEntries != 10000 {
			t.Errorf("Cache.MaxEntries = %d, want 10000", cfg.Cache.MaxEntries)
		}
		if cfg.Server.ShutdownTimeout != 10*time.Second {
			t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
		}
		if cfg.RateLimit.PerIP != 120 {
			t.Errorf("RateLimit.PerIP = %d, want 120", cfg.RateLimit.PerIP)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("PLATEUP_SERVER_PORT", "9090")
		t.Setenv("PLATEUP_SERVER_ENVIRONMENT", "production")
		t.Setenv("PLATEUP_ICONS_DEFAULT_LIMIT", "4")
		t.Setenv("PLATEUP_ICONS_MAX_LIMIT", "6")
		t.Setenv("PLATEUP_ICONS_DEBUG_LOGGING", "true")
		t.Setenv("PLATEUP_CACHE_TYPE", "none")
		t.Setenv("PLATEUP_CACHE_TTL", "1h")
		t.Setenv("PLATEUP_CACHE_MAX_ENTRIES", "500")
		t.Setenv("PLATEUP_RATELIMIT_PER_IP", "0")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Icons.DefaultLimit != 4 {
			t.Errorf("Icons.DefaultLimit = %d, want 4", cfg.Icons.DefaultLimit)
		}
		if cfg.Icons.MaxLimit != 6 {
			t.Errorf("Icons.MaxLimit = %d, want 6", cfg.Icons.MaxLimit)
		}
		if !cfg.Icons.DebugLogging {
			t.Error("Icons.DebugLogging = false, want true")
		}
		if cfg.Cache.Type != "none" {
			t.Errorf("Cache.Type = %s, want none", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.Cache.MaxEntries != 500 {
			t.Errorf("Cache.MaxEntries = %d, want 500", cfg.Cache.MaxEntries)
		}
		if cfg.RateLimit.PerIP != 0 {
			t.Errorf("RateLimit.PerIP = %d, want 0", cfg.RateLimit.PerIP)
		}
	})

	t.Run("reads values from .env file", func(t *testing.T) {
		chdir(t, t.TempDir())
		if err := os.WriteFile(".env", []byte("PLATEUP_SERVER_PORT=7070\n"), 0o644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		// godotenv sets real process env; make sure it is unset afterwards
		t.Setenv("PLATEUP_SERVER_PORT", "")
		os.Unsetenv("PLATEUP_SERVER_PORT")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "7070" {
			t.Errorf("Server.Port = %s, want 7070", cfg.Server.Port)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("PLATEUP_CACHE_TYPE", "redis")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() error = nil, want error for invalid cache type")
		}
		if !strings.HasPrefix(err.Error(), "invalid configuration:") {
			t.Errorf("Load() error = %v, want invalid configuration error", err)
		}
	})

	t.Run("fails validation when max limit is below default limit", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("PLATEUP_ICONS_DEFAULT_LIMIT", "5")
		t.Setenv("PLATEUP_ICONS_MAX_LIMIT", "2")

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for max_limit < default_limit")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		chdir(t, t.TempDir())

		if err := loadEnvFile(); err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables and skips comments", func(t *testing.T) {
		chdir(t, t.TempDir())

		envContent := `
# Comment line
TEST_VAR_1=value1

# Another comment
TEST_VAR_2=value2
`
		if err := os.WriteFile(".env", []byte(envContent), 0o644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}
		t.Setenv("TEST_VAR_1", "")
		t.Setenv("TEST_VAR_2", "")
		os.Unsetenv("TEST_VAR_1")
		os.Unsetenv("TEST_VAR_2")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if got := os.Getenv("TEST_VAR_1"); got != "value1" {
			t.Errorf("TEST_VAR_1 = %s, want value1", got)
		}
		if got := os.Getenv("TEST_VAR_2"); got != "value2" {
			t.Errorf("TEST_VAR_2 = %s, want value2", got)
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("TEST_OVERRIDE", "existing-value")

		if err := os.WriteFile(".env", []byte("TEST_OVERRIDE=new-value"), 0o644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if got := os.Getenv("TEST_OVERRIDE"); got != "existing-value" {
			t.Errorf("TEST_OVERRIDE = %s, want existing-value (should not override)", got)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Icons:     IconsConfig{DefaultLimit: 3, MaxLimit: 10},
			Cache:     CacheConfig{Type: "memory", TTL: time.Hour},
			RateLimit: RateLimitConfig{PerIP: 60},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid configuration", mutate: func(*Config) {}},
		{name: "cache disabled needs no ttl", mutate: func(c *Config) { c.Cache = CacheConfig{Type: "none"} }},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "zero default limit", mutate: func(c *Config) { c.Icons.DefaultLimit = 0 }, wantErr: true},
		{name: "max below default", mutate: func(c *Config) { c.Icons.MaxLimit = 2 }, wantErr: true},
		{name: "unknown cache type", mutate: func(c *Config) { c.Cache.Type = "redis" }, wantErr: true},
		{name: "memory cache without ttl", mutate: func(c *Config) { c.Cache.TTL = 0 }, wantErr: true},
		{name: "unbounded cache", mutate: func(c *Config) { c.Cache.MaxEntries = 0 }},
		{name: "negative cache size", mutate: func(c *Config) { c.Cache.MaxEntries = -1 }, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit.PerIP = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// chdir changes the working directory to dir and restores it when the test
// finishes (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore Chdir(%q): %v", old, err)
		}
	})
}
