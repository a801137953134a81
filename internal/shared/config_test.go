package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	t.Run("server defaults", func(t *testing.T) {
		if config.Server.Port != 8000 {
			t.Errorf("expected port 8000, got %d", config.Server.Port)
		}
		if config.Server.Host != "0.0.0.0" {
			t.Errorf("expected host 0.0.0.0, got %s", config.Server.Host)
		}
		if config.Addr() != "0.0.0.0:8000" {
			t.Errorf("unexpected addr %s", config.Addr())
		}
	})

	t.Run("auth defaults", func(t *testing.T) {
		if config.Auth.Secret == "" {
			t.Error("expected a development secret")
		}
		if config.Auth.TTLHours != 720 {
			t.Errorf("expected ttl_hours 720, got %d", config.Auth.TTLHours)
		}
	})

	t.Run("catalog defaults", func(t *testing.T) {
		if config.Catalog.ProxyURL != "" {
			t.Errorf("expected empty proxy_url, got %s", config.Catalog.ProxyURL)
		}
		if config.Catalog.CacheSize != 128 || config.Catalog.CacheTTLSec != 300 {
			t.Errorf("unexpected cache settings: size=%d ttl=%d",
				config.Catalog.CacheSize, config.Catalog.CacheTTLSec)
		}
	})

	t.Run("database defaults", func(t *testing.T) {
		if config.Database.Path != "./vofo.db" {
			t.Errorf("expected ./vofo.db, got %s", config.Database.Path)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("reads a toml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[auth]
secret = "file-secret"
ttl_hours = 24

[server]
host = "127.0.0.1"
port = 9000
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Auth.Secret != "file-secret" {
			t.Errorf("expected file-secret, got %s", config.Auth.Secret)
		}
		if config.Auth.TTLHours != 24 {
			t.Errorf("expected ttl_hours 24, got %d", config.Auth.TTLHours)
		}
		if config.Addr() != "127.0.0.1:9000" {
			t.Errorf("unexpected addr %s", config.Addr())
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid toml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("environment overrides file values", func(t *testing.T) {
		t.Setenv("PORT", "9999")
		t.Setenv("VOFO_JWT_SECRET", "env-secret")
		t.Setenv("DATABASE_PATH", "/tmp/env.db")

		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[server]\nport = 8000\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Port != 9999 {
			t.Errorf("expected env port 9999, got %d", config.Server.Port)
		}
		if config.Auth.Secret != "env-secret" {
			t.Errorf("expected env secret, got %s", config.Auth.Secret)
		}
		if config.Database.Path != "/tmp/env.db" {
			t.Errorf("expected env database path, got %s", config.Database.Path)
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("generated file does not parse: %v", err)
		}
		if config.Server.Port != 8000 {
			t.Errorf("expected port 8000, got %d", config.Server.Port)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file exists")
		}
	})
}
