package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Auth     AuthConfig     `toml:"auth"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// AuthConfig contains token issuance settings.
type AuthConfig struct {
	// Secret signs bearer tokens. The example file ships a development
	// value; set VOFO_JWT_SECRET in production.
	Secret   string `toml:"secret"`
	TTLHours int    `toml:"ttl_hours"`
}

// CatalogConfig contains settings for the external music catalog.
type CatalogConfig struct {
	// ProxyURL points at a ytmusic proxy. When empty the scraping
	// provider is used instead.
	ProxyURL string `toml:"proxy_url"`
	// SearchURL is the public search page scraped by the fallback provider.
	SearchURL string  `toml:"search_url"`
	Country   string  `toml:"country"`
	RateLimit float64 `toml:"rate_limit"`
	// Cache settings for search results.
	CacheSize   int `toml:"cache_size"`
	CacheTTLSec int `toml:"cache_ttl_sec"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	StaticDir string `toml:"static_dir"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Environment variables override file values, see [Config.applyEnv].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotenv loads a .env file from the working directory when present.
func LoadDotenv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// applyEnv overrides file-sourced values with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("VOFO_JWT_SECRET"); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv("VOFO_PROXY_URL"); v != "" {
		c.Catalog.ProxyURL = v
	}
}

// Addr returns the host:port pair the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
