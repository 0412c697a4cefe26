package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

// FinderConfig selects the remote suggestion provider for the source
// finder. Provider "none" (or empty) keeps lookups on the built-in catalog.
type FinderConfig struct {
	Provider  string   `toml:"provider"`
	Model     string   `toml:"model"`
	APIKey    string   `toml:"api_key"`
	BaseURL   string   `toml:"base_url"`
	Allowlist []string `toml:"allowlist"`
}

type InjectorConfig struct {
	Policy string `toml:"policy"`
}

type FetcherConfig struct {
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	UserAgent       string `toml:"user_agent"`
	MaxContentBytes int64  `toml:"max_content_bytes"`
}

// CatalogSource is one authoritative-source entry. A non-empty [[catalog]]
// list replaces the built-in catalog wholesale.
type CatalogSource struct {
	Name        string `toml:"name"`
	URLTemplate string `toml:"url_template"`
	SiteType    string `toml:"site_type"`
	Category    string `toml:"category"`
	Priority    string `toml:"priority"`
}

type Config struct {
	Server   ServerConfig    `toml:"server"`
	Finder   FinderConfig    `toml:"finder"`
	Injector InjectorConfig  `toml:"injector"`
	Fetcher  FetcherConfig   `toml:"fetcher"`
	Catalog  []CatalogSource `toml:"catalog"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Finder:   FinderConfig{Provider: "none"},
		Injector: InjectorConfig{Policy: "replace"},
		Fetcher: FetcherConfig{
			TimeoutSeconds:  10,
			UserAgent:       "schemamark/1.0 (+https://github.com/schemamark/schemamark)",
			MaxContentBytes: 10 << 20,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// FetchTimeout returns the fetcher timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetcher.TimeoutSeconds) * time.Second
}
