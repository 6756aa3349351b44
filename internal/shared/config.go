package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// defaultConf parses the embedded example exactly once; callers receive copies.
var defaultConf = sync.OnceValues(func() (Config, error) {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		return Config{}, err
	}
	return config, nil
})

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	YouTube   YouTubeConfig   `toml:"youtube"`
	Collector CollectorConfig `toml:"collector"`
	Database  DatabaseConfig  `toml:"database"`
	Server    ServerConfig    `toml:"server"`
}

// YouTubeConfig describes the upstream innertube endpoint and the fallback candidates.
type YouTubeConfig struct {
	BaseURL        string   `toml:"base_url"`
	APIKey         string   `toml:"api_key"`
	Origin         string   `toml:"origin"`
	UserAgent      string   `toml:"user_agent"`
	ClientVersions []string `toml:"client_versions"`
	AuthUsers      []string `toml:"auth_users"`
	AuthUser       string   `toml:"auth_user"`
	CookieFile     string   `toml:"cookie_file"`
}

// CollectorConfig bounds a single pagination run.
type CollectorConfig struct {
	MaxTracks      int     `toml:"max_tracks"`
	MaxPages       int     `toml:"max_pages"`
	PagesPerSecond float64 `toml:"pages_per_second"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	config, err := defaultConf()
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.YouTube.ClientVersions = append([]string(nil), config.YouTube.ClientVersions...)
	config.YouTube.AuthUsers = append([]string(nil), config.YouTube.AuthUsers...)
	return &config
}

// Validate checks the values the client cannot run without.
func (c *Config) Validate() error {
	switch {
	case c.YouTube.BaseURL == "":
		return fmt.Errorf("%w: youtube.base_url is empty", ErrInvalidConfig)
	case c.YouTube.APIKey == "":
		return fmt.Errorf("%w: youtube.api_key is empty", ErrInvalidConfig)
	case len(c.YouTube.ClientVersions) == 0:
		return fmt.Errorf("%w: youtube.client_versions is empty", ErrInvalidConfig)
	case c.Collector.MaxTracks < 0 || c.Collector.MaxPages < 0:
		return fmt.Errorf("%w: collector limits must not be negative", ErrInvalidConfig)
	}
	return nil
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

// ExpandHome replaces a leading "~/" with the current user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
