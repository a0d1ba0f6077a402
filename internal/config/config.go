// Package config loads application settings from an optional TOML file and
// the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "emotify"

// Search providers.
const (
	ProviderGenius  = "genius"
	ProviderSpotify = "spotify"
)

// Environment variables.
const (
	EnvGeniusAPIKey  = "GENIUS_API_KEY"
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvSpotifyID     = "SPOTIFY_ID"
	EnvSpotifySecret = "SPOTIFY_SECRET"
	EnvAddr          = "EMOTIFY_ADDR"
)

var (
	// ErrMissingSecret matches configurations lacking a required API secret.
	ErrMissingSecret = errors.New("missing API secret")

	// ErrUnknownProvider is returned for an unsupported search.provider.
	ErrUnknownProvider = errors.New("unknown search provider")
)

// MissingSecretError lists the environment variables that must be set.
type MissingSecretError struct {
	Vars []string
}

func (e *MissingSecretError) Error() string {
	return fmt.Sprintf("%s: set %s", ErrMissingSecret, strings.Join(e.Vars, ", "))
}

func (e *MissingSecretError) Is(target error) bool {
	return target == ErrMissingSecret
}

// Config holds all application settings.
type Config struct {
	Addr string `koanf:"addr"`

	Search  SearchConfig  `koanf:"search"`
	Genius  GeniusConfig  `koanf:"genius"`
	Spotify SpotifyConfig `koanf:"spotify"`
	Gemini  GeminiConfig  `koanf:"gemini"`
	HTTP    HTTPConfig    `koanf:"http"`
	Lexicon LexiconConfig `koanf:"lexicon"`
}

type SearchConfig struct {
	Provider string `koanf:"provider"` // "genius" or "spotify"
}

type GeniusConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
}

type SpotifyConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

type GeminiConfig struct {
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
	APIKey  string `koanf:"api_key"`
}

type HTTPConfig struct {
	Timeout time.Duration `koanf:"timeout"` // e.g. "60s"
}

type LexiconConfig struct {
	Path string `koanf:"path"` // empty uses the embedded lexicon
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Addr:   "127.0.0.1:8080",
		Search: SearchConfig{Provider: ProviderGenius},
		Genius: GeniusConfig{BaseURL: "https://api.genius.com"},
		Gemini: GeminiConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-2.0-flash",
		},
		HTTP: HTTPConfig{Timeout: 60 * time.Second},
	}
}

// Load reads the config files found in the default locations and applies
// environment overrides.
func Load() (*Config, error) {
	return LoadFrom(configPaths())
}

// LoadFrom reads the given TOML files in order (later files win), skipping
// those that do not exist, then applies environment overrides. Missing
// secrets are not an error here; see Validate.
func LoadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	applyEnv(cfg)

	cfg.Search.Provider = strings.ToLower(strings.TrimSpace(cfg.Search.Provider))
	if cfg.Search.Provider == "" {
		cfg.Search.Provider = ProviderGenius
	}
	if cfg.Search.Provider != ProviderGenius && cfg.Search.Provider != ProviderSpotify {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Search.Provider)
	}

	cfg.Genius.BaseURL = strings.TrimSuffix(cfg.Genius.BaseURL, "/")
	cfg.Gemini.BaseURL = strings.TrimSuffix(cfg.Gemini.BaseURL, "/")
	cfg.Lexicon.Path = expandPath(cfg.Lexicon.Path)
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = Default().HTTP.Timeout
	}

	return cfg, nil
}

// Validate reports the secrets the selected providers still need.
// Returns a *MissingSecretError, or nil when everything is set.
func (c *Config) Validate() error {
	var missing []string

	switch c.Search.Provider {
	case ProviderSpotify:
		if c.Spotify.ClientID == "" {
			missing = append(missing, EnvSpotifyID)
		}
		if c.Spotify.ClientSecret == "" {
			missing = append(missing, EnvSpotifySecret)
		}
	default:
		if c.Genius.APIKey == "" {
			missing = append(missing, EnvGeniusAPIKey)
		}
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, EnvGeminiAPIKey)
	}

	if len(missing) > 0 {
		return &MissingSecretError{Vars: missing}
	}
	return nil
}

// SearchConfigured reports whether the selected search provider has its
// credentials.
func (c *Config) SearchConfigured() bool {
	if c.Search.Provider == ProviderSpotify {
		return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != ""
	}
	return c.Genius.APIKey != ""
}

// GeminiConfigured reports whether the Gemini API key is set.
func (c *Config) GeminiConfigured() bool {
	return c.Gemini.APIKey != ""
}

func applyEnv(cfg *Config) {
	set := func(dst *string, name string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Addr, EnvAddr)
	set(&cfg.Genius.APIKey, EnvGeniusAPIKey)
	set(&cfg.Gemini.APIKey, EnvGeminiAPIKey)
	set(&cfg.Spotify.ClientID, EnvSpotifyID)
	set(&cfg.Spotify.ClientSecret, EnvSpotifySecret)
}

// configPaths returns candidate config files, lowest priority first.
func configPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/emotify/config.toml
	if p, err := xdg.SearchConfigFile(filepath.Join(appName, "config.toml")); err == nil {
		paths = append(paths, p)
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
