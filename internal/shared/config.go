package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Auth modes accepted by [AuthConfig.Mode].
const (
	AuthModeKey   = "key"
	AuthModeToken = "token"
)

// Config represents the plugin configuration loaded from a TOML file.
type Config struct {
	Auth     AuthConfig     `toml:"auth"`
	Search   SearchConfig   `toml:"search"`
	Download DownloadConfig `toml:"download"`
}

// AuthConfig is the authentication descriptor for the remote catalog:
// a mode plus the credential that mode consumes.
type AuthConfig struct {
	Mode  string `toml:"mode"`
	Key   string `toml:"key"`
	Token string `toml:"token"`
}

// Credential returns the credential selected by Mode, or an empty string
// when the mode is unknown.
func (a AuthConfig) Credential() string {
	switch a.Mode {
	case AuthModeKey:
		return a.Key
	case AuthModeToken:
		return a.Token
	default:
		return ""
	}
}

// Validate checks that the auth descriptor names a known mode and carries
// a non-empty credential for it.
func (a AuthConfig) Validate() error {
	switch a.Mode {
	case AuthModeKey, AuthModeToken:
	default:
		return fmt.Errorf("%w: unknown auth mode %q", ErrAuthConfig, a.Mode)
	}

	if a.Credential() == "" {
		return fmt.Errorf("%w: %w for mode %q", ErrAuthConfig, ErrMissingCredentials, a.Mode)
	}

	return nil
}

// SearchConfig contains catalog search settings.
type SearchConfig struct {
	BaseURL    string `toml:"base_url"`
	MaxResults int    `toml:"max_results"`
}

// DownloadConfig contains download staging settings.
type DownloadConfig struct {
	Directory string `toml:"directory"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
