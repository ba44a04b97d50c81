// Package config provides configuration management for the mfbldr CLI.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version      int                `yaml:"version"`
	Home         string             `yaml:"home"`
	Network      NetworkConfig      `yaml:"network"`
	Assets       AssetsConfig       `yaml:"assets"`
	Signer       SignerConfig       `yaml:"signer"`
	Confirmation ConfirmationConfig `yaml:"confirmation"`
	Output       OutputConfig       `yaml:"output"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// NetworkConfig defines Ethereum network and registry settings.
type NetworkConfig struct {
	RPC      string `yaml:"rpc"`
	ChainID  int64  `yaml:"chain_id"`
	Registry string `yaml:"registry"` // subdomain registrar contract address
	Parent   string `yaml:"parent"`   // parent ENS name, e.g. "mfbldr.eth"
}

// AssetsConfig defines the asset index (NFT ownership) query settings.
type AssetsConfig struct {
	API        string `yaml:"api"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
	PageSize   int    `yaml:"page_size"`
}

// SignerConfig defines signing key settings.
type SignerConfig struct {
	KeyFile string `yaml:"key_file"`
}

// ConfirmationConfig defines transaction confirmation watcher settings.
type ConfirmationConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the mfbldr home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetRPC returns the Ethereum RPC URL.
func (c *Config) GetRPC() string {
	return c.Network.RPC
}

// GetRegistry returns the registrar contract address.
func (c *Config) GetRegistry() string {
	return c.Network.Registry
}

// GetParent returns the parent ENS name.
func (c *Config) GetParent() string {
	return c.Network.Parent
}

// GetKeyFile returns the signing key file path, rooted in home when relative.
func (c *Config) GetKeyFile() string {
	if c.Signer.KeyFile == "" {
		return filepath.Join(c.Home, "key.age")
	}
	if filepath.IsAbs(c.Signer.KeyFile) {
		return c.Signer.KeyFile
	}
	return filepath.Join(c.Home, c.Signer.KeyFile)
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default mfbldr home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mfbldr"
	}
	return filepath.Join(home, ".mfbldr")
}
