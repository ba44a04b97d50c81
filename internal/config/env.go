package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "MFBLDR_HOME"
	EnvRPC          = "MFBLDR_ETH_RPC"
	EnvAssetAPIKey  = "MFBLDR_ASSET_API_KEY" // #nosec G101 -- false positive, this is a const name not a credential
	EnvOutputFormat = "MFBLDR_OUTPUT_FORMAT"
	EnvVerbose      = "MFBLDR_VERBOSE"
	EnvLogLevel     = "MFBLDR_LOG_LEVEL"
	EnvNoColor      = "NO_COLOR"
	EnvPollInterval = "MFBLDR_POLL_INTERVAL"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvRPC); v != "" {
		cfg.Network.RPC = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvAssetAPIKey); v != "" {
		cfg.Assets.APIKey = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	// MFBLDR_POLL_INTERVAL sets the confirmation poll interval in seconds
	if v := os.Getenv(EnvPollInterval); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Confirmation.PollIntervalSeconds = n
		}
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
