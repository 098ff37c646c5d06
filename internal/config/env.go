package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "KEYFOLD_HOME"
	EnvOutputFormat = "KEYFOLD_OUTPUT_FORMAT"
	EnvVerbose      = "KEYFOLD_VERBOSE"
	EnvLogLevel     = "KEYFOLD_LOG_LEVEL"
	EnvStoreDir     = "KEYFOLD_STORE_DIR"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvStoreDir); v != "" {
		cfg.Store.Dir = v
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
}

// parseBool interprets common truthy strings.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
