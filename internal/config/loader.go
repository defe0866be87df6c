package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. KIEGATE_SERVER_LISTEN.
const EnvPrefix = "KIEGATE"

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads configuration from path, applies KIEGATE_* environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config file not found: %s\n"+
				"Hint: Check the path or run with --config flag", path)
		}
		if err := yaml.Unmarshal([]byte(interpolateEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// interpolateEnv replaces ${VAR} with environment variable values.
// Undefined variables are left as-is.
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	if c.Server.ID == "" {
		return fmt.Errorf("server.id is required")
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if envVarPattern.MatchString(c.Server.APIKey) {
		matches := envVarPattern.FindStringSubmatch(c.Server.APIKey)
		return fmt.Errorf("server.api_key: environment variable ${%s} is not set", matches[1])
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error (got %q)", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	return nil
}
