package config

import "time"

// Config represents the complete kiegate configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	State  StateConfig  `yaml:"state"`
}

// ServerConfig defines the HTTP gateway settings.
type ServerConfig struct {
	// ID is the server id stamped into every conversation header.
	ID              string        `yaml:"id"`
	Listen          string        `yaml:"listen"`
	APIKey          string        `yaml:"api_key" envconfig:"API_KEY"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File, when set, receives a rotated copy of every log line.
	File string `yaml:"file,omitempty"`
}

// StateConfig defines read-model storage settings.
type StateConfig struct {
	Path string `yaml:"path"`
}

// Defaults returns a Config with the built-in defaults.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			ID:              "kiegate",
			Listen:          "127.0.0.1:8230",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		State: StateConfig{
			Path: "./data/kiegate.db",
		},
	}
}
