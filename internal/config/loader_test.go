package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr string
		checkFn func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal valid config",
			yaml: `
server:
  id: kie-server-1
state:
  path: ./test.db
`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Server.ID != "kie-server-1" {
					t.Error("server.id not parsed")
				}
				if cfg.State.Path != "./test.db" {
					t.Error("state.path not parsed")
				}
				// Defaults survive for keys the file omits.
				if cfg.Server.Listen != "127.0.0.1:8230" {
					t.Errorf("listen default not applied, got %q", cfg.Server.Listen)
				}
				if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
					t.Error("log defaults not applied")
				}
			},
		},
		{
			name: "durations and log file",
			yaml: `
server:
  shutdown_timeout: 3s
log:
  level: debug
  format: text
  file: /var/log/kiegate.log
`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Server.ShutdownTimeout != 3*time.Second {
					t.Errorf("shutdown_timeout = %v", cfg.Server.ShutdownTimeout)
				}
				if cfg.Log.File != "/var/log/kiegate.log" {
					t.Error("log.file not parsed")
				}
			},
		},
		{
			name: "environment interpolation",
			yaml: `
server:
  api_key: ${TEST_KIEGATE_TOKEN}
`,
			env: map[string]string{"TEST_KIEGATE_TOKEN": "s3cret"},
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Server.APIKey != "s3cret" {
					t.Errorf("api_key = %q", cfg.Server.APIKey)
				}
			},
		},
		{
			name: "unset interpolation fails validation",
			yaml: `
server:
  api_key: ${TEST_KIEGATE_MISSING}
`,
			wantErr: "TEST_KIEGATE_MISSING",
		},
		{
			name: "environment overrides file",
			yaml: `
server:
  listen: 127.0.0.1:9000
`,
			env: map[string]string{
				"KIEGATE_SERVER_LISTEN":  "0.0.0.0:8080",
				"KIEGATE_SERVER_API_KEY": "from-env",
				"KIEGATE_LOG_LEVEL":      "warn",
			},
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Server.Listen != "0.0.0.0:8080" {
					t.Errorf("listen = %q", cfg.Server.Listen)
				}
				if cfg.Server.APIKey != "from-env" {
					t.Errorf("api_key = %q", cfg.Server.APIKey)
				}
				if cfg.Log.Level != "warn" {
					t.Errorf("log.level = %q", cfg.Log.Level)
				}
			},
		},
		{
			name: "invalid log level",
			yaml: `
log:
  level: verbose
`,
			wantErr: "log.level",
		},
		{
			name: "empty state path",
			yaml: `
state:
  path: ""
`,
			wantErr: "state.path",
		},
		{
			name:    "malformed yaml",
			yaml:    "server: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "kiegate.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkFn != nil {
				tt.checkFn(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Server.ID != Defaults().Server.ID {
		t.Errorf("server.id = %q", cfg.Server.ID)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	cfg.Server.Listen = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty listen")
	}

	cfg = Defaults()
	cfg.Server.ID = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty server id")
	}
}
