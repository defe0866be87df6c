package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattjoyce/kiegate/internal/model"
	"github.com/mattjoyce/kiegate/internal/storage"
	"github.com/mattjoyce/kiegate/internal/store"
)

func captureOutputWithExitCode(t *testing.T, run func() int) (int, string, string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stdout failed: %v", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stderr failed: %v", err)
	}

	os.Stdout = stdoutW
	os.Stderr = stderrW

	code := run()

	_ = stdoutW.Close()
	_ = stderrW.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	stdoutBytes, _ := io.ReadAll(stdoutR)
	stderrBytes, _ := io.ReadAll(stderrR)

	_ = stdoutR.Close()
	_ = stderrR.Close()

	return code, string(stdoutBytes), string(stderrBytes)
}

func writeConfig(t *testing.T) (configPath, statePath string) {
	t.Helper()
	dir := t.TempDir()
	statePath = filepath.Join(dir, "kiegate.db")
	configPath = filepath.Join(dir, "kiegate.yaml")
	if err := os.WriteFile(configPath, []byte("state:\n  path: "+statePath+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, statePath
}

func TestRunLoad(t *testing.T) {
	configPath, statePath := writeConfig(t)
	fixturePath := filepath.Join(filepath.Dir(configPath), "fixtures.yaml")
	fixture := `
containers:
  - container-id: evaluation
    status: STARTED
`
	if err := os.WriteFile(fixturePath, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := captureOutputWithExitCode(t, func() int {
		return runLoad([]string{"--config", configPath, "--file", fixturePath})
	})
	if code != 0 {
		t.Fatalf("runLoad exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Loaded") {
		t.Errorf("unexpected stdout: %q", stdout)
	}

	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, statePath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := store.New(db).Container(ctx, "evaluation"); err != nil {
		t.Fatalf("container not loaded: %v", err)
	}
}

func TestRunLoad_RequiresFile(t *testing.T) {
	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runLoad(nil)
	})
	if code != 1 || !strings.Contains(stderr, "--file is required") {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
}

func TestRunWait_Containers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/server/containers" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(model.ContainerList{Containers: []model.Container{
			{ID: "evaluation", Status: model.ContainerStarted},
		}})
	}))
	defer srv.Close()

	code, stdout, stderr := captureOutputWithExitCode(t, func() int {
		return runWait([]string{"containers", "--url", srv.URL, "--expected", "1"})
	})
	if code != 0 {
		t.Fatalf("runWait exit = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "containers: ready") {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestRunWait_ProbeErrorFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"job request \"9\" not found"}`))
	}))
	defer srv.Close()

	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runWait([]string{"job", "--url", srv.URL, "--id", "9"})
	})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, `job request "9" not found`) {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRunWait_BadTarget(t *testing.T) {
	code, _, stderr := captureOutputWithExitCode(t, func() int {
		return runWait([]string{"everything"})
	})
	if code != 1 || !strings.Contains(stderr, "Unknown wait target") {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}

	code, _, stderr = captureOutputWithExitCode(t, func() int {
		return runWait([]string{"process", "--id", "1"})
	})
	if code != 1 || !strings.Contains(stderr, "--container is required") {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
}
