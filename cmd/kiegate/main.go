package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattjoyce/kiegate/internal/api"
	"github.com/mattjoyce/kiegate/internal/casemgmt"
	"github.com/mattjoyce/kiegate/internal/client"
	"github.com/mattjoyce/kiegate/internal/config"
	"github.com/mattjoyce/kiegate/internal/dispatch"
	"github.com/mattjoyce/kiegate/internal/lock"
	"github.com/mattjoyce/kiegate/internal/log"
	"github.com/mattjoyce/kiegate/internal/storage"
	"github.com/mattjoyce/kiegate/internal/store"
	"github.com/mattjoyce/kiegate/internal/waitfor"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "serve":
		os.Exit(runServe(args))
	case "load":
		os.Exit(runLoad(args))
	case "wait":
		os.Exit(runWait(args))
	case "version":
		fmt.Printf("kiegate version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(os.Stderr)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `kiegate - case and process query gateway

Usage:
  kiegate <command> [flags]

Commands:
  serve                 Start the query gateway in foreground
  load                  Seed the read model from a YAML or JSON fixture file
  wait containers       Wait until the expected containers are deployed
  wait job              Wait until a job request finishes
  wait process          Wait until a process instance completes or aborts
  wait process-start    Wait until exactly one process instance is visible
  version               Show version information
  help                  Show this help message

Every wait gives up after 30 seconds.
`)
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	fixtures := fs.String("fixtures", "", "Optional fixture file loaded before serving")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log.Setup(log.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	logger := log.WithComponent("main")
	logger.Info("kiegate starting", "version", version, "server_id", cfg.Server.ID)

	stateLock, err := lock.Acquire(cfg.State.Path)
	if err != nil {
		logger.Error("failed to acquire state lock (another instance may be running)", "path", lock.PathFor(cfg.State.Path), "error", err)
		return 1
	}
	defer stateLock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.OpenSQLite(ctx, cfg.State.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.State.Path, "error", err)
		return 1
	}
	defer db.Close()
	st := store.New(db)

	if *fixtures != "" {
		if err := loadFixtures(ctx, st, *fixtures); err != nil {
			logger.Error("failed to load fixtures", "file", *fixtures, "error", err)
			return 1
		}
		logger.Info("fixtures loaded", "file", *fixtures)
	}

	base := log.Get()
	srv := api.New(
		api.Config{Listen: cfg.Server.Listen, APIKey: cfg.Server.APIKey, ShutdownTimeout: cfg.Server.ShutdownTimeout},
		casemgmt.New(st, base),
		st,
		dispatch.New(base, st, cfg.Server.ID),
		base,
	)

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("API server failed", "error", err)
		return 1
	}
	logger.Info("kiegate stopped")
	return 0
}

func runLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	file := fs.String("file", "", "Fixture file (YAML or JSON)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	ctx := context.Background()
	db, err := storage.OpenSQLite(ctx, cfg.State.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	if err := loadFixtures(ctx, store.New(db), *file); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load fixtures: %v\n", err)
		return 1
	}
	fmt.Printf("Loaded %s into %s\n", *file, cfg.State.Path)
	return 0
}

func loadFixtures(ctx context.Context, st *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := store.ParseFixtures(data)
	if err != nil {
		return err
	}
	return st.Load(ctx, f)
}

func runWait(args []string) int {
	if len(args) < 1 || isHelpToken(args[0]) {
		printUsage(os.Stderr)
		return 1
	}
	target := args[0]

	fs := flag.NewFlagSet("wait "+target, flag.ContinueOnError)
	baseURL := fs.String("url", "http://127.0.0.1:8230", "kiegate base URL")
	apiKey := fs.String("api-key", os.Getenv("KIEGATE_SERVER_API_KEY"), "Bearer token")
	expected := fs.Int("expected", 1, "Expected container count (wait containers)")
	id := fs.Int64("id", 0, "Job or process instance id")
	containerID := fs.String("container", "", "Container id (wait process)")
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}

	c := client.New(*baseURL, client.WithAPIKey(*apiKey), client.WithLogger(log.WithComponent("wait")))
	ctx := context.Background()

	var err error
	switch target {
	case "containers":
		err = waitfor.ForServerSynchronization(ctx, c, *expected)
	case "job":
		err = waitfor.ForJobToFinish(ctx, c, *id)
	case "process":
		if *containerID == "" {
			fmt.Fprintln(os.Stderr, "Error: --container is required")
			return 1
		}
		err = waitfor.ForProcessInstanceToFinish(ctx, c, *containerID, *id)
	case "process-start":
		err = waitfor.ForProcessInstanceStart(ctx, c)
	default:
		fmt.Fprintf(os.Stderr, "Unknown wait target: %s\n\n", target)
		printUsage(os.Stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("%s: ready\n", target)
	return 0
}

func isHelpToken(s string) bool {
	return s == "help" || s == "--help" || s == "-h"
}
