package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tagforge-hq/tagforge/pkg/api"
	"tagforge-hq/tagforge/pkg/cli"
	"tagforge-hq/tagforge/pkg/config"
	"tagforge-hq/tagforge/pkg/render"
	"tagforge-hq/tagforge/pkg/sanitize"
	"tagforge-hq/tagforge/pkg/snippet"
	"tagforge-hq/tagforge/pkg/snippet/filesource"
	"tagforge-hq/tagforge/pkg/snippet/sqlitestore"
	"tagforge-hq/tagforge/pkg/telemetry/logging"
	"tagforge-hq/tagforge/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the tagforge server",
	Long: `Start the tagforge server with the specified configuration.

The server loads snippets from the configured store, renders position
blocks on demand, and exposes the authoring API.

Examples:
  # Start with default config
  tagforge run

  # Start with custom config
  tagforge run --config /etc/tagforge/config.yaml

  # Override listen address
  tagforge run --listen 0.0.0.0:8080

  # Validate config without starting the server
  tagforge run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.Setup(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return cli.NewConfigError(cfgFile, err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Tagforge v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(nil)
	}

	// Output cache
	var cache render.OutputCache
	var sweeper *render.Sweeper
	switch cfg.Cache.Backend {
	case "otter":
		otterCache, err := render.NewOtterCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to create otter cache: %w", err)
		}
		defer otterCache.Close()
		cache = otterCache
	default:
		memCache := render.NewMemoryCache(cfg.Cache.TTL)
		cache = memCache
		if cfg.Cache.SweepSchedule != "" {
			sweeper, err = render.NewSweeper(memCache, cfg.Cache.SweepSchedule, logger)
			if err != nil {
				return cli.NewConfigError(cfgFile, fmt.Sprintf("invalid sweep schedule: %v", err))
			}
		}
	}
	fmt.Printf("✓ Output cache initialized (%s)\n", cfg.Cache.Backend)

	// Snippet store
	var store snippet.Store
	var writer snippet.Writer
	var source *filesource.Source
	switch cfg.Store.Backend {
	case "sqlite":
		sqliteStore, err := sqlitestore.New(&sqlitestore.Config{
			Path:         cfg.Store.SQLite.Path,
			MaxOpenConns: cfg.Store.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Store.SQLite.MaxIdleConns,
			WALMode:      cfg.Store.SQLite.WALMode,
			BusyTimeout:  cfg.Store.SQLite.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to open snippet store: %w", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		writer = sqliteStore
	case "file":
		source, err = filesource.New(cfg.Store.File.Dir, logger)
		if err != nil {
			return fmt.Errorf("failed to load snippet files: %w", err)
		}
		store = source
	default:
		return cli.NewConfigError(cfgFile, fmt.Sprintf("unsupported store backend: %s", cfg.Store.Backend))
	}
	fmt.Printf("✓ Snippet store initialized (%s)\n", cfg.Store.Backend)

	// Render pipeline
	selector := render.NewSelector(cfg.Services, store, logger, collector)
	pipeline := render.NewPipeline(selector, nil, cache, logger, collector)

	if sweeper != nil {
		sweeper.Start()
		defer sweeper.Stop()
	}

	// File-source watching reloads snippets and orphans cached output.
	if source != nil && cfg.Store.File.Watch {
		go func() {
			err := source.Watch(ctx, cfg.Store.File.DebounceInterval, func() {
				pipeline.InvalidateAll()
			})
			if err != nil && ctx.Err() == nil {
				slog.Error("snippet file watcher stopped", "error", err)
			}
		}()
	}

	validator := sanitize.NewValidator(sanitize.Config{
		MaxLength:         cfg.Validation.MaxCodeLength,
		MinLength:         cfg.Validation.MinCodeLength,
		AllowedDomains:    cfg.Validation.AllowedDomains,
		SuspiciousDomains: cfg.Validation.SuspiciousDomains,
	})

	srv := api.NewServer(api.Options{
		Config:    *cfg,
		Pipeline:  pipeline,
		Validator: validator,
		Store:     store,
		Writer:    writer,
		Metrics:   collector,
		Logger:    logger,
	})

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	sigChan := cli.WaitForShutdown()
	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}

		fmt.Println("✓ Server stopped")
		return nil
	}
}
