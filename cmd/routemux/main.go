// Package main is the entry point for the routemux server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/routemux/routemux/internal/config"
	"github.com/routemux/routemux/internal/observability"
	"github.com/routemux/routemux/internal/router"
	"github.com/routemux/routemux/internal/server"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// shutdownTimeout bounds graceful shutdown of the listener and tracer.
const shutdownTimeout = 30 * time.Second

// cliFlags holds command line flags.
type cliFlags struct {
	configPath  string
	logLevel    string
	logFormat   string
	showVersion bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		printVersion()
		return
	}

	bootLogger := initLogger(observability.DefaultLogConfig())

	cfg := loadAndValidateConfig(flags.configPath, bootLogger)

	logger := initLogger(resolveLogConfig(cfg, flags))
	observability.SetGlobalLogger(logger)
	defer func() { _ = logger.Sync() }()

	table := buildTable(cfg, logger)

	run(cfg, table, flags.configPath, logger)
}

// resolveLogConfig merges the configuration's logging section with
// command line overrides.
func resolveLogConfig(cfg *config.Config, flags cliFlags) observability.LogConfig {
	lc := observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if flags.logLevel != "" {
		lc.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		lc.Format = flags.logFormat
	}
	return lc
}

// parseFlags parses command line flags.
func parseFlags() cliFlags {
	configPath := flag.String("config", getEnvOrDefault("ROUTEMUX_CONFIG_PATH", "configs/routes.yaml"),
		"Path to configuration file")
	logLevel := flag.String("log-level", getEnvOrDefault("ROUTEMUX_LOG_LEVEL", ""),
		"Log level (debug, info, warn, error); overrides configuration")
	logFormat := flag.String("log-format", getEnvOrDefault("ROUTEMUX_LOG_FORMAT", ""),
		"Log format (json, console); overrides configuration")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	return cliFlags{
		configPath:  *configPath,
		logLevel:    *logLevel,
		logFormat:   *logFormat,
		showVersion: *showVersion,
	}
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("routemux version %s\n", version)
	fmt.Printf("  Build time: %s\n", buildTime)
	fmt.Printf("  Git commit: %s\n", gitCommit)
}

// initLogger creates a logger, exiting on invalid settings.
func initLogger(lc observability.LogConfig) observability.Logger {
	logger, err := observability.NewLogger(lc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// loadAndValidateConfig loads and validates the configuration.
func loadAndValidateConfig(configPath string, logger observability.Logger) *config.Config {
	logger.Info("starting routemux",
		observability.String("version", version),
		observability.String("config", configPath),
	)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", observability.Error(err))
	}

	if err := config.ValidateConfig(cfg); err != nil {
		logger.Fatal("invalid configuration", observability.Error(err))
	}

	return cfg
}

// buildTable compiles the configured routes into a route table.
func buildTable(cfg *config.Config, logger observability.Logger) *router.Table {
	table, err := config.BuildTable(cfg)
	if err != nil {
		logger.Fatal("failed to build route table", observability.Error(err))
	}

	logger.Info("route table built",
		observability.Int("routes", table.Len()),
	)

	return table
}

// initTracer initializes tracing when enabled.
func initTracer(cfg *config.Config, logger observability.Logger) *observability.Tracer {
	if !cfg.Tracing.Enabled {
		return nil
	}

	tracer, err := observability.NewTracer(observability.TracerConfig{
		ServiceName:  cfg.Tracing.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SamplingRate: cfg.Tracing.SamplingRate,
		Enabled:      true,
	})
	if err != nil {
		logger.Fatal("failed to initialize tracer", observability.Error(err))
	}

	logger.Info("tracing enabled",
		observability.String("endpoint", cfg.Tracing.OTLPEndpoint),
	)

	return tracer
}

// startWatcher begins watching the configuration file. The route table
// is immutable for the process lifetime; changes are validated and
// reported so operators know a restart is needed.
func startWatcher(ctx context.Context, configPath string, logger observability.Logger) *config.Watcher {
	watcher, err := config.NewWatcher(configPath, func(cfg *config.Config) {
		logger.Info("configuration changed on disk; restart routemux to apply",
			observability.Int("routes", len(cfg.Routes)),
		)
	}, config.WithWatcherLogger(logger))
	if err != nil {
		logger.Warn("failed to create config watcher", observability.Error(err))
		return nil
	}

	if err := watcher.Start(ctx); err != nil {
		logger.Warn("failed to start config watcher", observability.Error(err))
		return nil
	}

	return watcher
}

// run starts the server and blocks until a shutdown signal arrives.
func run(cfg *config.Config, table *router.Table, configPath string, logger observability.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracer := initTracer(cfg, logger)

	opts := []server.Option{server.WithServerLogger(logger)}
	if tracer != nil {
		opts = append(opts, server.WithTracer(tracer))
	}
	srv := server.New(&cfg.Server, table, opts...)

	watcher := startWatcher(ctx, configPath, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received",
			observability.String("signal", sig.String()),
		)
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", observability.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if watcher != nil {
		if err := watcher.Stop(); err != nil {
			logger.Error("failed to stop config watcher", observability.Error(err))
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", observability.Error(err))
	}

	if tracer != nil {
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down tracer", observability.Error(err))
		}
	}

	logger.Info("routemux stopped")
}
