// Package main provides the entry point for rendezvous-server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/rendezvous-go/internal/core/service"
	"github.com/yndnr/rendezvous-go/internal/infra/buildinfo"
	"github.com/yndnr/rendezvous-go/internal/infra/confloader"
	"github.com/yndnr/rendezvous-go/internal/infra/shutdown"
	"github.com/yndnr/rendezvous-go/internal/server/config"
	"github.com/yndnr/rendezvous-go/internal/server/httpserver"
	"github.com/yndnr/rendezvous-go/internal/storage/memory"
	"github.com/yndnr/rendezvous-go/internal/telemetry/logger"
	"github.com/yndnr/rendezvous-go/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "rendezvous-server",
		Usage:   "ETag-coordinated rendezvous channel for out-of-band handshakes",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file (YAML)",
				EnvVars: []string{"RENDEZVOUS_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting rendezvous-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"mode", cfg.Rendezvous.Mode,
		"config", configFile)

	metrics := metric.NewRegistry()

	routerCfg := &httpserver.RouterConfig{
		Rendezvous:  cfg.Rendezvous,
		RateLimit:   cfg.Server.RateLimit,
		Logger:      log,
		Metrics:     metrics,
		EnableAudit: true,
	}

	// The store only exists in native mode; delegated and disabled
	// modes hold no state at all.
	if cfg.Rendezvous.Mode == config.ModeNative {
		store := memory.New(
			memory.WithTTL(cfg.Rendezvous.TTL),
			memory.WithSoftCapacity(cfg.Rendezvous.SoftCapacity),
			memory.WithHardCapacity(cfg.Rendezvous.HardCapacity),
			memory.WithMaxContentLength(cfg.Rendezvous.MaxContentLength),
		)
		metrics.MustRegister(metric.NewStoreCollector(store))
		routerCfg.RendezvousService = service.NewRendezvousService(store)
	}

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, httpserver.NewRouter(routerCfg))

	// Hot-reload the log level when the config file changes.
	var watcher *confloader.Watcher
	if configFile != "" {
		watcher, err = startConfigWatcher(configFile, log)
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		}
	}

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})
	if watcher != nil {
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return watcher.Stop()
		})
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// startConfigWatcher re-applies the log level when the config file is
// rewritten. Nothing else is hot-reloaded; capacity and mode changes
// need a restart.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		fresh := config.Default()
		loader := confloader.NewLoader(confloader.WithConfigFile(configFile))
		if err := loader.Load(fresh); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		if fresh.Log.Level != logger.GetLevel() {
			logger.SetLevel(fresh.Log.Level)
			log.Info("log level changed", "level", fresh.Log.Level)
		}
	})

	watcher.StartAsync()
	return watcher, nil
}
