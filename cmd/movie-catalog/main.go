package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	v1 "github.com/filmoteca/movie-catalog/api/v1"
	"github.com/filmoteca/movie-catalog/internal/config"
	"github.com/filmoteca/movie-catalog/internal/handlers"
	"github.com/filmoteca/movie-catalog/internal/server"
	"github.com/filmoteca/movie-catalog/internal/services"
	"github.com/filmoteca/movie-catalog/internal/store"
	"github.com/filmoteca/movie-catalog/internal/store/migrations"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		port       int
		dbPath     string
		ingestFile string
		workers    int
		logLevel   string
		logFormat  string
		mode       string
	)

	cmd := &cobra.Command{
		Use:          "movie-catalog",
		Short:        "Movie catalog HTTP service backed by a scanned record store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// CLI flags win over environment.
			flags := cmd.Flags()
			overrideInt(flags, "port", &cfg.Server.HTTPPort, port)
			overrideString(flags, "db", &cfg.Store.Path, dbPath)
			overrideString(flags, "ingest-file", &cfg.Ingest.File, ingestFile)
			overrideInt(flags, "ingest-workers", &cfg.Ingest.Workers, workers)
			overrideString(flags, "log-level", &cfg.LogLevel, logLevel)
			overrideString(flags, "log-format", &cfg.LogFormat, logFormat)
			overrideString(flags, "mode", &cfg.Server.Mode, mode)

			return run(cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 6000, "HTTP listen port")
	cmd.Flags().StringVar(&dbPath, "db", "movies.db", "DuckDB database path (\":memory:\" for ephemeral)")
	cmd.Flags().StringVar(&ingestFile, "ingest-file", "", "tabular file (CSV or XLSX) bulk-loaded at startup")
	cmd.Flags().IntVar(&workers, "ingest-workers", 4, "bulk-load insert concurrency")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")
	cmd.Flags().StringVar(&mode, "mode", config.ServerModeDev, "server mode (dev or prod)")

	return cmd
}

func run(cfg *config.Configuration) error {
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)
	log := zap.S().Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	st := store.NewStore(db)
	defer st.Close()

	if cfg.Ingest.File != "" {
		loader := services.NewLoader(st, cfg.Ingest.Workers)
		if _, err := loader.Load(ctx, cfg.Ingest.File); err != nil {
			return fmt.Errorf("bulk load failed: %w", err)
		}
	}

	catalog := services.NewCatalogService(st, cfg.Store.Timeout)
	handler := handlers.New(catalog)

	srv := server.NewServer(cfg, func(r gin.IRouter) {
		v1.RegisterHandlers(r, handler)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func overrideString(flags *pflag.FlagSet, name string, target *string, value string) {
	if flags.Changed(name) {
		*target = value
	}
}

func overrideInt(flags *pflag.FlagSet, name string, target *int, value int) {
	if flags.Changed(name) {
		*target = value
	}
}

func buildLogger(cfg *config.Configuration) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zcfg zap.Config
	if cfg.LogFormat == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
