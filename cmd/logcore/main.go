// Command logcore runs the in-memory analytics store as a standalone
// process: it restores any persisted state from the configured data
// directory, serves a Prometheus exposition endpoint, and persists state
// back to disk on a clean shutdown.
//
// Configuration (flags, environment, optional config file):
//
//	logcore --db-path ./data --metrics-addr :9090
//
// Ingestion and the query surface are library APIs (internal/store); this
// binary only owns the process lifecycle around them, matching the
// non-goal that logcore itself defines no query language or network
// protocol.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dreamware/logcore/internal/codec"
	"github.com/dreamware/logcore/internal/config"
	"github.com/dreamware/logcore/internal/logging"
	"github.com/dreamware/logcore/internal/metrics"
	"github.com/dreamware/logcore/internal/store"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "logcore",
		Short: "In-memory, schema-driven analytics store",
		RunE:  runServe,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to an optional logcore.yaml/json/toml config file")
	config.BindFlags(root)

	root.AddCommand(newStatsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runServe is the default command: restore, serve metrics, block until a
// shutdown signal, persist.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logcore: init logging: %w", err)
	}
	defer logger.Sync()

	collector := metrics.Default()

	db, err := openStore(cfg, logger, collector)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics endpoint listening", zap.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped unexpectedly", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics server shutdown error", zap.Error(err))
	}

	if cfg.Persist {
		if err := codec.Persist(db, cfg.DBPath); err != nil {
			logger.Error("persist on shutdown failed", zap.Error(err))
			return err
		}
		logger.Info("persisted state", zap.String("dir", cfg.DBPath))
	}
	return nil
}

// openStore restores a DB from cfg.DBPath when cfg.Restore is set, or
// starts a fresh one otherwise.
func openStore(cfg config.Config, logger *zap.Logger, collector *metrics.Collector) (*store.DB, error) {
	if !cfg.Restore {
		return store.New(logger, collector), nil
	}
	db, err := codec.Restore(cfg.DBPath, logger, collector, cfg.KeepLast)
	if err != nil {
		return nil, fmt.Errorf("logcore: restore %s: %w", cfg.DBPath, err)
	}
	logger.Info("restored state", zap.String("dir", cfg.DBPath), zap.Int("dates", len(db.Dates())))
	return db, nil
}

// newStatsCmd prints a one-shot summary of a persisted data directory
// without starting the metrics server, useful for scripting and manual
// inspection.
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print summary counters for a persisted data directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := codec.Restore(cfg.DBPath, logger, nil, cfg.KeepLast)
			if err != nil {
				return fmt.Errorf("logcore stats: %w", err)
			}

			fmt.Printf("dates tracked: %d\n", len(db.Dates()))
			fmt.Printf("sum_valid:     %d\n", db.SumValid())
			fmt.Printf("sum_bw:        %d\n", db.SumBW())
			return nil
		},
	}
}
