package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cobranza-network/cobranza/internal/api"
	"github.com/cobranza-network/cobranza/internal/config"
	"github.com/cobranza-network/cobranza/internal/dataset"
	"github.com/cobranza-network/cobranza/internal/observability"
	"github.com/cobranza-network/cobranza/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analytics API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dataPath != "" {
			cfg.Data.Path = dataPath
		}
		if cmd.Flags().Changed("port") {
			cfg.API.Port = servePort
		}
		return runServe(cfg)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8420, "API listen port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cfg config.Config) error {
	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)

	snap, err := loadSnapshot(cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	observability.SetSnapshotSize(snap.NumClientes(), snap.NumInteracciones())
	log.WithFields(logrus.Fields{
		"snapshot_id":   snap.ID(),
		"clientes":      snap.NumClientes(),
		"interacciones": snap.NumInteracciones(),
	}).Info("dataset loaded")

	server := api.NewServer(snap, log)
	if cfg.API.Metrics {
		server.EnableMetrics()
	}
	if cfg.API.CORS {
		server.EnableCORS()
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).Info("API server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// loadSnapshot reads the configured dataset file, or the embedded sample
// when no path is set.
func loadSnapshot(path string) (*store.Snapshot, error) {
	if path == "" {
		return dataset.Sample()
	}
	return dataset.LoadFile(path)
}
