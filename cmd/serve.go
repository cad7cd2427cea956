package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"seo-web/internal/api"
	"seo-web/internal/server"
	"seo-web/internal/view"
)

const shutdownTimeout = 10 * time.Second

var serveFlags struct {
	Addr        string
	WaitBackend bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis form, dashboard and reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveFlags.Addr != "" {
			cfg.Server.Addr = serveFlags.Addr
		}
		if cmd.Flags().Changed("wait-backend") {
			cfg.Backend.WaitReady = serveFlags.WaitBackend
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.Addr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveFlags.WaitBackend, "wait-backend", false, "poll the backend /health endpoint before listening")
}

func runServer(ctx context.Context) error {
	metrics := server.NewMetrics()
	client, err := newAPIClient(api.WithObserver(metrics.ObserveUpstream))
	if err != nil {
		return err
	}

	if cfg.Backend.WaitReady {
		ready := api.DefaultReadyConfig()
		ready.MaxAttempts = cfg.Backend.ReadyAttempts
		if err := api.WaitReady(ctx, logger, client, ready); err != nil {
			return err
		}
	}

	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	srv := server.New(logger, client, renderer, metrics, server.Options{
		AnalyzeURL:          client.URL(cfg.Backend.AnalyzePath, nil),
		DefaultAnalysisType: cfg.Form.DefaultAnalysisType,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting...", slog.String("addr", cfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", slog.Any("error", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
