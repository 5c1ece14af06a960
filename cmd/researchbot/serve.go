package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"researchbot"
	"researchbot/pkg/adapters/httpapi"
	"researchbot/pkg/observability"
	"researchbot/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session HTTP server",
	Long:  `Starts the research bot in server mode, exposing dialogue sessions over a JSON API with Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := createLogger(cmd, cfg)
		metrics := observability.NewMetrics()

		app, err := researchbot.New(cfg,
			researchbot.WithLogger(logger),
			researchbot.WithLifecycleHooks(metrics.Hooks()),
		)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if err := app.Retrieval().EnsureReady(ctx); err != nil {
			logger.Warn("document index unavailable, falling back to model knowledge", "err", err)
		}

		api := httpapi.NewServer(func() (*session.Controller, error) {
			return app.NewSession()
		}, httpapi.WithLogger(logger))

		r := chi.NewRouter()
		r.Mount("/", api.Handler())
		r.Handle("/metrics", metrics.Handler())

		srv := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: r,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
