package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/erandawijewantha/personalized-health-coach/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server. Routes live under /v1: per-user
health logs, profiles, and suggestion generation, plus a health check.

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := buildApp(ctx, resolveConfigPath())
	if err != nil {
		return err
	}
	defer app.close()

	engine := api.NewRouter(api.RouterConfig{
		Logger:         app.logger,
		LogHandler:     api.NewLogHandler(app.logs),
		ProfileHandler: api.NewProfileHandler(app.profiles),
		SuggestionHandler: api.NewSuggestionHandler(
			app.controller, app.logs, app.profiles, app.suggestions, app.logger),
		HealthHandler: api.NewHealthHandler(app.monitor),
	})

	server := api.NewServer(app.cfg.Server, engine)

	go app.monitor.StartPeriodicCheck(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "address", app.cfg.Server.Address)
		errCh <- server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
