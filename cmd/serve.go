package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adsc/report-system/internal/api"
	"github.com/adsc/report-system/internal/api/metrics"
	mongodb "github.com/adsc/report-system/internal/infrastructure/db/mongo"
	"github.com/adsc/report-system/internal/infrastructure/queue"
)

const (
	shutdownTimeout = 30 * time.Second
	gaugeInterval   = 5 * time.Second
)

var skipIndexes bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Connect to MongoDB and Redis, ensure indexes and the bootstrap admin, then serve the API until SIGINT or SIGTERM.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := connectBackends(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer b.close(log)

	app := newApplication(cfg, b)
	if !skipIndexes {
		if err := mongodb.EnsureIndexes(ctx, newRepositories(b.db).indexers()...); err != nil {
			return err
		}
	}
	if _, created, err := app.auth.EnsureAdmin(ctx, adminSeed(cfg)); err != nil {
		return err
	} else if created {
		log.Warn().Str("username", cfg.Admin.Username).Msg("bootstrap admin created, change its password")
	}

	app.dispatcher.Start()
	go reportQueueDepth(ctx, app.dispatcher)

	e := api.NewRouter(app.router)
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	runErr := waitForServer(ctx, serverErr, log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := app.dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Int("pending", app.dispatcher.Pending()).Msg("activity dispatcher did not drain")
	}
	log.Info().Msg("server stopped")
	return runErr
}

// waitForServer blocks until ctx is cancelled or the server exits. A server
// failure other than a clean close is returned.
func waitForServer(ctx context.Context, serverErr <-chan error, log zerolog.Logger) error {
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		return nil
	case err := <-serverErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error().Err(err).Msg("http server failed")
		return fmt.Errorf("http server: %w", err)
	}
}

// reportQueueDepth samples the dispatcher backlog into a gauge until ctx ends.
func reportQueueDepth(ctx context.Context, d *queue.Dispatcher) {
	ticker := time.NewTicker(gaugeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.ActivityQueueDepth.Set(float64(d.Pending()))
		}
	}
}

func init() {
	serveCmd.Flags().BoolVar(&skipIndexes, "skip-indexes", false, "Do not create MongoDB indexes at startup")
}
