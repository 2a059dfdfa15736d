package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tunerelay/tunerelay/internal/config"
	"github.com/tunerelay/tunerelay/internal/deliver"
	"github.com/tunerelay/tunerelay/internal/resolve"
	"github.com/tunerelay/tunerelay/internal/slackhook"
)

var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Slack webhook relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug logging")
}

func runServe() error {
	level := slog.LevelInfo
	if serveDebug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		return err
	}

	httpClient := &http.Client{Timeout: cfg.Resolvers.HTTPTimeout}
	hook := slackhook.NewServer(slackhook.Options{
		Logger:   logger,
		Verifier: slackhook.NewVerifier(cfg.Slack.SigningSecret),
		Poster:   deliver.NewSlackPoster(cfg.Slack.BotToken, cfg.Slack.APIBase, httpClient),
		Songlink: resolve.NewSonglink(cfg.Resolvers.SonglinkBase, cfg.Resolvers.HTTPTimeout),
		Songwhip: resolve.NewSongwhip(cfg.Resolvers.SongwhipBase, cfg.Resolvers.HTTPTimeout),
	})

	srv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: hook.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tunerelay listening", "addr", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	// Detached resolution tasks are fire-and-forget and are not drained;
	// only the HTTP listener is given time to finish in-flight requests.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
