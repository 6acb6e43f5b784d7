package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"hivemind/internal/app"
	"hivemind/internal/config"
	httpTransport "hivemind/internal/transport/http"
)

const releaseVersion = "1.0.0"

func main() {
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:     "hivemind",
		Short:   "Room-based party game server where matching the herd scores points.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(config.FromViper(v))
		},
	}

	fs := cmd.Flags()

	fs.StringP("bind", "b", "0.0.0.0", "address to bind to (env: HIVEMIND_BIND)")
	fs.IntP("port", "p", 8080, "port to listen on (env: HIVEMIND_PORT)")
	fs.Int("timer-seconds", 30, "default round timer for new rooms (env: HIVEMIND_TIMER_SECONDS)")
	fs.Int("points-to-win", 10, "default score threshold for new rooms (env: HIVEMIND_POINTS_TO_WIN)")
	fs.String("log-level", "info", "log level: debug, info, warn, error (env: HIVEMIND_LOG_LEVEL)")
	fs.String("log-format", "text", "log format: text or json (env: HIVEMIND_LOG_FORMAT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("hivemind v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func run(cfg *config.Config) error {
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	logger.Info("starting hivemind server",
		"version", releaseVersion,
		"addr", cfg.Addr(),
	)

	hub := app.NewRoomRegistry(app.NewPromptBank(), cfg.RoomDefaults(), logger)
	defer hub.Close()

	server := httpTransport.NewServer(cfg, hub, logger)

	errs := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
