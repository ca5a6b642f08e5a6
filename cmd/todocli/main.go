// Package main is the entry point for the todocli CLI.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"todocli/internal/api"
	"todocli/internal/backend/rest"
	"todocli/internal/cli"
	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config, sess *session.Manager, logOut io.Writer) (api.Service, error) {
		return rest.New(rest.Options{
			BaseURL:        cfg.BaseURL,
			Tokens:         session.NewFileStore(cfg.TokenPath()),
			OnUnauthorized: sess.Invalidate,
			Logger:         newLogger(cfg, logOut),
		}), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

// newLogger builds the debug logger. Without --debug, logs are discarded.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if !cfg.Debug {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
