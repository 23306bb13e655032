// Package main is the entry point for the mstodo CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"mstodo/internal/auth"
	"mstodo/internal/backend/msgraph"
	"mstodo/internal/cli"
	"mstodo/internal/commands"
	"mstodo/internal/config"
	"mstodo/internal/service"
)

func main() {
	// Load .env first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// The factory runs the full token-acquisition cascade, then hands the
	// bearer token to the Graph client.
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		if err := cfg.EnsureDir(); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}
		authn, err := auth.NewAuthenticator(cfg, os.Stdin, os.Stderr)
		if err != nil {
			return nil, err
		}
		token, err := authn.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		return msgraph.NewClient(cfg.GraphBaseURL, token, cfg.Strict), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	os.Exit(dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
