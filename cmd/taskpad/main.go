// Package main is the entry point for the taskpad CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kratos/kratos/v2/log"

	"taskpad/internal/backend/googletasks"
	"taskpad/internal/cli"
	"taskpad/internal/commands"
	"taskpad/internal/config"
	"taskpad/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// export only; the session itself never touches Google Tasks
	factory := func(ctx context.Context, cfg *config.Config, logger log.Logger) (service.Exporter, error) {
		client, err := googletasks.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
