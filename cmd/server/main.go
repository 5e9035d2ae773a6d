// Package main runs the back-office HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/trastiendahq/trastienda/internal/app"
	"github.com/trastiendahq/trastienda/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		config.Exitf("run server: %v", err)
	}
}
