// Package main seeds the local development database with demo data.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/trastiendahq/trastienda/internal/platform/config"
	"github.com/trastiendahq/trastienda/internal/seed"
)

func main() {
	cfg := seed.DefaultConfig()
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite database")
	flag.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "seeded admin email")
	flag.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "seeded admin password")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seed.Run(ctx, cfg); err != nil {
		config.Exitf("seed database: %v", err)
	}
}
