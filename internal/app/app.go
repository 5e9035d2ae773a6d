// Package app composes the back-office server process from its parts:
// configuration, tracing, storage, the service layer and the HTTP API.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/platform/config"
	"github.com/trastiendahq/trastienda/internal/platform/otel"
	"github.com/trastiendahq/trastienda/internal/retail/service"
	"github.com/trastiendahq/trastienda/internal/storage/sqlite"
	"github.com/trastiendahq/trastienda/internal/web"
)

// Run starts the server and blocks until the context ends or the
// server fails.
func Run(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	shutdown, err := otel.Setup(ctx, "trastienda-server")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	svc := service.New(store, audit.NewRecorder(store), auth.NewAuthenticator(store))
	tokens := auth.TokenConfig{
		Secret: cfg.SecretBytes(),
		Issuer: cfg.AuthIssuer,
		TTL:    cfg.TokenTTL,
	}

	server, err := web.NewServer(cfg.HTTPAddr, web.NewHandler(svc, tokens))
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}
	return server.ListenAndServe(ctx)
}
