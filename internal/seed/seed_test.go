package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/storage"
	"github.com/trastiendahq/trastienda/internal/storage/sqlite"
)

func TestRunSeedsDemoData(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "seed.db")

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	companies, err := store.ListCompanies(ctx)
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if len(companies) != 1 {
		t.Fatalf("companies = %d, want 1", len(companies))
	}
	companyID := companies[0].ID

	branches, err := store.ListBranches(ctx, companyID)
	if err != nil {
		t.Fatalf("list branches: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("branches = %d, want 2", len(branches))
	}

	managers, err := store.ListManagers(ctx, companyID)
	if err != nil {
		t.Fatalf("list managers: %v", err)
	}
	if len(managers) != 1 {
		t.Fatalf("managers = %d, want 1", len(managers))
	}

	// The seeded credentials must authenticate.
	authenticator := auth.NewAuthenticator(store)
	if _, err := authenticator.Authenticate(ctx, requestctx.ActorKindAdmin, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if _, err := authenticator.Authenticate(ctx, requestctx.ActorKindManager, managers[0].Email, "trastienda-dev"); err != nil {
		t.Fatalf("manager login: %v", err)
	}

	// Seeding leaves an audit trail like real operations.
	events, err := store.ListAuditEvents(ctx, storage.AuditQuery{})
	if err != nil {
		t.Fatalf("list audit events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected audit events from seeding")
	}
}
