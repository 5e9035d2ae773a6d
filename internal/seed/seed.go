// Package seed loads demo data into a local development database. It
// runs through the service layer so the seeded records pass the same
// validation and leave the same audit trail as real operations.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/retail/service"
	"github.com/trastiendahq/trastienda/internal/storage"
	"github.com/trastiendahq/trastienda/internal/storage/sqlite"
)

// Config holds seeding inputs.
type Config struct {
	DBPath        string
	AdminEmail    string
	AdminPassword string
}

// DefaultConfig returns the local-development defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:        "data/trastienda.db",
		AdminEmail:    "admin@trastienda.local",
		AdminPassword: "trastienda-dev",
	}
}

// Run seeds the database with a demo company, its locations and people.
func Run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := seedAdmin(ctx, store, cfg); err != nil {
		return err
	}

	svc := service.New(store, audit.NewRecorder(store), auth.NewAuthenticator(store))
	ctx = requestctx.WithActor(ctx, requestctx.Actor{
		Kind: requestctx.ActorKindAdmin,
		ID:   "seed-admin",
	})
	return seedDemoCompany(ctx, svc)
}

func seedAdmin(ctx context.Context, store storage.CredentialStore, cfg Config) error {
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now().UTC()
	err = store.PutCredential(ctx, storage.Credential{
		ActorKind:    requestctx.ActorKindAdmin,
		ActorID:      "seed-admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("seed admin credential: %w", err)
	}
	return nil
}

func seedDemoCompany(ctx context.Context, svc *service.Service) error {
	company, err := svc.CreateCompany(ctx, retail.CreateCompanyInput{
		Name:    "Abarrotes El Faro",
		TaxID:   "AFA-840215",
		Email:   "contacto@elfaro.test",
		Phone:   "55-5555-0100",
		Address: "Av. Reforma 120, CDMX",
	})
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	centro, err := svc.CreateBranch(ctx, retail.CreateBranchInput{
		CompanyID: company.ID,
		Name:      "Sucursal Centro",
		Phone:     "55-5555-0101",
		Address:   "Madero 45, Centro",
	})
	if err != nil {
		return fmt.Errorf("seed branch: %w", err)
	}
	norte, err := svc.CreateBranch(ctx, retail.CreateBranchInput{
		CompanyID: company.ID,
		Name:      "Sucursal Norte",
		Phone:     "55-5555-0102",
		Address:   "Insurgentes Norte 890",
	})
	if err != nil {
		return fmt.Errorf("seed branch: %w", err)
	}

	_, err = svc.CreateWarehouse(ctx, retail.CreateWarehouseInput{
		CompanyID: company.ID,
		BranchID:  centro.ID,
		Name:      "Bodega Centro",
		Address:   "Madero 45, Centro",
		Capacity:  1200,
	})
	if err != nil {
		return fmt.Errorf("seed warehouse: %w", err)
	}
	_, err = svc.CreateWarehouse(ctx, retail.CreateWarehouseInput{
		CompanyID: company.ID,
		Name:      "Centro de Distribución",
		Address:   "Parque Industrial Vallejo 7",
		Capacity:  8000,
	})
	if err != nil {
		return fmt.Errorf("seed warehouse: %w", err)
	}

	manager, err := svc.CreateManager(ctx, retail.CreateManagerInput{
		CompanyID: company.ID,
		BranchID:  norte.ID,
		Name:      "Rosa Díaz",
		Email:     "rosa@elfaro.test",
		Phone:     "55-5555-0110",
	})
	if err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}
	if err := svc.SetManagerPassword(ctx, manager.ID, "trastienda-dev"); err != nil {
		return fmt.Errorf("seed manager credential: %w", err)
	}

	_, err = svc.CreateSupplier(ctx, retail.CreateSupplierInput{
		CompanyID:   company.ID,
		Name:        "Distribuidora La Espiga",
		ContactName: "Jorge Peña",
		Email:       "ventas@laespiga.test",
		Phone:       "55-5555-0120",
		Categories:  []string{"panadería", "harinas"},
	})
	if err != nil {
		return fmt.Errorf("seed supplier: %w", err)
	}

	bornOn := time.Date(1987, time.June, 3, 0, 0, 0, 0, time.UTC)
	_, err = svc.CreateCustomer(ctx, retail.CreateCustomerInput{
		CompanyID: company.ID,
		Name:      "Lucía Mendoza",
		Email:     "lucia@example.test",
		Phone:     "55-5555-0130",
		BornOn:    &bornOn,
		Tags:      []string{"mayoreo", "frecuente"},
		Notes:     "Pide facturación al cierre de mes",
	})
	if err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}
	return nil
}
