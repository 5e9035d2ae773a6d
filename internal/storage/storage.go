// Package storage defines persistence contracts for back-office state.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/trastiendahq/trastienda/internal/retail"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// CompanyStore persists company records.
type CompanyStore interface {
	CreateCompany(ctx context.Context, company retail.Company) error
	GetCompany(ctx context.Context, id string) (retail.Company, error)
	ListCompanies(ctx context.Context) ([]retail.Company, error)
	UpdateCompany(ctx context.Context, company retail.Company) error
	DeleteCompany(ctx context.Context, id string) error
}

// BranchStore persists branch records scoped to a company.
type BranchStore interface {
	CreateBranch(ctx context.Context, branch retail.Branch) error
	GetBranch(ctx context.Context, id string) (retail.Branch, error)
	ListBranches(ctx context.Context, companyID string) ([]retail.Branch, error)
	UpdateBranch(ctx context.Context, branch retail.Branch) error
	DeleteBranch(ctx context.Context, id string) error
}

// WarehouseStore persists warehouse records scoped to a company.
type WarehouseStore interface {
	CreateWarehouse(ctx context.Context, warehouse retail.Warehouse) error
	GetWarehouse(ctx context.Context, id string) (retail.Warehouse, error)
	ListWarehouses(ctx context.Context, companyID string) ([]retail.Warehouse, error)
	UpdateWarehouse(ctx context.Context, warehouse retail.Warehouse) error
	DeleteWarehouse(ctx context.Context, id string) error
}

// ManagerStore persists manager records scoped to a company.
type ManagerStore interface {
	CreateManager(ctx context.Context, manager retail.Manager) error
	GetManager(ctx context.Context, id string) (retail.Manager, error)
	ListManagers(ctx context.Context, companyID string) ([]retail.Manager, error)
	UpdateManager(ctx context.Context, manager retail.Manager) error
	DeleteManager(ctx context.Context, id string) error
}

// SupplierStore persists supplier records scoped to a company.
type SupplierStore interface {
	CreateSupplier(ctx context.Context, supplier retail.Supplier) error
	GetSupplier(ctx context.Context, id string) (retail.Supplier, error)
	ListSuppliers(ctx context.Context, companyID string) ([]retail.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier retail.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
}

// CustomerStore persists customer records scoped to a company.
type CustomerStore interface {
	CreateCustomer(ctx context.Context, customer retail.Customer) error
	GetCustomer(ctx context.Context, id string) (retail.Customer, error)
	ListCustomers(ctx context.Context, companyID string) ([]retail.Customer, error)
	UpdateCustomer(ctx context.Context, customer retail.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}

// Credential stores one login secret for an admin or manager actor.
// Emails are unique per actor kind.
type Credential struct {
	ActorKind    string
	ActorID      string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CredentialStore persists login credentials.
type CredentialStore interface {
	PutCredential(ctx context.Context, credential Credential) error
	GetCredential(ctx context.Context, actorKind, actorID string) (Credential, error)
	GetCredentialByEmail(ctx context.Context, actorKind, email string) (Credential, error)
	DeleteCredential(ctx context.Context, actorKind, actorID string) error
}

// AuditChange stores one formatted field transition of an audited edit.
type AuditChange struct {
	Field string
	Old   string
	New   string
}

// AuditEvent stores one append-only audit trail entry.
type AuditEvent struct {
	ID         string
	EntityKind string
	EntityID   string
	EntityName string
	Action     string
	ActorKind  string
	ActorID    string
	Reason     string
	Changes    []AuditChange
	OccurredAt time.Time
}

// AuditQuery restricts an audit listing. WhereSQL is a predicate over the
// columns entity_kind, entity_id, entity_name, action, actor_kind,
// actor_id and occurred_at, with placeholders bound from Args.
type AuditQuery struct {
	WhereSQL string
	Args     []any
	Limit    int
}

// AuditStore persists the append-only audit trail.
type AuditStore interface {
	AppendAuditEvent(ctx context.Context, event AuditEvent) error
	ListAuditEvents(ctx context.Context, query AuditQuery) ([]AuditEvent, error)
}

// Store aggregates every persistence contract backed by one database.
type Store interface {
	CompanyStore
	BranchStore
	WarehouseStore
	ManagerStore
	SupplierStore
	CustomerStore
	CredentialStore
	AuditStore
	Close() error
}
