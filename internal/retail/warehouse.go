package retail

import (
	"fmt"
	"strings"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/platform/id"
)

var (
	// ErrWarehouseNameEmpty indicates a missing warehouse name.
	ErrWarehouseNameEmpty = apperrors.New(apperrors.CodeWarehouseNameEmpty, "warehouse name is required")
	// ErrWarehouseCompanyIDEmpty indicates a warehouse without an owning company.
	ErrWarehouseCompanyIDEmpty = apperrors.New(apperrors.CodeWarehouseCompanyIDEmpty, "warehouse company id is required")
	// ErrWarehouseInvalidCapacity indicates a negative storage capacity.
	ErrWarehouseInvalidCapacity = apperrors.New(apperrors.CodeWarehouseInvalidCapacity, "warehouse capacity must not be negative")
)

// Warehouse is a storage site. It may be attached to a branch or stand
// alone as a central depot.
type Warehouse struct {
	ID string
	// CompanyID is the owning company (required, immutable).
	CompanyID string
	// BranchID is the attached branch, empty for a central warehouse.
	BranchID string
	Name     string
	Address  string
	// Capacity is the storage capacity in arbitrary units, never negative.
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateWarehouseInput describes the data needed to register a warehouse.
type CreateWarehouseInput struct {
	CompanyID string
	BranchID  string
	Name      string
	Address   string
	Capacity  int
}

// NormalizeCreateWarehouseInput trims and validates warehouse input.
func NormalizeCreateWarehouseInput(input CreateWarehouseInput) (CreateWarehouseInput, error) {
	input.CompanyID = strings.TrimSpace(input.CompanyID)
	input.BranchID = strings.TrimSpace(input.BranchID)
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	if input.CompanyID == "" {
		return CreateWarehouseInput{}, ErrWarehouseCompanyIDEmpty
	}
	if input.Name == "" {
		return CreateWarehouseInput{}, ErrWarehouseNameEmpty
	}
	if input.Capacity < 0 {
		return CreateWarehouseInput{}, ErrWarehouseInvalidCapacity
	}
	return input, nil
}

// CreateWarehouse creates a new warehouse with a generated ID and timestamps.
func CreateWarehouse(input CreateWarehouseInput, now func() time.Time, idGenerator func() (string, error)) (Warehouse, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateWarehouseInput(input)
	if err != nil {
		return Warehouse{}, err
	}

	warehouseID, err := idGenerator()
	if err != nil {
		return Warehouse{}, fmt.Errorf("generate warehouse id: %w", err)
	}

	createdAt := now().UTC()
	return Warehouse{
		ID:        warehouseID,
		CompanyID: normalized.CompanyID,
		BranchID:  normalized.BranchID,
		Name:      normalized.Name,
		Address:   normalized.Address,
		Capacity:  normalized.Capacity,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Kind returns the entity kind slug.
func (w Warehouse) Kind() EntityKind {
	return EntityWarehouse
}

// DisplayName returns the name a deletion confirmation must match.
func (w Warehouse) DisplayName() string {
	return w.Name
}

// Snapshot captures the tracked fields for change detection.
func (w Warehouse) Snapshot() changeset.Snapshot {
	return changeset.Snapshot{
		"name":     changeset.Text(w.Name),
		"branchId": changeset.Text(w.BranchID),
		"address":  changeset.Text(w.Address),
		"capacity": changeset.Int(w.Capacity),
	}
}

// Apply merges a partial snapshot of changed fields, revalidates the
// result and bumps UpdatedAt.
func (w Warehouse) Apply(data changeset.Snapshot, now func() time.Time) (Warehouse, error) {
	if now == nil {
		now = time.Now
	}

	updated := w
	applyText(data, "name", &updated.Name)
	applyText(data, "branchId", &updated.BranchID)
	applyText(data, "address", &updated.Address)
	applyInt(data, "capacity", &updated.Capacity)

	if updated.Name == "" {
		return Warehouse{}, ErrWarehouseNameEmpty
	}
	if updated.Capacity < 0 {
		return Warehouse{}, ErrWarehouseInvalidCapacity
	}

	updated.UpdatedAt = now().UTC()
	return updated, nil
}
