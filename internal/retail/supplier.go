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
	// ErrSupplierNameEmpty indicates a missing supplier name.
	ErrSupplierNameEmpty = apperrors.New(apperrors.CodeSupplierNameEmpty, "supplier name is required")
	// ErrSupplierCompanyIDEmpty indicates a supplier without an owning company.
	ErrSupplierCompanyIDEmpty = apperrors.New(apperrors.CodeSupplierCompanyIDEmpty, "supplier company id is required")
)

// Supplier is an upstream vendor a company buys from.
type Supplier struct {
	ID string
	// CompanyID is the owning company (required, immutable).
	CompanyID   string
	Name        string
	ContactName string
	Email       string
	Phone       string
	// Categories are the product categories this supplier covers. Order
	// is not significant.
	Categories []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateSupplierInput describes the data needed to register a supplier.
type CreateSupplierInput struct {
	CompanyID   string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Categories  []string
}

// NormalizeCreateSupplierInput trims and validates supplier input.
func NormalizeCreateSupplierInput(input CreateSupplierInput) (CreateSupplierInput, error) {
	input.CompanyID = strings.TrimSpace(input.CompanyID)
	input.Name = strings.TrimSpace(input.Name)
	input.ContactName = strings.TrimSpace(input.ContactName)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Categories = normalizeList(input.Categories)
	if input.CompanyID == "" {
		return CreateSupplierInput{}, ErrSupplierCompanyIDEmpty
	}
	if input.Name == "" {
		return CreateSupplierInput{}, ErrSupplierNameEmpty
	}
	return input, nil
}

// CreateSupplier creates a new supplier with a generated ID and timestamps.
func CreateSupplier(input CreateSupplierInput, now func() time.Time, idGenerator func() (string, error)) (Supplier, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateSupplierInput(input)
	if err != nil {
		return Supplier{}, err
	}

	supplierID, err := idGenerator()
	if err != nil {
		return Supplier{}, fmt.Errorf("generate supplier id: %w", err)
	}

	createdAt := now().UTC()
	return Supplier{
		ID:          supplierID,
		CompanyID:   normalized.CompanyID,
		Name:        normalized.Name,
		ContactName: normalized.ContactName,
		Email:       normalized.Email,
		Phone:       normalized.Phone,
		Categories:  normalized.Categories,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// Kind returns the entity kind slug.
func (s Supplier) Kind() EntityKind {
	return EntitySupplier
}

// DisplayName returns the name a deletion confirmation must match.
func (s Supplier) DisplayName() string {
	return s.Name
}

// Snapshot captures the tracked fields for change detection.
func (s Supplier) Snapshot() changeset.Snapshot {
	return changeset.Snapshot{
		"name":        changeset.Text(s.Name),
		"contactName": changeset.Text(s.ContactName),
		"email":       changeset.Text(s.Email),
		"phone":       changeset.Text(s.Phone),
		"categories":  changeset.Strings(s.Categories),
	}
}

// Apply merges a partial snapshot of changed fields, revalidates the
// result and bumps UpdatedAt.
func (s Supplier) Apply(data changeset.Snapshot, now func() time.Time) (Supplier, error) {
	if now == nil {
		now = time.Now
	}

	updated := s
	applyText(data, "name", &updated.Name)
	applyText(data, "contactName", &updated.ContactName)
	applyText(data, "email", &updated.Email)
	applyText(data, "phone", &updated.Phone)
	applyStrings(data, "categories", &updated.Categories)

	if updated.Name == "" {
		return Supplier{}, ErrSupplierNameEmpty
	}

	updated.UpdatedAt = now().UTC()
	return updated, nil
}
