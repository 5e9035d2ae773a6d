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
	// ErrCompanyNameEmpty indicates a missing company name.
	ErrCompanyNameEmpty = apperrors.New(apperrors.CodeCompanyNameEmpty, "company name is required")
	// ErrCompanyTaxIDEmpty indicates a missing tax identifier.
	ErrCompanyTaxIDEmpty = apperrors.New(apperrors.CodeCompanyTaxIDEmpty, "company tax id is required")
)

// Company is the tenant root every other entity belongs to.
type Company struct {
	ID      string
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
	// CreatedAt is the timestamp when the company was registered.
	CreatedAt time.Time
	// UpdatedAt is the timestamp when company data last changed.
	UpdatedAt time.Time
}

// CreateCompanyInput describes the data needed to register a company.
type CreateCompanyInput struct {
	Name    string
	TaxID   string
	Email   string
	Phone   string
	Address string
}

// NormalizeCreateCompanyInput trims and validates company input.
func NormalizeCreateCompanyInput(input CreateCompanyInput) (CreateCompanyInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.TaxID = strings.TrimSpace(input.TaxID)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	if input.Name == "" {
		return CreateCompanyInput{}, ErrCompanyNameEmpty
	}
	if input.TaxID == "" {
		return CreateCompanyInput{}, ErrCompanyTaxIDEmpty
	}
	return input, nil
}

// CreateCompany creates a new company with a generated ID and timestamps.
func CreateCompany(input CreateCompanyInput, now func() time.Time, idGenerator func() (string, error)) (Company, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCompanyInput(input)
	if err != nil {
		return Company{}, err
	}

	companyID, err := idGenerator()
	if err != nil {
		return Company{}, fmt.Errorf("generate company id: %w", err)
	}

	createdAt := now().UTC()
	return Company{
		ID:        companyID,
		Name:      normalized.Name,
		TaxID:     normalized.TaxID,
		Email:     normalized.Email,
		Phone:     normalized.Phone,
		Address:   normalized.Address,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Kind returns the entity kind slug.
func (c Company) Kind() EntityKind {
	return EntityCompany
}

// DisplayName returns the name a deletion confirmation must match.
func (c Company) DisplayName() string {
	return c.Name
}

// Snapshot captures the tracked fields for change detection.
func (c Company) Snapshot() changeset.Snapshot {
	return changeset.Snapshot{
		"name":    changeset.Text(c.Name),
		"taxId":   changeset.Text(c.TaxID),
		"email":   changeset.Text(c.Email),
		"phone":   changeset.Text(c.Phone),
		"address": changeset.Text(c.Address),
	}
}

// Apply merges a partial snapshot of changed fields, revalidates the
// result and bumps UpdatedAt.
func (c Company) Apply(data changeset.Snapshot, now func() time.Time) (Company, error) {
	if now == nil {
		now = time.Now
	}

	updated := c
	applyText(data, "name", &updated.Name)
	applyText(data, "taxId", &updated.TaxID)
	applyText(data, "email", &updated.Email)
	applyText(data, "phone", &updated.Phone)
	applyText(data, "address", &updated.Address)

	if updated.Name == "" {
		return Company{}, ErrCompanyNameEmpty
	}
	if updated.TaxID == "" {
		return Company{}, ErrCompanyTaxIDEmpty
	}

	updated.UpdatedAt = now().UTC()
	return updated, nil
}
