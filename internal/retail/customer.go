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
	// ErrCustomerNameEmpty indicates a missing customer name.
	ErrCustomerNameEmpty = apperrors.New(apperrors.CodeCustomerNameEmpty, "customer name is required")
	// ErrCustomerCompanyIDEmpty indicates a customer without an owning company.
	ErrCustomerCompanyIDEmpty = apperrors.New(apperrors.CodeCustomerCompanyIDEmpty, "customer company id is required")
)

// Customer is a buyer profile kept by a company.
type Customer struct {
	ID string
	// CompanyID is the owning company (required, immutable).
	CompanyID string
	Name      string
	Email     string
	Phone     string
	// BornOn is the optional birth date at UTC calendar-day granularity.
	BornOn *time.Time
	// Tags are free-form labels. Order is not significant.
	Tags      []string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCustomerInput describes the data needed to register a customer.
type CreateCustomerInput struct {
	CompanyID string
	Name      string
	Email     string
	Phone     string
	BornOn    *time.Time
	Tags      []string
	Notes     string
}

// NormalizeCreateCustomerInput trims and validates customer input.
func NormalizeCreateCustomerInput(input CreateCustomerInput) (CreateCustomerInput, error) {
	input.CompanyID = strings.TrimSpace(input.CompanyID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Notes = strings.TrimSpace(input.Notes)
	input.Tags = normalizeList(input.Tags)
	if input.BornOn != nil {
		day := calendarDay(*input.BornOn)
		input.BornOn = &day
	}
	if input.CompanyID == "" {
		return CreateCustomerInput{}, ErrCustomerCompanyIDEmpty
	}
	if input.Name == "" {
		return CreateCustomerInput{}, ErrCustomerNameEmpty
	}
	return input, nil
}

// CreateCustomer creates a new customer with a generated ID and timestamps.
func CreateCustomer(input CreateCustomerInput, now func() time.Time, idGenerator func() (string, error)) (Customer, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCustomerInput(input)
	if err != nil {
		return Customer{}, err
	}

	customerID, err := idGenerator()
	if err != nil {
		return Customer{}, fmt.Errorf("generate customer id: %w", err)
	}

	createdAt := now().UTC()
	return Customer{
		ID:        customerID,
		CompanyID: normalized.CompanyID,
		Name:      normalized.Name,
		Email:     normalized.Email,
		Phone:     normalized.Phone,
		BornOn:    normalized.BornOn,
		Tags:      normalized.Tags,
		Notes:     normalized.Notes,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Kind returns the entity kind slug.
func (c Customer) Kind() EntityKind {
	return EntityCustomer
}

// DisplayName returns the name a deletion confirmation must match.
func (c Customer) DisplayName() string {
	return c.Name
}

// Snapshot captures the tracked fields for change detection.
func (c Customer) Snapshot() changeset.Snapshot {
	return changeset.Snapshot{
		"name":   changeset.Text(c.Name),
		"email":  changeset.Text(c.Email),
		"phone":  changeset.Text(c.Phone),
		"bornOn": optionalDateValue(c.BornOn),
		"tags":   changeset.Strings(c.Tags),
		"notes":  changeset.Text(c.Notes),
	}
}

// Apply merges a partial snapshot of changed fields, revalidates the
// result and bumps UpdatedAt.
func (c Customer) Apply(data changeset.Snapshot, now func() time.Time) (Customer, error) {
	if now == nil {
		now = time.Now
	}

	updated := c
	applyText(data, "name", &updated.Name)
	applyText(data, "email", &updated.Email)
	applyText(data, "phone", &updated.Phone)
	applyOptionalDate(data, "bornOn", &updated.BornOn)
	applyStrings(data, "tags", &updated.Tags)
	applyText(data, "notes", &updated.Notes)

	if updated.Name == "" {
		return Customer{}, ErrCustomerNameEmpty
	}

	updated.UpdatedAt = now().UTC()
	return updated, nil
}
