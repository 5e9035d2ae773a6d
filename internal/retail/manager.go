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
	// ErrManagerNameEmpty indicates a missing manager name.
	ErrManagerNameEmpty = apperrors.New(apperrors.CodeManagerNameEmpty, "manager name is required")
	// ErrManagerEmailEmpty indicates a missing manager email.
	ErrManagerEmailEmpty = apperrors.New(apperrors.CodeManagerEmailEmpty, "manager email is required")
	// ErrManagerBranchIDEmpty indicates a manager without a branch assignment.
	ErrManagerBranchIDEmpty = apperrors.New(apperrors.CodeManagerBranchIDEmpty, "manager branch id is required")
	// ErrManagerCompanyIDEmpty indicates a manager without an owning company.
	ErrManagerCompanyIDEmpty = apperrors.New(apperrors.CodeManagerCompanyIDEmpty, "manager company id is required")
)

// Manager is a staff account assigned to a branch. Managers sign in with
// their email and operate only on their company's data.
type Manager struct {
	ID string
	// CompanyID is the owning company (required, immutable).
	CompanyID string
	// BranchID is the branch assignment (required, reassignable).
	BranchID string
	Name     string
	Email    string
	Phone    string
	// HiredOn is the hire date, kept at UTC calendar-day granularity.
	HiredOn   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateManagerInput describes the data needed to register a manager.
type CreateManagerInput struct {
	CompanyID string
	BranchID  string
	Name      string
	Email     string
	Phone     string
	HiredOn   time.Time
}

// NormalizeCreateManagerInput trims and validates manager input. The
// hire date is reduced to its UTC calendar day; a zero hire date means
// hired today and is filled in by CreateManager.
func NormalizeCreateManagerInput(input CreateManagerInput) (CreateManagerInput, error) {
	input.CompanyID = strings.TrimSpace(input.CompanyID)
	input.BranchID = strings.TrimSpace(input.BranchID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	if input.CompanyID == "" {
		return CreateManagerInput{}, ErrManagerCompanyIDEmpty
	}
	if input.BranchID == "" {
		return CreateManagerInput{}, ErrManagerBranchIDEmpty
	}
	if input.Name == "" {
		return CreateManagerInput{}, ErrManagerNameEmpty
	}
	if input.Email == "" {
		return CreateManagerInput{}, ErrManagerEmailEmpty
	}
	if !input.HiredOn.IsZero() {
		input.HiredOn = calendarDay(input.HiredOn)
	}
	return input, nil
}

// CreateManager creates a new manager with a generated ID and timestamps.
func CreateManager(input CreateManagerInput, now func() time.Time, idGenerator func() (string, error)) (Manager, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateManagerInput(input)
	if err != nil {
		return Manager{}, err
	}

	managerID, err := idGenerator()
	if err != nil {
		return Manager{}, fmt.Errorf("generate manager id: %w", err)
	}

	createdAt := now().UTC()
	hiredOn := normalized.HiredOn
	if hiredOn.IsZero() {
		hiredOn = calendarDay(createdAt)
	}
	return Manager{
		ID:        managerID,
		CompanyID: normalized.CompanyID,
		BranchID:  normalized.BranchID,
		Name:      normalized.Name,
		Email:     normalized.Email,
		Phone:     normalized.Phone,
		HiredOn:   hiredOn,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Kind returns the entity kind slug.
func (m Manager) Kind() EntityKind {
	return EntityManager
}

// DisplayName returns the name a deletion confirmation must match.
func (m Manager) DisplayName() string {
	return m.Name
}

// Snapshot captures the tracked fields for change detection.
func (m Manager) Snapshot() changeset.Snapshot {
	return changeset.Snapshot{
		"name":     changeset.Text(m.Name),
		"email":    changeset.Text(m.Email),
		"phone":    changeset.Text(m.Phone),
		"branchId": changeset.Text(m.BranchID),
		"hiredOn":  changeset.Date(m.HiredOn),
	}
}

// Apply merges a partial snapshot of changed fields, revalidates the
// result and bumps UpdatedAt.
func (m Manager) Apply(data changeset.Snapshot, now func() time.Time) (Manager, error) {
	if now == nil {
		now = time.Now
	}

	updated := m
	applyText(data, "name", &updated.Name)
	applyText(data, "email", &updated.Email)
	applyText(data, "phone", &updated.Phone)
	applyText(data, "branchId", &updated.BranchID)
	applyDate(data, "hiredOn", &updated.HiredOn)

	if updated.Name == "" {
		return Manager{}, ErrManagerNameEmpty
	}
	if updated.Email == "" {
		return Manager{}, ErrManagerEmailEmpty
	}
	if updated.BranchID == "" {
		return Manager{}, ErrManagerBranchIDEmpty
	}

	updated.UpdatedAt = now().UTC()
	return updated, nil
}
