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
	// ErrBranchNameEmpty indicates a missing branch name.
	ErrBranchNameEmpty = apperrors.New(apperrors.CodeBranchNameEmpty, "branch name is required")
	// ErrBranchCompanyIDEmpty indicates a branch without an owning company.
	ErrBranchCompanyIDEmpty = apperrors.New(apperrors.CodeBranchCompanyIDEmpty, "branch company id is required")
)

// Branch is a physical location operated by a company.
type Branch struct {
	ID string
	// CompanyID is the owning company (required, immutable).
	CompanyID string
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateBranchInput describes the data needed to open a branch.
type CreateBranchInput struct {
	CompanyID string
	Name      string
	Phone     string
	Address   string
}

// NormalizeCreateBranchInput trims and validates branch input.
func NormalizeCreateBranchInput(input CreateBranchInput) (CreateBranchInput, error) {
	input.CompanyID = strings.TrimSpace(input.CompanyID)
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Address = strings.TrimSpace(input.Address)
	if input.CompanyID == "" {
		return CreateBranchInput{}, ErrBranchCompanyIDEmpty
	}
	if input.Name == "" {
		return CreateBranchInput{}, ErrBranchNameEmpty
	}
	return input, nil
}

// CreateBranch creates a new branch with a generated ID and timestamps.
func CreateBranch(input CreateBranchInput, now func() time.Time, idGenerator func() (string, error)) (Branch, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateBranchInput(input)
	if err != nil {
		return Branch{}, err
	}

	branchID, err := idGenerator()
	if err != nil {
		return Branch{}, fmt.Errorf("generate branch id: %w", err)
	}

	createdAt := now().UTC()
	return Branch{
		ID:        branchID,
		CompanyID: normalized.CompanyID,
		Name:      normalized.Name,
		Phone:     normalized.Phone,
		Address:   normalized.Address,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Kind returns the entity kind slug.
func (b Branch) Kind() EntityKind {
	return EntityBranch
}

// DisplayName returns the name a deletion confirmation must match.
func (b Branch) DisplayName() string {
	return b.Name
}

// Snapshot captures the tracked fields for change detection. CompanyID
// is immutable and deliberately not tracked.
func (b Branch) Snapshot() changeset.Snapshot {
	return changeset.Snapshot{
		"name":    changeset.Text(b.Name),
		"phone":   changeset.Text(b.Phone),
		"address": changeset.Text(b.Address),
	}
}

// Apply merges a partial snapshot of changed fields, revalidates the
// result and bumps UpdatedAt.
func (b Branch) Apply(data changeset.Snapshot, now func() time.Time) (Branch, error) {
	if now == nil {
		now = time.Now
	}

	updated := b
	applyText(data, "name", &updated.Name)
	applyText(data, "phone", &updated.Phone)
	applyText(data, "address", &updated.Address)

	if updated.Name == "" {
		return Branch{}, ErrBranchNameEmpty
	}

	updated.UpdatedAt = now().UTC()
	return updated, nil
}
