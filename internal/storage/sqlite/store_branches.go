package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// CreateBranch inserts one branch record.
func (s *Store) CreateBranch(ctx context.Context, branch retail.Branch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO branches (id, company_id, name, phone, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		branch.ID, branch.CompanyID, branch.Name, branch.Phone, branch.Address,
		toMillis(branch.CreatedAt), toMillis(branch.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

// GetBranch returns one branch by ID.
func (s *Store) GetBranch(ctx context.Context, id string) (retail.Branch, error) {
	if err := ctx.Err(); err != nil {
		return retail.Branch{}, err
	}
	if err := s.ready(); err != nil {
		return retail.Branch{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, company_id, name, phone, address, created_at, updated_at
		   FROM branches WHERE id = ?`,
		id,
	)
	return scanBranch(row)
}

// ListBranches returns a company's branches ordered by name.
func (s *Store) ListBranches(ctx context.Context, companyID string) ([]retail.Branch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, company_id, name, phone, address, created_at, updated_at
		   FROM branches WHERE company_id = ? ORDER BY name ASC, id ASC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var branches []retail.Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}

// UpdateBranch rewrites one branch record. The company scope is immutable.
func (s *Store) UpdateBranch(ctx context.Context, branch retail.Branch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE branches SET name = ?, phone = ?, address = ?, updated_at = ? WHERE id = ?`,
		branch.Name, branch.Phone, branch.Address, toMillis(branch.UpdatedAt), branch.ID,
	)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return requireRow(result, "update branch")
}

// DeleteBranch removes one branch record.
func (s *Store) DeleteBranch(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM branches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return requireRow(result, "delete branch")
}

func scanBranch(row rowScanner) (retail.Branch, error) {
	var branch retail.Branch
	var createdAt, updatedAt int64
	err := row.Scan(
		&branch.ID, &branch.CompanyID, &branch.Name, &branch.Phone,
		&branch.Address, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return retail.Branch{}, storage.ErrNotFound
		}
		return retail.Branch{}, fmt.Errorf("scan branch: %w", err)
	}
	branch.CreatedAt = fromMillis(createdAt)
	branch.UpdatedAt = fromMillis(updatedAt)
	return branch, nil
}
