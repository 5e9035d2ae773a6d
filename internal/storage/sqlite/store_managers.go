package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// CreateManager inserts one manager record.
func (s *Store) CreateManager(ctx context.Context, manager retail.Manager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO managers (id, company_id, branch_id, name, email, phone, hired_on, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		manager.ID, manager.CompanyID, manager.BranchID, manager.Name, manager.Email,
		manager.Phone, toMillis(manager.HiredOn),
		toMillis(manager.CreatedAt), toMillis(manager.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create manager: %w", err)
	}
	return nil
}

// GetManager returns one manager by ID.
func (s *Store) GetManager(ctx context.Context, id string) (retail.Manager, error) {
	if err := ctx.Err(); err != nil {
		return retail.Manager{}, err
	}
	if err := s.ready(); err != nil {
		return retail.Manager{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, company_id, branch_id, name, email, phone, hired_on, created_at, updated_at
		   FROM managers WHERE id = ?`,
		id,
	)
	return scanManager(row)
}

// ListManagers returns a company's managers ordered by name.
func (s *Store) ListManagers(ctx context.Context, companyID string) ([]retail.Manager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, company_id, branch_id, name, email, phone, hired_on, created_at, updated_at
		   FROM managers WHERE company_id = ? ORDER BY name ASC, id ASC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	defer rows.Close()

	var managers []retail.Manager
	for rows.Next() {
		manager, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		managers = append(managers, manager)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return managers, nil
}

// UpdateManager rewrites one manager record. The company scope is immutable.
func (s *Store) UpdateManager(ctx context.Context, manager retail.Manager) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE managers
		    SET branch_id = ?, name = ?, email = ?, phone = ?, hired_on = ?, updated_at = ?
		  WHERE id = ?`,
		manager.BranchID, manager.Name, manager.Email, manager.Phone,
		toMillis(manager.HiredOn), toMillis(manager.UpdatedAt), manager.ID,
	)
	if err != nil {
		return fmt.Errorf("update manager: %w", err)
	}
	return requireRow(result, "update manager")
}

// DeleteManager removes one manager record.
func (s *Store) DeleteManager(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM managers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete manager: %w", err)
	}
	return requireRow(result, "delete manager")
}

func scanManager(row rowScanner) (retail.Manager, error) {
	var manager retail.Manager
	var hiredOn, createdAt, updatedAt int64
	err := row.Scan(
		&manager.ID, &manager.CompanyID, &manager.BranchID, &manager.Name,
		&manager.Email, &manager.Phone, &hiredOn, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return retail.Manager{}, storage.ErrNotFound
		}
		return retail.Manager{}, fmt.Errorf("scan manager: %w", err)
	}
	manager.HiredOn = fromMillis(hiredOn)
	manager.CreatedAt = fromMillis(createdAt)
	manager.UpdatedAt = fromMillis(updatedAt)
	return manager, nil
}
