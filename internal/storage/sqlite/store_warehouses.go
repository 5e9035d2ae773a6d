package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// CreateWarehouse inserts one warehouse record.
func (s *Store) CreateWarehouse(ctx context.Context, warehouse retail.Warehouse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO warehouses (id, company_id, branch_id, name, address, capacity, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		warehouse.ID, warehouse.CompanyID, warehouse.BranchID, warehouse.Name,
		warehouse.Address, warehouse.Capacity,
		toMillis(warehouse.CreatedAt), toMillis(warehouse.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

// GetWarehouse returns one warehouse by ID.
func (s *Store) GetWarehouse(ctx context.Context, id string) (retail.Warehouse, error) {
	if err := ctx.Err(); err != nil {
		return retail.Warehouse{}, err
	}
	if err := s.ready(); err != nil {
		return retail.Warehouse{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, company_id, branch_id, name, address, capacity, created_at, updated_at
		   FROM warehouses WHERE id = ?`,
		id,
	)
	return scanWarehouse(row)
}

// ListWarehouses returns a company's warehouses ordered by name.
func (s *Store) ListWarehouses(ctx context.Context, companyID string) ([]retail.Warehouse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, company_id, branch_id, name, address, capacity, created_at, updated_at
		   FROM warehouses WHERE company_id = ? ORDER BY name ASC, id ASC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []retail.Warehouse
	for rows.Next() {
		warehouse, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return warehouses, nil
}

// UpdateWarehouse rewrites one warehouse record. The company scope is
// immutable.
func (s *Store) UpdateWarehouse(ctx context.Context, warehouse retail.Warehouse) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE warehouses
		    SET branch_id = ?, name = ?, address = ?, capacity = ?, updated_at = ?
		  WHERE id = ?`,
		warehouse.BranchID, warehouse.Name, warehouse.Address, warehouse.Capacity,
		toMillis(warehouse.UpdatedAt), warehouse.ID,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return requireRow(result, "update warehouse")
}

// DeleteWarehouse removes one warehouse record.
func (s *Store) DeleteWarehouse(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM warehouses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return requireRow(result, "delete warehouse")
}

func scanWarehouse(row rowScanner) (retail.Warehouse, error) {
	var warehouse retail.Warehouse
	var createdAt, updatedAt int64
	err := row.Scan(
		&warehouse.ID, &warehouse.CompanyID, &warehouse.BranchID, &warehouse.Name,
		&warehouse.Address, &warehouse.Capacity, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return retail.Warehouse{}, storage.ErrNotFound
		}
		return retail.Warehouse{}, fmt.Errorf("scan warehouse: %w", err)
	}
	warehouse.CreatedAt = fromMillis(createdAt)
	warehouse.UpdatedAt = fromMillis(updatedAt)
	return warehouse, nil
}
