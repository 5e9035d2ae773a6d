package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// CreateSupplier inserts one supplier record.
func (s *Store) CreateSupplier(ctx context.Context, supplier retail.Supplier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	categories, err := encodeStrings(supplier.Categories)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO suppliers (id, company_id, name, contact_name, email, phone, categories, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		supplier.ID, supplier.CompanyID, supplier.Name, supplier.ContactName,
		supplier.Email, supplier.Phone, categories,
		toMillis(supplier.CreatedAt), toMillis(supplier.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetSupplier returns one supplier by ID.
func (s *Store) GetSupplier(ctx context.Context, id string) (retail.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return retail.Supplier{}, err
	}
	if err := s.ready(); err != nil {
		return retail.Supplier{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, company_id, name, contact_name, email, phone, categories, created_at, updated_at
		   FROM suppliers WHERE id = ?`,
		id,
	)
	return scanSupplier(row)
}

// ListSuppliers returns a company's suppliers ordered by name.
func (s *Store) ListSuppliers(ctx context.Context, companyID string) ([]retail.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, company_id, name, contact_name, email, phone, categories, created_at, updated_at
		   FROM suppliers WHERE company_id = ? ORDER BY name ASC, id ASC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []retail.Supplier
	for rows.Next() {
		supplier, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

// UpdateSupplier rewrites one supplier record. The company scope is
// immutable.
func (s *Store) UpdateSupplier(ctx context.Context, supplier retail.Supplier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	categories, err := encodeStrings(supplier.Categories)
	if err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE suppliers
		    SET name = ?, contact_name = ?, email = ?, phone = ?, categories = ?, updated_at = ?
		  WHERE id = ?`,
		supplier.Name, supplier.ContactName, supplier.Email, supplier.Phone,
		categories, toMillis(supplier.UpdatedAt), supplier.ID,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return requireRow(result, "update supplier")
}

// DeleteSupplier removes one supplier record.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return requireRow(result, "delete supplier")
}

func scanSupplier(row rowScanner) (retail.Supplier, error) {
	var supplier retail.Supplier
	var categories string
	var createdAt, updatedAt int64
	err := row.Scan(
		&supplier.ID, &supplier.CompanyID, &supplier.Name, &supplier.ContactName,
		&supplier.Email, &supplier.Phone, &categories, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return retail.Supplier{}, storage.ErrNotFound
		}
		return retail.Supplier{}, fmt.Errorf("scan supplier: %w", err)
	}
	supplier.Categories, err = decodeStrings(categories)
	if err != nil {
		return retail.Supplier{}, err
	}
	supplier.CreatedAt = fromMillis(createdAt)
	supplier.UpdatedAt = fromMillis(updatedAt)
	return supplier, nil
}
