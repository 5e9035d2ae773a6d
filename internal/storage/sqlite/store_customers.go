package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// CreateCustomer inserts one customer record.
func (s *Store) CreateCustomer(ctx context.Context, customer retail.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	tags, err := encodeStrings(customer.Tags)
	if err != nil {
		return err
	}
	var bornOn sql.NullInt64
	if customer.BornOn != nil {
		bornOn = sql.NullInt64{Int64: toMillis(*customer.BornOn), Valid: true}
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO customers (id, company_id, name, email, phone, born_on, tags, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID, customer.CompanyID, customer.Name, customer.Email, customer.Phone,
		bornOn, tags, customer.Notes,
		toMillis(customer.CreatedAt), toMillis(customer.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

// GetCustomer returns one customer by ID.
func (s *Store) GetCustomer(ctx context.Context, id string) (retail.Customer, error) {
	if err := ctx.Err(); err != nil {
		return retail.Customer{}, err
	}
	if err := s.ready(); err != nil {
		return retail.Customer{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, company_id, name, email, phone, born_on, tags, notes, created_at, updated_at
		   FROM customers WHERE id = ?`,
		id,
	)
	return scanCustomer(row)
}

// ListCustomers returns a company's customers ordered by name.
func (s *Store) ListCustomers(ctx context.Context, companyID string) ([]retail.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, company_id, name, email, phone, born_on, tags, notes, created_at, updated_at
		   FROM customers WHERE company_id = ? ORDER BY name ASC, id ASC`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []retail.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer rewrites one customer record. The company scope is
// immutable.
func (s *Store) UpdateCustomer(ctx context.Context, customer retail.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	tags, err := encodeStrings(customer.Tags)
	if err != nil {
		return err
	}
	var bornOn sql.NullInt64
	if customer.BornOn != nil {
		bornOn = sql.NullInt64{Int64: toMillis(*customer.BornOn), Valid: true}
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE customers
		    SET name = ?, email = ?, phone = ?, born_on = ?, tags = ?, notes = ?, updated_at = ?
		  WHERE id = ?`,
		customer.Name, customer.Email, customer.Phone, bornOn, tags, customer.Notes,
		toMillis(customer.UpdatedAt), customer.ID,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return requireRow(result, "update customer")
}

// DeleteCustomer removes one customer record.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return requireRow(result, "delete customer")
}

func scanCustomer(row rowScanner) (retail.Customer, error) {
	var customer retail.Customer
	var bornOn sql.NullInt64
	var tags string
	var createdAt, updatedAt int64
	err := row.Scan(
		&customer.ID, &customer.CompanyID, &customer.Name, &customer.Email,
		&customer.Phone, &bornOn, &tags, &customer.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return retail.Customer{}, storage.ErrNotFound
		}
		return retail.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	if bornOn.Valid {
		day := fromMillis(bornOn.Int64)
		customer.BornOn = &day
	}
	customer.Tags, err = decodeStrings(tags)
	if err != nil {
		return retail.Customer{}, err
	}
	customer.CreatedAt = fromMillis(createdAt)
	customer.UpdatedAt = fromMillis(updatedAt)
	return customer, nil
}
