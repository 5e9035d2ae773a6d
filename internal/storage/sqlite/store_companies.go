package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// CreateCompany inserts one company record.
func (s *Store) CreateCompany(ctx context.Context, company retail.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO companies (id, name, tax_id, email, phone, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		company.ID, company.Name, company.TaxID, company.Email, company.Phone, company.Address,
		toMillis(company.CreatedAt), toMillis(company.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// GetCompany returns one company by ID.
func (s *Store) GetCompany(ctx context.Context, id string) (retail.Company, error) {
	if err := ctx.Err(); err != nil {
		return retail.Company{}, err
	}
	if err := s.ready(); err != nil {
		return retail.Company{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, tax_id, email, phone, address, created_at, updated_at
		   FROM companies WHERE id = ?`,
		id,
	)
	return scanCompany(row)
}

// ListCompanies returns every company ordered by name.
func (s *Store) ListCompanies(ctx context.Context) ([]retail.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, tax_id, email, phone, address, created_at, updated_at
		   FROM companies ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []retail.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// UpdateCompany rewrites one company record.
func (s *Store) UpdateCompany(ctx context.Context, company retail.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE companies
		    SET name = ?, tax_id = ?, email = ?, phone = ?, address = ?, updated_at = ?
		  WHERE id = ?`,
		company.Name, company.TaxID, company.Email, company.Phone, company.Address,
		toMillis(company.UpdatedAt), company.ID,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return requireRow(result, "update company")
}

// DeleteCompany removes one company record.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return requireRow(result, "delete company")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (retail.Company, error) {
	var company retail.Company
	var createdAt, updatedAt int64
	err := row.Scan(
		&company.ID, &company.Name, &company.TaxID, &company.Email,
		&company.Phone, &company.Address, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return retail.Company{}, storage.ErrNotFound
		}
		return retail.Company{}, fmt.Errorf("scan company: %w", err)
	}
	company.CreatedAt = fromMillis(createdAt)
	company.UpdatedAt = fromMillis(updatedAt)
	return company, nil
}

// requireRow maps zero affected rows onto storage.ErrNotFound.
func requireRow(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
