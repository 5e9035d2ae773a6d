package service

import (
	"context"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	"github.com/trastiendahq/trastienda/internal/retail"
)

// CreateCustomer registers a new customer under a company.
func (s *Service) CreateCustomer(ctx context.Context, input retail.CreateCustomerInput) (retail.Customer, error) {
	if err := requireCompanyScope(ctx, input.CompanyID); err != nil {
		return retail.Customer{}, err
	}
	customer, err := retail.CreateCustomer(input, s.now, s.idGenerator)
	if err != nil {
		return retail.Customer{}, err
	}
	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return retail.Customer{}, mapStorageError(err)
	}
	_ = s.recorder.Record(ctx, audit.Entry{
		EntityKind: retail.EntityCustomer,
		EntityID:   customer.ID,
		EntityName: customer.DisplayName(),
		Action:     audit.ActionCreate,
	})
	return customer, nil
}

// GetCustomer returns one customer within the caller's scope.
func (s *Service) GetCustomer(ctx context.Context, id string) (retail.Customer, error) {
	customer, err := s.store.GetCustomer(ctx, id)
	if err != nil {
		return retail.Customer{}, mapStorageError(err)
	}
	if err := requireCompanyScope(ctx, customer.CompanyID); err != nil {
		return retail.Customer{}, err
	}
	return customer, nil
}

// ListCustomers returns a company's customers within the caller's scope.
func (s *Service) ListCustomers(ctx context.Context, companyID string) ([]retail.Customer, error) {
	if err := requireCompanyScope(ctx, companyID); err != nil {
		return nil, err
	}
	customers, err := s.store.ListCustomers(ctx, companyID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return customers, nil
}

// UpdateCustomer applies a guarded edit to a customer.
func (s *Service) UpdateCustomer(ctx context.Context, id string, fields changeset.Snapshot, reason string, opts ...changeset.Option) (retail.Customer, *changeset.ChangeSet, guard.Outcome, error) {
	current, err := s.GetCustomer(ctx, id)
	if err != nil {
		return retail.Customer{}, nil, guard.Outcome{}, err
	}

	initial := current.Snapshot()
	changes := changeset.Compute(initial, mergeSnapshot(initial, fields), opts...)
	if !changes.HasChanges() {
		return current, changes, guard.Outcome{Done: true}, nil
	}

	updated := current
	outcome := confirmUpdate(ctx, changes, reason, func(ctx context.Context, confirmedReason string) error {
		applied, err := current.Apply(changes.ChangedData(), s.clock())
		if err != nil {
			return err
		}
		if err := s.store.UpdateCustomer(ctx, applied); err != nil {
			return mapStorageError(err)
		}
		updated = applied
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityCustomer,
			EntityID:   applied.ID,
			EntityName: applied.DisplayName(),
			Action:     audit.ActionUpdate,
			Reason:     confirmedReason,
			Changes:    changes,
		})
	})
	return updated, changes, outcome, nil
}

// CustomerDeletionTarget loads the warning-stage view of a pending
// customer deletion.
func (s *Service) CustomerDeletionTarget(ctx context.Context, id string) (guard.Target, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return guard.Target{}, err
	}
	return guard.Target{
		ID:          customer.ID,
		DisplayName: customer.DisplayName(),
		Notices:     retail.EntityCustomer.DeletionNoticeKeys(),
	}, nil
}

// DeleteCustomer runs the guarded deletion workflow for a customer.
func (s *Service) DeleteCustomer(ctx context.Context, id, confirmName, password string) (guard.Outcome, error) {
	target, err := s.CustomerDeletionTarget(ctx, id)
	if err != nil {
		return guard.Outcome{}, err
	}
	outcome := s.confirmDelete(ctx, target, confirmName, password, func(ctx context.Context) error {
		if err := s.store.DeleteCustomer(ctx, id); err != nil {
			return mapStorageError(err)
		}
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityCustomer,
			EntityID:   target.ID,
			EntityName: target.DisplayName,
			Action:     audit.ActionDelete,
		})
	})
	return outcome, nil
}
