package service

import (
	"context"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	"github.com/trastiendahq/trastienda/internal/retail"
)

// CreateSupplier registers a new supplier under a company.
func (s *Service) CreateSupplier(ctx context.Context, input retail.CreateSupplierInput) (retail.Supplier, error) {
	if err := requireCompanyScope(ctx, input.CompanyID); err != nil {
		return retail.Supplier{}, err
	}
	supplier, err := retail.CreateSupplier(input, s.now, s.idGenerator)
	if err != nil {
		return retail.Supplier{}, err
	}
	if err := s.store.CreateSupplier(ctx, supplier); err != nil {
		return retail.Supplier{}, mapStorageError(err)
	}
	_ = s.recorder.Record(ctx, audit.Entry{
		EntityKind: retail.EntitySupplier,
		EntityID:   supplier.ID,
		EntityName: supplier.DisplayName(),
		Action:     audit.ActionCreate,
	})
	return supplier, nil
}

// GetSupplier returns one supplier within the caller's scope.
func (s *Service) GetSupplier(ctx context.Context, id string) (retail.Supplier, error) {
	supplier, err := s.store.GetSupplier(ctx, id)
	if err != nil {
		return retail.Supplier{}, mapStorageError(err)
	}
	if err := requireCompanyScope(ctx, supplier.CompanyID); err != nil {
		return retail.Supplier{}, err
	}
	return supplier, nil
}

// ListSuppliers returns a company's suppliers within the caller's scope.
func (s *Service) ListSuppliers(ctx context.Context, companyID string) ([]retail.Supplier, error) {
	if err := requireCompanyScope(ctx, companyID); err != nil {
		return nil, err
	}
	suppliers, err := s.store.ListSuppliers(ctx, companyID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return suppliers, nil
}

// UpdateSupplier applies a guarded edit to a supplier.
func (s *Service) UpdateSupplier(ctx context.Context, id string, fields changeset.Snapshot, reason string, opts ...changeset.Option) (retail.Supplier, *changeset.ChangeSet, guard.Outcome, error) {
	current, err := s.GetSupplier(ctx, id)
	if err != nil {
		return retail.Supplier{}, nil, guard.Outcome{}, err
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
		if err := s.store.UpdateSupplier(ctx, applied); err != nil {
			return mapStorageError(err)
		}
		updated = applied
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntitySupplier,
			EntityID:   applied.ID,
			EntityName: applied.DisplayName(),
			Action:     audit.ActionUpdate,
			Reason:     confirmedReason,
			Changes:    changes,
		})
	})
	return updated, changes, outcome, nil
}

// SupplierDeletionTarget loads the warning-stage view of a pending
// supplier deletion.
func (s *Service) SupplierDeletionTarget(ctx context.Context, id string) (guard.Target, error) {
	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return guard.Target{}, err
	}
	return guard.Target{
		ID:          supplier.ID,
		DisplayName: supplier.DisplayName(),
		Notices:     retail.EntitySupplier.DeletionNoticeKeys(),
	}, nil
}

// DeleteSupplier runs the guarded deletion workflow for a supplier.
func (s *Service) DeleteSupplier(ctx context.Context, id, confirmName, password string) (guard.Outcome, error) {
	target, err := s.SupplierDeletionTarget(ctx, id)
	if err != nil {
		return guard.Outcome{}, err
	}
	outcome := s.confirmDelete(ctx, target, confirmName, password, func(ctx context.Context) error {
		if err := s.store.DeleteSupplier(ctx, id); err != nil {
			return mapStorageError(err)
		}
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntitySupplier,
			EntityID:   target.ID,
			EntityName: target.DisplayName,
			Action:     audit.ActionDelete,
		})
	})
	return outcome, nil
}
