package service

import (
	"context"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	"github.com/trastiendahq/trastienda/internal/retail"
)

// CreateWarehouse registers a new warehouse under a company.
func (s *Service) CreateWarehouse(ctx context.Context, input retail.CreateWarehouseInput) (retail.Warehouse, error) {
	if err := requireCompanyScope(ctx, input.CompanyID); err != nil {
		return retail.Warehouse{}, err
	}
	warehouse, err := retail.CreateWarehouse(input, s.now, s.idGenerator)
	if err != nil {
		return retail.Warehouse{}, err
	}
	if err := s.store.CreateWarehouse(ctx, warehouse); err != nil {
		return retail.Warehouse{}, mapStorageError(err)
	}
	_ = s.recorder.Record(ctx, audit.Entry{
		EntityKind: retail.EntityWarehouse,
		EntityID:   warehouse.ID,
		EntityName: warehouse.DisplayName(),
		Action:     audit.ActionCreate,
	})
	return warehouse, nil
}

// GetWarehouse returns one warehouse within the caller's scope.
func (s *Service) GetWarehouse(ctx context.Context, id string) (retail.Warehouse, error) {
	warehouse, err := s.store.GetWarehouse(ctx, id)
	if err != nil {
		return retail.Warehouse{}, mapStorageError(err)
	}
	if err := requireCompanyScope(ctx, warehouse.CompanyID); err != nil {
		return retail.Warehouse{}, err
	}
	return warehouse, nil
}

// ListWarehouses returns a company's warehouses within the caller's scope.
func (s *Service) ListWarehouses(ctx context.Context, companyID string) ([]retail.Warehouse, error) {
	if err := requireCompanyScope(ctx, companyID); err != nil {
		return nil, err
	}
	warehouses, err := s.store.ListWarehouses(ctx, companyID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return warehouses, nil
}

// UpdateWarehouse applies a guarded edit to a warehouse.
func (s *Service) UpdateWarehouse(ctx context.Context, id string, fields changeset.Snapshot, reason string, opts ...changeset.Option) (retail.Warehouse, *changeset.ChangeSet, guard.Outcome, error) {
	current, err := s.GetWarehouse(ctx, id)
	if err != nil {
		return retail.Warehouse{}, nil, guard.Outcome{}, err
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
		if err := s.store.UpdateWarehouse(ctx, applied); err != nil {
			return mapStorageError(err)
		}
		updated = applied
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityWarehouse,
			EntityID:   applied.ID,
			EntityName: applied.DisplayName(),
			Action:     audit.ActionUpdate,
			Reason:     confirmedReason,
			Changes:    changes,
		})
	})
	return updated, changes, outcome, nil
}

// WarehouseDeletionTarget loads the warning-stage view of a pending
// warehouse deletion.
func (s *Service) WarehouseDeletionTarget(ctx context.Context, id string) (guard.Target, error) {
	warehouse, err := s.GetWarehouse(ctx, id)
	if err != nil {
		return guard.Target{}, err
	}
	return guard.Target{
		ID:          warehouse.ID,
		DisplayName: warehouse.DisplayName(),
		Notices:     retail.EntityWarehouse.DeletionNoticeKeys(),
	}, nil
}

// DeleteWarehouse runs the guarded deletion workflow for a warehouse.
func (s *Service) DeleteWarehouse(ctx context.Context, id, confirmName, password string) (guard.Outcome, error) {
	target, err := s.WarehouseDeletionTarget(ctx, id)
	if err != nil {
		return guard.Outcome{}, err
	}
	outcome := s.confirmDelete(ctx, target, confirmName, password, func(ctx context.Context) error {
		if err := s.store.DeleteWarehouse(ctx, id); err != nil {
			return mapStorageError(err)
		}
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityWarehouse,
			EntityID:   target.ID,
			EntityName: target.DisplayName,
			Action:     audit.ActionDelete,
		})
	})
	return outcome, nil
}
