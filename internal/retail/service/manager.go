package service

import (
	"context"
	"errors"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// CreateManager registers a new manager under a company.
func (s *Service) CreateManager(ctx context.Context, input retail.CreateManagerInput) (retail.Manager, error) {
	if err := requireCompanyScope(ctx, input.CompanyID); err != nil {
		return retail.Manager{}, err
	}
	manager, err := retail.CreateManager(input, s.now, s.idGenerator)
	if err != nil {
		return retail.Manager{}, err
	}
	if err := s.store.CreateManager(ctx, manager); err != nil {
		return retail.Manager{}, mapStorageError(err)
	}
	_ = s.recorder.Record(ctx, audit.Entry{
		EntityKind: retail.EntityManager,
		EntityID:   manager.ID,
		EntityName: manager.DisplayName(),
		Action:     audit.ActionCreate,
	})
	return manager, nil
}

// GetManager returns one manager within the caller's scope.
func (s *Service) GetManager(ctx context.Context, id string) (retail.Manager, error) {
	manager, err := s.store.GetManager(ctx, id)
	if err != nil {
		return retail.Manager{}, mapStorageError(err)
	}
	if err := requireCompanyScope(ctx, manager.CompanyID); err != nil {
		return retail.Manager{}, err
	}
	return manager, nil
}

// ListManagers returns a company's managers within the caller's scope.
func (s *Service) ListManagers(ctx context.Context, companyID string) ([]retail.Manager, error) {
	if err := requireCompanyScope(ctx, companyID); err != nil {
		return nil, err
	}
	managers, err := s.store.ListManagers(ctx, companyID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return managers, nil
}

// UpdateManager applies a guarded edit to a manager.
func (s *Service) UpdateManager(ctx context.Context, id string, fields changeset.Snapshot, reason string, opts ...changeset.Option) (retail.Manager, *changeset.ChangeSet, guard.Outcome, error) {
	current, err := s.GetManager(ctx, id)
	if err != nil {
		return retail.Manager{}, nil, guard.Outcome{}, err
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
		if err := s.store.UpdateManager(ctx, applied); err != nil {
			return mapStorageError(err)
		}
		updated = applied
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityManager,
			EntityID:   applied.ID,
			EntityName: applied.DisplayName(),
			Action:     audit.ActionUpdate,
			Reason:     confirmedReason,
			Changes:    changes,
		})
	})
	return updated, changes, outcome, nil
}

// SetManagerPassword stores the manager's login credential. Admin only.
func (s *Service) SetManagerPassword(ctx context.Context, managerID, password string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	manager, err := s.store.GetManager(ctx, managerID)
	if err != nil {
		return mapStorageError(err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	stamp := s.clock()().UTC()
	return mapStorageError(s.store.PutCredential(ctx, storage.Credential{
		ActorKind:    requestctx.ActorKindManager,
		ActorID:      manager.ID,
		Email:        manager.Email,
		PasswordHash: hash,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}))
}

// ManagerDeletionTarget loads the warning-stage view of a pending
// manager deletion.
func (s *Service) ManagerDeletionTarget(ctx context.Context, id string) (guard.Target, error) {
	manager, err := s.GetManager(ctx, id)
	if err != nil {
		return guard.Target{}, err
	}
	return guard.Target{
		ID:          manager.ID,
		DisplayName: manager.DisplayName(),
		Notices:     retail.EntityManager.DeletionNoticeKeys(),
	}, nil
}

// DeleteManager runs the guarded deletion workflow for a manager. The
// manager's login credential is removed with the record.
func (s *Service) DeleteManager(ctx context.Context, id, confirmName, password string) (guard.Outcome, error) {
	target, err := s.ManagerDeletionTarget(ctx, id)
	if err != nil {
		return guard.Outcome{}, err
	}
	outcome := s.confirmDelete(ctx, target, confirmName, password, func(ctx context.Context) error {
		if err := s.store.DeleteManager(ctx, id); err != nil {
			return mapStorageError(err)
		}
		if err := s.store.DeleteCredential(ctx, requestctx.ActorKindManager, id); err != nil &&
			!errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityManager,
			EntityID:   target.ID,
			EntityName: target.DisplayName,
			Action:     audit.ActionDelete,
		})
	})
	return outcome, nil
}
