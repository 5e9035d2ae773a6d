package service

import (
	"context"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	"github.com/trastiendahq/trastienda/internal/retail"
)

// CreateCompany registers a new company. Admin only.
func (s *Service) CreateCompany(ctx context.Context, input retail.CreateCompanyInput) (retail.Company, error) {
	if err := requireAdmin(ctx); err != nil {
		return retail.Company{}, err
	}
	company, err := retail.CreateCompany(input, s.now, s.idGenerator)
	if err != nil {
		return retail.Company{}, err
	}
	if err := s.store.CreateCompany(ctx, company); err != nil {
		return retail.Company{}, mapStorageError(err)
	}
	_ = s.recorder.Record(ctx, audit.Entry{
		EntityKind: retail.EntityCompany,
		EntityID:   company.ID,
		EntityName: company.DisplayName(),
		Action:     audit.ActionCreate,
	})
	return company, nil
}

// GetCompany returns one company. Managers may only read their own.
func (s *Service) GetCompany(ctx context.Context, id string) (retail.Company, error) {
	if err := requireCompanyScope(ctx, id); err != nil {
		return retail.Company{}, err
	}
	company, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return retail.Company{}, mapStorageError(err)
	}
	return company, nil
}

// ListCompanies returns every company. Admin only.
func (s *Service) ListCompanies(ctx context.Context) ([]retail.Company, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return companies, nil
}

// UpdateCompany applies a guarded edit. The edited fields are diffed
// against the stored record; when nothing changed the update is a
// no-op. Otherwise the change set must be confirmed with a reason.
func (s *Service) UpdateCompany(ctx context.Context, id string, fields changeset.Snapshot, reason string, opts ...changeset.Option) (retail.Company, *changeset.ChangeSet, guard.Outcome, error) {
	current, err := s.GetCompany(ctx, id)
	if err != nil {
		return retail.Company{}, nil, guard.Outcome{}, err
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
		if err := s.store.UpdateCompany(ctx, applied); err != nil {
			return mapStorageError(err)
		}
		updated = applied
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityCompany,
			EntityID:   applied.ID,
			EntityName: applied.DisplayName(),
			Action:     audit.ActionUpdate,
			Reason:     confirmedReason,
			Changes:    changes,
		})
	})
	return updated, changes, outcome, nil
}

// CompanyDeletionTarget loads the warning-stage view of a pending
// company deletion.
func (s *Service) CompanyDeletionTarget(ctx context.Context, id string) (guard.Target, error) {
	if err := requireAdmin(ctx); err != nil {
		return guard.Target{}, err
	}
	company, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return guard.Target{}, mapStorageError(err)
	}
	return guard.Target{
		ID:          company.ID,
		DisplayName: company.DisplayName(),
		Notices:     retail.EntityCompany.DeletionNoticeKeys(),
	}, nil
}

// DeleteCompany runs the guarded deletion workflow. Admin only.
func (s *Service) DeleteCompany(ctx context.Context, id, confirmName, password string) (guard.Outcome, error) {
	target, err := s.CompanyDeletionTarget(ctx, id)
	if err != nil {
		return guard.Outcome{}, err
	}
	outcome := s.confirmDelete(ctx, target, confirmName, password, func(ctx context.Context) error {
		if err := s.store.DeleteCompany(ctx, id); err != nil {
			return mapStorageError(err)
		}
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityCompany,
			EntityID:   target.ID,
			EntityName: target.DisplayName,
			Action:     audit.ActionDelete,
		})
	})
	return outcome, nil
}
