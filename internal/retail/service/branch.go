package service

import (
	"context"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	"github.com/trastiendahq/trastienda/internal/retail"
)

// CreateBranch opens a new branch under a company.
func (s *Service) CreateBranch(ctx context.Context, input retail.CreateBranchInput) (retail.Branch, error) {
	if err := requireCompanyScope(ctx, input.CompanyID); err != nil {
		return retail.Branch{}, err
	}
	branch, err := retail.CreateBranch(input, s.now, s.idGenerator)
	if err != nil {
		return retail.Branch{}, err
	}
	if err := s.store.CreateBranch(ctx, branch); err != nil {
		return retail.Branch{}, mapStorageError(err)
	}
	_ = s.recorder.Record(ctx, audit.Entry{
		EntityKind: retail.EntityBranch,
		EntityID:   branch.ID,
		EntityName: branch.DisplayName(),
		Action:     audit.ActionCreate,
	})
	return branch, nil
}

// GetBranch returns one branch within the caller's scope.
func (s *Service) GetBranch(ctx context.Context, id string) (retail.Branch, error) {
	branch, err := s.store.GetBranch(ctx, id)
	if err != nil {
		return retail.Branch{}, mapStorageError(err)
	}
	if err := requireCompanyScope(ctx, branch.CompanyID); err != nil {
		return retail.Branch{}, err
	}
	return branch, nil
}

// ListBranches returns a company's branches within the caller's scope.
func (s *Service) ListBranches(ctx context.Context, companyID string) ([]retail.Branch, error) {
	if err := requireCompanyScope(ctx, companyID); err != nil {
		return nil, err
	}
	branches, err := s.store.ListBranches(ctx, companyID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return branches, nil
}

// UpdateBranch applies a guarded edit to a branch.
func (s *Service) UpdateBranch(ctx context.Context, id string, fields changeset.Snapshot, reason string, opts ...changeset.Option) (retail.Branch, *changeset.ChangeSet, guard.Outcome, error) {
	current, err := s.GetBranch(ctx, id)
	if err != nil {
		return retail.Branch{}, nil, guard.Outcome{}, err
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
		if err := s.store.UpdateBranch(ctx, applied); err != nil {
			return mapStorageError(err)
		}
		updated = applied
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityBranch,
			EntityID:   applied.ID,
			EntityName: applied.DisplayName(),
			Action:     audit.ActionUpdate,
			Reason:     confirmedReason,
			Changes:    changes,
		})
	})
	return updated, changes, outcome, nil
}

// BranchDeletionTarget loads the warning-stage view of a pending branch
// deletion.
func (s *Service) BranchDeletionTarget(ctx context.Context, id string) (guard.Target, error) {
	branch, err := s.GetBranch(ctx, id)
	if err != nil {
		return guard.Target{}, err
	}
	return guard.Target{
		ID:          branch.ID,
		DisplayName: branch.DisplayName(),
		Notices:     retail.EntityBranch.DeletionNoticeKeys(),
	}, nil
}

// DeleteBranch runs the guarded deletion workflow for a branch.
func (s *Service) DeleteBranch(ctx context.Context, id, confirmName, password string) (guard.Outcome, error) {
	target, err := s.BranchDeletionTarget(ctx, id)
	if err != nil {
		return guard.Outcome{}, err
	}
	outcome := s.confirmDelete(ctx, target, confirmName, password, func(ctx context.Context) error {
		if err := s.store.DeleteBranch(ctx, id); err != nil {
			return mapStorageError(err)
		}
		return s.recorder.Record(ctx, audit.Entry{
			EntityKind: retail.EntityBranch,
			EntityID:   target.ID,
			EntityName: target.DisplayName,
			Action:     audit.ActionDelete,
		})
	})
	return outcome, nil
}
