// Package service orchestrates back-office operations: validated
// creation, change-tracked guarded edits, staged guarded deletions and
// the audit trail behind all of them.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/trastiendahq/trastienda/internal/audit"
	"github.com/trastiendahq/trastienda/internal/auth"
	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/guard"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// Service exposes the back-office operations. All mutating operations
// require an authenticated actor in context.
type Service struct {
	store       storage.Store
	recorder    *audit.Recorder
	auth        *auth.Authenticator
	now         func() time.Time
	idGenerator func() (string, error)
}

// New creates a service over the given collaborators. The recorder may
// be nil, which disables audit emission.
func New(store storage.Store, recorder *audit.Recorder, authenticator *auth.Authenticator) *Service {
	return &Service{
		store:    store,
		recorder: recorder,
		auth:     authenticator,
		now:      time.Now,
	}
}

// requireActor returns the authenticated actor or an unauthorized error.
func requireActor(ctx context.Context) (requestctx.Actor, error) {
	actor, ok := requestctx.ActorFromContext(ctx)
	if !ok {
		return requestctx.Actor{}, apperrors.New(apperrors.CodeUnauthorized, "sign in to continue")
	}
	return actor, nil
}

// requireAdmin rejects non-admin actors.
func requireAdmin(ctx context.Context) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if actor.Kind != requestctx.ActorKindAdmin {
		return apperrors.New(apperrors.CodeForbidden, "administrator access is required")
	}
	return nil
}

// requireCompanyScope rejects managers acting outside their own company.
// Admins pass unconditionally.
func requireCompanyScope(ctx context.Context, companyID string) error {
	actor, err := requireActor(ctx)
	if err != nil {
		return err
	}
	if actor.Kind == requestctx.ActorKindManager && actor.CompanyID != companyID {
		return apperrors.New(apperrors.CodeForbidden, "operation is outside your company")
	}
	return nil
}

// mapStorageError converts storage sentinels into domain errors.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.New(apperrors.CodeNotFound, "record not found")
	}
	return err
}

// mergeSnapshot overlays edited fields onto an initial snapshot. Only
// fields the entity tracks are accepted; anything else is dropped.
func mergeSnapshot(initial, fields changeset.Snapshot) changeset.Snapshot {
	edited := make(changeset.Snapshot, len(initial))
	for field, value := range initial {
		edited[field] = value
	}
	for field, value := range fields {
		if _, ok := initial[field]; ok {
			edited[field] = value
		}
	}
	return edited
}

// confirmUpdate runs one guarded edit confirmation over the change set.
func confirmUpdate(ctx context.Context, changes *changeset.ChangeSet, reason string, commit guard.UpdateFunc) guard.Outcome {
	session := guard.NewEditSession(changes, commit)
	return session.Confirm(ctx, reason)
}

// confirmDelete runs the staged deletion workflow to completion: the
// target is presented, the cascade warning acknowledged, and the typed
// name and password checked before the delete executes.
func (s *Service) confirmDelete(ctx context.Context, target guard.Target, confirmName, password string, del guard.DeleteFunc) guard.Outcome {
	actor, err := requireActor(ctx)
	if err != nil {
		return guard.Outcome{Err: apperrors.New(apperrors.CodeUnauthorized, "sign in to continue")}
	}
	session := guard.NewDeletionSession(target, guard.DeletionConfig{
		Verifier: s.auth.ForActor(actor),
		Delete:   del,
	})
	session.Next()
	session.Next()
	return session.Confirm(ctx, confirmName, password)
}

func (s *Service) clock() func() time.Time {
	if s.now == nil {
		return time.Now
	}
	return s.now
}
