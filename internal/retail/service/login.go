package service

import (
	"context"
	"errors"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// LoginAdmin verifies an administrator credential and returns the actor
// identity to embed in a session token.
func (s *Service) LoginAdmin(ctx context.Context, email, password string) (requestctx.Actor, error) {
	credential, err := s.auth.Authenticate(ctx, requestctx.ActorKindAdmin, email, password)
	if err != nil {
		return requestctx.Actor{}, err
	}
	return requestctx.Actor{
		Kind: requestctx.ActorKindAdmin,
		ID:   credential.ActorID,
	}, nil
}

// LoginManager verifies a manager credential and returns the actor
// identity, scoped to the manager's company and branch. A credential
// whose manager record no longer exists is treated as invalid.
func (s *Service) LoginManager(ctx context.Context, email, password string) (requestctx.Actor, error) {
	credential, err := s.auth.Authenticate(ctx, requestctx.ActorKindManager, email, password)
	if err != nil {
		return requestctx.Actor{}, err
	}
	manager, err := s.store.GetManager(ctx, credential.ActorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return requestctx.Actor{}, apperrors.New(apperrors.CodeCredentialsInvalid, "invalid email or password")
		}
		return requestctx.Actor{}, err
	}
	return requestctx.Actor{
		Kind:      requestctx.ActorKindManager,
		ID:        manager.ID,
		CompanyID: manager.CompanyID,
		BranchID:  manager.BranchID,
	}, nil
}
