package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// HashPassword returns the bcrypt hash stored for a credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticator verifies passwords against stored credentials.
type Authenticator struct {
	store storage.CredentialStore
}

// NewAuthenticator creates an authenticator backed by the given store.
func NewAuthenticator(store storage.CredentialStore) *Authenticator {
	return &Authenticator{store: store}
}

// Authenticate checks an email login. A missing credential and a wrong
// password report the same code so logins cannot probe for accounts.
func (a *Authenticator) Authenticate(ctx context.Context, actorKind, email, password string) (storage.Credential, error) {
	if a == nil || a.store == nil {
		return storage.Credential{}, errors.New("authenticator is not configured")
	}
	credential, err := a.store.GetCredentialByEmail(ctx, actorKind, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Credential{}, apperrors.New(apperrors.CodeCredentialsInvalid, "email or password is incorrect")
		}
		return storage.Credential{}, fmt.Errorf("load credential: %w", err)
	}
	if err := comparePassword(credential.PasswordHash, password); err != nil {
		return storage.Credential{}, err
	}
	return credential, nil
}

// ForActor returns a verifier that re-checks the given actor's own
// password, as required by the guarded deletion flow.
func (a *Authenticator) ForActor(actor requestctx.Actor) *ActorVerifier {
	if a == nil {
		return nil
	}
	return &ActorVerifier{store: a.store, actorKind: actor.Kind, actorID: actor.ID}
}

// ActorVerifier re-verifies one actor's stored credential.
type ActorVerifier struct {
	store     storage.CredentialStore
	actorKind string
	actorID   string
}

// VerifyPassword checks the password against the actor's stored hash.
func (v *ActorVerifier) VerifyPassword(ctx context.Context, password string) error {
	if v == nil || v.store == nil {
		return errors.New("password verifier is not configured")
	}
	credential, err := v.store.GetCredential(ctx, v.actorKind, v.actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.New(apperrors.CodeCredentialsInvalid, "password is incorrect")
		}
		return fmt.Errorf("load credential: %w", err)
	}
	return comparePassword(credential.PasswordHash, password)
}

func comparePassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.New(apperrors.CodeCredentialsInvalid, "password is incorrect")
		}
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
