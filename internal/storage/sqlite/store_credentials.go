package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/trastiendahq/trastienda/internal/storage"
)

// PutCredential inserts or replaces one credential, keyed by actor. A
// conflicting email for the same actor kind is rejected.
func (s *Store) PutCredential(ctx context.Context, credential storage.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	actorKind := strings.TrimSpace(credential.ActorKind)
	actorID := strings.TrimSpace(credential.ActorID)
	email := strings.ToLower(strings.TrimSpace(credential.Email))
	if actorKind == "" || actorID == "" {
		return fmt.Errorf("actor kind and id are required")
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if credential.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO credentials (actor_kind, actor_id, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (actor_kind, actor_id) DO UPDATE SET
		   email = excluded.email,
		   password_hash = excluded.password_hash,
		   updated_at = excluded.updated_at`,
		actorKind, actorID, email, credential.PasswordHash,
		toMillis(credential.CreatedAt), toMillis(credential.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put credential: %w", err)
	}
	return nil
}

// GetCredential returns one credential by actor.
func (s *Store) GetCredential(ctx context.Context, actorKind, actorID string) (storage.Credential, error) {
	if err := ctx.Err(); err != nil {
		return storage.Credential{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Credential{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT actor_kind, actor_id, email, password_hash, created_at, updated_at
		   FROM credentials WHERE actor_kind = ? AND actor_id = ?`,
		strings.TrimSpace(actorKind), strings.TrimSpace(actorID),
	)
	return scanCredential(row)
}

// GetCredentialByEmail returns one credential by actor kind and email.
// Email lookup is case-insensitive.
func (s *Store) GetCredentialByEmail(ctx context.Context, actorKind, email string) (storage.Credential, error) {
	if err := ctx.Err(); err != nil {
		return storage.Credential{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Credential{}, err
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT actor_kind, actor_id, email, password_hash, created_at, updated_at
		   FROM credentials WHERE actor_kind = ? AND email = ?`,
		strings.TrimSpace(actorKind), strings.ToLower(strings.TrimSpace(email)),
	)
	return scanCredential(row)
}

// DeleteCredential removes one credential by actor.
func (s *Store) DeleteCredential(ctx context.Context, actorKind, actorID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM credentials WHERE actor_kind = ? AND actor_id = ?`,
		strings.TrimSpace(actorKind), strings.TrimSpace(actorID),
	)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return requireRow(result, "delete credential")
}

func scanCredential(row rowScanner) (storage.Credential, error) {
	var credential storage.Credential
	var createdAt, updatedAt int64
	err := row.Scan(
		&credential.ActorKind, &credential.ActorID, &credential.Email,
		&credential.PasswordHash, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Credential{}, storage.ErrNotFound
		}
		return storage.Credential{}, fmt.Errorf("scan credential: %w", err)
	}
	credential.CreatedAt = fromMillis(createdAt)
	credential.UpdatedAt = fromMillis(updatedAt)
	return credential, nil
}
