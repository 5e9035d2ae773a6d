// Package guard implements the staged confirmation workflows that gate
// irreversible operations: a three-step deletion flow ending in identity
// re-verification, and a reason-capture flow for committing edits.
//
// Sessions are owned by a single caller (one open dialog) and are not safe
// for concurrent use; the in-flight guard on Confirm mirrors the UI-level
// mutual exclusion the flows require.
package guard

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
)

// Stage identifies the deletion workflow step.
type Stage int

const (
	// StageInitial presents the target and a plain "are you sure" choice.
	StageInitial Stage = iota
	// StageWarning enumerates everything the deletion will cascade to.
	StageWarning
	// StageFinalConfirmation requires the typed name and a password.
	StageFinalConfirmation
)

// DefaultMinPasswordLength is the minimum password length enforced locally
// before the credential is sent for real verification.
const DefaultMinPasswordLength = 6

// Field identifiers for field-level validation errors.
const (
	FieldName     = "name"
	FieldPassword = "password"
	FieldReason   = "reason"
)

// Target is a read-only snapshot of the entity a session acts on.
type Target struct {
	ID          string
	DisplayName string
	// Notices are the cascade warnings shown at StageWarning.
	Notices []string
}

// PasswordVerifier re-verifies the operator's credential. The session only
// enforces shape locally; real verification is the collaborator's job.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, password string) error
}

// DeleteFunc executes the external deletion.
type DeleteFunc func(ctx context.Context) error

// Outcome reports a Confirm attempt. FieldErrors carries per-field
// validation failures; Err carries a dialog-level external failure. Done is
// true only when the external operation succeeded.
type Outcome struct {
	Done        bool
	FieldErrors map[string]*apperrors.Error
	Err         *apperrors.Error
}

// DeletionSession is the ephemeral state for one guarded deletion. It is
// discarded on cancel and on success, and never outlives one confirmation
// interaction.
type DeletionSession struct {
	target            Target
	hasTarget         bool
	stage             Stage
	minPasswordLength int
	verifier          PasswordVerifier
	delete            DeleteFunc
	confirming        bool
}

// DeletionConfig wires a deletion session to its collaborators.
type DeletionConfig struct {
	// MinPasswordLength defaults to DefaultMinPasswordLength when zero.
	MinPasswordLength int
	Verifier          PasswordVerifier
	Delete            DeleteFunc
}

// NewDeletionSession starts a session at StageInitial for the given target.
func NewDeletionSession(target Target, cfg DeletionConfig) *DeletionSession {
	minLength := cfg.MinPasswordLength
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	return &DeletionSession{
		target:            target,
		hasTarget:         strings.TrimSpace(target.DisplayName) != "",
		stage:             StageInitial,
		minPasswordLength: minLength,
		verifier:          cfg.Verifier,
		delete:            cfg.Delete,
	}
}

// Stage returns the current workflow step.
func (s *DeletionSession) Stage() Stage {
	if s == nil {
		return StageInitial
	}
	return s.stage
}

// Target returns the session's target snapshot. The bool is false once the
// session has been discarded or when no target was loaded.
func (s *DeletionSession) Target() (Target, bool) {
	if s == nil || !s.hasTarget {
		return Target{}, false
	}
	return s.target, true
}

// Next advances one step. It is a no-op at the final stage and on a
// discarded session.
func (s *DeletionSession) Next() {
	if s == nil || !s.hasTarget {
		return
	}
	switch s.stage {
	case StageInitial:
		s.stage = StageWarning
	case StageWarning:
		s.stage = StageFinalConfirmation
	}
}

// Previous steps back one stage. It is a no-op at the initial stage.
func (s *DeletionSession) Previous() {
	if s == nil || !s.hasTarget {
		return
	}
	switch s.stage {
	case StageFinalConfirmation:
		s.stage = StageWarning
	case StageWarning:
		s.stage = StageInitial
	}
}

// Cancel discards all session state. The session is unusable afterwards.
func (s *DeletionSession) Cancel() {
	if s == nil {
		return
	}
	s.target = Target{}
	s.hasTarget = false
	s.stage = StageInitial
	s.verifier = nil
	s.delete = nil
}

// Confirm validates the typed name and password and, only when both pass,
// re-verifies the credential and executes the deletion. Both local checks
// always run so the operator sees every problem at once. On external
// failure the session stays at StageFinalConfirmation for a retry.
func (s *DeletionSession) Confirm(ctx context.Context, typedName, typedPassword string) Outcome {
	if s == nil || !s.hasTarget || s.stage != StageFinalConfirmation {
		return Outcome{}
	}
	if s.confirming {
		return Outcome{Err: apperrors.New(apperrors.CodeConfirmInFlight, "confirm already in progress")}
	}

	fieldErrors := map[string]*apperrors.Error{}

	name := strings.TrimSpace(typedName)
	switch {
	case name == "":
		fieldErrors[FieldName] = apperrors.New(apperrors.CodeConfirmNameEmpty, "confirmation name is required")
	case name != s.target.DisplayName:
		fieldErrors[FieldName] = apperrors.New(apperrors.CodeConfirmNameMismatch, "confirmation name does not match")
	}

	switch {
	case typedPassword == "":
		fieldErrors[FieldPassword] = apperrors.New(apperrors.CodePasswordEmpty, "password is required")
	case utf8.RuneCountInString(typedPassword) < s.minPasswordLength:
		fieldErrors[FieldPassword] = apperrors.WithMetadata(
			apperrors.CodePasswordTooShort,
			"password is too short",
			map[string]string{"MinLength": strconv.Itoa(s.minPasswordLength)},
		)
	}

	if len(fieldErrors) > 0 {
		return Outcome{FieldErrors: fieldErrors}
	}

	s.confirming = true
	defer func() { s.confirming = false }()

	if s.verifier != nil {
		if err := s.verifier.VerifyPassword(ctx, typedPassword); err != nil {
			return Outcome{Err: apperrors.Wrap(apperrors.CodeCredentialsInvalid, "verify operator password", err)}
		}
	}
	if s.delete != nil {
		if err := s.delete(ctx); err != nil {
			return Outcome{Err: apperrors.Wrap(apperrors.CodeDeleteRejected, "execute deletion", err)}
		}
	}

	s.Cancel()
	return Outcome{Done: true}
}
