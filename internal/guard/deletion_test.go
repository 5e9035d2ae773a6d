package guard

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
)

type stubVerifier struct {
	err   error
	calls int
	last  string
}

func (v *stubVerifier) VerifyPassword(_ context.Context, password string) error {
	v.calls++
	v.last = password
	return v.err
}

func newTestSession(verifier PasswordVerifier, deleteFn DeleteFunc) *DeletionSession {
	return NewDeletionSession(
		Target{ID: "wh-1", DisplayName: "Bodega Central", Notices: []string{"inventory will be removed"}},
		DeletionConfig{Verifier: verifier, Delete: deleteFn},
	)
}

func advanceToFinal(s *DeletionSession) {
	s.Next()
	s.Next()
}

func TestStageTransitions(t *testing.T) {
	s := newTestSession(nil, nil)
	if s.Stage() != StageInitial {
		t.Fatalf("expected initial stage, got %v", s.Stage())
	}
	s.Next()
	if s.Stage() != StageWarning {
		t.Fatalf("expected warning stage, got %v", s.Stage())
	}
	s.Next()
	if s.Stage() != StageFinalConfirmation {
		t.Fatalf("expected final stage, got %v", s.Stage())
	}
	s.Next() // already at the end
	if s.Stage() != StageFinalConfirmation {
		t.Fatalf("expected final stage to hold, got %v", s.Stage())
	}
	s.Previous()
	if s.Stage() != StageWarning {
		t.Fatalf("expected warning after previous, got %v", s.Stage())
	}
	s.Previous()
	s.Previous() // already at the start
	if s.Stage() != StageInitial {
		t.Fatalf("expected initial stage to hold, got %v", s.Stage())
	}
}

func TestCancelDiscardsSession(t *testing.T) {
	s := newTestSession(nil, nil)
	advanceToFinal(s)
	s.Cancel()

	if _, ok := s.Target(); ok {
		t.Fatal("expected target to be cleared after cancel")
	}
	outcome := s.Confirm(context.Background(), "Bodega Central", "secret1")
	if outcome.Done || outcome.Err != nil || outcome.FieldErrors != nil {
		t.Fatalf("expected no-op confirm after cancel, got %+v", outcome)
	}
}

func TestConfirmBeforeFinalStageIsNoOp(t *testing.T) {
	deleted := false
	s := newTestSession(&stubVerifier{}, func(context.Context) error {
		deleted = true
		return nil
	})
	s.Next() // still at warning

	outcome := s.Confirm(context.Background(), "Bodega Central", "secret1")
	if outcome.Done || deleted {
		t.Fatal("expected confirm to be a no-op before the final stage")
	}
}

func TestConfirmValidatesBothFieldsTogether(t *testing.T) {
	verifier := &stubVerifier{}
	deleted := false
	s := newTestSession(verifier, func(context.Context) error {
		deleted = true
		return nil
	})
	advanceToFinal(s)

	outcome := s.Confirm(context.Background(), "wrong name", "abc")
	if outcome.Done {
		t.Fatal("expected confirm to fail")
	}
	if len(outcome.FieldErrors) != 2 {
		t.Fatalf("expected both field errors, got %v", outcome.FieldErrors)
	}
	if outcome.FieldErrors[FieldName].Code != apperrors.CodeConfirmNameMismatch {
		t.Fatalf("name error = %v", outcome.FieldErrors[FieldName])
	}
	if outcome.FieldErrors[FieldPassword].Code != apperrors.CodePasswordTooShort {
		t.Fatalf("password error = %v", outcome.FieldErrors[FieldPassword])
	}
	if verifier.calls != 0 || deleted {
		t.Fatal("external collaborators must not be called when validation fails")
	}
}

func TestConfirmEmptyFields(t *testing.T) {
	s := newTestSession(&stubVerifier{}, nil)
	advanceToFinal(s)

	outcome := s.Confirm(context.Background(), "   ", "")
	if outcome.FieldErrors[FieldName].Code != apperrors.CodeConfirmNameEmpty {
		t.Fatalf("name error = %v", outcome.FieldErrors[FieldName])
	}
	if outcome.FieldErrors[FieldPassword].Code != apperrors.CodePasswordEmpty {
		t.Fatalf("password error = %v", outcome.FieldErrors[FieldPassword])
	}
}

func TestConfirmNameIsCaseSensitive(t *testing.T) {
	verifier := &stubVerifier{}
	s := newTestSession(verifier, nil)
	advanceToFinal(s)

	outcome := s.Confirm(context.Background(), "bodega central", "secret1")
	if outcome.Done {
		t.Fatal("expected wrong-case name to be rejected")
	}
	if outcome.FieldErrors[FieldName].Code != apperrors.CodeConfirmNameMismatch {
		t.Fatalf("expected name mismatch, got %v", outcome.FieldErrors)
	}
	if verifier.calls != 0 {
		t.Fatal("verifier must not run on name mismatch")
	}
}

func TestConfirmTrimsTypedName(t *testing.T) {
	deletes := 0
	verifier := &stubVerifier{}
	s := newTestSession(verifier, func(context.Context) error {
		deletes++
		return nil
	})
	advanceToFinal(s)

	outcome := s.Confirm(context.Background(), "  Bodega Central  ", "secret1")
	if !outcome.Done {
		t.Fatalf("expected padded input to match after trim, got %+v", outcome)
	}
	if deletes != 1 {
		t.Fatalf("expected exactly one delete call, got %d", deletes)
	}
	if verifier.last != "secret1" {
		t.Fatalf("verifier received %q", verifier.last)
	}
}

func TestConfirmSuccessDiscardsSession(t *testing.T) {
	deletes := 0
	s := newTestSession(&stubVerifier{}, func(context.Context) error {
		deletes++
		return nil
	})
	advanceToFinal(s)

	if outcome := s.Confirm(context.Background(), "Bodega Central", "secret1"); !outcome.Done {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if _, ok := s.Target(); ok {
		t.Fatal("expected session discard after success")
	}
	// A second confirm must not delete again.
	if outcome := s.Confirm(context.Background(), "Bodega Central", "secret1"); outcome.Done {
		t.Fatal("expected discarded session to refuse confirm")
	}
	if deletes != 1 {
		t.Fatalf("expected exactly one delete call, got %d", deletes)
	}
}

func TestConfirmVerifierRejectionKeepsSession(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("password rejected")}
	deleted := false
	s := newTestSession(verifier, func(context.Context) error {
		deleted = true
		return nil
	})
	advanceToFinal(s)

	outcome := s.Confirm(context.Background(), "Bodega Central", "secret1")
	if outcome.Done || deleted {
		t.Fatal("expected rejected password to block deletion")
	}
	if outcome.Err == nil || outcome.Err.Code != apperrors.CodeCredentialsInvalid {
		t.Fatalf("expected credentials error, got %v", outcome.Err)
	}
	if s.Stage() != StageFinalConfirmation {
		t.Fatal("expected session to stay at final confirmation for retry")
	}

	// Retry succeeds once the collaborator accepts.
	verifier.err = nil
	if outcome := s.Confirm(context.Background(), "Bodega Central", "secret1"); !outcome.Done {
		t.Fatalf("expected retry to succeed, got %+v", outcome)
	}
}

func TestConfirmDeleteFailureKeepsSession(t *testing.T) {
	s := newTestSession(&stubVerifier{}, func(context.Context) error {
		return errors.New("entity changed concurrently")
	})
	advanceToFinal(s)

	outcome := s.Confirm(context.Background(), "Bodega Central", "secret1")
	if outcome.Done {
		t.Fatal("expected failed delete to report an error")
	}
	if outcome.Err == nil || outcome.Err.Code != apperrors.CodeDeleteRejected {
		t.Fatalf("expected delete rejection, got %v", outcome.Err)
	}
	if s.Stage() != StageFinalConfirmation {
		t.Fatal("expected session to stay at final confirmation")
	}
}

func TestSessionWithoutTargetIsInert(t *testing.T) {
	s := NewDeletionSession(Target{}, DeletionConfig{})
	s.Next()
	if s.Stage() != StageInitial {
		t.Fatal("expected targetless session to refuse transitions")
	}
	if outcome := s.Confirm(context.Background(), "", ""); outcome.Done || outcome.FieldErrors != nil {
		t.Fatalf("expected inert confirm, got %+v", outcome)
	}
}

func TestMinPasswordLengthConfigurable(t *testing.T) {
	s := NewDeletionSession(
		Target{ID: "b-1", DisplayName: "Branch A"},
		DeletionConfig{MinPasswordLength: 10},
	)
	advanceToFinal(s)

	outcome := s.Confirm(context.Background(), "Branch A", "short pw")
	if outcome.FieldErrors[FieldPassword] == nil {
		t.Fatal("expected configured min length to apply")
	}
	meta := outcome.FieldErrors[FieldPassword].Metadata
	if meta["MinLength"] != "10" {
		t.Fatalf("expected MinLength metadata 10, got %v", meta)
	}
}
