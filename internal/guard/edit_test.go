package guard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/trastiendahq/trastienda/internal/changeset"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
)

func testChanges() *changeset.ChangeSet {
	return changeset.Compute(
		changeset.Snapshot{"phone": changeset.Text("123")},
		changeset.Snapshot{"phone": changeset.Text("456")},
	)
}

func TestClampReason(t *testing.T) {
	if got := ClampReason("short"); got != "short" {
		t.Fatalf("expected short input unchanged, got %q", got)
	}
	long := strings.Repeat("á", ReasonMaxLength+25)
	clamped := ClampReason(long)
	if n := len([]rune(clamped)); n != ReasonMaxLength {
		t.Fatalf("expected %d runes after clamp, got %d", ReasonMaxLength, n)
	}
}

func TestConfirmReasonLengthBoundary(t *testing.T) {
	updates := 0
	update := func(context.Context, string) error {
		updates++
		return nil
	}

	nine := NewEditSession(testChanges(), update)
	outcome := nine.Confirm(context.Background(), strings.Repeat("x", 9))
	if outcome.Done || updates != 0 {
		t.Fatal("expected 9-rune reason to be rejected")
	}
	if outcome.FieldErrors[FieldReason].Code != apperrors.CodeReasonTooShort {
		t.Fatalf("expected reason-too-short, got %v", outcome.FieldErrors)
	}

	ten := NewEditSession(testChanges(), update)
	if outcome := ten.Confirm(context.Background(), strings.Repeat("x", 10)); !outcome.Done {
		t.Fatalf("expected 10-rune reason to be accepted, got %+v", outcome)
	}
	if updates != 1 {
		t.Fatalf("expected one update, got %d", updates)
	}
}

func TestConfirmOverlongReasonIsClampedNotRejected(t *testing.T) {
	var captured string
	s := NewEditSession(testChanges(), func(_ context.Context, reason string) error {
		captured = reason
		return nil
	})

	outcome := s.Confirm(context.Background(), strings.Repeat("y", ReasonMaxLength+100))
	if !outcome.Done {
		t.Fatalf("expected clamped reason to be accepted, got %+v", outcome)
	}
	if n := len([]rune(captured)); n != ReasonMaxLength {
		t.Fatalf("expected %d-rune reason, got %d", ReasonMaxLength, n)
	}
}

func TestConfirmTrimsReason(t *testing.T) {
	var captured string
	s := NewEditSession(testChanges(), func(_ context.Context, reason string) error {
		captured = reason
		return nil
	})

	if outcome := s.Confirm(context.Background(), "  corrected phone number  "); !outcome.Done {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if captured != "corrected phone number" {
		t.Fatalf("expected trimmed reason, got %q", captured)
	}
}

func TestConfirmWhitespaceOnlyReasonRejected(t *testing.T) {
	s := NewEditSession(testChanges(), nil)
	outcome := s.Confirm(context.Background(), strings.Repeat(" ", 40))
	if outcome.FieldErrors[FieldReason] == nil {
		t.Fatal("expected whitespace-only reason to be rejected")
	}
}

func TestConfirmUpdateFailureKeepsSession(t *testing.T) {
	attempts := 0
	s := NewEditSession(testChanges(), func(context.Context, string) error {
		attempts++
		if attempts == 1 {
			return errors.New("store unavailable")
		}
		return nil
	})

	outcome := s.Confirm(context.Background(), "phone number was wrong")
	if outcome.Done {
		t.Fatal("expected first confirm to fail")
	}
	if outcome.Err == nil || outcome.Err.Code != apperrors.CodeUpdateRejected {
		t.Fatalf("expected update rejection, got %v", outcome.Err)
	}
	if s.Stage() != StageReasonCapture {
		t.Fatal("expected session to stay at reason capture")
	}

	if outcome := s.Confirm(context.Background(), "phone number was wrong"); !outcome.Done {
		t.Fatalf("expected retry to succeed, got %+v", outcome)
	}
	if s.Stage() != StageConfirmed {
		t.Fatal("expected confirmed stage after success")
	}
}

func TestConfirmAfterCancelIsNoOp(t *testing.T) {
	called := false
	s := NewEditSession(testChanges(), func(context.Context, string) error {
		called = true
		return nil
	})
	s.Cancel()

	outcome := s.Confirm(context.Background(), "a perfectly valid reason")
	if outcome.Done || called {
		t.Fatal("expected cancelled session to be inert")
	}
}

func TestConfirmAfterSuccessIsNoOp(t *testing.T) {
	updates := 0
	s := NewEditSession(testChanges(), func(context.Context, string) error {
		updates++
		return nil
	})

	if outcome := s.Confirm(context.Background(), "a perfectly valid reason"); !outcome.Done {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if outcome := s.Confirm(context.Background(), "a perfectly valid reason"); outcome.Done {
		t.Fatal("expected confirmed session to refuse a second commit")
	}
	if updates != 1 {
		t.Fatalf("expected one update, got %d", updates)
	}
}

func TestChangesExposedForDisplay(t *testing.T) {
	changes := testChanges()
	s := NewEditSession(changes, nil)
	if s.Changes() != changes {
		t.Fatal("expected session to expose its change set")
	}
	s.Cancel()
	if s.Changes() != nil {
		t.Fatal("expected change set to be cleared on cancel")
	}
}
