package guard

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/trastiendahq/trastienda/internal/changeset"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
)

// EditStage identifies the edit confirmation step.
type EditStage int

const (
	// StageReasonCapture shows the change summary and collects a reason.
	StageReasonCapture EditStage = iota
	// StageConfirmed is reached only after the external update succeeds.
	StageConfirmed
)

// Reason length bounds, in runes. Input is clamped to the maximum as it is
// typed, so only the minimum is ever rejected.
const (
	ReasonMinLength = 10
	ReasonMaxLength = 500
)

// ClampReason truncates reason input at ReasonMaxLength runes.
func ClampReason(reason string) string {
	if utf8.RuneCountInString(reason) <= ReasonMaxLength {
		return reason
	}
	runes := []rune(reason)
	return string(runes[:ReasonMaxLength])
}

// UpdateFunc commits the edit, receiving the captured reason.
type UpdateFunc func(ctx context.Context, reason string) error

// EditSession is the ephemeral state for one guarded edit confirmation.
// It pairs the change tracker's diff with a mandatory justification.
type EditSession struct {
	changes    *changeset.ChangeSet
	stage      EditStage
	update     UpdateFunc
	confirming bool
	cancelled  bool
}

// NewEditSession starts a session at StageReasonCapture for the given
// change set.
func NewEditSession(changes *changeset.ChangeSet, update UpdateFunc) *EditSession {
	return &EditSession{changes: changes, stage: StageReasonCapture, update: update}
}

// Changes returns the change set shown alongside the reason prompt.
func (s *EditSession) Changes() *changeset.ChangeSet {
	if s == nil {
		return nil
	}
	return s.changes
}

// Stage returns the current step.
func (s *EditSession) Stage() EditStage {
	if s == nil {
		return StageReasonCapture
	}
	return s.stage
}

// Cancel discards the session.
func (s *EditSession) Cancel() {
	if s == nil {
		return
	}
	s.changes = nil
	s.update = nil
	s.cancelled = true
}

// Confirm validates the reason and commits the update. The reason is
// clamped, then trimmed, and must reach ReasonMinLength. On external
// failure the session stays at StageReasonCapture with the typed input
// intact on the caller's side.
func (s *EditSession) Confirm(ctx context.Context, reason string) Outcome {
	if s == nil || s.cancelled || s.stage != StageReasonCapture {
		return Outcome{}
	}
	if s.confirming {
		return Outcome{Err: apperrors.New(apperrors.CodeConfirmInFlight, "confirm already in progress")}
	}

	reason = strings.TrimSpace(ClampReason(reason))
	if utf8.RuneCountInString(reason) < ReasonMinLength {
		return Outcome{FieldErrors: map[string]*apperrors.Error{
			FieldReason: apperrors.WithMetadata(
				apperrors.CodeReasonTooShort,
				"change reason is too short",
				map[string]string{"MinLength": strconv.Itoa(ReasonMinLength)},
			),
		}}
	}

	s.confirming = true
	defer func() { s.confirming = false }()

	if s.update != nil {
		if err := s.update(ctx, reason); err != nil {
			return Outcome{Err: apperrors.Wrap(apperrors.CodeUpdateRejected, "execute update", err)}
		}
	}

	s.stage = StageConfirmed
	return Outcome{Done: true}
}
