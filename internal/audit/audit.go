// Package audit records the append-only trail of create, update and
// delete operations on back-office entities.
package audit

import (
	"context"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/platform/id"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// Actions recorded on the audit trail.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Recorder appends audit events. A nil Recorder or one without a store
// is a no-op, so callers never have to guard emission.
type Recorder struct {
	store       storage.AuditStore
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewRecorder creates a recorder backed by the given store.
func NewRecorder(store storage.AuditStore) *Recorder {
	return &Recorder{store: store, clock: time.Now, idGenerator: id.NewID}
}

// Entry describes one operation to record. Changes and Reason are only
// meaningful for updates.
type Entry struct {
	EntityKind retail.EntityKind
	EntityID   string
	EntityName string
	Action     string
	Reason     string
	Changes    *changeset.ChangeSet
}

// Record appends one audit event, stamping the actor from context and
// the current time. Formatting uses the base locale so stored values
// are stable regardless of the operator's language.
func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	if r == nil || r.store == nil {
		return nil
	}

	eventID, err := r.idGenerator()
	if err != nil {
		return err
	}
	event := storage.AuditEvent{
		ID:         eventID,
		EntityKind: entry.EntityKind.String(),
		EntityID:   entry.EntityID,
		EntityName: entry.EntityName,
		Action:     entry.Action,
		Reason:     entry.Reason,
		OccurredAt: r.now(),
	}
	if actor, ok := requestctx.ActorFromContext(ctx); ok {
		event.ActorKind = actor.Kind
		event.ActorID = actor.ID
	}
	if entry.Changes != nil {
		for _, change := range entry.Changes.Changes() {
			event.Changes = append(event.Changes, storage.AuditChange{
				Field: change.Field,
				Old:   changeset.Format(nil, change.Old),
				New:   changeset.Format(nil, change.New),
			})
		}
	}

	return r.store.AppendAuditEvent(ctx, event)
}

func (r *Recorder) now() time.Time {
	if r.clock == nil {
		return time.Now().UTC()
	}
	return r.clock().UTC()
}
