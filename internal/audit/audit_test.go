package audit

import (
	"context"
	"testing"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
	"github.com/trastiendahq/trastienda/internal/platform/requestctx"
	"github.com/trastiendahq/trastienda/internal/retail"
	"github.com/trastiendahq/trastienda/internal/storage"
)

type fakeAuditStore struct {
	events []storage.AuditEvent
}

func (f *fakeAuditStore) AppendAuditEvent(_ context.Context, event storage.AuditEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditStore) ListAuditEvents(context.Context, storage.AuditQuery) ([]storage.AuditEvent, error) {
	return f.events, nil
}

func TestNilRecorderIsNoOp(t *testing.T) {
	var recorder *Recorder
	if err := recorder.Record(context.Background(), Entry{Action: ActionCreate}); err != nil {
		t.Fatalf("expected nil recorder to be a no-op, got %v", err)
	}
}

func TestRecordStampsActorAndTime(t *testing.T) {
	store := &fakeAuditStore{}
	recorder := NewRecorder(store)
	recorder.clock = func() time.Time {
		return time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	}
	recorder.idGenerator = func() (string, error) { return "event-1", nil }

	ctx := requestctx.WithActor(context.Background(), requestctx.Actor{
		Kind: requestctx.ActorKindAdmin, ID: "a-1",
	})
	err := recorder.Record(ctx, Entry{
		EntityKind: retail.EntityCompany,
		EntityID:   "co-1",
		EntityName: "La Bodega",
		Action:     ActionDelete,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(store.events) != 1 {
		t.Fatalf("expected one event, got %d", len(store.events))
	}
	event := store.events[0]
	if event.ID != "event-1" || event.EntityKind != "company" || event.Action != ActionDelete {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.ActorKind != requestctx.ActorKindAdmin || event.ActorID != "a-1" {
		t.Fatalf("expected actor stamp, got %+v", event)
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("expected timestamp stamp")
	}
}

func TestRecordFormatsChanges(t *testing.T) {
	store := &fakeAuditStore{}
	recorder := NewRecorder(store)
	recorder.idGenerator = func() (string, error) { return "event-1", nil }

	changes := changeset.Compute(
		changeset.Snapshot{"phone": changeset.Text("123"), "name": changeset.Text("La Bodega")},
		changeset.Snapshot{"phone": changeset.Text("456"), "name": changeset.Text("La Bodega")},
	)
	err := recorder.Record(context.Background(), Entry{
		EntityKind: retail.EntityCompany,
		EntityID:   "co-1",
		EntityName: "La Bodega",
		Action:     ActionUpdate,
		Reason:     "customer asked for the new number",
		Changes:    changes,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	event := store.events[0]
	if event.Reason == "" {
		t.Fatal("expected reason to be stored")
	}
	if len(event.Changes) != 1 {
		t.Fatalf("expected one change, got %+v", event.Changes)
	}
	change := event.Changes[0]
	if change.Field != "phone" || change.Old != "123" || change.New != "456" {
		t.Fatalf("unexpected change %+v", change)
	}
}
