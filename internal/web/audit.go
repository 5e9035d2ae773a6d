package web

import (
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/storage"
)

type auditChangeView struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

type auditEventView struct {
	ID         string            `json:"id"`
	EntityKind string            `json:"entityKind"`
	EntityID   string            `json:"entityId"`
	EntityName string            `json:"entityName"`
	Action     string            `json:"action"`
	ActorKind  string            `json:"actorKind"`
	ActorID    string            `json:"actorId"`
	Reason     string            `json:"reason,omitempty"`
	Changes    []auditChangeView `json:"changes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

func toAuditEventView(event storage.AuditEvent) auditEventView {
	view := auditEventView{
		ID:         event.ID,
		EntityKind: event.EntityKind,
		EntityID:   event.EntityID,
		EntityName: event.EntityName,
		Action:     event.Action,
		ActorKind:  event.ActorKind,
		ActorID:    event.ActorID,
		Reason:     event.Reason,
		OccurredAt: event.OccurredAt,
	}
	for _, change := range event.Changes {
		view.Changes = append(view.Changes, auditChangeView{
			Field: change.Field,
			Old:   change.Old,
			New:   change.New,
		})
	}
	return view
}

// listAuditEvents serves GET /api/audit?filter=<AIP-160 expr>&limit=<n>.
func (h *Handler) listAuditEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, r, apperrors.New(apperrors.CodeRequestInvalid, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}
	events, err := h.svc.ListAuditEvents(r.Context(), r.URL.Query().Get("filter"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]auditEventView, len(events))
	for i, event := range events {
		views[i] = toAuditEventView(event)
	}
	writeJSON(w, http.StatusOK, views)
}
