package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trastiendahq/trastienda/internal/storage"
)

const defaultAuditLimit = 100

// AppendAuditEvent inserts one audit trail entry.
func (s *Store) AppendAuditEvent(ctx context.Context, event storage.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(event.ID) == "" {
		return fmt.Errorf("audit event id is required")
	}
	changes, err := encodeAuditChanges(event.Changes)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO audit_events (id, entity_kind, entity_id, entity_name, action,
		                           actor_kind, actor_id, reason, changes, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.EntityKind, event.EntityID, event.EntityName, event.Action,
		event.ActorKind, event.ActorID, event.Reason, changes, toMillis(event.OccurredAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListAuditEvents returns audit entries matching the query, newest first.
func (s *Store) ListAuditEvents(ctx context.Context, query storage.AuditQuery) ([]storage.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	stmt := `SELECT id, entity_kind, entity_id, entity_name, action,
	                actor_kind, actor_id, reason, changes, occurred_at
	           FROM audit_events`
	args := make([]any, 0, len(query.Args)+1)
	if where := strings.TrimSpace(query.WhereSQL); where != "" {
		stmt += " WHERE " + where
		args = append(args, query.Args...)
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	stmt += " ORDER BY occurred_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []storage.AuditEvent
	for rows.Next() {
		var event storage.AuditEvent
		var changes string
		var occurredAt int64
		if err := rows.Scan(
			&event.ID, &event.EntityKind, &event.EntityID, &event.EntityName,
			&event.Action, &event.ActorKind, &event.ActorID, &event.Reason,
			&changes, &occurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Changes, err = decodeAuditChanges(changes)
		if err != nil {
			return nil, err
		}
		event.OccurredAt = fromMillis(occurredAt)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}

func encodeAuditChanges(changes []storage.AuditChange) (string, error) {
	if len(changes) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return "", fmt.Errorf("encode audit changes: %w", err)
	}
	return string(raw), nil
}

func decodeAuditChanges(raw string) ([]storage.AuditChange, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var changes []storage.AuditChange
	if err := json.Unmarshal([]byte(raw), &changes); err != nil {
		return nil, fmt.Errorf("decode audit changes: %w", err)
	}
	return changes, nil
}
