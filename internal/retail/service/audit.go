package service

import (
	"context"

	"github.com/trastiendahq/trastienda/internal/audit/filter"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/storage"
)

// ListAuditEvents returns audit trail entries matching an AIP-160
// filter expression, newest first. Admin only.
func (s *Service) ListAuditEvents(ctx context.Context, filterExpr string, limit int) ([]storage.AuditEvent, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	condition, err := filter.Parse(filterExpr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeAuditFilterInvalid, "parse audit filter", err)
	}
	events, err := s.store.ListAuditEvents(ctx, storage.AuditQuery{
		WhereSQL: condition.Clause,
		Args:     condition.Params,
		Limit:    limit,
	})
	if err != nil {
		return nil, mapStorageError(err)
	}
	return events, nil
}
