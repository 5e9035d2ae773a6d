// Package retail holds the back-office entity model: companies and the
// branches, warehouses, managers, suppliers and customers that hang off
// them. Entities expose change-tracker snapshots and partial-update
// application so the service layer can diff, confirm and persist edits.
package retail

import (
	"strings"
	"time"

	"github.com/trastiendahq/trastienda/internal/changeset"
)

// EntityKind identifies a back-office entity type.
type EntityKind string

const (
	// EntityCompany is the tenant root.
	EntityCompany EntityKind = "company"
	// EntityBranch is a physical location under a company.
	EntityBranch EntityKind = "branch"
	// EntityWarehouse is a storage site under a company.
	EntityWarehouse EntityKind = "warehouse"
	// EntityManager is a staff account scoped to a branch.
	EntityManager EntityKind = "manager"
	// EntitySupplier is an upstream vendor of a company.
	EntitySupplier EntityKind = "supplier"
	// EntityCustomer is a buyer profile of a company.
	EntityCustomer EntityKind = "customer"
)

// String returns the kind slug used in storage and audit rows.
func (k EntityKind) String() string {
	return string(k)
}

// DeletionNoticeKeys returns the catalog keys for the cascade warnings
// shown before deleting an entity of this kind.
func (k EntityKind) DeletionNoticeKeys() []string {
	switch k {
	case EntityCompany:
		return []string{
			"guard.notice.company.branches",
			"guard.notice.company.personnel",
			"guard.notice.company.history",
		}
	case EntityBranch:
		return []string{
			"guard.notice.branch.managers",
			"guard.notice.branch.inventory",
			"guard.notice.branch.history",
		}
	case EntityWarehouse:
		return []string{
			"guard.notice.warehouse.inventory",
			"guard.notice.warehouse.history",
		}
	case EntityManager:
		return []string{
			"guard.notice.manager.access",
			"guard.notice.manager.assignments",
		}
	case EntitySupplier:
		return []string{
			"guard.notice.supplier.catalog",
			"guard.notice.supplier.history",
		}
	case EntityCustomer:
		return []string{
			"guard.notice.customer.profile",
			"guard.notice.customer.history",
		}
	default:
		return nil
	}
}

// FieldLabelKey returns the catalog key for a field's display label.
func FieldLabelKey(field string) string {
	return "fields." + field
}

// applyText copies a text field from a partial snapshot, clearing the
// destination when the value is absent. Missing keys leave it untouched.
func applyText(data changeset.Snapshot, field string, dst *string) {
	value, ok := data[field]
	if !ok {
		return
	}
	if text, ok := value.AsText(); ok {
		*dst = text
		return
	}
	*dst = ""
}

// applyInt copies a numeric field from a partial snapshot.
func applyInt(data changeset.Snapshot, field string, dst *int) {
	value, ok := data[field]
	if !ok {
		return
	}
	if n, ok := value.AsNumber(); ok {
		*dst = int(n)
		return
	}
	*dst = 0
}

// applyStrings copies a list field from a partial snapshot.
func applyStrings(data changeset.Snapshot, field string, dst *[]string) {
	value, ok := data[field]
	if !ok {
		return
	}
	if items, ok := value.AsStrings(); ok {
		*dst = normalizeList(items)
		return
	}
	*dst = nil
}

// applyDate copies a calendar-day field from a partial snapshot.
func applyDate(data changeset.Snapshot, field string, dst *time.Time) {
	value, ok := data[field]
	if !ok {
		return
	}
	if day, ok := value.AsTime(); ok {
		*dst = day
	}
}

// applyOptionalDate copies an optional calendar-day field, clearing the
// destination when the value is absent.
func applyOptionalDate(data changeset.Snapshot, field string, dst **time.Time) {
	value, ok := data[field]
	if !ok {
		return
	}
	if day, ok := value.AsTime(); ok {
		*dst = &day
		return
	}
	*dst = nil
}

// normalizeList trims list entries and drops empty ones.
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// optionalDateValue converts an optional date into a snapshot value.
func optionalDateValue(t *time.Time) changeset.Value {
	if t == nil {
		return changeset.Absent()
	}
	return changeset.Date(*t)
}

// calendarDay reduces a timestamp to its UTC calendar day.
func calendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
