package web

import (
	"encoding/json"
	"time"

	"golang.org/x/text/message"

	"github.com/trastiendahq/trastienda/internal/changeset"
	apperrors "github.com/trastiendahq/trastienda/internal/platform/errors"
	"github.com/trastiendahq/trastienda/internal/retail"
)

// editDateLayout is the wire format for calendar-day fields.
const editDateLayout = "2006-01-02"

// fieldKind tells the edit decoder how to interpret a field's JSON value.
type fieldKind int

const (
	fieldText fieldKind = iota
	fieldInt
	fieldDate
	fieldStrings
)

// Editable field sets per entity. Fields outside the set are dropped by
// the service layer; the set here only drives JSON decoding and labels.
var (
	companyFields = map[string]fieldKind{
		"name":    fieldText,
		"taxId":   fieldText,
		"email":   fieldText,
		"phone":   fieldText,
		"address": fieldText,
	}
	branchFields = map[string]fieldKind{
		"name":    fieldText,
		"phone":   fieldText,
		"address": fieldText,
	}
	warehouseFields = map[string]fieldKind{
		"name":     fieldText,
		"branchId": fieldText,
		"address":  fieldText,
		"capacity": fieldInt,
	}
	managerFields = map[string]fieldKind{
		"name":     fieldText,
		"email":    fieldText,
		"phone":    fieldText,
		"branchId": fieldText,
		"hiredOn":  fieldDate,
	}
	supplierFields = map[string]fieldKind{
		"name":        fieldText,
		"contactName": fieldText,
		"email":       fieldText,
		"phone":       fieldText,
		"categories":  fieldStrings,
	}
	customerFields = map[string]fieldKind{
		"name":   fieldText,
		"email":  fieldText,
		"phone":  fieldText,
		"bornOn": fieldDate,
		"tags":   fieldStrings,
		"notes":  fieldText,
	}
)

// updateRequest is the wire shape of a guarded edit: the edited field
// values plus the operator's reason for the change.
type updateRequest struct {
	Fields map[string]json.RawMessage `json:"fields"`
	Reason string                     `json:"reason"`
}

// deleteRequest is the wire shape of the final deletion confirmation.
type deleteRequest struct {
	ConfirmName string `json:"confirmName"`
	Password    string `json:"password"`
}

// snapshotFromJSON decodes edited field values into a snapshot. A JSON
// null clears the field; unknown fields are ignored.
func snapshotFromJSON(fields map[string]json.RawMessage, spec map[string]fieldKind) (changeset.Snapshot, error) {
	snapshot := make(changeset.Snapshot, len(fields))
	for field, raw := range fields {
		kind, ok := spec[field]
		if !ok {
			continue
		}
		if string(raw) == "null" {
			snapshot[field] = changeset.Absent()
			continue
		}
		value, err := decodeFieldValue(field, raw, kind)
		if err != nil {
			return nil, err
		}
		snapshot[field] = value
	}
	return snapshot, nil
}

func decodeFieldValue(field string, raw json.RawMessage, kind fieldKind) (changeset.Value, error) {
	switch kind {
	case fieldInt:
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return changeset.Value{}, invalidField(field, err)
		}
		return changeset.Int(n), nil
	case fieldDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return changeset.Value{}, invalidField(field, err)
		}
		day, err := time.Parse(editDateLayout, s)
		if err != nil {
			return changeset.Value{}, invalidField(field, err)
		}
		return changeset.Date(day), nil
	case fieldStrings:
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return changeset.Value{}, invalidField(field, err)
		}
		return changeset.Strings(items), nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return changeset.Value{}, invalidField(field, err)
		}
		return changeset.Text(s), nil
	}
}

func invalidField(field string, cause error) *apperrors.Error {
	return apperrors.Wrap(apperrors.CodeRequestInvalid, "invalid value for field "+field, cause)
}

// fieldLabels resolves the localized display label for each editable
// field, for use in change summaries.
func fieldLabels(p *message.Printer, spec map[string]fieldKind) map[string]string {
	labels := make(map[string]string, len(spec))
	for field := range spec {
		labels[field] = p.Sprintf(retail.FieldLabelKey(field))
	}
	return labels
}
