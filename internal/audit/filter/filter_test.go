package filter

import (
	"reflect"
	"testing"
)

func TestParseEmptyFilter(t *testing.T) {
	condition, err := Parse("   ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if condition.Clause != "" || condition.Params != nil {
		t.Fatalf("expected empty condition, got %+v", condition)
	}
}

func TestParseComparisons(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		clause     string
		params     []any
	}{
		{
			name:       "equality",
			expression: `entity_kind = "company"`,
			clause:     "entity_kind = ?",
			params:     []any{"company"},
		},
		{
			name:       "inequality",
			expression: `action != "create"`,
			clause:     "action != ?",
			params:     []any{"create"},
		},
		{
			name:       "and",
			expression: `entity_kind = "branch" AND actor_kind = "admin"`,
			clause:     "(entity_kind = ? AND actor_kind = ?)",
			params:     []any{"branch", "admin"},
		},
		{
			name:       "or",
			expression: `action = "delete" OR action = "update"`,
			clause:     "(action = ? OR action = ?)",
			params:     []any{"delete", "update"},
		},
		{
			name:       "timestamp range",
			expression: `occurred_at >= timestamp("2026-03-14T00:00:00Z")`,
			clause:     "occurred_at >= ?",
			params:     []any{int64(1773446400000)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			condition, err := Parse(tc.expression)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.expression, err)
			}
			if condition.Clause != tc.clause {
				t.Fatalf("expected clause %q, got %q", tc.clause, condition.Clause)
			}
			if !reflect.DeepEqual(condition.Params, tc.params) {
				t.Fatalf("expected params %v, got %v", tc.params, condition.Params)
			}
		})
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	if _, err := Parse(`secret = "x"`); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseRejectsMalformedExpression(t *testing.T) {
	if _, err := Parse(`entity_kind = `); err == nil {
		t.Fatal("expected error for malformed expression")
	}
}
