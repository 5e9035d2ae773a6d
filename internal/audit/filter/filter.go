// Package filter parses AIP-160 filter expressions over the audit trail
// and translates them into SQL predicates.
package filter

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Condition is a SQL WHERE fragment with positional parameters.
type Condition struct {
	Clause string
	Params []any
}

// columns maps filter field names onto audit_events columns. occurred_at
// is stored as Unix milliseconds, so timestamp literals are converted.
var columns = map[string]string{
	"entity_kind": "entity_kind",
	"entity_id":   "entity_id",
	"entity_name": "entity_name",
	"action":      "action",
	"actor_kind":  "actor_kind",
	"actor_id":    "actor_id",
	"occurred_at": "occurred_at",
}

// Declarations returns the field declarations accepted in audit filters.
func Declarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("entity_kind", filtering.TypeString),
		filtering.DeclareIdent("entity_id", filtering.TypeString),
		filtering.DeclareIdent("entity_name", filtering.TypeString),
		filtering.DeclareIdent("action", filtering.TypeString),
		filtering.DeclareIdent("actor_kind", filtering.TypeString),
		filtering.DeclareIdent("actor_id", filtering.TypeString),
		filtering.DeclareIdent("occurred_at", filtering.TypeTimestamp),
	)
}

// Parse translates an AIP-160 filter expression into a SQL condition. An
// empty expression yields an empty condition.
func Parse(expression string) (Condition, error) {
	if strings.TrimSpace(expression) == "" {
		return Condition{}, nil
	}

	decls, err := Declarations()
	if err != nil {
		return Condition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(expression, decls)
	if err != nil {
		return Condition{}, fmt.Errorf("parse filter: %w", err)
	}
	return translate(parsed.CheckedExpr.Expr)
}

func translate(e *expr.Expr) (Condition, error) {
	if e == nil {
		return Condition{}, nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return Condition{}, fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}

	switch call.CallExpr.Function {
	case "_&&_", "AND":
		return translateLogical(call.CallExpr.Args, "AND")
	case "_||_", "OR":
		return translateLogical(call.CallExpr.Args, "OR")
	case "_==_", "=":
		return translateComparison(call.CallExpr.Args, "=")
	case "_!=_", "!=":
		return translateComparison(call.CallExpr.Args, "!=")
	case "_<_", "<":
		return translateComparison(call.CallExpr.Args, "<")
	case "_<=_", "<=":
		return translateComparison(call.CallExpr.Args, "<=")
	case "_>_", ">":
		return translateComparison(call.CallExpr.Args, ">")
	case "_>=_", ">=":
		return translateComparison(call.CallExpr.Args, ">=")
	default:
		return Condition{}, fmt.Errorf("unsupported function: %s", call.CallExpr.Function)
	}
}

func translateLogical(args []*expr.Expr, op string) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("%s requires 2 arguments", op)
	}
	left, err := translate(args[0])
	if err != nil {
		return Condition{}, err
	}
	right, err := translate(args[1])
	if err != nil {
		return Condition{}, err
	}
	return Condition{
		Clause: fmt.Sprintf("(%s %s %s)", left.Clause, op, right.Clause),
		Params: append(left.Params, right.Params...),
	}, nil
}

func translateComparison(args []*expr.Expr, op string) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("comparison requires 2 arguments")
	}
	field, err := identName(args[0])
	if err != nil {
		return Condition{}, err
	}
	column, ok := columns[field]
	if !ok {
		return Condition{}, fmt.Errorf("unknown field: %s", field)
	}
	value, err := literalValue(args[1])
	if err != nil {
		return Condition{}, err
	}
	return Condition{
		Clause: fmt.Sprintf("%s %s ?", column, op),
		Params: []any{value},
	}, nil
}

func identName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	ident, ok := e.ExprKind.(*expr.Expr_IdentExpr)
	if !ok {
		return "", fmt.Errorf("expected identifier, got %T", e.ExprKind)
	}
	return ident.IdentExpr.Name, nil
}

func literalValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return constValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return timestampMillis(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func constValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}
	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

// timestampMillis converts a timestamp("...") literal to the Unix
// millisecond encoding used by the occurred_at column.
func timestampMillis(e *expr.Expr) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("nil timestamp argument")
	}
	constExpr, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a constant string")
	}
	strVal, ok := constExpr.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a string")
	}
	t, err := time.Parse(time.RFC3339, strVal.StringValue)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, strVal.StringValue)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp format: %s", strVal.StringValue)
		}
	}
	return t.UTC().UnixMilli(), nil
}
