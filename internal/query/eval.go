// Package query implements the dynamic filter engine: a total predicate
// evaluator over contact records, AND-combined where clauses with legacy
// convenience filters, pagination, field projection, and aggregation.
package query

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/prospector-cli/internal/model"
)

// Evaluate applies one where clause to a record. Total: any malformed
// clause, unknown field, unknown operator, or type mismatch evaluates to
// false instead of erroring. Absence never matches, including for the
// negated operators (except notExists).
func Evaluate(c *model.ContactRecord, clause model.WhereClause) bool {
	// Unknown fields are "no match" for every operator, notExists included.
	if !model.KnownField(clause.Field) {
		zap.L().Debug("query: unknown field in where clause", zap.String("field", clause.Field))
		return false
	}

	val, present := model.Field(c, clause.Field)

	switch clause.Operator {
	case model.OpExists:
		return present
	case model.OpNotExists:
		return !present
	}

	if !present {
		return false
	}

	switch clause.Operator {
	case model.OpEquals:
		return looseEquals(val, clause.Value)
	case model.OpNotEquals:
		return sameKind(val, clause.Value) && !looseEquals(val, clause.Value)
	case model.OpContains:
		return stringOp(val, clause.Value, strings.Contains)
	case model.OpNotContains:
		s, ok1 := asString(val)
		sub, ok2 := asString(clause.Value)
		return ok1 && ok2 && !strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	case model.OpStartsWith:
		return stringOp(val, clause.Value, strings.HasPrefix)
	case model.OpEndsWith:
		return stringOp(val, clause.Value, strings.HasSuffix)
	case model.OpGT:
		return numericOp(val, clause.Value, func(a, b float64) bool { return a > b })
	case model.OpGTE:
		return numericOp(val, clause.Value, func(a, b float64) bool { return a >= b })
	case model.OpLT:
		return numericOp(val, clause.Value, func(a, b float64) bool { return a < b })
	case model.OpLTE:
		return numericOp(val, clause.Value, func(a, b float64) bool { return a <= b })
	case model.OpIn:
		for _, v := range clause.Values {
			if looseEquals(val, v) {
				return true
			}
		}
		return false
	case model.OpNotIn:
		for _, v := range clause.Values {
			if looseEquals(val, v) {
				return false
			}
		}
		return true
	case model.OpArrayContains:
		return arrayContains(val, clause.Value)
	case model.OpArrayContainsAny:
		for _, v := range clause.Values {
			if arrayContains(val, v) {
				return true
			}
		}
		return false
	case model.OpArrayContainsAll:
		if len(clause.Values) == 0 {
			return false
		}
		for _, v := range clause.Values {
			if !arrayContains(val, v) {
				return false
			}
		}
		return true
	default:
		zap.L().Debug("query: unknown operator in where clause",
			zap.String("field", clause.Field),
			zap.String("operator", string(clause.Operator)),
		)
		return false
	}
}

// asString accepts native strings only; other types never satisfy the
// string operators.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asFloat normalizes the numeric types that reach the evaluator: ints from
// record fields, float64 from decoded JSON clauses.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func asStrings(v any) ([]string, bool) {
	s, ok := v.([]string)
	return s, ok
}

// looseEquals is strict equality with numeric type normalization.
func looseEquals(a, b any) bool {
	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	if sa, ok := asString(a); ok {
		sb, ok := asString(b)
		return ok && sa == sb
	}
	if ba, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ba == bb
	}
	return false
}

// sameKind reports whether a and b are of comparable kinds for the
// equality operators.
func sameKind(a, b any) bool {
	if _, ok := asFloat(a); ok {
		_, ok = asFloat(b)
		return ok
	}
	if _, ok := asString(a); ok {
		_, ok = asString(b)
		return ok
	}
	if _, ok := a.(bool); ok {
		_, ok = b.(bool)
		return ok
	}
	return false
}

func stringOp(field, value any, op func(s, sub string) bool) bool {
	s, ok := asString(field)
	if !ok {
		return false
	}
	sub, ok := asString(value)
	if !ok {
		return false
	}
	return op(strings.ToLower(s), strings.ToLower(sub))
}

func numericOp(field, value any, op func(a, b float64) bool) bool {
	a, ok := asFloat(field)
	if !ok {
		return false
	}
	b, ok := asFloat(value)
	if !ok {
		return false
	}
	return op(a, b)
}

// arrayContains reports whether any element of an array field
// case-insensitively equals value.
func arrayContains(field, value any) bool {
	elems, ok := asStrings(field)
	if !ok {
		return false
	}
	want, ok := asString(value)
	if !ok {
		return false
	}
	for _, e := range elems {
		if strings.EqualFold(e, want) {
			return true
		}
	}
	return false
}
