package condition

import (
	"reflect"
	"strings"

	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateComparison handles the comparison family on raw field values.
// Numeric comparison is type-aware: strings are never coerced to numbers.
func (e *Evaluator) evaluateComparison(op ast.Operator, actual, expected interface{}) bool {
	switch op {
	case ast.OperatorEqual:
		return valuesEqual(actual, expected)

	case ast.OperatorNotEqual:
		return !valuesEqual(actual, expected)

	case ast.OperatorGreaterThan:
		cmp, ok := orderValues(actual, expected)
		return ok && cmp > 0

	case ast.OperatorGreaterEqual:
		cmp, ok := orderValues(actual, expected)
		return ok && cmp >= 0

	case ast.OperatorLessThan:
		cmp, ok := orderValues(actual, expected)
		return ok && cmp < 0

	case ast.OperatorLessEqual:
		cmp, ok := orderValues(actual, expected)
		return ok && cmp <= 0

	case ast.OperatorIn:
		arr, ok := expected.([]interface{})
		if !ok {
			return false
		}
		for _, item := range arr {
			if valuesEqual(actual, item) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// valuesEqual compares two values with numeric awareness: ints and floats of
// equal magnitude are equal, but a number never equals its string rendering.
func valuesEqual(actual, expected interface{}) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	fa, aok := toFloat(actual)
	fb, bok := toFloat(expected)
	if aok || bok {
		return aok && bok && fa == fb
	}

	switch a := actual.(type) {
	case string:
		b, ok := expected.(string)
		return ok && a == b
	case bool:
		b, ok := expected.(bool)
		return ok && a == b
	}

	return reflect.DeepEqual(actual, expected)
}

// orderValues compares two values of the same kind: numbers numerically,
// strings lexicographically. Mixed or unordered kinds report no ordering.
func orderValues(actual, expected interface{}) (int, bool) {
	fa, aok := toFloat(actual)
	fb, bok := toFloat(expected)
	if aok && bok {
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}
	if aok || bok {
		return 0, false
	}

	sa, aok := actual.(string)
	sb, bok := expected.(string)
	if aok && bok {
		return strings.Compare(sa, sb), true
	}

	return 0, false
}

// isBlank reports whether a field value is missing, nil, a whitespace-only
// string, or an empty collection.
func isBlank(v interface{}, found bool) bool {
	if !found || v == nil {
		return true
	}
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value) == ""
	case []interface{}:
		return len(value) == 0
	case map[string]interface{}:
		return len(value) == 0
	default:
		return false
	}
}
