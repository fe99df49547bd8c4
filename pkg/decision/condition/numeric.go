package condition

import (
	"math"

	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateNumeric handles the numeric interval family.
func (e *Evaluator) evaluateNumeric(op ast.Operator, actual, expected interface{}) bool {
	value, ok := toFloat(actual)
	if !ok {
		return false
	}

	switch op {
	case ast.OperatorBetween:
		min, max, ok := boundsOf(expected)
		if !ok {
			return false
		}
		// Closed interval on both ends.
		return value >= min && value <= max

	case ast.OperatorModulo:
		divisor, remainder, ok := moduloOf(expected)
		if !ok || divisor == 0 {
			return false
		}
		if !isWholeNumber(value) || !isWholeNumber(divisor) || !isWholeNumber(remainder) {
			return false
		}
		got := math.Mod(value, divisor)
		if got < 0 {
			got += math.Abs(divisor)
		}
		return got == remainder

	default:
		return false
	}
}

// boundsOf extracts [min, max] from a two-element array or a {min, max} map.
func boundsOf(v interface{}) (float64, float64, bool) {
	if arr, ok := v.([]interface{}); ok {
		if len(arr) != 2 {
			return 0, 0, false
		}
		min, ok1 := toFloat(arr[0])
		max, ok2 := toFloat(arr[1])
		return min, max, ok1 && ok2
	}
	if m, ok := asMap(v); ok {
		min, ok1 := toFloat(m["min"])
		max, ok2 := toFloat(m["max"])
		return min, max, ok1 && ok2
	}
	return 0, 0, false
}

// moduloOf extracts {divisor, remainder} from a map or a two-element array.
func moduloOf(v interface{}) (float64, float64, bool) {
	if m, ok := asMap(v); ok {
		divisor, ok1 := toFloat(m["divisor"])
		remainder, ok2 := toFloat(m["remainder"])
		return divisor, remainder, ok1 && ok2
	}
	if arr, ok := v.([]interface{}); ok {
		if len(arr) != 2 {
			return 0, 0, false
		}
		divisor, ok1 := toFloat(arr[0])
		remainder, ok2 := toFloat(arr[1])
		return divisor, remainder, ok1 && ok2
	}
	return 0, 0, false
}
