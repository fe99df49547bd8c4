package condition

import (
	"math"
	"strconv"
	"time"
)

// epsilon is the absolute tolerance for floating-point comparisons in the
// math, stats, datetime, and financial families.
const epsilon = 1e-10

// toFloat converts a numeric value to float64. Strings are deliberately not
// coerced: "42" is not a number to the comparison operators.
func toFloat(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int8:
		return float64(value), true
	case int16:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case uint:
		return float64(value), true
	case uint8:
		return float64(value), true
	case uint16:
		return float64(value), true
	case uint32:
		return float64(value), true
	case uint64:
		return float64(value), true
	default:
		return 0, false
	}
}

// toFloats extracts the numeric elements of an array value, ignoring
// non-numeric elements. Returns false if the value is not an array.
func toFloats(v interface{}) ([]float64, bool) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(arr))
	for _, item := range arr {
		if f, ok := toFloat(item); ok {
			out = append(out, f)
		}
	}
	return out, true
}

// nearlyEqual reports whether two floats are within the engine epsilon.
func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// isWholeNumber reports whether a float carries no fractional part.
func isWholeNumber(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// setKey produces a canonical map key for set-based collection operators, so
// the integer 2 and the float 2.0 land on the same key while "2" (a string)
// does not.
func setKey(v interface{}) (string, bool) {
	if f, ok := toFloat(v); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64), true
	}
	switch value := v.(type) {
	case string:
		return "s:" + value, true
	case bool:
		return "b:" + strconv.FormatBool(value), true
	case nil:
		return "nil", true
	default:
		return "", false
	}
}

// looseEqual compares two scalar values with numeric awareness: ints and
// floats compare numerically, everything else by exact type and value.
func looseEqual(a, b interface{}) bool {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok || bok {
		return aok && bok && fa == fb
	}
	ka, aok := setKey(a)
	kb, bok := setKey(b)
	return aok && bok && ka == kb
}

// asMap normalizes operand maps decoded from YAML or JSON.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch value := v.(type) {
	case map[string]interface{}:
		return value, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// asTime converts a field or operand value to a time.Time: native times pass
// through, numbers are Unix seconds, and strings go through the shared date
// cache.
func (e *Evaluator) asTime(v interface{}) (time.Time, bool) {
	switch value := v.(type) {
	case time.Time:
		return value, true
	case string:
		return e.dates.get(value)
	default:
		if f, ok := toFloat(v); ok {
			sec, frac := math.Modf(f)
			return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), true
		}
		return time.Time{}, false
	}
}

// compareResult checks a computed numeric value against an operand that is
// either a direct number (epsilon equality) or a parameter map with any of
// the keys result, eq, min, max, gt, gte, lt, lte. Every present constraint
// must hold; a map with no recognized constraint fails closed.
func compareResult(computed float64, operand interface{}) bool {
	if expected, ok := toFloat(operand); ok {
		return nearlyEqual(computed, expected)
	}

	params, ok := asMap(operand)
	if !ok {
		return false
	}

	matched := false
	for key, raw := range params {
		limit, ok := toFloat(raw)
		if !ok {
			// Unrecognized constraint payloads fail the whole test.
			switch key {
			case "result", "eq", "min", "max", "gt", "gte", "lt", "lte":
				return false
			}
			continue
		}
		switch key {
		case "result", "eq":
			if !nearlyEqual(computed, limit) {
				return false
			}
		case "min", "gte":
			if computed < limit-epsilon {
				return false
			}
		case "max", "lte":
			if computed > limit+epsilon {
				return false
			}
		case "gt":
			if computed <= limit {
				return false
			}
		case "lt":
			if computed >= limit {
				return false
			}
		default:
			continue
		}
		matched = true
	}

	return matched
}
