package condition

import (
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateCollection handles the collection family. Both sides must be
// arrays; membership uses hash-set lookups rather than linear scans so large
// collections stay O(n + m).
func (e *Evaluator) evaluateCollection(op ast.Operator, actual, expected interface{}) bool {
	actualArr, ok := actual.([]interface{})
	if !ok {
		return false
	}
	expectedArr, ok := expected.([]interface{})
	if !ok {
		return false
	}

	switch op {
	case ast.OperatorContainsAll:
		// Every expected element must be in the field array.
		set, ok := buildSet(actualArr)
		if !ok {
			return false
		}
		for _, item := range expectedArr {
			key, ok := setKey(item)
			if !ok {
				return false
			}
			if _, found := set[key]; !found {
				return false
			}
		}
		return true

	case ast.OperatorContainsAny, ast.OperatorIntersects:
		// At least one element in common.
		set, ok := buildSet(actualArr)
		if !ok {
			return false
		}
		for _, item := range expectedArr {
			key, ok := setKey(item)
			if !ok {
				continue
			}
			if _, found := set[key]; found {
				return true
			}
		}
		return false

	case ast.OperatorSubsetOf:
		// Every field element must be in the expected array.
		set, ok := buildSet(expectedArr)
		if !ok {
			return false
		}
		for _, item := range actualArr {
			key, ok := setKey(item)
			if !ok {
				return false
			}
			if _, found := set[key]; !found {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// buildSet builds a membership set keyed by canonical scalar keys. Arrays
// containing non-scalar elements are rejected.
func buildSet(items []interface{}) (map[string]struct{}, bool) {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		key, ok := setKey(item)
		if !ok {
			return nil, false
		}
		set[key] = struct{}{}
	}
	return set, true
}
