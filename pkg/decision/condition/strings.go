package condition

import (
	"strings"

	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// evaluateString handles the string family. Substring tests are
// case-sensitive. An invalid regex pattern evaluates to false.
func (e *Evaluator) evaluateString(op ast.Operator, actual, expected interface{}) bool {
	actualStr, ok := actual.(string)
	if !ok {
		return false
	}
	expectedStr, ok := expected.(string)
	if !ok {
		return false
	}

	switch op {
	case ast.OperatorContains:
		return strings.Contains(actualStr, expectedStr)

	case ast.OperatorStartsWith:
		return strings.HasPrefix(actualStr, expectedStr)

	case ast.OperatorEndsWith:
		return strings.HasSuffix(actualStr, expectedStr)

	case ast.OperatorMatches:
		re := e.regexps.get(expectedStr)
		if re == nil {
			return false
		}
		return re.MatchString(actualStr)

	default:
		return false
	}
}
