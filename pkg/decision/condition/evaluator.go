package condition

import (
	"log/slog"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// Evaluator walks RDL condition trees against a decision context.
//
// The zero value is not usable; construct with NewEvaluator. One instance
// owns the regex/path/date caches and is safe for unlimited concurrent
// Evaluate calls.
type Evaluator struct {
	logger  *slog.Logger
	regexps *regexCache
	paths   *pathCache
	dates   *dateCache
}

// NewEvaluator creates a condition evaluator with fresh caches.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		logger:  logger.With("component", "condition"),
		regexps: newRegexCache(),
		paths:   newPathCache(),
		dates:   newDateCache(),
	}
}

// Evaluate evaluates a condition tree and returns whether it matched.
// A nil condition always matches. Any malformed operand, type mismatch, or
// missing field evaluates to false; errors never escape this method.
func (e *Evaluator) Evaluate(dctx *decision.Context, node *ast.ConditionNode) bool {
	if node == nil {
		return true
	}

	switch node.Type {
	case ast.ConditionTypeSimple:
		return e.evaluateSimple(dctx, node)

	case ast.ConditionTypeAll:
		for _, child := range node.Children {
			// Short-circuit on the first non-matching child.
			if !e.Evaluate(dctx, child) {
				return false
			}
		}
		return true

	case ast.ConditionTypeAny:
		for _, child := range node.Children {
			// Short-circuit on the first matching child.
			if e.Evaluate(dctx, child) {
				return true
			}
		}
		return false

	default:
		e.logger.Debug("unknown condition type", "type", node.Type)
		return false
	}
}

// evaluateSimple evaluates a single field test.
func (e *Evaluator) evaluateSimple(dctx *decision.Context, node *ast.ConditionNode) bool {
	fieldValue, found := dctx.LookupSegments(e.paths.get(node.Field))

	// present and blank are the only operators that see the found flag; for
	// every other operator a missing field is a typed miss.
	switch node.Operator {
	case ast.OperatorPresent:
		return found && fieldValue != nil
	case ast.OperatorBlank:
		return isBlank(fieldValue, found)
	}

	if !found {
		return false
	}

	switch node.Operator.Family() {
	case ast.FamilyComparison:
		return e.evaluateComparison(node.Operator, fieldValue, node.Value)
	case ast.FamilyString:
		return e.evaluateString(node.Operator, fieldValue, node.Value)
	case ast.FamilyNumeric:
		return e.evaluateNumeric(node.Operator, fieldValue, node.Value)
	case ast.FamilyMath:
		return e.evaluateMath(node.Operator, fieldValue, node.Value)
	case ast.FamilyStats:
		return e.evaluateStats(node.Operator, fieldValue, node.Value)
	case ast.FamilyDateTime:
		return e.evaluateDateTime(dctx, node.Operator, fieldValue, node.Value)
	case ast.FamilyFinancial:
		return e.evaluateFinancial(node.Operator, fieldValue, node.Value)
	case ast.FamilyCollection:
		return e.evaluateCollection(node.Operator, fieldValue, node.Value)
	case ast.FamilyGeospatial:
		return e.evaluateGeospatial(node.Operator, fieldValue, node.Value)
	default:
		e.logger.Debug("unknown operator", "operator", node.Operator, "field", node.Field)
		return false
	}
}
