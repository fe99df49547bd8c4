package evaluator

import (
	"context"
	"log/slog"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/decision/condition"
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// RuleEvaluator evaluates a validated RDL ruleset against the decision
// context. Rules run in ascending priority then document order; the first
// enabled rule whose condition matches produces the evaluation. When no rule
// matches the evaluator abstains.
type RuleEvaluator struct {
	name       string
	ruleset    *ast.RuleSet
	conditions *condition.Evaluator
	logger     *slog.Logger
}

// NewRuleEvaluator wraps a parsed and validated ruleset. The evaluator name
// is the ruleset name. Pass a validated ruleset; this constructor does not
// re-validate.
func NewRuleEvaluator(ruleset *ast.RuleSet, logger *slog.Logger) *RuleEvaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleEvaluator{
		name:       ruleset.Name,
		ruleset:    ruleset,
		conditions: condition.NewEvaluator(logger),
		logger:     logger.With("component", "rule_evaluator", "ruleset", ruleset.Name),
	}
}

// Name returns the ruleset name.
func (e *RuleEvaluator) Name() string {
	return e.name
}

// RuleSet returns the underlying ruleset.
func (e *RuleEvaluator) RuleSet() *ast.RuleSet {
	return e.ruleset
}

// Evaluate runs the rules in order and returns the first match as an
// Evaluation, or (nil, nil) when nothing matched.
func (e *RuleEvaluator) Evaluate(ctx context.Context, dctx *decision.Context, feedback map[string]interface{}) (*decision.Evaluation, error) {
	for _, rule := range e.ruleset.EnabledRules() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.conditions.Evaluate(dctx, rule.Condition) {
			continue
		}

		e.logger.Debug("rule matched", "rule", rule.ID, "decision", rule.Decision)
		return decision.NewEvaluation(rule.Decision, rule.Weight, rule.Reason, e.name, map[string]interface{}{
			"rule_id": rule.ID,
		})
	}

	e.logger.Debug("no rule matched, abstaining")
	return nil, nil
}
