package validator

import (
	"fmt"

	"arbiter-hq/arbiter/pkg/rdl/ast"
	rdlErrors "arbiter-hq/arbiter/pkg/rdl/errors"
)

// Validator validates parsed RDL rulesets.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks a ruleset for semantic errors. It returns nil if the
// ruleset is valid, or an *errors.ErrorList describing every problem found.
func (v *Validator) Validate(ruleset *ast.RuleSet) error {
	errList := rdlErrors.NewErrorList()

	if ruleset == nil {
		errList.AddError(rdlErrors.ErrorTypeStructural, "Ruleset is nil", ast.Location{})
		return errList.ToError()
	}

	if ruleset.Name == "" {
		errList.AddError(rdlErrors.ErrorTypeStructural, "Missing ruleset 'name'", ruleset.Location)
	}

	if len(ruleset.Rules) == 0 {
		errList.AddError(rdlErrors.ErrorTypeStructural, "Ruleset has no rules", ruleset.Location)
	}

	seen := make(map[string]bool, len(ruleset.Rules))
	for _, rule := range ruleset.Rules {
		v.validateRule(rule, seen, errList)
	}

	return errList.ToError()
}

// validateRule validates a single rule.
func (v *Validator) validateRule(rule *ast.Rule, seen map[string]bool, errList *rdlErrors.ErrorList) {
	if rule.ID == "" {
		errList.AddError(rdlErrors.ErrorTypeValidation, "Rule has no 'id'", rule.Location)
	} else if seen[rule.ID] {
		errList.AddError(rdlErrors.ErrorTypeValidation,
			fmt.Sprintf("Duplicate rule id %q", rule.ID), rule.Location)
	} else {
		seen[rule.ID] = true
	}

	if rule.Decision == "" {
		errList.AddError(rdlErrors.ErrorTypeValidation,
			fmt.Sprintf("Rule %q has no decision", rule.ID), rule.Location)
	}

	if rule.Weight < 0.0 || rule.Weight > 1.0 {
		errList.AddErrorWithSuggestion(rdlErrors.ErrorTypeValidation,
			fmt.Sprintf("Rule %q weight %v is outside [0, 1]", rule.ID, rule.Weight),
			rule.Location,
			"weights express proposal strength as a fraction between 0.0 and 1.0")
	}

	if rule.Condition != nil {
		v.validateCondition(rule.ID, rule.Condition, errList)
	}
}

// validateCondition validates a condition tree.
func (v *Validator) validateCondition(ruleID string, node *ast.ConditionNode, errList *rdlErrors.ErrorList) {
	switch node.Type {
	case ast.ConditionTypeSimple:
		if node.Field == "" {
			errList.AddError(rdlErrors.ErrorTypeValidation,
				fmt.Sprintf("Rule %q has a condition with no field", ruleID), node.Location)
		}
		if !node.Operator.IsKnown() {
			errList.AddErrorWithSuggestion(rdlErrors.ErrorTypeSemantic,
				fmt.Sprintf("Rule %q uses unknown operator %q", ruleID, node.Operator),
				node.Location,
				"see the ast package for the full operator set")
		}
		if len(node.Children) > 0 {
			errList.AddError(rdlErrors.ErrorTypeStructural,
				fmt.Sprintf("Rule %q has a simple condition with children", ruleID), node.Location)
		}

	case ast.ConditionTypeAll, ast.ConditionTypeAny:
		if len(node.Children) == 0 {
			errList.AddError(rdlErrors.ErrorTypeStructural,
				fmt.Sprintf("Rule %q has an empty %q combinator", ruleID, node.Type), node.Location)
		}
		for _, child := range node.Children {
			v.validateCondition(ruleID, child, errList)
		}

	default:
		errList.AddError(rdlErrors.ErrorTypeStructural,
			fmt.Sprintf("Rule %q has a condition of unknown type %q", ruleID, node.Type), node.Location)
	}
}
