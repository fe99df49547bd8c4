package validator

import (
	"errors"
	"testing"

	"arbiter-hq/arbiter/pkg/rdl/ast"
	rdlErrors "arbiter-hq/arbiter/pkg/rdl/errors"
)

func validRuleSet() *ast.RuleSet {
	return &ast.RuleSet{
		Name: "fraud_rules",
		Rules: []*ast.Rule{
			{
				ID:       "r1",
				Enabled:  true,
				Decision: "deny",
				Weight:   0.9,
				Condition: &ast.ConditionNode{
					Type:     ast.ConditionTypeSimple,
					Field:    "amount",
					Operator: ast.OperatorGreaterThan,
					Value:    float64(1000),
				},
			},
			{
				ID:       "r2",
				Enabled:  true,
				Decision: "approve",
				Weight:   0.5,
			},
		},
	}
}

func errorList(t *testing.T, err error) *rdlErrors.ErrorList {
	t.Helper()
	var list *rdlErrors.ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("got %T, want *errors.ErrorList: %v", err, err)
	}
	return list
}

func TestValidate_Valid(t *testing.T) {
	if err := NewValidator().Validate(validRuleSet()); err != nil {
		t.Errorf("valid ruleset rejected: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ast.RuleSet)
		wantType rdlErrors.ErrorType
	}{
		{
			name:     "missing name",
			mutate:   func(rs *ast.RuleSet) { rs.Name = "" },
			wantType: rdlErrors.ErrorTypeStructural,
		},
		{
			name:     "no rules",
			mutate:   func(rs *ast.RuleSet) { rs.Rules = nil },
			wantType: rdlErrors.ErrorTypeStructural,
		},
		{
			name:     "duplicate rule id",
			mutate:   func(rs *ast.RuleSet) { rs.Rules[1].ID = "r1" },
			wantType: rdlErrors.ErrorTypeValidation,
		},
		{
			name:     "missing decision",
			mutate:   func(rs *ast.RuleSet) { rs.Rules[0].Decision = "" },
			wantType: rdlErrors.ErrorTypeValidation,
		},
		{
			name:     "weight above one",
			mutate:   func(rs *ast.RuleSet) { rs.Rules[0].Weight = 1.2 },
			wantType: rdlErrors.ErrorTypeValidation,
		},
		{
			name:     "negative weight",
			mutate:   func(rs *ast.RuleSet) { rs.Rules[0].Weight = -0.1 },
			wantType: rdlErrors.ErrorTypeValidation,
		},
		{
			name:     "unknown operator",
			mutate:   func(rs *ast.RuleSet) { rs.Rules[0].Condition.Operator = "approximately" },
			wantType: rdlErrors.ErrorTypeSemantic,
		},
		{
			name:     "condition without field",
			mutate:   func(rs *ast.RuleSet) { rs.Rules[0].Condition.Field = "" },
			wantType: rdlErrors.ErrorTypeValidation,
		},
		{
			name: "empty combinator",
			mutate: func(rs *ast.RuleSet) {
				rs.Rules[0].Condition = &ast.ConditionNode{Type: ast.ConditionTypeAll}
			},
			wantType: rdlErrors.ErrorTypeStructural,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := validRuleSet()
			tt.mutate(rs)

			err := NewValidator().Validate(rs)
			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if len(errorList(t, err).ByType(tt.wantType)) == 0 {
				t.Errorf("no %q errors in: %v", tt.wantType, err)
			}
		})
	}
}

func TestValidate_AccumulatesAllErrors(t *testing.T) {
	rs := validRuleSet()
	rs.Name = ""
	rs.Rules[0].Decision = ""
	rs.Rules[1].Weight = 5.0

	err := NewValidator().Validate(rs)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if got := errorList(t, err).Count(); got != 3 {
		t.Errorf("got %d errors, want 3: %v", got, err)
	}
}

func TestValidate_NestedConditions(t *testing.T) {
	rs := validRuleSet()
	rs.Rules[0].Condition = &ast.ConditionNode{
		Type: ast.ConditionTypeAny,
		Children: []*ast.ConditionNode{
			{
				Type:     ast.ConditionTypeSimple,
				Field:    "country",
				Operator: ast.OperatorIn,
				Value:    []interface{}{"XX"},
			},
			{
				Type: ast.ConditionTypeAll,
				Children: []*ast.ConditionNode{
					{Type: ast.ConditionTypeSimple, Field: "amount", Operator: "nope"},
				},
			},
		},
	}

	err := NewValidator().Validate(rs)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if len(errorList(t, err).ByType(rdlErrors.ErrorTypeSemantic)) != 1 {
		t.Errorf("unknown operator in nested condition not reported: %v", err)
	}
}

func TestValidate_NilRuleset(t *testing.T) {
	if err := NewValidator().Validate(nil); err == nil {
		t.Error("nil ruleset should fail validation")
	}
}
