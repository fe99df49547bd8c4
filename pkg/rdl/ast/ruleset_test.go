package ast

import "testing"

func TestEnabledRules_Ordering(t *testing.T) {
	rs := &RuleSet{
		Name: "ordering",
		Rules: []*Rule{
			{ID: "c", Enabled: true, Priority: 10},
			{ID: "off", Enabled: false, Priority: 0},
			{ID: "a", Enabled: true, Priority: 1},
			{ID: "d", Enabled: true, Priority: 10},
			{ID: "b", Enabled: true, Priority: 1},
		},
	}

	got := rs.EnabledRules()
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %d rules, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}

	// The receiver keeps its document order.
	if rs.Rules[0].ID != "c" {
		t.Error("EnabledRules reordered the ruleset in place")
	}
}

func TestRuleLookup(t *testing.T) {
	rs := &RuleSet{Rules: []*Rule{{ID: "r1"}, {ID: "r2"}}}

	if rs.Rule("r2") == nil {
		t.Error("existing rule not found")
	}
	if rs.Rule("missing") != nil {
		t.Error("missing rule should return nil")
	}
}

func TestConditionNode_Walk(t *testing.T) {
	tree := &ConditionNode{
		Type: ConditionTypeAll,
		Children: []*ConditionNode{
			{Type: ConditionTypeSimple, Field: "a", Operator: OperatorPresent},
			{
				Type: ConditionTypeAny,
				Children: []*ConditionNode{
					{Type: ConditionTypeSimple, Field: "b", Operator: OperatorPresent},
				},
			},
		},
	}

	var visited int
	tree.Walk(func(*ConditionNode) bool {
		visited++
		return true
	})
	if visited != 4 {
		t.Errorf("visited %d nodes, want 4", visited)
	}

	visited = 0
	tree.Walk(func(n *ConditionNode) bool {
		visited++
		return n.Type != ConditionTypeSimple
	})
	if visited != 2 {
		t.Errorf("early stop visited %d nodes, want 2", visited)
	}
}

func TestOperatorFamilies(t *testing.T) {
	tests := []struct {
		op     Operator
		family OperatorFamily
	}{
		{OperatorEqual, FamilyComparison},
		{OperatorMatches, FamilyString},
		{OperatorBetween, FamilyNumeric},
		{OperatorSqrt, FamilyMath},
		{OperatorPercentile, FamilyStats},
		{OperatorWithinDays, FamilyDateTime},
		{OperatorCompoundInterest, FamilyFinancial},
		{OperatorContainsAll, FamilyCollection},
		{OperatorInPolygon, FamilyGeospatial},
	}
	for _, tt := range tests {
		if got := tt.op.Family(); got != tt.family {
			t.Errorf("%q family = %q, want %q", tt.op, got, tt.family)
		}
	}

	if Operator("approximately").IsKnown() {
		t.Error("unknown operator reported as known")
	}

	families := KnownOperators()
	if len(families[FamilyGeospatial]) != 2 {
		t.Errorf("geospatial family has %d operators, want 2", len(families[FamilyGeospatial]))
	}
}
