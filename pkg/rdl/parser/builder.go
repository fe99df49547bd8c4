package parser

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"arbiter-hq/arbiter/pkg/rdl/ast"
	rdlErrors "arbiter-hq/arbiter/pkg/rdl/errors"
)

// builder constructs AST nodes from intermediate YAML structures.
// It handles type conversion and preserves source locations.
type builder struct {
	sourcePath string
	errors     *rdlErrors.ErrorList
}

// newBuilder creates a new AST builder for the given source file.
func newBuilder(sourcePath string) *builder {
	return &builder{
		sourcePath: sourcePath,
		errors:     rdlErrors.NewErrorList(),
	}
}

// buildRuleSet transforms a yamlRuleSet into an ast.RuleSet.
func (b *builder) buildRuleSet(yrs *yamlRuleSet) (*ast.RuleSet, error) {
	ruleset := &ast.RuleSet{
		RDLVersion:  yrs.RDLVersion,
		Name:        yrs.Name,
		Version:     yrs.Version,
		Description: yrs.Description,
		Author:      yrs.Author,
		Tags:        yrs.Tags,
		SourceFile:  b.sourcePath,
		Rules:       make([]*ast.Rule, 0, len(yrs.Rules)),
		Location: ast.Location{
			File:   b.sourcePath,
			Line:   1,
			Column: 1,
		},
	}

	// Parse timestamps
	if yrs.Created != "" {
		if t, err := time.Parse(time.RFC3339, yrs.Created); err == nil {
			ruleset.Created = t
		}
	}
	if yrs.Updated != "" {
		if t, err := time.Parse(time.RFC3339, yrs.Updated); err == nil {
			ruleset.Updated = t
		}
	}

	// Build rules
	for i, yr := range yrs.Rules {
		loc := b.location(yrs.ruleNode(i))
		rule, err := b.buildRule(&yr, loc)
		if err != nil {
			b.errors.AddError(rdlErrors.ErrorTypeStructural,
				fmt.Sprintf("Invalid rule at index %d: %v", i, err),
				loc)
			continue
		}
		ruleset.Rules = append(ruleset.Rules, rule)
	}

	return ruleset, b.errors.ToError()
}

// buildRule transforms a yamlRule into an ast.Rule.
func (b *builder) buildRule(yr *yamlRule, loc ast.Location) (*ast.Rule, error) {
	if yr.ID == "" {
		return nil, fmt.Errorf("missing 'id'")
	}

	rule := &ast.Rule{
		ID:          yr.ID,
		Description: yr.Description,
		Enabled:     true,
		Decision:    yr.Then.Decision,
		Reason:      yr.Then.Reason,
		Priority:    yr.Priority,
		Location:    loc,
	}

	if yr.Enabled != nil {
		rule.Enabled = *yr.Enabled
	}

	if yr.Then.Weight != nil {
		rule.Weight = *yr.Then.Weight
	} else {
		// Weight defaults to a full-strength proposal.
		rule.Weight = 1.0
	}

	if yr.If != nil {
		cond, err := b.buildCondition(yr.If, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid condition: %w", err)
		}
		rule.Condition = cond
	}

	return rule, nil
}

// buildCondition transforms condition YAML into an ast.ConditionNode.
// Conditions can be:
//   - Single condition (map with field, operator, value)
//   - Array of conditions (implicit all)
//   - Logical combinator (all, any with array of children)
func (b *builder) buildCondition(cond interface{}, loc ast.Location) (*ast.ConditionNode, error) {
	switch v := cond.(type) {
	case map[string]interface{}:
		return b.buildConditionMap(v, loc)
	case []interface{}:
		return b.buildLogicalCondition(ast.ConditionTypeAll, v, loc)
	default:
		return nil, fmt.Errorf("invalid condition type: %T", cond)
	}
}

// buildConditionMap builds a condition from a map.
func (b *builder) buildConditionMap(m map[string]interface{}, loc ast.Location) (*ast.ConditionNode, error) {
	// Check for logical combinators (all, any)
	if children, ok := m["all"]; ok {
		childArray, ok := children.([]interface{})
		if !ok {
			return nil, fmt.Errorf("'all' must have an array of children")
		}
		return b.buildLogicalCondition(ast.ConditionTypeAll, childArray, loc)
	}
	if children, ok := m["any"]; ok {
		childArray, ok := children.([]interface{})
		if !ok {
			return nil, fmt.Errorf("'any' must have an array of children")
		}
		return b.buildLogicalCondition(ast.ConditionTypeAny, childArray, loc)
	}

	// Simple condition
	return b.buildSimpleCondition(m, loc)
}

// buildSimpleCondition builds a simple field test.
func (b *builder) buildSimpleCondition(m map[string]interface{}, loc ast.Location) (*ast.ConditionNode, error) {
	field, ok := m["field"].(string)
	if !ok || field == "" {
		return nil, fmt.Errorf("missing or invalid 'field'")
	}

	operatorStr, ok := m["operator"].(string)
	if !ok || operatorStr == "" {
		return nil, fmt.Errorf("missing or invalid 'operator'")
	}

	return &ast.ConditionNode{
		Type:     ast.ConditionTypeSimple,
		Field:    field,
		Operator: ast.Operator(operatorStr),
		Value:    m["value"],
		Location: loc,
	}, nil
}

// buildLogicalCondition builds a logical combinator condition (all/any).
func (b *builder) buildLogicalCondition(condType ast.ConditionType, children []interface{}, loc ast.Location) (*ast.ConditionNode, error) {
	childNodes := make([]*ast.ConditionNode, 0, len(children))
	for i, child := range children {
		childNode, err := b.buildCondition(child, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid child condition at index %d: %w", i, err)
		}
		childNodes = append(childNodes, childNode)
	}

	return &ast.ConditionNode{
		Type:     condType,
		Children: childNodes,
		Location: loc,
	}, nil
}

// location extracts the source location from a YAML node.
func (b *builder) location(node *yaml.Node) ast.Location {
	if node == nil {
		return ast.Location{File: b.sourcePath, Line: 1, Column: 1}
	}
	return ast.Location{
		File:   b.sourcePath,
		Line:   node.Line,
		Column: node.Column,
	}
}
