package ast

// ConditionType represents the type of a condition expression in RDL.
type ConditionType string

const (
	ConditionTypeSimple ConditionType = "simple" // field op value
	ConditionTypeAll    ConditionType = "all"    // AND of children
	ConditionTypeAny    ConditionType = "any"    // OR of children
)

// ConditionNode represents a condition expression in the AST.
// Conditions are either simple field tests (field operator value) or logical
// combinators (all/any) over child conditions.
type ConditionNode struct {
	Type     ConditionType    // Type of condition
	Field    string           // Dot-separated field path (for simple conditions)
	Operator Operator         // Condition operator (for simple conditions)
	Value    interface{}      // Operand (for simple conditions); shape depends on the operator
	Children []*ConditionNode // Child conditions (for all/any)
	Location Location         // Source location
}

// IsSimple returns true if this is a simple field test.
func (c *ConditionNode) IsSimple() bool {
	return c.Type == ConditionTypeSimple
}

// IsLogical returns true if this is a logical combinator (all/any).
func (c *ConditionNode) IsLogical() bool {
	return c.Type == ConditionTypeAll || c.Type == ConditionTypeAny
}

// Walk visits the node and all descendants in depth-first order.
// Traversal stops if fn returns false.
func (c *ConditionNode) Walk(fn func(*ConditionNode) bool) bool {
	if c == nil {
		return true
	}
	if !fn(c) {
		return false
	}
	for _, child := range c.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
