package ast

// Rule represents a single rule in a ruleset.
// A rule pairs a condition tree (when to fire) with the decision it proposes,
// the weight of that proposal, and a human-readable reason. Rules are evaluated
// in priority-then-document order and the first matching enabled rule wins.
type Rule struct {
	ID          string         // Unique rule identifier within the ruleset
	Description string         // Human-readable description
	Enabled     bool           // Whether the rule is active (default: true)
	Condition   *ConditionNode // Root condition node (nil means always match)
	Decision    string         // Decision proposed when the condition matches
	Weight      float64        // Proposal weight in [0, 1]
	Reason      string         // Rationale attached to the evaluation
	Priority    int            // Explicit priority (lower = evaluated earlier)
	Location    Location       // Source location
}

// IsEnabled returns true if the rule is active.
// Rules are enabled by default unless explicitly disabled.
func (r *Rule) IsEnabled() bool {
	return r.Enabled
}

// HasCondition returns true if the rule has a condition tree defined.
func (r *Rule) HasCondition() bool {
	return r.Condition != nil
}
