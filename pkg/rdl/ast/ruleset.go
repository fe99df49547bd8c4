package ast

import "time"

// RuleSet is the root AST node for a parsed RDL document.
type RuleSet struct {
	RDLVersion  string    // RDL language version declared by the document
	Name        string    // Ruleset name (used as the evaluator name)
	Version     string    // Document version
	Description string    // Human-readable description
	Author      string    // Document author
	Tags        []string  // Classification tags
	Created     time.Time // Creation timestamp (optional)
	Updated     time.Time // Last-update timestamp (optional)
	Rules       []*Rule   // Ordered rules
	SourceFile  string    // Path the document was parsed from
	Location    Location  // Source location
}

// EnabledRules returns the active rules in evaluation order: ascending
// priority, then document order. The receiver is not modified.
func (rs *RuleSet) EnabledRules() []*Rule {
	ordered := make([]*Rule, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		if r.IsEnabled() {
			ordered = append(ordered, r)
		}
	}
	// Stable insertion sort keeps document order for equal priorities.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Priority < ordered[j-1].Priority; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

// Rule returns the rule with the given ID, or nil if not found.
func (rs *RuleSet) Rule(id string) *Rule {
	for _, r := range rs.Rules {
		if r.ID == id {
			return r
		}
	}
	return nil
}
