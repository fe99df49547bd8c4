// Package validator performs semantic validation of parsed RDL rulesets.
//
// The parser guarantees structure; the validator guarantees meaning: rule IDs
// are unique and non-empty, decisions are present, weights are inside [0, 1],
// operators are part of the RDL operator set, and logical combinators have
// children. Validation accumulates every problem into an error list rather
// than stopping at the first.
package validator
