// Package ast defines the abstract syntax tree for RDL, the Arbiter Rule
// Definition Language.
//
// An RDL document declares a ruleset: an ordered list of rules, each pairing a
// condition tree with a proposed decision, a weight, and a human-readable
// reason. Condition trees are composed of simple field tests (field, operator,
// operand) and the logical combinators all/any.
//
// AST nodes are pure data. They are constructed once by the parser and never
// mutated afterwards, which makes a loaded ruleset safe to share across any
// number of concurrent evaluations without locking.
package ast
