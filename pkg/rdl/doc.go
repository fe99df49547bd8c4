// Package rdl is the entry point for working with RDL, the Arbiter Rule
// Definition Language.
//
// RDL documents are YAML rulesets: ordered if/then rules whose conditions are
// trees of field tests over a decision context. This package ties together
// the parser and validator; the sub-packages hold the AST (ast), the YAML
// parser (parser), semantic validation (validator), and rich error types
// (errors).
package rdl
