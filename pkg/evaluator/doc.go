// Package evaluator provides the concrete Evaluator implementations the
// agent runs: rule evaluators backed by parsed RDL rulesets, static
// evaluators for fixed baselines, and a function adapter for custom logic.
package evaluator
