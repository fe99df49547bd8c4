// Arbiter is a deterministic, auditable rule-evaluation engine.
//
// It evaluates decision contexts against YAML rulesets written in RDL,
// combines evaluator proposals with a configurable scoring strategy, and
// records a cryptographically reproducible audit payload for every decision.
//
// Usage:
//
//	# Validate ruleset files
//	arbiter validate rulesets/
//
//	# Decide against a context document
//	arbiter decide --context request.json
//
//	# Re-verify a stored decision from its audit payload
//	arbiter replay --payload decision.json --strict
//
//	# Run the watching service with metrics and retention
//	arbiter run --config config.yaml
package main

func main() {
	Execute()
}
