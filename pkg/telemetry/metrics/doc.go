// Package metrics exposes Prometheus metrics for the decision pipeline:
// decision counts and confidence, evaluation fan-out, replay verification
// outcomes, and ruleset reloads.
package metrics
