// Package audit produces and verifies the cryptographically reproducible
// trail behind every Decision.
//
// The codec canonicalizes the decision-relevant subset of a payload
// (context, evaluations, decision, confidence, scoring strategy) into RFC
// 8785 (JCS) canonical JSON and hashes it with SHA-256, rendered as 64
// lowercase hex characters. Identical logical input yields an identical
// hash regardless of map insertion order, process, or platform. The
// timestamp and feedback are recorded in the payload but excluded from the
// hash: they are not decision-relevant.
//
// The replay engine reconstructs a Decision purely from a persisted audit
// payload: it rebuilds the evaluations verbatim, re-runs the named scoring
// strategy, and verifies the outcome against what the payload claims. In
// strict mode any divergence raises ReplayMismatchError; in non-strict mode
// divergence is logged and the replayed Decision is returned anyway.
package audit
