// Package ruleset manages the lifecycle of RDL documents on disk: loading
// and validating them, serving immutable snapshots to the agent, hot
// reloading on file changes, and recording every loaded revision in a
// SQLite-backed history ledger keyed by content hash.
//
// The manager holds the active rulesets behind a read-write mutex. Decide
// calls read a snapshot; reloads build the replacement set fully before
// swapping, so a broken edit on disk never evicts a working ruleset.
package ruleset
