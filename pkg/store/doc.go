// Package store persists decision records with their audit payloads.
//
// A record stores the payload verbatim as JSON. The replay guarantee depends
// on that: the audit subsystem must be able to rebuild the exact decision
// from what the store returns, so storage adapters never normalize,
// re-order, or enrich the payload.
//
// Two backends are provided. MemoryStorage serves tests and ephemeral
// deployments; SQLiteStorage provides durable single-node storage with WAL
// journaling. Retention lives in the nested retention package.
package store
