// Package retention enforces decision-record retention policies: age-based
// and count-based pruning, optionally on a cron schedule.
package retention
