// Package config defines the YAML configuration for the arbiter CLI and
// long-running services: ruleset source, scoring strategy, decision storage,
// retention, and telemetry.
package config
