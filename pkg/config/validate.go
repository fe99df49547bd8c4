package config

import "fmt"

var validStrategies = map[string]bool{
	"weighted_average": true,
	"max_weight":       true,
	"consensus":        true,
	"threshold":        true,
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if !validStrategies[c.Scoring.Strategy] {
		return fmt.Errorf("unknown scoring strategy %q", c.Scoring.Strategy)
	}
	if c.Scoring.MinimumAgreement < 0 || c.Scoring.MinimumAgreement > 1 {
		return fmt.Errorf("scoring.minimum_agreement must be in [0, 1], got %v", c.Scoring.MinimumAgreement)
	}
	if c.Scoring.Threshold < 0 || c.Scoring.Threshold > 1 {
		return fmt.Errorf("scoring.threshold must be in [0, 1], got %v", c.Scoring.Threshold)
	}
	switch c.Storage.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Retention.Days < 0 {
		return fmt.Errorf("retention.days cannot be negative, got %d", c.Retention.Days)
	}
	if c.Retention.MaxRecords < 0 {
		return fmt.Errorf("retention.max_records cannot be negative, got %d", c.Retention.MaxRecords)
	}
	return nil
}
