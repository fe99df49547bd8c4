package config

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Rulesets: RulesetsConfig{
			Dir: "rulesets",
		},
		Scoring: ScoringConfig{
			Strategy:         "weighted_average",
			MinimumAgreement: 0.5,
			Threshold:        0.5,
			FallbackDecision: "manual_review",
		},
		Storage: StorageConfig{
			Backend: "memory",
			Path:    "data/decisions.db",
		},
		Retention: RetentionConfig{
			Days:     90,
			Schedule: "0 3 * * *",
		},
		Telemetry: TelemetryConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// applyDefaults fills zero-valued fields from the defaults.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Rulesets.Dir == "" {
		c.Rulesets.Dir = d.Rulesets.Dir
	}
	if c.Scoring.Strategy == "" {
		c.Scoring.Strategy = d.Scoring.Strategy
	}
	if c.Scoring.MinimumAgreement == 0 {
		c.Scoring.MinimumAgreement = d.Scoring.MinimumAgreement
	}
	if c.Scoring.Threshold == 0 {
		c.Scoring.Threshold = d.Scoring.Threshold
	}
	if c.Scoring.FallbackDecision == "" {
		c.Scoring.FallbackDecision = d.Scoring.FallbackDecision
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}
	if c.Telemetry.LogLevel == "" {
		c.Telemetry.LogLevel = d.Telemetry.LogLevel
	}
	if c.Telemetry.LogFormat == "" {
		c.Telemetry.LogFormat = d.Telemetry.LogFormat
	}
}
