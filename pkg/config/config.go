package config

// Config is the root configuration structure.
type Config struct {
	// Rulesets configures where RDL documents are loaded from.
	Rulesets RulesetsConfig `yaml:"rulesets"`

	// Scoring selects and parameterizes the scoring strategy.
	Scoring ScoringConfig `yaml:"scoring"`

	// Storage configures the decision record store.
	Storage StorageConfig `yaml:"storage"`

	// Retention configures decision record pruning.
	Retention RetentionConfig `yaml:"retention"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// RulesetsConfig configures the ruleset source.
type RulesetsConfig struct {
	// Dir is the directory containing *.yaml/*.yml RDL documents.
	// Default: "rulesets"
	Dir string `yaml:"dir"`

	// Watch enables hot reload on file changes.
	Watch bool `yaml:"watch"`

	// HistoryPath is the SQLite revision ledger path. Empty disables the
	// ledger.
	HistoryPath string `yaml:"history_path"`
}

// ScoringConfig selects the scoring strategy.
type ScoringConfig struct {
	// Strategy is one of "weighted_average", "max_weight", "consensus",
	// "threshold". Default: "weighted_average".
	Strategy string `yaml:"strategy"`

	// MinimumAgreement is the consensus gate in [0, 1]. Default: 0.5.
	MinimumAgreement float64 `yaml:"minimum_agreement"`

	// Threshold is the weight threshold for the threshold strategy.
	// Default: 0.5.
	Threshold float64 `yaml:"threshold"`

	// FallbackDecision is the threshold strategy's fallback.
	// Default: "manual_review".
	FallbackDecision string `yaml:"fallback_decision"`
}

// StorageConfig configures the decision store.
type StorageConfig struct {
	// Backend is "memory" or "sqlite". Default: "memory".
	Backend string `yaml:"backend"`

	// Path is the SQLite database path. Default: "data/decisions.db".
	Path string `yaml:"path"`
}

// RetentionConfig configures record pruning.
type RetentionConfig struct {
	// Days is how many days of records to keep. 0 keeps forever.
	// Default: 90.
	Days int `yaml:"days"`

	// MaxRecords caps the total record count. 0 means unlimited.
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is a cron expression for automatic pruning.
	// Default: "0 3 * * *". Empty disables scheduling.
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig configures observability.
type TelemetryConfig struct {
	// LogLevel is "debug", "info", "warn", or "error". Default: "info".
	LogLevel string `yaml:"log_level"`

	// LogFormat is "json" or "text". Default: "json".
	LogFormat string `yaml:"log_format"`

	// MetricsListen is the address for the Prometheus endpoint.
	// Empty disables metrics serving.
	MetricsListen string `yaml:"metrics_listen"`
}
