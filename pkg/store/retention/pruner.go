package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"arbiter-hq/arbiter/pkg/store"
)

// Config contains the retention policy.
type Config struct {
	// RetentionDays is how many days of records to keep. 0 keeps forever.
	RetentionDays int

	// MaxRecords caps the total record count. 0 means unlimited.
	MaxRecords int64

	// PruneSchedule is a standard cron expression for automatic pruning,
	// e.g. "0 3 * * *" for daily at 3 AM. Empty disables scheduling.
	PruneSchedule string
}

// DefaultConfig returns the default retention policy.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		MaxRecords:    0,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces the retention policy against a decision store.
type Pruner struct {
	storage store.Storage
	config  *Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewPruner creates a pruner over the given storage.
func NewPruner(storage store.Storage, config *Config, logger *slog.Logger) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		storage: storage,
		config:  config,
		logger:  logger.With("component", "retention"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Prune runs both phases of the policy: age-based deletion first, then
// count-based deletion of the oldest excess records. It returns the total
// number of records removed.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.RetentionDays > 0 {
		cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.storage.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, fmt.Errorf("prune by age: %w", err)
		}
		total += deleted
		if deleted > 0 {
			p.logger.Info("pruned records by age",
				"deleted", deleted, "retention_days", p.config.RetentionDays)
		}
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.storage.DeleteOldest(ctx, p.config.MaxRecords)
		if err != nil {
			return total, fmt.Errorf("prune by count: %w", err)
		}
		total += deleted
		if deleted > 0 {
			p.logger.Info("pruned records by count",
				"deleted", deleted, "max_records", p.config.MaxRecords)
		}
	}

	return total, nil
}
