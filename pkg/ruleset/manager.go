package ruleset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/evaluator"
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// Manager serves the active rulesets from a directory and reloads them on
// demand or on file change. All reads see a consistent snapshot; a reload
// either replaces the whole set or leaves it untouched.
type Manager struct {
	dir     string
	logger  *slog.Logger
	history *History

	mu         sync.RWMutex
	rulesets   []*ast.RuleSet
	evaluators []decision.Evaluator
	generation uint64

	onReload func(generation uint64, rulesets int)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithHistory attaches a revision ledger; every successful load records each
// document in it.
func WithHistory(history *History) ManagerOption {
	return func(m *Manager) { m.history = history }
}

// WithReloadHook sets a callback invoked after each successful load, with
// the new generation counter and ruleset count. Used for metrics.
func WithReloadHook(hook func(generation uint64, rulesets int)) ManagerOption {
	return func(m *Manager) { m.onReload = hook }
}

// NewManager creates a manager for the given directory and performs the
// initial load.
func NewManager(dir string, logger *slog.Logger, opts ...ManagerOption) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		dir:    dir,
		logger: logger.With("component", "ruleset_manager"),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload re-reads the directory, validates every document, and atomically
// swaps the active set. On any error the previous set stays active.
func (m *Manager) Reload() error {
	loaded, err := LoadDir(m.dir)
	if err != nil {
		return err
	}

	rulesets := make([]*ast.RuleSet, 0, len(loaded))
	evaluators := make([]decision.Evaluator, 0, len(loaded))
	for _, lrs := range loaded {
		if m.history != nil {
			hash, err := m.history.Record(lrs)
			if err != nil {
				return err
			}
			m.logger.Debug("ruleset revision recorded",
				"ruleset", lrs.RuleSet.Name, "hash", hash)
		}
		rulesets = append(rulesets, lrs.RuleSet)
		evaluators = append(evaluators, evaluator.NewRuleEvaluator(lrs.RuleSet, m.logger))
	}

	m.mu.Lock()
	m.rulesets = rulesets
	m.evaluators = evaluators
	m.generation++
	generation := m.generation
	m.mu.Unlock()

	m.logger.Info("rulesets loaded",
		"dir", m.dir, "rulesets", len(rulesets), "generation", generation)
	if m.onReload != nil {
		m.onReload(generation, len(rulesets))
	}
	return nil
}

// Evaluators returns the active evaluators in sorted filename order.
func (m *Manager) Evaluators() []decision.Evaluator {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]decision.Evaluator, len(m.evaluators))
	copy(out, m.evaluators)
	return out
}

// RuleSets returns the active rulesets.
func (m *Manager) RuleSets() []*ast.RuleSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*ast.RuleSet, len(m.rulesets))
	copy(out, m.rulesets)
	return out
}

// RuleSet returns the active ruleset with the given name, or nil.
func (m *Manager) RuleSet(name string) *ast.RuleSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rs := range m.rulesets {
		if rs.Name == name {
			return rs
		}
	}
	return nil
}

// Generation returns the load counter; it increments on every successful
// reload.
func (m *Manager) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

// Watch blocks, reloading the managed directory whenever a YAML file under
// it changes, until ctx is cancelled. Failed reloads are logged and the
// previous set stays active.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := NewWatcher(m.dir, m.logger)
	if err != nil {
		return fmt.Errorf("starting ruleset watcher: %w", err)
	}
	defer watcher.Close()

	return watcher.Run(ctx, func() error {
		return m.Reload()
	})
}
