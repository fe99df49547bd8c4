package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"arbiter-hq/arbiter/pkg/audit"
	"arbiter-hq/arbiter/pkg/decision"
	"arbiter-hq/arbiter/pkg/decision/scoring"
)

// Observer receives the outcome of each decide call. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObserveDecision(decisionValue string, confidence float64, evaluations int, duration time.Duration)
}

// Agent runs evaluators and reduces their evaluations to one Decision.
//
// An Agent is immutable after construction and safe for concurrent use. The
// evaluator order is fixed at construction; scoring strategies rely on it
// for deterministic tie-breaking.
type Agent struct {
	evaluators []decision.Evaluator
	strategy   scoring.Strategy
	logger     *slog.Logger
	observer   Observer
	version    string
	clock      func() time.Time
	newID      func() string
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(observer Observer) Option {
	return func(a *Agent) { a.observer = observer }
}

// WithVersion sets the agent version recorded in audit payloads.
func WithVersion(version string) Option {
	return func(a *Agent) { a.version = version }
}

// WithClock overrides the wall clock. Only the payload timestamp depends on
// it; the deterministic hash never does.
func WithClock(clock func() time.Time) Option {
	return func(a *Agent) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// New creates an Agent from evaluators and a scoring strategy. A nil
// strategy defaults to weighted average.
func New(evaluators []decision.Evaluator, strategy scoring.Strategy, opts ...Option) *Agent {
	if strategy == nil {
		strategy = scoring.NewWeightedAverage()
	}

	evals := make([]decision.Evaluator, len(evaluators))
	copy(evals, evaluators)

	a := &Agent{
		evaluators: evals,
		strategy:   strategy,
		logger:     slog.Default(),
		version:    "dev",
		clock:      func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "agent")
	return a
}

// Strategy returns the configured scoring strategy.
func (a *Agent) Strategy() scoring.Strategy {
	return a.strategy
}

// Evaluators returns the configured evaluators in invocation order.
func (a *Agent) Evaluators() []decision.Evaluator {
	out := make([]decision.Evaluator, len(a.evaluators))
	copy(out, a.evaluators)
	return out
}

// Decide runs every evaluator against dctx, scores the collected
// evaluations, and returns the resulting Decision with its audit payload
// attached.
//
// Feedback is advisory input passed through to evaluators and recorded in
// the payload; it never participates in the deterministic hash. If all
// evaluators abstain, Decide returns *NoEvaluationsError.
func (a *Agent) Decide(ctx context.Context, dctx *decision.Context, feedback map[string]interface{}) (*decision.Decision, error) {
	start := a.clock()

	evaluations := make([]*decision.Evaluation, 0, len(a.evaluators))
	for _, evaluator := range a.evaluators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev, err := evaluator.Evaluate(ctx, dctx, feedback)
		if err != nil {
			return nil, fmt.Errorf("evaluator %q: %w", evaluator.Name(), err)
		}
		if ev == nil {
			a.logger.Debug("evaluator abstained", "evaluator", evaluator.Name())
			continue
		}
		evaluations = append(evaluations, ev)
	}

	if len(evaluations) == 0 {
		return nil, &decision.NoEvaluationsError{EvaluatorCount: len(a.evaluators)}
	}

	decisionValue, confidence, err := a.strategy.Score(evaluations)
	if err != nil {
		return nil, fmt.Errorf("scoring strategy %q: %w", a.strategy.Name(), err)
	}

	because, failedConditions := decision.Explain(evaluations, decisionValue)

	payload, err := audit.BuildPayload(audit.PayloadInput{
		DecisionID:   a.newID(),
		Context:      dctx,
		Feedback:     feedback,
		Evaluations:  evaluations,
		Decision:     decisionValue,
		Confidence:   confidence,
		StrategyName: a.strategy.Name(),
		AgentVersion: a.version,
		Timestamp:    start,
	})
	if err != nil {
		return nil, fmt.Errorf("building audit payload: %w", err)
	}

	result, err := decision.NewDecision(decisionValue, confidence, evaluations, because, failedConditions, payload)
	if err != nil {
		return nil, err
	}

	duration := a.clock().Sub(start)
	a.logger.Info("decision made",
		"decision", decisionValue,
		"confidence", confidence,
		"evaluations", len(evaluations),
		"strategy", a.strategy.Name(),
		"hash", result.DeterministicHash(),
		"duration", duration)
	if a.observer != nil {
		a.observer.ObserveDecision(decisionValue, confidence, len(evaluations), duration)
	}

	return result, nil
}
