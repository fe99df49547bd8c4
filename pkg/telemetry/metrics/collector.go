package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus instruments for the decision pipeline.
// It satisfies the agent's Observer interface.
type Collector struct {
	registry *prometheus.Registry

	decisionsTotal     *prometheus.CounterVec
	decisionConfidence prometheus.Histogram
	decisionDuration   prometheus.Histogram
	evaluationsPer     prometheus.Histogram
	replaysTotal       *prometheus.CounterVec
	rulesetReloads     prometheus.Counter
	rulesetsActive     prometheus.Gauge
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		decisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbiter_decisions_total",
			Help: "Total decisions made, by decision value.",
		}, []string{"decision"}),
		decisionConfidence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbiter_decision_confidence",
			Help:    "Confidence of decisions.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		decisionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbiter_decision_duration_seconds",
			Help:    "Wall time of decide calls.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		evaluationsPer: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbiter_evaluations_per_decision",
			Help:    "Number of non-abstaining evaluations per decision.",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		replaysTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbiter_replays_total",
			Help: "Replay verifications, by outcome.",
		}, []string{"outcome"}),
		rulesetReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbiter_ruleset_reloads_total",
			Help: "Successful ruleset reloads.",
		}),
		rulesetsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbiter_rulesets_active",
			Help: "Rulesets currently loaded.",
		}),
	}

	c.registry.MustRegister(
		c.decisionsTotal,
		c.decisionConfidence,
		c.decisionDuration,
		c.evaluationsPer,
		c.replaysTotal,
		c.rulesetReloads,
		c.rulesetsActive,
	)
	return c
}

// Registry returns the underlying Prometheus registry for serving.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveDecision records one decide call outcome.
func (c *Collector) ObserveDecision(decisionValue string, confidence float64, evaluations int, duration time.Duration) {
	c.decisionsTotal.WithLabelValues(decisionValue).Inc()
	c.decisionConfidence.Observe(confidence)
	c.decisionDuration.Observe(duration.Seconds())
	c.evaluationsPer.Observe(float64(evaluations))
}

// ObserveReplay records a replay verification outcome.
func (c *Collector) ObserveReplay(matched bool) {
	outcome := "match"
	if !matched {
		outcome = "mismatch"
	}
	c.replaysTotal.WithLabelValues(outcome).Inc()
}

// ObserveReload records a successful ruleset reload.
func (c *Collector) ObserveReload(generation uint64, rulesets int) {
	c.rulesetReloads.Inc()
	c.rulesetsActive.Set(float64(rulesets))
}
