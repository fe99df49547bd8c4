package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_ObserveDecision(t *testing.T) {
	c := NewCollector()

	c.ObserveDecision("approve", 0.8, 2, 3*time.Millisecond)
	c.ObserveDecision("approve", 0.9, 1, time.Millisecond)
	c.ObserveDecision("deny", 0.7, 3, time.Millisecond)

	if got := testutil.ToFloat64(c.decisionsTotal.WithLabelValues("approve")); got != 2 {
		t.Errorf("approve counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.decisionsTotal.WithLabelValues("deny")); got != 1 {
		t.Errorf("deny counter = %v, want 1", got)
	}
}

func TestCollector_ObserveReplay(t *testing.T) {
	c := NewCollector()

	c.ObserveReplay(true)
	c.ObserveReplay(true)
	c.ObserveReplay(false)

	if got := testutil.ToFloat64(c.replaysTotal.WithLabelValues("match")); got != 2 {
		t.Errorf("match counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.replaysTotal.WithLabelValues("mismatch")); got != 1 {
		t.Errorf("mismatch counter = %v, want 1", got)
	}
}

func TestCollector_ObserveReload(t *testing.T) {
	c := NewCollector()

	c.ObserveReload(1, 3)
	c.ObserveReload(2, 2)

	if got := testutil.ToFloat64(c.rulesetReloads); got != 2 {
		t.Errorf("reload counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.rulesetsActive); got != 2 {
		t.Errorf("active gauge = %v, want 2", got)
	}
}
