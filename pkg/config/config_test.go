package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
	if cfg.Rulesets.Dir != "rulesets" || cfg.Scoring.Strategy != "weighted_average" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Storage.Backend != "memory" || cfg.Retention.Days != 90 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
rulesets:
  dir: /etc/arbiter/rules
  watch: true
scoring:
  strategy: threshold
  threshold: 0.8
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Rulesets.Dir != "/etc/arbiter/rules" || !cfg.Rulesets.Watch {
		t.Errorf("explicit values lost: %+v", cfg.Rulesets)
	}
	if cfg.Scoring.Strategy != "threshold" || cfg.Scoring.Threshold != 0.8 {
		t.Errorf("explicit scoring lost: %+v", cfg.Scoring)
	}
	if cfg.Scoring.FallbackDecision != "manual_review" {
		t.Errorf("fallback default not applied: %q", cfg.Scoring.FallbackDecision)
	}
	if cfg.Storage.Backend != "memory" || cfg.Telemetry.LogLevel != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantText string
	}{
		{
			name:     "unknown strategy",
			document: "scoring:\n  strategy: coin_flip\n",
			wantText: "scoring strategy",
		},
		{
			name:     "agreement out of range",
			document: "scoring:\n  minimum_agreement: 1.5\n",
			wantText: "minimum_agreement",
		},
		{
			name:     "threshold out of range",
			document: "scoring:\n  threshold: -0.1\n",
			wantText: "threshold",
		},
		{
			name:     "unknown backend",
			document: "storage:\n  backend: postgres\n",
			wantText: "storage backend",
		},
		{
			name:     "negative retention",
			document: "retention:\n  days: -1\n",
			wantText: "retention.days",
		},
		{
			name:     "negative record cap",
			document: "retention:\n  max_records: -5\n",
			wantText: "max_records",
		},
		{
			name:     "malformed yaml",
			document: "rulesets: [",
			wantText: "parsing config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.document))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err, tt.wantText)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbiter.yaml")
	document := `
storage:
  backend: sqlite
  path: /var/lib/arbiter/decisions.db
retention:
  days: 30
  max_records: 100000
telemetry:
  log_format: text
  metrics_listen: ":9464"
`
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Retention.Days != 30 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Telemetry.MetricsListen != ":9464" || cfg.Telemetry.LogFormat != "text" {
		t.Errorf("telemetry = %+v", cfg.Telemetry)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
