package ruleset

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_InitialLoad(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "fraud.yaml", rulesetDocument("fraud_rules", "deny"))

	m, err := NewManager(dir, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Generation(); got != 1 {
		t.Errorf("generation = %d, want 1", got)
	}
	if len(m.Evaluators()) != 1 {
		t.Errorf("got %d evaluators, want 1", len(m.Evaluators()))
	}
	if m.RuleSet("fraud_rules") == nil {
		t.Error("loaded ruleset not resolvable by name")
	}
	if m.RuleSet("missing") != nil {
		t.Error("unknown name should resolve to nil")
	}
}

func TestManager_InitialLoadFails(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "broken.yaml", "rules: [")

	if _, err := NewManager(dir, discardLogger()); err == nil {
		t.Error("construction should fail when the directory does not load")
	}
}

func TestManager_ReloadSwapsAtomically(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "fraud.yaml", rulesetDocument("fraud_rules", "deny"))

	m, err := NewManager(dir, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	writeRuleset(t, dir, "velocity.yaml", rulesetDocument("velocity_rules", "manual_review"))
	if err := m.Reload(); err != nil {
		t.Fatal(err)
	}

	if got := m.Generation(); got != 2 {
		t.Errorf("generation = %d, want 2", got)
	}
	if len(m.RuleSets()) != 2 {
		t.Errorf("got %d rulesets, want 2", len(m.RuleSets()))
	}
}

func TestManager_FailedReloadKeepsPreviousSet(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "fraud.yaml", rulesetDocument("fraud_rules", "deny"))

	m, err := NewManager(dir, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	// Break the live file; the active set must survive the failed reload.
	writeRuleset(t, dir, "fraud.yaml", "rules: [")
	if err := m.Reload(); err == nil {
		t.Fatal("reload of a broken document should fail")
	}

	if got := m.Generation(); got != 1 {
		t.Errorf("failed reload bumped generation to %d", got)
	}
	if m.RuleSet("fraud_rules") == nil {
		t.Error("failed reload evicted the working ruleset")
	}
}

func TestManager_ReloadHook(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "fraud.yaml", rulesetDocument("fraud_rules", "deny"))

	var gotGeneration uint64
	var gotCount int
	m, err := NewManager(dir, discardLogger(),
		WithReloadHook(func(generation uint64, rulesets int) {
			gotGeneration = generation
			gotCount = rulesets
		}))
	if err != nil {
		t.Fatal(err)
	}

	if gotGeneration != 1 || gotCount != 1 {
		t.Errorf("hook saw generation=%d rulesets=%d after initial load", gotGeneration, gotCount)
	}

	if err := m.Reload(); err != nil {
		t.Fatal(err)
	}
	if gotGeneration != 2 {
		t.Errorf("hook saw generation=%d after reload", gotGeneration)
	}
}

func TestManager_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "fraud.yaml", rulesetDocument("fraud_rules", "deny"))

	history, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer history.Close()

	m, err := NewManager(dir, discardLogger(), WithHistory(history))
	if err != nil {
		t.Fatal(err)
	}

	// Unchanged content records nothing new.
	if err := m.Reload(); err != nil {
		t.Fatal(err)
	}
	revisions, err := history.Revisions("fraud_rules")
	if err != nil {
		t.Fatal(err)
	}
	if len(revisions) != 1 {
		t.Fatalf("got %d revisions, want 1", len(revisions))
	}

	// Changed content records a second revision.
	writeRuleset(t, dir, "fraud.yaml", rulesetDocument("fraud_rules", "manual_review"))
	if err := m.Reload(); err != nil {
		t.Fatal(err)
	}
	revisions, err = history.Revisions("fraud_rules")
	if err != nil {
		t.Fatal(err)
	}
	if len(revisions) != 2 {
		t.Errorf("got %d revisions, want 2", len(revisions))
	}
}

func TestShouldProcessEvent(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"rules/fraud.yaml", fsnotify.Write, true},
		{"rules/fraud.yml", fsnotify.Create, true},
		{"rules/FRAUD.YAML", fsnotify.Write, true},
		{"rules/fraud.yaml", fsnotify.Chmod, false},
		{"rules/notes.txt", fsnotify.Write, false},
		{"rules/.fraud.yaml.swp", fsnotify.Write, false},
		{"rules/fraud.yaml~", fsnotify.Write, false},
	}
	for _, tt := range tests {
		event := fsnotify.Event{Name: tt.name, Op: tt.op}
		if got := shouldProcessEvent(event); got != tt.want {
			t.Errorf("shouldProcessEvent(%q, %v) = %v, want %v", tt.name, tt.op, got, tt.want)
		}
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("rules"))
	b := ContentHash([]byte("rules"))
	c := ContentHash([]byte("other"))

	if a != b {
		t.Error("identical content hashed differently")
	}
	if a == c {
		t.Error("different content hashed identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
