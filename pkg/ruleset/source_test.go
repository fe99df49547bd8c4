package ruleset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func rulesetDocument(name, decision string) string {
	return `
name: ` + name + `
version: "1.0.0"
rules:
  - id: high_amount
    if:
      field: amount
      operator: gt
      value: 1000
    then:
      decision: ` + decision + `
      weight: 0.9
      reason: amount exceeds limit
`
}

func writeRuleset(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleset(t, dir, "fraud.yaml", rulesetDocument("fraud_rules", "deny"))

	lrs, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if lrs.RuleSet.Name != "fraud_rules" {
		t.Errorf("name = %q", lrs.RuleSet.Name)
	}
	if lrs.Path != path {
		t.Errorf("path = %q", lrs.Path)
	}
	if len(lrs.Raw) == 0 {
		t.Error("raw bytes not retained")
	}
}

func TestLoadFile_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleset(t, dir, "bad.yaml", "name: bad\nrules: []\n")

	if _, err := LoadFile(path); err == nil {
		t.Error("empty ruleset should fail validation")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	// Written out of order; loading must sort by filename.
	writeRuleset(t, dir, "20_velocity.yaml", rulesetDocument("velocity_rules", "manual_review"))
	writeRuleset(t, dir, "10_fraud.yaml", rulesetDocument("fraud_rules", "deny"))
	writeRuleset(t, dir, "notes.txt", "not a ruleset")
	writeRuleset(t, dir, ".hidden.yaml", rulesetDocument("hidden", "deny"))
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d rulesets, want 2", len(loaded))
	}
	if loaded[0].RuleSet.Name != "fraud_rules" || loaded[1].RuleSet.Name != "velocity_rules" {
		t.Errorf("load order: %q then %q", loaded[0].RuleSet.Name, loaded[1].RuleSet.Name)
	}
}

func TestLoadDir_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "a.yaml", rulesetDocument("fraud_rules", "deny"))
	writeRuleset(t, dir, "b.yaml", rulesetDocument("fraud_rules", "approve"))

	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("duplicate ruleset names should fail the load")
	}
	if !strings.Contains(err.Error(), "fraud_rules") {
		t.Errorf("error does not name the duplicate: %v", err)
	}
}

func TestLoadDir_InvalidFileFailsWholeLoad(t *testing.T) {
	dir := t.TempDir()
	writeRuleset(t, dir, "good.yaml", rulesetDocument("fraud_rules", "deny"))
	writeRuleset(t, dir, "broken.yaml", "rules: [")

	if _, err := LoadDir(dir); err == nil {
		t.Error("one invalid document should fail the whole load")
	}
}

func TestLoadDir_Missing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("missing directory should fail")
	}
}
