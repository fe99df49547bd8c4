package ruleset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"arbiter-hq/arbiter/pkg/rdl"
	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// LoadedRuleSet pairs a parsed ruleset with the raw bytes it came from. The
// raw bytes feed the history ledger's content hash.
type LoadedRuleSet struct {
	RuleSet *ast.RuleSet
	Path    string
	Raw     []byte
}

// LoadFile parses and validates a single RDL document.
func LoadFile(path string) (*LoadedRuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset %s: %w", path, err)
	}

	rs, err := rdl.ParseAndValidateBytes(raw, path)
	if err != nil {
		return nil, err
	}

	return &LoadedRuleSet{RuleSet: rs, Path: path, Raw: raw}, nil
}

// LoadDir loads every *.yaml and *.yml file directly under dir, in sorted
// filename order so evaluator order is stable across reloads. Any invalid
// document fails the whole load.
func LoadDir(dir string) ([]*LoadedRuleSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := make([]*LoadedRuleSet, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		lrs, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[lrs.RuleSet.Name]; dup {
			return nil, fmt.Errorf("ruleset name %q defined in both %s and %s", lrs.RuleSet.Name, prev, name)
		}
		seen[lrs.RuleSet.Name] = name
		loaded = append(loaded, lrs)
	}

	return loaded, nil
}
