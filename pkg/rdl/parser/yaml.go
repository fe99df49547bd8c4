package parser

import (
	"os"

	"gopkg.in/yaml.v3"
)

// yamlRuleSet represents the intermediate structure for parsing YAML rulesets.
// It matches the YAML structure before transformation to AST.
type yamlRuleSet struct {
	RDLVersion  string     `yaml:"rdl_version"`
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Description string     `yaml:"description"`
	Author      string     `yaml:"author"`
	Created     string     `yaml:"created"`
	Updated     string     `yaml:"updated"`
	Tags        []string   `yaml:"tags"`
	Rules       []yamlRule `yaml:"rules"`

	// Internal tracking
	node *yaml.Node // Original YAML node for line numbers
}

// yamlRule represents an intermediate rule structure.
type yamlRule struct {
	ID          string      `yaml:"id"`
	Description string      `yaml:"description"`
	Enabled     *bool       `yaml:"enabled"` // Pointer to distinguish unset vs false
	If          interface{} `yaml:"if"`
	Then        yamlOutcome `yaml:"then"`
	Priority    int         `yaml:"priority"`
}

// yamlOutcome represents the then-branch of a rule.
type yamlOutcome struct {
	Decision string   `yaml:"decision"`
	Weight   *float64 `yaml:"weight"` // Pointer to distinguish unset vs 0.0
	Reason   string   `yaml:"reason"`
}

// parseYAMLFile reads and parses a YAML file into the intermediate structure.
func parseYAMLFile(path string) (*yamlRuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parseYAMLBytes(data, path)
}

// parseYAMLBytes parses YAML bytes into the intermediate structure.
// It keeps the decoded yaml.Node around so the builder can attach line
// numbers to AST nodes.
func parseYAMLBytes(data []byte, sourcePath string) (*yamlRuleSet, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	var ruleset yamlRuleSet
	if err := node.Decode(&ruleset); err != nil {
		return nil, err
	}

	ruleset.node = &node
	return &ruleset, nil
}

// ruleNode returns the YAML node for the rule at the given index, or nil.
func (y *yamlRuleSet) ruleNode(index int) *yaml.Node {
	if y.node == nil || len(y.node.Content) == 0 {
		return nil
	}
	doc := y.node.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "rules" {
			continue
		}
		seq := doc.Content[i+1]
		if seq.Kind != yaml.SequenceNode || index >= len(seq.Content) {
			return nil
		}
		return seq.Content[index]
	}
	return nil
}
