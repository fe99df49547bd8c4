package rdl

import (
	"arbiter-hq/arbiter/pkg/rdl/ast"
	"arbiter-hq/arbiter/pkg/rdl/parser"
	"arbiter-hq/arbiter/pkg/rdl/validator"
)

// ParseAndValidate is a convenience function that parses and validates a
// ruleset file. It returns the parsed AST if successful, or an error if
// parsing or validation fails.
func ParseAndValidate(path string) (*ast.RuleSet, error) {
	p := parser.NewParser()
	ruleset, err := p.Parse(path)
	if err != nil {
		return nil, err
	}

	v := validator.NewValidator()
	if err := v.Validate(ruleset); err != nil {
		return nil, err
	}

	return ruleset, nil
}

// ParseAndValidateBytes is a convenience function that parses and validates
// ruleset YAML from bytes.
func ParseAndValidateBytes(data []byte, sourcePath string) (*ast.RuleSet, error) {
	p := parser.NewParser()
	ruleset, err := p.ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}

	v := validator.NewValidator()
	if err := v.Validate(ruleset); err != nil {
		return nil, err
	}

	return ruleset, nil
}

// Parse parses a ruleset file without validation.
// Use this if you want to inspect the AST before validation.
func Parse(path string) (*ast.RuleSet, error) {
	p := parser.NewParser()
	return p.Parse(path)
}

// Validate validates a parsed ruleset.
func Validate(ruleset *ast.RuleSet) error {
	v := validator.NewValidator()
	return v.Validate(ruleset)
}
