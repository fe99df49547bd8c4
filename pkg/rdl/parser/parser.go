package parser

import (
	"fmt"
	"os"

	"arbiter-hq/arbiter/pkg/rdl/ast"
	rdlErrors "arbiter-hq/arbiter/pkg/rdl/errors"
)

// Parser parses RDL ruleset files into Abstract Syntax Trees.
// It handles YAML parsing, AST construction, and basic structural validation.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
	maxDepth    int   // Maximum condition nesting depth (default: 10)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
		maxDepth:    10,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum condition nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// Parse parses a ruleset file at the given path and returns the AST.
// It returns an error if the file cannot be read, has invalid YAML syntax,
// or contains structural errors.
func (p *Parser) Parse(path string) (*ast.RuleSet, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &rdlErrors.Error{
			Type:     rdlErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}

	if fileInfo.Size() > p.maxFileSize {
		return nil, &rdlErrors.Error{
			Type:     rdlErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: ast.Location{File: path},
		}
	}

	yrs, err := parseYAMLFile(path)
	if err != nil {
		return nil, &rdlErrors.Error{
			Type:     rdlErrors.ErrorTypeSyntax,
			Message:  fmt.Sprintf("YAML parse error: %v", err),
			Location: ast.Location{File: path},
		}
	}

	return p.build(yrs, path)
}

// ParseBytes parses ruleset YAML from bytes. The sourcePath is used for
// error reporting only.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.RuleSet, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, &rdlErrors.Error{
			Type:     rdlErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Document size %d exceeds maximum %d bytes", len(data), p.maxFileSize),
			Location: ast.Location{File: sourcePath},
		}
	}

	yrs, err := parseYAMLBytes(data, sourcePath)
	if err != nil {
		return nil, &rdlErrors.Error{
			Type:     rdlErrors.ErrorTypeSyntax,
			Message:  fmt.Sprintf("YAML parse error: %v", err),
			Location: ast.Location{File: sourcePath},
		}
	}

	return p.build(yrs, sourcePath)
}

// build runs the AST builder and enforces parser limits.
func (p *Parser) build(yrs *yamlRuleSet, sourcePath string) (*ast.RuleSet, error) {
	b := newBuilder(sourcePath)
	ruleset, err := b.buildRuleSet(yrs)
	if err != nil {
		return nil, err
	}

	for _, rule := range ruleset.Rules {
		if depth := conditionDepth(rule.Condition); depth > p.maxDepth {
			return nil, &rdlErrors.Error{
				Type:     rdlErrors.ErrorTypeStructural,
				Message:  fmt.Sprintf("Rule %q condition nesting depth %d exceeds maximum %d", rule.ID, depth, p.maxDepth),
				Location: rule.Location,
			}
		}
	}

	return ruleset, nil
}

// conditionDepth returns the nesting depth of a condition tree.
func conditionDepth(node *ast.ConditionNode) int {
	if node == nil {
		return 0
	}
	max := 0
	for _, child := range node.Children {
		if d := conditionDepth(child); d > max {
			max = d
		}
	}
	return max + 1
}
