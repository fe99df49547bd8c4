package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"arbiter-hq/arbiter/pkg/rdl"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files or directories]",
	Short: "Parse and validate RDL ruleset files",
	Long: `Validate parses each RDL document, checks its structure, operators, and
weights, and prints every problem with its source location. The exit code is
non-zero if any document fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext == ".yaml" || ext == ".yml" {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}

	if len(paths) == 0 {
		return fmt.Errorf("no ruleset files found")
	}

	failed := 0
	for _, path := range paths {
		rs, err := rdl.ParseAndValidate(path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s\n%v\n", path, err)
			continue
		}
		fmt.Printf("OK   %s (%s, %d rules)\n", path, rs.Name, len(rs.Rules))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(paths))
	}
	return nil
}
