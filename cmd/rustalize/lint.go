package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/cli"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
	"mercator-hq/rustalize/pkg/decl/parser"
	"mercator-hq/rustalize/pkg/decl/validator"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate declaration files",
	Long: `Validate declaration files for syntax and structural errors.

The lint command parses every declaration and then checks it:
  - Parse errors (missing body, malformed fields, unsupported headers)
  - Identifier names and duplicate members
  - Method receivers and duplicate parameters

Structural findings are warnings unless --strict is given.

Examples:
  # Lint single file
  rustalize lint --file shapes.rs

  # Lint directory (recursively)
  rustalize lint --dir src/

  # Strict mode (warnings as errors)
  rustalize lint --file shapes.rs --strict

  # JSON output for CI/CD
  rustalize lint --dir src/ --format json`,
	RunE: lintDeclarations,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "declaration file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of declaration files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// ValidationResult represents the validation result for a single file.
type ValidationResult struct {
	File         string            `json:"file"`
	Valid        bool              `json:"valid"`
	Declarations int               `json:"declarations"`
	Errors       []ValidationError `json:"errors,omitempty"`
	Warnings     []ValidationError `json:"warnings,omitempty"`
}

// ValidationError represents a single validation error or warning.
type ValidationError struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Type       string `json:"type,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func lintDeclarations(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return cli.NewCommandError("lint", fmt.Errorf("either --file or --dir must be specified"))
	}
	format, err := cli.ParseOutputFormat(lintFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		found, err := findSources(lintFlags.dir, e.cfg.Watch.Extensions)
		if err != nil {
			return cli.NewCommandError("lint", fmt.Errorf("failed to list declaration files: %w", err))
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return cli.NewCommandError("lint", fmt.Errorf("no declaration files found"))
	}

	// Validation runs separately so its findings can be reported as warnings.
	p := e.newParser().WithStrictMode(false)

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateFile(p, file, lintFlags.strict))
	}

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(e.out, results); err != nil {
			return cli.NewCommandError("lint", err)
		}
		return lintOutcome(results)
	}
	writeLintText(e.out, results, lintFlags.strict)
	return lintOutcome(results)
}

// validateFile parses file and validates every declaration in it.
func validateFile(p *parser.Parser, path string, strict bool) ValidationResult {
	result := ValidationResult{
		File:  path,
		Valid: true,
	}

	nodes, err := p.ParseFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, toValidationErrors(err, path, "error")...)
		return result
	}
	result.Declarations = len(nodes)

	severity := "warning"
	if strict {
		severity = "error"
	}

	v := validator.NewValidator()
	for _, node := range nodes {
		if err := v.Validate(node); err != nil {
			findings := toValidationErrors(err, path, severity)
			if strict {
				result.Valid = false
				result.Errors = append(result.Errors, findings...)
			} else {
				result.Warnings = append(result.Warnings, findings...)
			}
		}
	}

	return result
}

func toValidationErrors(err error, path, severity string) []ValidationError {
	list := declErrors.NewErrorList()
	var errList *declErrors.ErrorList
	if errors.As(err, &errList) {
		for _, e := range errList.Errors {
			list.Add(e)
		}
	} else {
		list.Append(err, path)
	}

	out := make([]ValidationError, 0, list.Count())
	for _, e := range list.Errors {
		out = append(out, ValidationError{
			Line:       e.Location.Line,
			Column:     e.Location.Column,
			Message:    e.Message,
			Severity:   severity,
			Type:       string(e.Type),
			Suggestion: e.Suggestion,
		})
	}
	return out
}

func writeLintText(w io.Writer, results []ValidationResult, strict bool) {
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		fmt.Fprintf(w, "Validating %s...\n", result.File)

		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			fmt.Fprintf(w, "✓ %d declaration(s) valid\n", result.Declarations)
		}

		for _, err := range result.Errors {
			fmt.Fprintf(w, "✗ Error: %s%s\n", err.Message, findingSuffix(err))
			totalErrors++
		}

		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "⚠  Warning: %s%s\n", warn.Message, findingSuffix(warn))
			totalWarnings++
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d error(s), %d warning(s)\n", totalErrors, totalWarnings)
	if strict {
		fmt.Fprintln(w, "  Strict mode enabled: treating warnings as errors")
	}
}

func findingSuffix(f ValidationError) string {
	var sb strings.Builder
	if f.Line > 0 {
		fmt.Fprintf(&sb, " (line %d", f.Line)
		if f.Column > 0 {
			fmt.Fprintf(&sb, ", col %d", f.Column)
		}
		sb.WriteString(")")
	}
	if f.Type != "" {
		fmt.Fprintf(&sb, " [%s]", f.Type)
	}
	if f.Suggestion != "" {
		fmt.Fprintf(&sb, "\n    suggestion: %s", f.Suggestion)
	}
	return sb.String()
}

func lintOutcome(results []ValidationResult) error {
	for _, result := range results {
		if !result.Valid {
			return cli.NewFindingsError("lint", fmt.Errorf("validation failed"))
		}
	}
	return nil
}

// findSources returns the files under dir with one of exts, sorted.
// Hidden directories are skipped.
func findSources(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".rs"}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range exts {
			if filepath.Ext(path) == ext {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
