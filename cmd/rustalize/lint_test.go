package main

import (
	"encoding/json"
	"strings"
	"testing"

	"mercator-hq/rustalize/pkg/cli"
	"mercator-hq/rustalize/pkg/decl/parser"
)

func resetLintFlags() {
	lintFlags.file = ""
	lintFlags.dir = ""
	lintFlags.strict = false
	lintFlags.format = "text"
}

func TestLintDeclarationsValidFile(t *testing.T) {
	cmd, out := newTestCommand(t)
	resetLintFlags()
	lintFlags.file = writeSource(t, "point.rs", "pub struct Point { x: f64, y: f64 }\n")

	if err := lintDeclarations(cmd, nil); err != nil {
		t.Fatalf("lintDeclarations() error = %v", err)
	}
	if !strings.Contains(out.String(), "✓ 1 declaration(s) valid") {
		t.Errorf("output = %q, want valid summary", out.String())
	}
}

func TestLintDeclarationsParseError(t *testing.T) {
	cmd, out := newTestCommand(t)
	resetLintFlags()
	lintFlags.file = writeSource(t, "point.rs", "pub struct Point { x f64 }\n")

	err := lintDeclarations(cmd, nil)
	if code := cli.ExitCode(err); code != cli.ExitFindings {
		t.Errorf("ExitCode() = %d, want %d", code, cli.ExitFindings)
	}
	if !strings.Contains(out.String(), "[invalid_field_format]") {
		t.Errorf("output = %q, want error type", out.String())
	}
}

func TestLintDeclarationsStrict(t *testing.T) {
	tests := []struct {
		strict   bool
		wantCode int
		wantText string
	}{
		{false, cli.ExitOK, "Warning:"},
		{true, cli.ExitFindings, "Error:"},
	}

	for _, tt := range tests {
		cmd, out := newTestCommand(t)
		resetLintFlags()
		lintFlags.file = writeSource(t, "pair.rs", "pub struct Pair { x: i32, x: i32 }\n")
		lintFlags.strict = tt.strict

		err := lintDeclarations(cmd, nil)
		if code := cli.ExitCode(err); code != tt.wantCode {
			t.Errorf("strict=%v: ExitCode() = %d, want %d", tt.strict, code, tt.wantCode)
		}
		if !strings.Contains(out.String(), tt.wantText) {
			t.Errorf("strict=%v: output = %q, want %q", tt.strict, out.String(), tt.wantText)
		}
	}
}

func TestLintDeclarationsDirJSON(t *testing.T) {
	cmd, out := newTestCommand(t)
	resetLintFlags()
	writeSource(t, "src/a.rs", "pub enum A { One }\n")
	writeSource(t, "src/nested/b.rs", "pub trait B { fn b(&self); }\n")
	writeSource(t, "src/.hidden/c.rs", "pub struct C { x f64 }\n")
	writeSource(t, "src/readme.md", "not rust\n")
	lintFlags.dir = "src"
	lintFlags.format = "json"

	if err := lintDeclarations(cmd, nil); err != nil {
		t.Fatalf("lintDeclarations() error = %v", err)
	}

	var results []ValidationResult
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v, want 2 files", results)
	}
	for _, r := range results {
		if !r.Valid || r.Declarations != 1 {
			t.Errorf("result = %+v, want one valid declaration", r)
		}
	}
}

func TestLintDeclarationsNoFileOrDir(t *testing.T) {
	cmd, _ := newTestCommand(t)
	resetLintFlags()

	err := lintDeclarations(cmd, nil)
	if code := cli.ExitCode(err); code != cli.ExitError {
		t.Errorf("ExitCode() = %d, want %d", code, cli.ExitError)
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		strict       bool
		wantValid    bool
		wantErrors   int
		wantWarnings int
	}{
		{"valid", "pub enum Color { Red, Green }", false, true, 0, 0},
		{"parse error", "pub enum Color Red", false, false, 1, 0},
		{"duplicate variant", "pub enum Color { Red, Red }", false, true, 0, 1},
		{"duplicate variant strict", "pub enum Color { Red, Red }", true, false, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newTestCommand(t)
			path := writeSource(t, "decl.rs", tt.content)

			result := validateFile(parser.NewParser(), path, tt.strict)
			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", result.Valid, tt.wantValid)
			}
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("Errors = %+v, want %d", result.Errors, tt.wantErrors)
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %+v, want %d", result.Warnings, tt.wantWarnings)
			}
		})
	}
}
