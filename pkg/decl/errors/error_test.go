package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"mercator-hq/rustalize/pkg/decl/ast"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Type:       ErrorTypeInvalidFieldFormat,
		Message:    `Invalid field format: "x f64"`,
		Location:   ast.Location{File: "shapes.rs", Line: 3, Column: 5},
		Suggestion: "Write each field as 'name: Type'",
	}
	err.WithFrame(`struct "InvalidStruct"`)

	got := err.Error()
	for _, want := range []string{
		`[invalid_field_format] Invalid field format: "x f64"`,
		"--> shapes.rs:3:5",
		`in: struct "InvalidStruct"`,
		"= suggestion: Write each field as 'name: Type'",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}

func TestError_Is(t *testing.T) {
	err := New(ErrorTypeMissingName, "Invalid struct definition")
	wrapped := fmt.Errorf("parse failed: %w", err)

	if !stderrors.Is(wrapped, ErrMissingName) {
		t.Error("errors.Is() should match sentinel of the same type")
	}
	if stderrors.Is(wrapped, ErrMissingBody) {
		t.Error("errors.Is() should not match sentinel of another type")
	}
	if got := TypeOf(wrapped); got != ErrorTypeMissingName {
		t.Errorf("TypeOf() = %q, want %q", got, ErrorTypeMissingName)
	}
	if TypeOf(stderrors.New("plain")) != "" {
		t.Error("TypeOf() of a plain error should be empty")
	}
}

func TestFrame(t *testing.T) {
	err := error(New(ErrorTypeInvalidType, "empty type expression"))
	err = Frame(err, "field %q", "x")
	err = Frame(err, "struct %q", "Point")

	var e *Error
	if !stderrors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	want := []string{`struct "Point"`, `field "x"`}
	if strings.Join(e.Frames, "|") != strings.Join(want, "|") {
		t.Errorf("Frames = %v, want %v", e.Frames, want)
	}
	if e.Type != ErrorTypeInvalidType {
		t.Errorf("Type = %q, want unchanged %q", e.Type, ErrorTypeInvalidType)
	}

	plain := stderrors.New("plain")
	if Frame(plain, "x") != plain {
		t.Error("Frame() should return non-*Error values unchanged")
	}
}

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	if list.ToError() != nil {
		t.Error("empty list ToError() should be nil")
	}

	list.AddError(ErrorTypeValidation, "duplicate field", ast.Location{File: "a.rs", Line: 1})
	list.Append(New(ErrorTypeMissingBody, "Missing struct body"), "b.rs")
	list.Append(stderrors.New("disk on fire"), "c.rs")
	list.Append(nil, "d.rs")

	if list.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", list.Count())
	}
	if list.Errors[1].Location.File != "b.rs" {
		t.Errorf("Location.File = %q, want b.rs", list.Errors[1].Location.File)
	}
	if !list.HasErrorType(ErrorTypeIO) {
		t.Error("plain errors should be recorded as io errors")
	}
	if len(list.ByType(ErrorTypeValidation)) != 1 {
		t.Error("ByType(validation) should return one error")
	}
	if !strings.HasPrefix(list.Error(), "Found 3 error(s)") {
		t.Errorf("Error() = %q", list.Error())
	}
}

func TestExtractContext(t *testing.T) {
	src := "pub struct A {\n    x f64,\n    y: f64,\n}"
	loc := ast.Location{Line: 2, Column: 5}

	got := ExtractContext(src, loc, 1)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("ExtractContext() returned %d lines, want 4:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], "-> 2 |     x f64,") {
		t.Errorf("error line = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "|     ^") {
		t.Errorf("caret line = %q", lines[2])
	}

	if ExtractContext(src, ast.Location{}, 1) != "" {
		t.Error("invalid location should yield no context")
	}
	if ExtractContext(src, ast.Location{Line: 40}, 1) != "" {
		t.Error("out of range line should yield no context")
	}
}

func TestSuggestDeclaration(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pub strcut Point { x: f64 }", "Did you mean 'pub struct'?"},
		{"pub traits Foo {}", "Did you mean 'pub trait'?"},
		{"struct Point { x: f64 }", "Add the visibility marker: 'pub struct'"},
		{"enum Color { Red }", "Add the visibility marker: 'pub enum'"},
		{"fn standalone_function() {}", "Valid declarations start with: pub trait, pub struct, pub enum"},
		{"", "Input is empty; expected a 'pub trait', 'pub struct', or 'pub enum' declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SuggestDeclaration(tt.input); got != tt.want {
				t.Errorf("SuggestDeclaration(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"pub strcut", "pub struct", 2},
		{"", "enum", 4},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
