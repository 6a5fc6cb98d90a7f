package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"mercator-hq/rustalize/pkg/decl/ast"
)

// ErrorType categorizes the type of error encountered during parsing or validation.
type ErrorType string

const (
	ErrorTypeUnsupportedConstruct   ErrorType = "unsupported_construct"    // No trait/struct/enum header
	ErrorTypeMissingName            ErrorType = "missing_name"             // Declaration has no name token
	ErrorTypeMissingBody            ErrorType = "missing_body"             // No opening brace
	ErrorTypeMissingClosingBrace    ErrorType = "missing_closing_brace"    // No closing brace
	ErrorTypeInvalidBody            ErrorType = "invalid_body"             // Closing brace before opening brace
	ErrorTypeInvalidFieldFormat     ErrorType = "invalid_field_format"     // Field is not "name: Type"
	ErrorTypeInvalidMethodName      ErrorType = "invalid_method_name"      // Malformed method header
	ErrorTypeInvalidParameterFormat ErrorType = "invalid_parameter_format" // Parameter is not "name: Type"
	ErrorTypeInvalidType            ErrorType = "invalid_type"             // Empty type expression
	ErrorTypeDepthExceeded          ErrorType = "depth_exceeded"           // Nesting deeper than the parser limit
	ErrorTypeValidation             ErrorType = "validation"               // Structural lint failure
	ErrorTypeIO                     ErrorType = "io"                       // File I/O or size limit error
)

// Sentinel errors for use with errors.Is. Any *Error matches the sentinel
// with the same Type.
var (
	ErrUnsupportedConstruct   = &Error{Type: ErrorTypeUnsupportedConstruct}
	ErrMissingName            = &Error{Type: ErrorTypeMissingName}
	ErrMissingBody            = &Error{Type: ErrorTypeMissingBody}
	ErrMissingClosingBrace    = &Error{Type: ErrorTypeMissingClosingBrace}
	ErrInvalidBody            = &Error{Type: ErrorTypeInvalidBody}
	ErrInvalidFieldFormat     = &Error{Type: ErrorTypeInvalidFieldFormat}
	ErrInvalidMethodName      = &Error{Type: ErrorTypeInvalidMethodName}
	ErrInvalidParameterFormat = &Error{Type: ErrorTypeInvalidParameterFormat}
	ErrInvalidType            = &Error{Type: ErrorTypeInvalidType}
	ErrDepthExceeded          = &Error{Type: ErrorTypeDepthExceeded}
)

// Error represents a rich error with location, context, and suggestions.
// It provides detailed information for debugging declaration issues.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Construct  string       // Declaration kind being parsed ("trait", "struct", "enum")
	Fragment   string       // Offending source fragment
	Location   ast.Location // Source location (file, line, column)
	Context    string       // Surrounding lines of source
	Suggestion string       // Suggested fix (optional)
	Frames     []string     // Enclosing nodes, outermost first
}

// Error implements the error interface.
// It returns a formatted error message with location and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Location.String()))
	}

	if len(e.Frames) > 0 {
		sb.WriteString(fmt.Sprintf("\n  in: %s", strings.Join(e.Frames, " > ")))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
		sb.WriteString("\n  |")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Is reports whether target is an *Error of the same Type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithFrame prepends an enclosing node description (e.g. `struct "Point"`)
// and returns the error. The error type is left unchanged.
func (e *Error) WithFrame(frame string) *Error {
	e.Frames = append([]string{frame}, e.Frames...)
	return e
}

// New creates an error of the given type with a formatted message.
func New(errType ErrorType, format string, args ...any) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// TypeOf returns the ErrorType of err, or "" if err is not an *Error.
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsType returns true if err is (or wraps) an *Error of the given type.
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// Frame wraps err with an enclosing node description when err is an *Error.
// Other errors are returned unchanged.
func Frame(err error, format string, args ...any) error {
	var e *Error
	if stderrors.As(err, &e) {
		e.WithFrame(fmt.Sprintf(format, args...))
	}
	return err
}

// ErrorList represents a collection of errors encountered across several
// sources or validation checks. A single parse never returns an ErrorList.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType ErrorType, message string, location ast.Location, suggestion string) {
	el.Add(&Error{
		Type:       errType,
		Message:    message,
		Location:   location,
		Suggestion: suggestion,
	})
}

// Append adds err to the list. Non-*Error values are recorded as I/O errors
// so that nothing is dropped.
func (el *ErrorList) Append(err error, file string) {
	if err == nil {
		return
	}
	var e *Error
	if stderrors.As(err, &e) {
		if e.Location.File == "" {
			e.Location.File = file
		}
		el.Add(e)
		return
	}
	el.Add(&Error{
		Type:     ErrorTypeIO,
		Message:  err.Error(),
		Location: ast.Location{File: file},
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the error list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
