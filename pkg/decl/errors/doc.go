// Package errors provides rich error types for declaration parsing and
// validation.
//
// The error types include source location, context, enclosing-node frames,
// and suggestions to help users quickly identify and fix malformed input.
//
// # Error Types
//
// ErrorTypeUnsupportedConstruct: input is not a trait/struct/enum declaration
//
// ErrorTypeMissingName, ErrorTypeMissingBody, ErrorTypeMissingClosingBrace,
// ErrorTypeInvalidBody: malformed declaration header or braces
//
// ErrorTypeInvalidFieldFormat, ErrorTypeInvalidMethodName,
// ErrorTypeInvalidParameterFormat, ErrorTypeInvalidType: malformed members
//
// ErrorTypeDepthExceeded: nesting deeper than the parser's limit
//
// ErrorTypeValidation: structural lint failures
//
// ErrorTypeIO: file I/O and size limit errors
//
// # Basic Usage
//
// Check the kind of a parse failure:
//
//	_, err := parser.Parse(input)
//	if errors.IsType(err, errors.ErrorTypeInvalidFieldFormat) {
//	    // ...
//	}
//
//	// or with the standard library
//	if stderrors.Is(err, errors.ErrInvalidFieldFormat) {
//	    // ...
//	}
//
// # Error Format
//
//	[invalid_field_format] Invalid field format: "x f64"
//	  --> shapes.rs:3:5
//	  in: struct "InvalidStruct"
//	  |
//	   2 |     pub struct InvalidStruct {
//	-> 3 |         x f64,
//	     |         ^
//	  |
//	  = suggestion: Write each field as 'name: Type'
package errors
