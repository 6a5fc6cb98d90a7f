package validator

import (
	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

// Validator is the main validator that orchestrates all validation passes.
// It runs structural and signature validation in sequence.
type Validator struct {
	structural *StructuralValidator
	signature  *SignatureValidator
}

// NewValidator creates a new validator with all validation passes.
func NewValidator() *Validator {
	return &Validator{
		structural: NewStructuralValidator(),
		signature:  NewSignatureValidator(),
	}
}

// Validate runs all validation passes on a parsed declaration.
// It accumulates errors from all passes and returns them together as an
// *errors.ErrorList, or nil.
func (v *Validator) Validate(node *ast.Node) error {
	errors := declErrors.NewErrorList()

	if err := v.structural.Validate(node); err != nil {
		if errList, ok := err.(*declErrors.ErrorList); ok {
			errors.Errors = append(errors.Errors, errList.Errors...)
		}
	}

	if err := v.signature.Validate(node); err != nil {
		if errList, ok := err.(*declErrors.ErrorList); ok {
			errors.Errors = append(errors.Errors, errList.Errors...)
		}
	}

	return errors.ToError()
}

// ValidateStructural runs only structural validation.
func (v *Validator) ValidateStructural(node *ast.Node) error {
	return v.structural.Validate(node)
}

// ValidateSignatures runs only signature validation.
func (v *Validator) ValidateSignatures(node *ast.Node) error {
	return v.signature.Validate(node)
}

// newError builds a validation error framed by the enclosing nodes.
func newError(construct, message, suggestion string, frames ...string) *declErrors.Error {
	return &declErrors.Error{
		Type:       declErrors.ErrorTypeValidation,
		Message:    message,
		Construct:  construct,
		Suggestion: suggestion,
		Frames:     append([]string(nil), frames...),
	}
}
