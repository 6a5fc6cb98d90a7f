package validator

import (
	"fmt"

	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

// SignatureValidator checks trait method signatures: parameter names are
// unique, a receiver appears at most once and only in first position, and
// the receiver type "self" is not used outside a receiver.
type SignatureValidator struct {
	errors *declErrors.ErrorList
}

// NewSignatureValidator creates a new signature validator.
func NewSignatureValidator() *SignatureValidator {
	return &SignatureValidator{
		errors: declErrors.NewErrorList(),
	}
}

// Validate performs signature validation. Only traits carry signatures;
// other declarations always pass.
func (v *SignatureValidator) Validate(node *ast.Node) error {
	v.errors = declErrors.NewErrorList()
	if node == nil || !node.IsTrait() {
		return nil
	}

	traitFrame := fmt.Sprintf("trait %q", node.Trait.Name)
	for _, method := range node.Trait.Methods {
		v.validateMethod(method, traitFrame, fmt.Sprintf("method %q", method.Name))
	}
	return v.errors.ToError()
}

func (v *SignatureValidator) validateMethod(method *ast.MethodNode, frames ...string) {
	seen := make(map[string]bool)
	for i, param := range method.Params {
		if param.IsReceiver() && i > 0 {
			v.errors.Add(newError("trait",
				fmt.Sprintf("Receiver %q must be the first parameter", param.Name),
				"Move the receiver to the front of the parameter list", frames...))
		}
		if !param.IsReceiver() {
			if names := param.Type.Names(); containsSelf(names) {
				v.errors.Add(newError("trait",
					fmt.Sprintf("Parameter %q uses the receiver type 'self'", param.Name),
					"Use 'Self' for the implementing type", frames...))
			}
		}

		if seen[param.Name] {
			v.errors.Add(newError("trait",
				fmt.Sprintf("Duplicate parameter %q", param.Name),
				"Rename or remove one of the parameters", frames...))
		}
		seen[param.Name] = true
	}

	// "self" and "&self" are both receivers; together they are a duplicate
	if seen[ast.ReceiverSelf] && seen[ast.ReceiverRefSelf] {
		v.errors.Add(newError("trait",
			"Method has more than one receiver",
			"Keep either 'self' or '&self'", frames...))
	}
}

func containsSelf(names []string) bool {
	for _, n := range names {
		if n == ast.ReceiverSelf {
			return true
		}
	}
	return false
}
