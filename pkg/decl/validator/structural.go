package validator

import (
	"fmt"
	"regexp"
	"strconv"

	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

var (
	// identifierPattern validates declaration and member names (e.g. "Point", "x_1")
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// StructuralValidator checks names: every declaration and member is named
// with an identifier, and names are unique within their parent.
type StructuralValidator struct {
	errors *declErrors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{
		errors: declErrors.NewErrorList(),
	}
}

// Validate performs structural validation on a declaration.
// It returns an ErrorList containing all structural errors found.
func (v *StructuralValidator) Validate(node *ast.Node) error {
	v.errors = declErrors.NewErrorList()
	if node != nil {
		v.validateNode(node)
	}
	return v.errors.ToError()
}

func (v *StructuralValidator) validateNode(node *ast.Node, frames ...string) {
	switch node.Kind {
	case ast.NodeKindTrait:
		v.validateTrait(node.Trait, frames)
	case ast.NodeKindStruct:
		v.validateStruct(node.Struct, frames)
	case ast.NodeKindEnum:
		v.validateEnum(node.Enum, frames)
	}
}

func (v *StructuralValidator) validateTrait(trait *ast.TraitNode, frames []string) {
	v.checkName("trait", trait.Name, frames)
	frames = append(frames, fmt.Sprintf("trait %q", trait.Name))

	// Every method after the first of its name is a duplicate.
	for _, method := range trait.Methods {
		v.checkName("method", method.Name, frames)
		if trait.GetMethod(method.Name) != method {
			v.errors.Add(newError("trait",
				fmt.Sprintf("Duplicate method %q", method.Name),
				"Rename or remove one of the methods", frames...))
		}
	}
}

func (v *StructuralValidator) validateStruct(s *ast.StructNode, frames []string) {
	if !s.IsAnonymous() {
		v.checkName("struct", s.Name, frames)
		frames = append(frames, fmt.Sprintf("struct %q", s.Name))
	}

	for i, field := range s.Fields {
		if _, err := strconv.Atoi(field.Name); err == nil {
			// Positional names only belong to tuple payloads, in order
			if !s.IsAnonymous() || field.Name != strconv.Itoa(i) {
				v.errors.Add(newError("struct",
					fmt.Sprintf("Positional field %q out of place", field.Name),
					"Positional fields are only valid in tuple variant payloads", frames...))
			}
		} else {
			v.checkName("field", field.Name, frames)
		}

		if s.GetField(field.Name) != field {
			v.errors.Add(newError("struct",
				fmt.Sprintf("Duplicate field %q", field.Name),
				"Rename or remove one of the fields", frames...))
		}
	}
}

func (v *StructuralValidator) validateEnum(enum *ast.EnumNode, frames []string) {
	v.checkName("enum", enum.Name, frames)
	frames = append(frames, fmt.Sprintf("enum %q", enum.Name))

	for _, variant := range enum.Variants {
		v.checkName("variant", variant.Name, frames)
		if enum.GetVariant(variant.Name) != variant {
			v.errors.Add(newError("enum",
				fmt.Sprintf("Duplicate variant %q", variant.Name),
				"Rename or remove one of the variants", frames...))
		}

		if variant.Data != nil {
			v.validateNode(variant.Data, append(frames, fmt.Sprintf("variant %q", variant.Name))...)
		}
	}
}

// checkName reports names that are not identifiers.
func (v *StructuralValidator) checkName(construct, name string, frames []string) {
	if identifierPattern.MatchString(name) {
		return
	}
	msg := fmt.Sprintf("Invalid %s name %q (must be alphanumeric with underscores)", construct, name)
	if name == "" {
		msg = fmt.Sprintf("Missing %s name", construct)
	}
	v.errors.Add(newError(construct, msg, "Example: 'my_name' or 'MyName'", frames...))
}
