package ast

import "strings"

// TypeKind represents the shape of a type expression.
type TypeKind string

const (
	TypeKindSimple    TypeKind = "simple"    // bare identifier
	TypeKindReference TypeKind = "reference" // &T
	TypeKindGeneric   TypeKind = "generic"   // Name<A, B> or [T]
)

// SliceTypeName is the reserved generic name for array/slice types.
// A slice is a generic with exactly one argument, the element type.
const SliceTypeName = "[]"

// TypeNode represents a type expression in the AST.
// Simple types use Name, references use Elem, generics use Name and Args.
type TypeNode struct {
	Kind TypeKind
	Name string
	Elem *TypeNode
	Args []*TypeNode
}

// Simple returns a bare named type.
func Simple(name string) *TypeNode {
	return &TypeNode{Kind: TypeKindSimple, Name: name}
}

// Reference returns a reference to elem.
func Reference(elem *TypeNode) *TypeNode {
	return &TypeNode{Kind: TypeKindReference, Elem: elem}
}

// Generic returns name applied to args.
func Generic(name string, args ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: TypeKindGeneric, Name: name, Args: args}
}

// Slice returns an array/slice type of elem.
func Slice(elem *TypeNode) *TypeNode {
	return Generic(SliceTypeName, elem)
}

// IsSimple returns true if this is a bare named type.
func (t *TypeNode) IsSimple() bool {
	return t.Kind == TypeKindSimple
}

// IsReference returns true if this is a reference type.
func (t *TypeNode) IsReference() bool {
	return t.Kind == TypeKindReference
}

// IsGeneric returns true if this is a generic application (slices included).
func (t *TypeNode) IsGeneric() bool {
	return t.Kind == TypeKindGeneric
}

// IsSlice returns true if this is an array/slice type.
func (t *TypeNode) IsSlice() bool {
	return t.Kind == TypeKindGeneric && t.Name == SliceTypeName
}

// String formats the type back into source-like text: "&T", "Name<A, B>",
// and "[T]" for slices.
func (t *TypeNode) String() string {
	if t == nil {
		return ""
	}

	switch t.Kind {
	case TypeKindReference:
		return "&" + t.Elem.String()
	case TypeKindGeneric:
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = arg.String()
		}
		if t.Name == SliceTypeName {
			return "[" + strings.Join(args, ", ") + "]"
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	default:
		return t.Name
	}
}

// Equal reports whether two type trees have the same shape and names.
func (t *TypeNode) Equal(other *TypeNode) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind || t.Name != other.Name {
		return false
	}
	if !t.Elem.Equal(other.Elem) {
		return false
	}
	if len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Names returns every type name referenced by the expression, outermost
// first. The reserved slice name is skipped.
func (t *TypeNode) Names() []string {
	var names []string
	var collect func(*TypeNode)
	collect = func(n *TypeNode) {
		if n == nil {
			return
		}
		if n.Name != "" && n.Name != SliceTypeName {
			names = append(names, n.Name)
		}
		collect(n.Elem)
		for _, arg := range n.Args {
			collect(arg)
		}
	}
	collect(t)
	return names
}
