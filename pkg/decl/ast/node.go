package ast

import "strconv"

// NodeKind identifies which declaration a Node holds.
type NodeKind string

const (
	NodeKindTrait  NodeKind = "trait"  // trait declaration
	NodeKindStruct NodeKind = "struct" // struct declaration or variant payload
	NodeKindEnum   NodeKind = "enum"   // enum declaration
)

// Node is one top-level declaration or, recursively, the payload of an enum
// variant. Exactly one of Trait, Struct, or Enum is set, matching Kind.
type Node struct {
	Kind   NodeKind
	Trait  *TraitNode
	Struct *StructNode
	Enum   *EnumNode
}

// NewTrait wraps a trait declaration in a Node.
func NewTrait(t *TraitNode) *Node {
	return &Node{Kind: NodeKindTrait, Trait: t}
}

// NewStruct wraps a struct declaration in a Node.
func NewStruct(s *StructNode) *Node {
	return &Node{Kind: NodeKindStruct, Struct: s}
}

// NewEnum wraps an enum declaration in a Node.
func NewEnum(e *EnumNode) *Node {
	return &Node{Kind: NodeKindEnum, Enum: e}
}

// Name returns the declaration name, or "" for anonymous structs.
func (n *Node) Name() string {
	switch n.Kind {
	case NodeKindTrait:
		return n.Trait.Name
	case NodeKindStruct:
		return n.Struct.Name
	case NodeKindEnum:
		return n.Enum.Name
	}
	return ""
}

// IsTrait returns true if the node holds a trait declaration.
func (n *Node) IsTrait() bool {
	return n.Kind == NodeKindTrait
}

// IsStruct returns true if the node holds a struct.
func (n *Node) IsStruct() bool {
	return n.Kind == NodeKindStruct
}

// IsEnum returns true if the node holds an enum declaration.
func (n *Node) IsEnum() bool {
	return n.Kind == NodeKindEnum
}

// TraitNode represents a trait declaration: a name and its method signatures
// in source order.
type TraitNode struct {
	Name    string
	Methods []*MethodNode
}

// GetMethod returns the method with the given name, or nil if not found.
func (t *TraitNode) GetMethod(name string) *MethodNode {
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// StructNode represents a struct declaration. Name is empty for the anonymous
// struct synthesized from a variant payload.
type StructNode struct {
	Name   string
	Fields []*FieldNode
}

// IsAnonymous returns true if the struct has no name (a variant payload).
func (s *StructNode) IsAnonymous() bool {
	return s.Name == ""
}

// IsTuple returns true if every field is positional ("0", "1", ...).
// A struct with no fields is not a tuple.
func (s *StructNode) IsTuple() bool {
	if len(s.Fields) == 0 {
		return false
	}
	for i, f := range s.Fields {
		if f.Name != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

// GetField returns the field with the given name, or nil if not found.
func (s *StructNode) GetField(name string) *FieldNode {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumNode represents an enum declaration and its variants in source order.
type EnumNode struct {
	Name     string
	Variants []*VariantNode
}

// GetVariant returns the variant with the given name, or nil if not found.
func (e *EnumNode) GetVariant(name string) *VariantNode {
	for _, v := range e.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}
