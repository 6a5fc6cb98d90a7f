// Package ast provides Abstract Syntax Tree (AST) definitions for trait,
// struct, and enum declarations.
//
// The AST represents the parsed structure of one declaration. Nodes are built
// bottom-up by the parser, exclusively own their children (no sharing, no
// cycles), and are never mutated after construction.
//
// # Core Types
//
// Node: tagged union of a trait, struct, or enum declaration
//
// TraitNode / StructNode / EnumNode: the three declaration shapes
//
// MethodNode, ParamNode, FieldNode, VariantNode: declaration members
//
// TypeNode: type expression (simple, reference, or generic; slices are the
// generic named "[]")
//
// # AST Structure
//
//	Node
//	├── Trait (name)
//	│   └── Methods ([]*MethodNode)
//	│       ├── Params ([]*ParamNode) -> TypeNode
//	│       └── ReturnType (*TypeNode, optional)
//	├── Struct (name, may be empty for variant payloads)
//	│   └── Fields ([]*FieldNode) -> TypeNode
//	└── Enum (name)
//	    └── Variants ([]*VariantNode)
//	        └── Data (*Node, anonymous struct, optional)
//
// # Traversal
//
// Use Walk with a Visitor for read-only traversal; Stats is a ready-made
// visitor that counts nodes:
//
//	stats := ast.CountNodes(node)
//	fmt.Println("methods:", stats.Methods)
package ast
