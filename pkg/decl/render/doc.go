// Package render prints declaration ASTs as indented trees.
//
//	Trait: Visualizer
//	├── Method: visualize
//	│   ├── Param: &self: &self
//	│   └── Param: data: &[u8]
//	└── Method: process
//	    ├── Param: &self: &self
//	    ├── Param: input: &str
//	    └── Return Type: String
//
// Traits, structs, enums, methods, and variants print a header line
// "<Kind>: <name>"; parameters, fields, and return types print one leaf line
// each using TypeNode.String. A variant payload prints as a nested
// "Struct: (anonymous)".
//
// Use NewRenderer().WithColor(true) to color node kinds.
package render
