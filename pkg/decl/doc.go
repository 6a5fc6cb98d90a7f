// Package decl is the entry point for parsing restricted Rust-style
// declarations.
//
// Three declaration forms are recognized, each starting with a visibility
// and keyword header:
//
//	pub trait Visualizer { fn visualize(&self, data: &[u8]); }
//	pub struct Point { x: f64, y: f64 }
//	pub enum Message { Quit, Move { x: i32, y: i32 }, Write(String) }
//
// Parse returns a single *ast.Node; ParseAll and ParseFile accept sources
// holding several declarations. Errors are *errors.Error values carrying a
// type, a source location, and the chain of enclosing nodes.
//
//	node, err := decl.Parse("pub struct Point { x: f64, y: f64 }")
//	if err != nil {
//	    return err
//	}
//	fmt.Print(decl.Tree(node))
//
// The subpackages hold the pieces:
//
//   - ast: the node model, Walk, and statistics
//   - parser: the configurable parser
//   - validator: structural and signature checks
//   - render: the indented tree renderer
//   - export: YAML and JSON documents
//   - errors: error types, lists, context, and suggestions
package decl
