// Package parser turns trait, struct, and enum declaration text into ASTs.
//
// Parsing is delimiter driven: there is no tokenizer. A declaration's name is
// its third whitespace-separated token and its body lies between the first
// '{' and the last '}'. Bodies are split into members on ';' (traits) or ','
// (structs and enums), and each member is decomposed by position of '(', ')',
// ':' and "->".
//
// # Basic Usage
//
// Parse one declaration:
//
//	node, err := parser.Parse("pub struct Point { x: f64, y: f64 }")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(node.Kind, node.Name()) // struct Point
//
// Parse every declaration in a file:
//
//	nodes, err := parser.NewParser().ParseAll("shapes.rs", string(data))
//
// # Configuration
//
//	p := parser.NewParser().
//	    WithSplitMode(parser.SplitNaive). // Split on every separator
//	    WithMaxDepth(16).                 // Max type nesting
//	    WithStrictMode(true)              // Run the validator after parsing
//
// # Split Modes
//
// SplitDepth (the default) only splits member lists at bracket depth zero,
// so "m: HashMap<K, V>" is one field and "Move { x: i32, y: i32 }" is one
// variant. SplitNaive splits on every separator character; those inputs are
// mis-segmented and usually fail with InvalidFieldFormat or degrade to unit
// variants.
//
// # Enum Payloads
//
// Tuple payloads "Write(String, u8)" become an anonymous struct with fields
// "0", "1". Struct-like payloads "Move { x: i32 }" become an anonymous
// struct with named fields. Payload text is parsed with the field and type
// parsers directly; it is never passed back through the declaration
// dispatcher.
//
// # Limits
//
// Type and payload nesting is bounded by WithMaxDepth (default 64) and input
// size by WithMaxInputBytes (default 1MB).
//
// # Errors
//
// A parse returns either a complete AST or a single *errors.Error. Errors
// from nested members keep their type and gain frames naming the enclosing
// nodes, e.g. `enum "Message" > variant "Move" > field "x"`.
package parser
