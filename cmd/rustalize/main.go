// Rustalize parses restricted Rust-style declarations (pub trait, pub struct,
// pub enum) and prints them as trees or structured documents.
//
// Usage:
//
//	# Print the tree of every declaration in a file
//	rustalize parse shapes.rs
//
//	# Parse a single declaration given on the command line
//	rustalize parse --expr "pub struct Point { x: f64, y: f64 }"
//
//	# Check a directory for invalid declarations
//	rustalize lint --dir src/
//
//	# Re-parse files as they change
//	rustalize watch --path src/
//
//	# Record declarations in the catalog, then query it
//	rustalize index --dir src/
//	rustalize catalog list --kind trait
package main

func main() {
	Execute()
}
