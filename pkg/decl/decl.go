package decl

import (
	"io"
	"log/slog"

	"mercator-hq/rustalize/pkg/config"
	"mercator-hq/rustalize/pkg/decl/ast"
	"mercator-hq/rustalize/pkg/decl/parser"
	"mercator-hq/rustalize/pkg/decl/render"
	"mercator-hq/rustalize/pkg/decl/validator"
)

// Parse parses a single trait, struct, or enum declaration with the default
// parser options.
func Parse(text string) (*ast.Node, error) {
	return parser.Parse(text)
}

// ParseAll parses every top-level declaration in src. file is used only in
// error locations.
func ParseAll(file, src string) ([]*ast.Node, error) {
	return parser.NewParser().ParseAll(file, src)
}

// ParseFile reads path and parses every declaration in it.
func ParseFile(path string) ([]*ast.Node, error) {
	return parser.NewParser().ParseFile(path)
}

// ParseAndValidate parses text and runs the structural and signature checks
// on the result. Validation failures are returned as an *errors.ErrorList.
func ParseAndValidate(text string) (*ast.Node, error) {
	node, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := validator.NewValidator().Validate(node); err != nil {
		return node, err
	}
	return node, nil
}

// NewParser builds a parser from the parser section of the configuration.
// A nil logger falls back to slog.Default.
func NewParser(cfg config.ParserConfig, logger *slog.Logger) *parser.Parser {
	p := parser.NewParser().
		WithStrictMode(cfg.Strict)

	if mode := parser.SplitMode(cfg.SplitMode); mode.IsValid() {
		p = p.WithSplitMode(mode)
	}
	if cfg.MaxDepth > 0 {
		p = p.WithMaxDepth(cfg.MaxDepth)
	}
	if cfg.MaxInputBytes > 0 {
		p = p.WithMaxInputBytes(cfg.MaxInputBytes)
	}
	if logger != nil {
		p = p.WithLogger(logger)
	}
	return p
}

// Render writes the indented tree for node to w.
func Render(w io.Writer, node *ast.Node) error {
	return render.Render(w, node)
}

// Tree returns the indented tree for node as a string.
func Tree(node *ast.Node) string {
	return render.String(node)
}
