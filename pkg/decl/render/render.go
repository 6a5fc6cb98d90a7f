package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"mercator-hq/rustalize/pkg/decl/ast"
)

// Branch connectors.
const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// AnonymousName is printed for the anonymous struct of a variant payload.
const AnonymousName = "(anonymous)"

// Renderer prints an AST as an indented tree. It is stateless apart from its
// options and never modifies the AST.
type Renderer struct {
	headerColor *color.Color
	leafColor   *color.Color
}

// NewRenderer creates a renderer with color disabled.
func NewRenderer() *Renderer {
	return (&Renderer{}).WithColor(false)
}

// WithColor enables or disables ANSI colors for node kinds, regardless of
// whether the output is a terminal.
func (r *Renderer) WithColor(enabled bool) *Renderer {
	r.headerColor = color.New(color.FgCyan, color.Bold)
	r.leafColor = color.New(color.Faint)
	for _, c := range []*color.Color{r.headerColor, r.leafColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// item is one line of the tree and the lines nested under it.
type item struct {
	kind     string
	text     string
	header   bool
	children []item
}

// Render writes the tree for node to w.
func (r *Renderer) Render(w io.Writer, node *ast.Node) error {
	for _, line := range r.Lines(node) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the tree for node, one string per line, without trailing
// newlines.
func (r *Renderer) Lines(node *ast.Node) []string {
	if node == nil {
		return nil
	}
	var lines []string
	r.write(&lines, nodeItem(node), "", "")
	return lines
}

// write appends it to lines with the given connector, then its children
// with the continuation indent extended.
func (r *Renderer) write(lines *[]string, it item, connector, indent string) {
	label := r.leafColor.Sprint(it.kind + ":")
	if it.header {
		label = r.headerColor.Sprint(it.kind + ":")
	}
	*lines = append(*lines, connector+label+" "+it.text)

	for i, child := range it.children {
		if i == len(it.children)-1 {
			r.write(lines, child, indent+branchLast, indent+indentLast)
		} else {
			r.write(lines, child, indent+branchMid, indent+indentMid)
		}
	}
}

func nodeItem(node *ast.Node) item {
	switch node.Kind {
	case ast.NodeKindTrait:
		it := item{kind: "Trait", text: node.Trait.Name, header: true}
		for _, m := range node.Trait.Methods {
			it.children = append(it.children, methodItem(m))
		}
		return it

	case ast.NodeKindStruct:
		name := node.Struct.Name
		if node.Struct.IsAnonymous() {
			name = AnonymousName
		}
		it := item{kind: "Struct", text: name, header: true}
		for _, f := range node.Struct.Fields {
			it.children = append(it.children, item{kind: "Field", text: f.Name + ": " + f.Type.String()})
		}
		return it

	case ast.NodeKindEnum:
		it := item{kind: "Enum", text: node.Enum.Name, header: true}
		for _, v := range node.Enum.Variants {
			variant := item{kind: "Variant", text: v.Name, header: true}
			if v.Data != nil {
				variant.children = []item{nodeItem(v.Data)}
			}
			it.children = append(it.children, variant)
		}
		return it
	}
	return item{kind: string(node.Kind), text: node.Name(), header: true}
}

func methodItem(m *ast.MethodNode) item {
	it := item{kind: "Method", text: m.Name, header: true}
	for _, p := range m.Params {
		it.children = append(it.children, item{kind: "Param", text: p.Name + ": " + p.Type.String()})
	}
	if m.ReturnType != nil {
		it.children = append(it.children, item{kind: "Return Type", text: m.ReturnType.String()})
	}
	return it
}

var defaultRenderer = NewRenderer()

// Render writes the uncolored tree for node to w.
func Render(w io.Writer, node *ast.Node) error {
	return defaultRenderer.Render(w, node)
}

// Lines returns the uncolored tree for node.
func Lines(node *ast.Node) []string {
	return defaultRenderer.Lines(node)
}

// String returns the uncolored tree for node as one string.
func String(node *ast.Node) string {
	var sb strings.Builder
	_ = Render(&sb, node)
	return sb.String()
}
