package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"mercator-hq/rustalize/pkg/decl/ast"
)

// Document is the machine-readable form of one declaration.
type Document struct {
	Kind     string    `yaml:"kind" json:"kind"`
	Name     string    `yaml:"name,omitempty" json:"name,omitempty"`
	Methods  []Method  `yaml:"methods,omitempty" json:"methods,omitempty"`
	Fields   []Field   `yaml:"fields,omitempty" json:"fields,omitempty"`
	Variants []Variant `yaml:"variants,omitempty" json:"variants,omitempty"`
}

// Method is a trait method signature.
type Method struct {
	Name    string  `yaml:"name" json:"name"`
	Params  []Field `yaml:"params,omitempty" json:"params,omitempty"`
	Returns string  `yaml:"returns,omitempty" json:"returns,omitempty"`
}

// Field is a struct field or a method parameter. Type is the formatted type
// expression, e.g. "&[u8]".
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Variant is an enum variant; Data is nil for unit variants.
type Variant struct {
	Name string    `yaml:"name" json:"name"`
	Data *Document `yaml:"data,omitempty" json:"data,omitempty"`
}

// FromNode converts an AST into a Document. It returns nil for a nil node.
func FromNode(node *ast.Node) *Document {
	if node == nil {
		return nil
	}

	doc := &Document{Kind: string(node.Kind), Name: node.Name()}
	switch node.Kind {
	case ast.NodeKindTrait:
		for _, m := range node.Trait.Methods {
			method := Method{Name: m.Name, Params: fields(paramFields(m.Params))}
			if m.HasReturnType() {
				method.Returns = m.ReturnType.String()
			}
			doc.Methods = append(doc.Methods, method)
		}
	case ast.NodeKindStruct:
		doc.Fields = fields(node.Struct.Fields)
	case ast.NodeKindEnum:
		for _, v := range node.Enum.Variants {
			doc.Variants = append(doc.Variants, Variant{Name: v.Name, Data: FromNode(v.Data)})
		}
	}
	return doc
}

func paramFields(params []*ast.ParamNode) []*ast.FieldNode {
	out := make([]*ast.FieldNode, 0, len(params))
	for _, p := range params {
		out = append(out, &ast.FieldNode{Name: p.Name, Type: p.Type})
	}
	return out
}

func fields(in []*ast.FieldNode) []Field {
	var out []Field
	for _, f := range in {
		out = append(out, Field{Name: f.Name, Type: f.Type.String()})
	}
	return out
}

// YAML encodes the nodes as a YAML stream, one document per node.
func YAML(nodes ...*ast.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, node := range nodes {
		if err := enc.Encode(FromNode(node)); err != nil {
			return nil, fmt.Errorf("failed to encode %s %q: %w", node.Kind, node.Name(), err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON encodes the nodes as an indented JSON array.
func JSON(nodes ...*ast.Node) ([]byte, error) {
	docs := make([]*Document, 0, len(nodes))
	for _, node := range nodes {
		docs = append(docs, FromNode(node))
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// Decode reads a single Document from YAML or JSON.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Kind == "" {
		return nil, fmt.Errorf("failed to decode document: missing kind")
	}
	return &doc, nil
}
