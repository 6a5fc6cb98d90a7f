package decl

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"mercator-hq/rustalize/pkg/config"
	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
)

func TestParse_Scenarios(t *testing.T) {
	t.Run("unit enum", func(t *testing.T) {
		node, err := Parse("pub enum Color { Red, Green, Blue, }")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !node.IsEnum() || node.Enum.Name != "Color" {
			t.Fatalf("got %+v, want enum Color", node)
		}
		want := []string{"Red", "Green", "Blue"}
		if len(node.Enum.Variants) != len(want) {
			t.Fatalf("got %d variants, want %d", len(node.Enum.Variants), len(want))
		}
		for i, v := range node.Enum.Variants {
			if v.Name != want[i] || !v.IsUnit() {
				t.Errorf("variant %d = %+v, want unit %q", i, v, want[i])
			}
		}
	})

	t.Run("struct", func(t *testing.T) {
		node, err := Parse("pub struct Point { x: f64, y: f64, label: String, }")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		want := []struct{ name, typ string }{{"x", "f64"}, {"y", "f64"}, {"label", "String"}}
		if !node.IsStruct() || len(node.Struct.Fields) != len(want) {
			t.Fatalf("got %+v, want struct with %d fields", node, len(want))
		}
		for i, f := range node.Struct.Fields {
			if f.Name != want[i].name || !f.Type.Equal(ast.Simple(want[i].typ)) {
				t.Errorf("field %d = %s: %s, want %s: %s", i, f.Name, f.Type, want[i].name, want[i].typ)
			}
		}
	})

	t.Run("trait", func(t *testing.T) {
		node, err := Parse("pub trait Visualizer { fn visualize(&self, data: &[u8]); fn process(&self, input: &str) -> String; }")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !node.IsTrait() || len(node.Trait.Methods) != 2 {
			t.Fatalf("got %+v, want trait with 2 methods", node)
		}
		visualize, process := node.Trait.Methods[0], node.Trait.Methods[1]
		if visualize.HasReturnType() {
			t.Errorf("visualize return type = %s, want none", visualize.ReturnType)
		}
		if !visualize.Params[1].Type.Equal(ast.Reference(ast.Slice(ast.Simple("u8")))) {
			t.Errorf("data type = %s, want &[u8]", visualize.Params[1].Type)
		}
		if !process.ReturnType.Equal(ast.Simple("String")) {
			t.Errorf("process return type = %s, want String", process.ReturnType)
		}
	})

	t.Run("standalone function", func(t *testing.T) {
		node, err := Parse("fn standalone_function() {}")
		if !declErrors.IsType(err, declErrors.ErrorTypeUnsupportedConstruct) {
			t.Errorf("Parse() error = %v, want unsupported_construct", err)
		}
		if node != nil {
			t.Errorf("Parse() node = %+v, want nil", node)
		}
	})

	t.Run("field without colon", func(t *testing.T) {
		node, err := Parse("pub struct Point { x f64, y: f64 }")
		if !declErrors.IsType(err, declErrors.ErrorTypeInvalidFieldFormat) {
			t.Errorf("Parse() error = %v, want invalid_field_format", err)
		}
		if node != nil {
			t.Errorf("Parse() node = %+v, want nil", node)
		}
	})
}

func TestParseAndValidate(t *testing.T) {
	node, err := ParseAndValidate("pub struct Point { x: f64, y: f64 }")
	if err != nil || node == nil {
		t.Fatalf("ParseAndValidate() = %v, %v", node, err)
	}

	node, err = ParseAndValidate("pub struct Point { x: f64, x: f64 }")
	var list *declErrors.ErrorList
	if !stderrors.As(err, &list) {
		t.Fatalf("ParseAndValidate() error = %T %v, want *ErrorList", err, err)
	}
	if !list.HasErrorType(declErrors.ErrorTypeValidation) {
		t.Errorf("expected a validation error, got %v", list)
	}
	if node == nil {
		t.Error("expected the parsed node alongside validation errors")
	}

	_, err = ParseAndValidate("pub struct Point { x f64 }")
	if !declErrors.IsType(err, declErrors.ErrorTypeInvalidFieldFormat) {
		t.Errorf("ParseAndValidate() error = %v, want invalid_field_format", err)
	}
}

func TestParseAll(t *testing.T) {
	src := "pub struct A { x: i32 }\n\npub enum B { One, Two }\n"
	nodes, err := ParseAll("ab.rs", src)
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}
	if len(nodes) != 2 || nodes[0].Name() != "A" || nodes[1].Name() != "B" {
		t.Errorf("ParseAll() = %v, want [A B]", nodes)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.rs")
	if err := os.WriteFile(path, []byte("pub trait Shape { fn area(&self) -> f64; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	nodes, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(nodes) != 1 || !nodes[0].IsTrait() {
		t.Errorf("ParseFile() = %v, want one trait", nodes)
	}
}

func TestNewParser(t *testing.T) {
	nested := "pub struct Cache { entries: HashMap<String, Vec<u8>> }"

	tests := []struct {
		name    string
		cfg     config.ParserConfig
		input   string
		wantErr declErrors.ErrorType
	}{
		{
			name:  "defaults",
			cfg:   config.NewDefaultConfig().Parser,
			input: nested,
		},
		{
			name:    "naive split breaks nested generics",
			cfg:     config.ParserConfig{SplitMode: "naive"},
			input:   nested,
			wantErr: declErrors.ErrorTypeInvalidFieldFormat,
		},
		{
			name:    "max depth",
			cfg:     config.ParserConfig{MaxDepth: 2},
			input:   "pub struct S { a: Vec<Vec<Vec<u8>>> }",
			wantErr: declErrors.ErrorTypeDepthExceeded,
		},
		{
			name:    "max input bytes",
			cfg:     config.ParserConfig{MaxInputBytes: 10},
			input:   nested,
			wantErr: declErrors.ErrorTypeIO,
		},
		{
			name:  "unknown split mode keeps default",
			cfg:   config.ParserConfig{SplitMode: "loose"},
			input: nested,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(tt.cfg, nil).Parse(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Parse() error = %v", err)
				}
				return
			}
			if !declErrors.IsType(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestNewParser_Strict(t *testing.T) {
	p := NewParser(config.ParserConfig{Strict: true}, nil)

	_, err := p.Parse("pub enum E { A, A }")
	var list *declErrors.ErrorList
	if !stderrors.As(err, &list) {
		t.Errorf("Parse() error = %T %v, want *ErrorList", err, err)
	}
}

func TestRender(t *testing.T) {
	node, err := Parse("pub struct Point { x: f64, y: f64 }")
	if err != nil {
		t.Fatal(err)
	}

	want := "Struct: Point\n├── Field: x: f64\n└── Field: y: f64\n"

	var buf bytes.Buffer
	if err := Render(&buf, node); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
	if got := Tree(node); got != want {
		t.Errorf("Tree() = %q, want %q", got, want)
	}
}
