package export

import (
	"encoding/json"
	"strings"
	"testing"

	"mercator-hq/rustalize/pkg/decl/parser"
)

func TestFromNode_Trait(t *testing.T) {
	node, err := parser.Parse("pub trait Visualizer { fn visualize(&self, data: &[u8]); fn process(&self, input: &str) -> String; }")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	doc := FromNode(node)
	if doc.Kind != "trait" || doc.Name != "Visualizer" {
		t.Errorf("doc = %s %q, want trait Visualizer", doc.Kind, doc.Name)
	}
	if len(doc.Methods) != 2 {
		t.Fatalf("len(Methods) = %d, want 2", len(doc.Methods))
	}
	if got := doc.Methods[0].Params[1]; got.Name != "data" || got.Type != "&[u8]" {
		t.Errorf("Params[1] = %+v, want data: &[u8]", got)
	}
	if doc.Methods[0].Returns != "" {
		t.Errorf("Methods[0].Returns = %q, want empty", doc.Methods[0].Returns)
	}
	if doc.Methods[1].Returns != "String" {
		t.Errorf("Methods[1].Returns = %q, want String", doc.Methods[1].Returns)
	}
}

func TestFromNode_EnumPayload(t *testing.T) {
	node, err := parser.Parse("pub enum Message { Quit, Write(String) }")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	doc := FromNode(node)
	if doc.Variants[0].Data != nil {
		t.Error("unit variant should have no data")
	}
	data := doc.Variants[1].Data
	if data == nil || data.Kind != "struct" || data.Name != "" {
		t.Fatalf("Write data = %+v, want anonymous struct", data)
	}
	if len(data.Fields) != 1 || data.Fields[0].Name != "0" || data.Fields[0].Type != "String" {
		t.Errorf("Write fields = %+v", data.Fields)
	}

	if FromNode(nil) != nil {
		t.Error("FromNode(nil) should be nil")
	}
}

func TestYAML(t *testing.T) {
	a, _ := parser.Parse("pub struct Point { x: f64 }")
	b, _ := parser.Parse("pub enum Color { Red }")

	data, err := YAML(a, b)
	if err != nil {
		t.Fatalf("YAML() failed: %v", err)
	}

	got := string(data)
	for _, want := range []string{
		"kind: struct\nname: Point\nfields:\n  - name: x\n    type: f64\n",
		"---\nkind: enum\nname: Color\nvariants:\n  - name: Red\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("YAML() = %q, missing %q", got, want)
		}
	}

	doc, err := Decode([]byte("kind: struct\nname: Point\nfields:\n  - name: x\n    type: f64\n"))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if doc.Name != "Point" || doc.Fields[0].Type != "f64" {
		t.Errorf("Decode() = %+v", doc)
	}
}

func TestJSON(t *testing.T) {
	node, _ := parser.Parse("pub struct Point { x: f64, y: f64 }")

	data, err := JSON(node)
	if err != nil {
		t.Fatalf("JSON() failed: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}
	if len(docs) != 1 || docs[0]["name"] != "Point" {
		t.Errorf("JSON() = %s", data)
	}
	if _, ok := docs[0]["methods"]; ok {
		t.Error("empty methods should be omitted")
	}

	doc, err := Decode(data[strings.Index(string(data), "{") : strings.LastIndex(string(data), "}")+1])
	if err != nil {
		t.Fatalf("Decode(JSON) failed: %v", err)
	}
	if len(doc.Fields) != 2 {
		t.Errorf("Decode(JSON).Fields = %+v", doc.Fields)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("name: nokind")); err == nil {
		t.Error("Decode() without kind should fail")
	}
	if _, err := Decode([]byte("{{")); err == nil {
		t.Error("Decode() of malformed input should fail")
	}
}
