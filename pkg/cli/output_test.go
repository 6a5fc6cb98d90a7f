package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"gopkg.in/yaml.v3"
)

type lines []string

func (l lines) Lines() []string { return l }

type result struct {
	Name    string `json:"name" yaml:"name"`
	Members int    `json:"members" yaml:"members"`
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"string", "test message", "test message\n"},
		{"liner", lines{"Struct: Point", "└── Field: x: f64"}, "Struct: Point\n└── Field: x: f64\n"},
		{"empty liner", lines{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{}

			output, err := formatter.Format(tt.data)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(output) != tt.want {
				t.Errorf("Format() = %q, want %q", string(output), tt.want)
			}

			buf := &bytes.Buffer{}
			if err := formatter.FormatTo(buf, tt.data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("FormatTo() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	for _, indent := range []bool{false, true} {
		formatter := &JSONFormatter{Indent: indent}
		output, err := formatter.Format(result{Name: "Point", Members: 2})
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}

		var got result
		if err := json.Unmarshal(output, &got); err != nil {
			t.Fatalf("Format() produced invalid JSON: %v", err)
		}
		if got.Name != "Point" || got.Members != 2 {
			t.Errorf("Format() = %+v, want Point/2", got)
		}
	}
}

func TestYAMLFormatter(t *testing.T) {
	formatter := &YAMLFormatter{}
	buf := &bytes.Buffer{}

	if err := formatter.FormatTo(buf, []result{{Name: "Color", Members: 3}}); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	want := "- name: Color\n  members: 3\n"
	if buf.String() != want {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), want)
	}

	var got []result
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("FormatTo() produced invalid YAML: %v", err)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, "*cli.TextFormatter"},
		{FormatJSON, "*cli.JSONFormatter"},
		{FormatYAML, "*cli.YAMLFormatter"},
		{"unknown", "*cli.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got := fmt.Sprintf("%T", NewFormatter(tt.format))
			if got != tt.want {
				t.Errorf("NewFormatter(%q) type = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"text", FormatText, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input, FormatText, FormatJSON, FormatYAML)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}
