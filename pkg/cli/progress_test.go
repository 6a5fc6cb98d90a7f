package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSimpleProgressBasic(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(4)
	progress.Update(2)
	progress.Finish()

	output := buf.String()
	if !strings.Contains(output, "Indexing:") {
		t.Errorf("output = %q, want it to contain 'Indexing:'", output)
	}
	if !strings.Contains(output, "(4/4)") {
		t.Errorf("output = %q, want final count (4/4)", output)
	}
}

func TestLabeledProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewLabeledProgress(buf, "Parsing")

	progress.Start(2)
	progress.Update(1)

	if !strings.HasPrefix(buf.String(), "\rParsing: [") {
		t.Errorf("output = %q, want Parsing label", buf.String())
	}
}

func TestSimpleProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(0)
	progress.Update(0)
	progress.Finish()

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing for an empty run", buf.String())
	}
}

func TestSimpleProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(10)
	progress.Error(fmt.Errorf("store closed"))

	output := buf.String()
	if !strings.Contains(output, "Error: store closed") {
		t.Errorf("output = %q, want error message", output)
	}
}

func TestNewTerminalProgress(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, ok := NewTerminalProgress(f).(NoopProgress); !ok {
		t.Error("NewTerminalProgress(file) should be a no-op reporter")
	}
	if _, ok := NewTerminalProgress(nil).(NoopProgress); !ok {
		t.Error("NewTerminalProgress(nil) should be a no-op reporter")
	}
}

func TestColorEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", false},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := ColorEnabled(tt.mode, f); got != tt.want {
				t.Errorf("ColorEnabled(%q) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}
