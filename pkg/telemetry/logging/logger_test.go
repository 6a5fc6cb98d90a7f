package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"mercator-hq/rustalize/pkg/config"
)

func newTestLogger(t *testing.T, level, format string) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: level, Format: format, Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger, buf
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "valid JSON config", config: Config{Level: "info", Format: "json"}},
		{name: "valid text config", config: Config{Level: "debug", Format: "text"}},
		{name: "valid console config", config: Config{Level: "warn", Format: "console"}},
		{name: "empty values use defaults", config: Config{}},
		{name: "invalid log level", config: Config{Level: "invalid", Format: "json"}, wantErr: true},
		{name: "invalid format", config: Config{Level: "info", Format: "invalid"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.LoggingConfig{Level: "debug", Format: "json", AddSource: true})
	if cfg.Level != "debug" || cfg.Format != "json" || !cfg.AddSource {
		t.Errorf("unexpected conversion: %+v", cfg)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{"debug level logs debug", "debug", func(l *Logger, msg string) { l.Debug(msg) }, true},
		{"info level filters debug", "info", func(l *Logger, msg string) { l.Debug(msg) }, false},
		{"info level logs info", "info", func(l *Logger, msg string) { l.Info(msg) }, true},
		{"warn level filters info", "warn", func(l *Logger, msg string) { l.Info(msg) }, false},
		{"warn level logs warn", "warn", func(l *Logger, msg string) { l.Warn(msg) }, true},
		{"error level filters warn", "error", func(l *Logger, msg string) { l.Warn(msg) }, false},
		{"error level logs error", "error", func(l *Logger, msg string) { l.Error(msg) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newTestLogger(t, tt.logLevel, "json")
			tt.logMethod(logger, "test message")

			if got := strings.Contains(buf.String(), "test message"); got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output: %s)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "json")

	logger.Info("parsed declarations", "count", 3, "kind", "Trait", "strict", true)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "parsed declarations" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["count"] != float64(3) {
		t.Errorf("count = %v", record["count"])
	}
	if record["kind"] != "Trait" {
		t.Errorf("kind = %v", record["kind"])
	}
	if record["strict"] != true {
		t.Errorf("strict = %v", record["strict"])
	}
}

func TestLogger_With(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "json")

	logger.With("source", "shapes.rs").Info("test message")

	output := buf.String()
	for _, field := range []string{"source", "shapes.rs", "test message"} {
		if !strings.Contains(output, field) {
			t.Errorf("Expected field %q not found in output: %s", field, output)
		}
	}
}

func TestLogger_WithContext(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "json")

	ctx := WithParseID(context.Background(), "parse-456")
	ctx = WithSource(ctx, "shapes.rs")
	logger.WithContext(ctx).Info("test message")

	output := buf.String()
	for _, field := range []string{`"parse_id":"parse-456"`, `"source":"shapes.rs"`} {
		if !strings.Contains(output, field) {
			t.Errorf("Expected field %q not found in output: %s", field, output)
		}
	}
}

func TestLogger_WithContext_Empty(t *testing.T) {
	logger, _ := newTestLogger(t, "info", "json")
	if logger.WithContext(context.Background()) != logger {
		t.Error("expected the same logger when context carries no fields")
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	logger, buf := newTestLogger(t, "debug", "json")
	ctx := WithCommand(context.Background(), "parse")

	logger.DebugContext(ctx, "debug")
	logger.InfoContext(ctx, "info")
	logger.WarnContext(ctx, "warn")
	logger.ErrorContext(ctx, "error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d: %s", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"command":"parse"`) {
			t.Errorf("expected command field in %s", line)
		}
	}
}

func TestLogger_Formats(t *testing.T) {
	tests := []struct {
		format   string
		contains string
		absent   string
	}{
		{format: "json", contains: `"msg":"hello"`},
		{format: "text", contains: "msg=hello", absent: ""},
		{format: "console", contains: "msg=hello", absent: "time="},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			logger, buf := newTestLogger(t, "info", tt.format)
			logger.Info("hello")

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected %q in output: %s", tt.contains, output)
			}
			if tt.absent != "" && strings.Contains(output, tt.absent) {
				t.Errorf("did not expect %q in output: %s", tt.absent, output)
			}
		})
	}
}

func TestLogger_AddSource(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", AddSource: true, Writer: buf})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Info("with source")
	if !strings.Contains(buf.String(), `"source":{`) {
		t.Errorf("expected source location in output: %s", buf.String())
	}
}

func TestLogger_Slog(t *testing.T) {
	logger, buf := newTestLogger(t, "info", "json")

	logger.Slog().Info("via slog", "key", "value")
	if !strings.Contains(buf.String(), "via slog") {
		t.Errorf("expected slog output to share the handler: %s", buf.String())
	}
	if logger.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v", logger.Level())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	if logger.Slog().Enabled(context.Background(), slog.LevelError) {
		t.Error("expected discard logger to be disabled at error level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    LogFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"TEXT", FormatText, false},
		{"", FormatText, false},
		{"console", FormatConsole, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func BenchmarkLogger_Info_Enabled(b *testing.B) {
	logger, _ := New(Config{Level: "info", Format: "json", Writer: &bytes.Buffer{}})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("parsed", "kind", "Trait", "members", 3)
	}
}

func BenchmarkLogger_Debug_Disabled(b *testing.B) {
	logger, _ := New(Config{Level: "info", Format: "json", Writer: &bytes.Buffer{}})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("parsed", "kind", "Trait", "members", 3)
	}
}
