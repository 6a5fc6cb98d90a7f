package logging

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// ParseIDKey is the context key for the ID of one parse or index run.
	ParseIDKey contextKey = "parse_id"

	// SourceKey is the context key for the file or label being parsed.
	SourceKey contextKey = "source"

	// CommandKey is the context key for the CLI command name.
	CommandKey contextKey = "command"
)

// NewParseID returns a fresh random parse ID.
func NewParseID() string {
	return uuid.NewString()
}

// WithParseID adds a parse ID to the context.
func WithParseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ParseIDKey, id)
}

// GetParseID retrieves the parse ID from the context.
func GetParseID(ctx context.Context) string {
	if id, ok := ctx.Value(ParseIDKey).(string); ok {
		return id
	}
	return ""
}

// WithSource adds a source name to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the source name from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithCommand adds a command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the command name from the context.
func GetCommand(ctx context.Context) string {
	if command, ok := ctx.Value(CommandKey).(string); ok {
		return command
	}
	return ""
}

// extractContextFields returns key-value pairs for the fields set in ctx.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if command := GetCommand(ctx); command != "" {
		fields = append(fields, "command", command)
	}
	if id := GetParseID(ctx); id != "" {
		fields = append(fields, "parse_id", id)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}

	return fields
}

// ContextLogger is a logger that automatically includes context fields.
type ContextLogger struct {
	logger *Logger
	ctx    context.Context
}

// NewContextLogger creates a logger that automatically includes context fields.
func NewContextLogger(logger *Logger, ctx context.Context) *ContextLogger {
	return &ContextLogger{
		logger: logger,
		ctx:    ctx,
	}
}

// Debug logs a debug message with context fields.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.logger.DebugContext(cl.ctx, msg, args...)
}

// Info logs an info message with context fields.
func (cl *ContextLogger) Info(msg string, args ...any) {
	cl.logger.InfoContext(cl.ctx, msg, args...)
}

// Warn logs a warning message with context fields.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.logger.WarnContext(cl.ctx, msg, args...)
}

// Error logs an error message with context fields.
func (cl *ContextLogger) Error(msg string, args ...any) {
	cl.logger.ErrorContext(cl.ctx, msg, args...)
}

// With creates a new context logger with additional fields.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{
		logger: cl.logger.With(args...),
		ctx:    cl.ctx,
	}
}
