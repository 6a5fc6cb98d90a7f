// Package logging provides structured logging for rustalize commands.
//
// The package wraps log/slog with:
//   - JSON, text, and console output formats
//   - Context-aware logging that attaches the parse ID, source file, and
//     command name stored in a context.Context
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx := logging.WithParseID(ctx, logging.NewParseID())
//	ctx = logging.WithSource(ctx, "shapes.rs")
//	logger.InfoContext(ctx, "parsed declarations", "count", 3)
//
// Logs are written to stderr by default so that rendered output on stdout
// can be piped.
//
// The parser accepts a *slog.Logger; pass Logger.Slog() to share handlers.
package logging
