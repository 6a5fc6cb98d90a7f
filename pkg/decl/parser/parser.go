package parser

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"mercator-hq/rustalize/pkg/decl/ast"
	declErrors "mercator-hq/rustalize/pkg/decl/errors"
	"mercator-hq/rustalize/pkg/decl/validator"
)

// Declaration headers recognized by the dispatcher, checked in this order.
const (
	headerTrait  = "pub trait"
	headerStruct = "pub struct"
	headerEnum   = "pub enum"
)

// Default limits.
const (
	DefaultMaxDepth      = 64
	DefaultMaxInputBytes = 1 << 20 // 1MB
)

// Observer is notified after every top-level parse. kind is the declaration
// kind ("" when the input was not recognized).
type Observer interface {
	ObserveParse(kind string, err error, duration time.Duration)
}

// Parser parses trait, struct, and enum declarations into ASTs.
// A Parser holds only configuration and is safe for concurrent use.
type Parser struct {
	// Configuration
	mode          SplitMode // Member list splitting (default: depth-aware)
	maxDepth      int       // Maximum type/payload nesting depth (default: 64)
	maxInputBytes int       // Maximum input size in bytes (default: 1MB)
	strictMode    bool      // Run structural validation after parsing

	logger   *slog.Logger
	observer Observer
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		mode:          SplitDepth,
		maxDepth:      DefaultMaxDepth,
		maxInputBytes: DefaultMaxInputBytes,
		strictMode:    false,
		logger:        slog.Default(),
	}
}

// WithSplitMode sets how member lists are split.
func (p *Parser) WithSplitMode(mode SplitMode) *Parser {
	p.mode = mode
	return p
}

// WithMaxDepth sets the maximum type and payload nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithMaxInputBytes sets the maximum input size.
func (p *Parser) WithMaxInputBytes(size int) *Parser {
	p.maxInputBytes = size
	return p
}

// WithStrictMode enables structural validation of every parsed declaration.
func (p *Parser) WithStrictMode(strict bool) *Parser {
	p.strictMode = strict
	return p
}

// WithLogger sets the logger used for debug output.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithObserver registers an observer notified after each parse.
func (p *Parser) WithObserver(o Observer) *Parser {
	p.observer = o
	return p
}

// Parse parses a single declaration held in memory.
func (p *Parser) Parse(text string) (*ast.Node, error) {
	return p.ParseSource("", text)
}

// ParseSource parses a single declaration. file is only used for error
// locations.
func (p *Parser) ParseSource(file, text string) (*ast.Node, error) {
	if len(text) > p.maxInputBytes {
		return nil, &declErrors.Error{
			Type:     declErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Input size %d exceeds maximum %d bytes", len(text), p.maxInputBytes),
			Location: ast.Location{File: file},
		}
	}

	st := p.newState(file, text)
	return p.finish(st, span{text: text})
}

// ParseAll parses every top-level declaration in src. Declarations are
// separated at brace depth zero: each one ends at the '}' that closes its body
// or where the next declaration header starts. It stops at the first error.
func (p *Parser) ParseAll(file, src string) ([]*ast.Node, error) {
	if len(src) > p.maxInputBytes {
		return nil, &declErrors.Error{
			Type:     declErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Input size %d exceeds maximum %d bytes", len(src), p.maxInputBytes),
			Location: ast.Location{File: file},
		}
	}

	st := p.newState(file, src)
	var nodes []*ast.Node
	for _, chunk := range declarations(span{text: src}) {
		node, err := p.finish(st, chunk)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ParseFile reads the file at path and parses every declaration in it.
func (p *Parser) ParseFile(path string) ([]*ast.Node, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &declErrors.Error{
			Type:     declErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	if fileInfo.Size() > int64(p.maxInputBytes) {
		return nil, &declErrors.Error{
			Type:     declErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxInputBytes),
			Location: ast.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &declErrors.Error{
			Type:     declErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	return p.ParseAll(path, string(data))
}

// finish runs one top-level parse and applies strict validation, context,
// logging, and observation.
func (p *Parser) finish(st *state, s span) (*ast.Node, error) {
	start := time.Now()
	node, err := st.parse(s)
	if err == nil && p.strictMode {
		err = validator.NewValidator().Validate(node)
	}
	duration := time.Since(start)

	kind := ""
	if node != nil {
		kind = string(node.Kind)
	}
	if p.observer != nil {
		p.observer.ObserveParse(kind, err, duration)
	}

	if err != nil {
		p.logger.Debug("Declaration parse failed",
			"file", st.file,
			"error_type", string(declErrors.TypeOf(err)),
		)
		return nil, declErrors.AddContextToError(err, st.src)
	}

	p.logger.Debug("Declaration parsed",
		"file", st.file,
		"kind", kind,
		"name", node.Name(),
		"duration_us", duration.Microseconds(),
	)
	return node, nil
}

// declarations splits src into top-level declaration chunks.
func declarations(src span) []span {
	var chunks []span
	start := -1
	depth := 0
	for i := 0; i < len(src.text); i++ {
		c := src.text[i]
		if start < 0 {
			if unicode.IsSpace(rune(c)) {
				continue
			}
			start = i
		} else if depth == 0 && startsDeclaration(src.text, i) {
			// A bodiless declaration ends where the next one begins.
			chunks = append(chunks, src.sub(start, i))
			start = i
		}
		switch c {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				chunks = append(chunks, src.sub(start, i+1))
				start = -1
			}
		}
	}
	if start >= 0 {
		chunks = append(chunks, src.from(start))
	}
	return chunks
}

// startsDeclaration reports whether a declaration header begins at text[i].
func startsDeclaration(text string, i int) bool {
	if text[i] != 'p' || (i > 0 && isIdentByte(text[i-1])) {
		return false
	}
	rest := text[i:]
	return hasHeader(rest, headerTrait) || hasHeader(rest, headerStruct) || hasHeader(rest, headerEnum)
}

func isIdentByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// state carries one parse call's source and options. It is never shared
// between calls.
type state struct {
	file     string
	src      string
	mode     SplitMode
	maxDepth int
}

func (p *Parser) newState(file, src string) *state {
	mode := p.mode
	if !mode.IsValid() {
		mode = SplitDepth
	}
	return &state{
		file:     file,
		src:      src,
		mode:     mode,
		maxDepth: p.maxDepth,
	}
}

// parse is the dispatcher: it routes on the declaration header.
func (st *state) parse(s span) (*ast.Node, error) {
	s = s.trim()

	switch {
	case hasHeader(s.text, headerTrait):
		return st.parseTrait(s)
	case hasHeader(s.text, headerStruct):
		return st.parseStruct(s)
	case hasHeader(s.text, headerEnum):
		return st.parseEnum(s)
	}

	err := st.fail(declErrors.ErrorTypeUnsupportedConstruct, s, "Unsupported or invalid declaration")
	err.Suggestion = declErrors.SuggestDeclaration(s.text)
	return nil, err
}

// hasHeader reports whether text is header, alone or followed by whitespace.
func hasHeader(text, header string) bool {
	if !strings.HasPrefix(text, header) {
		return false
	}
	return len(text) == len(header) || unicode.IsSpace(rune(text[len(header)]))
}

// fail builds an error located at the start of s.
func (st *state) fail(errType declErrors.ErrorType, s span, format string, args ...any) *declErrors.Error {
	return &declErrors.Error{
		Type:     errType,
		Message:  fmt.Sprintf(format, args...),
		Fragment: s.text,
		Location: ast.LocationAt(st.file, st.src, s.off),
	}
}

// shorten truncates a fragment for use in error messages.
func shorten(text string) string {
	const max = 40
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}

var defaultParser = NewParser()

// Parse parses a single declaration with the default parser.
func Parse(text string) (*ast.Node, error) {
	return defaultParser.Parse(text)
}
