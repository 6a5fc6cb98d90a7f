package ast

import "fmt"

// Location represents the source location of a fragment in the parsed text.
// It enables precise error reporting with file, line, and column information.
type Location struct {
	File   string // Path to the source file (empty for in-memory input)
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
	Offset int    // Byte offset into the source (0-based)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column"
func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<input>"
	}
	if l.Line == 0 {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// IsValid returns true if the location has line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// LocationAt computes the line and column of a byte offset within src.
// Offsets past the end of src are clamped to the end.
func LocationAt(file, src string, offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}

	line, col := 1, 1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}

	return Location{
		File:   file,
		Line:   line,
		Column: col,
		Offset: offset,
	}
}
