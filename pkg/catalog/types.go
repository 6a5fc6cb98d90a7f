package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mercator-hq/rustalize/pkg/decl/ast"
	"mercator-hq/rustalize/pkg/decl/export"
)

// Record is one declaration stored in the catalog.
type Record struct {
	// ID is a random UUID assigned when the record is created.
	ID string `json:"id" yaml:"id"`

	// Kind is the declaration kind: "trait", "struct", or "enum".
	Kind string `json:"kind" yaml:"kind"`

	// Name is the declaration name.
	Name string `json:"name" yaml:"name"`

	// File is the source file the declaration was parsed from.
	File string `json:"file" yaml:"file"`

	// Members is the number of methods, fields, or variants.
	Members int `json:"members" yaml:"members"`

	// Hash is the SHA-256 of Document, used to detect changes between runs.
	Hash string `json:"hash" yaml:"hash"`

	// Document is the YAML export of the declaration.
	Document string `json:"document" yaml:"document"`

	// IndexedAt is when the record was written.
	IndexedAt time.Time `json:"indexed_at" yaml:"indexed_at"`
}

// NewRecord builds a record for node parsed from file.
func NewRecord(file string, node *ast.Node) (*Record, error) {
	doc, err := export.YAML(node)
	if err != nil {
		return nil, fmt.Errorf("failed to export %s %q: %w", node.Kind, node.Name(), err)
	}

	sum := sha256.Sum256(doc)

	return &Record{
		ID:        uuid.NewString(),
		Kind:      string(node.Kind),
		Name:      node.Name(),
		File:      file,
		Members:   members(node),
		Hash:      hex.EncodeToString(sum[:]),
		Document:  string(doc),
		IndexedAt: time.Now().UTC(),
	}, nil
}

func members(node *ast.Node) int {
	switch node.Kind {
	case ast.NodeKindTrait:
		return len(node.Trait.Methods)
	case ast.NodeKindStruct:
		return len(node.Struct.Fields)
	case ast.NodeKindEnum:
		return len(node.Enum.Variants)
	}
	return 0
}

// Query filters catalog records. Zero-valued fields match everything.
type Query struct {
	// Kind matches the declaration kind exactly.
	Kind string

	// Name matches records whose name contains this substring.
	Name string

	// File matches the source file exactly.
	File string

	// Limit caps the number of results. Default: 100
	Limit int

	// Offset skips this many results.
	Offset int
}

// DefaultQueryLimit is the result cap applied when Query.Limit is zero.
const DefaultQueryLimit = 100

// Store persists catalog records.
//
// Records are written per file: ReplaceFile swaps every record of one file
// in a single step so readers never observe a half-indexed file.
type Store interface {
	// ReplaceFile deletes all records of file and inserts records.
	ReplaceFile(ctx context.Context, file string, records []*Record) error

	// DeleteFile deletes all records of file and returns how many were removed.
	DeleteFile(ctx context.Context, file string) (int64, error)

	// Get returns the record with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records matching q ordered by file and name.
	List(ctx context.Context, q *Query) ([]*Record, error)

	// Count returns the number of records matching q, ignoring Limit and Offset.
	Count(ctx context.Context, q *Query) (int64, error)

	// Files returns the distinct source files with at least one record.
	Files(ctx context.Context) ([]string, error)

	// Ping reports whether the store is usable.
	Ping(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}
