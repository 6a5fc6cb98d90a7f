package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore implements Store with in-memory maps. It backs the "memory"
// driver and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// ReplaceFile deletes all records of file and inserts records.
func (s *MemoryStore) ReplaceFile(ctx context.Context, file string, records []*Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageError("memory", "replace", ErrClosed)
	}

	for id, r := range s.records {
		if r.File == file {
			delete(s.records, id)
		}
	}
	for _, r := range records {
		recordCopy := *r
		recordCopy.File = file
		s.records[r.ID] = &recordCopy
	}
	return nil
}

// DeleteFile deletes all records of file.
func (s *MemoryStore) DeleteFile(ctx context.Context, file string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, NewStorageError("memory", "delete", ErrClosed)
	}

	var n int64
	for id, r := range s.records {
		if r.File == file {
			delete(s.records, id)
			n++
		}
	}
	return n, nil
}

// Get returns the record with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("memory", "get", ErrClosed)
	}

	r, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	recordCopy := *r
	return &recordCopy, nil
}

// List returns records matching q ordered by file and name.
func (s *MemoryStore) List(ctx context.Context, q *Query) ([]*Record, error) {
	if q == nil {
		q = &Query{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("memory", "list", ErrClosed)
	}

	results := s.match(q)
	sort.Slice(results, func(i, j int) bool {
		if results[i].File != results[j].File {
			return results[i].File < results[j].File
		}
		if results[i].Name != results[j].Name {
			return results[i].Name < results[j].Name
		}
		return results[i].ID < results[j].ID
	})

	start := q.Offset
	if start > len(results) {
		return []*Record{}, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}
	return results[start:end], nil
}

// Count returns the number of records matching q.
func (s *MemoryStore) Count(ctx context.Context, q *Query) (int64, error) {
	if q == nil {
		q = &Query{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, NewStorageError("memory", "count", ErrClosed)
	}
	return int64(len(s.match(q))), nil
}

// Files returns the distinct files with records, sorted.
func (s *MemoryStore) Files(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageError("memory", "files", ErrClosed)
	}

	seen := make(map[string]struct{})
	var files []string
	for _, r := range s.records {
		if _, ok := seen[r.File]; !ok {
			seen[r.File] = struct{}{}
			files = append(files, r.File)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Ping reports whether the store is open.
func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return NewStorageError("memory", "ping", ErrClosed)
	}
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// match returns copies of the records matching q. Callers hold s.mu.
func (s *MemoryStore) match(q *Query) []*Record {
	var results []*Record
	for _, r := range s.records {
		if q.Kind != "" && r.Kind != q.Kind {
			continue
		}
		if q.File != "" && r.File != q.File {
			continue
		}
		if q.Name != "" && !strings.Contains(r.Name, q.Name) {
			continue
		}
		recordCopy := *r
		results = append(results, &recordCopy)
	}
	return results
}
