// Package store implements the flat-file persistence backing both entity
// types: each store is a single JSON document holding an array of records,
// read and rewritten wholesale on every operation.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists records of type T as one JSON array on disk. The key
// function extracts a record's id for Upsert and Delete matching.
//
// There is no locking: two writers each load a snapshot, rewrite the whole
// file, and the later Save wins.
type Store[T any] struct {
	path string
	key  func(T) string
}

func New[T any](path string, key func(T) string) *Store[T] {
	return &Store[T]{path: path, key: key}
}

// Path returns the location of the backing document.
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads every record from the backing document. A missing or
// unparsable file yields an empty slice; parse failures are not surfaced.
func (s *Store[T]) Load() []T {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// Save serializes all records, overwriting the backing document. The
// parent directory is created when missing.
func (s *Store[T]) Save(records []T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

// Upsert replaces the first record whose key matches, or appends when none
// does, and rewrites the file.
func (s *Store[T]) Upsert(record T) error {
	records := s.Load()

	id := s.key(record)
	found := false
	for i := range records {
		if s.key(records[i]) == id {
			records[i] = record
			found = true
			break
		}
	}
	if !found {
		records = append(records, record)
	}

	return s.Save(records)
}

// Delete removes every record whose key matches id and reports whether
// anything was removed.
func (s *Store[T]) Delete(id string) (bool, error) {
	records := s.Load()

	kept := records[:0]
	for _, record := range records {
		if s.key(record) != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}

	if err := s.Save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// FindBy returns every record matching the predicate, in file order.
func (s *Store[T]) FindBy(pred func(T) bool) []T {
	var matches []T
	for _, record := range s.Load() {
		if pred(record) {
			matches = append(matches, record)
		}
	}
	return matches
}

// First returns the first record matching the predicate, in file order.
func (s *Store[T]) First(pred func(T) bool) (T, bool) {
	for _, record := range s.Load() {
		if pred(record) {
			return record, true
		}
	}
	var zero T
	return zero, false
}
