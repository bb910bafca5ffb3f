// Package localstore provides durable client-side key/value storage,
// the equivalent of a browser's localStorage. Each key maps to a JSON
// file under a fixed directory. Reads of missing or malformed data
// report absence rather than failing, so corrupted state on disk can
// never crash the client.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Store persists JSON values under string keys.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// Open creates the backing directory if needed and returns a store
// bound to it.
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger.With().Str("component", "localstore").Logger(),
	}, nil
}

// Get unmarshals the value stored under key into v. The second return
// is false when the key is absent or its contents cannot be decoded.
func (s *Store) Get(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		// Malformed persisted state reads as absent.
		s.logger.Warn().Str("key", key).Err(err).Msg("discarding malformed persisted state")
		return false, nil
	}

	return true, nil
}

// Put marshals v and persists it under key. The write is atomic: a
// temp file is written and renamed over the destination, so a crash
// mid-write never leaves a half-written value behind.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	dest := s.path(key)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}

	return nil
}

// Delete removes the value stored under key. Absent keys are a no-op.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// DeleteAll removes every listed key, continuing past individual
// failures and returning the first error encountered.
func (s *Store) DeleteAll(keys ...string) error {
	var first error
	for _, key := range keys {
		if err := s.Delete(key); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// path maps a key to its backing file. Keys may contain characters
// that are not filename-safe (e.g. "cart:u42"), so they are flattened.
func (s *Store) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(s.dir, safe+".json")
}
