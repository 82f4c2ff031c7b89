package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/artart33/travel-logger/internal/domain"
)

// FileStore persists the snapshot as a single pretty-printed JSON file.
// The file holds the same array-of-entries shape as the JSON export, so a
// snapshot file is itself a valid import payload.
type FileStore struct {
	path string
}

// NewFileStore constructs a FileStore writing to path.
// The parent directory must exist; the file itself need not.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the snapshot file.
// A missing file loads as an empty collection.
func (s *FileStore) Load(_ context.Context) ([]domain.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("snapshot.FileStore.Load: %w: %w", domain.ErrStorage, err)
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("snapshot.FileStore.Load: decode %s: %w: %w", s.path, domain.ErrStorage, err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nil
}

// Save atomically replaces the snapshot file: the new contents are written to
// a temp file in the same directory, then renamed over the old file, so a
// crash mid-write never leaves a truncated snapshot behind.
func (s *FileStore) Save(_ context.Context, entries []domain.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot.FileStore.Save: encode: %w: %w", domain.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot.FileStore.Save: %w: %w", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("snapshot.FileStore.Save: write: %w: %w", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot.FileStore.Save: close: %w: %w", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("snapshot.FileStore.Save: rename: %w: %w", domain.ErrStorage, err)
	}
	return nil
}

// Available probes writability by creating and removing a sentinel file next
// to the snapshot.
func (s *FileStore) Available(_ context.Context) bool {
	probe := s.path + ".probe"
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
