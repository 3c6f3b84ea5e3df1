package snapshot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"trendfeed/internal/model"
)

// File names inside the store directory. Presentation layers read these
// directly, so they are part of the compatibility contract.
const (
	fullFile   = "trending_result.json"
	simpleFile = "trending_simple.json"
)

// FileStore is the single-slot, last-write-wins snapshot store: the latest
// full snapshot and its simplified projection live as two JSON documents
// in one directory. Each save replaces a document atomically via a temp
// file and rename, so readers never observe a half-written snapshot.
// Reads report absence instead of failing.
type FileStore struct {
	dir string
}

// NewFileStore opens (creating if needed) the store directory.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save replaces both stored documents with the given snapshot pair.
func (s *FileStore) Save(full *model.TrendingSnapshot, simple *model.SimplifiedSnapshot) error {
	if err := s.writeAtomic(fullFile, full); err != nil {
		return err
	}
	return s.writeAtomic(simpleFile, simple)
}

// Latest returns the stored full snapshot, or ok=false when none has ever
// been saved or the stored document is unreadable.
func (s *FileStore) Latest() (*model.TrendingSnapshot, bool) {
	var snap model.TrendingSnapshot
	if !s.read(fullFile, &snap) {
		return nil, false
	}
	return &snap, true
}

// LatestSimplified returns the stored simplified snapshot, or ok=false.
func (s *FileStore) LatestSimplified() (*model.SimplifiedSnapshot, bool) {
	var snap model.SimplifiedSnapshot
	if !s.read(simpleFile, &snap) {
		return nil, false
	}
	return &snap, true
}

func (s *FileStore) writeAtomic(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) read(name string, v any) bool {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("snapshot: stored document unreadable", "file", name, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		slog.Warn("snapshot: stored document corrupt", "file", name, "err", err)
		return false
	}
	return true
}
