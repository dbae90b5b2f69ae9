package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Slot is a single named location in durable key-value storage. The store
// overwrites the whole slot on every mutation; there are no partial writes.
type Slot interface {
	// Load returns the stored payload and whether the slot holds one.
	Load() ([]byte, bool, error)
	// Store atomically replaces the slot contents.
	Store(data []byte) error
}

// FileSlot persists the payload in a single file on local disk.
type FileSlot struct {
	path string
}

// NewFileSlot creates a file backed slot, ensuring the parent directory exists.
func NewFileSlot(path string) (*FileSlot, error) {
	if path == "" {
		return nil, errors.New("slot path must be provided")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create slot directory: %w", err)
		}
	}
	return &FileSlot{path: path}, nil
}

// Load reads the slot file. A missing file means an empty slot, not an error.
func (s *FileSlot) Load() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Store writes to a sibling temp file and renames it over the slot so a
// crash mid-write never leaves a truncated payload behind.
func (s *FileSlot) Store(data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
