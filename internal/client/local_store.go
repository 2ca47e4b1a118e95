package client

import (
	"encoding/json"
	"fmt"
	"os"

	"storefront/internal/cartstate"
)

// FileStore persists a guest cart as a JSON file, the way the browser app
// keeps it in local storage. It implements cartstate.Storage.
type FileStore struct {
	path string
}

var _ cartstate.Storage = (*FileStore)(nil)

// NewFileStore creates a file-backed guest cart store.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the saved line list. A missing file is an empty cart, not an
// error. A corrupt file is discarded.
func (s *FileStore) Load() ([]cartstate.Line, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read saved cart: %w", err)
	}

	var items []cartstate.Line
	if err := json.Unmarshal(data, &items); err != nil {
		_ = os.Remove(s.path)
		return nil, nil
	}
	return items, nil
}

// Save serializes the whole line list, overwriting any previous snapshot.
func (s *FileStore) Save(items []cartstate.Line) error {
	if items == nil {
		items = []cartstate.Line{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write saved cart: %w", err)
	}
	return nil
}
