package document

import (
	"os"

	"github.com/dshills/runpad/internal/errs"
)

// Store loads and saves document text.
type Store interface {
	Load(path string) (string, error)
	Save(path, text string) error
}

// FileStore reads and writes files on the local filesystem.
// Content is passed through unchanged.
type FileStore struct {
	// Perm is used when creating files. Zero means 0644.
	Perm os.FileMode
}

// Load reads the file at path.
func (s FileStore) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.IO("load", path, err)
	}
	return string(data), nil
}

// Save writes text to path, replacing any existing content.
func (s FileStore) Save(path, text string) error {
	perm := s.Perm
	if perm == 0 {
		perm = 0644
	}
	if err := os.WriteFile(path, []byte(text), perm); err != nil {
		return errs.IO("save", path, err)
	}
	return nil
}
