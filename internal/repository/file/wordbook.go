package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"wordbook/internal/domain"
)

// WordBookRepo implements repository.WordBookStore over a text file
type WordBookRepo struct {
	path string
}

// NewWordBookRepo creates a new wrong-word book repository
func NewWordBookRepo(path string) *WordBookRepo {
	return &WordBookRepo{path: path}
}

// Path returns the book location
func (r *WordBookRepo) Path() string {
	return r.path
}

// Exists reports whether the book file is present
func (r *WordBookRepo) Exists() (bool, error) {
	_, err := os.Stat(r.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat wrong-word book: %w", err)
}

// Load reads the book without dedup so duplicate lines stay addressable by index
func (r *WordBookRepo) Load() ([]domain.Entry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wrong-word book %s: %w", r.path, err)
	}
	defer f.Close()

	return ParseEntries(f, domain.DedupNone)
}

// Save overwrites the book with entries, creating parent directories.
// The content goes to a temp file first and is renamed into place.
func (r *WordBookRepo) Save(entries []domain.Entry) error {
	return writeFileAtomic(r.path, entries)
}

func writeFileAtomic(path string, entries []domain.Entry) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := WriteEntries(tmp, entries); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
