package file

import (
	"fmt"
	"os"

	"wordbook/internal/domain"
)

// VocabRepo implements repository.VocabRepository over a text file
type VocabRepo struct {
	path string
	mode domain.DedupMode
}

// NewVocabRepo creates a new vocabulary repository
func NewVocabRepo(path string, mode domain.DedupMode) *VocabRepo {
	return &VocabRepo{path: path, mode: mode}
}

// Load reads the vocabulary fresh from disk
func (r *VocabRepo) Load() ([]domain.Entry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary %s: %w", r.path, err)
	}
	defer f.Close()

	return ParseEntries(f, r.mode)
}
