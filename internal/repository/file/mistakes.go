package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wordbook/internal/domain"
)

const mistakeFileLayout = "20060102_150405"

// MistakeLogRepo writes exam mistakes to a new timestamped file per run
type MistakeLogRepo struct {
	dir string
	now func() time.Time
}

// NewMistakeLogRepo creates a new mistake log writer
func NewMistakeLogRepo(dir string) *MistakeLogRepo {
	return &MistakeLogRepo{dir: dir, now: time.Now}
}

// Write stores entries in final_test_<timestamp>.txt and returns the path
func (r *MistakeLogRepo) Write(entries []domain.Entry) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", r.dir, err)
	}

	name := filepath.Join(r.dir, fmt.Sprintf("final_test_%s.txt", r.now().Format(mistakeFileLayout)))
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("failed to create mistake log: %w", err)
	}

	if err := WriteEntries(f, entries); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write mistake log: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close mistake log: %w", err)
	}
	return name, nil
}
