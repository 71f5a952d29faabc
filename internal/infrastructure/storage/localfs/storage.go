package localfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Storage holds uploads on the local filesystem for the lifetime of one
// pipeline run.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./data/uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// Store writes the payload under a random temporary name and then renames
// it to carry ext, since the OCR process sniffs the format from the file
// extension. A failed rename aborts the run; both paths are returned so
// the caller can clean up whichever exists.
func (s *Storage) Store(_ context.Context, payload []byte, ext string) (string, string, error) {
	name := uuid.NewString()
	tmpPath := filepath.Join(s.basePath, name)
	finalPath := tmpPath + ext

	if err := os.WriteFile(tmpPath, payload, 0o600); err != nil {
		return tmpPath, "", fmt.Errorf("write upload: %w", err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return tmpPath, "", fmt.Errorf("rename upload: %w", err)
	}
	return tmpPath, finalPath, nil
}

func (s *Storage) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
