package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ Storage = (*FileStorage)(nil)

// FileStorage persists the token as a single file named by StorageKey inside
// a data folder. The file is created with owner-only permissions.
type FileStorage struct {
	path string
}

// NewFileStorage creates the data folder if needed and returns a FileStorage
// writing to <folder>/jwt_token.
func NewFileStorage(folder string) (*FileStorage, error) {
	if folder == "" {
		return nil, fmt.Errorf("token storage folder is required")
	}
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create token storage folder: %w", err)
	}
	return &FileStorage{path: filepath.Join(folder, StorageKey)}, nil
}

func (f *FileStorage) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileStorage) Write(token string) error {
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (f *FileStorage) Remove() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
