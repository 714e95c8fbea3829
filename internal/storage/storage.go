package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Storage persists uploaded images and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// LocalStorage writes files into a directory served by the HTTP router.
type LocalStorage struct {
	dir        string
	publicPath string
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage creates the upload directory if needed.
func NewLocalStorage(dir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, publicPath: strings.TrimRight(publicPath, "/")}, nil
}

// Upload writes data to dir/key and returns publicPath/key.
func (s *LocalStorage) Upload(ctx context.Context, key string, data []byte, _ string) (string, error) {
	name, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return path.Join(s.publicPath, name), nil
}

// Delete removes dir/key. A missing file is not an error.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	name, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}

// cleanKey rejects keys that would escape the upload directory
func cleanKey(key string) (string, error) {
	name := filepath.Base(key)
	if name != key || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid upload key %q", key)
	}
	return name, nil
}
