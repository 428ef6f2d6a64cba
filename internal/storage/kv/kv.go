package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"reservation_service/internal/storage"
)

// Store is a durable key-value capability, the non-browser stand-in for the
// site's local storage. Get returns storage.ErrKeyNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// FileStore keeps each key as a file under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	const op = "storage.kv.NewFileStore"

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	const op = "storage.kv.Get"

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", storage.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(data), nil
}

func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	const op = "storage.kv.Set"

	if err := os.WriteFile(s.path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
