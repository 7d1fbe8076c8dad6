package jsonstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// JSON-backed storage. One human-readable file per key inside a data dir.
// Writes go through a temp file + rename so a crash never leaves half a file.

const fileExt = ".json"

type Backend struct {
	dir string
}

func New(dir string) *Backend {
	return &Backend{dir: dir}
}

func (b *Backend) dataPath(key string) (string, error) {
	if key == "" || filepath.Base(key) != key {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(b.dir, key+fileExt), nil
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := b.dataPath(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read file: %w", err)
	}
	return data, true, nil
}

func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	p, err := b.dataPath(key)
	if err != nil {
		return err
	}
	// owner-only, the file holds plaintext secrets
	if err := os.MkdirAll(b.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := atomic.WriteFile(p, bytes.NewReader(value)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
