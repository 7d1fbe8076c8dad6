// Package memstore is an in-memory key-value backend. It loses everything on
// exit and exists for tests and throwaway sessions.
package memstore

import (
	"context"
	"sync"
)

type Backend struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func New() *Backend {
	return &Backend{data: map[string][]byte{}}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (b *Backend) Set(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), value...)
	b.sets++
	return nil
}

// Raw returns the stored bytes for key, or nil.
func (b *Backend) Raw(key string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data[key]
}

// Writes counts Set calls.
func (b *Backend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sets
}
