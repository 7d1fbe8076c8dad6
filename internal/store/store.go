// Package store keeps the password records as a single JSON array under one
// key of a key-value backend. Every mutation rewrites the whole value.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Makepad-fr/securix/internal/model"
)

// Key is the backend key holding the record array.
const Key = "passwords"

// ErrCorrupt is returned when the persisted value is not a JSON record array.
var ErrCorrupt = errors.New("stored records are not a valid JSON array")

// Backend is a minimal key-value storage, the local equivalent of a
// browser's localStorage.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store is what the application needs from the record store.
type Store interface {
	Load(ctx context.Context) ([]model.Record, error)
	Append(ctx context.Context, r model.Record) error
	RemoveByWebsite(ctx context.Context, website string) ([]model.Record, error)
}

var _ Store = (*Records)(nil)

// Records implements Store on top of a Backend.
type Records struct {
	backend Backend
	key     string
}

func New(b Backend) *Records {
	return &Records{backend: b, key: Key}
}

// Exists reports whether the record key has ever been written.
func (s *Records) Exists(ctx context.Context) (bool, error) {
	_, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return false, fmt.Errorf("get %q: %w", s.key, err)
	}
	return found, nil
}

// Load returns the stored records in insertion order. An absent key is an
// empty list.
func (s *Records) Load(ctx context.Context) ([]model.Record, error) {
	b, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", s.key, err)
	}
	if !found {
		return []model.Record{}, nil
	}
	var records []model.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	// "null" decodes to a nil slice
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

func (s *Records) Append(ctx context.Context, r model.Record) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, append(records, r))
}

// RemoveByWebsite drops every record whose website matches exactly and
// returns what is left.
func (s *Records) RemoveByWebsite(ctx context.Context, website string) ([]model.Record, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Website != website {
			kept = append(kept, r)
		}
	}
	if err := s.save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Records) save(ctx context.Context, records []model.Record) error {
	b, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("set %q: %w", s.key, err)
	}
	return nil
}
