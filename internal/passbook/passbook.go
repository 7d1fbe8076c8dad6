// Package passbook implements the user actions: save a record from the
// form, delete by website, copy a value. It returns the notification text
// for each action; callers decide how to show it.
package passbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/securix/internal/clipboard"
	"github.com/Makepad-fr/securix/internal/model"
	"github.com/Makepad-fr/securix/internal/store"
)

const (
	MsgSaved       = "Password saved"
	MsgFillAll     = "Please fill all fields"
	MsgNoPasswords = "No passwords stored"
)

// ErrNotFound is returned by Lookup when no record has the website.
var ErrNotFound = errors.New("no record for website")

// MsgDeleted is the notification after deleting website's records.
func MsgDeleted(website string) string { return fmt.Sprintf("Deleted %s's password", website) }

// Copier puts text on the clipboard.
type Copier interface {
	Copy(text string) clipboard.Outcome
}

// existenceChecker is implemented by stores that can tell an absent key
// from an empty list.
type existenceChecker interface {
	Exists(ctx context.Context) (bool, error)
}

type Service struct {
	store  store.Store
	copier Copier
	log    *slog.Logger
}

func New(s store.Store, c Copier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: s, copier: c, log: log}
}

// Records returns everything stored, in insertion order.
func (s *Service) Records(ctx context.Context) ([]model.Record, error) {
	return s.store.Load(ctx)
}

// Submit validates the form values and appends a record. On validation
// failure the message is MsgFillAll, the error wraps model.ErrEmptyField and
// nothing is written.
func (s *Service) Submit(ctx context.Context, website, username, password string) (string, error) {
	r, err := model.NewRecord(website, username, password)
	if err != nil {
		s.log.Debug("submit rejected", "error", err)
		return MsgFillAll, err
	}
	if err := s.store.Append(ctx, r); err != nil {
		s.log.Error("save record", "website", r.Website, "error", err)
		return "", fmt.Errorf("save: %w", err)
	}
	s.log.Info("record saved", "website", r.Website, "username", r.Username)
	return MsgSaved, nil
}

// Delete removes every record whose website matches exactly.
func (s *Service) Delete(ctx context.Context, website string) (string, error) {
	if ec, ok := s.store.(existenceChecker); ok {
		exists, err := ec.Exists(ctx)
		if err != nil {
			return "", fmt.Errorf("delete: %w", err)
		}
		if !exists {
			return MsgNoPasswords, nil
		}
	}
	left, err := s.store.RemoveByWebsite(ctx, website)
	if err != nil {
		s.log.Error("delete records", "website", website, "error", err)
		return "", fmt.Errorf("delete: %w", err)
	}
	s.log.Info("records deleted", "website", website, "remaining", len(left))
	return MsgDeleted(website), nil
}

// Lookup returns the first record for website.
func (s *Service) Lookup(ctx context.Context, website string) (model.Record, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return model.Record{}, err
	}
	for _, r := range records {
		if r.Website == website {
			return r, nil
		}
	}
	return model.Record{}, fmt.Errorf("%w %q", ErrNotFound, website)
}

// Copy puts text on the clipboard. The value itself is never logged.
func (s *Service) Copy(text string) clipboard.Outcome {
	out := s.copier.Copy(text)
	if out.OK() {
		s.log.Debug("copied", "via", out.String())
	} else {
		s.log.Warn("copy failed")
	}
	return out
}
