// Package draftstore persists the in-progress job description so it
// survives a reload of the form.
//
// The store is best-effort: backend failures are logged and swallowed, and
// Load reports an empty description. A saved draft never expires.
package draftstore

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"jobmate/posting-service/internal/store"
)

// Key is the fixed key holding the raw description markup.
const Key = "jobDescription"

// Store saves, loads and clears the draft description.
type Store struct {
	kv  store.KV
	log *zap.Logger
}

// New returns a Store on top of kv.
func New(kv store.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log.Named("draftstore")}
}

// Save overwrites the persisted description.
func (s *Store) Save(ctx context.Context, description string) {
	if err := s.kv.Set(ctx, Key, description); err != nil {
		s.log.Warn("save draft failed", zap.Error(err))
	}
}

// Load returns the persisted description, or "" when nothing is stored or
// the backend is unavailable.
func (s *Store) Load(ctx context.Context) string {
	v, err := s.kv.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("load draft failed", zap.Error(err))
		}
		return ""
	}
	return v
}

// Clear removes the persisted description.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Delete(ctx, Key); err != nil {
		s.log.Warn("clear draft failed", zap.Error(err))
	}
}
