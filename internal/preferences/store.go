// Package preferences persists the single preference record used for matching.
package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/kv"
	"github.com/spigell/job-matcher/internal/matching"
)

// DefaultKey is the well-known key the record is stored under.
const DefaultKey = "jobTrackerPreferences"

// Store loads and saves preferences through a key-value backend.
type Store struct {
	kv     kv.Store
	key    string
	logger *zap.Logger
}

// New returns a store over backend. An empty key means DefaultKey and a nil
// logger means no logging.
func New(backend kv.Store, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		kv:     backend,
		key:    key,
		logger: logger.With(zap.String("preferences_key", key)),
	}
}

// Key returns the key the record is stored under.
func (s *Store) Key() string { return s.key }

// Load returns the stored preferences or nil when there are none.
// Unreadable or undecodable records are reported as absent.
func (s *Store) Load(ctx context.Context) *matching.Preferences {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("reading preferences failed, treating as not set", zap.Error(err))
		return nil
	}
	if !ok || raw == "" {
		s.logger.Debug("preferences are not set")
		return nil
	}

	var prefs *matching.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn("stored preferences are corrupt, treating as not set", zap.Error(err))
		return nil
	}
	if prefs == nil {
		s.logger.Debug("stored preferences are null")
		return nil
	}

	return prefs
}

// Save overwrites the stored record. The record is not validated.
func (s *Store) Save(ctx context.Context, prefs *matching.Preferences) error {
	b, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}

	s.logger.Debug("preferences saved", zap.Int("size", len(b)))
	return nil
}
