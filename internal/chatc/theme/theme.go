// Package theme persists the light/dark display preference.
package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/longkey1/chatc/internal/kv"
	"go.uber.org/zap"
)

// Theme is a display theme name
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	Default = Light
)

// Parse validates a theme name
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme: %q (expected %s or %s)", s, Light, Dark)
}

// Store reads and writes the theme under a single key
type Store struct {
	kv     kv.Store
	key    string
	logger *zap.Logger
}

// NewStore creates a theme store
func NewStore(store kv.Store, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: store, key: key, logger: logger}
}

// Get returns the stored theme, or Default when nothing valid is stored
func (s *Store) Get(ctx context.Context) Theme {
	v, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("failed to read theme", zap.Error(err))
		}
		return Default
	}
	t, err := Parse(v)
	if err != nil {
		s.logger.Warn("ignoring stored theme", zap.String("value", v))
		return Default
	}
	return t
}

// Set stores the theme
func (s *Store) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, string(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// Toggle switches between light and dark and returns the new theme
func (s *Store) Toggle(ctx context.Context) (Theme, error) {
	next := Dark
	if s.Get(ctx) == Dark {
		next = Light
	}
	if err := s.Set(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
