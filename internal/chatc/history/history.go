// Package history keeps the ordered, capped log of exchanged messages and
// persists it to a key-value store as a JSON array.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/kv"
	"go.uber.org/zap"
)

const (
	// DefaultCap is the number of messages retained when no cap is configured
	DefaultCap = 100

	// DefaultRestoreCount is how many messages RestoreRecent replays by default
	DefaultRestoreCount = 10
)

// Store is the history of the current chat. Insertion order is chronological
// order and the length never exceeds the cap; the oldest messages go first.
//
// Store is not safe for concurrent use. The dispatcher is its only writer.
type Store struct {
	kv       kv.Store
	key      string
	cap      int
	messages []chatc.Message
	logger   *zap.Logger
}

// NewStore creates an empty history backed by store under key
func NewStore(store kv.Store, key string, cap int, logger *zap.Logger) *Store {
	if cap <= 0 {
		cap = DefaultCap
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		kv:       store,
		key:      key,
		cap:      cap,
		messages: []chatc.Message{},
		logger:   logger,
	}
}

// Cap returns the maximum number of retained messages
func (s *Store) Cap() int {
	return s.cap
}

// Len returns the number of stored messages
func (s *Store) Len() int {
	return len(s.messages)
}

// Messages returns a copy of the stored messages, oldest first
func (s *Store) Messages() []chatc.Message {
	out := make([]chatc.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Load replaces the in-memory history with the persisted one.
// Missing or malformed data leaves the history empty; the problem is logged
// and never returned, so a bad file cannot block startup.
func (s *Store) Load(ctx context.Context) {
	s.messages = []chatc.Message{}

	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("failed to read history", zap.String("key", s.key), zap.Error(err))
		}
		return
	}

	messages, dropped, err := decodeMessages([]byte(data))
	if err != nil {
		s.logger.Warn("discarding malformed history", zap.String("key", s.key), zap.Error(err))
		return
	}
	if dropped > 0 {
		s.logger.Warn("dropped invalid history entries", zap.String("key", s.key), zap.Int("dropped", dropped))
	}

	s.messages = s.trim(messages)
	s.logger.Debug("history loaded", zap.Int("messages", len(s.messages)))
}

// Append adds a user message and its reply, applies the cap and persists the
// whole sequence. The in-memory history is updated even if persisting fails.
func (s *Store) Append(ctx context.Context, user, bot chatc.Message) error {
	s.messages = s.trim(append(s.messages, user, bot))
	return s.save(ctx)
}

// Clear empties the history and removes the persisted entry
func (s *Store) Clear(ctx context.Context) error {
	s.messages = []chatc.Message{}
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}

// RestoreRecent replays the most recent n messages to render, oldest first.
// Nothing is sent or persisted. n <= 0 uses DefaultRestoreCount.
func (s *Store) RestoreRecent(n int, render func(chatc.Message)) {
	if n <= 0 {
		n = DefaultRestoreCount
	}
	start := len(s.messages) - n
	if start < 0 {
		start = 0
	}
	for _, msg := range s.messages[start:] {
		render(msg)
	}
}

// trim drops the oldest messages beyond the cap
func (s *Store) trim(messages []chatc.Message) []chatc.Message {
	if len(messages) <= s.cap {
		return messages
	}
	kept := make([]chatc.Message, s.cap)
	copy(kept, messages[len(messages)-s.cap:])
	return kept
}

func (s *Store) save(ctx context.Context) error {
	data, err := json.Marshal(s.messages)
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// decodeMessages parses a JSON array of messages. Entries that are not valid
// messages are skipped and counted; a body that is not an array is an error.
func decodeMessages(data []byte) ([]chatc.Message, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("expected a JSON list of messages: %w", err)
	}

	messages := make([]chatc.Message, 0, len(raw))
	dropped := 0
	for _, entry := range raw {
		var msg chatc.Message
		if err := json.Unmarshal(entry, &msg); err != nil {
			dropped++
			continue
		}
		msg, err := msg.Normalize()
		if err != nil {
			dropped++
			continue
		}
		messages = append(messages, msg)
	}
	return messages, dropped, nil
}
