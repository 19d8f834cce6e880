package history

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ErrNoValidMessages is returned by Import when the input holds no usable message
var ErrNoValidMessages = errors.New("no valid messages found")

// ImportResult reports what Import did
type ImportResult struct {
	Imported int // valid messages appended
	Skipped  int // entries that were not valid messages
}

// Import reads a JSON list of messages, as stored under the history key,
// and appends the valid ones in order. The cap applies as for Append and the
// result is persisted. Nothing changes when the input is not a list or holds
// no valid message.
func (s *Store) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read import: %w", err)
	}

	messages, skipped, err := decodeMessages(data)
	if err != nil {
		return ImportResult{}, fmt.Errorf("invalid import file: %w", err)
	}
	if len(messages) == 0 {
		return ImportResult{Skipped: skipped}, ErrNoValidMessages
	}

	s.messages = s.trim(append(s.messages, messages...))
	s.logger.Debug("history imported", zap.Int("imported", len(messages)), zap.Int("skipped", skipped))
	if err := s.save(ctx); err != nil {
		return ImportResult{}, err
	}
	return ImportResult{Imported: len(messages), Skipped: skipped}, nil
}
