package chatc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies who produced a message
type MessageType string

const (
	MessageTypeUser   MessageType = "user"
	MessageTypeBot    MessageType = "bot"
	MessageTypeSystem MessageType = "system"
)

// Message represents a single exchanged message. Messages are never modified
// after creation.
type Message struct {
	ID        string      `json:"id,omitempty"` // UUID v4
	Text      string      `json:"text"`
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp"` // RFC 3339
}

// NewMessage creates a message stamped with the given time
func NewMessage(t MessageType, text string, at time.Time) Message {
	return Message{
		ID:        uuid.New().String(),
		Text:      text,
		Type:      t,
		Timestamp: at.Format(time.RFC3339),
	}
}

// Time parses the message timestamp. A malformed timestamp yields the zero time.
func (m Message) Time() time.Time {
	t, err := time.Parse(time.RFC3339, m.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Normalize checks a message decoded from storage or an import file and
// returns it with its type in canonical form. The type must be user, bot or
// system; a timestamp, when present, must be RFC 3339.
func (m Message) Normalize() (Message, error) {
	t, err := ParseMessageType(string(m.Type))
	if err != nil {
		return Message{}, err
	}
	if m.Timestamp != "" {
		if _, err := time.Parse(time.RFC3339, m.Timestamp); err != nil {
			return Message{}, fmt.Errorf("invalid timestamp %q: %w", m.Timestamp, err)
		}
	}
	m.Type = t
	return m, nil
}
