package chatc

import (
	"testing"
	"time"
)

func TestParseMessageType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MessageType
		wantErr bool
	}{
		{
			name:  "user",
			input: "user",
			want:  MessageTypeUser,
		},
		{
			name:  "bot with whitespace and case",
			input: " Bot ",
			want:  MessageTypeBot,
		},
		{
			name:  "system",
			input: "SYSTEM",
			want:  MessageTypeSystem,
		},
		{
			name:    "assistant is not a message type",
			input:   "assistant",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessageType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseMessageType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseMessageType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewMessage(t *testing.T) {
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	msg := NewMessage(MessageTypeUser, "hello", at)

	if msg.ID == "" {
		t.Error("NewMessage() ID is empty")
	}
	if msg.Timestamp != "2025-03-14T15:09:26Z" {
		t.Errorf("NewMessage() Timestamp = %q", msg.Timestamp)
	}
	if !msg.Time().Equal(at) {
		t.Errorf("Time() = %v, want %v", msg.Time(), at)
	}

	other := NewMessage(MessageTypeUser, "hello", at)
	if other.ID == msg.ID {
		t.Error("NewMessage() returned duplicate IDs")
	}
}

func TestMessageTimeMalformed(t *testing.T) {
	msg := Message{Text: "x", Type: MessageTypeBot, Timestamp: "10:42 AM"}
	if !msg.Time().IsZero() {
		t.Errorf("Time() = %v, want zero time", msg.Time())
	}
}

func TestMessageNormalize(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		wantType MessageType
		wantErr  bool
	}{
		{
			name:     "valid",
			msg:      Message{Text: "hi", Type: MessageTypeUser, Timestamp: "2025-03-14T15:09:26Z"},
			wantType: MessageTypeUser,
		},
		{
			name:     "type in another case",
			msg:      Message{Text: "hi", Type: "Bot"},
			wantType: MessageTypeBot,
		},
		{
			name:    "zero value",
			msg:     Message{},
			wantErr: true,
		},
		{
			name:    "unknown type",
			msg:     Message{Text: "x", Type: "admin", Timestamp: "2025-03-14T15:09:26Z"},
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			msg:     Message{Text: "x", Type: MessageTypeUser, Timestamp: "nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.msg.Normalize()
			if (err != nil) != tt.wantErr {
				t.Errorf("Normalize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got.Type != tt.wantType {
				t.Errorf("Normalize() type = %v, want %v", got.Type, tt.wantType)
			}
		})
	}
}
