// Package chatc provides the core types shared by the chat client packages.
// It defines the Message stored in history, the message types and the clock
// abstraction used by time-dependent local commands.
package chatc

import (
	"fmt"
	"strings"
	"time"
)

// Clock returns the current time. Commands that print the time or date take a
// Clock so tests can pin it.
type Clock func() time.Time

// SystemClock returns time.Now in the local time zone.
func SystemClock() time.Time {
	return time.Now()
}

// ParseMessageType parses a message type name.
// Returns an error for anything other than user, bot or system.
//
// Example:
//
//	t, err := ParseMessageType(" Bot ")
//	// t = MessageTypeBot
func ParseMessageType(s string) (MessageType, error) {
	t := MessageType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case MessageTypeUser, MessageTypeBot, MessageTypeSystem:
		return t, nil
	}
	return "", fmt.Errorf("invalid message type: %q (expected user, bot or system)", s)
}
