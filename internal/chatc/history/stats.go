package history

import (
	"strings"
	"time"

	"github.com/longkey1/chatc/internal/chatc"
)

// Stats summarizes the stored history
type Stats struct {
	Total     int
	User      int
	Bot       int
	System    int
	UserWords int
	BotWords  int
	First     time.Time
	Last      time.Time
}

// Stats counts messages and words per message type
func (s *Store) Stats() Stats {
	var st Stats
	st.Total = len(s.messages)
	for _, msg := range s.messages {
		words := len(strings.Fields(msg.Text))
		switch msg.Type {
		case chatc.MessageTypeUser:
			st.User++
			st.UserWords += words
		case chatc.MessageTypeBot:
			st.Bot++
			st.BotWords += words
		case chatc.MessageTypeSystem:
			st.System++
		}
	}
	if st.Total > 0 {
		st.First = s.messages[0].Time()
		st.Last = s.messages[st.Total-1].Time()
	}
	return st
}
