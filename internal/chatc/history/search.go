package history

import (
	"strings"

	"github.com/longkey1/chatc/internal/chatc"
)

const (
	// MaxSearchResults is the number of matches returned by Search
	MaxSearchResults = 5

	// SnippetLength is the number of characters kept from each match
	SnippetLength = 100
)

// SearchResult holds the outcome of a history search
type SearchResult struct {
	Query   string          // original query, not case-folded
	Count   int             // total number of matching messages
	Matches []chatc.Message // first MaxSearchResults matches, oldest first
}

// Snippets returns the matched texts truncated to SnippetLength characters
func (r SearchResult) Snippets() []string {
	out := make([]string, len(r.Matches))
	for i, msg := range r.Matches {
		out[i] = Truncate(msg.Text, SnippetLength)
	}
	return out
}

// Search finds messages whose text contains query, ignoring case
func (s *Store) Search(query string) SearchResult {
	result := SearchResult{Query: query}
	needle := strings.ToLower(query)

	for _, msg := range s.messages {
		if !strings.Contains(strings.ToLower(msg.Text), needle) {
			continue
		}
		result.Count++
		if len(result.Matches) < MaxSearchResults {
			result.Matches = append(result.Matches, msg)
		}
	}
	return result
}

// Truncate shortens s to at most n characters, appending "..." when cut
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
