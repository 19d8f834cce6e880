package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/longkey1/chatc/internal/chatc/history"
	"go.uber.org/zap"
)

const searchName = "/search"

// Layouts for /time and /date
const (
	TimeLayout = "3:04:05 PM"
	DateLayout = "Monday, January 2, 2006"
)

// Jokes is the fixed list /joke picks from
var Jokes = [8]string{
	"Why do programmers prefer dark mode? Because light attracts bugs! 🐛",
	"Why did the programmer quit the job? Because they didn't get arrays. 📊",
	"How many programmers does it take to change a light bulb? None, it's a hardware problem. 💡",
	"Why do Java developers wear glasses? Because they can't C#! 👓",
	"What's a programmer's favorite hangout place? Foo Bar! 🍺",
	"Why did the developer go broke? Because they used up all their cache! 💰",
	"What do you call a programmer from Finland? Nerdic! 🇫🇮",
	"What's the object-oriented way to become wealthy? Inheritance! 💎",
}

func (in *Interpreter) registerBuiltins() {
	in.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/commands", "/?"},
		Description: "Show this help message",
		Handler:     in.handleHelp,
	})
	in.Register(&Command{
		Name:        "/time",
		Description: "Show current time",
		Handler: func(context.Context, string) Result {
			return reply("⏰ Current time: " + in.clock().Format(TimeLayout))
		},
	})
	in.Register(&Command{
		Name:        "/date",
		Description: "Show current date",
		Handler: func(context.Context, string) Result {
			return reply("📅 Today is " + in.clock().Format(DateLayout))
		},
	})
	in.Register(&Command{
		Name:        "/joke",
		Description: "Tell a random joke",
		Handler: func(context.Context, string) Result {
			return reply(Jokes[in.rng.IntN(len(Jokes))])
		},
	})
	in.Register(&Command{
		Name:        "/history",
		Description: "Show how many messages are stored",
		Handler:     in.handleHistory,
	})
	in.Register(&Command{
		Name:        "/clear",
		Description: "Clear conversation history",
		Handler:     in.handleClear,
	})
	in.Register(&Command{
		Name:        searchName,
		Usage:       "/search <query>",
		Description: "Search your messages",
		Handler:     in.handleSearch,
	})
	in.Register(&Command{
		Name:        "/stats",
		Description: "Show conversation statistics",
		Handler:     in.handleStats,
	})
}

func (in *Interpreter) handleHelp(context.Context, string) Result {
	var sb strings.Builder
	sb.WriteString("📋 Available commands:\n")
	for _, cmd := range in.Commands() {
		usage := cmd.Usage
		if usage == "" {
			usage = strings.Join(append([]string{cmd.Name}, cmd.Aliases...), ", ")
		}
		fmt.Fprintf(&sb, "  %-18s %s\n", usage, cmd.Description)
	}
	sb.WriteString("\n💡 Anything else is sent to the chat service.")
	return reply(sb.String())
}

func (in *Interpreter) handleHistory(context.Context, string) Result {
	n := in.history.Len()
	if n == 0 {
		return reply("📜 No conversation history yet.")
	}
	return reply(fmt.Sprintf("📜 You have %d message(s) in history.", n))
}

func (in *Interpreter) handleClear(ctx context.Context, _ string) Result {
	n := in.history.Len()
	if err := in.history.Clear(ctx); err != nil {
		// the in-memory history is already empty; only the stored copy may linger
		in.logger.Warn("failed to clear persisted history", zap.Error(err))
	}
	text := "🗑️ History is already empty."
	if n > 0 {
		text = fmt.Sprintf("🗑️ Cleared %d message(s) from your history.", n)
	}
	return Result{Reply: text, Handled: true, Cleared: true}
}

func (in *Interpreter) handleSearch(_ context.Context, query string) Result {
	if query == "" {
		return reply("🔍 Usage: /search <query>\nExample: /search hello")
	}
	return reply(FormatSearch(in.history.Search(query)))
}

func (in *Interpreter) handleStats(context.Context, string) Result {
	st := in.history.Stats()
	if st.Total == 0 {
		return reply("📊 No statistics available yet.")
	}
	var sb strings.Builder
	sb.WriteString("📊 Conversation statistics:\n")
	fmt.Fprintf(&sb, "  Total messages: %d\n", st.Total)
	fmt.Fprintf(&sb, "  Your messages:  %d (%d words)\n", st.User, st.UserWords)
	fmt.Fprintf(&sb, "  Bot messages:   %d (%d words)\n", st.Bot, st.BotWords)
	if !st.First.IsZero() {
		fmt.Fprintf(&sb, "  First message:  %s\n", st.First.Local().Format("2006-01-02 15:04:05"))
	}
	if !st.Last.IsZero() {
		fmt.Fprintf(&sb, "  Last message:   %s", st.Last.Local().Format("2006-01-02 15:04:05"))
	}
	return reply(strings.TrimRight(sb.String(), "\n"))
}

// FormatSearch renders a search result as reply text
func FormatSearch(res history.SearchResult) string {
	if res.Count == 0 {
		return fmt.Sprintf("🔍 No messages found matching \"%s\"", res.Query)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 Found %d message(s) matching \"%s\":", res.Count, res.Query)
	for i, snippet := range res.Snippets() {
		fmt.Fprintf(&sb, "\n• [%s] %s", res.Matches[i].Type, snippet)
	}
	if res.Count > len(res.Matches) {
		fmt.Fprintf(&sb, "\n(showing the first %d)", len(res.Matches))
	}
	return sb.String()
}
