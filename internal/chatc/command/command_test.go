package command

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/history"
	"github.com/longkey1/chatc/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 7, 4, 14, 5, 9, 0, time.Local)

func fixedClock() time.Time { return fixedNow }

func newInterpreter(t *testing.T) (*Interpreter, *history.Store) {
	t.Helper()
	h := history.NewStore(kv.NewMemoryStore(), "chatbot_history", history.DefaultCap, zap.NewNop())
	return NewInterpreter(h, fixedClock, rand.New(rand.NewPCG(1, 2)), zap.NewNop()), h
}

func seed(t *testing.T, h *history.Store, texts ...string) {
	t.Helper()
	for i := 0; i+1 < len(texts); i += 2 {
		at := fixedNow.Add(time.Duration(i) * time.Second)
		require.NoError(t, h.Append(context.Background(),
			chatc.NewMessage(chatc.MessageTypeUser, texts[i], at),
			chatc.NewMessage(chatc.MessageTypeBot, texts[i+1], at.Add(time.Second))))
	}
}

func TestExecuteNotACommand(t *testing.T) {
	in, _ := newInterpreter(t)
	ctx := context.Background()

	inputs := []string{
		"hello",
		"what time is it?",
		"/unknown",
		"/helpme",
		"/time now",
		"/searching for things",
		"please /help",
		"",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			res := in.Execute(ctx, input)
			assert.False(t, res.Handled)
			assert.Equal(t, NotCommand, res)
		})
	}
}

func TestExecuteIsCaseInsensitive(t *testing.T) {
	in, _ := newInterpreter(t)
	ctx := context.Background()

	for _, input := range []string{"/HELP", "/Help", "  /help  ", "/TIME", "/DaTe", "/JOKE", "/History", "/STATS"} {
		t.Run(input, func(t *testing.T) {
			assert.True(t, in.Execute(ctx, input).Handled)
		})
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	in, _ := newInterpreter(t)
	res := in.Execute(context.Background(), "/help")

	require.True(t, res.Handled)
	assert.Contains(t, res.Reply, "\n")
	for _, name := range []string{"/help", "/time", "/date", "/joke", "/history", "/clear", "/search <query>", "/stats"} {
		assert.Contains(t, res.Reply, name)
	}
}

func TestHelpAliases(t *testing.T) {
	in, _ := newInterpreter(t)
	ctx := context.Background()

	help := in.Execute(ctx, "/help")
	for _, input := range []string{"/commands", "/COMMANDS", "/?"} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, help, in.Execute(ctx, input))
		})
	}
	assert.Contains(t, help.Reply, "/help, /commands, /?")

	names := make(map[string]int)
	for _, cmd := range in.Commands() {
		names[cmd.Name]++
	}
	assert.Equal(t, 1, names["/help"])
	assert.Len(t, in.Commands(), 8)
}

func TestTimeAndDateUseClock(t *testing.T) {
	in, _ := newInterpreter(t)
	ctx := context.Background()

	assert.Equal(t, "⏰ Current time: 2:05:09 PM", in.Execute(ctx, "/time").Reply)
	assert.Equal(t, "📅 Today is Friday, July 4, 2025", in.Execute(ctx, "/date").Reply)
}

func TestJokeIsFromFixedList(t *testing.T) {
	in, _ := newInterpreter(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		res := in.Execute(ctx, "/joke")
		require.True(t, res.Handled)
		require.Contains(t, Jokes[:], res.Reply)
		seen[res.Reply] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestJokeIsReproducibleWithSeed(t *testing.T) {
	h := history.NewStore(kv.NewMemoryStore(), "k", 10, nil)
	a := NewInterpreter(h, fixedClock, rand.New(rand.NewPCG(7, 7)), nil)
	b := NewInterpreter(h, fixedClock, rand.New(rand.NewPCG(7, 7)), nil)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Execute(context.Background(), "/joke").Reply, b.Execute(context.Background(), "/joke").Reply)
	}
}

func TestHistoryCount(t *testing.T) {
	in, h := newInterpreter(t)
	ctx := context.Background()

	assert.Equal(t, "📜 No conversation history yet.", in.Execute(ctx, "/history").Reply)

	seed(t, h, "a", "b", "c", "d")
	assert.Equal(t, "📜 You have 4 message(s) in history.", in.Execute(ctx, "/history").Reply)
}

func TestClearThenHistoryReportsZero(t *testing.T) {
	in, h := newInterpreter(t)
	ctx := context.Background()
	seed(t, h, "a", "b")

	res := in.Execute(ctx, "/clear")
	assert.True(t, res.Handled)
	assert.True(t, res.Cleared)
	assert.Contains(t, res.Reply, "Cleared 2 message(s)")
	assert.Equal(t, 0, h.Len())

	assert.Equal(t, "📜 No conversation history yet.", in.Execute(ctx, "/history").Reply)

	again := in.Execute(ctx, "/clear")
	assert.True(t, again.Cleared)
	assert.Contains(t, again.Reply, "already empty")
}

func TestSearch(t *testing.T) {
	in, h := newInterpreter(t)
	ctx := context.Background()
	seed(t, h,
		"the cat sat", "a CAT reply",
		"dog", "no felines",
		"cat 3", "cat 4",
		"cat 5", "cat 6",
	)

	t.Run("usage when query is empty", func(t *testing.T) {
		for _, input := range []string{"/search", "/search ", "/search     ", "/SEARCH"} {
			res := in.Execute(ctx, input)
			assert.True(t, res.Handled)
			assert.Contains(t, res.Reply, "Usage: /search <query>")
		}
	})

	t.Run("no match carries the query verbatim", func(t *testing.T) {
		res := in.Execute(ctx, "/search ZeBra Crossing")
		assert.Equal(t, `🔍 No messages found matching "ZeBra Crossing"`, res.Reply)
	})

	t.Run("prefix is case-insensitive and query keeps case", func(t *testing.T) {
		res := in.Execute(ctx, "/Search Dog")
		assert.True(t, res.Handled)
		assert.Contains(t, res.Reply, `Found 1 message(s) matching "Dog"`)
	})

	t.Run("at most five snippets", func(t *testing.T) {
		res := in.Execute(ctx, "/search cat")
		assert.Contains(t, res.Reply, `Found 6 message(s) matching "cat"`)
		assert.Equal(t, 5, strings.Count(res.Reply, "\n• "))
		assert.Contains(t, res.Reply, "(showing the first 5)")
		assert.NotContains(t, res.Reply, "cat 6")
		assert.Less(t, strings.Index(res.Reply, "the cat sat"), strings.Index(res.Reply, "cat 5"))
	})
}

func TestFormatSearch(t *testing.T) {
	long := strings.Repeat("z", 120)
	res := history.SearchResult{
		Query:   "z",
		Count:   1,
		Matches: []chatc.Message{{Text: long, Type: chatc.MessageTypeBot}},
	}
	got := FormatSearch(res)
	assert.Equal(t, fmt.Sprintf("🔍 Found 1 message(s) matching \"z\":\n• [bot] %s...", strings.Repeat("z", 100)), got)
}

func TestStats(t *testing.T) {
	in, h := newInterpreter(t)
	ctx := context.Background()

	assert.Equal(t, "📊 No statistics available yet.", in.Execute(ctx, "/stats").Reply)

	seed(t, h, "one two", "three four five")
	res := in.Execute(ctx, "/stats")
	assert.Contains(t, res.Reply, "Total messages: 2")
	assert.Contains(t, res.Reply, "Your messages:  1 (2 words)")
	assert.Contains(t, res.Reply, "Bot messages:   1 (3 words)")
}

func TestRegisterCustomCommand(t *testing.T) {
	in, _ := newInterpreter(t)
	in.Register(&Command{
		Name:        "/ping",
		Description: "Reply with pong",
		Handler:     func(context.Context, string) Result { return reply("pong") },
	})

	assert.Equal(t, "pong", in.Execute(context.Background(), "/PING").Reply)
	assert.Contains(t, in.Execute(context.Background(), "/help").Reply, "/ping")
}
