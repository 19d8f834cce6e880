package history

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNoMsg bool
	}{
		{name: "invalid json", input: "{{{ not json"},
		{name: "not a list", input: `{"text":"an object"}`},
		{name: "empty list", input: `[]`, wantNoMsg: true},
		{name: "no valid entries", input: `[{}, null, {"text":"x","type":"admin"}]`, wantNoMsg: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, backend := newTestStore(t, DefaultCap)
			require.NoError(t, store.Append(ctx, msg(chatc.MessageTypeUser, "keep", 0), msg(chatc.MessageTypeBot, "me", 1)))
			before, err := backend.Get(ctx, testKey)
			require.NoError(t, err)

			_, err = store.Import(ctx, strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.wantNoMsg, errors.Is(err, ErrNoValidMessages))

			assert.Equal(t, 2, store.Len())
			after, err := backend.Get(ctx, testKey)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestImportAppendsValidMessages(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t, DefaultCap)
	require.NoError(t, store.Append(ctx, msg(chatc.MessageTypeUser, "first", 0), msg(chatc.MessageTypeBot, "second", 1)))

	input := `[
		{"text":"imported question","type":"user","timestamp":"2025-06-01T10:00:00Z"},
		{"text":"no type"},
		{"text":"imported answer","type":"bot"}
	]`
	res, err := store.Import(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 2, Skipped: 1}, res)

	texts := func(msgs []chatc.Message) []string {
		var out []string
		for _, m := range msgs {
			out = append(out, m.Text)
		}
		return out
	}
	want := []string{"first", "second", "imported question", "imported answer"}
	assert.Equal(t, want, texts(store.Messages()))

	reloaded := NewStore(backend, testKey, DefaultCap, zap.NewNop())
	reloaded.Load(ctx)
	assert.Equal(t, want, texts(reloaded.Messages()))
}

func TestImportAppliesCap(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 4)
	require.NoError(t, store.Append(ctx, msg(chatc.MessageTypeUser, "old", 0), msg(chatc.MessageTypeBot, "older", 1)))

	var entries []chatc.Message
	for i := 0; i < 5; i++ {
		entries = append(entries, msg(chatc.MessageTypeUser, string(rune('a'+i)), 10+i))
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)

	res, err := store.Import(ctx, strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Imported)
	assert.Equal(t, entries[1:], store.Messages())
}
