package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/dispatch"
	"github.com/longkey1/chatc/internal/chatc/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ dispatch.View = (*View)(nil)

func newTestView(t theme.Theme) (*View, *bytes.Buffer, *bytes.Buffer) {
	var out, status bytes.Buffer
	return New(&out, &status, t, time.UTC), &out, &status
}

func TestRender(t *testing.T) {
	at := time.Date(2025, 7, 4, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		name  string
		msg   chatc.Message
		label string
	}{
		{"user", chatc.NewMessage(chatc.MessageTypeUser, "hello", at), "You>"},
		{"bot", chatc.NewMessage(chatc.MessageTypeBot, "hi there", at), "Bot>"},
		{"system", chatc.NewMessage(chatc.MessageTypeSystem, "offline", at), "System>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, out, _ := newTestView(theme.Light)
			v.Render(tt.msg)

			line := out.String()
			assert.True(t, strings.HasSuffix(line, "\n"))
			assert.Contains(t, line, "14:05")
			assert.Contains(t, line, tt.label)
			assert.Contains(t, line, tt.msg.Text)
		})
	}
}

func TestRenderWithoutTimestamp(t *testing.T) {
	v, out, _ := newTestView(theme.Dark)
	v.Render(chatc.Message{Text: "restored", Type: chatc.MessageTypeBot, Timestamp: "garbage"})
	assert.Contains(t, out.String(), "Bot>")
	assert.Contains(t, out.String(), "restored")
	assert.NotContains(t, out.String(), ":")
}

func TestSetTheme(t *testing.T) {
	v, out, _ := newTestView(theme.Light)
	assert.Equal(t, lightColors.user, v.palette.User.GetForeground())

	v.SetTheme(theme.Dark)
	assert.Equal(t, darkColors.user, v.palette.User.GetForeground())
	assert.Equal(t, darkColors.bot, v.palette.Bot.GetForeground())

	v.Render(chatc.Message{Text: "still renders", Type: chatc.MessageTypeUser})
	assert.Contains(t, out.String(), "still renders")
}

func TestResetAndNotice(t *testing.T) {
	v, out, status := newTestView(theme.Light)

	v.Reset()
	assert.Equal(t, clearScreen, out.String())

	v.Notice("too long")
	assert.Contains(t, status.String(), "too long")

	v.Refocus()
}

func TestTypingIndicator(t *testing.T) {
	v, out, status := newTestView(theme.Light)

	v.SetTyping(true)
	v.SetTyping(true)
	require.NotNil(t, v.spinner)
	time.Sleep(20 * time.Millisecond)
	v.SetTyping(false)
	assert.Nil(t, v.spinner)

	assert.Contains(t, status.String(), "Bot is typing...")
	assert.True(t, strings.HasSuffix(status.String(), "\r\033[K"))
	assert.Empty(t, out.String())

	v.SetTyping(false)
}
