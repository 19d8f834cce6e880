// Package terminal renders a chat session to a terminal.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/theme"
)

const clearScreen = "\033[H\033[2J"

// View writes messages to out and transient status (typing indicator,
// notices) to status.
type View struct {
	out      io.Writer
	status   io.Writer
	renderer *lipgloss.Renderer
	palette  Palette
	loc      *time.Location

	spinner *spinner
}

// New creates a view. A nil loc displays timestamps in local time.
func New(out, status io.Writer, t theme.Theme, loc *time.Location) *View {
	if loc == nil {
		loc = time.Local
	}
	r := lipgloss.NewRenderer(out)
	return &View{
		out:      out,
		status:   status,
		renderer: r,
		palette:  NewPalette(r, t),
		loc:      loc,
	}
}

// SetTheme switches the palette
func (v *View) SetTheme(t theme.Theme) {
	v.palette = NewPalette(v.renderer, t)
}

// SetInputEnabled is a no-op; the prompt is not shown while a message is
// being dispatched.
func (v *View) SetInputEnabled(bool) {}

// SetTyping starts or stops the typing indicator
func (v *View) SetTyping(typing bool) {
	if typing {
		if v.spinner == nil {
			v.spinner = startSpinner(v.status, "Bot is typing...", spinnerInterval)
		}
		return
	}
	if v.spinner != nil {
		v.spinner.stop()
		v.spinner = nil
	}
}

// Render prints one message
func (v *View) Render(msg chatc.Message) {
	fmt.Fprintln(v.out, v.Format(msg))
}

// Format returns the styled representation of msg
func (v *View) Format(msg chatc.Message) string {
	var label lipgloss.Style
	var name string
	switch msg.Type {
	case chatc.MessageTypeUser:
		label, name = v.palette.User, "You"
	case chatc.MessageTypeBot:
		label, name = v.palette.Bot, "Bot"
	default:
		label, name = v.palette.System, "System"
	}

	var sb strings.Builder
	if ts := msg.Time(); !ts.IsZero() {
		sb.WriteString(v.palette.Timestamp.Render(ts.In(v.loc).Format("15:04")))
		sb.WriteString(" ")
	}
	sb.WriteString(label.Render(name + ">"))
	sb.WriteString(" ")

	text := msg.Text
	if msg.Type == chatc.MessageTypeSystem {
		sb.WriteString(v.palette.System.Render(text))
	} else {
		sb.WriteString(v.palette.Text.Render(text))
	}
	return sb.String()
}

// Reset clears the screen
func (v *View) Reset() {
	fmt.Fprint(v.out, clearScreen)
}

// Refocus is a no-op; the prompt is shown again by the input loop.
func (v *View) Refocus() {}

// Notice prints a transient notice that is not part of the conversation
func (v *View) Notice(text string) {
	fmt.Fprintln(v.status, v.palette.Notice.Render(text))
}
