package terminal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/chatc/internal/chatc/theme"
)

// Palette holds the styles used to render one theme
type Palette struct {
	User      lipgloss.Style
	Bot       lipgloss.Style
	System    lipgloss.Style
	Notice    lipgloss.Style
	Timestamp lipgloss.Style
	Text      lipgloss.Style
}

type colors struct {
	user, bot, system, notice, muted, text lipgloss.Color
}

var (
	lightColors = colors{
		user:   lipgloss.Color("#1D4ED8"), // Blue
		bot:    lipgloss.Color("#047857"), // Emerald
		system: lipgloss.Color("#B45309"), // Amber
		notice: lipgloss.Color("#B91C1C"), // Red
		muted:  lipgloss.Color("#6B7280"), // Gray
		text:   lipgloss.Color("#111827"),
	}

	darkColors = colors{
		user:   lipgloss.Color("#60A5FA"),
		bot:    lipgloss.Color("#10B981"),
		system: lipgloss.Color("#F59E0B"),
		notice: lipgloss.Color("#EF4444"),
		muted:  lipgloss.Color("#9CA3AF"),
		text:   lipgloss.Color("#F9FAFB"),
	}
)

// NewPalette builds the palette for t using renderer r
func NewPalette(r *lipgloss.Renderer, t theme.Theme) Palette {
	c := lightColors
	if t == theme.Dark {
		c = darkColors
	}

	return Palette{
		User: r.NewStyle().
			Foreground(c.user).
			Bold(true),
		Bot: r.NewStyle().
			Foreground(c.bot).
			Bold(true),
		System: r.NewStyle().
			Foreground(c.system).
			Italic(true),
		Notice: r.NewStyle().
			Foreground(c.notice).
			Bold(true),
		Timestamp: r.NewStyle().
			Foreground(c.muted),
		Text: r.NewStyle().
			Foreground(c.text),
	}
}
