package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/longkey1/chatc/internal/chatc/theme"
	"github.com/spf13/cobra"
)

// themeCmd represents the theme command
var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the color theme",
	Long: `Show or change the color theme used by the chat session.
Without an argument the current theme is printed.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark), "toggle"},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		t, err := applyTheme(cmd.Context(), a, arg)
		if err != nil {
			return err
		}
		fmt.Println(t)
		return nil
	},
}

// applyTheme returns the current theme for an empty arg, toggles it for
// "toggle" and stores the named theme otherwise
func applyTheme(ctx context.Context, a *app, arg string) (theme.Theme, error) {
	switch arg = strings.ToLower(strings.TrimSpace(arg)); arg {
	case "":
		return a.themes.Get(ctx), nil
	case "toggle":
		return a.themes.Toggle(ctx)
	}

	t, err := theme.Parse(arg)
	if err != nil {
		return "", err
	}
	if err := a.themes.Set(ctx, t); err != nil {
		return "", fmt.Errorf("saving theme: %w", err)
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
