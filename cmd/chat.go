/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/longkey1/chatc/internal/chatc/dispatch"
	"github.com/longkey1/chatc/internal/chatc/terminal"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session.

The most recent messages of the saved conversation are shown first. Messages are
sent to the configured endpoint; slash commands are answered locally:
  /help, /time, /date, /joke, /history, /search <query>, /stats, /clear

Session commands:
  /theme [light|dark|toggle]  Show or change the color theme
  /export [dir]               Write the conversation to a text file
  /import <file>              Append messages from a JSON file
  /exit, /quit                Leave the session (Ctrl+D also works)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		view := terminal.New(os.Stdout, os.Stderr, a.themes.Get(ctx), nil)
		d := a.newDispatcher(ctx, view)

		fmt.Fprintf(os.Stderr, "\n=== chatc [%s] ===\n", a.client.Endpoint())
		if !d.State().Online {
			fmt.Fprintln(os.Stderr, "Offline: only local commands are answered")
		}
		fmt.Fprintf(os.Stderr, "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit\n")
		fmt.Fprintf(os.Stderr, "===================\n\n")

		a.history.RestoreRecent(a.cfg.RestoreCount, view.Render)

		input := newInputLine(filepath.Join(a.cfg.DataDir, inputHistoryFn))
		defer input.Close()

		return runInteractiveMode(ctx, a, d, view, input)
	},
}

// runInteractiveMode reads lines until EOF or /exit and dispatches each one
func runInteractiveMode(ctx context.Context, a *app, d *dispatch.Dispatcher, view *terminal.View, input *inputLine) error {
	for {
		line, err := input.ReadInput("You> ")
		if err != nil {
			// EOF (Ctrl+D), Ctrl+C or a terminal error
			if err != liner.ErrPromptAborted {
				a.logger.Debug("input closed", zap.Error(err))
			}
			fmt.Fprintln(os.Stderr, "\nGoodbye!")
			return nil
		}

		if handled, quit := handleSessionCommand(ctx, a, view, line); quit {
			fmt.Fprintln(os.Stderr, "Goodbye!")
			return nil
		} else if handled {
			continue
		}

		// Ctrl+C while waiting for a reply cancels the request only
		reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		d.Submit(reqCtx, line)
		stop()
	}
}

// handleSessionCommand processes the commands that only exist in an
// interactive session. It reports whether line was handled and whether the
// session should end.
func handleSessionCommand(ctx context.Context, a *app, view *terminal.View, line string) (handled, quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, false
	}

	switch strings.ToLower(fields[0]) {
	case "/exit", "/quit":
		return true, true

	case "/theme":
		arg := ""
		if len(fields) > 1 {
			arg = fields[1]
		}
		t, err := applyTheme(ctx, a, arg)
		if err != nil {
			view.Notice(err.Error())
			return true, false
		}
		view.SetTheme(t)
		fmt.Fprintf(os.Stderr, "Theme: %s\n", t)
		return true, false

	case "/import":
		if len(fields) < 2 {
			view.Notice("Please provide a file path. Usage: /import <file>")
			return true, false
		}
		res, err := importHistory(ctx, a, strings.Join(fields[1:], " "))
		if err != nil {
			view.Notice(fmt.Sprintf("Import failed: %v", err))
			return true, false
		}
		fmt.Fprintf(os.Stderr, "Imported %d message(s)\n", res.Imported)
		return true, false

	case "/export":
		dir := "."
		if len(fields) > 1 {
			dir = fields[1]
		}
		path, err := exportHistory(ctx, a, dir, time.Now())
		if err != nil {
			view.Notice(fmt.Sprintf("Export failed: %v", err))
			return true, false
		}
		fmt.Fprintf(os.Stderr, "Conversation exported to %s\n", path)
		return true, false
	}

	return false, false
}

// inputLine provides line editing and input history for the session
type inputLine struct {
	line        *liner.State
	historyFile string
}

func newInputLine(historyFile string) *inputLine {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	in := &inputLine{
		line:        line,
		historyFile: historyFile,
	}
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	return in
}

// ReadInput reads one line; non-empty lines are added to the input history
func (in *inputLine) ReadInput(prompt string) (string, error) {
	text, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		in.line.AppendHistory(text)
	}
	return text, nil
}

// Close saves the input history and restores the terminal
func (in *inputLine) Close() {
	if err := os.MkdirAll(filepath.Dir(in.historyFile), 0755); err == nil {
		if f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = in.line.WriteHistory(f)
			f.Close()
		}
	}
	in.line.Close()
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
