package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/longkey1/chatc/internal/chatc/history"
	"github.com/longkey1/chatc/internal/chatc/terminal"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage the saved conversation",
	Long: `Inspect and manage the saved conversation.

The conversation keeps the most recent messages (100 by default) and is
restored when a chat session starts.`,
}

// historyShowCmd represents the history show command
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if a.history.Len() == 0 {
			fmt.Println("No conversation history yet.")
			return nil
		}

		n := a.history.Len()
		fmt.Fprintf(os.Stderr, "%d message(s) saved (the last %d are kept)\n\n", n, a.history.Cap())
		if limit > 0 && limit < n {
			n = limit
		}
		view := terminal.New(os.Stdout, os.Stderr, a.themes.Get(cmd.Context()), nil)
		a.history.RestoreRecent(n, view.Render)
		return nil
	},
}

// historySearchCmd represents the history search command
var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the saved conversation",
	Long: `Search the saved conversation for messages containing the query.
Matching is case-insensitive; the first 5 matches are shown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		res := a.interpreter.Execute(cmd.Context(), "/search "+strings.Join(args, " "))
		fmt.Println(res.Reply)
		return nil
	},
}

// historyStatsCmd represents the history stats command
var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show conversation statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		fmt.Println(a.interpreter.Execute(cmd.Context(), "/stats").Reply)
		return nil
	},
}

// historyClearCmd represents the history clear command
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved conversation",
	Long: `Delete the saved conversation permanently.

Warning: This action cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		force, _ := cmd.Flags().GetBool("force")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		if a.history.Len() == 0 {
			fmt.Println("History is already empty.")
			return nil
		}

		if !force {
			fmt.Printf("Are you sure you want to delete %d messages? [y/N]: ", a.history.Len())
			var response string
			fmt.Scanln(&response)

			if response != "y" && response != "Y" {
				fmt.Println("Deletion cancelled.")
				return nil
			}
		}

		fmt.Println(a.interpreter.Execute(cmd.Context(), "/clear").Reply)
		return nil
	},
}

// historyExportCmd represents the history export command
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved conversation to a text file",
	Long: `Write the saved conversation to a plain-text file named
chat-history-YYYYMMDD-HHMMSS.txt in the output directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		dir, _ := cmd.Flags().GetString("output")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		path, err := exportHistory(cmd.Context(), a, dir, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("Conversation exported to %s\n", path)
		return nil
	},
}

// historyImportCmd represents the history import command
var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append messages from a JSON file",
	Long: `Append messages from a JSON file to the saved conversation.

The file must hold a JSON list of messages, each with "text", "type"
(user, bot or system) and an optional RFC 3339 "timestamp". Invalid entries
are skipped; the oldest messages are dropped when the history is full.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		res, err := importHistory(cmd.Context(), a, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d message(s)", res.Imported)
		if res.Skipped > 0 {
			fmt.Printf(" (%d invalid skipped)", res.Skipped)
		}
		fmt.Println(".")
		return nil
	},
}

// importHistory appends the messages of the JSON file at path
func importHistory(ctx context.Context, a *app, path string) (history.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return history.ImportResult{}, fmt.Errorf("file not found: %s", path)
		}
		return history.ImportResult{}, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return a.history.Import(ctx, f)
}

// exportHistory writes the conversation to a timestamped file in dir and
// returns its path
func exportHistory(_ context.Context, a *app, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, history.ExportFilename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := a.history.Export(f, time.Local); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)

	historyShowCmd.Flags().IntP("limit", "n", 0, "Show only the most recent n messages")
	historyClearCmd.Flags().BoolP("force", "f", false, "Delete without asking for confirmation")
	historyExportCmd.Flags().StringP("output", "o", ".", "Directory to write the export file to")
}
