/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/longkey1/chatc/internal/chatc/dispatch"
	"github.com/longkey1/chatc/internal/chatc/terminal"
	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send one message and print the reply",
	Long: `Send one message and print the reply.
Slash commands such as /time or /joke are answered locally.
The exchange is saved to the conversation history.

If no message is provided as an argument, it reads from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var message string
		if len(args) > 0 {
			message = strings.Join(args, " ")
		} else {
			// Read from stdin
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimSpace(string(input))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer closeApp(a, &err)

		view := terminal.New(os.Stdout, os.Stderr, a.themes.Get(ctx), nil)
		out := a.newDispatcher(ctx, view).Submit(ctx, message)

		switch {
		case out.Route == dispatch.RouteRejected && out.Err == nil:
			return fmt.Errorf("no message provided")
		case out.Err != nil:
			return out.Err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
