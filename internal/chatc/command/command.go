// Package command interprets the slash commands that are answered locally,
// without a request to the remote endpoint.
package command

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/history"
	"go.uber.org/zap"
)

// History is the part of the history store the commands read and clear
type History interface {
	Len() int
	Search(query string) history.SearchResult
	Stats() history.Stats
	Clear(ctx context.Context) error
}

// Result is the outcome of interpreting one input
type Result struct {
	Reply   string
	Handled bool // false means the input is not a local command
	Cleared bool // the history was cleared and the display should be reset
}

// NotCommand is the result for input that is not a local command
var NotCommand = Result{}

// Command is a local slash command
type Command struct {
	Name        string // e.g. "/help"
	Usage       string // e.g. "/search <query>"
	Description string
	Aliases     []string // other names matched like Name, e.g. "/commands"
	Handler     func(ctx context.Context, args string) Result
}

// Interpreter recognizes local commands and produces their replies
type Interpreter struct {
	history  History
	clock    chatc.Clock
	rng      *rand.Rand
	logger   *zap.Logger
	commands map[string]*Command
}

// NewInterpreter creates an interpreter. clock and rng make /time, /date and
// /joke reproducible; nil selects the system clock and a randomly seeded source.
func NewInterpreter(h History, clock chatc.Clock, rng *rand.Rand, logger *zap.Logger) *Interpreter {
	if clock == nil {
		clock = chatc.SystemClock
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	in := &Interpreter{
		history:  h,
		clock:    clock,
		rng:      rng,
		logger:   logger,
		commands: make(map[string]*Command),
	}
	in.registerBuiltins()
	return in
}

// Register adds a command under its name and aliases, replacing any command
// already registered under one of them
func (in *Interpreter) Register(cmd *Command) {
	in.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		in.commands[strings.ToLower(alias)] = cmd
	}
}

// Commands returns the registered commands sorted by name
func (in *Interpreter) Commands() []*Command {
	out := make([]*Command, 0, len(in.commands))
	seen := make(map[*Command]bool, len(in.commands))
	for _, cmd := range in.commands {
		if !seen[cmd] {
			seen[cmd] = true
			out = append(out, cmd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Execute interprets input. Commands match case-insensitively and exactly,
// except /search which takes everything after "/search " as its query.
func (in *Interpreter) Execute(ctx context.Context, input string) Result {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	if lower == searchName || strings.HasPrefix(lower, searchName+" ") {
		query := strings.TrimSpace(trimmed[len(searchName):])
		return in.commands[searchName].Handler(ctx, query)
	}

	cmd, ok := in.commands[lower]
	if !ok {
		return NotCommand
	}
	return cmd.Handler(ctx, "")
}

func reply(text string) Result {
	return Result{Reply: text, Handled: true}
}
