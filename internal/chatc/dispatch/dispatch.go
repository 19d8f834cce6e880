// Package dispatch routes each submitted message to the local command
// interpreter or the remote endpoint and records the exchange.
//
// A Dispatcher has a single logical writer. Input is disabled for the duration
// of a Submit, and concurrent calls to Submit are not supported.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/command"
	"github.com/longkey1/chatc/internal/chatc/remote"
	"go.uber.org/zap"
)

const (
	DefaultMaxMessageLength = 5000
	DefaultLocalDelay       = 300 * time.Millisecond

	// OfflineMessage is shown instead of sending while the session is offline
	OfflineMessage = "📡 You appear to be offline. Check your connection, or use local commands like /help, /time or /joke."
)

// ErrTooLong is reported in the Outcome of a message over the length limit
var ErrTooLong = errors.New("message too long")

// Route tells how a submitted message was handled
type Route string

const (
	RouteRejected Route = "rejected"
	RouteLocal    Route = "local"
	RouteOffline  Route = "offline"
	RouteRemote   Route = "remote"
)

// View is the display the dispatcher drives
type View interface {
	SetInputEnabled(enabled bool)
	SetTyping(typing bool)
	Render(msg chatc.Message)
	Reset()
	Refocus()
	Notice(text string)
}

// Interpreter answers local commands
type Interpreter interface {
	Execute(ctx context.Context, input string) command.Result
}

// Replier fetches a reply from the remote endpoint
type Replier interface {
	Send(ctx context.Context, message string) (string, error)
}

// Prober checks whether the remote endpoint can be reached
type Prober interface {
	Reachable(ctx context.Context) error
}

// History records completed exchanges
type History interface {
	Append(ctx context.Context, user, bot chatc.Message) error
}

// State is the transient session state owned by a Dispatcher
type State struct {
	Online       bool
	Typing       bool
	InputEnabled bool
}

// Outcome describes one completed dispatch
type Outcome struct {
	Route     Route
	User      chatc.Message // zero when rejected
	Reply     chatc.Message // bot or system message, zero when rejected
	Persisted bool
	ErrKind   remote.Kind // set when the remote call failed
	Err       error
}

// Config holds the dispatcher settings
type Config struct {
	MaxMessageLength int
	LocalDelay       time.Duration
	Online           bool
	Prober           Prober // nil keeps Online fixed for the session
	Clock            chatc.Clock
	Logger           *zap.Logger
}

// Dispatcher coordinates one message at a time
type Dispatcher struct {
	view        View
	interpreter Interpreter
	replier     Replier
	history     History
	prober      Prober

	state  State
	maxLen int
	delay  time.Duration
	clock  chatc.Clock
	sleep  func(ctx context.Context, d time.Duration)
	logger *zap.Logger
}

// New creates a dispatcher with input enabled
func New(cfg Config, view View, interpreter Interpreter, replier Replier, h History) *Dispatcher {
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = DefaultMaxMessageLength
	}
	if cfg.LocalDelay < 0 {
		cfg.LocalDelay = 0
	}
	if cfg.Clock == nil {
		cfg.Clock = chatc.SystemClock
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Dispatcher{
		view:        view,
		interpreter: interpreter,
		replier:     replier,
		history:     h,
		prober:      cfg.Prober,
		state:       State{Online: cfg.Online, InputEnabled: true},
		maxLen:      cfg.MaxMessageLength,
		delay:       cfg.LocalDelay,
		clock:       cfg.Clock,
		sleep:       sleepContext,
		logger:      cfg.Logger,
	}
}

// State returns a snapshot of the session state
func (d *Dispatcher) State() State {
	return d.state
}

// SetOnline updates the connectivity flag
func (d *Dispatcher) SetOnline(online bool) {
	if d.state.Online != online {
		d.logger.Debug("connectivity changed", zap.Bool("online", online))
	}
	d.state.Online = online
}

// Submit validates text, routes it and records the result. Failures are
// rendered as system messages; Submit never returns an error.
//
// With a Prober, an offline session probes the endpoint before each message
// that is not a local command, and an offline send failure marks the session
// offline.
func (d *Dispatcher) Submit(ctx context.Context, text string) Outcome {
	text = strings.TrimSpace(text)
	if text == "" {
		d.view.Refocus()
		return Outcome{Route: RouteRejected}
	}
	if n := utf8.RuneCountInString(text); n > d.maxLen {
		d.view.Notice(fmt.Sprintf("✋ Message is too long (%d characters). The limit is %d characters.", n, d.maxLen))
		d.view.Refocus()
		return Outcome{Route: RouteRejected, Err: ErrTooLong}
	}

	d.setInputEnabled(false)
	defer d.setInputEnabled(true)

	user := chatc.NewMessage(chatc.MessageTypeUser, text, d.clock())
	d.view.Render(user)

	if res := d.interpreter.Execute(ctx, text); res.Handled {
		return d.local(ctx, user, res)
	}
	if !d.state.Online && d.prober != nil {
		if err := d.prober.Reachable(ctx); err == nil {
			d.SetOnline(true)
		}
	}
	if !d.state.Online {
		d.sleep(ctx, d.delay)
		msg := chatc.NewMessage(chatc.MessageTypeSystem, OfflineMessage, d.clock())
		d.view.Render(msg)
		return Outcome{Route: RouteOffline, User: user, Reply: msg}
	}
	return d.remote(ctx, user)
}

func (d *Dispatcher) local(ctx context.Context, user chatc.Message, res command.Result) Outcome {
	d.sleep(ctx, d.delay)

	reply := chatc.NewMessage(chatc.MessageTypeBot, res.Reply, d.clock())
	out := Outcome{Route: RouteLocal, User: user, Reply: reply}
	if res.Cleared {
		d.view.Reset()
		d.view.Render(reply)
		return out
	}

	d.view.Render(reply)
	out.Persisted = d.record(ctx, user, reply)
	return out
}

func (d *Dispatcher) remote(ctx context.Context, user chatc.Message) Outcome {
	d.setTyping(true)
	text, err := d.replier.Send(ctx, user.Text)
	d.setTyping(false)

	if err != nil {
		kind := remote.KindOf(err)
		d.logger.Warn("remote reply failed", zap.String("kind", string(kind)), zap.Error(err))
		if kind == remote.KindOffline && d.prober != nil {
			d.SetOnline(false)
		}
		msg := chatc.NewMessage(chatc.MessageTypeSystem, kind.Message(), d.clock())
		d.view.Render(msg)
		return Outcome{Route: RouteRemote, User: user, Reply: msg, ErrKind: kind, Err: err}
	}

	reply := chatc.NewMessage(chatc.MessageTypeBot, text, d.clock())
	d.view.Render(reply)
	return Outcome{Route: RouteRemote, User: user, Reply: reply, Persisted: d.record(ctx, user, reply)}
}

func (d *Dispatcher) record(ctx context.Context, user, reply chatc.Message) bool {
	if err := d.history.Append(ctx, user, reply); err != nil {
		d.logger.Warn("failed to save history", zap.Error(err))
		return false
	}
	return true
}

func (d *Dispatcher) setInputEnabled(enabled bool) {
	d.state.InputEnabled = enabled
	d.view.SetInputEnabled(enabled)
}

func (d *Dispatcher) setTyping(typing bool) {
	d.state.Typing = typing
	d.view.SetTyping(typing)
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
