package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/longkey1/chatc/internal/chatc/command"
	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/longkey1/chatc/internal/chatc/dispatch"
	"github.com/longkey1/chatc/internal/chatc/history"
	"github.com/longkey1/chatc/internal/chatc/remote"
	"github.com/longkey1/chatc/internal/chatc/theme"
	"github.com/longkey1/chatc/internal/kv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	fileStoreDir   = "data"
	sqliteDBFile   = "chatc.db"
	probeTimeout   = 3 * time.Second
	inputHistoryFn = "input_history"
)

// app bundles the components shared by the commands
type app struct {
	cfg         *config.Config
	store       kv.Store
	history     *history.Store
	themes      *theme.Store
	interpreter *command.Interpreter
	client      *remote.Client
	logger      *zap.Logger
}

// newApp loads the configuration, opens the storage backend and restores the
// saved history
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	h := history.NewStore(store, cfg.HistoryKey, cfg.HistoryCap, logger)
	h.Load(ctx)

	return &app{
		cfg:         cfg,
		store:       store,
		history:     h,
		themes:      theme.NewStore(store, cfg.ThemeKey, logger),
		interpreter: command.NewInterpreter(h, nil, nil, logger),
		client: remote.NewClient(remote.Config{
			Endpoint:           cfg.Endpoint,
			Timeout:            cfg.RequestTimeout,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			Logger:             logger,
		}),
		logger: logger,
	}, nil
}

// openStore opens the configured key-value backend under the data directory
func openStore(cfg *config.Config) (kv.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		store, err := kv.NewFileStore(filepath.Join(cfg.DataDir, fileStoreDir))
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		return store, nil
	case config.BackendSQLite:
		store, err := kv.NewSQLiteStore(filepath.Join(cfg.DataDir, sqliteDBFile))
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}

// Close releases the storage backend
func (a *app) Close() error {
	return a.store.Close()
}

// online reports whether remote sends should be attempted
func (a *app) online(ctx context.Context) bool {
	if a.cfg.Offline {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := a.client.Reachable(ctx); err != nil {
		a.logger.Debug("endpoint unreachable", zap.String("endpoint", a.cfg.Endpoint), zap.Error(err))
		return false
	}
	return true
}

// newDispatcher wires a dispatcher to view. Unless offline is forced, the
// endpoint is probed again while the session is offline.
func (a *app) newDispatcher(ctx context.Context, view dispatch.View) *dispatch.Dispatcher {
	var prober dispatch.Prober
	if !a.cfg.Offline {
		prober = a.client
	}
	return dispatch.New(dispatch.Config{
		MaxMessageLength: a.cfg.MaxMessageLength,
		LocalDelay:       a.cfg.LocalCommandDelay,
		Online:           a.online(ctx),
		Prober:           prober,
		Logger:           a.logger,
	}, view, a.interpreter, a.client, a.history)
}

// closeApp closes a and joins the error with err
func closeApp(a *app, err *error) {
	if cerr := a.Close(); cerr != nil {
		*err = errors.Join(*err, fmt.Errorf("closing store: %w", cerr))
	}
}
