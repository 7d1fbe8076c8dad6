package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Makepad-fr/securix/internal/clipboard"
	"github.com/Makepad-fr/securix/internal/config"
	"github.com/Makepad-fr/securix/internal/logging"
	"github.com/Makepad-fr/securix/internal/passbook"
	"github.com/Makepad-fr/securix/internal/store"
	"github.com/Makepad-fr/securix/internal/store/jsonstore"
	"github.com/Makepad-fr/securix/internal/store/memstore"
	"github.com/Makepad-fr/securix/internal/store/sqlitestore"
	"github.com/Makepad-fr/securix/internal/ui"
)

// newCopier is swapped out in tests.
var newCopier = func(terminal io.Writer) passbook.Copier { return clipboard.New(terminal) }

// runtime is everything a command needs, built once per invocation.
type runtime struct {
	cfg     *config.Config
	log     *slog.Logger
	svc     *passbook.Service
	closers []io.Closer
}

func openRuntime(ctx context.Context, opts *RootOptions, stderr io.Writer) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath, opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := applyFlags(cfg, opts); err != nil {
		return nil, usageError(err)
	}

	if err := ui.SetTheme(cfg.Theme); err != nil {
		return nil, err
	}
	if cfg.NoColor {
		ui.SetColor(false)
	}

	rt := &runtime{cfg: cfg}
	log, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	rt.log = log
	rt.closers = append(rt.closers, logCloser)
	slog.SetDefault(log)

	backend, err := rt.openBackend(ctx)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.svc = passbook.New(store.New(backend), newCopier(stderr), log)
	log.Debug("runtime ready", "storage", cfg.Storage, "data_dir", cfg.DataDir)
	return rt, nil
}

// applyFlags layers command-line flags over the loaded config. --data-dir
// is handled by config.Load.
func applyFlags(cfg *config.Config, opts *RootOptions) error {
	if opts.Storage != "" {
		if err := cfg.SetStorage(opts.Storage); err != nil {
			return err
		}
	}
	if opts.Theme != "" {
		if err := cfg.SetTheme(opts.Theme); err != nil {
			return err
		}
	}
	if opts.NoColor {
		cfg.NoColor = true
	}
	return nil
}

func (rt *runtime) openBackend(ctx context.Context) (store.Backend, error) {
	switch rt.cfg.Storage {
	case config.StorageMemory:
		return memstore.New(), nil
	case config.StorageSQLite:
		if err := ensureDir(rt.cfg.DataDir); err != nil {
			return nil, err
		}
		b, db, err := sqlitestore.Open(ctx, rt.cfg.DBPath())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		rt.closers = append(rt.closers, db)
		return b, nil
	default:
		return jsonstore.New(rt.cfg.DataDir), nil
	}
}

func (rt *runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
