// Package app opens the planner's storage, loads the plan and keeps it persisted.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"studyplan/internal/config"
	"studyplan/internal/logging"
	"studyplan/internal/migrate"
	"studyplan/internal/persist"
	"studyplan/internal/plan"
	"studyplan/internal/storage"
)

// KV is the byte store the planner reads and writes.
type KV interface {
	migrate.Getter
	persist.Setter
	Close() error
}

type App struct {
	Config config.Config
	Plan   *plan.Store
	Source migrate.Source

	kv        KV
	persister *persist.Persister
	logger    *log.Logger
}

type Option func(*options)

type options struct {
	kv    KV
	newID plan.IDFunc
}

// WithKV uses kv instead of opening the SQLite database named by the config.
func WithKV(kv KV) Option {
	return func(o *options) { o.kv = kv }
}

func WithIDFunc(fn plan.IDFunc) Option {
	return func(o *options) { o.newID = fn }
}

// Open loads the stored plan and subscribes a persister to it. A plan upgraded
// from the legacy layout is written under the current key right away.
func Open(cfg config.Config, logger *log.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	o := options{newID: plan.NewID}
	for _, opt := range opts {
		opt(&o)
	}

	kv := o.kv
	if kv == nil {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		kv = db
	}

	res, err := migrate.Load(kv, o.newID)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("load plan: %w", err), kv.Close())
	}
	logger.Info("plan loaded", "source", res.Source, "days", len(res.Tasks))

	store := plan.NewStore(res.Tasks, plan.WithIDFunc(o.newID))
	p := persist.New(kv, migrate.CurrentKey, logger)
	store.Subscribe(p.Save)
	if res.Source == migrate.SourceLegacy {
		logger.Info("migrating legacy plan", "from", migrate.LegacyKey, "to", migrate.CurrentKey)
		p.Save(res.Tasks)
	}

	return &App{
		Config:    cfg,
		Plan:      store,
		Source:    res.Source,
		kv:        kv,
		persister: p,
		logger:    logger,
	}, nil
}

// Close writes the pending snapshot and releases the store.
func (a *App) Close() error {
	return errors.Join(a.persister.Close(), a.kv.Close())
}

// LastSaved reports when the plan was last written, when the store records it.
func (a *App) LastSaved() (time.Time, bool) {
	stamped, ok := a.kv.(interface {
		UpdatedAt(key string) (time.Time, bool, error)
	})
	if !ok {
		return time.Time{}, false
	}
	at, ok, err := stamped.UpdatedAt(migrate.CurrentKey)
	if err != nil {
		a.logger.Warn("failed to read save time", "err", err)
		return time.Time{}, false
	}
	return at, ok
}

func (a *App) Logger() *log.Logger {
	return a.logger
}
