// Package app is the application layer between the CLI and the data
// layer. It constructs every dependency from configuration — session,
// store, recorder, service, logger — and owns their lifecycle.
package app

import (
	"fmt"

	"github.com/collabcloud/collab/internal/collab"
	"github.com/collabcloud/collab/internal/config"
	"github.com/collabcloud/collab/internal/session"
	"github.com/collabcloud/collab/internal/store"
)

// App wires the configured store into a collab.Service and manages the
// persisted session. The caller must call Close when done.
type App struct {
	cfg     *config.Config
	sess    *session.Session
	store   collab.Store
	service *collab.Service
	flush   func()
}

// New creates a fully wired App from the given config. The session is
// rehydrated from disk so identity survives between CLI invocations.
func New(cfg *config.Config) (*App, error) {
	logger, flush, err := newLogger(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	sess, err := session.Load(cfg.SessionPath())
	if err != nil {
		flush()
		return nil, fmt.Errorf("loading session: %w", err)
	}

	clock := collab.RealClock{}
	idgen := collab.NewULIDGenerator()

	st, err := store.FromConfig(cfg, sess, idgen, clock)
	if err != nil {
		flush()
		return nil, fmt.Errorf("creating store: %w", err)
	}

	log := &zapAdapter{l: logger.Sugar()}
	recorder := collab.NewRecorder(st, sess, clock, log)
	svc := collab.NewService(st, sess, recorder, log)

	return &App{
		cfg:     cfg,
		sess:    sess,
		store:   st,
		service: svc,
		flush:   flush,
	}, nil
}

// Service returns the data access layer.
func (a *App) Service() *collab.Service { return a.service }

// Session returns the current session object.
func (a *App) Session() *session.Session { return a.sess }

// SaveSession persists the in-memory session to disk.
func (a *App) SaveSession() error {
	return session.Save(a.cfg.SessionPath(), a.sess)
}

// ClearSession resets the in-memory session and removes the session file.
func (a *App) ClearSession() error {
	a.sess.Reset()
	return session.Clear(a.cfg.SessionPath())
}

// Close releases the store and flushes buffered log output.
func (a *App) Close() error {
	err := a.store.Close()
	a.flush()
	return err
}
