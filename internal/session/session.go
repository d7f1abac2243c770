// Package session keeps one widget workspace per browser session: a grid and
// lazily created form engines, dropped after an idle period.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
)

// DefaultTTL is the idle period after which a workspace is dropped.
const DefaultTTL = 30 * time.Minute

// ErrNoFormFactory is returned when a form is requested from a store built
// without WithFormFactory.
var ErrNoFormFactory = errors.New("session: no form factory configured")

// FormFactory builds a fresh engine for the named definition.
type FormFactory func(name string) (*form.Engine, error)

// GridFactory builds an empty grid for a new workspace.
type GridFactory func() *grid.Grid

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long an idle workspace survives. Non-positive values keep
// DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFormFactory sets how workspaces build form engines. Without one,
// Workspace.Form fails with ErrNoFormFactory.
func WithFormFactory(fn FormFactory) Option {
	return func(s *Store) { s.newForm = fn }
}

// WithGridFactory sets how workspaces build their grid. Nil is ignored.
func WithGridFactory(fn GridFactory) Option {
	return func(s *Store) {
		if fn != nil {
			s.newGrid = fn
		}
	}
}

// WithGridSource sets where a workspace grid loads its records from on first
// use. Without a source grids start empty.
func WithGridSource(src grid.Source) Option {
	return func(s *Store) { s.source = src }
}

// Store maps session ids to workspaces.
type Store struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	ttl        time.Duration
	now        func() time.Time
	newForm    FormFactory
	newGrid    GridFactory
	source     grid.Source
}

// NewStore builds an empty store.
func NewStore(options ...Option) *Store {
	s := &Store{
		workspaces: make(map[string]*Workspace),
		ttl:        DefaultTTL,
		now:        time.Now,
		newGrid:    func() *grid.Grid { return grid.New() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Acquire returns the live workspace for id, or a new one under a fresh id
// when id is unknown or expired. created reports the latter.
func (s *Store) Acquire(id string) (ws *Workspace, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if ws, ok := s.workspaces[id]; ok && id != "" {
		if !ws.expired(now, s.ttl) {
			ws.touch(now)
			return ws, false
		}
		delete(s.workspaces, id)
	}

	ws = &Workspace{
		id:       newID(),
		grid:     s.newGrid(),
		forms:    make(map[string]*form.Engine),
		newForm:  s.newForm,
		source:   s.source,
		lastSeen: now,
	}
	s.workspaces[ws.id] = ws
	return ws, true
}

// Get returns the live workspace for id without creating one.
func (s *Store) Get(id string) (*Workspace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if ws.expired(now, s.ttl) {
		delete(s.workspaces, id)
		return nil, false
	}
	ws.touch(now)
	return ws, true
}

// Delete drops the workspace for id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.workspaces, id)
	s.mu.Unlock()
}

// Len returns the number of stored workspaces, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// Sweep drops expired workspaces and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, ws := range s.workspaces {
		if ws.expired(now, s.ttl) {
			delete(s.workspaces, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func newID() string {
	return rand.Text()
}

// Workspace is the per-session widget state.
type Workspace struct {
	id       string
	grid     *grid.Grid
	newForm  FormFactory
	source   grid.Source
	lastSeen time.Time

	mu       sync.Mutex
	forms    map[string]*form.Engine
	loaded   bool
	loadErr  error
	loadDone chan struct{}

	themeName    string
	themeVariant string
	flash        string
}

// ID is the session id to hand back to the client.
func (w *Workspace) ID() string { return w.id }

// Grid returns the workspace grid. Call EnsureGrid first to populate it.
func (w *Workspace) Grid() *grid.Grid { return w.grid }

// EnsureGrid loads the grid from the store source once. Concurrent callers
// wait for the first load; a failed load is retried on the next call.
func (w *Workspace) EnsureGrid(ctx context.Context) error {
	w.mu.Lock()
	if w.loaded || w.source == nil {
		w.mu.Unlock()
		return nil
	}
	if done := w.loadDone; done != nil {
		w.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.loadErr
	}
	done := make(chan struct{})
	w.loadDone = done
	w.mu.Unlock()

	err := w.grid.Load(ctx, w.source)

	w.mu.Lock()
	w.loaded = err == nil
	w.loadErr = err
	w.loadDone = nil
	w.mu.Unlock()
	close(done)
	return err
}

// Form returns the engine for the named definition, creating it on first use.
func (w *Workspace) Form(name string) (*form.Engine, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if engine, ok := w.forms[name]; ok {
		return engine, nil
	}
	if w.newForm == nil {
		return nil, ErrNoFormFactory
	}
	engine, err := w.newForm(name)
	if err != nil {
		return nil, fmt.Errorf("session: form %q: %w", name, err)
	}
	w.forms[name] = engine
	return engine, nil
}

// Theme returns the theme the session picked, blank when none.
func (w *Workspace) Theme() (name, variant string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.themeName, w.themeVariant
}

// SetTheme records the session theme preference.
func (w *Workspace) SetTheme(name, variant string) {
	w.mu.Lock()
	w.themeName, w.themeVariant = name, variant
	w.mu.Unlock()
}

// SetFlash stores a message shown on the next page render.
func (w *Workspace) SetFlash(msg string) {
	w.mu.Lock()
	w.flash = msg
	w.mu.Unlock()
}

// TakeFlash returns and clears the pending flash message.
func (w *Workspace) TakeFlash() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	msg := w.flash
	w.flash = ""
	return msg
}

func (w *Workspace) touch(now time.Time) {
	w.lastSeen = now
}

func (w *Workspace) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(w.lastSeen) > ttl
}
