package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/quistberg/ladle/internal/content"
	"github.com/quistberg/ladle/internal/effects"
	"github.com/quistberg/ladle/internal/event"
	"github.com/quistberg/ladle/internal/hook"
	"github.com/quistberg/ladle/internal/kitchen"
	"github.com/quistberg/ladle/internal/progression"
	"github.com/quistberg/ladle/internal/scheduler"
	"github.com/quistberg/ladle/internal/serving"
	"github.com/quistberg/ladle/internal/utils"
)

// ErrRunNotFound is returned for unknown run ids.
var ErrRunNotFound = fmt.Errorf("run not found")

// Manager creates and tracks live games, one per run id. Each game gets its
// own scheduler; the content tables, hook registry, and event bus are shared.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game

	tables   *content.Tables
	resolver *content.Resolver
	hooks    *hook.Registry
	bus      event.Bus
	rng      utils.Rand
}

// NewManager wires the engine services once.
func NewManager(tables *content.Tables, bus event.Bus, rng utils.Rand) *Manager {
	return &Manager{
		games:    make(map[string]*Game),
		tables:   tables,
		resolver: content.NewResolver(tables),
		hooks:    effects.BuildRegistry(tables, rng),
		bus:      bus,
		rng:      rng,
	}
}

// CreateRun starts a new game and returns it.
func (m *Manager) CreateRun(ctx context.Context) (*Game, error) {
	deps := Deps{
		Kitchen:     kitchen.NewService(kitchen.DefaultConfig(), m.tables, m.hooks, m.rng, m.bus),
		Serving:     serving.NewService(serving.DefaultConfig(), m.tables, m.resolver, m.hooks, m.rng, m.bus),
		Progression: progression.NewService(progression.DefaultConfig(), m.tables, m.hooks, m.rng, m.bus),
		Effects:     effects.NewService(m.tables, m.resolver, m.hooks, m.rng),
		Tables:      m.tables,
		Scheduler:   scheduler.NewTimer(),
		Presenter:   NewSlogPresenter(ctx),
	}

	g := New(ctx, deps)
	if err := g.Start(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.games[g.RunID()] = g
	m.mu.Unlock()
	return g, nil
}

// Get returns the game for a run id.
func (m *Manager) Get(runID string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return g, nil
}

// Remove stops and forgets a game.
func (m *Manager) Remove(runID string) {
	m.mu.Lock()
	g, ok := m.games[runID]
	delete(m.games, runID)
	m.mu.Unlock()
	if ok {
		g.Stop()
	}
}

// Shutdown stops every live game.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	games := make([]*Game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	m.games = make(map[string]*Game)
	m.mu.Unlock()

	for _, g := range games {
		g.Stop()
	}
}

// Resolver exposes the shared profile resolver for read-only presentation.
func (m *Manager) Resolver() *content.Resolver {
	return m.resolver
}

// Tables exposes the immutable content tables.
func (m *Manager) Tables() *content.Tables {
	return m.tables
}
