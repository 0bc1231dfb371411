// Package registry maps variant IDs to game factories. Variants register
// from init, so front ends can list and start them by ID alone.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is a playable variant as seen by a front end. Implementations hold
// no terminal state: the front end maps keys to actions, owns the tick
// timer and paints the Screen.
type Game interface {
	// ID identifies the variant in the CLI and the scores table.
	ID() string

	// Title is the display name, e.g. "2048 (Mini 3x3)".
	Title() string

	// Reset starts a new run for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies at most one action and reports the resulting state.
	Step(in core.InputFrame) core.StepResult

	// Resize updates the drawing area without resetting play.
	Resize(w, h int)

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	// State reports score, status and the game-over flag.
	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry // registration order
)

func lookup(id string) (entry, bool) {
	i := slices.IndexFunc(entries, func(e entry) bool { return e.info.ID == id })
	if i < 0 {
		return entry{}, false
	}
	return entries[i], true
}

// Register adds a variant. It panics if id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := lookup(id); dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries = append(entries, entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	})
}

// List returns the registered variants in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Create returns a new instance of the variant id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := lookup(id)
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := lookup(id)
	return ok
}
