package t2048

import (
	"fmt"
	"math/rand"
	"sync"
)

// Placement asks the engine to put a tile of Value at (Row, Col).
type Placement struct {
	Row   int `yaml:"row" json:"row"`
	Col   int `yaml:"col" json:"col"`
	Value int `yaml:"value" json:"value"`
}

// Spawner supplies the next tile to place. It receives the post-merge board
// and returns false when it has nothing to place. The engine validates every
// placement; a spawner may keep internal state between calls.
type Spawner interface {
	NextSpawn(board Grid) (Placement, bool)
}

// SpawnerFunc adapts a plain function to the Spawner interface.
type SpawnerFunc func(board Grid) (Placement, bool)

// NextSpawn calls f(board).
func (f SpawnerFunc) NextSpawn(board Grid) (Placement, bool) {
	return f(board)
}

// NoSpawner never places a tile.
var NoSpawner Spawner = SpawnerFunc(func(Grid) (Placement, bool) { return Placement{}, false })

// isNilSpawner catches nil interfaces as well as nil pointers of the
// package's own spawner types stored in a non-nil interface.
func isNilSpawner(s Spawner) bool {
	switch v := s.(type) {
	case nil:
		return true
	case SpawnerFunc:
		return v == nil
	case *QueueSpawner:
		return v == nil
	case *RandomSpawner:
		return v == nil
	case *HarnessQueue:
		return v == nil
	}
	return false
}

// validatePlacement checks a spawner's output against the current board.
func validatePlacement(board Grid, p Placement) error {
	n := board.Size()
	switch {
	case !board.InBounds(p.Row, p.Col):
		return fmt.Errorf("%w: row=%d col=%d value=%d outside %dx%d board", ErrInvalidPlacement, p.Row, p.Col, p.Value, n, n)
	case board.At(p.Row, p.Col) != 0:
		return fmt.Errorf("%w: row=%d col=%d value=%d targets occupied cell", ErrInvalidPlacement, p.Row, p.Col, p.Value)
	case p.Value != 2 && p.Value != 4:
		return fmt.Errorf("%w: row=%d col=%d value=%d is not 2 or 4", ErrInvalidPlacement, p.Row, p.Col, p.Value)
	}
	return nil
}

// applySpawn asks the spawner for a tile and places it on a copy of board.
func applySpawn(board Grid, s Spawner) (Grid, error) {
	if isNilSpawner(s) {
		return board, nil
	}
	p, ok := s.NextSpawn(board)
	if !ok {
		return board, nil
	}
	if err := validatePlacement(board, p); err != nil {
		return Grid{}, err
	}
	return board.With(p.Row, p.Col, p.Value), nil
}

// firstEmpty returns the first empty cell in row-major order with value 2.
func firstEmpty(board Grid) (Placement, bool) {
	for r := range board.Size() {
		for c := range board.Size() {
			if board.At(r, c) == 0 {
				return Placement{Row: r, Col: c, Value: 2}, true
			}
		}
	}
	return Placement{}, false
}

// FirstEmptySpawner places a 2 on the first empty cell, scanning row-major.
type FirstEmptySpawner struct{}

// NextSpawn implements Spawner.
func (FirstEmptySpawner) NextSpawn(board Grid) (Placement, bool) {
	return firstEmpty(board)
}

// QueueSpawner replays a fixed list of placements in order.
type QueueSpawner struct {
	entries  []Placement
	next     int
	fallback bool
}

// NewQueueSpawner returns a spawner that yields entries in order and then
// nothing.
func NewQueueSpawner(entries ...Placement) *QueueSpawner {
	q := &QueueSpawner{entries: make([]Placement, len(entries))}
	copy(q.entries, entries)
	return q
}

// NewScriptSpawner behaves like NewQueueSpawner, except that once a
// non-empty script runs out it keeps placing 2s on the first empty cell.
// An empty script never spawns.
func NewScriptSpawner(entries ...Placement) *QueueSpawner {
	q := NewQueueSpawner(entries...)
	q.fallback = len(entries) > 0
	return q
}

// NextSpawn implements Spawner.
func (q *QueueSpawner) NextSpawn(board Grid) (Placement, bool) {
	if q.next < len(q.entries) {
		p := q.entries[q.next]
		q.next++
		return p, true
	}
	if q.fallback {
		return firstEmpty(board)
	}
	return Placement{}, false
}

// DefaultFourProbability is the classic chance of spawning a 4.
const DefaultFourProbability = 0.10

// RandomSpawner picks a uniformly random empty cell and places a 4 with
// probability FourProb, otherwise a 2. The caller owns the random source.
type RandomSpawner struct {
	rng      *rand.Rand
	fourProb float64
}

// NewRandomSpawner creates a random spawner drawing from rng.
func NewRandomSpawner(rng *rand.Rand, fourProb float64) *RandomSpawner {
	return &RandomSpawner{rng: rng, fourProb: fourProb}
}

// SetFourProbability changes the chance of spawning a 4.
func (s *RandomSpawner) SetFourProbability(p float64) {
	s.fourProb = p
}

// FourProbability returns the current chance of spawning a 4.
func (s *RandomSpawner) FourProbability() float64 {
	return s.fourProb
}

// NextSpawn implements Spawner.
func (s *RandomSpawner) NextSpawn(board Grid) (Placement, bool) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return Placement{}, false
	}

	cell := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rng.Float64() < s.fourProb {
		value = 4
	}

	return Placement{Row: cell.Row, Col: cell.Col, Value: value}, true
}

// HarnessQueue is a spawn queue fed from outside the game loop, e.g. by a
// test harness or a script file. It is safe for concurrent Push and
// NextSpawn. Entries whose value is not 2 or 4 are consumed and reported as
// "no spawn".
type HarnessQueue struct {
	mu      sync.Mutex
	pending []Placement
}

// NewHarnessQueue creates a queue pre-filled with entries.
func NewHarnessQueue(entries ...Placement) *HarnessQueue {
	h := &HarnessQueue{}
	h.Push(entries...)
	return h
}

// Push appends entries to the queue.
func (h *HarnessQueue) Push(entries ...Placement) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, entries...)
}

// Len returns the number of queued entries.
func (h *HarnessQueue) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// NextSpawn implements Spawner.
func (h *HarnessQueue) NextSpawn(Grid) (Placement, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.pending) == 0 {
		return Placement{}, false
	}
	p := h.pending[0]
	h.pending = h.pending[1:]
	if p.Value != 2 && p.Value != 4 {
		return Placement{}, false
	}
	return p, true
}
