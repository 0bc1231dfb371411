package t2048

import (
	"fmt"
)

// Status is the game's position in the win/lose state machine.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
	StatusWonContinue
)

// String returns the status label used in snapshots.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "Playing"
	case StatusWon:
		return "Won"
	case StatusLost:
		return "Lost"
	case StatusWonContinue:
		return "Won (continue)"
	default:
		return "Unknown"
	}
}

// IsWin reports whether the status is one of the win variants.
func (s Status) IsWin() bool {
	return s == StatusWon || s == StatusWonContinue
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s < StatusPlaying || s > StatusWonContinue {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown status %q", string(text))
	}
	*s = parsed
	return nil
}

// ParseStatus converts a status label back to a Status.
func ParseStatus(label string) (Status, bool) {
	switch label {
	case "Playing":
		return StatusPlaying, true
	case "Won":
		return StatusWon, true
	case "Lost":
		return StatusLost, true
	case "Won (continue)":
		return StatusWonContinue, true
	}
	return 0, false
}

// Defaults for New.
const (
	DefaultWinValue      = 2048
	DefaultStopOnWin     = true
	DefaultInitialSpawns = 2
)

// State is one immutable game position. Move, Undo and Redo return new
// values and never modify their input.
type State struct {
	board     Grid
	score     int
	status    Status
	winValue  int
	stopOnWin bool
	spawner   Spawner
	history   []State
	future    []State
}

// Options configures New.
type Options struct {
	Size          int
	WinValue      int
	StopOnWin     bool
	InitialSpawns int
}

// DefaultOptions returns the classic 4x4 / 2048 rules.
func DefaultOptions() Options {
	return Options{
		Size:          DefaultBoardSize,
		WinValue:      DefaultWinValue,
		StopOnWin:     DefaultStopOnWin,
		InitialSpawns: DefaultInitialSpawns,
	}
}

// Option tweaks Options.
type Option func(*Options)

// WithSize sets the board dimension.
func WithSize(n int) Option {
	return func(o *Options) { o.Size = n }
}

// WithWinValue sets the tile value that wins the game.
func WithWinValue(v int) Option {
	return func(o *Options) { o.WinValue = v }
}

// WithStopOnWin controls whether reaching the win value ends the game.
func WithStopOnWin(stop bool) Option {
	return func(o *Options) { o.StopOnWin = stop }
}

// WithInitialSpawns sets how many tiles are requested at start.
func WithInitialSpawns(n int) Option {
	return func(o *Options) { o.InitialSpawns = n }
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// Validate checks option ranges.
func (o Options) Validate() error {
	switch {
	case o.Size < 2:
		return fmt.Errorf("%w: board size %d, need at least 2", ErrInvalidConfig, o.Size)
	case o.WinValue < 4 || !isTileValue(o.WinValue):
		return fmt.Errorf("%w: win value %d is not a power of two >= 4", ErrInvalidConfig, o.WinValue)
	case o.InitialSpawns < 0 || o.InitialSpawns > o.Size*o.Size:
		return fmt.Errorf("%w: initial spawns %d outside [0, %d]", ErrInvalidConfig, o.InitialSpawns, o.Size*o.Size)
	}
	return nil
}

// New starts a game on an empty board and performs the initial spawns.
// Each initial placement is validated exactly like an in-game spawn.
func New(spawner Spawner, opts ...Option) (State, error) {
	if isNilSpawner(spawner) {
		return State{}, ErrMissingSpawner
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return State{}, err
	}

	board := NewGrid(o.Size)
	for i := range o.InitialSpawns {
		next, err := applySpawn(board, spawner)
		if err != nil {
			return State{}, fmt.Errorf("initial spawn %d: %w", i+1, err)
		}
		board = next
	}

	return State{
		board:     board,
		status:    StatusPlaying,
		winValue:  o.WinValue,
		stopOnWin: o.StopOnWin,
		spawner:   spawner,
	}, nil
}

// Board returns the current board.
func (s State) Board() Grid { return s.board }

// Score returns the accumulated score.
func (s State) Score() int { return s.score }

// Status returns the game status.
func (s State) Status() Status { return s.status }

// Size returns the board dimension.
func (s State) Size() int { return s.board.Size() }

// WinValue returns the winning tile value.
func (s State) WinValue() int { return s.winValue }

// StopOnWin reports whether reaching the win value halts play.
func (s State) StopOnWin() bool { return s.stopOnWin }

// Spawner returns the attached spawn policy, possibly nil after
// deserialization.
func (s State) Spawner() Spawner { return s.spawner }

// History returns a copy of the undo stack, most recent last.
func (s State) History() []State { return copyStack(s.history) }

// Future returns a copy of the redo stack, most recent last.
func (s State) Future() []State { return copyStack(s.future) }

// CanUndo reports whether Undo would change the state.
func (s State) CanUndo() bool { return len(s.history) > 0 }

// CanRedo reports whether Redo would change the state.
func (s State) CanRedo() bool { return len(s.future) > 0 }

// IsOver reports whether Move can no longer change the state.
func (s State) IsOver() bool {
	return s.status == StatusLost || (s.status == StatusWon && s.stopOnWin)
}

// WithBoard returns a copy of the state playing on board. The board must
// have the same size and only valid tile values. Stacks are kept.
func (s State) WithBoard(board Grid) (State, error) {
	if board.Size() != s.board.Size() {
		return State{}, fmt.Errorf("%w: board is %dx%d, state is %dx%d",
			ErrInvalidConfig, board.Size(), board.Size(), s.board.Size(), s.board.Size())
	}
	if err := board.Validate(); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.board = board.Clone()
	return s, nil
}

// WithSpawner returns a copy of the state using a different spawn policy.
func (s State) WithSpawner(sp Spawner) State {
	s.spawner = sp
	return s
}

// Equal compares every field except the spawner, stacks included.
func (s State) Equal(other State) bool {
	if !s.sameFrame(other) {
		return false
	}
	return stacksEqual(s.history, other.history) && stacksEqual(s.future, other.future)
}

// sameFrame compares board, score, status and rules.
func (s State) sameFrame(other State) bool {
	return s.board.Equal(other.board) &&
		s.score == other.score &&
		s.status == other.status &&
		s.winValue == other.winValue &&
		s.stopOnWin == other.stopOnWin
}

func stacksEqual(a, b []State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// snapshot returns a detached copy suitable for a history or future stack:
// own board copy, no stacks (Undo and Redo rebuild them), no spawner.
func (s State) snapshot() State {
	return State{
		board:     s.board.Clone(),
		score:     s.score,
		status:    s.status,
		winValue:  s.winValue,
		stopOnWin: s.stopOnWin,
	}
}

// push returns a new stack with entry appended. The input slice is never
// written to, so stacks shared between states stay intact.
func push(stack []State, entry State) []State {
	out := make([]State, len(stack)+1)
	copy(out, stack)
	out[len(stack)] = entry
	return out
}

// pop returns the last entry and a new stack without it.
func pop(stack []State) (State, []State) {
	last := stack[len(stack)-1]
	return last, copyStack(stack[:len(stack)-1])
}

func copyStack(stack []State) []State {
	if len(stack) == 0 {
		return nil
	}
	out := make([]State, len(stack))
	copy(out, stack)
	return out
}
