package t2048

// Snapshot captures the adapter state for determinism testing and replay.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick    uint64
	Variant string
	Size    int
	Target  int
	Score   int
	Moves   int
	Board   []int // Row-major, Size*Size cells
	MaxTile int
	Status  string
	Undo    int // Undo stack depth
	Redo    int // Redo stack depth
	Paused  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	board := g.state.Board()
	n := board.Size()
	cells := make([]int, 0, n*n)
	for _, row := range board.Rows() {
		cells = append(cells, row...)
	}

	return Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Size:    n,
		Target:  g.state.WinValue(),
		Score:   g.state.Score(),
		Moves:   g.moves,
		Board:   cells,
		MaxTile: board.MaxTile(),
		Status:  g.state.Status().String(),
		Undo:    len(g.state.history),
		Redo:    len(g.state.future),
		Paused:  g.paused || g.tooSmall,
	}
}
