package t2048

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playing returns a Playing state on board with no initial spawns.
func playing(t *testing.T, sp Spawner, board Grid, opts ...Option) State {
	t.Helper()
	opts = append([]Option{WithSize(board.Size()), WithInitialSpawns(0)}, opts...)
	s, err := New(NoSpawner, opts...)
	require.NoError(t, err)
	s, err = s.WithBoard(board)
	require.NoError(t, err)
	return s.WithSpawner(sp)
}

// forbidSpawn fails the test if the engine asks for a tile.
func forbidSpawn(t *testing.T) Spawner {
	return SpawnerFunc(func(Grid) (Placement, bool) {
		t.Error("spawner must not be called")
		return Placement{}, false
	})
}

func TestMoveMergesAndSpawns(t *testing.T) {
	s := playing(t, NewQueueSpawner(Placement{Row: 0, Col: 3, Value: 2}), MustGrid(
		[]int{2, 2, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	))

	next, err := Move(s, DirLeft)
	require.NoError(t, err)

	assert.Equal(t, [][]int{
		{4, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, next.Board().Rows())
	assert.Equal(t, 4, next.Score())
	assert.Equal(t, StatusPlaying, next.Status())
	assert.Len(t, next.History(), 1)
	assert.Empty(t, next.Future())

	// The input state is untouched.
	assert.Equal(t, 2, s.Board().At(0, 1))
	assert.Equal(t, 0, s.Score())
	assert.Empty(t, s.History())
}

func TestMoveNoOpKeepsState(t *testing.T) {
	s := playing(t, forbidSpawn(t), MustGrid(
		[]int{2, 4, 0},
		[]int{0, 0, 0},
		[]int{0, 0, 0},
	))

	next, err := Move(s, DirLeft)
	require.NoError(t, err)

	assert.True(t, next.Equal(s))
	assert.Empty(t, next.History())
}

func TestMoveNoOpOnStuckBoardLoses(t *testing.T) {
	board := MustGrid(
		[]int{2, 4, 2, 4},
		[]int{4, 2, 4, 2},
		[]int{2, 4, 2, 4},
		[]int{4, 2, 4, 2},
	)
	s := playing(t, forbidSpawn(t), board)

	next, err := Move(s, DirUp)
	require.NoError(t, err)

	assert.Equal(t, StatusLost, next.Status())
	assert.True(t, next.Board().Equal(board))
	assert.Equal(t, 0, next.Score())
	assert.Empty(t, next.History())

	again, err := Move(next, DirLeft)
	require.NoError(t, err)
	assert.True(t, again.Equal(next), "a lost game ignores moves")
}

func TestMoveWinStops(t *testing.T) {
	s := playing(t, forbidSpawn(t), MustGrid(
		[]int{1024, 1024, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	))

	won, err := Move(s, DirLeft)
	require.NoError(t, err)

	assert.Equal(t, StatusWon, won.Status())
	assert.Equal(t, 2048, won.Score())
	assert.Equal(t, 2048, won.Board().At(0, 0))
	assert.Len(t, won.Board().EmptyCells(), 15, "no tile is spawned on a stopping win")
	assert.Empty(t, won.History())
	assert.True(t, won.IsOver())

	after, err := Move(won, DirRight)
	require.NoError(t, err)
	assert.True(t, after.Equal(won))
}

func TestMoveWinContinues(t *testing.T) {
	s := playing(t, NewScriptSpawner(Placement{Row: 3, Col: 3, Value: 2}), MustGrid(
		[]int{1024, 1024, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	), WithStopOnWin(false))

	next, err := Move(s, DirLeft)
	require.NoError(t, err)

	assert.Equal(t, StatusWonContinue, next.Status())
	assert.Equal(t, 2, next.Board().At(3, 3))
	assert.Len(t, next.History(), 1)
	assert.False(t, next.IsOver())

	// Later moves keep the continue status.
	later, err := Move(next, DirRight)
	require.NoError(t, err)
	assert.Equal(t, StatusWonContinue, later.Status())
}

func TestMoveCustomWinValue(t *testing.T) {
	s := playing(t, forbidSpawn(t), MustGrid(
		[]int{8, 8, 0},
		[]int{0, 0, 0},
		[]int{0, 0, 0},
	), WithWinValue(16))

	next, err := Move(s, DirRight)
	require.NoError(t, err)
	assert.Equal(t, StatusWon, next.Status())
	assert.Equal(t, 16, next.Board().At(0, 2))
}

func TestMoveLosesWhenSpawnFillsBoard(t *testing.T) {
	s := playing(t, NewQueueSpawner(Placement{Row: 0, Col: 1, Value: 2}), MustGrid(
		[]int{2, 2},
		[]int{8, 4},
	))

	next, err := Move(s, DirLeft)
	require.NoError(t, err)

	assert.Equal(t, [][]int{{4, 2}, {8, 4}}, next.Board().Rows())
	assert.Equal(t, StatusLost, next.Status())
	assert.Equal(t, 4, next.Score())
	assert.Len(t, next.History(), 1)
}

func TestMoveRejectsInvalidSpawn(t *testing.T) {
	board := MustGrid(
		[]int{2, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	tests := []struct {
		name string
		p    Placement
	}{
		{"occupied", Placement{Row: 0, Col: 3, Value: 2}},
		{"out of bounds", Placement{Row: 4, Col: 0, Value: 2}},
		{"negative", Placement{Row: -1, Col: 0, Value: 2}},
		{"bad value", Placement{Row: 1, Col: 1, Value: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playing(t, NewQueueSpawner(tt.p), board)

			_, err := Move(s, DirRight)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPlacement)

			assert.True(t, s.Board().Equal(board), "failed move must not touch the input")
			assert.Empty(t, s.History())
		})
	}
}

func TestMoveWithoutSpawnerSkipsSpawn(t *testing.T) {
	s := playing(t, nil, MustGrid(
		[]int{0, 2},
		[]int{0, 0},
	))

	next, err := Move(s, DirLeft)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 0}, {0, 0}}, next.Board().Rows())
}

func TestMoveClearsRedo(t *testing.T) {
	s := playing(t, NoSpawner, MustGrid(
		[]int{2, 0, 0},
		[]int{0, 0, 0},
		[]int{0, 0, 0},
	))

	s1, err := Move(s, DirRight)
	require.NoError(t, err)
	undone := Undo(s1)
	require.True(t, undone.CanRedo())

	s2, err := Move(undone, DirDown)
	require.NoError(t, err)
	assert.False(t, s2.CanRedo())
	assert.Len(t, s2.History(), 1)
}

func TestNew(t *testing.T) {
	t.Run("missing spawner", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrMissingSpawner)

		for _, sp := range []Spawner{(*QueueSpawner)(nil), (*RandomSpawner)(nil), (*HarnessQueue)(nil), SpawnerFunc(nil)} {
			_, err := New(sp)
			assert.ErrorIs(t, err, ErrMissingSpawner, "%T", sp)
		}
	})

	t.Run("nil pointer spawner on a running game", func(t *testing.T) {
		s := playing(t, (*QueueSpawner)(nil), MustGrid([]int{0, 2}, []int{0, 0}))
		next, err := Move(s, DirLeft)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{2, 0}, {0, 0}}, next.Board().Rows())
	})

	t.Run("invalid options", func(t *testing.T) {
		for _, opt := range []Option{WithSize(1), WithWinValue(100), WithWinValue(2), WithInitialSpawns(17), WithInitialSpawns(-1)} {
			_, err := New(NoSpawner, opt)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		}
	})

	t.Run("initial spawns", func(t *testing.T) {
		s, err := New(NewQueueSpawner(
			Placement{Row: 0, Col: 0, Value: 2},
			Placement{Row: 2, Col: 1, Value: 4},
		), WithSize(3))
		require.NoError(t, err)

		assert.Equal(t, [][]int{{2, 0, 0}, {0, 0, 0}, {0, 4, 0}}, s.Board().Rows())
		assert.Equal(t, 0, s.Score())
		assert.Equal(t, StatusPlaying, s.Status())
		assert.Equal(t, DefaultWinValue, s.WinValue())
		assert.True(t, s.StopOnWin())
	})

	t.Run("invalid initial spawn", func(t *testing.T) {
		_, err := New(NewQueueSpawner(
			Placement{Row: 0, Col: 0, Value: 2},
			Placement{Row: 0, Col: 0, Value: 2},
		))
		assert.ErrorIs(t, err, ErrInvalidPlacement)
	})

	t.Run("exhausted spawner", func(t *testing.T) {
		s, err := New(NoSpawner)
		require.NoError(t, err)
		assert.Len(t, s.Board().EmptyCells(), 16)
	})
}

func TestLegalMoves(t *testing.T) {
	tests := []struct {
		name  string
		board Grid
		want  []Direction
	}{
		{
			name:  "corner tile",
			board: MustGrid([]int{2, 0}, []int{0, 0}),
			want:  []Direction{DirRight, DirDown},
		},
		{
			name:  "mergeable row",
			board: MustGrid([]int{2, 2}, []int{4, 8}),
			want:  []Direction{DirLeft, DirRight},
		},
		{
			name:  "empty board",
			board: NewGrid(3),
			want:  nil,
		},
		{
			name:  "locked board",
			board: MustGrid([]int{2, 4}, []int{4, 2}),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := playing(t, forbidSpawn(t), tt.board)
			assert.Equal(t, tt.want, LegalMoves(s))
			assert.Equal(t, len(tt.want) > 0, CanMove(s))
			assert.True(t, s.Board().Equal(tt.board))
		})
	}
}

func TestRandomPlayStaysValid(t *testing.T) {
	sp := NewRandomSpawner(rand.New(rand.NewSource(1)), DefaultFourProbability)
	s, err := New(sp, WithStopOnWin(false))
	require.NoError(t, err)
	require.NoError(t, s.Board().Validate())

	dirs := []Direction{DirLeft, DirRight, DirUp, DirDown}
	for i := range 200 {
		prev := s
		dir := dirs[i%len(dirs)]
		sim := Slide(prev.Board(), dir, prev.WinValue())

		next, err := Move(prev, dir)
		require.NoError(t, err, "move %d (%s)", i, dir)
		require.NoError(t, next.Board().Validate(), "move %d (%s)", i, dir)
		require.GreaterOrEqual(t, next.Score(), prev.Score(), "move %d (%s)", i, dir)

		if prev.IsOver() || !sim.Changed {
			assert.True(t, next.Board().Equal(prev.Board()), "move %d (%s) changed a board it could not move", i, dir)
		} else {
			assert.Equal(t, prev.Score()+sim.ScoreDelta, next.Score(), "move %d (%s)", i, dir)

			spawned := 0
			size := next.Board().Size()
			for r := range size {
				for c := range size {
					want, got := sim.Board.At(r, c), next.Board().At(r, c)
					switch {
					case want == got:
					case want == 0 && (got == 2 || got == 4):
						spawned++
					default:
						t.Fatalf("move %d (%s): cell (%d,%d) is %d, slide left %d", i, dir, r, c, got, want)
					}
				}
			}
			assert.LessOrEqual(t, spawned, 1, "move %d (%s)", i, dir)
		}
		s = next
	}
	assert.Positive(t, s.Score())
}
