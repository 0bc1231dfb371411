package t2048

import "fmt"

// Move applies a move and returns the next state.
//
// A move on a finished game, or one that leaves the board unchanged,
// returns s itself (the latter may flip the status to Lost). A changed board
// is pushed onto the history, the redo stack is dropped and the spawner is
// asked for one tile. If that placement is invalid the whole move fails.
func Move(s State, dir Direction) (State, error) {
	if s.IsOver() {
		return s, nil
	}

	sim := Slide(s.board, dir, s.winValue)

	if !sim.Changed {
		// Checked on the current board: the attempted direction is irrelevant.
		if s.board.IsStuck() {
			s.status = StatusLost
		}
		return s, nil
	}

	next := s
	next.board = sim.Board
	next.score = s.score + sim.ScoreDelta

	if sim.HitWin {
		if s.stopOnWin {
			next.status = StatusWon
			return next, nil
		}
		next.status = StatusWonContinue
	}

	next.history = push(s.history, s.snapshot())
	next.future = nil

	board, err := applySpawn(next.board, next.spawner)
	if err != nil {
		return State{}, fmt.Errorf("move %s: %w", dir, err)
	}
	next.board = board

	switch {
	case next.board.IsStuck():
		if !next.status.IsWin() {
			next.status = StatusLost
		}
	case next.status != StatusWonContinue:
		next.status = StatusPlaying
	}

	return next, nil
}

// LegalMoves returns the directions that would change the board, in the
// order Left, Right, Up, Down. Nothing is spawned and s is not modified.
func LegalMoves(s State) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if Slide(s.board, d, 0).Changed {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// CanMove reports whether any direction changes the board.
func CanMove(s State) bool {
	for _, d := range Directions {
		if Slide(s.board, d, 0).Changed {
			return true
		}
	}
	return false
}
