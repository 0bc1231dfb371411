package t2048

import "strings"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in legal-move enumeration order.
var Directions = []Direction{DirLeft, DirRight, DirUp, DirDown}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// ParseDirection accepts full names ("Left") or the single letters L/R/U/D,
// case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "up", "u":
		return DirUp, true
	case "down", "d":
		return DirDown, true
	case "left", "l":
		return DirLeft, true
	case "right", "r":
		return DirRight, true
	}
	return 0, false
}

func (d Direction) vertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) reversed() bool {
	return d == DirRight || d == DirDown
}

// Compress moves all nonzero cells to the front of the line, keeping their
// order, and pads the rest with zeros.
func Compress(line []int) []int {
	out := make([]int, len(line))
	w := 0
	for _, v := range line {
		if v != 0 {
			out[w] = v
			w++
		}
	}
	return out
}

// MergeResult is the outcome of MergeAdjacent.
type MergeResult struct {
	Line       []int
	ScoreDelta int
	HitWin     bool
}

// MergeAdjacent merges equal neighbours left to right. A merged tile is
// skipped so it cannot merge again in the same pass. winThreshold <= 0
// disables win detection.
func MergeAdjacent(line []int, winThreshold int) MergeResult {
	res := MergeResult{Line: make([]int, len(line))}
	copy(res.Line, line)

	for i := 0; i < len(res.Line)-1; i++ {
		if res.Line[i] == 0 || res.Line[i] != res.Line[i+1] {
			continue
		}
		res.Line[i] += res.Line[i+1]
		res.Line[i+1] = 0
		res.ScoreDelta += res.Line[i]
		if winThreshold > 0 && res.Line[i] >= winThreshold {
			res.HitWin = true
		}
		i++
	}

	return res
}

// slideLine runs compress, merge, compress on a line oriented towards index 0.
func slideLine(line []int, winThreshold int) MergeResult {
	merged := MergeAdjacent(Compress(line), winThreshold)
	merged.Line = Compress(merged.Line)
	return merged
}

// reverseLine returns a reversed copy of the line.
func reverseLine(line []int) []int {
	out := make([]int, len(line))
	for i, v := range line {
		out[len(line)-1-i] = v
	}
	return out
}

// SlideResult is the outcome of simulating a move without spawning.
type SlideResult struct {
	Board      Grid
	ScoreDelta int
	HitWin     bool
	Changed    bool
}

// Slide simulates a move in the given direction. The input board is not
// modified. winThreshold <= 0 disables win detection.
func Slide(board Grid, dir Direction, winThreshold int) SlideResult {
	out := board.Clone()
	res := SlideResult{}

	for i := range board.Size() {
		var line []int
		if dir.vertical() {
			line = board.Col(i)
		} else {
			line = board.Row(i)
		}
		if dir.reversed() {
			line = reverseLine(line)
		}

		merged := slideLine(line, winThreshold)
		res.ScoreDelta += merged.ScoreDelta
		if merged.HitWin {
			res.HitWin = true
		}

		next := merged.Line
		if dir.reversed() {
			next = reverseLine(next)
		}
		if dir.vertical() {
			out.setCol(i, next)
		} else {
			out.setRow(i, next)
		}
	}

	res.Board = out
	res.Changed = !board.Equal(out)
	return res
}
