package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultBoardSize is the default board dimension.
const DefaultBoardSize = 4

// Grid is a square board of tile values. 0 marks an empty cell.
//
// A Grid is a value: it has no exported mutators, so a Grid held by one
// State cannot be changed through another reference. Every edit goes through
// a clone.
type Grid struct {
	n     int
	cells []int
}

// NewGrid returns an empty n x n grid.
func NewGrid(n int) Grid {
	if n < 0 {
		n = 0
	}
	return Grid{n: n, cells: make([]int, n*n)}
}

// GridFromRows builds a grid from row slices. The rows must form a square.
func GridFromRows(rows [][]int) (Grid, error) {
	n := len(rows)
	g := NewGrid(n)
	for r, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("row %d has %d cells, want %d", r, len(row), n)
		}
		copy(g.cells[r*n:], row)
	}
	return g, nil
}

// MustGrid is like GridFromRows but panics on a malformed board.
// Intended for tests and static tables.
func MustGrid(rows ...[]int) Grid {
	g, err := GridFromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the board dimension.
func (g Grid) Size() int {
	return g.n
}

// At returns the value at (row, col), or 0 when out of bounds.
func (g Grid) At(row, col int) int {
	if !g.InBounds(row, col) {
		return 0
	}
	return g.cells[row*g.n+col]
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.n && col >= 0 && col < g.n
}

// Clone returns an independent copy.
func (g Grid) Clone() Grid {
	c := Grid{n: g.n, cells: make([]int, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal compares two grids cell by cell.
func (g Grid) Equal(other Grid) bool {
	if g.n != other.n {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a fresh copy of the board as nested slices.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.n)
	for r := range g.n {
		rows[r] = g.Row(r)
	}
	return rows
}

// Row returns a copy of row r.
func (g Grid) Row(r int) []int {
	line := make([]int, g.n)
	copy(line, g.cells[r*g.n:(r+1)*g.n])
	return line
}

// Col returns a copy of column c, top to bottom.
func (g Grid) Col(c int) []int {
	line := make([]int, g.n)
	for r := range g.n {
		line[r] = g.cells[r*g.n+c]
	}
	return line
}

// With returns a copy of the grid with (row, col) set to value.
func (g Grid) With(row, col, value int) Grid {
	c := g.Clone()
	c.cells[row*g.n+col] = value
	return c
}

// setRow and setCol write into the receiver. Only call them on a grid
// that was just cloned and is not yet visible to anyone else.
func (g Grid) setRow(r int, line []int) {
	copy(g.cells[r*g.n:(r+1)*g.n], line)
}

func (g Grid) setCol(c int, line []int) {
	for r, v := range line {
		g.cells[r*g.n+c] = v
	}
}

// Cell identifies a board position.
type Cell struct {
	Row, Col int
}

// EmptyCells returns all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range g.n {
		for c := range g.n {
			if g.cells[r*g.n+c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for _, v := range g.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if two row- or column-adjacent tiles share
// a nonzero value. Scans top-to-bottom, left-to-right.
func (g Grid) HasPossibleMerge() bool {
	for r := range g.n {
		for c := range g.n {
			v := g.cells[r*g.n+c]
			if v == 0 {
				continue
			}
			if r+1 < g.n && g.cells[(r+1)*g.n+c] == v {
				return true
			}
			if c+1 < g.n && g.cells[r*g.n+c+1] == v {
				return true
			}
		}
	}
	return false
}

// IsStuck returns true if the board is full and no adjacent pair can merge.
func (g Grid) IsStuck() bool {
	return !g.HasEmptyCell() && !g.HasPossibleMerge()
}

// MaxTile returns the maximum tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, v := range g.cells {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Validate checks that every cell is empty or a power of two >= 2.
func (g Grid) Validate() error {
	for i, v := range g.cells {
		if v != 0 && !isTileValue(v) {
			return fmt.Errorf("cell (%d,%d) holds %d, not a power of two >= 2", i/g.n, i%g.n, v)
		}
	}
	return nil
}

// String renders the board as right-aligned rows, one per line.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	var sb strings.Builder
	for r := range g.n {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.n {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%*d", width, g.cells[r*g.n+c])
		}
	}
	return sb.String()
}

func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
