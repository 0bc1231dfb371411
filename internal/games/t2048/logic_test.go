package t2048

import (
	"slices"
	"testing"
)

func TestSlideLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4},
		{"double merge", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0},
		{"slide with gap", []int{0, 0, 2, 2}, []int{4, 0, 0, 0}, 4},
		{"slide with multiple gaps", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4},
		{"no change needed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0},
		{"empty row", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0},
		{"merged tile does not merge again", []int{4, 4, 8, 0}, []int{8, 8, 0, 0}, 8},
		{"longer line", []int{2, 2, 4, 4, 8}, []int{4, 8, 8, 0, 0}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := slideLine(tt.input, 0)
			if !slices.Equal(res.Line, tt.expected) {
				t.Errorf("slideLine(%v) = %v, want %v", tt.input, res.Line, tt.expected)
			}
			if res.ScoreDelta != tt.score {
				t.Errorf("slideLine(%v) score = %d, want %d", tt.input, res.ScoreDelta, tt.score)
			}
		})
	}
}

func TestCompress(t *testing.T) {
	in := []int{0, 2, 0, 4}
	got := Compress(in)
	if want := []int{2, 4, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("Compress(%v) = %v, want %v", in, got, want)
	}
	if !slices.Equal(in, []int{0, 2, 0, 4}) {
		t.Errorf("Compress modified its input: %v", in)
	}
}

func TestMergeAdjacentWinThreshold(t *testing.T) {
	tests := []struct {
		name      string
		line      []int
		threshold int
		hitWin    bool
	}{
		{"reaches threshold", []int{1024, 1024, 0, 0}, 2048, true},
		{"below threshold", []int{512, 512, 0, 0}, 2048, false},
		{"disabled", []int{1024, 1024, 0, 0}, 0, false},
		{"custom threshold", []int{8, 8, 2, 0}, 16, true},
		{"no merge no win", []int{2048, 0, 0, 0}, 2048, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := MergeAdjacent(tt.line, tt.threshold)
			if res.HitWin != tt.hitWin {
				t.Errorf("MergeAdjacent(%v, %d).HitWin = %v, want %v", tt.line, tt.threshold, res.HitWin, tt.hitWin)
			}
		})
	}
}

func TestSlideLeft(t *testing.T) {
	board := MustGrid(
		[]int{2, 2, 0, 0},
		[]int{0, 4, 4, 0},
		[]int{2, 0, 2, 0},
		[]int{8, 8, 8, 8},
	)

	res := Slide(board, DirLeft, 0)
	expected := MustGrid(
		[]int{4, 0, 0, 0},
		[]int{8, 0, 0, 0},
		[]int{4, 0, 0, 0},
		[]int{16, 16, 0, 0},
	)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide Left: got\n%v\nwant\n%v", res.Board, expected)
	}
	if res.ScoreDelta != 4+8+4+32 {
		t.Errorf("Slide Left score = %d, want %d", res.ScoreDelta, 48)
	}
	if !res.Changed {
		t.Error("Slide Left should report a change")
	}
}

func TestSlideRight(t *testing.T) {
	board := MustGrid(
		[]int{2, 2, 0, 0},
		[]int{0, 4, 4, 0},
		[]int{2, 2, 2, 0},
		[]int{0, 0, 0, 0},
	)

	res := Slide(board, DirRight, 0)
	expected := MustGrid(
		[]int{0, 0, 0, 4},
		[]int{0, 0, 0, 8},
		[]int{0, 0, 2, 4},
		[]int{0, 0, 0, 0},
	)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide Right: got\n%v\nwant\n%v", res.Board, expected)
	}
}

func TestSlideUp(t *testing.T) {
	board := MustGrid(
		[]int{2, 0, 0, 0},
		[]int{2, 4, 0, 0},
		[]int{0, 4, 0, 0},
		[]int{4, 0, 0, 2},
	)

	res := Slide(board, DirUp, 0)
	expected := MustGrid(
		[]int{4, 8, 0, 2},
		[]int{4, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide Up: got\n%v\nwant\n%v", res.Board, expected)
	}
}

func TestSlideDown(t *testing.T) {
	board := MustGrid(
		[]int{2, 4, 0, 0},
		[]int{2, 4, 0, 0},
		[]int{2, 0, 0, 0},
		[]int{0, 0, 0, 0},
	)

	res := Slide(board, DirDown, 0)
	expected := MustGrid(
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{2, 0, 0, 0},
		[]int{4, 8, 0, 0},
	)

	if !res.Board.Equal(expected) {
		t.Errorf("Slide Down: got\n%v\nwant\n%v", res.Board, expected)
	}
}

func TestSlideUnchanged(t *testing.T) {
	board := MustGrid(
		[]int{2, 4},
		[]int{8, 16},
	)

	for _, d := range Directions {
		res := Slide(board, d, 0)
		if res.Changed {
			t.Errorf("Slide %s on a locked board reported a change", d)
		}
		if res.ScoreDelta != 0 {
			t.Errorf("Slide %s score = %d, want 0", d, res.ScoreDelta)
		}
	}
}

func TestSlideDoesNotModifyInput(t *testing.T) {
	board := MustGrid(
		[]int{2, 2, 0},
		[]int{0, 0, 0},
		[]int{4, 0, 4},
	)
	before := board.Clone()

	Slide(board, DirLeft, 0)

	if !board.Equal(before) {
		t.Errorf("Slide modified its input:\n%v", board)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"Left", DirLeft, true},
		{"r", DirRight, true},
		{"UP", DirUp, true},
		{"D", DirDown, true},
		{"north", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseDirection(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
