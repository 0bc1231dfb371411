package t2048

import (
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// useConfig points the game at a temporary config file for one test.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t2048.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetSpawnScript(nil)
	})
}

func testRuntime(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestDeterministicSpawn(t *testing.T) {
	useConfig(t, "spawn:\n  initial: 2\n")

	g1 := NewGame("2048")
	g2 := NewGame("2048")
	g1.Reset(testRuntime(12345))
	g2.Reset(testRuntime(12345))

	board1 := g1.Snapshot().Board
	board2 := g2.Snapshot().Board

	if !slices.Equal(board1, board2) {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", board1, board2)
	}

	tiles := 0
	for _, v := range board1 {
		if v != 0 {
			tiles++
		}
	}
	if tiles != 2 {
		t.Errorf("initial board has %d tiles, want 2", tiles)
	}
}

func TestInitialSpawnsClampedToVariant(t *testing.T) {
	useConfig(t, "spawn:\n  initial: 12\n")

	g := NewGame("2048_mini")
	g.Reset(testRuntime(3))

	if g.LastError() != nil {
		t.Errorf("LastError() = %v, want nil", g.LastError())
	}
	if g.ID() != "2048_mini" {
		t.Errorf("ID() = %q, want 2048_mini", g.ID())
	}
	board := g.Engine().Board()
	if board.Size() != 3 {
		t.Fatalf("board size = %d, want 3", board.Size())
	}
	if got := len(board.EmptyCells()); got != 0 {
		t.Errorf("board has %d empty cells after clamped spawns, want 0", got)
	}
	if g.Engine().WinValue() != 256 {
		t.Errorf("WinValue() = %d, want 256", g.Engine().WinValue())
	}
}

func TestGameMoveUndoRedo(t *testing.T) {
	useConfig(t, "spawn:\n  initial: 2\n")
	SetSpawnScript([]Placement{
		{Row: 0, Col: 0, Value: 2},
		{Row: 0, Col: 1, Value: 2},
		{Row: 3, Col: 3, Value: 2},
	})

	g := NewGame("2048")
	g.Reset(testRuntime(1))

	res := g.Step(frame(core.ActionLeft))
	if !res.Changed {
		t.Fatal("Left should change the board")
	}
	if res.State.Score != 4 || res.State.Moves != 1 {
		t.Errorf("after Left score = %d moves = %d, want 4 and 1", res.State.Score, res.State.Moves)
	}
	snap := g.Snapshot()
	if snap.Board[0] != 4 || snap.Board[15] != 2 {
		t.Errorf("unexpected board after Left: %v", snap.Board)
	}

	res = g.Step(frame(core.ActionUndo))
	if res.State.Score != 0 || res.State.Moves != 0 {
		t.Errorf("after Undo score = %d moves = %d, want 0 and 0", res.State.Score, res.State.Moves)
	}
	if g.Snapshot().Redo != 1 {
		t.Errorf("Redo depth = %d, want 1", g.Snapshot().Redo)
	}

	res = g.Step(frame(core.ActionRedo))
	if res.State.Score != 4 || res.State.Moves != 1 {
		t.Errorf("after Redo score = %d moves = %d, want 4 and 1", res.State.Score, res.State.Moves)
	}

	if res := g.Step(frame(core.ActionRedo)); res.Changed {
		t.Error("Redo with an empty stack should not change anything")
	}
}

func TestGameRejectedSpawnKeepsState(t *testing.T) {
	useConfig(t, "spawn:\n  initial: 2\n")
	SetSpawnScript([]Placement{
		{Row: 0, Col: 0, Value: 2},
		{Row: 0, Col: 1, Value: 2},
		{Row: 0, Col: 0, Value: 2},
	})

	g := NewGame("2048")
	g.Reset(testRuntime(1))
	before := g.Snapshot()

	res := g.Step(frame(core.ActionLeft))
	if res.Changed {
		t.Error("a rejected spawn must not change the board")
	}
	if g.LastError() == nil {
		t.Fatal("LastError() should report the rejected placement")
	}
	after := g.Snapshot()
	if !slices.Equal(before.Board, after.Board) || after.Score != 0 || after.Moves != 0 {
		t.Errorf("state changed after rejected spawn: %+v", after)
	}
}

func TestGamePause(t *testing.T) {
	useConfig(t, "spawn:\n  initial: 2\n")

	g := NewGame("2048")
	g.Reset(testRuntime(3))

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}
	before := g.Snapshot().Board
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		g.Step(frame(a))
	}
	if !slices.Equal(before, g.Snapshot().Board) {
		t.Error("moves should be ignored while paused")
	}

	if res := g.Step(frame(core.ActionPause)); res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestGameTooSmall(t *testing.T) {
	useConfig(t, "")

	g := NewGame("2048_huge")
	rt := testRuntime(1)
	rt.ScreenW, rt.ScreenH = 30, 10
	g.Reset(rt)

	if !g.State().Paused {
		t.Error("a 6x6 board should not fit 30x10")
	}

	g.Resize(80, 30)
	if g.State().Paused {
		t.Error("a 6x6 board should fit 80x30")
	}
}

func TestCustomVariantUsesConfig(t *testing.T) {
	useConfig(t, "custom:\n  size: 3\n  win_value: 16\n  stop_on_win: false\nspawn:\n  initial: 1\n")

	g := NewCustomGame()
	g.Reset(testRuntime(9))

	snap := g.Snapshot()
	if snap.Size != 3 || snap.Target != 16 {
		t.Errorf("custom variant size = %d target = %d, want 3 and 16", snap.Size, snap.Target)
	}
	if g.Engine().StopOnWin() {
		t.Error("custom stop_on_win: false was ignored")
	}
	if got := len(g.Engine().Board().EmptyCells()); got != 8 {
		t.Errorf("empty cells = %d, want 8", got)
	}
}

func TestDifficultyRaisesFourProbability(t *testing.T) {
	useConfig(t, `
spawn:
  initial: 2
  four_probability: 0.1
difficulty:
  enabled: true
  initial_level: 0
  progression:
    type: moves
    max_at: 1
  scaling:
    four_probability: 0.5
`)

	g := NewGame("2048")
	g.Reset(testRuntime(5))

	for range 2 {
		legal := LegalMoves(g.Engine())
		if len(legal) == 0 {
			t.Fatal("no legal move on a fresh board")
		}
		g.move(legal[0])
	}

	if got := g.random.FourProbability(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("FourProbability() = %v, want 0.6", got)
	}
}

func TestGameSnapshot(t *testing.T) {
	useConfig(t, "")

	g := NewGame("2048_mini")
	g.Reset(testRuntime(77))

	snap := g.Snapshot()
	if snap.Variant != "2048_mini" {
		t.Errorf("Snapshot Variant = %s, want 2048_mini", snap.Variant)
	}
	if snap.Size != 3 || len(snap.Board) != 9 {
		t.Errorf("Snapshot Size = %d with %d cells, want 3 and 9", snap.Size, len(snap.Board))
	}
	if snap.Target != 256 {
		t.Errorf("Snapshot Target = %d, want 256", snap.Target)
	}
	if snap.Status != "Playing" {
		t.Errorf("Snapshot Status = %s, want Playing", snap.Status)
	}
}

func TestResume(t *testing.T) {
	useConfig(t, "")

	saved := playing(t, nil, MustGrid(
		[]int{2, 2, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 0, 4},
	))
	saved, err := Move(saved, DirLeft)
	if err != nil {
		t.Fatal(err)
	}
	data, err := Serialize(saved)
	if err != nil {
		t.Fatal(err)
	}

	g := NewGame("2048")
	g.Reset(testRuntime(1))
	if err := g.Resume(data); err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}
	if !g.Engine().Board().Equal(saved.Board()) {
		t.Fatalf("resumed board = %v", g.Engine().Board())
	}
	if g.Engine().Spawner() == nil {
		t.Error("resumed state should get the game's spawner")
	}
	if g.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1 from history", g.Moves())
	}

	g.Step(frame(core.ActionUndo))
	if g.Engine().Board().At(0, 0) != 2 || g.Engine().Board().At(0, 1) != 2 {
		t.Errorf("undo after resume should restore saved history, got %v", g.Engine().Board())
	}

	if err := g.Resume([]byte("{")); err == nil {
		t.Error("Resume() should reject malformed data")
	}
}

func TestSetDifficulty(t *testing.T) {
	useConfig(t, "")

	g := NewGame("2048")
	if err := g.SetDifficulty("nightmare"); err == nil {
		t.Error("SetDifficulty() should reject unknown presets")
	}
	if err := g.SetDifficulty("hard"); err != nil {
		t.Fatalf("SetDifficulty() failed: %v", err)
	}
	g.Reset(testRuntime(3))

	tiles := 0
	for _, v := range g.Snapshot().Board {
		if v != 0 {
			tiles++
		}
	}
	if tiles != 3 {
		t.Errorf("hard preset should seed 3 tiles, got %d", tiles)
	}
}

func TestRenderHUD(t *testing.T) {
	useConfig(t, "spawn:\n  initial: 2\n")
	SetSpawnScript([]Placement{
		{Row: 0, Col: 0, Value: 2},
		{Row: 0, Col: 1, Value: 2},
	})

	g := NewGame("2048")
	g.Reset(testRuntime(1))
	g.SetBestScore(100)
	g.Step(frame(core.ActionLeft))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 4", "Best: 100", "Undo 1  Redo 0", "Status: Playing", "Moves: Right Down"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q:\n%s", want, out)
		}
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(0) != core.ColorDefault {
		t.Error("empty cells should use the default color")
	}
	if TileColor(2048) != core.ColorBrightMagenta {
		t.Errorf("TileColor(2048) = %v", TileColor(2048))
	}
	if TileColor(65536) != TileColor(8192) {
		t.Error("tiles above 8192 should reuse the last color")
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range append(VariantIDs(), CustomVariantID) {
		if !registry.Exists(id) {
			t.Errorf("variant %s is not registered", id)
		}
	}

	g, err := registry.Create("2048_mini")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "2048 (Mini 3x3)" {
		t.Errorf("Title() = %q", g.Title())
	}
}
