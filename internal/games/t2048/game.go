package t2048

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// CustomVariantID identifies the variant whose rules come from the
// "custom" section of the config file.
const CustomVariantID = "2048_custom"

// Process-wide settings applied on the next Reset, set once from CLI flags.
var (
	configPath  string
	spawnScript []Placement
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetSpawnScript makes every following Reset replay entries before falling
// back to first-empty spawning. An empty script restores random spawning.
func SetSpawnScript(entries []Placement) {
	spawnScript = append([]Placement(nil), entries...)
}

// Game adapts the immutable engine State to the registry.Game interface.
type Game struct {
	variant Variant
	custom  bool

	cfg        config.T2048Config
	preset     *config.DifficultyPreset // nil keeps the config's own difficulty
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	random     *RandomSpawner // nil while a spawn script drives the game
	baseFour   float64

	state   State
	moves   int
	tick    uint64
	best    int
	lastErr error

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// NewGame creates a game for the built-in variant id. Unknown ids fall back
// to the classic rules.
func NewGame(id string) *Game {
	v := GetVariant(id)
	if v == nil {
		v = &Variants[0]
	}
	return &Game{variant: *v}
}

// NewCustomGame creates a game whose rules are read from config on Reset.
func NewCustomGame() *Game {
	return &Game{
		variant: Variant{ID: CustomVariantID, Name: "Custom", Size: DefaultBoardSize,
			Target: DefaultWinValue, StopOnWin: DefaultStopOnWin, Spawn4: DefaultFourProbability},
		custom: true,
	}
}

func init() {
	for _, v := range Variants {
		id := v.ID
		registry.Register(id, func() registry.Game {
			return NewGame(id)
		})
	}
	registry.Register(CustomVariantID, func() registry.Game {
		return NewCustomGame()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant.ID == Variants[0].ID {
		return "2048"
	}
	return "2048 (" + g.variant.Name + ")"
}

// Variant returns the rules the game is currently using.
func (g *Game) Variant() Variant {
	return g.variant
}

// Engine returns the current engine state.
func (g *Game) Engine() State {
	return g.state
}

// LastError returns the most recent engine error, or nil.
func (g *Game) LastError() error {
	return g.lastErr
}

// SetBestScore seeds the best score shown in the HUD.
func (g *Game) SetBestScore(best int) {
	g.best = max(g.best, best)
}

// Best returns the best score seen so far.
func (g *Game) Best() int {
	return max(g.best, g.state.Score())
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.loadConfig()

	g.rng = rand.New(rand.NewSource(rt.Seed))
	g.tick = 0
	g.moves = 0
	g.paused = false
	g.lastErr = nil
	g.best = g.Best()

	g.baseFour = g.variant.Spawn4
	if g.cfg.Spawn.FourProbability > 0 {
		g.baseFour = g.cfg.Spawn.FourProbability
	}
	g.random = NewRandomSpawner(g.rng, g.difficulty.FourProbability(g.baseFour, 0, 0))

	scripted := len(spawnScript) > 0
	var spawner Spawner = g.random
	if scripted {
		spawner = NewScriptSpawner(spawnScript...)
	}

	cells := g.variant.Size * g.variant.Size
	opts := g.variant.Options(min(g.cfg.Spawn.Initial, cells))
	st, err := New(spawner, WithOptions(opts))
	if err != nil && scripted {
		// A script that cannot even seed the board is abandoned.
		g.lastErr = err
		scripted = false
		st, err = New(g.random, WithOptions(opts))
	}
	if err != nil {
		g.lastErr = err
		opts.InitialSpawns = min(DefaultInitialSpawns, cells)
		st, err = New(g.random, WithOptions(opts))
	}
	if err != nil {
		// The variant's own rules are unusable; play classic and say so.
		g.lastErr = fmt.Errorf("variant %s: %w", g.variant.ID, err)
		g.variant = Variants[0]
		st, _ = New(g.random, WithOptions(g.variant.Options(DefaultInitialSpawns)))
	}
	if scripted {
		g.random = nil
	}
	g.state = st

	g.Resize(rt.ScreenW, rt.ScreenH)
}

// loadConfig reads the config file and applies the difficulty preset.
func (g *Game) loadConfig() {
	cfg, err := config.LoadT2048(configPath)
	if err != nil {
		cfg = config.DefaultT2048Config()
	}
	if g.preset != nil {
		config.ApplyT2048Preset(&cfg, *g.preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	if g.custom {
		g.variant.Size = cfg.Custom.Size
		g.variant.Target = cfg.Custom.WinValue
		g.variant.StopOnWin = cfg.Custom.StopOnWin
	}
}

// SetDifficulty sets the preset for this game only, applied on the next
// Reset.
func (g *Game) SetDifficulty(name string) error {
	p, ok := config.ParsePreset(name)
	if !ok {
		return fmt.Errorf("t2048: unknown difficulty %q", name)
	}
	g.preset = &p
	return nil
}

// Resume replaces the current run with a serialized state. The game keeps
// its own spawner, so call it after Reset.
func (g *Game) Resume(data []byte) error {
	st, err := Deserialize(data)
	if err != nil {
		return err
	}
	g.state = st.WithSpawner(g.state.Spawner())
	g.moves = len(st.History())
	g.lastErr = nil
	g.paused = false
	g.Resize(g.screenW, g.screenH)
	return nil
}

// Resize records new screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	n := g.state.Size()
	if n == 0 {
		n = g.variant.Size
	}
	minW := max(n*cellWidth+1, 34)
	minH := hudHeight + 1 + n*cellHeight + 1 + 4 // HUD, board, footer
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies at most one action from the input frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || in.Empty() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionUndo):
		return g.undo()
	case in.Has(core.ActionRedo):
		return g.redo()
	}

	dir, ok := directionFor(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}
	return g.move(dir)
}

// directionFor maps the first directional action in the frame.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// move runs one engine move, keeping the previous state on error.
func (g *Game) move(dir Direction) core.StepResult {
	if g.random != nil {
		g.random.SetFourProbability(g.difficulty.FourProbability(g.baseFour, g.state.Score(), g.moves))
	}

	next, err := Move(g.state, dir)
	if err != nil {
		g.lastErr = err
		return core.StepResult{State: g.State()}
	}
	g.lastErr = nil

	changed := !next.Board().Equal(g.state.Board())
	if changed {
		g.moves++
	}
	g.state = next
	g.best = g.Best()

	return core.StepResult{State: g.State(), Changed: changed}
}

func (g *Game) undo() core.StepResult {
	if !g.state.CanUndo() {
		return core.StepResult{State: g.State()}
	}
	g.state = Undo(g.state)
	g.moves = max(g.moves-1, 0)
	return core.StepResult{State: g.State(), Changed: true}
}

func (g *Game) redo() core.StepResult {
	if !g.state.CanRedo() {
		return core.StepResult{State: g.State()}
	}
	g.state = Redo(g.state)
	g.moves++
	g.best = g.Best()
	return core.StepResult{State: g.State(), Changed: true}
}

// SaveData serializes the engine state, history included, for resuming.
func (g *Game) SaveData() ([]byte, error) {
	return Serialize(g.state)
}

// Moves returns the number of moves applied since Reset.
func (g *Game) Moves() int {
	return g.moves
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score(),
		MaxTile:  g.state.Board().MaxTile(),
		Moves:    g.moves,
		Status:   g.state.Status().String(),
		GameOver: g.state.IsOver(),
		Paused:   g.paused || g.tooSmall,
	}
}

