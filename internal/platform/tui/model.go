package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Optional capabilities a game may offer beyond registry.Game.
type (
	bestScoreSetter  interface{ SetBestScore(best int) }
	saver            interface{ SaveData() ([]byte, error) }
	resumer          interface{ Resume(data []byte) error }
	difficultySetter interface{ SetDifficulty(name string) error }
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at tickRate per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// noticeStyle renders transient messages above the help bar.
var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	runID      string
	resume     []byte // saved run applied on Init
	notice     string
	allowBack  bool // Esc returns to the menu instead of being ignored
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		store:      store,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		runID:      storage.NewRunID(),
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.boardHeight())
	return m
}

// WithLogger returns a copy of the model that logs storage failures.
func (m Model) WithLogger(logger *log.Logger) Model {
	m.logger = logger
	return m
}

// WithBackToMenu returns a copy of the model where Esc leaves the game.
func (m Model) WithBackToMenu() Model {
	m.allowBack = true
	return m
}

// WithResume returns a copy of the model that continues a saved run.
func (m Model) WithResume(save *storage.SavedGame) Model {
	m.resume = save.Data
	m.runID = save.RunID
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	if r, ok := m.game.(resumer); ok && m.resume != nil {
		if err := r.Resume(m.resume); err != nil {
			m.logError("resume", err)
		}
	}
	m.seedBestScore()
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.saveGame()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeBoard()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.recordScore()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.allowBack {
			m.recordScore()
			m.backToMenu = true
			return m, tea.Quit
		}
	case core.ActionRestart:
		m.restart()
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events without restarting play.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeBoard()
	return m, nil
}

// resizeBoard fits the game area above the footer.
func (m *Model) resizeBoard() {
	h := m.boardHeight()
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Changed {
		m.notice = ""
	}

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.recordScore()
	case !m.gameState.GameOver:
		// Undo out of a finished game; the run is saved again when it ends.
		m.scoreSaved = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.recordScore()
	m.config.Seed = time.Now().UnixNano()
	m.runID = storage.NewRunID()
	m.game.Reset(m.gameConfig())
	m.seedBestScore()
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.notice = ""
	m.inputFrame.Clear()
}

// recordScore stores the current run unless it is already recorded.
// Empty runs are skipped.
func (m *Model) recordScore() {
	state := m.game.State()
	if m.scoreSaved || state.Score == 0 {
		return
	}
	m.scoreSaved = true
	if m.store == nil {
		return
	}

	_, err := m.store.SaveScore(storage.ScoreEntry{
		RunID:   m.runID,
		GameID:  m.game.ID(),
		Score:   state.Score,
		MaxTile: state.MaxTile,
		Moves:   state.Moves,
		Status:  state.Status,
	})
	if err != nil {
		m.notice = "Score not saved"
		m.logError("save score", err)
	}
}

// saveGame stores a resumable snapshot of the current run.
func (m *Model) saveGame() {
	s, ok := m.game.(saver)
	if !ok || m.store == nil {
		m.notice = "Saving is not available"
		return
	}

	data, err := s.SaveData()
	if err == nil {
		_, err = m.store.SaveGame(storage.SavedGame{
			RunID:  m.runID,
			GameID: m.game.ID(),
			Score:  m.game.State().Score,
			Data:   data,
		})
	}
	if err != nil {
		m.notice = "Save failed"
		m.logError("save game", err)
		return
	}
	m.notice = "Game saved"
}

// seedBestScore shows the stored high score in the game HUD.
func (m *Model) seedBestScore() {
	b, ok := m.game.(bestScoreSetter)
	if !ok || m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logError("load high score", err)
		return
	}
	b.SetBestScore(best)
}

func (m *Model) logError(op string, err error) {
	if m.logger != nil {
		m.logger.Error(op, "game", m.game.ID(), "run", m.runID, "error", err)
	}
}

// footerHeight is the number of rows below the game area.
func (m Model) footerHeight() int {
	if m.help.ShowAll {
		return 5
	}
	return 2
}

func (m Model) boardHeight() int {
	return max(m.config.ScreenH-m.footerHeight(), 1)
}

// gameConfig is the runtime config as seen by the game.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.boardHeight()
	return cfg
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		noticeStyle.Render(m.notice),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// RunID returns the identifier of the current run.
func (m Model) RunID() string {
	return m.runID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunModel runs m as a full-screen Bubble Tea program until it quits or the
// player asks for the menu.
func RunModel(m Model) (Model, error) {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return m, nil
}
