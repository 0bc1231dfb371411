package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	statsPanelMinWidth = 96 // below this the stats panel is dropped
	statsPanelWidth    = 26
	scoreboardLimit    = 100
)

var boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

var tabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

var activeTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 1)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)

var statKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←/h", "prev board")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the best runs of one variant at a time.
type ScoreboardModel struct {
	store     *storage.Store
	boards    []registry.GameInfo
	current   int
	entries   []storage.ScoreEntry
	summary   storage.ScoreSummary
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first variant.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		boards: registry.List(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= statsPanelMinWidth
}

func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Tile", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Status", Width: 14},
		{Title: "When", Width: 14},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(styles),
	)
}

// reload fetches the current variant's runs and refreshes rows and stats.
func (m *ScoreboardModel) reload() {
	m.entries, m.loadErr = nil, nil
	if m.store != nil && len(m.boards) > 0 {
		m.entries, m.loadErr = m.store.TopScores(m.boards[m.current].ID, scoreboardLimit)
	}
	m.summary = storage.Summarize(m.entries)

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			humanize.Comma(int64(e.Score)),
			strconv.Itoa(e.MaxTile),
			strconv.Itoa(e.Moves),
			e.Status,
			humanize.Time(e.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(delta int) {
	if len(m.boards) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.boards)) % len(m.boards)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.boards) > 0 {
		title += " - " + m.boards[m.current].Title
	}

	body := panelStyle.Render(m.tableView())
	if m.wide() {
		stats := panelStyle.Width(statsPanelWidth).Render(m.statsView())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", stats)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		centerText(boardTitleStyle.Render(title), m.width),
		centerText(m.tabsView(), m.width),
		"",
		centerText(body, m.width),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) tabsView() string {
	if len(m.boards) == 0 {
		return ""
	}
	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		if i == m.current {
			tabs[i] = activeTabStyle.Render(b.ID)
		} else {
			tabs[i] = tabStyle.Render(b.ID)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width {
		return fmt.Sprintf("< %s >", m.boards[m.current].ID)
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.entries) == 0:
		return emptyStyle.Render("No runs recorded yet.\nFinish a game to set a high score!")
	}
	return m.table.View()
}

// statsView summarizes the score distribution of the shown runs.
func (m ScoreboardModel) statsView() string {
	s := m.summary
	if s.Count == 0 {
		return statKeyStyle.Render("no stats yet")
	}

	var b strings.Builder
	stat := func(k, v string) {
		fmt.Fprintf(&b, "%s %s\n", statKeyStyle.Render(fmt.Sprintf("%-8s", k)), v)
	}
	stat("runs", strconv.Itoa(s.Count))
	stat("mean", humanize.Comma(int64(s.Mean)))
	stat("median", humanize.Comma(int64(s.Median)))
	stat("std dev", humanize.Comma(int64(s.StdDev)))
	stat("best", humanize.Comma(int64(s.Best)))

	b.WriteString("\n")
	b.WriteString(statKeyStyle.Render("max tiles"))
	for _, tile := range s.Tiles() {
		fmt.Fprintf(&b, "\n%6d  x%d", tile, s.TileCounts[tile])
	}
	return b.String()
}

// IsGoingBack reports whether the user asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard full screen. goBack is true when the
// user left with Esc rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
