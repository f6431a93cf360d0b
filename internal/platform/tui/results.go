package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/battlefield/internal/storage"
)

// Results layout constants
const (
	minWidthForLeaders = 100 // Minimum width to show the leaderboard beside the table
	leadersWidth       = 32
	maxResults         = 100
	maxLeaders         = 10
)

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Reload, k.Quit}}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel shows stored battles and the tank leaderboard.
type ResultsModel struct {
	store       *storage.Store
	battles     []storage.BattleRecord
	leaders     []storage.TankStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	width       int
	height      int
	quitting    bool
	showLeaders bool
}

// NewResultsModel creates a results model and loads the history.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	h := help.New()
	h.ShowAll = false

	m := ResultsModel{
		store:       store,
		keys:        DefaultResultsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showLeaders: width >= minWidthForLeaders,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Winner", Width: 16},
		{Title: "Score", Width: 7},
		{Title: "Team", Width: 12},
		{Title: "Tanks", Width: 6},
		{Title: "Left", Width: 8},
		{Title: "Seed", Width: 12},
	}

	tableHeight := m.height - 8
	if tableHeight < 3 {
		tableHeight = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ResultsModel) load() {
	m.battles, m.leaders, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.battles, m.loadErr = m.store.RecentBattles(maxResults)
		if m.loadErr == nil {
			m.leaders, m.loadErr = m.store.Leaderboard(maxLeaders)
		}
	}
	m.updateTableRows()
}

func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.battles))
	for i, b := range m.battles {
		winner := b.TankWinner
		if winner == "" {
			winner = "-"
		}
		team := b.TeamWinner
		if !b.TeamMode || team == "" {
			team = "-"
		}
		rows[i] = table.Row{
			b.CreatedAt.Format("Jan 02 15:04"),
			winner,
			fmt.Sprintf("%.0f", b.TankWinnerScore),
			team,
			fmt.Sprintf("%d", b.TankCount),
			fmt.Sprintf("%.1fs", float64(b.TimeLeftMs)/1000),
			fmt.Sprintf("%d", b.RngSeed),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results screen.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showLeaders = m.width >= minWidthForLeaders
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results screen.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("BATTLE RESULTS", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	body := m.renderTableContent()
	if m.showLeaders {
		leaders := boxStyle.Width(leadersWidth).Render(m.renderLeaders())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(body), "  ", leaders))
	} else {
		b.WriteString(boxStyle.Render(body))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ResultsModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return "No results database"
	case m.loadErr != nil:
		return "Could not load results: " + m.loadErr.Error()
	case len(m.battles) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
		return emptyStyle.Render("No battles yet. Run one first!")
	}
	return m.table.View()
}

func (m ResultsModel) renderLeaders() string {
	var b strings.Builder
	b.WriteString("Leaderboard\n")
	b.WriteString(strings.Repeat("-", leadersWidth-4))
	b.WriteString("\n")
	if len(m.leaders) == 0 {
		b.WriteString("-\n")
	}
	for i, l := range m.leaders {
		name := l.Name
		if len(name) > 12 {
			name = name[:11] + "."
		}
		fmt.Fprintf(&b, "%2d. %-12s %3dW/%-3d\n", i+1, name, l.Wins, l.Battles)
	}
	return b.String()
}

// IsQuitting returns true if the user closed the results screen.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
