package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/storage"
)

// Gallery layout constants
const (
	minWidthForDetail = 90 // Minimum width to show the detail pane beside the table
	detailWidth       = 36
	lockedLabel       = "? ? ?"
)

// MemoriesKeyMap defines the key bindings for the memories gallery.
type MemoriesKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MemoriesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k MemoriesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Back, k.Quit},
	}
}

// DefaultMemoriesKeyMap returns default key bindings.
func DefaultMemoriesKeyMap() MemoriesKeyMap {
	return MemoriesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MemoryEntry is one collectible of the level as seen in the gallery.
type MemoryEntry struct {
	level.CollectibleSpec
	Unlocked bool
}

// MemoriesModel is the Bubble Tea model for the memories gallery. Every
// collectible of the level is listed; only those in the ledger reveal their
// message.
type MemoriesModel struct {
	title    string
	entries  []MemoryEntry
	stats    *storage.RunStats
	table    table.Model
	help     help.Model
	keys     MemoriesKeyMap
	open     int // index of the opened entry, -1 when none
	width    int
	height   int
	quitting bool
	goBack   bool
}

// NewMemoriesModel builds the gallery for lvl given the collected ids.
// stats is optional.
func NewMemoriesModel(lvl *level.Geometry, collected []int, stats *storage.RunStats, width, height int) MemoriesModel {
	have := make(map[int]bool, len(collected))
	for _, id := range collected {
		have[id] = true
	}

	entries := make([]MemoryEntry, len(lvl.Collectibles))
	for i, c := range lvl.Collectibles {
		entries[i] = MemoryEntry{CollectibleSpec: c, Unlocked: have[c.ID]}
	}

	h := help.New()
	h.ShowAll = false

	m := MemoriesModel{
		title:   lvl.Name,
		entries: entries,
		stats:   stats,
		help:    h,
		keys:    DefaultMemoriesKeyMap(),
		open:    -1,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized for the current window.
func (m *MemoriesModel) createTable() table.Model {
	tableWidth := m.width - 6
	if m.width >= minWidthForDetail {
		tableWidth -= detailWidth + 4
	}
	messageWidth := max(tableWidth-18, 12)

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Memory", Width: messageWidth},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("162")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table from the entries.
func (m *MemoriesModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		text, status := lockedLabel, "locked"
		if e.Unlocked {
			text, status = firstLine(e.Message), "♥ found"
		}
		rows[i] = table.Row{fmt.Sprintf("%d", i+1), text, status}
	}
	m.table.SetRows(rows)
}

// Init initializes the gallery model.
func (m MemoriesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the gallery.
func (m MemoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.open >= 0 {
				m.open = -1
				return m, nil
			}
			m.goBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			i := m.table.Cursor()
			if m.open == i {
				m.open = -1
			} else if i >= 0 && i < len(m.entries) && m.entries[i].Unlocked {
				m.open = i
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.open = -1
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the gallery.
func (m MemoriesModel) View() string {
	if m.quitting || m.goBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212"))

	found := m.Found()
	title := fmt.Sprintf("MY MEMORIES - %s (%d/%d)", m.title, found, len(m.entries))
	b.WriteString(centerStyled(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableView := boxStyle.Render(m.table.View())
	if detail := m.renderDetail(); detail != "" {
		if m.width >= minWidthForDetail {
			tableView = lipgloss.JoinHorizontal(lipgloss.Top, tableView, "  ", detail)
		} else {
			tableView = detail
		}
	}
	b.WriteString(tableView)
	b.WriteString("\n")

	if m.stats != nil && m.stats.Runs > 0 {
		statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		b.WriteString(statsStyle.Render(formatStats(m.stats)))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderDetail renders the opened memory, or "" when none is open.
func (m MemoriesModel) renderDetail() string {
	if m.open < 0 || m.open >= len(m.entries) {
		return ""
	}
	e := m.entries[m.open]

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("212")).
		Foreground(lipgloss.Color("225")).
		Width(detailWidth).
		Padding(1, 2)

	var body strings.Builder
	if e.Photo > 0 {
		fmt.Fprintf(&body, "[ photo %d ]\n\n", e.Photo)
	}
	body.WriteString(e.Message)
	return style.Render(body.String())
}

// Found returns how many memories are unlocked.
func (m MemoriesModel) Found() int {
	n := 0
	for _, e := range m.entries {
		if e.Unlocked {
			n++
		}
	}
	return n
}

// Entries returns the gallery entries in level order.
func (m MemoriesModel) Entries() []MemoryEntry { return m.entries }

// IsGoingBack returns true if user wants to go back to menu.
func (m MemoriesModel) IsGoingBack() bool { return m.goBack }

// IsQuitting returns true if user wants to quit entirely.
func (m MemoriesModel) IsQuitting() bool { return m.quitting }

func formatStats(s *storage.RunStats) string {
	line := fmt.Sprintf("Runs: %d  Goals: %d  Pickups: %d  Lives lost: %d",
		s.Runs, s.Goals, s.TotalPickups, s.LivesLost)
	if s.FastestGoal > 0 {
		line += fmt.Sprintf("  Fastest: %d ticks", s.FastestGoal)
	}
	return line
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// RunMemories shows the gallery in its own program.
// Returns true if user wants to go back to menu, false if quitting.
func RunMemories(lvl *level.Geometry, collected []int, stats *storage.RunStats, width, height int) (goBack bool, err error) {
	model := NewMemoriesModel(lvl, collected, stats, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(MemoriesModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
