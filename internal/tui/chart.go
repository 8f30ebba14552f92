// Package tui renders the strategy chart: an interactive grid of best
// actions over every (player total, dealer upcard) pair, with the full
// probability breakdown for the selected cell.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjackodds/internal/engine"
	"github.com/lox/blackjackodds/internal/report"
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Quit},
	}
}

var defaultKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the Bubble Tea model for the strategy chart.
type Model struct {
	table *report.Table
	keys  keyMap
	help  help.Model

	// Cursor position: row indexes player totals from the top
	// (MinPlayerTotal first), col indexes upcards 1..MaxCard.
	row int
	col int

	quitting bool
}

// New creates a chart model over a generated table.
func New(table *report.Table) Model {
	return Model{
		table: table,
		keys:  defaultKeys,
		help:  help.New(),
	}
}

func (m Model) rows() int {
	return m.table.Rules.Target - m.table.Rules.MinPlayerTotal + 1
}

func (m Model) cols() int {
	return m.table.Rules.MaxCard
}

// Selected returns the record under the cursor.
func (m Model) Selected() report.Record {
	r, _ := m.table.Lookup(m.table.Rules.MinPlayerTotal+m.row, m.col+1)
	return r
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, m.keys.Down):
			if m.row < m.rows()-1 {
				m.row++
			}
		case key.Matches(msg, m.keys.Left):
			if m.col > 0 {
				m.col--
			}
		case key.Matches(msg, m.keys.Right):
			if m.col < m.cols()-1 {
				m.col++
			}
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" blackjack strategy chart "))
	b.WriteString("\n\n")

	// Column header: dealer upcards.
	b.WriteString(AxisStyle.Render("     "))
	for upcard := 1; upcard <= m.cols(); upcard++ {
		b.WriteString(AxisStyle.Render(fmt.Sprintf("%3d ", upcard)))
	}
	b.WriteString("\n")

	for row := 0; row < m.rows(); row++ {
		total := m.table.Rules.MinPlayerTotal + row
		b.WriteString(AxisStyle.Render(fmt.Sprintf(" %3d ", total)))
		for col := 0; col < m.cols(); col++ {
			r, _ := m.table.Lookup(total, col+1)
			cell := fmt.Sprintf(" %s  ", actionGlyph(r.Options.BestAction))
			if row == m.row && col == m.col {
				b.WriteString(CursorStyle.Render(cell))
			} else {
				b.WriteString(actionStyle(r.Options.BestAction).Render(cell))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) detailView() string {
	r := m.Selected()
	o := r.Options

	var b strings.Builder
	b.WriteString(DetailTitleStyle.Render(
		fmt.Sprintf("player %d v dealer %d", r.PlayerTotal, r.DealerUpcard)))
	b.WriteString("\n")
	b.WriteString(DetailStyle.Render(fmt.Sprintf(
		"stand  win %.6f  loss %.6f  ratio %s\n",
		o.Stand.Win, o.Stand.Loss, report.Ratio(o.Stand.Win, o.Stand.Loss))))
	b.WriteString(DetailStyle.Render(fmt.Sprintf(
		"hit    win %.6f  loss %.6f  ratio %s\n",
		o.Hit.Win, o.Hit.Loss, report.Ratio(o.Hit.Win, o.Hit.Loss))))
	b.WriteString(DetailStyle.Render(fmt.Sprintf(
		"opt    win %.6f  loss %.6f  ratio %s\n",
		o.Optimal.Win, o.Optimal.Loss, report.Ratio(o.Optimal.Win, o.Optimal.Loss))))
	b.WriteString(DetailStyle.Render("best action: "))
	b.WriteString(actionStyle(o.BestAction).Render(o.BestAction))
	return b.String()
}

func actionGlyph(action string) string {
	switch action {
	case engine.ActionStand:
		return "S"
	case engine.ActionHit:
		return "H"
	default:
		return "="
	}
}

func actionStyle(action string) lipgloss.Style {
	switch action {
	case engine.ActionStand:
		return StandStyle
	case engine.ActionHit:
		return HitStyle
	default:
		return EqualStyle
	}
}
