package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjackodds/internal/engine"
	"github.com/lox/blackjackodds/internal/report"
	"github.com/lox/blackjackodds/internal/tui"
)

// ChartCmd launches the interactive strategy chart.
type ChartCmd struct{}

func (c *ChartCmd) Run() error {
	table := report.Generate(engine.DefaultRules())
	_, err := tea.NewProgram(tui.New(table), tea.WithAltScreen()).Run()
	return err
}
