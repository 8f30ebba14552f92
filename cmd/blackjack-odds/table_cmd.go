package main

import (
	"context"
	"os"
	"time"

	"github.com/lox/blackjackodds/cmd/blackjack-odds/shared"
	"github.com/lox/blackjackodds/internal/engine"
	"github.com/lox/blackjackodds/internal/report"
)

// TableCmd writes the full odds table for player totals 4..21 against
// dealer upcards 1..10.
type TableCmd struct {
	Output   string `short:"o" default:"results.csv" help:"Output path ('-' for stdout)"`
	Parallel int    `default:"4" help:"Worker count for parallel generation (0 for sequential)"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *TableCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	rules := engine.DefaultRules()

	start := time.Now()
	var table *report.Table
	if c.Parallel > 0 {
		var err error
		table, err = report.GenerateParallel(context.Background(), rules, c.Parallel)
		if err != nil {
			return err
		}
	} else {
		table = report.Generate(rules)
	}
	logger.Debug("table generated",
		"records", len(table.Records),
		"duration", time.Since(start))

	if c.Output == "-" {
		return table.WriteCSV(os.Stdout)
	}
	if err := table.WriteFile(c.Output); err != nil {
		return err
	}
	logger.Info("wrote odds table",
		"path", c.Output,
		"records", len(table.Records))
	return nil
}
