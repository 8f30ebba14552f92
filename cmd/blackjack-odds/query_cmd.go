package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjackodds/internal/engine"
	"github.com/lox/blackjackodds/internal/report"
)

var (
	queryHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	queryWinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	queryLossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	queryActionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("14"))
)

// QueryCmd evaluates a single (player total, dealer upcard) pair.
type QueryCmd struct {
	PlayerTotal  int `arg:"" help:"Player hand total (4-21)"`
	DealerUpcard int `arg:"" help:"Dealer upcard (1-10)"`
}

func (c *QueryCmd) Run() error {
	rules := engine.DefaultRules()
	if c.PlayerTotal < 0 {
		return fmt.Errorf("player total %d out of range", c.PlayerTotal)
	}
	opts := engine.ComputeOptions(rules, c.PlayerTotal, c.DealerUpcard)

	if opts.BestAction == "" {
		// The engine's defined degenerate result for an impossible
		// upcard; surface it rather than second-guessing.
		fmt.Printf("no odds for upcard %d (valid upcards are 1-%d)\n", c.DealerUpcard, rules.MaxCard)
		return nil
	}

	fmt.Printf("%s\n\n", queryHeaderStyle.Render(
		fmt.Sprintf("player %d v dealer %d", c.PlayerTotal, c.DealerUpcard)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		queryHeaderStyle.Render("action"),
		queryHeaderStyle.Render("win"),
		queryHeaderStyle.Render("loss"),
		queryHeaderStyle.Render("win/loss"))

	for _, row := range []struct {
		name string
		o    engine.Outcome
	}{
		{"stand", opts.Stand},
		{"hit", opts.Hit},
		{"optimal", opts.Optimal},
	} {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			row.name,
			queryWinStyle.Render(fmt.Sprintf("%.6f", row.o.Win)),
			queryLossStyle.Render(fmt.Sprintf("%.6f", row.o.Loss)),
			report.Ratio(row.o.Win, row.o.Loss))
	}
	w.Flush()

	fmt.Printf("\nbest action: %s\n", queryActionStyle.Render(opts.BestAction))
	return nil
}
