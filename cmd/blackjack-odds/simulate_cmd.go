package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lox/blackjackodds/cmd/blackjack-odds/shared"
	"github.com/lox/blackjackodds/internal/engine"
	"github.com/lox/blackjackodds/internal/simulator"
)

// SimulateCmd cross-checks the engine's exact probabilities against
// Monte Carlo playouts of its own optimal policy.
type SimulateCmd struct {
	PlayerTotal  int   `arg:"" help:"Player hand total (4-21)"`
	DealerUpcard int   `arg:"" help:"Dealer upcard (1-10)"`
	Rounds       int   `default:"100000" help:"Number of rounds to play"`
	Seed         int64 `default:"0" help:"RNG seed (0 for time-based)"`
	Debug        bool  `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting simulation",
		"player_total", c.PlayerTotal,
		"dealer_upcard", c.DealerUpcard,
		"rounds", c.Rounds,
		"seed", seed)

	sim, err := simulator.New(simulator.Config{
		Rounds:       c.Rounds,
		PlayerTotal:  c.PlayerTotal,
		DealerUpcard: c.DealerUpcard,
		Seed:         seed,
		Rules:        engine.DefaultRules(),
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	stats, err := sim.Run()
	if err != nil {
		return err
	}
	expected := sim.Expected()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\tobserved\texact\tz\n")
	fmt.Fprintf(w, "win\t%.6f\t%.6f\t%.2f\n",
		stats.WinRate(), expected.Win, stats.ZDistance(stats.WinRate(), expected.Win))
	fmt.Fprintf(w, "loss\t%.6f\t%.6f\t%.2f\n",
		stats.LossRate(), expected.Loss, stats.ZDistance(stats.LossRate(), expected.Loss))
	fmt.Fprintf(w, "push\t%.6f\t%.6f\t\n",
		stats.PushRate(), 1-expected.Win-expected.Loss)
	w.Flush()

	lo, hi := stats.ConfidenceInterval95(stats.WinRate())
	fmt.Printf("\n95%% CI for win rate: [%.6f, %.6f]\n", lo, hi)
	fmt.Printf("%d rounds in %v\n", stats.Rounds, time.Since(start).Truncate(time.Millisecond))

	if z := stats.ZDistance(stats.WinRate(), expected.Win); z > 4 {
		return fmt.Errorf("observed win rate is %.1f standard errors from the exact value", z)
	}
	return nil
}
