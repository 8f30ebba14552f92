// Package simulator plays seeded Monte Carlo rounds of the simplified
// game for one (player total, dealer upcard) pair, with the player
// following the engine's optimal policy. Its purpose is verification:
// empirical frequencies should converge on the engine's exact
// probabilities.
package simulator

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjackodds/internal/deck"
	"github.com/lox/blackjackodds/internal/engine"
	"github.com/lox/blackjackodds/internal/statistics"
)

// Config holds configuration for a simulation run.
type Config struct {
	Rounds       int
	PlayerTotal  int
	DealerUpcard int
	Seed         int64
	Rules        engine.Rules
	Logger       *log.Logger
}

// Simulator runs playouts for a fixed pair.
type Simulator struct {
	config Config
	calc   *engine.Calculator
}

// New creates a simulator. The upcard must be a real card; unlike the
// engine's silent zero report, a simulation of an impossible deal is an
// error.
func New(config Config) (*Simulator, error) {
	if config.DealerUpcard < 1 || config.DealerUpcard > config.Rules.MaxCard {
		return nil, fmt.Errorf("dealer upcard %d out of range 1..%d", config.DealerUpcard, config.Rules.MaxCard)
	}
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.PlayerTotal < 0 {
		return nil, fmt.Errorf("player total %d out of range", config.PlayerTotal)
	}
	return &Simulator{
		config: config,
		calc:   engine.NewCalculator(config.Rules, config.DealerUpcard),
	}, nil
}

// Run plays every round and returns the accumulated statistics.
func (s *Simulator) Run() (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}

	for round := 0; round < s.config.Rounds; round++ {
		// Independent seed per round so any single round can be replayed.
		roundSeed := s.config.Seed + int64(round)
		stats.Add(s.playRound(roundSeed))

		if s.config.Logger != nil && (round+1)%100000 == 0 {
			s.config.Logger.Debug("simulation progress",
				"rounds", round+1,
				"win_rate", stats.WinRate())
		}
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playRound plays one round: the player draws while the optimal policy
// says hit, then the dealer reveals a hole card and draws to the stand
// threshold. Wins and losses follow the engine's comparison rules; equal
// standing totals push.
func (s *Simulator) playRound(seed int64) statistics.RoundResult {
	rules := s.config.Rules
	shoe := deck.NewShoe(rand.New(rand.NewSource(seed)), rules.MaxCard)

	player := deck.Hand{Total: s.config.PlayerTotal}
	for !player.Busted(rules.Target) && s.calc.ShouldHit(player.Total) {
		player.Add(shoe.Draw())
	}

	result := statistics.RoundResult{
		Seed:        seed,
		PlayerTotal: player.Total,
	}

	if player.Busted(rules.Target) {
		result.PlayerBusted = true
		result.Net = -1
		return result
	}

	dealer := deck.Hand{Total: s.config.DealerUpcard}
	dealer.Add(shoe.Draw()) // hole card
	for dealer.Total < rules.DealerStand {
		dealer.Add(shoe.Draw())
	}
	result.DealerTotal = dealer.Total

	switch {
	case dealer.Busted(rules.Target):
		result.DealerBusted = true
		result.Net = 1
	case dealer.Total > player.Total:
		result.Net = -1
	case dealer.Total < player.Total:
		result.Net = 1
	}
	return result
}

// Expected returns the engine's exact outcome under the optimal policy
// for the simulated pair, for comparison against Run's frequencies.
func (s *Simulator) Expected() engine.Outcome {
	return s.calc.Optimal(s.config.PlayerTotal)
}
