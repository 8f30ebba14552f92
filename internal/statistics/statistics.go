// Package statistics accumulates Monte Carlo playout results and exposes
// the frequency estimates used to cross-check the exact engine.
package statistics

import (
	"fmt"
	"math"
)

// RoundResult is the outcome of a single simulated round.
type RoundResult struct {
	Net          int   // +1 win, 0 push, -1 loss
	Seed         int64 // rng seed for this round (for replay)
	PlayerTotal  int   // player's final total
	DealerTotal  int   // dealer's final total
	PlayerBusted bool
	DealerBusted bool
}

// Statistics tracks win/push/loss tallies across simulated rounds.
type Statistics struct {
	Rounds int
	Wins   int
	Pushes int
	Losses int

	PlayerBusts int
	DealerBusts int
}

// Add incorporates a round result.
func (s *Statistics) Add(r RoundResult) {
	s.Rounds++
	switch {
	case r.Net > 0:
		s.Wins++
	case r.Net < 0:
		s.Losses++
	default:
		s.Pushes++
	}
	if r.PlayerBusted {
		s.PlayerBusts++
	}
	if r.DealerBusted {
		s.DealerBusts++
	}
}

// WinRate returns the observed win frequency.
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// LossRate returns the observed loss frequency.
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

// PushRate returns the observed push frequency.
func (s *Statistics) PushRate() float64 {
	return s.rate(s.Pushes)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// StdError returns the binomial standard error of an observed frequency p.
func (s *Statistics) StdError(p float64) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return math.Sqrt(p * (1 - p) / float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for an
// observed frequency p.
func (s *Statistics) ConfidenceInterval95(p float64) (float64, float64) {
	margin := 1.96 * s.StdError(p)
	return p - margin, p + margin
}

// ZDistance returns how many standard errors the observed frequency p
// lies from an expected probability. Used to flag engine/simulation
// disagreement.
func (s *Statistics) ZDistance(p, expected float64) float64 {
	se := s.StdError(p)
	if se == 0 {
		return 0
	}
	return math.Abs(p-expected) / se
}

// Validate checks internal consistency of the tallies.
func (s *Statistics) Validate() error {
	if s.Wins+s.Pushes+s.Losses != s.Rounds {
		return fmt.Errorf("tallies do not sum: %d wins + %d pushes + %d losses != %d rounds",
			s.Wins, s.Pushes, s.Losses, s.Rounds)
	}
	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}
	return nil
}
