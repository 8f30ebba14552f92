// Package engine computes exact win/loss probabilities for simplified
// blackjack: an infinite shoe of cards valued 1..MaxCard drawn uniformly,
// a dealer who stands on DealerStand or better, and a player choosing
// between standing and hitting. Payout structure is ignored; the engine
// ranks actions purely by win probability.
package engine

// Action labels reported in Options.BestAction.
const (
	ActionStand = "stand"
	ActionHit   = "hit"
	ActionEqual = "equal"
)

// Outcome is a (win, loss) probability pair for one player decision.
// The remainder 1-Win-Loss is the push probability.
type Outcome struct {
	Win  float64
	Loss float64
}

// Distribution describes the dealer's terminal result relative to a fixed
// player total: the dealer busts, finishes below the total, ties it, or
// beats it without busting. Greater is accumulated directly rather than
// derived as 1-Bust-Less-Equal so that an impossible dealer win (every
// terminal contributes exactly 0, as when the player holds the target)
// comes out as exactly zero instead of a subtraction artifact.
type Distribution struct {
	Bust    float64
	Less    float64
	Equal   float64
	Greater float64
}

// Options aggregates the three evaluations for one (player total, dealer
// upcard) pair. Hit is the one-card lookahead (draw once, then play
// optimally); Optimal is the full policy value. BestAction compares
// Stand.Win against Hit.Win only, which is deliberately not the same rule
// the optimal policy uses internally, so the label and the Optimal value
// can disagree on ambiguous totals.
type Options struct {
	Stand      Outcome
	Hit        Outcome
	Optimal    Outcome
	BestAction string
}

// ComputeOptions evaluates one (player total, dealer upcard) pair. An
// upcard outside 1..MaxCard yields the zero Options with no best action;
// callers that want a hard failure must check the upcard themselves.
func ComputeOptions(rules Rules, playerTotal, dealerUpcard int) Options {
	if dealerUpcard < 1 || dealerUpcard > rules.MaxCard {
		return Options{}
	}
	return NewCalculator(rules, dealerUpcard).Options(playerTotal)
}
