// Package deck models the simplified shoe: an infinite i.i.d. source of
// card values 1..MaxCard, each equally likely. There is no suit, no
// soft-ace handling and no depletion; every draw is independent.
package deck

import "math/rand"

// Shoe draws uniform card values from an injected rng so callers control
// seeding and replay.
type Shoe struct {
	rng     *rand.Rand
	maxCard int
}

// NewShoe creates a shoe drawing values 1..maxCard.
func NewShoe(rng *rand.Rand, maxCard int) *Shoe {
	return &Shoe{rng: rng, maxCard: maxCard}
}

// Draw returns the next card value.
func (s *Shoe) Draw() int {
	return s.rng.Intn(s.maxCard) + 1
}

// Hand is a running hand total.
type Hand struct {
	Total int
}

// Add draws the card into the hand.
func (h *Hand) Add(card int) {
	h.Total += card
}

// Busted reports whether the hand exceeds target.
func (h Hand) Busted(target int) bool {
	return h.Total > target
}
