package engine

// Rules captures the table rules the engine computes against. The zero
// value is not usable; start from DefaultRules.
type Rules struct {
	// Target is the best non-bust hand total.
	Target int
	// MaxCard is the highest card value in the shoe; cards are drawn
	// uniformly from 1..MaxCard.
	MaxCard int
	// DealerStand is the total at which the dealer stops drawing.
	DealerStand int
	// MinPlayerTotal is the lowest starting total worth reporting on
	// (two cards, both worth 2).
	MinPlayerTotal int
}

// DefaultRules returns standard rules: target 21, cards 1..10, dealer
// stands on all 17s.
func DefaultRules() Rules {
	return Rules{
		Target:         21,
		MaxCard:        10,
		DealerStand:    17,
		MinPlayerTotal: 4,
	}
}

// MaxTotal is the highest total reachable by drawing one card from a
// non-bust hand. Every memo table is sized from this, never from a
// literal.
func (r Rules) MaxTotal() int {
	return r.Target + r.MaxCard
}
