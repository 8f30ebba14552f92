package engine

// Calculator owns the memo tables for one dealer upcard. Tables are
// write-once: every entry is a pure function of (rules, upcard), so a
// computed value never changes for the life of the Calculator. A
// Calculator is not safe for concurrent use; workers evaluating pairs in
// parallel each construct their own.
type Calculator struct {
	rules  Rules
	upcard int

	// Dealer tables indexed [startTotal][playerTotal], -1 while unset.
	dealerBust    [][]float64
	dealerLess    [][]float64
	dealerEqual   [][]float64
	dealerGreater [][]float64

	// Optimal-policy memo indexed by player total, -1 while unset.
	optWin    []float64
	optLoss   []float64
	optAction []string
}

// NewCalculator builds an empty memo set for the given upcard. The upcard
// must be in 1..rules.MaxCard; ComputeOptions guards this, direct callers
// must too.
func NewCalculator(rules Rules, upcard int) *Calculator {
	c := &Calculator{
		rules:         rules,
		upcard:        upcard,
		dealerBust:    newTable(rules.MaxTotal()+1, rules.Target+1),
		dealerLess:    newTable(rules.MaxTotal()+1, rules.Target+1),
		dealerEqual:   newTable(rules.MaxTotal()+1, rules.Target+1),
		dealerGreater: newTable(rules.MaxTotal()+1, rules.Target+1),
		optWin:        newRow(rules.Target + 1),
		optLoss:       newRow(rules.Target + 1),
		optAction:     make([]string, rules.Target+1),
	}
	return c
}

// Upcard returns the dealer upcard this Calculator was built for.
func (c *Calculator) Upcard() int {
	return c.upcard
}

// Rules returns the rules this Calculator was built for.
func (c *Calculator) Rules() Rules {
	return c.rules
}

// DealerOutcome returns the dealer's terminal distribution starting from
// startTotal, measured against playerTotal. Valid for startTotal in
// 1..MaxTotal and playerTotal in 0..Target.
func (c *Calculator) DealerOutcome(startTotal, playerTotal int) Distribution {
	if startTotal > c.rules.MaxTotal() {
		return Distribution{Bust: 1}
	}
	c.computeDealer(startTotal, playerTotal)
	return Distribution{
		Bust:    c.dealerBust[startTotal][playerTotal],
		Less:    c.dealerLess[startTotal][playerTotal],
		Equal:   c.dealerEqual[startTotal][playerTotal],
		Greater: c.dealerGreater[startTotal][playerTotal],
	}
}

// computeDealer fills the dealer tables for (s, pt). The recursion is
// acyclic: every draw strictly increases s, and totals past MaxTotal are
// counted as an immediate bust instead of recursing.
func (c *Calculator) computeDealer(s, pt int) {
	if c.dealerBust[s][pt] >= 0 {
		return
	}

	if s > c.rules.Target {
		c.dealerBust[s][pt] = 1
		c.dealerLess[s][pt] = 0
		c.dealerEqual[s][pt] = 0
		c.dealerGreater[s][pt] = 0
		return
	}
	if s >= c.rules.DealerStand {
		c.dealerBust[s][pt] = 0
		c.dealerLess[s][pt] = b2f(s < pt)
		c.dealerEqual[s][pt] = b2f(s == pt)
		c.dealerGreater[s][pt] = b2f(s > pt)
		return
	}

	var accBust, accLess, accEqual, accGreater float64
	for v := 1; v <= c.rules.MaxCard; v++ {
		ns := s + v
		if ns > c.rules.MaxTotal() {
			accBust++
			continue
		}
		c.computeDealer(ns, pt)
		accBust += c.dealerBust[ns][pt]
		accLess += c.dealerLess[ns][pt]
		accEqual += c.dealerEqual[ns][pt]
		accGreater += c.dealerGreater[ns][pt]
	}
	n := float64(c.rules.MaxCard)
	c.dealerBust[s][pt] = accBust / n
	c.dealerLess[s][pt] = accLess / n
	c.dealerEqual[s][pt] = accEqual / n
	c.dealerGreater[s][pt] = accGreater / n
}

// Stand returns the player's outcome when standing on total: the average
// over the dealer's unknown hole card of the dealer finishing below the
// total or busting (win) versus finishing above it without busting (loss).
func (c *Calculator) Stand(total int) Outcome {
	if total > c.rules.Target {
		return Outcome{Loss: 1}
	}

	var win, loss float64
	for hole := 1; hole <= c.rules.MaxCard; hole++ {
		start := c.upcard + hole
		if start > c.rules.MaxTotal() {
			// Unreachable with a legal upcard (upcard+hole tops out at
			// 2*MaxCard), kept as an immediate dealer bust.
			win++
			continue
		}
		d := c.DealerOutcome(start, total)
		win += d.Bust + d.Less
		loss += d.Greater
	}
	n := float64(c.rules.MaxCard)
	return Outcome{Win: win / n, Loss: loss / n}
}

// Hit returns the one-card lookahead outcome: draw exactly one card, then
// continue under the optimal policy. This is the value the BestAction
// label is computed from; it is not the decision rule inside Optimal.
func (c *Calculator) Hit(total int) Outcome {
	var win, loss float64
	for v := 1; v <= c.rules.MaxCard; v++ {
		next := c.Optimal(total + v)
		win += next.Win
		loss += next.Loss
	}
	n := float64(c.rules.MaxCard)
	return Outcome{Win: win / n, Loss: loss / n}
}

// Optimal returns the player's outcome under the win-probability-maximal
// stand/hit policy from total onward. Totals past Target are absorbing
// losses. Ties between standing and hitting go to standing.
func (c *Calculator) Optimal(total int) Outcome {
	if total > c.rules.Target {
		return Outcome{Loss: 1}
	}
	if c.optWin[total] >= 0 {
		return Outcome{Win: c.optWin[total], Loss: c.optLoss[total]}
	}

	stand := c.Stand(total)
	hit := c.Hit(total)

	res, action := stand, ActionStand
	if hit.Win > stand.Win {
		res, action = hit, ActionHit
	}
	c.optWin[total] = res.Win
	c.optLoss[total] = res.Loss
	c.optAction[total] = action
	return res
}

// ShouldHit reports whether the optimal policy draws at total. Busted
// totals never hit.
func (c *Calculator) ShouldHit(total int) bool {
	if total > c.rules.Target {
		return false
	}
	c.Optimal(total)
	return c.optAction[total] == ActionHit
}

// Options evaluates stand, one-card hit and the optimal policy for total
// and labels the better of stand versus the immediate hit.
func (c *Calculator) Options(total int) Options {
	out := Options{
		Stand:   c.Stand(total),
		Hit:     c.Hit(total),
		Optimal: c.Optimal(total),
	}
	switch {
	case out.Stand.Win > out.Hit.Win:
		out.BestAction = ActionStand
	case out.Hit.Win > out.Stand.Win:
		out.BestAction = ActionHit
	default:
		out.BestAction = ActionEqual
	}
	return out
}

func newTable(rows, cols int) [][]float64 {
	t := make([][]float64, rows)
	for i := range t {
		t[i] = newRow(cols)
	}
	return t
}

func newRow(n int) []float64 {
	r := make([]float64, n)
	for i := range r {
		r[i] = -1
	}
	return r
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
