// Package report turns engine output into the tabular odds report: one
// record per (player total, dealer upcard) pair with stand, hit and
// optimal probabilities, win/loss ratios and the best-action label.
package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/lox/blackjackodds/internal/engine"
	"github.com/lox/blackjackodds/internal/fileutil"
)

// Columns is the CSV header, in output order.
var Columns = []string{
	"player_score",
	"dealer_upcard",
	"stand_win",
	"stand_loss",
	"stand_win_loss_ratio",
	"hit_win",
	"hit_loss",
	"hit_win_loss_ratio",
	"best_action",
	"opt_win",
	"opt_loss",
	"opt_win_loss_ratio",
}

// Record is one row of the odds table.
type Record struct {
	PlayerTotal  int
	DealerUpcard int
	Options      engine.Options
}

// Ratio formats win/loss to six decimal places, or "inf" when the loss
// probability is zero. An impossible loss is exactly zero (the engine
// accumulates it directly rather than deriving it by subtraction); the
// check stays <= 0 so a stray negative would still read as unbeatable.
func Ratio(win, loss float64) string {
	if loss <= 0 {
		return "inf"
	}
	return formatProb(win / loss)
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'f', 6, 64)
}

func (r Record) row() []string {
	o := r.Options
	return []string{
		strconv.Itoa(r.PlayerTotal),
		strconv.Itoa(r.DealerUpcard),
		formatProb(o.Stand.Win),
		formatProb(o.Stand.Loss),
		Ratio(o.Stand.Win, o.Stand.Loss),
		formatProb(o.Hit.Win),
		formatProb(o.Hit.Loss),
		Ratio(o.Hit.Win, o.Hit.Loss),
		o.BestAction,
		formatProb(o.Optimal.Win),
		formatProb(o.Optimal.Loss),
		Ratio(o.Optimal.Win, o.Optimal.Loss),
	}
}

// Table is a fully generated odds report, ordered by player total then
// dealer upcard.
type Table struct {
	Rules   engine.Rules
	Records []Record
}

// Lookup returns the record for (playerTotal, upcard), or false when the
// pair is outside the table's range.
func (t *Table) Lookup(playerTotal, upcard int) (Record, bool) {
	if playerTotal < t.Rules.MinPlayerTotal || playerTotal > t.Rules.Target {
		return Record{}, false
	}
	if upcard < 1 || upcard > t.Rules.MaxCard {
		return Record{}, false
	}
	idx := (playerTotal-t.Rules.MinPlayerTotal)*t.Rules.MaxCard + (upcard - 1)
	return t.Records[idx], true
}

// WriteCSV writes the header and every record to w.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range t.Records {
		if err := cw.Write(r.row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the CSV atomically to path.
func (t *Table) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}
