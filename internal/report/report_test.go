package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackodds/internal/engine"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		win, loss float64
		expected  string
	}{
		{0.5, 0.25, "2.000000"},
		{0.885739, 0, "inf"},
		{0.885739, -1.8e-17, "inf"}, // stray negatives still read as unbeatable
		{0, 1, "0.000000"},
		{1.0 / 3.0, 1, "0.333333"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, Ratio(test.win, test.loss), "win=%v loss=%v", test.win, test.loss)
	}
}

func TestRatioStandingOnTargetIsInf(t *testing.T) {
	// Standing on 21 cannot lose against any upcard, so every stand ratio
	// on the top row must collapse to the sentinel rather than a huge
	// quotient over a rounding remainder.
	rules := engine.DefaultRules()
	for upcard := 1; upcard <= rules.MaxCard; upcard++ {
		stand := engine.NewCalculator(rules, upcard).Stand(rules.Target)
		assert.Equal(t, "inf", Ratio(stand.Win, stand.Loss), "upcard=%d", upcard)
	}
}

func TestGenerateCoversGrid(t *testing.T) {
	rules := engine.DefaultRules()
	table := Generate(rules)

	require.Len(t, table.Records, 18*10)
	assert.Equal(t, 4, table.Records[0].PlayerTotal)
	assert.Equal(t, 1, table.Records[0].DealerUpcard)
	assert.Equal(t, 21, table.Records[len(table.Records)-1].PlayerTotal)
	assert.Equal(t, 10, table.Records[len(table.Records)-1].DealerUpcard)

	for _, r := range table.Records {
		assert.Contains(t, []string{engine.ActionStand, engine.ActionHit, engine.ActionEqual}, r.Options.BestAction)
	}
}

func TestGenerateParallelMatchesSequential(t *testing.T) {
	rules := engine.DefaultRules()
	seq := Generate(rules)

	for _, workers := range []int{0, 1, 4} {
		par, err := GenerateParallel(context.Background(), rules, workers)
		require.NoError(t, err)
		// Bit-identical: the engine is deterministic and workers fill
		// fixed slots.
		require.Equal(t, seq.Records, par.Records, "workers=%d", workers)
	}
}

func TestLookup(t *testing.T) {
	table := Generate(engine.DefaultRules())

	r, ok := table.Lookup(20, 10)
	require.True(t, ok)
	assert.Equal(t, 20, r.PlayerTotal)
	assert.Equal(t, 10, r.DealerUpcard)
	assert.Equal(t, engine.ActionStand, r.Options.BestAction)

	_, ok = table.Lookup(3, 5)
	assert.False(t, ok)
	_, ok = table.Lookup(22, 5)
	assert.False(t, ok)
	_, ok = table.Lookup(12, 0)
	assert.False(t, ok)
	_, ok = table.Lookup(12, 11)
	assert.False(t, ok)
}

func TestWriteCSV(t *testing.T) {
	table := Generate(engine.DefaultRules())

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+18*10)
	assert.Equal(t, Columns, rows[0])

	// Standing on 21 never loses so the ratio column is the sentinel.
	var found bool
	for _, row := range rows[1:] {
		if row[0] == "21" {
			found = true
			assert.Equal(t, "inf", row[4], "upcard=%s", row[1])
		}
		require.Len(t, row, len(Columns))
	}
	assert.True(t, found)
}

func TestWriteFile(t *testing.T) {
	table := Generate(engine.DefaultRules())
	path := filepath.Join(t.TempDir(), "results.csv")

	require.NoError(t, table.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 1+18*10)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
}
