package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackodds/internal/engine"
)

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Rounds: 100, PlayerTotal: 12, DealerUpcard: 0, Rules: engine.DefaultRules()})
	assert.Error(t, err)

	_, err = New(Config{Rounds: 100, PlayerTotal: 12, DealerUpcard: 11, Rules: engine.DefaultRules()})
	assert.Error(t, err)

	_, err = New(Config{Rounds: 0, PlayerTotal: 12, DealerUpcard: 6, Rules: engine.DefaultRules()})
	assert.Error(t, err)
}

func TestRunDeterministicBySeed(t *testing.T) {
	cfg := Config{
		Rounds:       2000,
		PlayerTotal:  16,
		DealerUpcard: 10,
		Seed:         12345,
		Rules:        engine.DefaultRules(),
	}

	a, err := New(cfg)
	require.NoError(t, err)
	statsA, err := a.Run()
	require.NoError(t, err)

	b, err := New(cfg)
	require.NoError(t, err)
	statsB, err := b.Run()
	require.NoError(t, err)

	assert.Equal(t, statsA, statsB)
	assert.Equal(t, cfg.Rounds, statsA.Rounds)
}

func TestRunConvergesOnEngineProbabilities(t *testing.T) {
	cfg := Config{
		Rounds:       20000,
		PlayerTotal:  12,
		DealerUpcard: 6,
		Seed:         99,
		Rules:        engine.DefaultRules(),
	}

	sim, err := New(cfg)
	require.NoError(t, err)
	stats, err := sim.Run()
	require.NoError(t, err)

	expected := sim.Expected()
	assert.InDelta(t, expected.Win, stats.WinRate(), 0.02)
	assert.InDelta(t, expected.Loss, stats.LossRate(), 0.02)
}

func TestRunBustedStartAlwaysLoses(t *testing.T) {
	sim, err := New(Config{
		Rounds:       500,
		PlayerTotal:  22,
		DealerUpcard: 5,
		Seed:         7,
		Rules:        engine.DefaultRules(),
	})
	require.NoError(t, err)

	stats, err := sim.Run()
	require.NoError(t, err)
	assert.Equal(t, 500, stats.Losses)
	assert.Equal(t, 500, stats.PlayerBusts)
	assert.Equal(t, 0, stats.Wins)
}

func TestRunStandOnTarget(t *testing.T) {
	// Standing on 21 can push or win but never lose to a non-busting
	// dealer beyond it.
	sim, err := New(Config{
		Rounds:       2000,
		PlayerTotal:  21,
		DealerUpcard: 10,
		Seed:         3,
		Rules:        engine.DefaultRules(),
	})
	require.NoError(t, err)

	stats, err := sim.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Losses)
	assert.Equal(t, 0, stats.PlayerBusts)
}
