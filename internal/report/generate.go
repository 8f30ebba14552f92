package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjackodds/internal/engine"
)

// Generate evaluates the full grid of player totals against dealer
// upcards sequentially, reusing one Calculator per upcard column.
func Generate(rules engine.Rules) *Table {
	t := &Table{
		Rules:   rules,
		Records: make([]Record, 0, gridSize(rules)),
	}
	calcs := make([]*engine.Calculator, rules.MaxCard+1)
	for upcard := 1; upcard <= rules.MaxCard; upcard++ {
		calcs[upcard] = engine.NewCalculator(rules, upcard)
	}
	for total := rules.MinPlayerTotal; total <= rules.Target; total++ {
		for upcard := 1; upcard <= rules.MaxCard; upcard++ {
			t.Records = append(t.Records, Record{
				PlayerTotal:  total,
				DealerUpcard: upcard,
				Options:      calcs[upcard].Options(total),
			})
		}
	}
	return t
}

// GenerateParallel fans the upcard columns out over an errgroup. Each
// worker owns its Calculator, so no memo state is shared; results land in
// pre-assigned slots and the output order matches Generate exactly.
func GenerateParallel(ctx context.Context, rules engine.Rules, workers int) (*Table, error) {
	t := &Table{
		Rules:   rules,
		Records: make([]Record, gridSize(rules)),
	}

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	totals := rules.Target - rules.MinPlayerTotal + 1
	for upcard := 1; upcard <= rules.MaxCard; upcard++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			calc := engine.NewCalculator(rules, upcard)
			for i := 0; i < totals; i++ {
				total := rules.MinPlayerTotal + i
				t.Records[i*rules.MaxCard+(upcard-1)] = Record{
					PlayerTotal:  total,
					DealerUpcard: upcard,
					Options:      calc.Options(total),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}

func gridSize(rules engine.Rules) int {
	return (rules.Target - rules.MinPlayerTotal + 1) * rules.MaxCard
}
