package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"
)

// CustomAgent plays a random opening and searches every later ply with iterative deepening
type CustomAgent struct {
	carryOver
	searcher  *searcher.Searcher
	rng       *rand.Rand
	collector metrics.Collector
}

// NewCustomAgent returns an agent for player. rng is the only source of randomness and is
// used for the opening plies. collector may be nil.
func NewCustomAgent(player game.PlayerID, rng *rand.Rand, collector metrics.Collector, options ...searcher.Option) *CustomAgent {
	if rng == nil {
		panic("custom agent needs a random generator")
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	options = append(options, searcher.WithMetrics(collector))
	return &CustomAgent{
		searcher:  searcher.New(player, options...),
		rng:       rng,
		collector: collector,
	}
}

func (a *CustomAgent) GetAction(ctx context.Context, state game.State, queue *Queue) error {
	if state.PlyCount() < meta.OpeningPlies {
		actions := state.Actions()
		if len(actions) == 0 {
			return fmt.Errorf("%w: %w", ErrNoActionPublished, searcher.ErrNoLegalActions)
		}
		queue.Put(actions[a.rng.Intn(len(actions))])
		return nil
	}

	published := 0
	err := a.searcher.Deepen(state).Run(ctx, func(action game.Action) {
		queue.Put(action)
		published++
	})
	if err == nil {
		return nil
	}
	if published == 0 {
		return fmt.Errorf("%w: %w", ErrNoActionPublished, err)
	}
	// Earlier depths stay valid when a deeper one is abandoned
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Err(err).Int("published", published).Msg("search stopped early")
	}
	return nil
}

func (a *CustomAgent) StartMove() {
	a.collector.Start()
}

func (a *CustomAgent) Snapshot() metrics.SearchMetric {
	return a.collector.Complete()
}
