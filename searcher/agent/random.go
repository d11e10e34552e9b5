package agent

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"

	"isolation/game"
	"isolation/searcher"
)

type randomAgent struct {
	carryOver
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal actions.
func NewRandomAgent(rng *rand.Rand) Agent {
	if rng == nil {
		panic("random agent needs a random generator")
	}
	return &randomAgent{rng: rng}
}

func (a *randomAgent) GetAction(ctx context.Context, state game.State, queue *Queue) error {
	actions := state.Actions()
	if len(actions) == 0 {
		return fmt.Errorf("%w: %w", ErrNoActionPublished, searcher.ErrNoLegalActions)
	}
	queue.Put(actions[a.rng.Intn(len(actions))])
	return nil
}
