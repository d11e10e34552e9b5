package agent

import (
	"context"
	"fmt"

	"isolation/game"
	"isolation/searcher"
)

type greedyAgent struct {
	carryOver
	player    game.PlayerID
	heuristic searcher.Heuristic
}

// NewGreedyAgent returns an agent that plays the action whose result scores best.
func NewGreedyAgent(player game.PlayerID, h searcher.Heuristic) Agent {
	if !h.Valid() {
		panic(fmt.Sprintf("unexpected heuristic %d", int(h)))
	}
	return &greedyAgent{player: player, heuristic: h}
}

func (a *greedyAgent) GetAction(ctx context.Context, state game.State, queue *Queue) error {
	actions := state.Actions()
	if len(actions) == 0 {
		return fmt.Errorf("%w: %w", ErrNoActionPublished, searcher.ErrNoLegalActions)
	}
	queue.Put(findMax(actions, func(action game.Action) float64 {
		next := state.Result(action)
		if next.IsTerminal() {
			return next.Utility(a.player)
		}
		return searcher.Evaluate(next, a.player, a.heuristic)
	}))
	return nil
}

// findMax returns the first action with the highest score
func findMax(actions []game.Action, score func(game.Action) float64) game.Action {
	maxAction := actions[0]
	maxScore := score(maxAction)
	for _, action := range actions[1:] {
		if s := score(action); s > maxScore {
			maxScore = s
			maxAction = action
		}
	}
	return maxAction
}

type minimaxAgent struct {
	carryOver
	searcher *searcher.Searcher
	depth    int
}

// NewMinimaxAgent returns an agent running plain minimax at a fixed depth.
func NewMinimaxAgent(player game.PlayerID, depth int, options ...searcher.Option) Agent {
	return &minimaxAgent{
		searcher: searcher.New(player, append(options, searcher.WithMaxDepth(depth))...),
		depth:    depth,
	}
}

func (a *minimaxAgent) GetAction(ctx context.Context, state game.State, queue *Queue) error {
	action, err := a.searcher.Minimax(ctx, state, a.depth)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoActionPublished, err)
	}
	queue.Put(action)
	return nil
}
