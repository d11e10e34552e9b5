package searcher

import (
	"context"
	"math"

	"isolation/game"
)

// Minimax returns the action maximizing the worst-case outcome searched to depth plies,
// evaluating cutoff states with the searcher's heuristic. It explores the full tree and
// serves as the reference for AlphaBeta.
func (s *Searcher) Minimax(ctx context.Context, state game.State, depth int) (game.Action, error) {
	s.stats = Stats{}
	return s.selectMax(state, func(child game.State) (float64, error) {
		return s.minValue(ctx, child, depth-1)
	})
}

func (s *Searcher) maxValue(ctx context.Context, state game.State, depth int) (float64, error) {
	if err := s.visit(ctx); err != nil {
		return 0, err
	}
	if v, ok := s.leaf(state, depth, s.heuristic); ok {
		return v, nil
	}

	v := math.Inf(-1)
	for _, action := range state.Actions() {
		child, err := s.minValue(ctx, state.Result(action), depth-1)
		if err != nil {
			return 0, err
		}
		v = max(v, child)
	}
	return v, nil
}

func (s *Searcher) minValue(ctx context.Context, state game.State, depth int) (float64, error) {
	if err := s.visit(ctx); err != nil {
		return 0, err
	}
	if v, ok := s.leaf(state, depth, s.heuristic); ok {
		return v, nil
	}

	v := math.Inf(1)
	for _, action := range state.Actions() {
		child, err := s.maxValue(ctx, state.Result(action), depth-1)
		if err != nil {
			return 0, err
		}
		v = min(v, child)
	}
	return v, nil
}
