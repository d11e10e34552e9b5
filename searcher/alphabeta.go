package searcher

import (
	"context"
	"fmt"
	"math"

	"isolation/game"
)

// AlphaBeta returns the same action as Minimax would with heuristic h, pruning subtrees
// that cannot change the result. Every root child is searched with a full window.
func (s *Searcher) AlphaBeta(ctx context.Context, state game.State, depth int, h Heuristic) (game.Action, error) {
	if !h.Valid() {
		panic(fmt.Sprintf("unexpected heuristic %d", int(h)))
	}
	s.stats = Stats{}
	return s.selectMax(state, func(child game.State) (float64, error) {
		return s.alphaBetaMin(ctx, child, math.Inf(-1), math.Inf(1), depth-1, h)
	})
}

func (s *Searcher) alphaBetaMax(ctx context.Context, state game.State, alpha, beta float64, depth int, h Heuristic) (float64, error) {
	if err := s.visit(ctx); err != nil {
		return 0, err
	}
	if v, ok := s.leaf(state, depth, h); ok {
		return v, nil
	}

	v := math.Inf(-1)
	for _, action := range state.Actions() {
		child, err := s.alphaBetaMin(ctx, state.Result(action), alpha, beta, depth-1, h)
		if err != nil {
			return 0, err
		}
		v = max(v, child)
		if v >= beta { // The minimizer above already has a better option
			s.stats.Cutoffs++
			return v, nil
		}
		alpha = max(alpha, v)
	}
	return v, nil
}

func (s *Searcher) alphaBetaMin(ctx context.Context, state game.State, alpha, beta float64, depth int, h Heuristic) (float64, error) {
	if err := s.visit(ctx); err != nil {
		return 0, err
	}
	if v, ok := s.leaf(state, depth, h); ok {
		return v, nil
	}

	v := math.Inf(1)
	for _, action := range state.Actions() {
		child, err := s.alphaBetaMax(ctx, state.Result(action), alpha, beta, depth-1, h)
		if err != nil {
			return 0, err
		}
		v = min(v, child)
		if v <= alpha { // The maximizer above already has a better option
			s.stats.Cutoffs++
			return v, nil
		}
		beta = min(beta, v)
	}
	return v, nil
}
