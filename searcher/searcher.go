package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
)

var ErrNoLegalActions = errors.New("no legal actions")

// Cancellation is checked once per this many visited nodes
const checkInterval = 1024

type Option func(s *Searcher)

// Evaluator scores a non-terminal state for player with the given heuristic
type Evaluator func(state game.State, player game.PlayerID, h Heuristic) float64

// Searcher runs depth-limited adversarial search from the fixed perspective of one player.
// A Searcher is not safe for concurrent use: run one search at a time.
type Searcher struct {
	player    game.PlayerID
	heuristic Heuristic
	maxDepth  int
	evaluate  Evaluator
	metrics   metrics.Collector
	stats     Stats
}

func WithHeuristic(h Heuristic) Option {
	return func(s *Searcher) {
		if !h.Valid() {
			panic(fmt.Sprintf("unexpected heuristic %d", int(h)))
		}
		s.heuristic = h
	}
}

func WithMaxDepth(depth int) Option {
	return func(s *Searcher) {
		if depth < 0 || depth > meta.MaxDepth {
			panic(fmt.Sprintf("max depth must be within [0, %d], got %d", meta.MaxDepth, depth))
		}
		s.maxDepth = depth
	}
}

func WithEvaluator(evaluate Evaluator) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Searcher) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// New returns a searcher maximizing the outcome for player.
func New(player game.PlayerID, options ...Option) *Searcher {
	if player != 0 && player != 1 {
		panic(fmt.Sprintf("unexpected player %d", player))
	}
	s := &Searcher{ // Default values
		player:    player,
		heuristic: BTO,
		maxDepth:  meta.MaxDepth,
		evaluate:  Evaluate,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Stats returns the counters of the most recent search
func (s *Searcher) Stats() Stats {
	return s.stats
}

// selectMax returns the first root action with the highest child value
func (s *Searcher) selectMax(state game.State, value func(child game.State) (float64, error)) (game.Action, error) {
	actions := state.Actions()
	if len(actions) == 0 {
		return game.NoLocation, fmt.Errorf("cannot search from ply %d: %w", state.PlyCount(), ErrNoLegalActions)
	}

	best := actions[0]
	bestValue := math.Inf(-1)
	for i, action := range actions {
		v, err := value(state.Result(action))
		if err != nil {
			return game.NoLocation, err
		}
		// Strictly greater keeps the first action on ties
		if i == 0 || v > bestValue {
			best, bestValue = action, v
		}
	}
	return best, nil
}

// visit counts a node and periodically checks for cancellation
func (s *Searcher) visit(ctx context.Context) error {
	s.stats.Nodes++
	if s.stats.Nodes%checkInterval == 0 {
		return ctx.Err()
	}
	return nil
}

// leaf returns the value of state when the search stops there
func (s *Searcher) leaf(state game.State, depth int, h Heuristic) (float64, bool) {
	if state.IsTerminal() {
		s.stats.Terminals++
		return state.Utility(s.player), true
	}
	if depth <= 0 {
		s.stats.Evaluations++
		return s.evaluate(state, s.player, h), true
	}
	return 0, false
}
