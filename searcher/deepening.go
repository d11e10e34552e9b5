package searcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"isolation/game"
)

var ErrDeepeningDone = errors.New("iterative deepening already finished")

// Phase is the progress of an iterative deepening run
type Phase int

const (
	NotStarted Phase = iota
	Searching
	Done
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "NotStarted"
	case Searching:
		return "Searching"
	case Done:
		return "Done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Deepening searches one root state at depth 0, 1, ..., maxDepth, one depth per Step.
// Each completed depth supersedes the previous one and is never withdrawn.
type Deepening struct {
	searcher  *Searcher
	state     game.State
	heuristic Heuristic
	phase     Phase
	depth     int // Depth of the next or in-flight search
	best      game.Action
	completed int // Deepest completed depth, -1 if none
}

// Deepen prepares an iterative deepening run over state with the searcher's heuristic.
func (s *Searcher) Deepen(state game.State) *Deepening {
	return &Deepening{
		searcher:  s,
		state:     state,
		heuristic: s.heuristic,
		phase:     NotStarted,
		best:      game.NoLocation,
		completed: -1,
	}
}

func (d *Deepening) Phase() Phase {
	return d.phase
}

// Depth returns the depth the next Step searches
func (d *Deepening) Depth() int {
	return d.depth
}

// Best returns the action of the deepest completed search
func (d *Deepening) Best() (action game.Action, depth int, ok bool) {
	return d.best, d.completed, d.completed >= 0
}

// Step runs alpha-beta at the current depth and advances to the next one.
// On error the run stays at the same depth and earlier results remain valid.
func (d *Deepening) Step(ctx context.Context) (game.Action, error) {
	if d.phase == Done {
		return game.NoLocation, ErrDeepeningDone
	}
	d.phase = Searching

	action, err := d.searcher.AlphaBeta(ctx, d.state, d.depth, d.heuristic)
	if err != nil {
		return game.NoLocation, fmt.Errorf("depth %d: %w", d.depth, err)
	}

	d.best, d.completed = action, d.depth
	d.searcher.metrics.AddDepth(d.depth, d.searcher.stats.Nodes)
	d.depth++
	if d.depth > d.searcher.maxDepth {
		d.phase = Done
	}
	return action, nil
}

// Run steps through every remaining depth, publishing each result, until the run is done
// or ctx is cancelled. Cancellation is checked between depths and periodically inside them.
func (d *Deepening) Run(ctx context.Context, publish func(game.Action)) error {
	for d.phase != Done {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := d.Step(ctx)
		if err != nil {
			return err
		}
		// A depth finished after cancellation is kept in Best but not published
		if err := ctx.Err(); err != nil {
			return err
		}
		publish(action)

		stats := d.searcher.stats
		log.Debug().
			Int("depth", d.completed).
			Int("action", int(action)).
			Int64("nodes", stats.Nodes).
			Int64("cutoffs", stats.Cutoffs).
			Msg("completed search depth")
	}
	return nil
}
