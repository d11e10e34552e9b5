package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher/agent"
)

type Local struct {
	State     game.State
	Players   [2]Player // Indexed by game.PlayerID
	TimeLimit time.Duration
	contexts  [2]any
}

// NewLocal seats two players on a fresh board. players[0] moves first.
func NewLocal(players [2]Player, timeLimit time.Duration) *Local {
	for _, p := range players {
		if p.Agent == nil {
			panic("both players need an agent")
		}
	}
	if timeLimit <= 0 {
		panic("time limit must be positive")
	}
	return &Local{
		State:     game.NewIsolation(),
		Players:   players,
		TimeLimit: timeLimit,
	}
}

// Run executes the entire game loop until a player is stuck or forfeits.
// It only returns an error when ctx is cancelled.
func (e *Local) Run(ctx context.Context) (Outcome, error) {
	var outcome Outcome
	start := time.Now()

	log.Info().Msgf("agent %d is starting against agent %d", e.Players[0].ID, e.Players[1].ID)

	for !e.State.IsTerminal() {
		mover := e.State.Player()
		player := e.Players[mover]

		action, metric, err := e.requestAction(ctx, mover)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Outcome{}, ctxErr
		}
		outcome.MoveMetrics = append(outcome.MoveMetrics, metrics.MoveMetric{
			Step:         e.State.PlyCount(),
			Player:       int(mover),
			Agent:        player.ID,
			Action:       int(action),
			SearchMetric: metric,
		})

		if err != nil {
			log.Warn().Err(err).Msgf("agent %d forfeits at ply %d", player.ID, e.State.PlyCount())
			outcome.Winner = mover.Opponent()
			outcome.Forfeit = err
			break
		}

		log.Debug().Msgf("agent %d plays %d at ply %d (depth %d)", player.ID, action, e.State.PlyCount(), metric.Depth)
		outcome.History = append(outcome.History, action)
		e.State = e.State.Result(action)
	}

	if outcome.Forfeit == nil {
		outcome.Winner = winner(e.State)
	}
	end := time.Now()
	outcome.Final = e.State
	outcome.GameMetric = metrics.GameMetric{
		FirstAgent: e.Players[0].ID,
		Winner:     e.Players[outcome.Winner].ID,
		Forfeit:    outcome.Forfeit != nil,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: len(outcome.History),
	}

	log.Info().Msgf("agent %d wins after %d moves", outcome.GameMetric.Winner, len(outcome.History))
	return outcome, nil
}

// requestAction gives the mover the time limit to publish actions and returns the latest one
func (e *Local) requestAction(ctx context.Context, mover game.PlayerID) (game.Action, metrics.SearchMetric, error) {
	player := e.Players[mover]
	state := e.State
	queue := agent.NewQueue()

	moveCtx, cancel := context.WithTimeout(ctx, e.TimeLimit)
	defer cancel()

	player.Agent.SetContext(e.contexts[mover])
	if r, ok := player.Agent.(agent.Reporter); ok {
		r.StartMove()
	}
	done := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrAgentPanic, r)
			}
			done <- err
		}()
		err = player.Agent.GetAction(moveCtx, state, queue)
	}()

	var err error
	var metric metrics.SearchMetric
	var action game.Action
	var ok bool
	select {
	case err = <-done:
		action, ok = queue.Close()
		metric = snapshot(player.Agent)
	case <-moveCtx.Done():
		// Actions published after the deadline are dropped
		action, ok = queue.Close()
		metric = snapshot(player.Agent)
		// Wait for the search to wind down so only one runs per agent
		err = <-done
	}
	e.contexts[mover] = player.Agent.Context()
	if errors.Is(err, ErrAgentPanic) {
		return game.NoLocation, metric, err
	}

	if !ok {
		if err == nil {
			err = agent.ErrNoActionPublished
		}
		return game.NoLocation, metric, err
	}
	if slices.Index(state.Actions(), action) < 0 {
		return action, metric, fmt.Errorf("%w: %d at ply %d", ErrIllegalAction, action, state.PlyCount())
	}
	return action, metric, nil
}

func snapshot(a agent.Agent) metrics.SearchMetric {
	if r, ok := a.(agent.Reporter); ok {
		return r.Snapshot()
	}
	return metrics.SearchMetric{Depth: -1}
}

func winner(state game.State) game.PlayerID {
	if state.Utility(0) == game.Win {
		return 0
	}
	return 1
}
