package engine

import (
	"context"
	"errors"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher/agent"
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrAgentPanic    = errors.New("agent panicked")
)

type Engine interface {
	// Run plays a game till a terminal state or a forfeit
	Run(ctx context.Context) (Outcome, error)
}

// Player seats an agent at one side of the board
type Player struct {
	ID    int // AgentConfig.ID
	Agent agent.Agent
}

type Outcome struct {
	Winner      game.PlayerID
	Forfeit     error // Why the loser forfeited, nil if the game ended on the board
	History     []game.Action
	Final       game.State
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}
