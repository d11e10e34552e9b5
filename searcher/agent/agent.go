package agent

import (
	"context"
	"errors"
	"sync"

	"isolation/experiments/metrics"
	"isolation/game"
)

var ErrNoActionPublished = errors.New("no action published")

type Agent interface {
	// GetAction publishes one or more legal actions for state to queue, each superseding
	// the previous one. The caller cancels ctx when the time budget for the move expires.
	GetAction(ctx context.Context, state game.State, queue *Queue) error
	// Context returns the value the agent carried over from its previous turn
	Context() any
	SetContext(value any)
}

// Reporter is implemented by agents that collect search metrics for their current move.
// The host calls StartMove before GetAction and Snapshot once the move is over.
type Reporter interface {
	StartMove()
	Snapshot() metrics.SearchMetric
}

// Queue receives the actions an agent publishes. Put never blocks for long and is safe
// to call while the host reads the latest action. Once closed, Put drops actions.
type Queue struct {
	mu      sync.Mutex
	actions []game.Action
	closed  bool
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Put(action game.Action) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.actions = append(q.actions, action)
}

// Close stops accepting actions and returns the latest one published before it
func (q *Queue) Close() (game.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	if len(q.actions) == 0 {
		return game.NoLocation, false
	}
	return q.actions[len(q.actions)-1], true
}

// Latest returns the most recently published action
func (q *Queue) Latest() (game.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.actions) == 0 {
		return game.NoLocation, false
	}
	return q.actions[len(q.actions)-1], true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.actions)
}

// All returns a copy of every published action in publication order
func (q *Queue) All() []game.Action {
	q.mu.Lock()
	defer q.mu.Unlock()

	return append([]game.Action(nil), q.actions...)
}

// carryOver holds the opaque value an agent passes to its own next turn
type carryOver struct {
	value any
}

func (c *carryOver) Context() any {
	return c.value
}

func (c *carryOver) SetContext(value any) {
	c.value = value
}
