package searcher

import (
	"golang.org/x/exp/rand"

	"isolation/experiments/metrics"
	"isolation/game"
)

// node is a synthetic game tree node. Leaves carry the value the test evaluator returns.
type node struct {
	value    float64
	terminal bool
	children []*node
}

func leaf(value float64) *node {
	return &node{value: value}
}

func terminal(value float64) *node {
	return &node{value: value, terminal: true}
}

func branch(children ...*node) *node {
	return &node{children: children}
}

// mockState walks a synthetic tree. Actions are child indices.
type mockState struct {
	node      *node
	ply       int
	locs      [2]game.Location
	liberties map[game.Location][]game.Location
}

func (s mockState) Player() game.PlayerID {
	return game.PlayerID(s.ply % 2)
}

func (s mockState) Actions() []game.Action {
	if s.node == nil {
		return nil
	}
	actions := make([]game.Action, len(s.node.children))
	for i := range s.node.children {
		actions[i] = game.Action(i)
	}
	return actions
}

func (s mockState) Result(action game.Action) game.State {
	return mockState{node: s.node.children[action], ply: s.ply + 1}
}

func (s mockState) IsTerminal() bool {
	return s.node != nil && s.node.terminal
}

func (s mockState) Utility(player game.PlayerID) float64 {
	return s.node.value
}

func (s mockState) PlyCount() int {
	return s.ply
}

func (s mockState) Locs() [2]game.Location {
	return s.locs
}

func (s mockState) Liberties(loc game.Location) []game.Location {
	return s.liberties[loc]
}

// leafValue evaluates synthetic leaves to their stored value
func leafValue(state game.State, player game.PlayerID, h Heuristic) float64 {
	return state.(mockState).node.value
}

// playout plays uniformly random moves from the empty board for the given number of plies,
// stopping early at a terminal state
func playout(seed uint64, plies int) game.State {
	rng := rand.New(rand.NewSource(seed))
	var state game.State = game.NewIsolation()
	for i := 0; i < plies && !state.IsTerminal(); i++ {
		actions := state.Actions()
		state = state.Result(actions[rng.Intn(len(actions))])
	}
	return state
}

// recordingCollector remembers the completed depths reported by a search
type recordingCollector struct {
	depths []int
}

func (c *recordingCollector) Start() {}

func (c *recordingCollector) AddDepth(depth int, nodes int64) {
	c.depths = append(c.depths, depth)
}

func (c *recordingCollector) Complete() metrics.SearchMetric {
	return metrics.SearchMetric{Depth: c.depths[len(c.depths)-1]}
}
