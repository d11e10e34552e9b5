package agent

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

// playout plays seeded random moves from the empty board
func playout(seed uint64, plies int) game.State {
	rng := rand.New(rand.NewSource(seed))
	var state game.State = game.NewIsolation()
	for i := 0; i < plies && !state.IsTerminal(); i++ {
		actions := state.Actions()
		state = state.Result(actions[rng.Intn(len(actions))])
	}
	return state
}

func TestQueue(t *testing.T) {
	t.Run("empty queue has no latest action", func(t *testing.T) {
		q := NewQueue()

		action, ok := q.Latest()

		require.False(t, ok)
		require.Equal(t, game.NoLocation, action)
		require.Zero(t, q.Len())
	})

	t.Run("latest is the last put", func(t *testing.T) {
		q := NewQueue()
		q.Put(4)
		q.Put(9)

		action, ok := q.Latest()

		require.True(t, ok)
		require.Equal(t, game.Action(9), action)
		require.Equal(t, []game.Action{4, 9}, q.All())
	})

	t.Run("closed queue drops later actions", func(t *testing.T) {
		q := NewQueue()
		q.Put(4)

		action, ok := q.Close()
		q.Put(9)

		require.True(t, ok)
		require.Equal(t, game.Action(4), action)
		latest, _ := q.Latest()
		require.Equal(t, game.Action(4), latest)
		require.Equal(t, 1, q.Len())
	})

	t.Run("closing an empty queue", func(t *testing.T) {
		action, ok := NewQueue().Close()

		require.False(t, ok)
		require.Equal(t, game.NoLocation, action)
	})

	t.Run("concurrent puts are all kept", func(t *testing.T) {
		q := NewQueue()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					q.Put(game.Action(j))
					q.Latest()
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 800, q.Len())
	})
}

func TestCustomAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("opening plies publish exactly one legal action", func(t *testing.T) {
		a := NewCustomAgent(0, rand.New(rand.NewSource(1)), nil)
		for plies := 0; plies < 2; plies++ {
			state := playout(5, plies)
			q := NewQueue()

			err := a.GetAction(ctx, state, q)

			require.NoError(t, err)
			require.Equal(t, 1, q.Len(), "Opening ply %d", plies)
			action, _ := q.Latest()
			require.True(t, slices.Contains(state.Actions(), action))
		}
	})

	t.Run("opening actions are uniform over legal actions", func(t *testing.T) {
		const trials = 10000
		a := NewCustomAgent(0, rand.New(rand.NewSource(42)), nil)
		state := game.NewIsolation()
		actions := state.Actions()
		counts := make(map[game.Action]float64, len(actions))

		for i := 0; i < trials; i++ {
			q := NewQueue()
			require.NoError(t, a.GetAction(ctx, state, q))
			action, _ := q.Latest()
			counts[action]++
		}

		observed := make([]float64, len(actions))
		expected := make([]float64, len(actions))
		for i, action := range actions {
			observed[i] = counts[action]
			expected[i] = float64(trials) / float64(len(actions))
		}
		chi2 := stat.ChiSquare(observed, expected)
		p := 1 - distuv.ChiSquared{K: float64(len(actions) - 1)}.CDF(chi2)
		require.Greater(t, p, 1e-4, "Chi-square %.1f over %d actions", chi2, len(actions))
	})

	t.Run("searches every depth after the opening", func(t *testing.T) {
		state := playout(9, 6)
		collector := metrics.NewCollector()
		a := NewCustomAgent(state.Player(), rand.New(rand.NewSource(1)), collector, searcher.WithMaxDepth(2))
		q := NewQueue()

		err := a.GetAction(ctx, state, q)

		require.NoError(t, err)
		require.Equal(t, 3, q.Len(), "One action per depth 0, 1 and 2")
		for _, action := range q.All() {
			require.True(t, slices.Contains(state.Actions(), action))
		}
		snapshot := a.Snapshot()
		require.Equal(t, 2, snapshot.Depth)
		require.Positive(t, snapshot.Nodes)
	})

	t.Run("start of a move clears the previous search", func(t *testing.T) {
		state := playout(9, 6)
		a := NewCustomAgent(state.Player(), rand.New(rand.NewSource(1)), metrics.NewCollector(), searcher.WithMaxDepth(1))
		require.NoError(t, a.GetAction(ctx, state, NewQueue()))
		require.Equal(t, 1, a.Snapshot().Depth)

		a.StartMove()

		require.Equal(t, -1, a.Snapshot().Depth)
		require.Zero(t, a.Snapshot().Nodes)
	})

	t.Run("cancelled before any depth completes", func(t *testing.T) {
		state := playout(9, 6)
		a := NewCustomAgent(state.Player(), rand.New(rand.NewSource(1)), nil)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		q := NewQueue()

		err := a.GetAction(cancelled, state, q)

		require.ErrorIs(t, err, ErrNoActionPublished)
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, q.Len())
	})

	t.Run("context slot round trip", func(t *testing.T) {
		a := NewCustomAgent(0, rand.New(rand.NewSource(1)), nil)
		require.Nil(t, a.Context())

		a.SetContext("remember me")

		require.Equal(t, "remember me", a.Context())
	})

	t.Run("missing random generator panics", func(t *testing.T) {
		require.Panics(t, func() { NewCustomAgent(0, nil, nil) })
	})
}

func TestSampleAgents(t *testing.T) {
	ctx := context.Background()
	state := playout(11, 8)

	t.Run("greedy agent plays the best immediate successor", func(t *testing.T) {
		for _, h := range []searcher.Heuristic{searcher.BTO, searcher.OTD} {
			q := NewQueue()

			require.NoError(t, NewGreedyAgent(state.Player(), h).GetAction(ctx, state, q))

			want, err := searcher.New(state.Player()).AlphaBeta(ctx, state, 0, h)
			require.NoError(t, err)
			got, _ := q.Latest()
			require.Equal(t, want, got, "Heuristic %s", h)
		}
	})

	t.Run("greedy agent rejects unknown heuristics", func(t *testing.T) {
		require.Panics(t, func() { NewGreedyAgent(0, searcher.Heuristic(5)) })
	})

	t.Run("minimax agent matches a fixed depth search", func(t *testing.T) {
		q := NewQueue()

		require.NoError(t, NewMinimaxAgent(state.Player(), 2).GetAction(ctx, state, q))

		want, err := searcher.New(state.Player()).Minimax(ctx, state, 2)
		require.NoError(t, err)
		got, _ := q.Latest()
		require.Equal(t, want, got)
	})

	t.Run("random agent plays legal actions", func(t *testing.T) {
		a := NewRandomAgent(rand.New(rand.NewSource(3)))
		for i := 0; i < 50; i++ {
			q := NewQueue()

			require.NoError(t, a.GetAction(ctx, state, q))

			action, _ := q.Latest()
			require.True(t, slices.Contains(state.Actions(), action))
		}
	})
}
