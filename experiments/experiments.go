package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"isolation/config"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"
	"isolation/searcher/agent"
)

// Summary aggregates the results of a match
type Summary struct {
	RunID    string
	Wins     map[int]int // By AgentConfig.ID
	Forfeits int
	Dir      string // Where the records were written
}

// NewAgent builds the agent described by config to play as player
func NewAgent(config metrics.AgentConfig, player game.PlayerID, seed uint64) (agent.Agent, error) {
	h := searcher.BTO
	if config.Heuristic != "" {
		var err error
		h, err = searcher.ParseHeuristic(config.Heuristic)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
	}
	rng := rand.New(rand.NewSource(seed))

	switch config.Kind {
	case "custom":
		depth := config.MaxDepth
		if depth == 0 {
			depth = meta.MaxDepth
		}
		return agent.NewCustomAgent(player, rng, metrics.NewCollector(),
			searcher.WithHeuristic(h), searcher.WithMaxDepth(depth)), nil
	case "random":
		return agent.NewRandomAgent(rng), nil
	case "greedy":
		return agent.NewGreedyAgent(player, h), nil
	case "minimax":
		depth := config.MaxDepth
		if depth == 0 {
			depth = meta.MinimaxDepth
		}
		return agent.NewMinimaxAgent(player, depth, searcher.WithHeuristic(h)), nil
	default:
		return nil, fmt.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
	}
}

// PlayGame plays a single game where first moves first
func PlayGame(ctx context.Context, first, second metrics.AgentConfig, timeLimit time.Duration, seed uint64) (engine.Outcome, error) {
	var players [2]engine.Player
	for i, config := range []metrics.AgentConfig{first, second} {
		a, err := NewAgent(config, game.PlayerID(i), seed*2+uint64(i))
		if err != nil {
			return engine.Outcome{}, err
		}
		players[i] = engine.Player{ID: config.ID, Agent: a}
	}
	return engine.NewLocal(players, timeLimit).Run(ctx)
}

// RunMatch plays match.Games games, alternating who moves first, writes the records under
// match.Output and reports each finished game to exporter if it is not nil
func RunMatch(ctx context.Context, match config.Match, exporter *metrics.Exporter) (Summary, error) {
	if err := match.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid match: %w", err)
	}

	runID := uuid.NewString()
	agent1, agent2 := match.Agents[0], match.Agents[1]
	log.Info().Msgf("starting %s match %s between agent1=%+v and agent2=%+v...", match.Name, runID, agent1, agent2)

	outcomes := make([]engine.Outcome, match.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(match.Parallel)
	for i := 0; i < match.Games; i++ {
		i := i
		g.Go(func() error {
			first, second := agent1, agent2
			if i%2 == 1 {
				first, second = agent2, agent1
			}
			log.Info().Msgf("starting game %d of %d...", i+1, match.Games)
			outcome, err := PlayGame(gctx, first, second, match.TimeLimit, match.Seed+uint64(i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			outcomes[i] = outcome
			if exporter != nil {
				for _, mm := range outcome.MoveMetrics {
					exporter.ObserveMove(mm)
				}
				exporter.ObserveGame(outcome.GameMetric)
			}
			log.Info().Msgf("completed game %d with winner: agent %d", i+1, outcome.GameMetric.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{RunID: runID, Wins: map[int]int{agent1.ID: 0, agent2.ID: 0}}
	gameRecords := make([]metrics.GameRecord, 0, len(outcomes))
	moveRecords := []metrics.MoveRecord{}
	for i, outcome := range outcomes {
		summary.Wins[outcome.GameMetric.Winner]++
		if outcome.GameMetric.Forfeit {
			summary.Forfeits++
		}
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			RunID:      runID,
			Agent1:     agent1.ID,
			Agent2:     agent2.ID,
			GameMetric: outcome.GameMetric,
		})
		for _, mm := range outcome.MoveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: i + 1, MoveMetric: mm})
		}
	}
	log.Info().Msgf("completed %s match: %v wins, %d forfeits", match.Name, summary.Wins, summary.Forfeits)

	dir, err := writeRecords(match, gameRecords, moveRecords)
	if err != nil {
		return Summary{}, err
	}
	summary.Dir = dir
	return summary, nil
}

func writeRecords(match config.Match, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(match.Output, match.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(match.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
