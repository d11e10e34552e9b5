package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"isolation/config"
	"isolation/experiments"
	"isolation/experiments/metrics"
	"isolation/meta"
)

var (
	logLevel    string
	player1     string
	player2     string
	heuristic   string
	timeLimit   time.Duration
	seed        uint64
	configPath  string
	metricsAddr string

	rootCmd = &cobra.Command{
		Use:   "isolation",
		Short: "Play knight's Isolation between search agents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
			return nil
		},
		SilenceUsage: true,
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a single game and print the final board",
		RunE:  runPlay,
	}

	matchCmd = &cobra.Command{
		Use:   "match",
		Short: "Play a series of games and write the records as CSV",
		RunE:  runMatch,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	playCmd.Flags().StringVar(&player1, "player1", "custom", "Agent moving first (custom, random, greedy, minimax)")
	playCmd.Flags().StringVar(&player2, "player2", "greedy", "Agent moving second (custom, random, greedy, minimax)")
	playCmd.Flags().StringVar(&heuristic, "heuristic", "BTO", "Heuristic of both agents (BTO, OTD)")
	playCmd.Flags().DurationVar(&timeLimit, "time-limit", meta.TimeLimit, "Time budget per move")
	playCmd.Flags().Uint64Var(&seed, "seed", 1, "Seed of the random opening moves")

	matchCmd.Flags().StringVar(&configPath, "config", "", "Match YAML file, the default match is played when empty")
	matchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the match")

	rootCmd.AddCommand(playCmd, matchCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	first := metrics.AgentConfig{ID: 1, Kind: player1, Heuristic: heuristic}
	second := metrics.AgentConfig{ID: 2, Kind: player2, Heuristic: heuristic}
	outcome, err := experiments.PlayGame(ctx, first, second, timeLimit, seed)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), outcome.Final)
	if outcome.Forfeit != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "player %d wins by forfeit: %v\n", outcome.Winner+1, outcome.Forfeit)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "player %d wins after %d moves\n", outcome.Winner+1, len(outcome.History))
	return nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	match := config.Default()
	if configPath != "" {
		var err error
		match, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	var exporter *metrics.Exporter
	if metricsAddr != "" {
		registry := prometheus.NewRegistry()
		exporter = metrics.NewExporter(registry)
		server := &http.Server{
			Addr:              metricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdownCtx)
		}()
		log.Info().Msgf("serving metrics on %s", metricsAddr)
	}

	summary, err := experiments.RunMatch(ctx, match, exporter)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "match %s: wins %v, forfeits %d, records in %s\n",
		summary.RunID, summary.Wins, summary.Forfeits, summary.Dir)
	return nil
}
