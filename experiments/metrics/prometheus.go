package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exporter publishes move and game metrics of a match to Prometheus
type Exporter struct {
	moves       *prometheus.CounterVec
	nodes       *prometheus.CounterVec
	depth       *prometheus.HistogramVec
	moveSeconds *prometheus.HistogramVec
	games       *prometheus.CounterVec
}

func NewExporter(reg prometheus.Registerer) *Exporter {
	factory := promauto.With(reg)
	return &Exporter{
		// Labels: agent (AgentConfig.ID)
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isolation",
			Subsystem: "search",
			Name:      "moves_total",
			Help:      "Total moves chosen by an agent",
		}, []string{"agent"}),
		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isolation",
			Subsystem: "search",
			Name:      "nodes_total",
			Help:      "Total nodes visited by completed search depths",
		}, []string{"agent"}),
		depth: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "isolation",
			Subsystem: "search",
			Name:      "completed_depth",
			Help:      "Deepest completed depth per move",
			Buckets:   prometheus.LinearBuckets(0, 1, 13),
		}, []string{"agent"}),
		moveSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "isolation",
			Subsystem: "search",
			Name:      "move_duration_seconds",
			Help:      "Wall-clock time spent choosing a move",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.15, 0.25, 0.5, 1},
		}, []string{"agent"}),
		// Labels: winner (AgentConfig.ID), forfeit (true, false)
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "isolation",
			Subsystem: "match",
			Name:      "games_total",
			Help:      "Total finished games by winner",
		}, []string{"winner", "forfeit"}),
	}
}

func (e *Exporter) ObserveMove(m MoveMetric) {
	agent := strconv.Itoa(m.Agent)
	e.moves.WithLabelValues(agent).Inc()
	e.nodes.WithLabelValues(agent).Add(float64(m.Nodes))
	if m.Depth >= 0 {
		e.depth.WithLabelValues(agent).Observe(float64(m.Depth))
	}
	e.moveSeconds.WithLabelValues(agent).Observe(m.Duration.Seconds())
}

func (e *Exporter) ObserveGame(g GameMetric) {
	e.games.WithLabelValues(strconv.Itoa(g.Winner), strconv.FormatBool(g.Forfeit)).Inc()
}
