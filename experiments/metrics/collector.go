package metrics

import (
	"sync/atomic"
	"time"
)

// AgentConfig describes one side of a match
type AgentConfig struct {
	ID        int    `yaml:"id" validate:"gte=1"`
	Kind      string `yaml:"kind" validate:"required,oneof=custom random greedy minimax"`
	Heuristic string `yaml:"heuristic" validate:"omitempty,oneof=BTO OTD"`
	MaxDepth  int    `yaml:"max_depth" validate:"gte=0,lte=12"`
}

type SearchMetric struct {
	Duration time.Duration
	Depth    int   // Deepest completed depth, -1 if no search completed
	Nodes    int64 // Nodes visited by all completed depths
}

type MoveMetric struct {
	Step   int // Ply at which the move was chosen
	Player int // Player ID
	Agent  int // AgentConfig.ID
	Action int
	SearchMetric
}

type GameMetric struct {
	FirstAgent int // AgentConfig.ID of the agent moving first
	Winner     int // AgentConfig.ID
	Forfeit    bool
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector records the progress of a single move search. Start may be called from the
// search goroutine while Complete is called from the host, so implementations are concurrency safe.
type Collector interface {
	Start()
	AddDepth(depth int, nodes int64)
	Complete() SearchMetric
}

type collector struct {
	startTime atomic.Int64 // Unix nanoseconds
	depth     atomic.Int32
	nodes     atomic.Int64
}

func NewCollector() Collector {
	c := &collector{}
	c.depth.Store(-1)
	return c
}

func (m *collector) Start() {
	m.startTime.Store(time.Now().UnixNano())
	m.depth.Store(-1)
	m.nodes.Store(0)
}

func (m *collector) AddDepth(depth int, nodes int64) {
	m.depth.Store(int32(depth))
	m.nodes.Add(nodes)
}

func (m *collector) Complete() SearchMetric {
	start := m.startTime.Load()
	var duration time.Duration
	if start > 0 {
		duration = time.Since(time.Unix(0, start))
	}
	return SearchMetric{
		Duration: duration,
		Depth:    int(m.depth.Load()),
		Nodes:    m.nodes.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                          {}
func (m *dummyCollector) AddDepth(depth int, nodes int64) {}
func (m *dummyCollector) Complete() SearchMetric          { return SearchMetric{Depth: -1} }
