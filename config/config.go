package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"isolation/experiments/metrics"
	"isolation/meta"
)

var validate = validator.New()

// Match configures a series of games between two agents. A max_depth of 0 selects the
// agent kind's default depth, an empty heuristic selects BTO.
type Match struct {
	Name      string                `yaml:"name" validate:"required"`
	Games     int                   `yaml:"games" validate:"gte=1"`
	Parallel  int                   `yaml:"parallel" validate:"gte=1,lte=64"`
	TimeLimit time.Duration         `yaml:"time_limit" validate:"gt=0"`
	Output    string                `yaml:"output" validate:"required"`
	Seed      uint64                `yaml:"seed"`
	Agents    []metrics.AgentConfig `yaml:"agents" validate:"len=2,unique=ID,dive"`
}

// Default returns the match played when no file is given: the custom agent against the
// greedy sample agent.
func Default() Match {
	return Match{
		Name:      "custom_vs_greedy",
		Games:     meta.NumGames,
		Parallel:  1,
		TimeLimit: meta.TimeLimit,
		Output:    "experiments",
		Seed:      1,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: "custom", Heuristic: "BTO"},
			{ID: 2, Kind: "greedy", Heuristic: "BTO"},
		},
	}
}

// Load reads a match file on top of the defaults and validates it
func Load(path string) (Match, error) {
	match := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Match{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &match); err != nil {
		return Match{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := match.Validate(); err != nil {
		return Match{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return match, nil
}

func (m Match) Validate() error {
	return validate.Struct(m)
}
