package searcher

import (
	"errors"
	"fmt"
	"strings"

	"isolation/game"
)

var ErrUnknownHeuristic = errors.New("unknown heuristic")

// Heuristic selects the static evaluation formula applied at the cutoff depth
type Heuristic int

const (
	// BTO blocks the opponent: |own| - 2|opp| + |own ∩ opp|
	BTO Heuristic = iota
	// OTD goes from offense to defense: denial early, own mobility after half the game
	OTD
)

// ParseHeuristic converts a tag such as "BTO" or "otd" to a Heuristic.
func ParseHeuristic(tag string) (Heuristic, error) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "BTO":
		return BTO, nil
	case "OTD":
		return OTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHeuristic, tag)
	}
}

func (h Heuristic) String() string {
	switch h {
	case BTO:
		return "BTO"
	case OTD:
		return "OTD"
	default:
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
}

var evaluators = [...]game.Evaluate{
	BTO: game.EvaluateBlocking,
	OTD: game.EvaluateOffenseToDefense,
}

// Valid reports whether h is one of the known heuristics
func (h Heuristic) Valid() bool {
	return h >= 0 && int(h) < len(evaluators)
}

// Evaluate scores a non-terminal state from player's perspective.
// Evaluating a terminal state or an unknown heuristic is a programming error and panics.
func Evaluate(state game.State, player game.PlayerID, h Heuristic) float64 {
	if state.IsTerminal() {
		panic("cannot evaluate a terminal state heuristically")
	}

	if !h.Valid() {
		panic(fmt.Sprintf("unexpected heuristic %d", int(h)))
	}
	return evaluators[h](state, player)
}
