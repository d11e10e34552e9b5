package game

// Plies used to normalize game progress for phase-dependent evaluation
const ProgressScale = 99.0

// Evaluates a non-terminal state to a score indicating how favorable the
// position is for player. Larger is better.
type Evaluate func(s State, player PlayerID) float64

// EvaluateBlocking rewards the player's mobility, penalizes the opponent's mobility twice as
// much, and rewards contested squares that both players can reach
func EvaluateBlocking(s State, player PlayerID) float64 {
	own, opp := liberties(s, player)
	return float64(len(own) - 2*len(opp) + countShared(own, opp))
}

// EvaluateOffenseToDefense denies opponent mobility in the early game, then chases own
// mobility once more than half of the progress scale has been played
func EvaluateOffenseToDefense(s State, player PlayerID) float64 {
	own, opp := liberties(s, player)
	progress := float64(s.PlyCount()) / ProgressScale
	if progress > 0.5 {
		return float64(2*len(own) - len(opp))
	}
	return float64(len(own) - 2*len(opp))
}

func liberties(s State, player PlayerID) (own, opp []Location) {
	locs := s.Locs()
	return s.Liberties(locs[player]), s.Liberties(locs[player.Opponent()])
}

// countShared counts the locations present in both slices
func countShared(a, b []Location) int {
	set := make(map[Location]struct{}, len(a))
	for _, loc := range a {
		set[loc] = struct{}{}
	}
	shared := 0
	for _, loc := range b {
		if _, ok := set[loc]; ok {
			shared++
		}
	}
	return shared
}
