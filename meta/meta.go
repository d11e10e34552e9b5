// meta/meta.go
package meta

import "time"

// MaxDepth is the deepest depth limit iterative deepening searches to.
const MaxDepth = 12

// OpeningPlies is the number of initial plies played at random.
const OpeningPlies = 2

// TimeLimit is the default wall-clock budget per move.
const TimeLimit = 150 * time.Millisecond

// MinimaxDepth is the fixed search depth of the sample minimax agent.
const MinimaxDepth = 3

// NumGames is the default number of games per match.
const NumGames = 10
