package game

// PlayerID identifies one of the two players. Player 0 moves first.
type PlayerID int

// Location is a board index (x + y*Width), or NoLocation before a player is placed.
type Location int

const NoLocation Location = -1

// Action is the destination square of a move. Placements and knight moves share it.
type Action = Location

// Use utilities to report the outcome of a finished game. Both are finite so
// they never collide with the search bounds.
const Win = 1000.0
const Loss = -Win

// State should be immutable - operations on State always return a new copy
type State interface {
	// Player returns the player to move
	Player() PlayerID
	// Actions returns the legal actions in a fixed order, empty only when terminal
	Actions() []Action
	Result(Action) State
	IsTerminal() bool
	// Utility is defined only on terminal states
	Utility(PlayerID) float64
	PlyCount() int
	Locs() [2]Location
	Liberties(Location) []Location
}

// Opponent returns the other player.
func (p PlayerID) Opponent() PlayerID {
	return 1 - p
}
