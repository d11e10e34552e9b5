package game

import (
	"fmt"
	"strings"
)

// Board dimensions of knight's Isolation
const (
	Width  = 11
	Height = 9
	Size   = Width * Height
)

type direction struct {
	dx, dy int
}

// Knight directions in the order actions are generated. North is y-1.
var directions = [8]direction{
	{1, -2},  // NNE
	{2, -1},  // ENE
	{2, 1},   // ESE
	{1, 2},   // SSE
	{-1, 2},  // SSW
	{-2, 1},  // WSW
	{-2, -1}, // WNW
	{-1, -2}, // NNW
}

// Isolation represents a knight's Isolation position. Visited squares stay
// blocked for the rest of the game. It is a value type: Result returns a new
// copy and never modifies the receiver.
type Isolation struct {
	blocked [2]uint64 // Bitset over the 99 cells, set means blocked
	locs    [2]Location
	ply     int
}

// NewIsolation returns the empty starting board with both players unplaced.
func NewIsolation() Isolation {
	return Isolation{locs: [2]Location{NoLocation, NoLocation}}
}

// Loc converts board coordinates to a Location.
func Loc(x, y int) Location {
	return Location(x + y*Width)
}

// XY converts a Location back to board coordinates.
func (l Location) XY() (x, y int) {
	return int(l) % Width, int(l) / Width
}

func (s Isolation) Player() PlayerID {
	return PlayerID(s.ply % 2)
}

func (s Isolation) PlyCount() int {
	return s.ply
}

func (s Isolation) Locs() [2]Location {
	return s.locs
}

// Actions returns the mover's liberties: every open cell while it is still
// unplaced, otherwise the open knight destinations in direction order.
func (s Isolation) Actions() []Action {
	return s.Liberties(s.locs[s.Player()])
}

func (s Isolation) Liberties(loc Location) []Location {
	if loc == NoLocation {
		open := make([]Location, 0, Size)
		for cell := Location(0); cell < Size; cell++ {
			if s.isOpen(cell) {
				open = append(open, cell)
			}
		}
		return open
	}

	liberties := make([]Location, 0, len(directions))
	x, y := loc.XY()
	for _, d := range directions {
		nx, ny := x+d.dx, y+d.dy
		if !onBoard(nx, ny) {
			continue
		}
		if next := Loc(nx, ny); s.isOpen(next) {
			liberties = append(liberties, next)
		}
	}
	return liberties
}

func (s Isolation) Result(action Action) State {
	if !s.isLegal(action) {
		panic(fmt.Sprintf("illegal action %d for player %d at ply %d", action, s.Player(), s.ply))
	}
	next := s
	next.block(action)
	next.locs[s.Player()] = action
	next.ply++
	return next
}

// IsTerminal reports whether either player has run out of liberties.
func (s Isolation) IsTerminal() bool {
	return !s.hasLiberties(0) || !s.hasLiberties(1)
}

func (s Isolation) Utility(player PlayerID) float64 {
	if !s.IsTerminal() {
		return 0
	}
	mover := s.Player()
	// The mover wins only when it can still move and the opponent cannot
	if s.hasLiberties(mover) == (player == mover) {
		return Win
	}
	return Loss
}

// String renders the board, one row per line: 1 and 2 mark the players, # marks blocked cells.
func (s Isolation) String() string {
	var b strings.Builder
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			loc := Loc(x, y)
			switch {
			case loc == s.locs[0]:
				b.WriteByte('1')
			case loc == s.locs[1]:
				b.WriteByte('2')
			case !s.isOpen(loc):
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
			if x < Width-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s Isolation) hasLiberties(player PlayerID) bool {
	loc := s.locs[player]
	if loc == NoLocation {
		// Unplaced players can go to any open cell, and the board never fills before someone is stuck
		return true
	}
	x, y := loc.XY()
	for _, d := range directions {
		nx, ny := x+d.dx, y+d.dy
		if onBoard(nx, ny) && s.isOpen(Loc(nx, ny)) {
			return true
		}
	}
	return false
}

func (s Isolation) isLegal(action Action) bool {
	if action < 0 || action >= Size || !s.isOpen(action) {
		return false
	}
	from := s.locs[s.Player()]
	if from == NoLocation {
		return true
	}
	fx, fy := from.XY()
	tx, ty := action.XY()
	for _, d := range directions {
		if fx+d.dx == tx && fy+d.dy == ty {
			return true
		}
	}
	return false
}

func (s Isolation) isOpen(loc Location) bool {
	return s.blocked[loc/64]&(1<<(uint(loc)%64)) == 0
}

func (s *Isolation) block(loc Location) {
	s.blocked[loc/64] |= 1 << (uint(loc) % 64)
}

func onBoard(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}
