package searcher

// Stats counts the work done by the most recent search
type Stats struct {
	Nodes       int64 // States visited below the root
	Evaluations int64 // Heuristic evaluations at the cutoff depth
	Terminals   int64 // Terminal states reached
	Cutoffs     int64 // Alpha and beta cutoffs
}

// Leaves returns the number of states whose value was computed without recursion
func (s Stats) Leaves() int64 {
	return s.Evaluations + s.Terminals
}
