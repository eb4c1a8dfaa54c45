package entity

// PlayerTie is recorded as the winner of a drawn match.
const PlayerTie Mark = "-"

// Move is a single placed mark. An ordered slice of moves is the match history.
type Move struct {
	Player Mark `json:"player"`
	Cell   int  `json:"cell"`
}

// Outcome describes how a match ended. Line is only meaningful for a win.
type Outcome struct {
	Winner Mark  `json:"winner"`
	Line   *Line `json:"line,omitempty"`
}

func (that Outcome) IsTie() bool {
	return that.Winner == PlayerTie
}
