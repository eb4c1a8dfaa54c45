package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// CenterCell is the index of the middle cell.
const CenterCell = 4

// Line is a triple of cell indices that wins when held by one player.
type Line [3]int

var (
	// WinLines is declared rows first, then columns, then diagonals. Lookups rely on this order.
	WinLines = [8]Line{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	Corners = [4]int{0, 2, 6, 8}
	Sides   = [4]int{1, 3, 5, 7}
)

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Board is a 3x3 grid stored in row-major order.
type Board [BoardSize]Mark

func (that Board) IsEmpty(cell int) bool {
	if cell < 0 || cell >= BoardSize {
		return false
	}

	return that[cell] == EmptyCell
}

// Place puts player's mark into an empty cell.
func (that *Board) Place(cell int, player Mark) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrInvalidMove, cell)
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidMove, player)
	}

	if that[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrInvalidMove, cell)
	}

	that[cell] = player

	return nil
}

// Clear empties a cell. It is used to revert a move.
func (that *Board) Clear(cell int) {
	if cell < 0 || cell >= BoardSize {
		return
	}

	that[cell] = EmptyCell
}

func (that Board) CheckWin(player Mark) bool {
	_, ok := that.WinningLine(player)
	return ok
}

// CheckTie reports a full board that nobody has won.
func (that Board) CheckTie() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return !that.CheckWin(PlayerX) && !that.CheckWin(PlayerO)
}

// WinningLine returns the first line in WinLines held entirely by player.
func (that Board) WinningLine(player Mark) (Line, bool) {
	if !player.IsPlayer() {
		return Line{}, false
	}

	for _, line := range WinLines {
		if that[line[0]] == player && that[line[1]] == player && that[line[2]] == player {
			return line, true
		}
	}

	return Line{}, false
}

// EmptyCells returns the indices of empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// EmptyOf filters candidates down to the cells that are still empty.
func (that Board) EmptyOf(candidates []int) []int {
	cells := make([]int, 0, len(candidates))
	for _, cell := range candidates {
		if that.IsEmpty(cell) {
			cells = append(cells, cell)
		}
	}

	return cells
}

// Result checks a win for the player who just moved before checking a tie.
func (that Board) Result(lastMover Mark) (Outcome, bool) {
	if line, ok := that.WinningLine(lastMover); ok {
		return Outcome{Winner: lastMover, Line: &line}, true
	}

	if that.CheckTie() {
		return Outcome{Winner: PlayerTie}, true
	}

	return Outcome{}, false
}
