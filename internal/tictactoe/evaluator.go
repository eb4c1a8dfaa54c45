package tictactoe

import (
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Random picks uniformly in [0, n). *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int {
	return rand.Intn(n) //nolint: gosec // move selection does not need a secure source
}

// DefaultRandom is safe for concurrent use.
var DefaultRandom Random = globalRandom{}

// FindWinningMove returns the empty cell that completes a line for player.
// Lines are scanned in declaration order and the first qualifying line wins.
func FindWinningMove(board entity.Board, player entity.Mark) (int, bool) {
	if !player.IsPlayer() {
		return 0, false
	}

	for _, line := range entity.WinLines {
		owned, emptyCell := 0, -1

		for _, cell := range line {
			switch board[cell] {
			case player:
				owned++
			case entity.EmptyCell:
				emptyCell = cell
			}
		}

		if owned == 2 && emptyCell != -1 {
			return emptyCell, true
		}
	}

	return 0, false
}

// PositionalMove prefers the center, then a random corner, then any random empty cell.
func PositionalMove(board entity.Board, rnd Random) (int, bool) {
	if board.IsEmpty(entity.CenterCell) {
		return entity.CenterCell, true
	}

	if cell, ok := PickRandom(board.EmptyOf(entity.Corners[:]), rnd); ok {
		return cell, true
	}

	return PickRandom(board.EmptyCells(), rnd)
}

// PickRandom returns a uniformly chosen element of cells.
func PickRandom(cells []int, rnd Random) (int, bool) {
	if len(cells) == 0 {
		return 0, false
	}

	if rnd == nil {
		rnd = DefaultRandom
	}

	return cells[rnd.Intn(len(cells))], true
}
