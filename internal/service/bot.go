package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// oppositeCorners pairs each corner with its diagonal opposite, in the order the hard tier checks them.
var oppositeCorners = [4][2]int{
	{0, 8},
	{2, 6},
	{6, 2},
	{8, 0},
}

type BotService interface {
	ChooseMove(board entity.Board, difficulty entity.Difficulty) (int, error)
}

type botService struct {
	mark   entity.Mark
	random tictactoe.Random
}

// NewBotService returns the opponent policy playing with mark. A nil random falls back to tictactoe.DefaultRandom.
func NewBotService(mark entity.Mark, random tictactoe.Random) BotService {
	if random == nil {
		random = tictactoe.DefaultRandom
	}

	return &botService{
		mark:   mark,
		random: random,
	}
}

func (that *botService) ChooseMove(board entity.Board, difficulty entity.Difficulty) (int, error) {
	if len(board.EmptyCells()) == 0 {
		return 0, apperror.ErrNoLegalMove
	}

	var steps []func(entity.Board) (int, bool)

	switch difficulty {
	case entity.EasyDifficulty:
		steps = []func(entity.Board) (int, bool){
			that.anyCell,
		}
	case entity.MediumDifficulty:
		steps = []func(entity.Board) (int, bool){
			that.win,
			that.block,
			center,
			that.corner,
			that.anyCell,
		}
	case entity.HardDifficulty:
		steps = []func(entity.Board) (int, bool){
			that.win,
			that.block,
			center,
			that.oppositeCorner,
			that.corner,
			that.side,
			that.anyCell,
		}
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, difficulty)
	}

	for _, step := range steps {
		if cell, ok := step(board); ok {
			return cell, nil
		}
	}

	// unreachable while anyCell is the last step of every tier
	return 0, apperror.ErrNoLegalMove
}

func (that *botService) win(board entity.Board) (int, bool) {
	return tictactoe.FindWinningMove(board, that.mark)
}

func (that *botService) block(board entity.Board) (int, bool) {
	return tictactoe.FindWinningMove(board, that.mark.Opponent())
}

func center(board entity.Board) (int, bool) {
	return entity.CenterCell, board.IsEmpty(entity.CenterCell)
}

// oppositeCorner answers a human corner with the diagonally opposite one.
func (that *botService) oppositeCorner(board entity.Board) (int, bool) {
	human := that.mark.Opponent()

	for _, pair := range oppositeCorners {
		if board[pair[0]] == human && board.IsEmpty(pair[1]) {
			return pair[1], true
		}
	}

	return 0, false
}

func (that *botService) corner(board entity.Board) (int, bool) {
	return tictactoe.PickRandom(board.EmptyOf(entity.Corners[:]), that.random)
}

func (that *botService) side(board entity.Board) (int, bool) {
	return tictactoe.PickRandom(board.EmptyOf(entity.Sides[:]), that.random)
}

func (that *botService) anyCell(board entity.Board) (int, bool) {
	return tictactoe.PickRandom(board.EmptyCells(), that.random)
}
