package usecase

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const opponentMark = entity.PlayerO

type botService interface {
	ChooseMove(board entity.Board, difficulty entity.Difficulty) (int, error)
}

// MatchOptions carries the collaborators of a match. Nil collaborators are replaced with defaults;
// a zero ThinkDelay lets the opponent answer right away.
type MatchOptions struct {
	ThinkDelay time.Duration
	Scheduler  Scheduler
	Random     tictactoe.Random
	Bot        botService
	Observer   Observer
	Stats      entity.Stats
}

// Match sequences turns of a single local game. X is always the human; in AI mode O is the opponent.
type Match struct {
	logger *slog.Logger

	mu         sync.Mutex
	dispatchMu sync.Mutex

	id         string
	mode       entity.Mode
	difficulty entity.Difficulty

	board   entity.Board
	turn    entity.Mark
	status  string
	outcome *entity.Outcome
	history []entity.Move
	stats   entity.Stats
	closed  bool

	bot        botService
	random     tictactoe.Random
	scheduler  Scheduler
	thinkDelay time.Duration
	observer   Observer

	lastToken     uint64
	pendingToken  uint64
	cancelPending func()
}

func NewMatch(logger *slog.Logger, mode entity.Mode, difficulty entity.Difficulty, opts MatchOptions) (*Match, error) {
	mode, err := entity.ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	if mode == entity.AIMode {
		if difficulty, err = entity.ParseDifficulty(string(difficulty)); err != nil {
			return nil, err
		}
	} else {
		difficulty = ""
	}

	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler()
	}

	if opts.Random == nil {
		opts.Random = tictactoe.DefaultRandom
	}

	if opts.Bot == nil {
		opts.Bot = service.NewBotService(opponentMark, opts.Random)
	}

	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}

	if opts.ThinkDelay < 0 {
		opts.ThinkDelay = 0
	}

	id := uuid.NewString()

	return &Match{
		logger: logger.With("component", "match", "matchID", id),

		id:         id,
		mode:       mode,
		difficulty: difficulty,

		turn:   entity.PlayerX,
		status: entity.StatusInProgress,
		stats:  opts.Stats,

		bot:        opts.Bot,
		random:     opts.Random,
		scheduler:  opts.Scheduler,
		thinkDelay: opts.ThinkDelay,
		observer:   opts.Observer,
	}, nil
}

func (that *Match) ID() string {
	return that.id
}

// State returns a snapshot that is safe to keep after the match changes.
func (that *Match) State() entity.MatchState {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := entity.MatchState{
		ID:         that.id,
		Mode:       that.mode,
		Difficulty: that.difficulty,
		Board:      that.board,
		Turn:       that.turn,
		Status:     that.status,
		Waiting:    that.pendingToken != 0,
		History:    append([]entity.Move{}, that.history...),
		Stats:      that.stats,
	}

	if that.outcome != nil {
		outcome := *that.outcome
		state.Outcome = &outcome
	}

	return state
}

// HumanMove places the current human player's mark.
func (that *Match) HumanMove(cell int) error {
	that.mu.Lock()

	if err := that.confirmHumanTurn(); err != nil {
		that.mu.Unlock()
		return fmt.Errorf("human move rejected: %w", err)
	}

	events, err := that.play(that.turn, cell)
	if err != nil {
		that.mu.Unlock()
		return fmt.Errorf("human move rejected: %w", err)
	}

	if that.status == entity.StatusInProgress && that.isOpponentTurn() {
		if err = that.scheduleOpponent(); err != nil {
			that.logger.Error("failed to schedule opponent move", "error", err)
		}
	}

	that.dispatch(events)

	return nil
}

// OpponentMove plays the opponent's turn right away, replacing a pending deferred move.
func (that *Match) OpponentMove() error {
	that.mu.Lock()

	if that.closed || that.status != entity.StatusInProgress || !that.isOpponentTurn() {
		that.mu.Unlock()
		return fmt.Errorf("%w: it is not the opponent's turn", apperror.ErrIllegalStateTransition)
	}

	that.cancelOpponent()

	events, err := that.playOpponent()
	if err != nil {
		that.mu.Unlock()
		return err
	}

	that.dispatch(events)

	return nil
}

// Undo reverts the last move. Against the computer it also reverts the human move the opponent answered,
// so the human is always to move afterwards. A finished match becomes playable again; its recorded
// stats stay.
func (that *Match) Undo() error {
	that.mu.Lock()

	if that.closed {
		that.mu.Unlock()
		return fmt.Errorf("%w: match is closed", apperror.ErrIllegalStateTransition)
	}

	if len(that.history) == 0 {
		that.mu.Unlock()
		return nil
	}

	that.cancelOpponent()

	events := []notification{that.popMove()}
	if that.isOpponentTurn() && len(that.history) > 0 {
		events = append(events, that.popMove())
	}

	that.status = entity.StatusInProgress
	that.outcome = nil

	that.dispatch(append(events, turnChanged(that.turn)))

	return nil
}

// Hint suggests a cell for X. It is only available on X's turn and never changes the match.
func (that *Match) Hint() (int, bool, error) {
	that.mu.Lock()

	if err := that.confirmHumanTurn(); err != nil {
		that.mu.Unlock()
		return 0, false, fmt.Errorf("hint rejected: %w", err)
	}

	if that.turn != entity.PlayerX {
		that.mu.Unlock()
		return 0, false, fmt.Errorf("hint rejected: %w: hints are only given to X", apperror.ErrIllegalStateTransition)
	}

	cell, ok := tictactoe.FindWinningMove(that.board, that.turn)
	if !ok {
		cell, ok = tictactoe.PositionalMove(that.board, that.random)
	}

	that.dispatch([]notification{hintReady(cell, ok)})

	return cell, ok, nil
}

// Restart clears the board and gives the first move to X regardless of the previous result.
func (that *Match) Restart() error {
	that.mu.Lock()

	if that.closed {
		that.mu.Unlock()
		return fmt.Errorf("%w: match is closed", apperror.ErrIllegalStateTransition)
	}

	that.cancelOpponent()

	events := make([]notification, 0, entity.BoardSize+1)
	for cell, mark := range that.board {
		if mark != entity.EmptyCell {
			events = append(events, cellChanged(cell, entity.EmptyCell))
		}
	}
	events = append(events, turnChanged(entity.PlayerX))

	that.board = entity.Board{}
	that.history = nil
	that.turn = entity.PlayerX
	that.status = entity.StatusInProgress
	that.outcome = nil

	that.logger.Debug("match restarted")

	that.dispatch(events)

	return nil
}

// Close drops a pending opponent move and rejects further commands.
func (that *Match) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelOpponent()
	that.closed = true
}

// popMove removes the last move from the board and gives the turn back to its player.
func (that *Match) popMove() notification {
	last := that.history[len(that.history)-1]
	that.history = that.history[:len(that.history)-1]

	that.board.Clear(last.Cell)
	that.turn = last.Player

	that.logger.Debug("move undone", "player", last.Player, "cell", last.Cell)

	return cellChanged(last.Cell, entity.EmptyCell)
}

func (that *Match) confirmHumanTurn() error {
	switch {
	case that.closed:
		return fmt.Errorf("%w: match is closed", apperror.ErrIllegalStateTransition)
	case that.status == entity.StatusFinished:
		return fmt.Errorf("%w: match is finished", apperror.ErrIllegalStateTransition)
	case that.pendingToken != 0:
		return fmt.Errorf("%w: waiting for the opponent", apperror.ErrIllegalStateTransition)
	case that.isOpponentTurn():
		return fmt.Errorf("%w: it is the opponent's turn", apperror.ErrIllegalStateTransition)
	default:
		return nil
	}
}

func (that *Match) isOpponentTurn() bool {
	return that.mode == entity.AIMode && that.turn == opponentMark
}

// play places player's mark and moves the match forward. The match is unchanged on error.
func (that *Match) play(player entity.Mark, cell int) ([]notification, error) {
	if err := that.board.Place(cell, player); err != nil {
		return nil, err
	}

	that.history = append(that.history, entity.Move{Player: player, Cell: cell})

	that.logger.Debug("move placed", "player", player, "cell", cell)

	events := []notification{cellChanged(cell, player)}

	if outcome, finished := that.board.Result(player); finished {
		that.status = entity.StatusFinished
		that.outcome = &outcome
		that.stats.Record(outcome)

		that.logger.Info("match finished", "winner", outcome.Winner)

		return append(events, gameFinished(outcome), statsChanged(that.stats)), nil
	}

	that.turn = player.Opponent()

	return append(events, turnChanged(that.turn)), nil
}

func (that *Match) playOpponent() ([]notification, error) {
	cell, err := that.bot.ChooseMove(that.board, that.difficulty)
	if err != nil {
		return nil, fmt.Errorf("opponent failed to choose a move: %w", err)
	}

	events, err := that.play(opponentMark, cell)
	if err != nil {
		return nil, fmt.Errorf("opponent failed to make a move: %w", err)
	}

	return events, nil
}

func (that *Match) scheduleOpponent() error {
	if that.pendingToken != 0 {
		return apperror.ErrOpponentMoveOutstanding
	}

	that.lastToken++
	token := that.lastToken

	that.pendingToken = token
	that.cancelPending = that.scheduler.Schedule(that.thinkDelay, func() {
		that.runScheduled(token)
	})

	return nil
}

func (that *Match) cancelOpponent() {
	if that.pendingToken == 0 {
		return
	}

	if that.cancelPending != nil {
		that.cancelPending()
	}

	that.pendingToken = 0
	that.cancelPending = nil
}

// runScheduled applies a deferred opponent move unless its token was invalidated in the meantime.
func (that *Match) runScheduled(token uint64) {
	that.mu.Lock()

	if that.closed || token != that.pendingToken {
		that.mu.Unlock()
		that.logger.Debug("stale opponent move dropped", "token", token)
		return
	}

	that.pendingToken = 0
	that.cancelPending = nil

	events, err := that.playOpponent()
	if err != nil {
		that.mu.Unlock()
		that.logger.Error("deferred opponent move failed", "error", err)
		return
	}

	that.dispatch(events)
}

// dispatch releases the state lock and delivers events in order. It must be called with mu held.
func (that *Match) dispatch(events []notification) {
	that.dispatchMu.Lock()
	that.mu.Unlock()
	defer that.dispatchMu.Unlock()

	for _, event := range events {
		event(that.observer)
	}
}
