package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const persistTimeout = 5 * time.Second

type profileStore interface {
	Stats(ctx context.Context) (entity.Stats, error)
	RecordOutcome(ctx context.Context, outcome entity.Outcome) (entity.Stats, error)
}

// Session holds the current match of one client connection. Finished matches are added to the stored
// statistics, so resets and other sessions are never overwritten.
type Session struct {
	logger   *slog.Logger
	profile  profileStore
	options  MatchOptions
	observer Observer

	mu    sync.Mutex
	match *Match
	stats entity.Stats
}

// NewSession creates a session whose matches notify observer. options.Observer and options.Stats are ignored.
func NewSession(logger *slog.Logger, profile profileStore, options MatchOptions, observer Observer) *Session {
	if observer == nil {
		observer = NopObserver{}
	}

	return &Session{
		logger:   logger.With("component", "session"),
		profile:  profile,
		options:  options,
		observer: observer,
	}
}

// NewMatch replaces the current match with a fresh one seeded with the persisted stats.
func (that *Session) NewMatch(ctx context.Context, mode entity.Mode, difficulty entity.Difficulty) (entity.MatchState, error) {
	stats, err := that.profile.Stats(ctx)
	if err != nil {
		return entity.MatchState{}, fmt.Errorf("failed to load stats: %w", err)
	}

	options := that.options
	options.Stats = stats
	options.Observer = &statsObserver{Observer: that.observer, session: that}

	match, err := NewMatch(that.logger, mode, difficulty, options)
	if err != nil {
		return entity.MatchState{}, fmt.Errorf("failed to create match: %w", err)
	}

	that.mu.Lock()
	previous := that.match
	that.match = match
	that.stats = stats
	that.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	that.logger.Info("match created", "matchID", match.ID(), "mode", mode, "difficulty", difficulty)

	return that.snapshot(match), nil
}

func (that *Session) HumanMove(cell int) (entity.MatchState, error) {
	match, err := that.current()
	if err != nil {
		return entity.MatchState{}, err
	}

	if err = match.HumanMove(cell); err != nil {
		return that.snapshot(match), err
	}

	return that.snapshot(match), nil
}

func (that *Session) Undo() (entity.MatchState, error) {
	match, err := that.current()
	if err != nil {
		return entity.MatchState{}, err
	}

	if err = match.Undo(); err != nil {
		return that.snapshot(match), err
	}

	return that.snapshot(match), nil
}

func (that *Session) Hint() (int, bool, error) {
	match, err := that.current()
	if err != nil {
		return 0, false, err
	}

	return match.Hint()
}

func (that *Session) Restart() (entity.MatchState, error) {
	match, err := that.current()
	if err != nil {
		return entity.MatchState{}, err
	}

	if err = match.Restart(); err != nil {
		return that.snapshot(match), err
	}

	return that.snapshot(match), nil
}

func (that *Session) State() (entity.MatchState, error) {
	match, err := that.current()
	if err != nil {
		return entity.MatchState{}, err
	}

	return that.snapshot(match), nil
}

// Close stops the current match so that no deferred move outlives the connection.
func (that *Session) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.match != nil {
		that.match.Close()
		that.match = nil
	}
}

func (that *Session) current() (*Match, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.match == nil {
		return nil, fmt.Errorf("%w: no match started", apperror.ErrIllegalStateTransition)
	}

	return that.match, nil
}

// snapshot reports the stored stats instead of the match's own running copy.
func (that *Session) snapshot(match *Match) entity.MatchState {
	state := match.State()

	that.mu.Lock()
	state.Stats = that.stats
	that.mu.Unlock()

	return state
}

func (that *Session) recordOutcome(outcome entity.Outcome) (entity.Stats, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	stats, err := that.profile.RecordOutcome(ctx, outcome)
	if err != nil {
		that.logger.Error("failed to record outcome", "error", err)
		return entity.Stats{}, false
	}

	that.mu.Lock()
	that.stats = stats
	that.mu.Unlock()

	return stats, true
}

// statsObserver adds each result to the stored stats and forwards the stored value.
// Notifications of one match arrive one at a time, so recorded needs no lock.
type statsObserver struct {
	Observer
	session *Session

	recorded *entity.Stats
}

func (that *statsObserver) OnGameFinished(outcome entity.Outcome) {
	that.recorded = nil
	if stats, ok := that.session.recordOutcome(outcome); ok {
		that.recorded = &stats
	}

	that.Observer.OnGameFinished(outcome)
}

func (that *statsObserver) OnStatsChanged(stats entity.Stats) {
	if that.recorded != nil {
		stats = *that.recorded
	}

	that.Observer.OnStatsChanged(stats)
}
