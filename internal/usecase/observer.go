package usecase

import "github.com/rocketscienceinc/tictactoe-ai/internal/entity"

// Observer receives match notifications in the order the changes happened.
// Callbacks must not call back into the match.
type Observer interface {
	OnCellChanged(cell int, mark entity.Mark)
	OnTurnChanged(mark entity.Mark)
	OnGameFinished(outcome entity.Outcome)
	OnHint(cell int, ok bool)
	OnStatsChanged(stats entity.Stats)
}

// NopObserver ignores every notification. Embed it to implement a subset of Observer.
type NopObserver struct{}

func (NopObserver) OnCellChanged(int, entity.Mark) {}
func (NopObserver) OnTurnChanged(entity.Mark) {}
func (NopObserver) OnGameFinished(entity.Outcome) {}
func (NopObserver) OnHint(int, bool) {}
func (NopObserver) OnStatsChanged(entity.Stats) {}

type notification func(Observer)

func cellChanged(cell int, mark entity.Mark) notification {
	return func(observer Observer) { observer.OnCellChanged(cell, mark) }
}

func turnChanged(mark entity.Mark) notification {
	return func(observer Observer) { observer.OnTurnChanged(mark) }
}

func gameFinished(outcome entity.Outcome) notification {
	return func(observer Observer) { observer.OnGameFinished(outcome) }
}

func hintReady(cell int, ok bool) notification {
	return func(observer Observer) { observer.OnHint(cell, ok) }
}

func statsChanged(stats entity.Stats) notification {
	return func(observer Observer) { observer.OnStatsChanged(stats) }
}
