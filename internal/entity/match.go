package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

type Difficulty string

const (
	EasyDifficulty   Difficulty = "easy"
	MediumDifficulty Difficulty = "medium"
	HardDifficulty   Difficulty = "hard"
)

// ParseDifficulty accepts the tier name in any letter case.
func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value))); difficulty {
	case EasyDifficulty, MediumDifficulty, HardDifficulty:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, value)
	}
}

type Mode string

const (
	PvPMode Mode = "pvp"
	AIMode  Mode = "ai"
)

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(value))); mode {
	case PvPMode, AIMode:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMode, value)
	}
}

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// MatchState is a snapshot of a match handed to the presentation layer.
type MatchState struct {
	ID         string     `json:"id"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Board      Board      `json:"board"`
	Turn       Mark       `json:"player_turn"`
	Status     string     `json:"status"`
	Waiting    bool       `json:"waiting_for_opponent"`
	Outcome    *Outcome   `json:"outcome,omitempty"`
	History    []Move     `json:"history"`
	Stats      Stats      `json:"stats"`
}

func (that MatchState) IsFinished() bool {
	return that.Status == StatusFinished
}

// Scores counts wins per player.
type Scores struct {
	X int `json:"X"`
	O int `json:"O"`
}

// Stats is the persisted statistics blob.
type Stats struct {
	Scores     Scores `json:"scores"`
	TotalGames int    `json:"totalGames"`
	TotalWins  int    `json:"totalWins"`
}

// TrackedPlayer is the human seat whose wins are counted in TotalWins.
const TrackedPlayer = PlayerX

// Record adds a finished match to the statistics.
func (that *Stats) Record(outcome Outcome) {
	that.TotalGames++

	switch outcome.Winner {
	case PlayerX:
		that.Scores.X++
	case PlayerO:
		that.Scores.O++
	default:
		return
	}

	if outcome.Winner == TrackedPlayer {
		that.TotalWins++
	}
}

// Settings is the persisted settings blob.
type Settings struct {
	SoundEnabled bool `json:"soundEnabled"`
}

func DefaultSettings() Settings {
	return Settings{SoundEnabled: true}
}
