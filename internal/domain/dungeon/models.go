package dungeon

import (
	"errors"
	"time"
)

var (
	ErrThresholdNotFound = errors.New("level threshold not found")
	ErrEncounterNotFound = errors.New("encounter message not found")
	ErrNoEncounters      = errors.New("encounter table is empty")
)

// User is a player's dungeon progress.
type User struct {
	UserID       string
	TotalExp     int64
	CurrentLevel int
	LastCheck    *time.Time
}

// Player identifies who issued a command.
type Player struct {
	ID          string
	DisplayName string
}

type Threshold struct {
	Level    int
	TotalExp int64
}

// Outcome classifies a roll.
type Outcome int

const (
	OutcomeNeutral Outcome = iota
	OutcomePositive
	OutcomeNegative
)

func (o Outcome) String() string {
	switch o {
	case OutcomePositive:
		return "positive"
	case OutcomeNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// EncounterTable names one of the two flavor text tables.
type EncounterTable int

const (
	EncounterPositive EncounterTable = iota + 1
	EncounterNegative
)

func (t EncounterTable) String() string {
	switch t {
	case EncounterPositive:
		return "positive"
	case EncounterNegative:
		return "negative"
	default:
		return "unknown"
	}
}

// Table returns the encounter table an outcome draws flavor text from.
// Neutral outcomes have no table.
func (o Outcome) Table() (EncounterTable, bool) {
	switch o {
	case OutcomePositive:
		return EncounterPositive, true
	case OutcomeNegative:
		return EncounterNegative, true
	default:
		return 0, false
	}
}

type LevelTransition struct {
	From int
	To   int
}

func (t LevelTransition) Up() bool {
	return t.To > t.From
}

// AttemptResult is everything needed to render a /roll-attempt reply.
type AttemptResult struct {
	Player     Player
	Allowed    bool
	Remaining  time.Duration
	Roll       Roll
	Encounter  string
	User       User
	Transition *LevelTransition
}

type StatusReport struct {
	Player Player
	User   User
	// NextThreshold is nil when the user is at the highest configured level.
	NextThreshold *Threshold
}
