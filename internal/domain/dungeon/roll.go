package dungeon

import "math"

const (
	drawRange        = 100
	negativeBelow    = 25
	neutralFrom      = 95
	magnitudeRange   = 70
	minimumMagnitude = 20
	levelScale       = 1.05
)

// RNG is the randomness source for rolls. *math/rand/v2.Rand satisfies it.
type RNG interface {
	IntN(n int) int
}

type Roll struct {
	Outcome Outcome
	// Magnitude is the unscaled amount, zero for neutral rolls.
	Magnitude int
	Delta     int64
}

// ClassifyDraw maps a draw in [0, 100) to its outcome.
func ClassifyDraw(draw int) Outcome {
	switch {
	case draw < negativeBelow:
		return OutcomeNegative
	case draw >= neutralFrom:
		return OutcomeNeutral
	default:
		return OutcomePositive
	}
}

// DrawMagnitude returns an amount in [20, 70).
func DrawMagnitude(rng RNG) int {
	return max(rng.IntN(magnitudeRange), minimumMagnitude)
}

// ScaleDelta multiplies delta by 1.05^level and truncates toward zero.
func ScaleDelta(delta int, level int) int64 {
	return int64(math.Trunc(float64(delta) * math.Pow(levelScale, float64(level))))
}

// RollDelta performs one roll for a user at the given level.
func RollDelta(level int, rng RNG) Roll {
	outcome := ClassifyDraw(rng.IntN(drawRange))
	if outcome == OutcomeNeutral {
		return Roll{Outcome: OutcomeNeutral}
	}

	magnitude := DrawMagnitude(rng)
	signed := magnitude
	if outcome == OutcomeNegative {
		signed = -magnitude
	}

	return Roll{
		Outcome:   outcome,
		Magnitude: magnitude,
		Delta:     ScaleDelta(signed, level),
	}
}
