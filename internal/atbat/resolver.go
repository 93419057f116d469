// Package atbat resolves a plate appearance into a strikeout, a walk, or a
// ball in play, either in a single draw or pitch by pitch.
package atbat

import (
	"fmt"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

type Outcome string

const (
	OutcomeStrikeout Outcome = "strikeout"
	OutcomeWalk      Outcome = "walk"
	OutcomeInPlay    Outcome = "in_play"
)

type Mode string

const (
	ModeFast  Mode = "fast"
	ModePitch Mode = "pitch"
)

type Pitch string

const (
	PitchBall   Pitch = "ball"
	PitchStrike Pitch = "strike"
	PitchFoul   Pitch = "foul"
	PitchInPlay Pitch = "in_play"
)

// maxPitches ends pathological foul streaks with the ball put in play.
const maxPitches = 30

type Result struct {
	Outcome  Outcome
	Count    entity.Count
	Pitches  int
	Sequence []Pitch
	Ball     *entity.BatBallInfo
}

// Resolve plays out a plate appearance. Bunts and squeezes belong to
// ResolveBunt and are rejected with apperror.ErrWrongResolver.
func Resolve(m Matchup, start entity.Count, instruction entity.OffensiveInstruction, mode Mode, rng dice.Source) (Result, error) {
	switch instruction {
	case entity.OffenseBunt, entity.OffenseSqueeze:
		return Result{}, fmt.Errorf("%w: %s", apperror.ErrWrongResolver, instruction)
	}

	if mode == ModePitch {
		return resolvePitches(m, start, instruction, rng), nil
	}
	return resolveSingle(m, instruction, rng), nil
}

func resolveSingle(m Matchup, instruction entity.OffensiveInstruction, rng dice.Source) Result {
	odds := Odds(m)

	// A hit-and-run forces a swing, trading walks for balls in play.
	if instruction == entity.OffenseHitAndRun {
		shift := odds.Walk / 2
		odds.Walk -= shift
		odds.InPlay += shift
	}

	switch dice.Pick(rng, []float64{odds.Strikeout, odds.Walk, odds.InPlay}) {
	case 0:
		return Result{Outcome: OutcomeStrikeout, Count: entity.Count{Balls: 1, Strikes: 3}, Pitches: 5}
	case 1:
		return Result{Outcome: OutcomeWalk, Count: entity.Count{Balls: 4, Strikes: 1}, Pitches: 6}
	default:
		pitches := 1 + int(rng.Roll()/25)
		ball := Contact(m, 0, rng)
		return Result{Outcome: OutcomeInPlay, Count: entity.Count{Balls: 1, Strikes: 1}, Pitches: pitches, Ball: &ball}
	}
}

func resolvePitches(m Matchup, start entity.Count, instruction entity.OffensiveInstruction, rng dice.Source) Result {
	pa := Odds(m)
	count := start
	result := Result{}

	for result.Pitches < maxPitches {
		odds := PitchOddsFor(pa, count, instruction)
		result.Pitches++

		switch dice.Pick(rng, odds.weights()) {
		case 0:
			result.Sequence = append(result.Sequence, PitchBall)
			count.Balls++
			if count.Balls >= 4 {
				result.Outcome = OutcomeWalk
				result.Count = count
				return result
			}
		case 1:
			result.Sequence = append(result.Sequence, PitchStrike)
			count.Strikes++
			if count.Strikes >= 3 {
				result.Outcome = OutcomeStrikeout
				result.Count = count
				return result
			}
		case 2:
			result.Sequence = append(result.Sequence, PitchFoul)
			if count.Strikes < 2 {
				count.Strikes++
			}
		default:
			result.Sequence = append(result.Sequence, PitchInPlay)
			return contactResult(m, count, result, rng)
		}
	}

	return contactResult(m, count, result, rng)
}

func contactResult(m Matchup, count entity.Count, result Result, rng dice.Source) Result {
	ball := Contact(m, count.Edge(), rng)
	result.Outcome = OutcomeInPlay
	result.Count = count
	result.Ball = &ball
	return result
}
