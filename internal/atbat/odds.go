package atbat

import (
	"math"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

const (
	minStrikeout = 5.0
	maxStrikeout = 45.0
	minWalk      = 2.0
	maxWalk      = 20.0
)

// Matchup is the effective batter and pitcher for one plate appearance.
type Matchup struct {
	Batter  ability.Batting
	Pitcher ability.Pitching
}

// Probabilities are plate-appearance level odds in percent; they always sum to 100.
type Probabilities struct {
	Strikeout float64
	Walk      float64
	InPlay    float64
}

// Odds is the single ability-to-probability formula both resolution modes use.
func Odds(m Matchup) Probabilities {
	b, p := m.Batter, m.Pitcher

	k := 20 +
		(p.Stuff-ability.NeutralRating)*0.25 +
		(p.Movement-ability.NeutralRating)*0.1 -
		(b.Contact-ability.NeutralRating)*0.15 -
		(b.AvoidStrikeout-ability.NeutralRating)*0.15
	k = math.Max(minStrikeout, math.Min(maxStrikeout, k))

	bb := 8 +
		(b.Eye-ability.NeutralRating)*0.12 -
		(p.Control-ability.NeutralRating)*0.15
	bb = math.Max(minWalk, math.Min(maxWalk, bb))

	return Probabilities{
		Strikeout: k,
		Walk:      bb,
		InPlay:    100 - k - bb,
	}
}

// PitchOdds are per-pitch odds in percent for a given count.
type PitchOdds struct {
	Ball   float64
	Strike float64
	Foul   float64
	InPlay float64
}

func (that PitchOdds) weights() []float64 {
	return []float64{that.Ball, that.Strike, that.Foul, that.InPlay}
}

// PitchOddsFor derives per-pitch odds from the plate-appearance odds. The
// linear mapping is calibrated so that running the count to completion
// reproduces Odds within a couple of points.
func PitchOddsFor(pa Probabilities, count entity.Count, instruction entity.OffensiveInstruction) PitchOdds {
	odds := PitchOdds{
		Ball:   23 + 0.95*pa.Walk,
		Strike: 0.75*pa.Strikeout - 1.5,
		InPlay: 0.27 * pa.InPlay,
	}
	odds.Foul = 100 - odds.Ball - odds.Strike - odds.InPlay

	switch {
	case count.Edge() >= 2:
		// hitter's count: more balls in play, harder contact
		odds.InPlay += 3
		odds.Ball -= 1.5
		odds.Strike -= 1.5
	case count.Strikes == 2 && count.Balls < 2:
		// pitcher's count: batter protects, more misses and fouls
		odds.Foul += 3
		odds.Strike += 2
		odds.InPlay -= 3
		odds.Ball -= 2
	}

	switch instruction {
	case entity.OffenseWait:
		if count.Strikes == 0 {
			odds.Ball += 6
			odds.Strike = odds.Strike + odds.Foul*0.5 + odds.InPlay
			odds.Foul = 0
			odds.InPlay = 0
		}
	case entity.OffenseHitAndRun:
		odds.InPlay += 6
		odds.Ball -= 6
	}

	return odds.normalized()
}

func (that PitchOdds) normalized() PitchOdds {
	that.Ball = math.Max(0, that.Ball)
	that.Strike = math.Max(0, that.Strike)
	that.Foul = math.Max(0, that.Foul)
	that.InPlay = math.Max(0, that.InPlay)

	total := that.Ball + that.Strike + that.Foul + that.InPlay
	if total <= 0 {
		return PitchOdds{InPlay: 100}
	}

	scale := 100 / total
	return PitchOdds{
		Ball:   that.Ball * scale,
		Strike: that.Strike * scale,
		Foul:   that.Foul * scale,
		InPlay: that.InPlay * scale,
	}
}
