// Package ability turns raw ratings into the effective numbers every resolver consumes.
//
// Condition adjusts batting, pitch count adjusts pitching, handedness applies a
// small platoon modifier. Every output is clamped to [MinRating, MaxRating].
package ability

import (
	"math"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

const (
	MinRating     = 1.0
	MaxRating     = 100.0
	NeutralRating = 50.0

	// Pitch counts where fatigue starts to show and where it becomes severe,
	// before the stamina shift.
	FatigueOnsetPitches  = 75
	FatigueSeverePitches = 100

	platoonEdge = 3.0
)

// Batting holds effective batting and running numbers for one plate appearance.
type Batting struct {
	Contact        float64
	Babip          float64
	GapPower       float64
	Power          float64
	Eye            float64
	AvoidStrikeout float64
	Bunt           float64
	Speed          float64
	Stealing       float64
	Baserunning    float64
	Bats           entity.Hand
}

// Pitching holds effective pitching numbers after fatigue and platoon.
type Pitching struct {
	Stuff      float64
	Movement   float64
	Control    float64
	Stamina    float64
	GroundBall float64
	Throws     entity.Hand
}

// Fielding holds effective defensive numbers for one fielder.
type Fielding struct {
	Range           float64
	Arm             float64
	ErrorResistance float64
	TurnDoublePlay  float64
}

// Clamp pins v to [MinRating, MaxRating]; NaN becomes the neutral rating.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return NeutralRating
	}
	return math.Max(MinRating, math.Min(MaxRating, v))
}

// Rating clamps a raw integer rating.
func Rating(v int) float64 {
	return Clamp(float64(v))
}

// ClampPercent pins a probability expressed in percent to [0,100].
func ClampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

type conditionEffect struct {
	add float64
	mul float64
}

var conditionEffects = map[entity.Condition]conditionEffect{
	entity.ConditionExcellent: {add: 5, mul: 1.05},
	entity.ConditionGood:      {add: 2, mul: 1.02},
	entity.ConditionNormal:    {add: 0, mul: 1},
	entity.ConditionPoor:      {add: -2, mul: 0.97},
	entity.ConditionTerrible:  {add: -5, mul: 0.93},
}

// ApplyCondition adjusts a batting number for the player's condition.
func ApplyCondition(v float64, condition entity.Condition) float64 {
	effect, ok := conditionEffects[condition]
	if !ok {
		return Clamp(v)
	}
	return Clamp((v + effect.add) * effect.mul)
}

// fatiguePenalty is subtracted from batting numbers of tired position players.
func fatiguePenalty(level entity.FatigueLevel) float64 {
	switch level {
	case entity.FatigueTired:
		return 2
	case entity.FatigueExhausted:
		return 5
	default:
		return 0
	}
}

// Platoon returns the batting modifier for a matchup; the pitcher receives the negation.
// Switch hitters always bat from the favorable side but get a reduced edge.
func Platoon(bats, throws entity.Hand) float64 {
	switch {
	case bats == entity.HandSwitch:
		return platoonEdge / 3
	case bats == "" || throws == "":
		return 0
	case bats == throws:
		return -platoonEdge
	default:
		return platoonEdge
	}
}

// fatigueThresholds shifts the onset/severe pitch counts by stamina: each
// 5 points above or below 50 moves them by one pitch.
func fatigueThresholds(stamina float64) (float64, float64) {
	shift := (Clamp(stamina) - NeutralRating) / 5
	return FatigueOnsetPitches + shift, FatigueSeverePitches + shift
}

// FatigueMultiplier is 1 before the onset threshold and decreases monotonically
// with pitch count: to 0.85 at the severe threshold, then faster down to a 0.5 floor.
func FatigueMultiplier(pitchCount int, stamina float64) float64 {
	onset, severe := fatigueThresholds(stamina)
	pc := float64(pitchCount)

	switch {
	case pc <= onset:
		return 1
	case pc <= severe:
		return 1 - 0.15*(pc-onset)/(severe-onset)
	default:
		return math.Max(0.5, 0.85-0.01*(pc-severe))
	}
}

// FatigueLevelFor tags a pitcher by pitch count for display and AI decisions.
func FatigueLevelFor(pitchCount int, stamina float64) entity.FatigueLevel {
	onset, severe := fatigueThresholds(stamina)
	pc := float64(pitchCount)

	switch {
	case pc < onset/2:
		return entity.FatigueFresh
	case pc < onset:
		return entity.FatigueNormal
	case pc < severe:
		return entity.FatigueTired
	default:
		return entity.FatigueExhausted
	}
}

// NeutralBatting is the fallback when a batter cannot be found.
func NeutralBatting() Batting {
	return Batting{
		Contact: NeutralRating, Babip: NeutralRating, GapPower: NeutralRating, Power: NeutralRating,
		Eye: NeutralRating, AvoidStrikeout: NeutralRating, Bunt: NeutralRating,
		Speed: NeutralRating, Stealing: NeutralRating, Baserunning: NeutralRating,
		Bats: entity.HandRight,
	}
}

// NeutralPitching is the fallback when a pitcher cannot be found or has no pitching ratings.
func NeutralPitching() Pitching {
	return Pitching{
		Stuff: NeutralRating, Movement: NeutralRating, Control: NeutralRating,
		Stamina: NeutralRating, GroundBall: NeutralRating, Throws: entity.HandRight,
	}
}

func NeutralFielding() Fielding {
	return Fielding{Range: NeutralRating, Arm: NeutralRating, ErrorResistance: NeutralRating, TurnDoublePlay: NeutralRating}
}

// EffectiveBatting applies condition, fatigue and platoon to a batter.
func EffectiveBatting(player entity.PlayerInGame, pitcherThrows entity.Hand) Batting {
	r := player.Rating
	platoon := Platoon(r.Bats, pitcherThrows)
	penalty := fatiguePenalty(player.Fatigue)

	adjust := func(v int, withPlatoon bool) float64 {
		base := Rating(v) - penalty
		if withPlatoon {
			base += platoon
		}
		return ApplyCondition(base, player.Condition)
	}

	bats := r.Bats
	if bats == "" {
		bats = entity.HandRight
	}

	return Batting{
		Contact:        adjust(r.Batting.Contact, true),
		Babip:          adjust(r.Batting.Babip, true),
		GapPower:       adjust(r.Batting.GapPower, true),
		Power:          adjust(r.Batting.Power, true),
		Eye:            adjust(r.Batting.Eye, true),
		AvoidStrikeout: adjust(r.Batting.AvoidStrikeout, true),
		Bunt:           adjust(r.Batting.Bunt, false),
		Speed:          Clamp(Rating(r.Running.Speed) - penalty),
		Stealing:       Clamp(Rating(r.Running.Stealing) - penalty),
		Baserunning:    Clamp(Rating(r.Running.Baserunning) - penalty),
		Bats:           bats,
	}
}

// EffectivePitching applies pitch-count fatigue and platoon to a pitcher. A
// player without pitching ratings pitches at the neutral level.
func EffectivePitching(player entity.PlayerInGame, batterBats entity.Hand) Pitching {
	ratings, ok := player.Rating.Pitching()
	if !ok {
		neutral := NeutralPitching()
		neutral.Throws = player.Rating.Throws
		if neutral.Throws == "" {
			neutral.Throws = entity.HandRight
		}
		ratings = entity.PitchingRatings{
			Stuff: int(neutral.Stuff), Movement: int(neutral.Movement), Control: int(neutral.Control),
			Stamina: int(neutral.Stamina), GroundBall: int(neutral.GroundBall),
		}
	}

	stamina := Rating(ratings.Stamina)
	factor := FatigueMultiplier(player.Pitching.PitchCount, stamina)
	platoon := -Platoon(batterBats, player.Rating.Throws)

	adjust := func(v int) float64 {
		return Clamp(Rating(v)*factor + platoon)
	}

	throws := player.Rating.Throws
	if throws == "" {
		throws = entity.HandRight
	}

	return Pitching{
		Stuff:      adjust(ratings.Stuff),
		Movement:   adjust(ratings.Movement),
		Control:    adjust(ratings.Control),
		Stamina:    stamina,
		GroundBall: Rating(ratings.GroundBall),
		Throws:     throws,
	}
}

// EffectiveFielding clamps a fielder's ratings. Catchers use their catching
// arm when it is better than their generic arm.
func EffectiveFielding(player entity.PlayerInGame) Fielding {
	f := player.Rating.Fielding
	arm := Rating(f.Arm)
	if catching, ok := player.Rating.Catching(); ok {
		arm = math.Max(arm, Rating(catching.Arm))
	}

	return Fielding{
		Range:           Rating(f.Range),
		Arm:             arm,
		ErrorResistance: Rating(f.ErrorResistance),
		TurnDoublePlay:  Rating(f.TurnDoublePlay),
	}
}

// Average returns the mean of the given numbers, or the neutral rating for none.
func Average(values ...float64) float64 {
	if len(values) == 0 {
		return NeutralRating
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return Clamp(total / float64(len(values)))
}
