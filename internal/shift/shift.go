// Package shift computes the probability modifiers a defensive alignment
// applies to balls in play. It never decides a result on its own.
package shift

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// BaselineRange is the average range at which modifiers apply at face value.
const BaselineRange = 70.0

// Modifiers are additive percentage-point deltas. Positive hit deltas favor the
// batter; positive catch, range and throw deltas favor the defense.
type Modifiers struct {
	PullGroundHit     float64 `json:"pull_ground_hit"`
	CenterGroundHit   float64 `json:"center_ground_hit"`
	OppositeGroundHit float64 `json:"opposite_ground_hit"`
	GroundHit         float64 `json:"ground_hit"`
	HardGroundHit     float64 `json:"hard_ground_hit"`
	InfieldHit        float64 `json:"infield_hit"`
	FlyRange          float64 `json:"fly_range"`
	LinerCatch        float64 `json:"liner_catch"`
	ExtraBase         float64 `json:"extra_base"`
	HomeThrow         float64 `json:"home_throw"`
}

func (that Modifiers) IsZero() bool {
	return that == Modifiers{}
}

func (that Modifiers) scaled(factor float64) Modifiers {
	return Modifiers{
		PullGroundHit:     that.PullGroundHit * factor,
		CenterGroundHit:   that.CenterGroundHit * factor,
		OppositeGroundHit: that.OppositeGroundHit * factor,
		GroundHit:         that.GroundHit * factor,
		HardGroundHit:     that.HardGroundHit * factor,
		InfieldHit:        that.InfieldHit * factor,
		FlyRange:          that.FlyRange * factor,
		LinerCatch:        that.LinerCatch * factor,
		ExtraBase:         that.ExtraBase * factor,
		HomeThrow:         that.HomeThrow * factor,
	}
}

// GroundHitDelta is the net hit-rate change for a ground ball.
func (that Modifiers) GroundHitDelta(ball entity.BatBallInfo) float64 {
	delta := that.GroundHit
	switch {
	case ball.IsPulled():
		delta += that.PullGroundHit
	case ball.IsOpposite():
		delta += that.OppositeGroundHit
	default:
		delta += that.CenterGroundHit
	}
	if ball.Strength.Level() >= entity.StrengthStrong.Level() {
		delta += that.HardGroundHit
	}
	return delta
}

var (
	extreme = Modifiers{
		PullGroundHit:     -15,
		CenterGroundHit:   -3,
		OppositeGroundHit: 15,
		FlyRange:          -2,
		ExtraBase:         4,
	}

	// toward the batter's pull side
	pullWith = Modifiers{
		PullGroundHit:     -8,
		CenterGroundHit:   -1,
		OppositeGroundHit: 6,
		ExtraBase:         2,
	}

	// toward the batter's opposite field
	pullAgainst = Modifiers{
		PullGroundHit:     6,
		CenterGroundHit:   -1,
		OppositeGroundHit: -8,
		ExtraBase:         2,
	}

	infieldIn = Modifiers{
		GroundHit:  6,
		FlyRange:   -3,
		LinerCatch: -8,
		ExtraBase:  5,
		HomeThrow:  20,
	}

	infieldBack = Modifiers{
		HardGroundHit: -4,
		InfieldHit:    6,
		ExtraBase:     -6,
	}
)

// Compute returns the modifiers for shift against a batter pulling toward
// pullSide. avgRange is the fielding team's average range; every modifier
// scales by avgRange/BaselineRange so a rangier defense magnifies both the gain
// and the hole a shift creates.
func Compute(shift entity.DefensiveShift, pullSide entity.Direction, avgRange float64) Modifiers {
	factor := ability.Clamp(avgRange) / BaselineRange

	switch shift {
	case entity.ShiftNormal:
		return Modifiers{}
	case entity.ShiftExtreme:
		return extreme.scaled(factor)
	case entity.ShiftPullLeft:
		if pullSide == entity.DirectionLeft {
			return pullWith.scaled(factor)
		}
		return pullAgainst.scaled(factor)
	case entity.ShiftPullRight:
		if pullSide == entity.DirectionRight {
			return pullWith.scaled(factor)
		}
		return pullAgainst.scaled(factor)
	case entity.ShiftInfieldIn:
		return infieldIn.scaled(factor)
	case entity.ShiftInfieldBack:
		return infieldBack.scaled(factor)
	default:
		return Modifiers{}
	}
}

// Recommended returns the shift that best suits a batter, used by CPU
// managers as a starting point. Strong pull power earns the extreme shift.
func Recommended(bats entity.Hand, power float64) entity.DefensiveShift {
	switch {
	case bats == entity.HandSwitch:
		return entity.ShiftNormal
	case power >= 80:
		return entity.ShiftExtreme
	case power >= 65 && bats == entity.HandLeft:
		return entity.ShiftPullRight
	case power >= 65:
		return entity.ShiftPullLeft
	default:
		return entity.ShiftNormal
	}
}
