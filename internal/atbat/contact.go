package atbat

import (
	"math"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

var (
	typeMultiplier = map[entity.BallType]float64{
		entity.BallGround: 0.35,
		entity.BallLiner:  1.0,
		entity.BallFly:    1.1,
	}

	strengthMultiplier = map[entity.Strength]float64{
		entity.StrengthWeak:       0.3,
		entity.StrengthMedium:     0.65,
		entity.StrengthStrong:     1.0,
		entity.StrengthVeryStrong: 1.3,
	}

	strengths = []entity.Strength{
		entity.StrengthWeak, entity.StrengthMedium, entity.StrengthStrong, entity.StrengthVeryStrong,
	}
)

// Contact turns a ball put in play into BatBallInfo. edge is the count edge
// at contact (balls minus strikes).
func Contact(m Matchup, edge int, rng dice.Source) entity.BatBallInfo {
	pullSide := entity.PullSide(m.Batter.Bats, m.Pitcher.Throws)

	ballType := contactType(m, rng)
	direction := contactDirection(m, pullSide, rng)
	strength := contactStrength(m, edge, rng)

	return entity.BatBallInfo{
		Type:               ballType,
		Direction:          direction,
		Strength:           strength,
		ExtraBasePotential: ExtraBasePotential(m.Batter, ballType, strength, edge),
		PullSide:           pullSide,
	}
}

// contactType weighs the pitcher's ground-ball tendency against the batter's
// line-drive tendency (contact and babip) and loft (power).
func contactType(m Matchup, rng dice.Source) entity.BallType {
	neutral := ability.NeutralRating
	lineDrive := (m.Batter.Contact + m.Batter.Babip) / 2

	ground := 43 + (m.Pitcher.GroundBall-neutral)*0.4 - (m.Batter.Power-neutral)*0.15
	liner := 21 + (lineDrive-neutral)*0.2
	ground = math.Max(10, ground)
	liner = math.Max(5, liner)
	fly := math.Max(10, 100-ground-liner)

	switch dice.Pick(rng, []float64{ground, liner, fly}) {
	case 0:
		return entity.BallGround
	case 1:
		return entity.BallLiner
	default:
		return entity.BallFly
	}
}

// contactDirection samples a five-way spray chart. Weights run from the pull
// line to the opposite line; switch hitters spray symmetrically.
func contactDirection(m Matchup, pullSide entity.Direction, rng dice.Source) entity.Direction {
	weights := []float64{30, 22, 20, 16, 12}
	if m.Batter.Bats == entity.HandSwitch {
		weights = []float64{22, 21, 14, 21, 22}
	} else {
		// power hitters pull more
		shift := (m.Batter.Power - ability.NeutralRating) / 25 * 2
		weights[0] += shift
		weights[4] -= shift
	}

	idx := dice.Pick(rng, weights)
	if idx < 0 {
		idx = 2
	}

	if pullSide == entity.DirectionLeft {
		return entity.Directions[idx]
	}
	return entity.Directions[len(entity.Directions)-1-idx]
}

func contactStrength(m Matchup, edge int, rng dice.Source) entity.Strength {
	neutral := ability.NeutralRating
	quality := (m.Batter.Contact+m.Batter.Babip)/2*0.6 + m.Batter.Power*0.4 +
		float64(edge)*3 -
		((m.Pitcher.Stuff+m.Pitcher.Movement)/2-neutral)*0.3

	weak := math.Max(5, 25-(quality-neutral)*0.4)
	strong := math.Max(5, 25+(quality-neutral)*0.4)
	veryStrong := math.Max(2, 5+(quality-neutral)*0.3)
	medium := math.Max(10, 100-weak-strong-veryStrong)

	idx := dice.Pick(rng, []float64{weak, medium, strong, veryStrong})
	if idx < 0 {
		return entity.StrengthMedium
	}
	return strengths[idx]
}

// ExtraBasePotential scales gap and home-run power by ball type and strength,
// capped at 100.
func ExtraBasePotential(b ability.Batting, ballType entity.BallType, strength entity.Strength, edge int) float64 {
	base := b.GapPower*0.55 + b.Power*0.45
	potential := base*typeMultiplier[ballType]*strengthMultiplier[strength] + float64(edge)*2
	return ability.ClampPercent(potential)
}
