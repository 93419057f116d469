// Package defense decides what the fielders make of a ball in play: who fields
// it, whether it is caught, and whether an error or a double play follows.
// Runner movement beyond the outs recorded here belongs to the running package.
package defense

import (
	"fmt"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/shift"
)

type Input struct {
	Ball        entity.BatBallInfo
	Batter      entity.Runner
	BatterSpeed float64
	Runners     entity.RunnerState
	Outs        int
	Shift       entity.DefensiveShift
	Modifiers   shift.Modifiers
	Alignment   Alignment
}

// Outcome is the fielding verdict. Advances holds the outs the defense
// recorded and, on a fielder's choice, the batter reaching first.
type Outcome struct {
	Kind        entity.PlayKind
	Primary     entity.Position
	Assist      entity.Position
	Error       entity.ErrorKind
	TagUp       bool
	Advances    []entity.Advance
	Arm         float64
	Fallback    bool
	Description string
}

func (that Outcome) Outs() int {
	outs := 0
	for _, adv := range that.Advances {
		if adv.Out {
			outs++
		}
	}
	return outs
}

var (
	groundDifficulty = map[entity.Strength]float64{
		entity.StrengthWeak: 100, entity.StrengthMedium: 92, entity.StrengthStrong: 78, entity.StrengthVeryStrong: 55,
	}
	outfieldFlyDifficulty = map[entity.Strength]float64{
		entity.StrengthWeak: 100, entity.StrengthMedium: 97, entity.StrengthStrong: 85, entity.StrengthVeryStrong: 62,
	}
	outfieldLinerDifficulty = map[entity.Strength]float64{
		entity.StrengthWeak: 88, entity.StrengthMedium: 72, entity.StrengthStrong: 52, entity.StrengthVeryStrong: 36,
	}
	infieldFlyDifficulty = map[entity.Strength]float64{
		entity.StrengthWeak: 100, entity.StrengthMedium: 98, entity.StrengthStrong: 92, entity.StrengthVeryStrong: 80,
	}
	infieldLinerDifficulty = map[entity.Strength]float64{
		entity.StrengthWeak: 80, entity.StrengthMedium: 62, entity.StrengthStrong: 42, entity.StrengthVeryStrong: 26,
	}
)

// Resolve decides the fielding outcome of a ball in play.
func Resolve(in Input, rng dice.Source) Outcome {
	priorities := Priorities(in.Ball, in.Shift)

	fielder, ok := pickFielder(in, priorities)
	if !ok {
		return fallback(in, priorities, rng)
	}

	switch in.Ball.Type {
	case entity.BallGround:
		return resolveGround(in, fielder, rng)
	default:
		return resolveAir(in, fielder, rng)
	}
}

// pickFielder returns the first prioritized position that has a fielder. On
// liners the strength decides whether an infielder can react in time.
func pickFielder(in Input, priorities []entity.Position) (Fielder, bool) {
	if in.Ball.Type == entity.BallLiner && in.Ball.Strength.Level() >= entity.StrengthStrong.Level() {
		for _, pos := range priorities {
			if !pos.IsOutfield() {
				continue
			}
			if f, ok := in.Alignment.At(pos); ok {
				return f, true
			}
		}
	}

	if len(priorities) == 0 {
		return Fielder{}, false
	}

	// the primary position must be manned, otherwise the data is incomplete
	f, ok := in.Alignment.At(priorities[0])
	return f, ok
}

func resolveGround(in Input, f Fielder, rng dice.Source) Outcome {
	out := Outcome{Primary: f.Position, Arm: f.Ability.Arm}

	if f.Position.IsOutfield() {
		// through the hole
		return single(in, out, "%s grounds one through the hole into %s")
	}

	catch := groundDifficulty[in.Ball.Strength]*f.Ability.Range/100 - in.Modifiers.GroundHitDelta(in.Ball)
	if !dice.Chance(rng, ability.ClampPercent(catch)) {
		if in.Ball.Strength == entity.StrengthVeryStrong && isLine(in.Ball.Direction) &&
			dice.Chance(rng, ability.ClampPercent(25+in.Modifiers.ExtraBase)) {
			out.Kind = entity.PlayDouble
			out.Description = fmt.Sprintf("%s rips one down the line past %s", in.Batter.Name, f.Position)
			return out
		}
		return single(in, out, "%s grounds a single past %s")
	}

	// slow rollers can be beaten out
	if in.Ball.Strength.Level() <= entity.StrengthMedium.Level() {
		infieldHit := 5 + (in.BatterSpeed-ability.NeutralRating)*0.3 + in.Modifiers.InfieldHit
		if dice.Chance(rng, ability.ClampPercent(infieldHit)) {
			return single(in, out, "%s beats out an infield single to %s")
		}
	}

	if kind, ok := rollError(f, false, rng); ok {
		out.Kind = entity.PlayError
		out.Error = kind
		out.Assist = assistFor(f.Position, false)
		out.Description = fmt.Sprintf("%s reaches on a %s error by %s", in.Batter.Name, kind, f.Position)
		return out
	}

	// infield in: cut the run down at the plate
	if in.Shift == entity.ShiftInfieldIn && in.Runners.Third != nil && in.Outs < entity.MaxOuts-1 {
		throw := 25 + in.Modifiers.HomeThrow + (f.Ability.Arm-ability.NeutralRating)*0.3
		if dice.Chance(rng, ability.ClampPercent(throw)) {
			return homeThrow(in, out)
		}
	}

	if in.Runners.First != nil && in.Outs < entity.MaxOuts-1 {
		dp := 30 + (f.Ability.TurnDoublePlay-ability.NeutralRating)*0.4 +
			float64(in.Ball.Strength.Level()-1)*5 -
			(in.BatterSpeed-ability.NeutralRating)*0.2
		if dice.Chance(rng, ability.ClampPercent(dp)) {
			return doublePlay(in, out)
		}
		if dice.Chance(rng, 60) {
			return forceOut(in, out)
		}
	}

	out.Kind = entity.PlayOut
	out.Assist = assistFor(f.Position, false)
	out.Advances = []entity.Advance{batterOut(in.Batter, entity.BaseFirst)}
	out.Description = fmt.Sprintf("%s grounds out to %s", in.Batter.Name, f.Position)
	return out
}

func resolveAir(in Input, f Fielder, rng dice.Source) Outcome {
	out := Outcome{Primary: f.Position, Arm: f.Ability.Arm}
	outfield := f.Position.IsOutfield()

	if outfield {
		if kind, ok := beyondReach(in, rng); ok {
			out.Kind = kind
			out.Description = fmt.Sprintf("%s hits a %s to %s", in.Batter.Name, describeHit(kind), in.Ball.Direction)
			return out
		}
	}

	var difficulty float64
	switch {
	case outfield && in.Ball.Type == entity.BallFly:
		difficulty = outfieldFlyDifficulty[in.Ball.Strength]
	case outfield:
		difficulty = outfieldLinerDifficulty[in.Ball.Strength]
	case in.Ball.Type == entity.BallFly:
		difficulty = infieldFlyDifficulty[in.Ball.Strength]
	default:
		difficulty = infieldLinerDifficulty[in.Ball.Strength]
	}

	reach := f.Ability.Range
	if outfield {
		// outfielders are positioned for routine flies, so range only decides the margins
		reach = 50 + f.Ability.Range/2 + in.Modifiers.FlyRange
	}
	catch := difficulty * reach / 100
	if in.Ball.Type == entity.BallLiner {
		catch += in.Modifiers.LinerCatch
	}

	if !dice.Chance(rng, ability.ClampPercent(catch)) {
		return airHit(in, out, outfield, rng)
	}

	if outfield && in.Ball.Type == entity.BallFly {
		if kind, ok := rollError(f, true, rng); ok {
			out.Kind = entity.PlayError
			out.Error = kind
			out.Description = fmt.Sprintf("%s drops the fly ball from %s", f.Position, in.Batter.Name)
			return out
		}
	}

	out.Kind = entity.PlayOut
	out.Advances = []entity.Advance{batterOut(in.Batter, entity.BaseFirst)}

	// liners can double a runner off before it can get back
	if in.Ball.Type == entity.BallLiner && in.Outs < entity.MaxOuts-1 {
		if lead, base := in.Runners.Lead(); lead != nil && dice.Chance(rng, 15) {
			out.Kind = entity.PlayDoublePlay
			out.Advances = append(out.Advances, entity.Advance{RunnerID: lead.ID, Name: lead.Name, From: base, To: base, Out: true})
			out.Description = fmt.Sprintf("%s lines out to %s, %s doubled off", in.Batter.Name, f.Position, lead.Name)
			return out
		}
	}

	if outfield && in.Ball.Type == entity.BallFly && in.Runners.Third != nil && in.Outs < entity.MaxOuts-1 {
		out.Kind = entity.PlaySacFly
		out.TagUp = true
		out.Description = fmt.Sprintf("%s flies out to %s, %s tags", in.Batter.Name, f.Position, in.Runners.Third.Name)
		return out
	}

	out.TagUp = outfield && !in.Runners.Empty() && in.Outs < entity.MaxOuts-1
	verb := "flies"
	if in.Ball.Type == entity.BallLiner {
		verb = "lines"
	}
	if !outfield && in.Ball.Type == entity.BallFly {
		verb = "pops"
	}
	out.Description = fmt.Sprintf("%s %s out to %s", in.Batter.Name, verb, f.Position)
	return out
}

// beyondReach rules very strong balls a home run, triple or double before any
// catch attempt. Strong flies with enough carry can still leave the park.
func beyondReach(in Input, rng dice.Source) (entity.PlayKind, bool) {
	ebp := in.Ball.ExtraBasePotential
	gap := in.Ball.Direction == entity.DirectionLeftCenter || in.Ball.Direction == entity.DirectionRightCenter

	switch in.Ball.Strength {
	case entity.StrengthVeryStrong:
		hr := ebp*0.5 - 10
		if in.Ball.Type == entity.BallLiner {
			hr = ebp * 0.15
		}
		if dice.Chance(rng, ability.ClampPercent(hr)) {
			return entity.PlayHomeRun, true
		}
		triple := 4 + in.Modifiers.ExtraBase
		if gap {
			triple += 6
		}
		if dice.Chance(rng, ability.ClampPercent(triple)) {
			return entity.PlayTriple, true
		}
		if dice.Chance(rng, ability.ClampPercent(25+ebp*0.1+in.Modifiers.ExtraBase)) {
			return entity.PlayDouble, true
		}
	case entity.StrengthStrong:
		if in.Ball.Type == entity.BallFly && dice.Chance(rng, ability.ClampPercent(ebp*0.2-5)) {
			return entity.PlayHomeRun, true
		}
	}

	return "", false
}

// airHit escalates an uncaught ball by strength: outfield drops become extra
// bases more often the harder the ball was hit.
func airHit(in Input, out Outcome, outfield bool, rng dice.Source) Outcome {
	if !outfield {
		return single(in, out, "%s bloops a single over %s")
	}

	bonus := in.Ball.ExtraBasePotential*0.2 + in.Modifiers.ExtraBase
	switch in.Ball.Strength {
	case entity.StrengthVeryStrong:
		if dice.Chance(rng, ability.ClampPercent(15+bonus*0.5)) {
			out.Kind = entity.PlayTriple
		} else {
			out.Kind = entity.PlayDouble
		}
	case entity.StrengthStrong:
		if dice.Chance(rng, ability.ClampPercent(35+bonus)) {
			out.Kind = entity.PlayDouble
		} else {
			out.Kind = entity.PlaySingle
		}
	default:
		if dice.Chance(rng, ability.ClampPercent(bonus*0.3)) {
			out.Kind = entity.PlayDouble
		} else {
			out.Kind = entity.PlaySingle
		}
	}

	out.Description = fmt.Sprintf("%s drops a %s in front of %s", in.Batter.Name, describeHit(out.Kind), out.Primary)
	if out.Kind != entity.PlaySingle {
		out.Description = fmt.Sprintf("%s drives a %s over %s", in.Batter.Name, describeHit(out.Kind), out.Primary)
	}
	return out
}

func rollError(f Fielder, dropped bool, rng dice.Source) (entity.ErrorKind, bool) {
	chance := (ability.MaxRating - f.Ability.ErrorResistance) * 0.08
	if dropped {
		chance = (ability.MaxRating - f.Ability.ErrorResistance) * 0.04
	}
	if !dice.Chance(rng, chance) {
		return entity.ErrorNone, false
	}
	if dropped {
		return entity.ErrorDroppedFly, true
	}
	// most errors are bobbles, the rest wild throws
	if dice.Chance(rng, 60) {
		return entity.ErrorFielding, true
	}
	return entity.ErrorThrowing, true
}

func doublePlay(in Input, out Outcome) Outcome {
	first := in.Runners.First
	out.Kind = entity.PlayDoublePlay
	out.Assist = assistFor(out.Primary, true)
	out.Advances = []entity.Advance{
		{RunnerID: first.ID, Name: first.Name, From: entity.BaseFirst, To: entity.BaseSecond, Out: true},
		batterOut(in.Batter, entity.BaseFirst),
	}
	out.Description = fmt.Sprintf("%s grounds into a double play, %s-%s", in.Batter.Name, out.Primary, out.Assist)
	return out
}

// forceOut gets the lead forced runner while the batter reaches first.
func forceOut(in Input, out Outcome) Outcome {
	forced := in.Runners.ForcedAdvances()
	lead := forced[len(forced)-1]
	lead.Out = true

	out.Kind = entity.PlayFieldersChoice
	out.Assist = assistFor(out.Primary, true)
	out.Advances = []entity.Advance{
		lead,
		{RunnerID: in.Batter.ID, Name: in.Batter.Name, From: entity.BaseBatter, To: entity.BaseFirst},
	}
	out.Description = fmt.Sprintf("%s forced at %s, %s safe at first", lead.Name, lead.To, in.Batter.Name)
	return out
}

func homeThrow(in Input, out Outcome) Outcome {
	third := in.Runners.Third
	out.Kind = entity.PlayFieldersChoice
	out.Assist = entity.PositionCatcher
	out.Advances = []entity.Advance{
		{RunnerID: third.ID, Name: third.Name, From: entity.BaseThird, To: entity.BaseHome, Out: true},
		{RunnerID: in.Batter.ID, Name: in.Batter.Name, From: entity.BaseBatter, To: entity.BaseFirst},
	}
	out.Description = fmt.Sprintf("%s thrown out at the plate, %s to first", third.Name, in.Batter.Name)
	return out
}

func single(in Input, out Outcome, format string) Outcome {
	out.Kind = entity.PlaySingle
	out.Description = fmt.Sprintf(format, in.Batter.Name, out.Primary)
	return out
}

// fallback decides the play from strength and extra-base potential alone
// when the fielder responsible for the ball is unknown.
func fallback(in Input, priorities []entity.Position, rng dice.Source) Outcome {
	out := Outcome{Arm: ability.NeutralRating, Fallback: true}
	if len(priorities) > 0 {
		out.Primary = priorities[0]
	}

	ebp := in.Ball.ExtraBasePotential
	hit := 20 + float64(in.Ball.Strength.Level())*10 + ebp*0.1
	if !dice.Chance(rng, ability.ClampPercent(hit)) {
		out.Kind = entity.PlayOut
		out.Advances = []entity.Advance{batterOut(in.Batter, entity.BaseFirst)}
		out.Description = fmt.Sprintf("%s is retired", in.Batter.Name)
		return out
	}

	switch {
	case in.Ball.Type == entity.BallFly && ebp >= 85:
		out.Kind = entity.PlayHomeRun
	case ebp >= 65:
		out.Kind = entity.PlayDouble
	default:
		out.Kind = entity.PlaySingle
	}
	out.Description = fmt.Sprintf("%s hits a %s", in.Batter.Name, describeHit(out.Kind))
	return out
}

func batterOut(batter entity.Runner, at entity.Base) entity.Advance {
	return entity.Advance{RunnerID: batter.ID, Name: batter.Name, From: entity.BaseBatter, To: at, Out: true}
}

func isLine(dir entity.Direction) bool {
	return dir == entity.DirectionLeft || dir == entity.DirectionRight
}

func describeHit(kind entity.PlayKind) string {
	switch kind {
	case entity.PlayHomeRun:
		return "home run"
	case entity.PlayTriple:
		return "triple"
	case entity.PlayDouble:
		return "double"
	default:
		return "single"
	}
}
