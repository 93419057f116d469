package running

import (
	"fmt"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/defense"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/shift"
)

// Input is a ball in play after the defense has ruled on it.
type Input struct {
	Fielding  defense.Outcome
	Ball      entity.BatBallInfo
	Batter    entity.Runner
	Runners   entity.RunnerState
	Outs      int
	Abilities Abilities
	Modifiers shift.Modifiers
	// HitAndRun sends the runner on first with the pitch.
	HitAndRun bool
}

// Resolve produces the full play: every runner's destination, outs, runs and RBI.
func Resolve(in Input, rng dice.Source) entity.PlayResult {
	result := entity.PlayResult{
		Kind:                in.Fielding.Kind,
		Fielder:             in.Fielding.Primary,
		Assist:              in.Fielding.Assist,
		Error:               in.Fielding.Error,
		EndsPlateAppearance: true,
		Description:         in.Fielding.Description,
	}

	switch in.Fielding.Kind {
	case entity.PlayHomeRun:
		result.Advances = homeRun(in)
	case entity.PlayTriple:
		result.Advances = triple(in)
	case entity.PlayDouble:
		result.Advances = double(in, rng)
	case entity.PlaySingle:
		result.Advances = single(in, rng)
	case entity.PlayError:
		result.Advances = ErrorAdvances(in.Fielding.Error, in.Batter, in.Runners, in.Outs)
	case entity.PlaySacFly:
		result = sacFly(in, result, rng)
	case entity.PlayDoublePlay:
		result.Advances = doublePlay(in)
	case entity.PlayFieldersChoice:
		result.Advances = fieldersChoice(in, rng)
	default:
		result.Kind = entity.PlayOut
		result = out(in, result, rng)
	}

	return settle(in, result)
}

// settle counts outs and runs. When the third out comes on a play that is
// not a hit, no run scores on it.
func settle(in Input, result entity.PlayResult) entity.PlayResult {
	outs := 0
	for _, adv := range result.Advances {
		if adv.Out {
			outs++
		}
	}
	result.Outs = outs

	// two outs on one play is a double play whatever route the runners took
	if outs > 1 && result.Kind != entity.PlayDoublePlay && !result.Kind.IsHit() {
		result.Kind = entity.PlayDoublePlay
		result.Description += ", double play"
	}

	if in.Outs+outs >= entity.MaxOuts && !result.Kind.IsHit() {
		kept := result.Advances[:0:0]
		for _, adv := range result.Advances {
			if !adv.Scored() {
				kept = append(kept, adv)
			}
		}
		result.Advances = kept
	}

	result.Runs = len(result.Scorers())
	switch result.Kind {
	case entity.PlayError, entity.PlayDoublePlay:
		result.RBI = 0
	default:
		result.RBI = result.Runs
	}

	if result.Runs > 0 && result.Kind != entity.PlayHomeRun {
		result.Description = fmt.Sprintf("%s, %d run(s) score", result.Description, result.Runs)
	}
	return result
}

func homeRun(in Input) []entity.Advance {
	advances := []entity.Advance{move(in.Batter, entity.BaseBatter, entity.BaseHome, false)}
	for _, base := range []entity.Base{entity.BaseThird, entity.BaseSecond, entity.BaseFirst} {
		if adv, ok := in.Runners.Moves(base, entity.BaseHome, false); ok {
			advances = append(advances, adv)
		}
	}
	return advances
}

func triple(in Input) []entity.Advance {
	advances := []entity.Advance{move(in.Batter, entity.BaseBatter, entity.BaseThird, false)}
	for _, base := range []entity.Base{entity.BaseThird, entity.BaseSecond, entity.BaseFirst} {
		if adv, ok := in.Runners.Moves(base, entity.BaseHome, false); ok {
			advances = append(advances, adv)
		}
	}
	return advances
}

func (that Input) arm() float64 {
	if that.Fielding.Arm <= 0 {
		return ability.NeutralRating
	}
	return that.Fielding.Arm
}

// sendChance is how likely a runner is to try for an extra base.
func (that Input) sendChance(base float64, runner entity.Runner) float64 {
	pace := that.Abilities.Of(runner.ID).pace()
	return base + (pace-ability.NeutralRating)*0.5 +
		float64(that.Ball.Strength.Level())*5 +
		that.Modifiers.ExtraBase
}

// safeChance is how likely the runner beats the throw.
func (that Input) safeChance(base float64, runner entity.Runner) float64 {
	pace := that.Abilities.Of(runner.ID).pace()
	return base + (pace-ability.NeutralRating)*0.4 - (that.arm()-ability.NeutralRating)*0.4
}

func double(in Input, rng dice.Source) []entity.Advance {
	advances := []entity.Advance{move(in.Batter, entity.BaseBatter, entity.BaseSecond, false)}
	for _, base := range []entity.Base{entity.BaseThird, entity.BaseSecond} {
		if adv, ok := in.Runners.Moves(base, entity.BaseHome, false); ok {
			advances = append(advances, adv)
		}
	}

	if first := in.Runners.First; first != nil {
		try := in.sendChance(40, *first)
		success := in.safeChance(70, *first)
		if in.HitAndRun {
			try += 25
			success += 10
		}
		advances = append(advances, runExtras(rng, in.Outs, []extra{{
			runner: *first, from: entity.BaseFirst, safe: entity.BaseThird, target: entity.BaseHome,
			try: try, success: success,
		}})...)
	}

	return advances
}

func single(in Input, rng dice.Source) []entity.Advance {
	advances := []entity.Advance{move(in.Batter, entity.BaseBatter, entity.BaseFirst, false)}
	if adv, ok := in.Runners.Moves(entity.BaseThird, entity.BaseHome, false); ok {
		advances = append(advances, adv)
	}

	var extras []extra
	if second := in.Runners.Second; second != nil {
		extras = append(extras, extra{
			runner: *second, from: entity.BaseSecond, safe: entity.BaseThird, target: entity.BaseHome,
			try: in.sendChance(50, *second), success: in.safeChance(72, *second),
		})
	}
	if first := in.Runners.First; first != nil {
		try := in.sendChance(20, *first)
		success := in.safeChance(75, *first)
		// long throw from right field
		if in.Ball.Direction == entity.DirectionRight || in.Ball.Direction == entity.DirectionRightCenter {
			try += 15
		}
		if in.HitAndRun {
			try += 30
			success += 10
		}
		extras = append(extras, extra{
			runner: *first, from: entity.BaseFirst, safe: entity.BaseSecond, target: entity.BaseThird,
			try: try, success: success,
		})
	}

	return append(advances, runExtras(rng, in.Outs, extras)...)
}

// ErrorAdvances is the advancement table for each error type. A throwing error
// moves everyone two bases; a dropped fly lets runners going on contact with
// two outs take two.
func ErrorAdvances(kind entity.ErrorKind, batter entity.Runner, runners entity.RunnerState, outs int) []entity.Advance {
	batterTo, runnerBases := entity.BaseFirst, 1
	switch kind {
	case entity.ErrorThrowing:
		batterTo, runnerBases = entity.BaseSecond, 2
	case entity.ErrorDroppedFly:
		if outs == entity.MaxOuts-1 {
			runnerBases = 2
		}
	}

	advances := []entity.Advance{move(batter, entity.BaseBatter, batterTo, false)}
	for _, base := range []entity.Base{entity.BaseThird, entity.BaseSecond, entity.BaseFirst} {
		if adv, ok := runners.Moves(base, plus(base, runnerBases), false); ok {
			advances = append(advances, adv)
		}
	}
	return advances
}

// sacFly resolves the tag-up from third. A throw that beats the runner home
// turns the play into a double play; a runner who holds makes it a plain out.
func sacFly(in Input, result entity.PlayResult, rng dice.Source) entity.PlayResult {
	result.Advances = append([]entity.Advance(nil), in.Fielding.Advances...)
	third := in.Runners.Third

	try := 100.0
	if in.Ball.Strength == entity.StrengthWeak {
		try = 40 + (in.Abilities.Of(third.ID).pace()-ability.NeutralRating)*0.5
	}
	success := in.safeChance(70, *third) + float64(in.Ball.Strength.Level())*8

	switch Attempt(rng, try, success) {
	case AttemptSafe:
		result.Advances = append(result.Advances, move(*third, entity.BaseThird, entity.BaseHome, false))
		result.Advances = append(result.Advances, tagFromSecond(in, true, rng)...)
	case AttemptOut:
		result.Kind = entity.PlayDoublePlay
		result.Advances = append(result.Advances, move(*third, entity.BaseThird, entity.BaseHome, true))
		result.Description = fmt.Sprintf("%s, %s thrown out at the plate", result.Description, third.Name)
	default:
		result.Kind = entity.PlayOut
		result.Description = fmt.Sprintf("%s, %s holds", result.Description, third.Name)
	}
	return result
}

// tagFromSecond lets the runner on second tag to third on a caught fly.
func tagFromSecond(in Input, thirdOpen bool, rng dice.Source) []entity.Advance {
	second := in.Runners.Second
	if second == nil || !thirdOpen {
		return nil
	}

	try := 20 + float64(in.Ball.Strength.Level())*15
	if in.Ball.Direction == entity.DirectionRight || in.Ball.Direction == entity.DirectionRightCenter {
		try += 15
	}
	switch Attempt(rng, try, in.safeChance(85, *second)) {
	case AttemptSafe:
		return []entity.Advance{move(*second, entity.BaseSecond, entity.BaseThird, false)}
	case AttemptOut:
		return []entity.Advance{move(*second, entity.BaseSecond, entity.BaseThird, true)}
	default:
		return nil
	}
}

// doublePlay keeps the defense's two outs. On a ground ball the other runners
// move up a base unless the inning is over; on a liner they hold.
func doublePlay(in Input) []entity.Advance {
	advances := append([]entity.Advance(nil), in.Fielding.Advances...)
	if in.Ball.Type != entity.BallGround || in.Outs+2 >= entity.MaxOuts {
		return advances
	}

	outed := outBases(advances)
	for _, base := range []entity.Base{entity.BaseThird, entity.BaseSecond} {
		if outed[base] {
			continue
		}
		if adv, ok := in.Runners.Moves(base, base+1, false); ok {
			advances = append(advances, adv)
		}
	}
	return advances
}

// fieldersChoice keeps the defense's out and the batter on first, pushes the
// remaining forced runners and gives a runner on third the ground-ball read.
func fieldersChoice(in Input, rng dice.Source) []entity.Advance {
	advances := append([]entity.Advance(nil), in.Fielding.Advances...)
	handled := make(map[entity.Base]bool, len(advances))
	for _, adv := range advances {
		handled[adv.From] = true
	}

	for _, forced := range in.Runners.ForcedAdvances() {
		if handled[forced.From] {
			continue
		}
		handled[forced.From] = true
		advances = append(advances, forced)
	}

	thirdOpen := handled[entity.BaseThird] || in.Runners.Third == nil
	if third := in.Runners.Third; third != nil && !handled[entity.BaseThird] {
		adv, scored := groundBallRead(in, *third, rng)
		advances = append(advances, adv...)
		thirdOpen = scored
	}
	if second := in.Runners.Second; second != nil && !handled[entity.BaseSecond] && thirdOpen {
		advances = append(advances, move(*second, entity.BaseSecond, entity.BaseThird, false))
	}
	return advances
}

// out moves runners on an out in the field. Ground outs advance runners
// going on contact; fly outs allow tag-ups. A throw home that cuts down the
// runner from third leaves the batter on first as a fielder's choice.
func out(in Input, result entity.PlayResult, rng dice.Source) entity.PlayResult {
	advances := append([]entity.Advance(nil), in.Fielding.Advances...)
	if len(advances) == 0 {
		advances = []entity.Advance{move(in.Batter, entity.BaseBatter, entity.BaseFirst, true)}
	}
	result.Advances = advances
	if in.Outs+1 >= entity.MaxOuts {
		return result
	}

	if in.Ball.Type != entity.BallGround {
		if in.Fielding.TagUp {
			result.Advances = append(result.Advances, tagFromSecond(in, in.Runners.Third == nil, rng)...)
		}
		return result
	}

	thirdOpen := in.Runners.Third == nil
	if third := in.Runners.Third; third != nil {
		adv, scored := groundBallRead(in, *third, rng)
		if len(adv) == 1 && adv[0].Out {
			return throwHome(in, result, adv[0])
		}
		advances = append(advances, adv...)
		thirdOpen = scored
	}

	if second := in.Runners.Second; second != nil && thirdOpen {
		try := 60.0
		if in.Ball.Direction == entity.DirectionRight || in.Ball.Direction == entity.DirectionRightCenter {
			try += 20
		}
		if dice.Chance(rng, try) {
			advances = append(advances, move(*second, entity.BaseSecond, entity.BaseThird, false))
		}
	}

	// runner on first is off with contact and reaches second on the throw to first
	if first := in.Runners.First; first != nil && (in.Runners.Second == nil || movedFrom(advances, entity.BaseSecond)) {
		advances = append(advances, move(*first, entity.BaseFirst, entity.BaseSecond, false))
	}

	result.Advances = advances
	return result
}

// throwHome turns a ground out into a fielder's choice: the runner from
// third is out at the plate, the batter takes first and forced runners move up.
func throwHome(in Input, result entity.PlayResult, home entity.Advance) entity.PlayResult {
	advances := []entity.Advance{home, move(in.Batter, entity.BaseBatter, entity.BaseFirst, false)}
	for _, forced := range in.Runners.ForcedAdvances() {
		if forced.From != entity.BaseThird {
			advances = append(advances, forced)
		}
	}

	result.Kind = entity.PlayFieldersChoice
	result.Advances = advances
	result.Description = fmt.Sprintf("%s thrown out at the plate, %s safe at first", home.Name, in.Batter.Name)
	return result
}

// groundBallRead decides whether the runner on third breaks for home on a
// ground ball. It reports whether third base is free afterwards.
func groundBallRead(in Input, third entity.Runner, rng dice.Source) ([]entity.Advance, bool) {
	if in.Outs+in.Fielding.Outs() >= entity.MaxOuts {
		return nil, false
	}

	try := 45 + (in.Abilities.Of(third.ID).pace()-ability.NeutralRating)*0.5
	switch Attempt(rng, try, in.safeChance(80, third)-in.Modifiers.HomeThrow) {
	case AttemptSafe:
		return []entity.Advance{move(third, entity.BaseThird, entity.BaseHome, false)}, true
	case AttemptOut:
		return []entity.Advance{move(third, entity.BaseThird, entity.BaseHome, true)}, true
	default:
		return nil, false
	}
}

func outBases(advances []entity.Advance) map[entity.Base]bool {
	bases := make(map[entity.Base]bool, len(advances))
	for _, adv := range advances {
		if adv.Out {
			bases[adv.From] = true
		}
	}
	return bases
}

func movedFrom(advances []entity.Advance, base entity.Base) bool {
	for _, adv := range advances {
		if adv.From == base && adv.To != base {
			return true
		}
	}
	return false
}
