package running

import (
	"fmt"
	"math"
	"strings"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// Walk awards first base to the batter and pushes forced runners.
func Walk(batter entity.Runner, runners entity.RunnerState, intentional bool) entity.PlayResult {
	advances := []entity.Advance{move(batter, entity.BaseBatter, entity.BaseFirst, false)}
	advances = append(advances, runners.ForcedAdvances()...)

	result := entity.PlayResult{
		Kind:                entity.PlayWalk,
		Advances:            advances,
		EndsPlateAppearance: true,
		Description:         fmt.Sprintf("%s walks", batter.Name),
	}
	if intentional {
		result.Kind = entity.PlayIntentionalWalk
		result.Description = fmt.Sprintf("%s is intentionally walked", batter.Name)
	}

	result.Runs = len(result.Scorers())
	result.RBI = result.Runs
	if result.Runs > 0 {
		result.Description += ", forcing in a run"
	}
	return result
}

type StealInput struct {
	Runners    entity.RunnerState
	Outs       int
	Double     bool
	CatcherArm float64
	Abilities  Abilities
	// Jump is a bonus for runners already moving, as on a hit-and-run.
	Jump float64
}

const (
	minSteal = 5.0
	maxSteal = 95.0
)

// StealChance is the success chance for a runner stealing target.
func StealChance(runner RunnerAbility, catcherArm float64, target entity.Base, jump float64) float64 {
	chance := 65 +
		(runner.Stealing-ability.NeutralRating)*0.5 +
		(runner.Speed-ability.NeutralRating)*0.2 -
		(ability.Clamp(catcherArm)-ability.NeutralRating)*0.5 +
		jump

	switch target {
	case entity.BaseThird:
		chance -= 10
	case entity.BaseHome:
		chance -= 25
	}
	return math.Max(minSteal, math.Min(maxSteal, chance))
}

// ResolveSteal sends the lead eligible runner, or on a double steal both
// runners. The catcher throws at one runner picked by ThrowTarget. It returns
// false when no runner can steal.
func ResolveSteal(in StealInput, rng dice.Source) (entity.PlayResult, bool) {
	var stealers []extra

	add := func(from entity.Base) {
		runner := in.Runners.At(from)
		if runner == nil || in.Runners.Occupied(from+1) && from+1 != entity.BaseHome {
			return
		}
		stealers = append(stealers, extra{
			runner:  *runner,
			from:    from,
			safe:    from,
			target:  from + 1,
			success: StealChance(in.Abilities.Of(runner.ID), in.CatcherArm, from+1, in.Jump),
		})
	}

	if in.Double {
		switch {
		case in.Runners.First != nil && in.Runners.Second != nil && in.Runners.Third == nil:
			stealers = append(stealers,
				extra{runner: *in.Runners.Second, from: entity.BaseSecond, target: entity.BaseThird,
					success: StealChance(in.Abilities.Of(in.Runners.Second.ID), in.CatcherArm, entity.BaseThird, in.Jump)},
				extra{runner: *in.Runners.First, from: entity.BaseFirst, target: entity.BaseSecond,
					success: StealChance(in.Abilities.Of(in.Runners.First.ID), in.CatcherArm, entity.BaseSecond, in.Jump)},
			)
		case in.Runners.First != nil && in.Runners.Third != nil && in.Runners.Second == nil:
			stealers = append(stealers,
				extra{runner: *in.Runners.Third, from: entity.BaseThird, target: entity.BaseHome,
					success: StealChance(in.Abilities.Of(in.Runners.Third.ID), in.CatcherArm, entity.BaseHome, in.Jump)},
				extra{runner: *in.Runners.First, from: entity.BaseFirst, target: entity.BaseSecond,
					success: StealChance(in.Abilities.Of(in.Runners.First.ID), in.CatcherArm, entity.BaseSecond, in.Jump)},
			)
		}
	}

	if len(stealers) == 0 {
		target, ok := entity.InstructionContext{Runners: in.Runners}.StealTarget()
		if !ok {
			return entity.PlayResult{}, false
		}
		add(target - 1)
	}

	if len(stealers) == 0 {
		return entity.PlayResult{}, false
	}

	chances := make([]float64, len(stealers))
	for i, s := range stealers {
		chances[i] = s.success
	}
	thrownAt := ThrowTarget(in.Outs, chances)

	result := entity.PlayResult{Kind: entity.PlayStolenBase, Fielder: entity.PositionCatcher}
	var caught, safe []string
	for i, s := range stealers {
		if i == thrownAt && !dice.Chance(rng, s.success) {
			result.Advances = append(result.Advances, move(s.runner, s.from, s.target, true))
			caught = append(caught, s.runner.Name)
			continue
		}
		result.Advances = append(result.Advances, move(s.runner, s.from, s.target, false))
		safe = append(safe, fmt.Sprintf("%s steals %s", s.runner.Name, s.target))
	}

	result.Outs = len(caught)
	if result.Outs > 0 {
		result.Kind = entity.PlayCaughtStealing
	}

	// runs on a steal of home do not count if the other runner is the third out
	if in.Outs+result.Outs < entity.MaxOuts {
		result.Runs = len(result.Scorers())
	} else {
		kept := result.Advances[:0:0]
		for _, adv := range result.Advances {
			if !adv.Scored() {
				kept = append(kept, adv)
			}
		}
		result.Advances = kept
	}

	result.Description = describeSteal(safe, caught)
	return result, true
}

func describeSteal(safe, caught []string) string {
	parts := append([]string(nil), safe...)
	for _, name := range caught {
		parts = append(parts, fmt.Sprintf("%s caught stealing", name))
	}
	return strings.Join(parts, ", ")
}
