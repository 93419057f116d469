// Package running moves runners after the defense has ruled on a ball in
// play, and resolves walks and stolen-base attempts.
//
// Guaranteed advancement comes from fixed tables per hit type. Anything beyond
// that is an Attempt: the runner decides whether to go, then the throw decides
// whether the runner makes it. Every attempt ends safe, out or stopped.
package running

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// RunnerAbility is what a runner brings to the bases.
type RunnerAbility struct {
	Speed       float64
	Stealing    float64
	Baserunning float64
}

// Abilities maps runner ids to their running numbers.
type Abilities map[string]RunnerAbility

func NeutralRunner() RunnerAbility {
	return RunnerAbility{Speed: ability.NeutralRating, Stealing: ability.NeutralRating, Baserunning: ability.NeutralRating}
}

// AbilitiesOf collects the running numbers of every player on a team.
func AbilitiesOf(team entity.TeamInGame) Abilities {
	abilities := make(Abilities, len(team.Players))
	for id, player := range team.Players {
		abilities[id] = RunnerAbility{
			Speed:       ability.Rating(player.Rating.Running.Speed),
			Stealing:    ability.Rating(player.Rating.Running.Stealing),
			Baserunning: ability.Rating(player.Rating.Running.Baserunning),
		}
	}
	return abilities
}

// Of returns a runner's numbers, neutral for unknown ids.
func (that Abilities) Of(id string) RunnerAbility {
	if a, ok := that[id]; ok {
		return a
	}
	return NeutralRunner()
}

// pace blends raw speed with baserunning instincts.
func (that RunnerAbility) pace() float64 {
	return ability.Average(that.Speed, that.Speed, that.Baserunning)
}

type AttemptResult string

const (
	AttemptStop AttemptResult = "stop"
	AttemptSafe AttemptResult = "safe"
	AttemptOut  AttemptResult = "out"
)

// Attempt rolls the two stages of an extra-base try.
func Attempt(rng dice.Source, try, success float64) AttemptResult {
	if !dice.Chance(rng, ability.ClampPercent(try)) {
		return AttemptStop
	}
	if dice.Chance(rng, ability.ClampPercent(success)) {
		return AttemptSafe
	}
	return AttemptOut
}

// ThrowTarget picks which advancing runner the defense throws at, given each
// runner's success chance ordered lead runner first. With fewer than two outs
// the lead runner is the target; with two outs the defense takes the easiest out.
func ThrowTarget(outs int, success []float64) int {
	if len(success) == 0 {
		return -1
	}
	if outs < entity.MaxOuts-1 {
		return 0
	}

	target := 0
	for i, chance := range success {
		if chance < success[target] {
			target = i
		}
	}
	return target
}

// extra is an advancing runner beyond the guaranteed base.
type extra struct {
	runner  entity.Runner
	from    entity.Base
	safe    entity.Base
	target  entity.Base
	try     float64
	success float64
}

// runExtras rolls every runner's decision to go, lead runner first, then
// resolves one throw at the runner chosen by ThrowTarget. A runner who stops
// blocks everyone behind him. Runners not thrown at take their base.
func runExtras(rng dice.Source, outs int, extras []extra) []entity.Advance {
	var going []extra
	var advances []entity.Advance
	blocked := false

	for _, e := range extras {
		if !blocked && dice.Chance(rng, ability.ClampPercent(e.try)) {
			going = append(going, e)
			continue
		}
		blocked = true
		advances = append(advances, move(e.runner, e.from, e.safe, false))
	}

	if len(going) == 0 {
		return advances
	}

	chances := make([]float64, len(going))
	for i, e := range going {
		chances[i] = e.success
	}
	target := ThrowTarget(outs, chances)

	for i, e := range going {
		if i == target && !dice.Chance(rng, ability.ClampPercent(e.success)) {
			advances = append(advances, move(e.runner, e.from, e.target, true))
			continue
		}
		advances = append(advances, move(e.runner, e.from, e.target, false))
	}

	return advances
}

func move(runner entity.Runner, from, to entity.Base, out bool) entity.Advance {
	return entity.Advance{RunnerID: runner.ID, Name: runner.Name, From: from, To: to, Out: out}
}

func plus(base entity.Base, n int) entity.Base {
	next := base + entity.Base(n)
	if next > entity.BaseHome {
		return entity.BaseHome
	}
	return next
}
