// Package tactics is the CPU manager. It reads a snapshot of the game and
// returns an instruction with a one-line reason; it never touches game state.
package tactics

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/running"
)

// LateInning is where managers start playing for one run.
const LateInning = 7

// Situation is everything a manager looks at before an instruction.
type Situation struct {
	Inning  int
	Half    entity.Half
	Outs    int
	Runners entity.RunnerState
	Count   entity.Count
	// Lead is the deciding team's run differential; negative when trailing.
	Lead   int
	Batter ability.Batting
	// OnDeck is the next hitter, nil when unknown.
	OnDeck         *ability.Batting
	Pitcher        ability.Pitching
	PitchCount     int
	Fatigue        entity.FatigueLevel
	RunnerAbility  running.Abilities
	Shift          entity.DefensiveShift
	RelieversReady int
	Difficulty     entity.Difficulty
}

func (that Situation) Late() bool {
	return that.Inning >= LateInning
}

func (that Situation) Close() bool {
	return that.Lead >= -1 && that.Lead <= 1
}

func (that Situation) Context() entity.InstructionContext {
	return entity.InstructionContext{
		Outs:           that.Outs,
		Runners:        that.Runners,
		Shift:          that.Shift,
		RelieversReady: that.RelieversReady,
	}
}

// SituationFor builds the snapshot for the manager of side. Missing batters
// or pitchers are read as neutral players.
func SituationFor(state entity.GameState, side entity.Side) Situation {
	batting := state.Batting()
	fielding := state.Fielding()

	lead := state.Runs(side) - state.Runs(side.Other())
	difficulty := state.Team(side).Difficulty

	s := Situation{
		Inning:         state.Inning,
		Half:           state.Half,
		Outs:           state.Outs,
		Runners:        state.Runners,
		Lead:           lead,
		Batter:         ability.NeutralBatting(),
		Pitcher:        ability.NeutralPitching(),
		Fatigue:        entity.FatigueFresh,
		Shift:          state.Shift,
		RelieversReady: len(fielding.Relievers()),
		Difficulty:     difficulty,
		RunnerAbility:  running.AbilitiesOf(*batting),
	}
	if state.AtBat != nil {
		s.Count = state.AtBat.Count
	}

	pitcher, hasPitcher := fielding.Player(fielding.PitcherID())
	batter, hasBatter := batting.Player(batting.CurrentBatterID())

	throws := entity.HandRight
	if hasPitcher {
		throws = pitcher.Rating.Throws
	}
	if hasBatter {
		s.Batter = ability.EffectiveBatting(batter, throws)
	}
	if next, ok := batting.Player(batting.OnDeckID()); ok {
		onDeck := ability.EffectiveBatting(next, throws)
		s.OnDeck = &onDeck
	}
	if hasPitcher {
		s.Pitcher = ability.EffectivePitching(pitcher, s.Batter.Bats)
		s.PitchCount = pitcher.Pitching.PitchCount
		s.Fatigue = ability.FatigueLevelFor(pitcher.Pitching.PitchCount, s.Pitcher.Stamina)
	}

	return s
}

// MistakeRate is the chance in percent that a manager overrides its pick
// with another viable option.
func MistakeRate(difficulty entity.Difficulty) float64 {
	switch difficulty {
	case entity.DifficultyBeginner:
		return 30
	case entity.DifficultyIntermediate:
		return 15
	case entity.DifficultyAdvanced:
		return 7
	case entity.DifficultyExpert:
		return 1
	default:
		return 15
	}
}

// pickOne draws a uniform index below n.
func pickOne(rng dice.Source, n int) int {
	idx := int(rng.Roll() / 100 * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}
