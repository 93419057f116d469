package tactics

import (
	"fmt"
	"sort"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/shift"
)

// MaxWalkGap is the run gap from which an intentional walk is never issued.
const MaxWalkGap = 5

// PitcherChangeChance grows with pitch count and fatigue. Below 70 pitches a
// fresh starter is left in.
func PitcherChangeChance(s Situation) float64 {
	if s.RelieversReady == 0 {
		return 0
	}

	chance := 0.0
	if s.PitchCount >= 70 {
		chance = float64(s.PitchCount-70) * 2.5
	}
	switch s.Fatigue {
	case entity.FatigueTired:
		chance += 15
	case entity.FatigueExhausted:
		chance += 40
	}
	return ability.ClampPercent(chance)
}

// IntentionalWalkChance is zero unless first base is open, a runner is in
// scoring position, it is late, and the batter is dangerous. A walk that only
// brings up an equal or better hitter is never issued.
func IntentionalWalkChance(s Situation) float64 {
	gap := s.Lead
	if gap < 0 {
		gap = -gap
	}
	if gap >= MaxWalkGap {
		return 0
	}
	if s.Runners.First != nil || !s.Runners.InScoringPosition() || !s.Late() {
		return 0
	}
	if s.OnDeck != nil && s.OnDeck.Power >= s.Batter.Power {
		return 0
	}

	switch {
	case s.Batter.Power >= 80:
		return 40
	case s.Batter.Power >= 70:
		return 20
	default:
		return 0
	}
}

// ShiftFor picks the alignment the manager wants for this batter.
func ShiftFor(s Situation) (entity.DefensiveShift, string) {
	if s.Runners.Third != nil && s.Outs < entity.MaxOuts-1 && s.Late() && s.Close() {
		return entity.ShiftInfieldIn, "Infield in to cut the run at the plate"
	}

	recommended := shift.Recommended(s.Batter.Bats, s.Batter.Power)
	switch recommended {
	case entity.ShiftExtreme:
		return recommended, "Dead pull hitter, overload the pull side"
	case entity.ShiftPullLeft, entity.ShiftPullRight:
		return recommended, "Shade the infield toward the pull side"
	}

	if s.Lead > 0 && s.Late() && s.Runners.Empty() {
		return entity.ShiftInfieldBack, "Protect the lines and take away the extra base"
	}
	return entity.ShiftNormal, "Straight up"
}

// DecideDefense runs the gates in order: pitcher change, intentional walk,
// shift change, and otherwise normal. A manager may then make a mistake and
// switch to another viable defensive instruction at random.
func DecideDefense(s Situation, relievers []entity.PlayerInGame, rng dice.Source) entity.DefensiveDecision {
	decision := bestDefense(s, relievers, rng)
	if !dice.Chance(rng, MistakeRate(s.Difficulty)) {
		return decision
	}

	alternatives := defensiveAlternatives(s, relievers, decision)
	if len(alternatives) == 0 {
		return decision
	}
	alt := alternatives[pickOne(rng, len(alternatives))]
	alt.Reason = fmt.Sprintf("Hunch: %s", alt.Reason)
	return alt
}

func bestDefense(s Situation, relievers []entity.PlayerInGame, rng dice.Source) entity.DefensiveDecision {
	if entity.DefensePitcherChange.Valid(s.Context()) && dice.Chance(rng, PitcherChangeChance(s)) {
		if reliever, ok := BestReliever(relievers); ok {
			return entity.DefensiveDecision{
				Instruction: entity.DefensePitcherChange,
				RelieverID:  reliever.Rating.ID,
				Reason:      fmt.Sprintf("Starter at %d pitches and %s, bring in %s", s.PitchCount, s.Fatigue, reliever.Rating.Name),
				Source:      entity.ControllerCPU,
			}
		}
	}

	if dice.Chance(rng, IntentionalWalkChance(s)) {
		return entity.DefensiveDecision{
			Instruction: entity.DefenseIntentionalWalk,
			Reason:      "First base open and a slugger up, walk the batter",
			Source:      entity.ControllerCPU,
		}
	}

	if want, reason := ShiftFor(s); want != s.Shift && dice.Chance(rng, 70) {
		return entity.DefensiveDecision{
			Instruction: entity.DefenseShiftChange,
			Shift:       want,
			Reason:      reason,
			Source:      entity.ControllerCPU,
		}
	}

	return entity.DefensiveDecision{
		Instruction: entity.DefenseNormal,
		Reason:      "Pitch to the batter",
		Source:      entity.ControllerCPU,
	}
}

// defensiveAlternatives lists every viable decision other than chosen. An
// intentional walk stays off the table with first base taken or a gap of
// MaxWalkGap runs.
func defensiveAlternatives(s Situation, relievers []entity.PlayerInGame, chosen entity.DefensiveDecision) []entity.DefensiveDecision {
	var alternatives []entity.DefensiveDecision
	add := func(d entity.DefensiveDecision) {
		d.Source = entity.ControllerCPU
		alternatives = append(alternatives, d)
	}

	if chosen.Instruction != entity.DefenseNormal {
		add(entity.DefensiveDecision{Instruction: entity.DefenseNormal, Reason: "pitch to the batter"})
	}

	if chosen.Instruction != entity.DefensePitcherChange && entity.DefensePitcherChange.Valid(s.Context()) {
		if reliever, ok := BestReliever(relievers); ok {
			add(entity.DefensiveDecision{
				Instruction: entity.DefensePitcherChange,
				RelieverID:  reliever.Rating.ID,
				Reason:      fmt.Sprintf("go to %s now", reliever.Rating.Name),
			})
		}
	}

	gap := s.Lead
	if gap < 0 {
		gap = -gap
	}
	if chosen.Instruction != entity.DefenseIntentionalWalk && gap < MaxWalkGap && s.Runners.First == nil {
		add(entity.DefensiveDecision{Instruction: entity.DefenseIntentionalWalk, Reason: "put the batter on"})
	}

	for _, candidate := range entity.Shifts {
		if candidate == s.Shift || (chosen.Instruction == entity.DefenseShiftChange && candidate == chosen.Shift) {
			continue
		}
		add(entity.DefensiveDecision{
			Instruction: entity.DefenseShiftChange,
			Shift:       candidate,
			Reason:      fmt.Sprintf("try the %s alignment", candidate),
		})
	}

	return alternatives
}

// BestReliever picks the rested pitcher with the best stuff and control.
func BestReliever(relievers []entity.PlayerInGame) (entity.PlayerInGame, bool) {
	if len(relievers) == 0 {
		return entity.PlayerInGame{}, false
	}

	ranked := append([]entity.PlayerInGame(nil), relievers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return relieverScore(ranked[i]) > relieverScore(ranked[j])
	})
	return ranked[0], true
}

func relieverScore(player entity.PlayerInGame) float64 {
	pitching, ok := player.Rating.Pitching()
	if !ok {
		return 0
	}
	fatigue := ability.FatigueMultiplier(player.Pitching.PitchCount, ability.Rating(pitching.Stamina))
	return (ability.Rating(pitching.Stuff) + ability.Rating(pitching.Control) + ability.Rating(pitching.Movement)) * fatigue
}
