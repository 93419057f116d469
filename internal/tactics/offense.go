package tactics

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/running"
)

// Weight is one candidate instruction's score. Viable candidates pass every
// hard rule and may be chosen by mistake even with zero weight.
type Weight struct {
	Instruction entity.OffensiveInstruction
	Weight      float64
	Viable      bool
	Reason      string
}

// OffensiveWeights scores every offensive instruction.
//
// Hard rules: no bunt or squeeze with two outs, no steal of any kind when
// trailing by five or more, and a squeeze needs a runner on third, fewer than
// two outs and a batter and runner who can execute it.
func OffensiveWeights(s Situation) []Weight {
	ctx := s.Context()
	weights := make([]Weight, 0, len(entity.OffensiveInstructions))

	for _, instruction := range entity.OffensiveInstructions {
		w := Weight{Instruction: instruction, Viable: instruction.Valid(ctx)}
		if w.Viable {
			w.Viable = allowed(s, instruction)
		}
		if w.Viable {
			w.Weight, w.Reason = score(s, instruction)
			w.Weight = math.Max(0, w.Weight)
		}
		weights = append(weights, w)
	}

	return weights
}

func allowed(s Situation, instruction entity.OffensiveInstruction) bool {
	switch instruction {
	case entity.OffenseBunt:
		return s.Outs < entity.MaxOuts-1
	case entity.OffenseSqueeze:
		if s.Outs >= entity.MaxOuts-1 || s.Runners.Third == nil {
			return false
		}
		runner := s.RunnerAbility.Of(s.Runners.Third.ID)
		return s.Batter.Bunt >= ability.NeutralRating && runner.Speed >= ability.NeutralRating
	case entity.OffenseSteal, entity.OffenseDoubleSteal:
		return s.Lead > -5
	case entity.OffenseHitAndRun:
		return s.Outs < entity.MaxOuts-1
	default:
		return true
	}
}

func leadRunner(s Situation) running.RunnerAbility {
	target, ok := s.Context().StealTarget()
	if !ok {
		return running.NeutralRunner()
	}
	runner := s.Runners.At(target - 1)
	if runner == nil {
		return running.NeutralRunner()
	}
	return s.RunnerAbility.Of(runner.ID)
}

func score(s Situation, instruction entity.OffensiveInstruction) (float64, string) {
	neutral := ability.NeutralRating
	b := s.Batter

	switch instruction {
	case entity.OffenseNormalSwing:
		return 60 + (b.Power-neutral)*0.3, "Let the hitter swing away"
	case entity.OffenseWait:
		w := 8 + (b.Eye-neutral)*0.15 - (s.Pitcher.Control-neutral)*0.2
		if s.Count.Balls >= 2 && s.Count.Strikes < 2 {
			w += 15
			return w, fmt.Sprintf("Ahead %d-%d, make the pitcher throw a strike", s.Count.Balls, s.Count.Strikes)
		}
		return w, "Take a pitch and see what the pitcher has"
	case entity.OffenseBunt:
		if s.Runners.Empty() {
			return 1 + (b.Speed-neutral)*0.1, "Bunt for a hit"
		}
		w := 6 - (b.Power-neutral)*0.3 - (b.Contact-neutral)*0.15
		if s.Late() && s.Close() {
			w += 20
			return w, "Late and close, bunt the runner over"
		}
		return w, "Sacrifice to move the runner into scoring position"
	case entity.OffenseSteal:
		r := leadRunner(s)
		w := 6 + (r.Stealing-neutral)*0.4 + (r.Speed-neutral)*0.2
		return w, "Fast runner on, send the runner"
	case entity.OffenseHitAndRun:
		w := 5 + (b.Contact-neutral)*0.3 + (b.AvoidStrikeout-neutral)*0.1
		return w, "Contact hitter up, start the runner"
	case entity.OffenseSqueeze:
		w := 4 + (b.Bunt-neutral)*0.2
		if s.Late() && s.Close() {
			w += 14
			return w, "Late and close, squeeze the run home"
		}
		return w, "Squeeze play with a runner on third"
	case entity.OffenseDoubleSteal:
		r := leadRunner(s)
		return 2 + (r.Stealing-neutral)*0.2, "Double steal to put pressure on the catcher"
	default:
		return 0, ""
	}
}

// DecideOffense samples an instruction by weight. A manager may then make a
// mistake and switch to another viable instruction at random.
func DecideOffense(s Situation, rng dice.Source) entity.OffensiveDecision {
	weights := OffensiveWeights(s)

	values := make([]float64, len(weights))
	for i, w := range weights {
		values[i] = w.Weight
	}

	chosen := dice.Pick(rng, values)
	if chosen < 0 {
		return entity.OffensiveDecision{
			Instruction: entity.OffenseNormalSwing,
			Reason:      "Nothing better available, swing away",
			Source:      entity.ControllerCPU,
		}
	}

	decision := entity.OffensiveDecision{
		Instruction: weights[chosen].Instruction,
		Reason:      weights[chosen].Reason,
		Source:      entity.ControllerCPU,
	}

	if dice.Chance(rng, MistakeRate(s.Difficulty)) {
		var alternatives []Weight
		for i, w := range weights {
			if w.Viable && i != chosen {
				alternatives = append(alternatives, w)
			}
		}
		if len(alternatives) > 0 {
			alt := alternatives[pickOne(rng, len(alternatives))]
			decision.Instruction = alt.Instruction
			decision.Reason = fmt.Sprintf("Hunch: %s", describeOffense(alt.Instruction))
		}
	}

	return decision
}

func describeOffense(instruction entity.OffensiveInstruction) string {
	switch instruction {
	case entity.OffenseNormalSwing:
		return "swing away"
	case entity.OffenseWait:
		return "take a pitch"
	case entity.OffenseBunt:
		return "lay one down"
	case entity.OffenseSteal:
		return "send the runner"
	case entity.OffenseHitAndRun:
		return "hit and run"
	case entity.OffenseSqueeze:
		return "squeeze"
	case entity.OffenseDoubleSteal:
		return "double steal"
	default:
		return string(instruction)
	}
}
