package defense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/shift"
)

var batter = entity.Runner{ID: "bat", Name: "Batter"}

func uniformAlignment(rangeRating float64) Alignment {
	alignment := Alignment{}
	for _, pos := range entity.FieldPositions {
		alignment[pos] = Fielder{
			Position: pos,
			PlayerID: string(pos),
			Ability:  ability.Fielding{Range: rangeRating, Arm: 50, ErrorResistance: 70, TurnDoublePlay: 50},
		}
	}
	return alignment
}

func groundBall(dir entity.Direction, strength entity.Strength) entity.BatBallInfo {
	return entity.BatBallInfo{Type: entity.BallGround, Direction: dir, Strength: strength, PullSide: entity.DirectionLeft}
}

func TestResolve_WeakGrounderIsUsuallyAnOut(t *testing.T) {
	// Given: bases empty, a weak grounder to short and an average fielder
	const trials = 20000
	rng := dice.NewSeeded(3)
	in := Input{
		Ball:        groundBall(entity.DirectionLeftCenter, entity.StrengthWeak),
		Batter:      batter,
		BatterSpeed: ability.NeutralRating,
		Shift:       entity.ShiftNormal,
		Alignment:   uniformAlignment(70),
	}

	// When: the play is resolved many times
	outs := 0
	for range trials {
		if Resolve(in, rng).Kind == entity.PlayOut {
			outs++
		}
	}

	// Then: more than half end in an out
	assert.Greater(t, float64(outs)/trials, 0.5)
}

func TestResolve_ExtremeShiftTakesAwayPulledGrounders(t *testing.T) {
	const trials = 20000
	alignment := uniformAlignment(85)
	ball := groundBall(entity.DirectionLeft, entity.StrengthMedium)

	hitRate := func(s entity.DefensiveShift) float64 {
		rng := dice.NewSeeded(8)
		in := Input{
			Ball:        ball,
			Batter:      batter,
			BatterSpeed: ability.NeutralRating,
			Shift:       s,
			Modifiers:   shift.Compute(s, ball.PullSide, alignment.InfieldRange()),
			Alignment:   alignment,
		}
		hits := 0
		for range trials {
			if Resolve(in, rng).Kind.IsHit() {
				hits++
			}
		}
		return float64(hits) / trials
	}

	normal := hitRate(entity.ShiftNormal)
	extreme := hitRate(entity.ShiftExtreme)

	// Then: at least ten points fewer hits
	assert.Less(t, extreme, normal-0.10)
}

func TestResolve_PinnedPlays(t *testing.T) {
	runnerOnFirst := entity.RunnerState{First: &entity.Runner{ID: "r1", Name: "One"}}
	runnerOnThird := entity.RunnerState{Third: &entity.Runner{ID: "r3", Name: "Three"}}

	t.Run("Double play with a force at second", func(t *testing.T) {
		// Given: catch, no infield hit, no error, double play turned
		in := Input{
			Ball:        groundBall(entity.DirectionLeftCenter, entity.StrengthMedium),
			Batter:      batter,
			BatterSpeed: ability.NeutralRating,
			Runners:     runnerOnFirst,
			Shift:       entity.ShiftNormal,
			Alignment:   uniformAlignment(70),
		}

		out := Resolve(in, dice.NewSequence(0, 99, 99, 0))

		require.Equal(t, entity.PlayDoublePlay, out.Kind)
		assert.Equal(t, 2, out.Outs())
		assert.Equal(t, entity.PositionShortstop, out.Primary)
		assert.Equal(t, entity.PositionSecondBase, out.Assist)
		assert.Contains(t, out.Advances, entity.Advance{RunnerID: "r1", Name: "One", From: entity.BaseFirst, To: entity.BaseSecond, Out: true})
	})

	t.Run("Fly with a runner on third is a sacrifice fly", func(t *testing.T) {
		in := Input{
			Ball:      entity.BatBallInfo{Type: entity.BallFly, Direction: entity.DirectionCenter, Strength: entity.StrengthMedium},
			Batter:    batter,
			Runners:   runnerOnThird,
			Outs:      1,
			Shift:     entity.ShiftNormal,
			Alignment: uniformAlignment(70),
		}

		out := Resolve(in, dice.NewSequence(0, 99))

		assert.Equal(t, entity.PlaySacFly, out.Kind)
		assert.True(t, out.TagUp)
		assert.Equal(t, entity.PositionCenterField, out.Primary)
		assert.Equal(t, 1, out.Outs())
	})

	t.Run("Very strong fly with full potential leaves the park", func(t *testing.T) {
		in := Input{
			Ball: entity.BatBallInfo{
				Type: entity.BallFly, Direction: entity.DirectionLeft, Strength: entity.StrengthVeryStrong, ExtraBasePotential: 100,
			},
			Batter:    batter,
			Shift:     entity.ShiftNormal,
			Alignment: uniformAlignment(70),
		}

		out := Resolve(in, dice.NewSequence(0))

		assert.Equal(t, entity.PlayHomeRun, out.Kind)
		assert.Zero(t, out.Outs())
	})

	t.Run("Infield in cuts the run down at home", func(t *testing.T) {
		alignment := uniformAlignment(70)
		ball := groundBall(entity.DirectionLeftCenter, entity.StrengthStrong)
		in := Input{
			Ball:      ball,
			Batter:    batter,
			Runners:   runnerOnThird,
			Shift:     entity.ShiftInfieldIn,
			Modifiers: shift.Compute(entity.ShiftInfieldIn, ball.PullSide, alignment.InfieldRange()),
			Alignment: alignment,
		}

		// catch, no error, home throw
		out := Resolve(in, dice.NewSequence(0, 99, 0))

		require.Equal(t, entity.PlayFieldersChoice, out.Kind)
		assert.Contains(t, out.Advances, entity.Advance{RunnerID: "r3", Name: "Three", From: entity.BaseThird, To: entity.BaseHome, Out: true})
		assert.Equal(t, 1, out.Outs())
	})

	t.Run("Missing fielder falls back to a heuristic", func(t *testing.T) {
		in := Input{
			Ball:      groundBall(entity.DirectionLeft, entity.StrengthMedium),
			Batter:    batter,
			Shift:     entity.ShiftNormal,
			Alignment: Alignment{},
		}

		out := Resolve(in, dice.NewSequence(99))

		assert.True(t, out.Fallback)
		assert.Equal(t, entity.PlayOut, out.Kind)
		assert.Equal(t, entity.PositionThirdBase, out.Primary)
		assert.InDelta(t, ability.NeutralRating, out.Arm, 0)
	})
}

func TestResolve_OutcomeKinds(t *testing.T) {
	allowed := map[entity.PlayKind]bool{
		entity.PlayOut: true, entity.PlayDoublePlay: true, entity.PlaySingle: true, entity.PlayDouble: true,
		entity.PlayTriple: true, entity.PlayHomeRun: true, entity.PlayError: true, entity.PlaySacFly: true,
		entity.PlayFieldersChoice: true,
	}
	rng := dice.NewSeeded(21)
	alignment := uniformAlignment(60)
	loaded := entity.RunnerState{
		First: &entity.Runner{ID: "r1"}, Second: &entity.Runner{ID: "r2"}, Third: &entity.Runner{ID: "r3"},
	}

	for _, ballType := range []entity.BallType{entity.BallGround, entity.BallFly, entity.BallLiner} {
		for _, dir := range entity.Directions {
			for _, strength := range []entity.Strength{entity.StrengthWeak, entity.StrengthMedium, entity.StrengthStrong, entity.StrengthVeryStrong} {
				for _, s := range entity.Shifts {
					ball := entity.BatBallInfo{Type: ballType, Direction: dir, Strength: strength, ExtraBasePotential: 60, PullSide: entity.DirectionRight}
					in := Input{
						Ball: ball, Batter: batter, Runners: loaded, Outs: 1, Shift: s,
						Modifiers: shift.Compute(s, ball.PullSide, alignment.InfieldRange()),
						Alignment: alignment,
					}
					for range 20 {
						out := Resolve(in, rng)
						require.True(t, allowed[out.Kind], "unexpected kind %q", out.Kind)
						require.LessOrEqual(t, out.Outs(), 2)
						require.NotEmpty(t, out.Description)
					}
				}
			}
		}
	}
}

func TestPriorities(t *testing.T) {
	for _, dir := range entity.Directions {
		ground := Priorities(entity.BatBallInfo{Type: entity.BallGround, Direction: dir}, entity.ShiftNormal)
		fly := Priorities(entity.BatBallInfo{Type: entity.BallFly, Direction: dir}, entity.ShiftNormal)

		assert.True(t, ground[0].IsInfield(), "ground %s", dir)
		assert.True(t, fly[0].IsOutfield(), "fly %s", dir)
	}

	t.Run("Extreme shift opens a hole on the opposite side", func(t *testing.T) {
		ball := entity.BatBallInfo{Type: entity.BallGround, Direction: entity.DirectionRightCenter, PullSide: entity.DirectionLeft}
		assert.Equal(t, entity.PositionRightField, Priorities(ball, entity.ShiftExtreme)[0])
	})

	t.Run("Shift moves the second baseman behind the bag", func(t *testing.T) {
		ball := entity.BatBallInfo{Type: entity.BallGround, Direction: entity.DirectionCenter, PullSide: entity.DirectionLeft}
		assert.Equal(t, entity.PositionSecondBase, Priorities(ball, entity.ShiftPullLeft)[0])
	})
}
