package atbat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

func neutralMatchup() Matchup {
	return Matchup{Batter: ability.NeutralBatting(), Pitcher: ability.NeutralPitching()}
}

func ratedMatchup(batting, pitching, pitchCount int) Matchup {
	batter := entity.NewPlayerInGame(entity.PlayerRating{
		ID:   "b",
		Bats: entity.HandLeft,
		Batting: entity.BattingRatings{
			Contact: batting, Babip: batting, GapPower: batting, Power: batting,
			Eye: batting, AvoidStrikeout: batting, Bunt: batting,
		},
		Running: entity.RunningRatings{Speed: batting},
		Role:    entity.FielderRole{},
	})
	pitcher := entity.NewPlayerInGame(entity.PlayerRating{
		ID:     "p",
		Throws: entity.HandRight,
		Role: entity.PitcherRole{Pitching: entity.PitchingRatings{
			Stuff: pitching, Movement: pitching, Control: pitching, Stamina: pitching, GroundBall: pitching,
		}},
	})
	pitcher.Pitching.PitchCount = pitchCount

	return Matchup{
		Batter:  ability.EffectiveBatting(batter, entity.HandRight),
		Pitcher: ability.EffectivePitching(pitcher, entity.HandLeft),
	}
}

func TestResolve_RejectsBunts(t *testing.T) {
	for _, instruction := range []entity.OffensiveInstruction{entity.OffenseBunt, entity.OffenseSqueeze} {
		t.Run(string(instruction), func(t *testing.T) {
			// When: a bunt instruction reaches the at-bat resolver
			_, err := Resolve(neutralMatchup(), entity.Count{}, instruction, ModeFast, dice.NewSequence(10))

			// Then: it is rejected as belonging to another resolver
			require.ErrorIs(t, err, apperror.ErrWrongResolver)
		})
	}
}

func TestOdds_Invariants(t *testing.T) {
	// Given: every combination of weak to elite batters and pitchers at several pitch counts
	for batting := 1; batting <= 100; batting += 11 {
		for pitching := 1; pitching <= 100; pitching += 11 {
			for _, pitchCount := range []int{0, 80, 110, 200} {
				odds := Odds(ratedMatchup(batting, pitching, pitchCount))

				// Then: strikeout plus walk never exceeds 100 and the three outcomes sum to 100
				require.LessOrEqual(t, odds.Strikeout+odds.Walk, 100.0)
				require.InDelta(t, 100, odds.Strikeout+odds.Walk+odds.InPlay, 1e-9)
				require.GreaterOrEqual(t, odds.InPlay, 0.0)
			}
		}
	}
}

func TestResolve_OutcomeAlwaysKnown(t *testing.T) {
	rng := dice.NewSeeded(11)
	valid := map[Outcome]bool{OutcomeStrikeout: true, OutcomeWalk: true, OutcomeInPlay: true}

	for _, mode := range []Mode{ModeFast, ModePitch} {
		for batting := 1; batting <= 100; batting += 33 {
			for pitching := 1; pitching <= 100; pitching += 33 {
				m := ratedMatchup(batting, pitching, 90)
				for range 50 {
					result, err := Resolve(m, entity.Count{}, entity.OffenseNormalSwing, mode, rng)
					require.NoError(t, err)
					require.True(t, valid[result.Outcome], "unexpected outcome %q", result.Outcome)
					require.Positive(t, result.Pitches)

					if result.Outcome == OutcomeInPlay {
						require.NotNil(t, result.Ball)
						require.LessOrEqual(t, result.Ball.ExtraBasePotential, 100.0)
						require.GreaterOrEqual(t, result.Ball.ExtraBasePotential, 0.0)
					} else {
						require.Nil(t, result.Ball)
					}
				}
			}
		}
	}
}

func TestResolve_ModesAgreeInAggregate(t *testing.T) {
	// Given: the same matchup resolved many times in both modes
	const trials = 20000
	m := neutralMatchup()
	rates := func(mode Mode) map[Outcome]float64 {
		rng := dice.NewSeeded(5)
		counts := map[Outcome]float64{}
		for range trials {
			result, err := Resolve(m, entity.Count{}, entity.OffenseNormalSwing, mode, rng)
			require.NoError(t, err)
			counts[result.Outcome]++
		}
		for k := range counts {
			counts[k] = counts[k] / trials * 100
		}
		return counts
	}

	fast := rates(ModeFast)
	pitch := rates(ModePitch)

	// Then: each outcome rate differs by only a few points
	for _, outcome := range []Outcome{OutcomeStrikeout, OutcomeWalk, OutcomeInPlay} {
		assert.InDelta(t, fast[outcome], pitch[outcome], 4, "outcome %s", outcome)
	}
}

func TestResolve_PinnedRolls(t *testing.T) {
	t.Run("Low roll in fast mode is a strikeout", func(t *testing.T) {
		result, err := Resolve(neutralMatchup(), entity.Count{}, entity.OffenseNormalSwing, ModeFast, dice.NewSequence(0))
		require.NoError(t, err)
		assert.Equal(t, OutcomeStrikeout, result.Outcome)
	})

	t.Run("Four balls in pitch mode is a walk", func(t *testing.T) {
		result, err := Resolve(neutralMatchup(), entity.Count{}, entity.OffenseNormalSwing, ModePitch, dice.NewSequence(0))
		require.NoError(t, err)
		assert.Equal(t, OutcomeWalk, result.Outcome)
		assert.Equal(t, 4, result.Pitches)
		assert.Equal(t, entity.Count{Balls: 4}, result.Count)
	})

	t.Run("High rolls put a hard fly in play the opposite way", func(t *testing.T) {
		// Given: a right-handed batter and rolls at the top of the range
		m := neutralMatchup()
		m.Batter.Bats = entity.HandRight

		result, err := Resolve(m, entity.Count{}, entity.OffenseNormalSwing, ModePitch, dice.NewSequence(99.99))
		require.NoError(t, err)

		// Then: first pitch contact, fly ball, opposite field, strongest contact
		require.Equal(t, OutcomeInPlay, result.Outcome)
		require.NotNil(t, result.Ball)
		assert.Equal(t, 1, result.Pitches)
		assert.Equal(t, entity.BallFly, result.Ball.Type)
		assert.Equal(t, entity.DirectionRight, result.Ball.Direction)
		assert.Equal(t, entity.StrengthVeryStrong, result.Ball.Strength)
		assert.True(t, result.Ball.IsOpposite())
	})
}

func TestPitchOddsFor(t *testing.T) {
	pa := Odds(neutralMatchup())

	t.Run("Always normalized", func(t *testing.T) {
		for balls := 0; balls < 4; balls++ {
			for strikes := 0; strikes < 3; strikes++ {
				for _, instruction := range entity.OffensiveInstructions {
					odds := PitchOddsFor(pa, entity.Count{Balls: balls, Strikes: strikes}, instruction)
					require.InDelta(t, 100, odds.Ball+odds.Strike+odds.Foul+odds.InPlay, 1e-9)
				}
			}
		}
	})

	t.Run("Hitter's count raises contact, pitcher's count raises misses", func(t *testing.T) {
		even := PitchOddsFor(pa, entity.Count{Balls: 1, Strikes: 1}, entity.OffenseNormalSwing)
		hitter := PitchOddsFor(pa, entity.Count{Balls: 3, Strikes: 0}, entity.OffenseNormalSwing)
		pitcher := PitchOddsFor(pa, entity.Count{Balls: 0, Strikes: 2}, entity.OffenseNormalSwing)

		assert.Greater(t, hitter.InPlay, even.InPlay)
		assert.Greater(t, pitcher.Foul+pitcher.Strike, even.Foul+even.Strike)
	})

	t.Run("Taking never puts the ball in play before a strike", func(t *testing.T) {
		odds := PitchOddsFor(pa, entity.Count{}, entity.OffenseWait)
		assert.InDelta(t, 0, odds.InPlay, 0)
	})
}

func TestExtraBasePotential(t *testing.T) {
	elite := ability.Batting{GapPower: 100, Power: 100}

	// Then: capped at 100 for the hardest fly
	assert.InDelta(t, 100, ExtraBasePotential(elite, entity.BallFly, entity.StrengthVeryStrong, 3), 0)

	// Then: ground balls and weak contact carry less potential
	assert.Less(t,
		ExtraBasePotential(elite, entity.BallGround, entity.StrengthStrong, 0),
		ExtraBasePotential(elite, entity.BallFly, entity.StrengthStrong, 0),
	)
	assert.Less(t,
		ExtraBasePotential(elite, entity.BallFly, entity.StrengthWeak, 0),
		ExtraBasePotential(elite, entity.BallFly, entity.StrengthStrong, 0),
	)
}
