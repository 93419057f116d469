package tactics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/running"
)

var (
	onFirst = &entity.Runner{ID: "r1", Name: "One"}
	onThird = &entity.Runner{ID: "r3", Name: "Three"}
)

func baseSituation() Situation {
	return Situation{
		Inning:        8,
		Half:          entity.HalfBottom,
		Batter:        ability.NeutralBatting(),
		Pitcher:       ability.NeutralPitching(),
		Fatigue:       entity.FatigueFresh,
		Shift:         entity.ShiftNormal,
		Difficulty:    entity.DifficultyBeginner,
		RunnerAbility: running.Abilities{},
	}
}

func TestDecideOffense_HardRules(t *testing.T) {
	rng := dice.NewSeeded(99)

	t.Run("Never bunt or squeeze with two outs", func(t *testing.T) {
		// Given: two outs, runners on the corners, a good bunter and the sloppiest manager
		s := baseSituation()
		s.Outs = 2
		s.Runners = entity.RunnerState{First: onFirst, Third: onThird}
		s.Batter.Bunt = 90
		s.Batter.Power = 10

		for range 5000 {
			decision := DecideOffense(s, rng)

			// Then: neither is ever chosen
			require.NotEqual(t, entity.OffenseBunt, decision.Instruction)
			require.NotEqual(t, entity.OffenseSqueeze, decision.Instruction)
			require.NotEmpty(t, decision.Reason)
			require.Equal(t, entity.ControllerCPU, decision.Source)
		}
	})

	t.Run("Never steal when down five or more", func(t *testing.T) {
		s := baseSituation()
		s.Lead = -5
		s.Runners = entity.RunnerState{First: onFirst, Third: onThird}
		s.RunnerAbility = running.Abilities{"r1": {Speed: 100, Stealing: 100, Baserunning: 100}}

		for range 5000 {
			decision := DecideOffense(s, rng)
			require.NotEqual(t, entity.OffenseSteal, decision.Instruction)
			require.NotEqual(t, entity.OffenseDoubleSteal, decision.Instruction)
		}
	})

	t.Run("Squeeze needs a bunter and a runner who can go", func(t *testing.T) {
		s := baseSituation()
		s.Runners = entity.RunnerState{Third: onThird}
		s.Batter.Bunt = 20

		for _, w := range OffensiveWeights(s) {
			if w.Instruction == entity.OffenseSqueeze {
				assert.False(t, w.Viable)
				assert.Zero(t, w.Weight)
			}
		}
	})

	t.Run("Invalid instructions are never viable", func(t *testing.T) {
		s := baseSituation()
		for _, w := range OffensiveWeights(s) {
			if !w.Instruction.Valid(s.Context()) {
				assert.False(t, w.Viable, "%s", w.Instruction)
			}
		}
	})
}

func TestDecideOffense_MistakeRate(t *testing.T) {
	const trials = 5000

	// Given: a spot where swinging away dominates
	s := baseSituation()
	s.Inning = 1
	s.Batter.Power = 90

	deviation := func(difficulty entity.Difficulty) float64 {
		s.Difficulty = difficulty
		rng := dice.NewSeeded(4)
		off := 0
		for range trials {
			if DecideOffense(s, rng).Instruction != entity.OffenseNormalSwing {
				off++
			}
		}
		return float64(off) / trials
	}

	// Then: beginners stray from the best call far more often than experts
	assert.Greater(t, deviation(entity.DifficultyBeginner), deviation(entity.DifficultyExpert)+0.15)
}

func TestDecideDefense(t *testing.T) {
	reliever := entity.NewPlayerInGame(entity.PlayerRating{
		ID: "rp", Name: "Closer",
		Role: entity.PitcherRole{Pitching: entity.PitchingRatings{Stuff: 80, Movement: 70, Control: 70, Stamina: 40}},
	})
	mopUp := entity.NewPlayerInGame(entity.PlayerRating{
		ID: "mop", Name: "Mop Up",
		Role: entity.PitcherRole{Pitching: entity.PitchingRatings{Stuff: 40, Movement: 40, Control: 40, Stamina: 60}},
	})

	t.Run("Never walks intentionally with a five run gap", func(t *testing.T) {
		rng := dice.NewSeeded(7)
		s := baseSituation()
		s.Runners = entity.RunnerState{Second: &entity.Runner{ID: "r2"}}
		s.Batter.Power = 95

		for _, lead := range []int{5, -5, 9, -12} {
			s.Lead = lead
			for range 2000 {
				decision := DecideDefense(s, nil, rng)
				require.NotEqual(t, entity.DefenseIntentionalWalk, decision.Instruction)
				require.NotEmpty(t, decision.Reason)
			}
		}
	})

	t.Run("Walks a slugger in a close late game sometimes", func(t *testing.T) {
		rng := dice.NewSeeded(7)
		s := baseSituation()
		s.Difficulty = entity.DifficultyExpert
		s.Runners = entity.RunnerState{Second: &entity.Runner{ID: "r2"}}
		s.Batter.Power = 95
		s.Batter.Bats = entity.HandSwitch

		walks := 0
		for range 2000 {
			if DecideDefense(s, nil, rng).Instruction == entity.DefenseIntentionalWalk {
				walks++
			}
		}
		assert.Positive(t, walks)
	})

	t.Run("No walk when the next hitter is as dangerous", func(t *testing.T) {
		// Given: a slugger up and another one on deck
		s := baseSituation()
		s.Lead = 1
		s.Runners = entity.RunnerState{Second: &entity.Runner{ID: "r2"}}
		s.Batter.Power = 95
		next := ability.NeutralBatting()
		next.Power = 95
		s.OnDeck = &next

		// Then: walking the batter gains nothing
		assert.Zero(t, IntentionalWalkChance(s))

		// When: a weak hitter is on deck instead
		next.Power = 30

		// Then: the walk is back on the table
		assert.Positive(t, IntentionalWalkChance(s))
	})

	t.Run("Tired starter goes to the best reliever", func(t *testing.T) {
		s := baseSituation()
		s.Difficulty = entity.DifficultyExpert
		s.PitchCount = 120
		s.Fatigue = entity.FatigueExhausted
		s.RelieversReady = 2

		decision := DecideDefense(s, []entity.PlayerInGame{mopUp, reliever}, dice.NewSequence(99.9))

		assert.Equal(t, entity.DefensePitcherChange, decision.Instruction)
		assert.Equal(t, "rp", decision.RelieverID)
	})

	t.Run("Nothing fires early in the game", func(t *testing.T) {
		s := baseSituation()
		s.Inning = 2
		s.Batter.Bats = entity.HandSwitch

		decision := DecideDefense(s, nil, dice.NewSequence(99.9))

		assert.Equal(t, entity.DefenseNormal, decision.Instruction)
	})

	t.Run("Shifts on a pull hitter", func(t *testing.T) {
		s := baseSituation()
		s.Inning = 2
		s.Difficulty = entity.DifficultyExpert
		s.Batter.Bats = entity.HandLeft
		s.Batter.Power = 90

		decision := DecideDefense(s, nil, dice.NewSequence(0, 99.9))

		assert.Equal(t, entity.DefenseShiftChange, decision.Instruction)
		assert.Equal(t, entity.ShiftExtreme, decision.Shift)
	})
}

func TestDecideDefense_MistakeRate(t *testing.T) {
	const trials = 5000

	// Given: an early at-bat with a runner on second where pitching to the batter is right
	s := baseSituation()
	s.Inning = 2
	s.Runners = entity.RunnerState{Second: &entity.Runner{ID: "r2"}}
	s.Batter.Bats = entity.HandSwitch

	decide := func(difficulty entity.Difficulty) map[entity.DefensiveInstruction]int {
		s.Difficulty = difficulty
		rng := dice.NewSeeded(12)
		picks := make(map[entity.DefensiveInstruction]int)
		for range trials {
			decision := DecideDefense(s, nil, rng)
			require.NotEmpty(t, decision.Reason)
			require.Equal(t, entity.ControllerCPU, decision.Source)
			if decision.Instruction == entity.DefenseShiftChange {
				require.NotEqual(t, s.Shift, decision.Shift)
			}
			picks[decision.Instruction]++
		}
		return picks
	}

	beginner := decide(entity.DifficultyBeginner)
	expert := decide(entity.DifficultyExpert)

	// Then: beginners stray from the best call far more often than experts
	off := func(picks map[entity.DefensiveInstruction]int) float64 {
		return float64(trials-picks[entity.DefenseNormal]) / trials
	}
	assert.Greater(t, off(beginner), off(expert)+0.15)

	// And: a mistake can be any viable move, not only a skipped one
	assert.Positive(t, beginner[entity.DefenseIntentionalWalk])
	assert.Positive(t, beginner[entity.DefenseShiftChange])
	assert.Zero(t, beginner[entity.DefensePitcherChange])
}

func TestPitcherChangeChance(t *testing.T) {
	s := baseSituation()
	s.RelieversReady = 1

	s.PitchCount = 40
	assert.Zero(t, PitcherChangeChance(s))

	s.PitchCount = 90
	mid := PitcherChangeChance(s)
	s.PitchCount = 110
	s.Fatigue = entity.FatigueExhausted
	high := PitcherChangeChance(s)
	assert.Greater(t, high, mid)

	s.RelieversReady = 0
	assert.Zero(t, PitcherChangeChance(s))
}

func TestSituationFor(t *testing.T) {
	pitcher := entity.PlayerRating{
		ID: "p", Name: "Ace", Throws: entity.HandLeft,
		Role: entity.PitcherRole{Pitching: entity.PitchingRatings{Stuff: 70, Movement: 60, Control: 60, Stamina: 60, GroundBall: 50}},
	}
	batter := entity.PlayerRating{
		ID: "b", Name: "Slugger", Bats: entity.HandRight,
		Batting: entity.BattingRatings{Contact: 60, Power: 80},
		Running: entity.RunningRatings{Speed: 70, Stealing: 65, Baserunning: 60},
		Role:    entity.FielderRole{},
	}
	weak := entity.PlayerRating{
		ID: "w", Name: "Glove Man", Bats: entity.HandRight,
		Batting: entity.BattingRatings{Contact: 40, Power: 20},
		Role:    entity.FielderRole{},
	}

	state := entity.NewGameState("g", entity.DefaultRules())
	state.Inning = 7
	state.Half = entity.HalfTop
	state.Outs = 1
	state.Away = entity.TeamInGame{
		Players:    map[string]entity.PlayerInGame{"b": entity.NewPlayerInGame(batter), "w": entity.NewPlayerInGame(weak)},
		Lineup:     []string{"b", "w"},
		Difficulty: entity.DifficultyAdvanced,
	}
	state.Home = entity.TeamInGame{
		Players: map[string]entity.PlayerInGame{"p": entity.NewPlayerInGame(pitcher)},
		Defense: map[entity.Position]string{entity.PositionPitcher: "p"},
	}
	state.Score.Add(entity.SideHome, 1, 3)

	s := SituationFor(state, entity.SideAway)

	assert.Equal(t, -3, s.Lead)
	assert.Equal(t, entity.DifficultyAdvanced, s.Difficulty)
	assert.True(t, s.Late())
	assert.Equal(t, entity.HandRight, s.Batter.Bats)
	assert.Equal(t, entity.HandLeft, s.Pitcher.Throws)
	assert.InDelta(t, 70, s.RunnerAbility.Of("b").Speed, 0)
	require.NotNil(t, s.OnDeck)
	assert.Less(t, s.OnDeck.Power, s.Batter.Power)

	s = SituationFor(state, entity.SideHome)
	assert.Equal(t, 3, s.Lead)
}
