package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/testing/fixture"
)

func TestTeamInGame_ValidateLineup(t *testing.T) {
	t.Run("Fixture roster is valid", func(t *testing.T) {
		team := fixture.Team("sox", "Sox", 50, entity.ControllerCPU)

		assert.True(t, team.ValidateLineup())
		assert.Len(t, team.Bench, fixture.Relievers)
		assert.Len(t, team.Relievers(), fixture.Relievers)
	})

	t.Run("Duplicate batter", func(t *testing.T) {
		team := fixture.Team("sox", "Sox", 50, entity.ControllerCPU)
		team.Lineup[1] = team.Lineup[0]

		assert.False(t, team.ValidateLineup())
	})

	t.Run("Unknown fielder", func(t *testing.T) {
		team := fixture.Team("sox", "Sox", 50, entity.ControllerCPU)
		team.Defense[entity.PositionShortstop] = "ghost"

		assert.False(t, team.ValidateLineup())
	})

	t.Run("Uncovered position", func(t *testing.T) {
		team := fixture.Team("sox", "Sox", 50, entity.ControllerCPU)
		delete(team.Defense, entity.PositionLeftField)

		assert.False(t, team.ValidateLineup())
	})
}

func TestTeamInGame_AdvanceBatter(t *testing.T) {
	// Given: the ninth batter is up
	team := fixture.Team("sox", "Sox", 50, entity.ControllerCPU)
	team.BatterIndex = entity.LineupSize - 1

	// When: the order advances
	team.AdvanceBatter()

	// Then: it wraps to the leadoff hitter
	assert.Equal(t, team.Lineup[0], team.CurrentBatterID())
}

func TestTeamInGame_Clone(t *testing.T) {
	// Given: a team and its clone
	team := fixture.Team("sox", "Sox", 50, entity.ControllerCPU)
	clone := team.Clone()

	// When: the clone is changed
	clone.Lineup[0] = "someone-else"
	clone.Update(team.PitcherID(), func(p *entity.PlayerInGame) { p.Pitching.PitchCount = 99 })

	// Then: the original is untouched
	assert.NotEqual(t, "someone-else", team.Lineup[0])
	pitcher, ok := team.Player(team.PitcherID())
	require.True(t, ok)
	assert.Zero(t, pitcher.Pitching.PitchCount)
}

func TestPlayerRating_JSON(t *testing.T) {
	t.Run("Roles survive a round trip", func(t *testing.T) {
		// Given: a catcher
		catcher := fixture.Player("sox-C", "Sox C", entity.PositionCatcher, 60)

		// When: it is encoded and decoded
		data, err := json.Marshal(catcher)
		require.NoError(t, err)

		var decoded entity.PlayerRating
		require.NoError(t, json.Unmarshal(data, &decoded))

		// Then: the catcher abilities come back
		catching, ok := decoded.Catching()
		require.True(t, ok)
		assert.Equal(t, 60, catching.Framing)
		assert.False(t, decoded.IsPitcher())
	})

	t.Run("Role without its abilities is rejected", func(t *testing.T) {
		record := entity.PlayerRecord{ID: "x", Role: "catcher"}

		_, err := record.Rating()

		require.ErrorIs(t, err, entity.ErrUnknownRole)
	})

	t.Run("Unknown role is rejected", func(t *testing.T) {
		var decoded entity.PlayerRating
		err := json.Unmarshal([]byte(`{"id":"x","role":"umpire"}`), &decoded)

		require.ErrorIs(t, err, entity.ErrUnknownRole)
	})
}

func TestGameState_ConfirmOngoingState(t *testing.T) {
	cases := []struct {
		phase entity.Phase
		err   error
	}{
		{phase: entity.PhaseIdle, err: apperror.ErrGameIsNotStarted},
		{phase: entity.PhaseLineupEdit, err: apperror.ErrGameIsNotStarted},
		{phase: entity.PhaseAwaitingInstruction},
		{phase: entity.PhaseHalfInningEnd},
		{phase: entity.PhaseGameEnd, err: apperror.ErrGameFinished},
		{phase: "seventh_inning_stretch", err: entity.ErrUnknownPhase},
	}

	for _, tc := range cases {
		t.Run(string(tc.phase), func(t *testing.T) {
			state := entity.GameState{Phase: tc.phase}

			err := state.ConfirmOngoingState()

			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGameState_Clone(t *testing.T) {
	// Given: a game in progress
	state := entity.NewGameState("g1", entity.DefaultRules())
	state.Away = fixture.Team("away", "Visitors", 50, entity.ControllerCPU)
	state.Home = fixture.Team("home", "Hosts", 50, entity.ControllerCPU)
	state.Score.Add(entity.SideAway, 1, 1)
	state.Log = []entity.PlayEvent{{Seq: 1, Description: "Top of the 1st"}}
	state.AtBat = &entity.AtBatContext{BatterID: "away-CF"}

	// When: the clone is changed
	clone := state.Clone()
	clone.Score.Add(entity.SideAway, 1, 3)
	clone.Log[0].Description = "changed"
	clone.AtBat.BatterID = "away-SS"

	// Then: the original is untouched
	assert.Equal(t, 1, state.Runs(entity.SideAway))
	assert.Equal(t, "Top of the 1st", state.Log[0].Description)
	assert.Equal(t, "away-CF", state.AtBat.BatterID)
	assert.Equal(t, entity.SideAway, state.BattingSide())
	assert.Equal(t, 1, state.ScoreGap())
}
