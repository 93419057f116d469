package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/testing/fixture"
	"github.com/rocketscienceinc/ballpark-backend/testing/suite"
)

func TestRosterRepository(t *testing.T) {
	t.Run("Round trip keeps roles", func(t *testing.T) {
		ctx, st := suite.New(t)

		rosterRepo := NewRosterRepository(st.Storage)

		// Given: a stored fixture roster
		roster := fixture.Roster("sox", "Sox", 55)
		require.NoError(t, rosterRepo.CreateOrUpdate(ctx, &roster))

		// When: it is read back
		got, err := rosterRepo.GetByTeamID(ctx, "sox")

		// Then: lineup and roles survive
		require.NoError(t, err)
		assert.Equal(t, roster.Lineup, got.Lineup)
		assert.Equal(t, roster.Defense, got.Defense)

		catcher, ok := got.Player(fixture.PlayerID("sox", entity.PositionCatcher))
		require.True(t, ok)
		catching, ok := catcher.Catching()
		require.True(t, ok)
		assert.Equal(t, 55, catching.Arm)
	})

	t.Run("Unknown team", func(t *testing.T) {
		ctx, st := suite.New(t)

		rosterRepo := NewRosterRepository(st.Storage)

		// When: a missing team is requested
		got, err := rosterRepo.GetByTeamID(ctx, "nobody")

		// Then: ErrTeamNotFound is returned
		require.ErrorIs(t, err, apperror.ErrTeamNotFound)
		assert.Nil(t, got)
	})
}

const rosterYAML = `
teams:
  - team_id: bears
    name: Bears
    lineup: [bears-c]
    defense:
      C: bears-c
      P: bears-p
    players:
      - id: bears-c
        name: Backstop
        position: C
        bats: right
        throws: right
        role: catcher
        batting: {contact: 50, power: 40}
        running: {speed: 30}
        fielding: {range: 40, arm: 60}
        catching: {arm: 70, blocking: 60, framing: 55}
      - id: bears-p
        name: Ace
        position: P
        bats: left
        throws: left
        role: pitcher
        batting: {contact: 10}
        running: {speed: 20}
        fielding: {range: 30}
        pitching: {stuff: 80, movement: 70, control: 65, stamina: 75, ground_ball: 50}
`

func TestRosterFile(t *testing.T) {
	ctx := context.Background()

	t.Run("Parses roles and abilities", func(t *testing.T) {
		// Given: a roster document with a catcher and a pitcher
		file, err := ParseRosters([]byte(rosterYAML))
		require.NoError(t, err)

		// When: the team is requested
		roster, err := file.GetByTeamID(ctx, "bears")

		// Then: both players carry their role abilities
		require.NoError(t, err)
		assert.Equal(t, "Bears", roster.Name)

		ace, ok := roster.Player("bears-p")
		require.True(t, ok)
		pitching, ok := ace.Pitching()
		require.True(t, ok)
		assert.Equal(t, 80, pitching.Stuff)

		rosters, err := file.List(ctx)
		require.NoError(t, err)
		assert.Len(t, rosters, 1)
	})

	t.Run("Rejects a pitcher without pitching ratings", func(t *testing.T) {
		// Given: a pitcher record missing its ability block
		doc := `
teams:
  - team_id: cubs
    name: Cubs
    players:
      - id: cubs-p
        name: Nobody
        position: P
        role: pitcher
`
		// When: the document is parsed
		_, err := ParseRosters([]byte(doc))

		// Then: the role mismatch is reported
		require.Error(t, err)
	})

	t.Run("Seeded lineup opens the game", func(t *testing.T) {
		// Given: a full roster written out as YAML
		data, err := yaml.Marshal(rosterDocument{Teams: []teamDocument{documentOf(fixture.Roster("owls", "Owls", 60))}})
		require.NoError(t, err)
		file, err := ParseRosters(data)
		require.NoError(t, err)

		// When: a team is built from the parsed roster
		roster, err := file.GetByTeamID(ctx, "owls")
		require.NoError(t, err)
		team := entity.NewTeamInGame(*roster, entity.ControllerCPU, entity.DifficultyIntermediate)

		// Then: the seeded batting order and alignment are the ones in play
		require.True(t, team.ValidateLineup())
		assert.Equal(t, fixture.PlayerID("owls", entity.PositionCenterField), team.CurrentBatterID())
		assert.Equal(t, fixture.PlayerID("owls", entity.PositionPitcher), team.PitcherID())
		assert.Len(t, team.Relievers(), fixture.Relievers)
	})

	t.Run("Rejects unknown keys", func(t *testing.T) {
		doc := rosterYAML + "    starters: [bears-c]\n"

		_, err := ParseRosters([]byte(doc))

		require.Error(t, err)
	})

	t.Run("Unknown team", func(t *testing.T) {
		file, err := ParseRosters([]byte(rosterYAML))
		require.NoError(t, err)

		_, err = file.GetByTeamID(ctx, "nobody")
		require.ErrorIs(t, err, apperror.ErrTeamNotFound)
	})
}

func documentOf(roster entity.Roster) teamDocument {
	doc := teamDocument{TeamID: roster.TeamID, Name: roster.Name, Lineup: roster.Lineup, Defense: roster.Defense}
	for _, rating := range roster.Players {
		doc.Players = append(doc.Players, entity.RecordOf(rating))
	}
	return doc
}
