// Package fixture builds complete rosters for tests.
package fixture

import (
	"fmt"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// Relievers is the number of bench pitchers every fixture roster carries.
const Relievers = 3

var battingOrder = []entity.Position{
	entity.PositionCenterField, entity.PositionShortstop, entity.PositionFirstBase,
	entity.PositionThirdBase, entity.PositionRightField, entity.PositionLeftField,
	entity.PositionSecondBase, entity.PositionCatcher, entity.PositionPitcher,
}

// PlayerID is the id a fixture roster gives the player at pos.
func PlayerID(teamID string, pos entity.Position) string {
	return fmt.Sprintf("%s-%s", teamID, pos)
}

// ReliefID is the id of the n-th (1-based) bench pitcher.
func ReliefID(teamID string, n int) string {
	return fmt.Sprintf("%s-RP%d", teamID, n)
}

// Roster returns nine starters and three relievers with every rating set to level.
func Roster(teamID, name string, level int) entity.Roster {
	roster := entity.Roster{
		TeamID:  teamID,
		Name:    name,
		Defense: make(map[entity.Position]string, len(entity.FieldPositions)),
	}

	for _, pos := range battingOrder {
		id := PlayerID(teamID, pos)
		roster.Players = append(roster.Players, Player(id, fmt.Sprintf("%s %s", name, pos), pos, level))
		roster.Lineup = append(roster.Lineup, id)
		roster.Defense[pos] = id
	}

	for n := 1; n <= Relievers; n++ {
		id := ReliefID(teamID, n)
		roster.Players = append(roster.Players, Player(id, fmt.Sprintf("%s reliever %d", name, n), entity.PositionPitcher, level))
	}

	return roster
}

// Player builds a rating of the given level; pitchers and catchers get their role.
func Player(id, name string, pos entity.Position, level int) entity.PlayerRating {
	rating := entity.PlayerRating{
		ID:       id,
		Name:     name,
		Position: pos,
		Bats:     entity.HandRight,
		Throws:   entity.HandRight,
		Batting: entity.BattingRatings{
			Contact: level, Babip: level, GapPower: level, Power: level,
			Eye: level, AvoidStrikeout: level, Bunt: level,
		},
		Running:  entity.RunningRatings{Speed: level, Stealing: level, Baserunning: level},
		Fielding: entity.FieldingRatings{Range: level, Arm: level, ErrorResistance: level, TurnDoublePlay: level},
		Role:     entity.FielderRole{},
	}

	switch pos {
	case entity.PositionPitcher:
		rating.Role = entity.PitcherRole{Pitching: entity.PitchingRatings{
			Stuff: level, Movement: level, Control: level, Stamina: level, GroundBall: level,
		}}
	case entity.PositionCatcher:
		rating.Role = entity.CatcherRole{Catching: entity.CatcherRatings{Arm: level, Blocking: level, Framing: level}}
	}

	return rating
}

// Team builds an in-game team from Roster.
func Team(teamID, name string, level int, controller entity.Controller) entity.TeamInGame {
	return entity.NewTeamInGame(Roster(teamID, name, level), controller, entity.DifficultyIntermediate)
}
