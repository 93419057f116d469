package defense

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// Fielder is the player standing at a position with the effective ratings.
type Fielder struct {
	Position entity.Position
	PlayerID string
	Name     string
	Ability  ability.Fielding
}

// Alignment maps positions to fielders. Positions without an entry are
// treated as missing and trigger the heuristic fallback.
type Alignment map[entity.Position]Fielder

// AlignmentOf builds the alignment of a fielding team. Positions whose player
// cannot be found are left out.
func AlignmentOf(team entity.TeamInGame) Alignment {
	alignment := make(Alignment, len(entity.FieldPositions))
	for _, pos := range entity.FieldPositions {
		id, ok := team.FielderID(pos)
		if !ok {
			continue
		}
		player, ok := team.Player(id)
		if !ok {
			continue
		}
		alignment[pos] = Fielder{
			Position: pos,
			PlayerID: id,
			Name:     player.Rating.Name,
			Ability:  ability.EffectiveFielding(player),
		}
	}
	return alignment
}

func (that Alignment) At(pos entity.Position) (Fielder, bool) {
	f, ok := that[pos]
	return f, ok
}

// InfieldRange is the average range of the four non-battery infielders.
func (that Alignment) InfieldRange() float64 {
	return that.averageRange(entity.PositionFirstBase, entity.PositionSecondBase, entity.PositionThirdBase, entity.PositionShortstop)
}

// OutfieldRange is the average range of the three outfielders.
func (that Alignment) OutfieldRange() float64 {
	return that.averageRange(entity.PositionLeftField, entity.PositionCenterField, entity.PositionRightField)
}

func (that Alignment) averageRange(positions ...entity.Position) float64 {
	values := make([]float64, 0, len(positions))
	for _, pos := range positions {
		if f, ok := that[pos]; ok {
			values = append(values, f.Ability.Range)
		}
	}
	return ability.Average(values...)
}

// CatcherArm returns the catcher's throwing arm, neutral when nobody is catching.
func (that Alignment) CatcherArm() float64 {
	if f, ok := that[entity.PositionCatcher]; ok {
		return f.Ability.Arm
	}
	return ability.NeutralRating
}
