package defense

import "github.com/rocketscienceinc/ballpark-backend/internal/entity"

type priorityTable map[entity.Direction][]entity.Position

var (
	// infield first
	groundPriority = priorityTable{
		entity.DirectionLeft:        {entity.PositionThirdBase, entity.PositionShortstop, entity.PositionLeftField},
		entity.DirectionLeftCenter:  {entity.PositionShortstop, entity.PositionThirdBase, entity.PositionCenterField},
		entity.DirectionCenter:      {entity.PositionShortstop, entity.PositionSecondBase, entity.PositionPitcher, entity.PositionCenterField},
		entity.DirectionRightCenter: {entity.PositionSecondBase, entity.PositionFirstBase, entity.PositionCenterField},
		entity.DirectionRight:       {entity.PositionFirstBase, entity.PositionSecondBase, entity.PositionRightField},
	}

	// outfield first
	flyPriority = priorityTable{
		entity.DirectionLeft:        {entity.PositionLeftField, entity.PositionCenterField, entity.PositionThirdBase},
		entity.DirectionLeftCenter:  {entity.PositionLeftField, entity.PositionCenterField, entity.PositionShortstop},
		entity.DirectionCenter:      {entity.PositionCenterField, entity.PositionLeftField, entity.PositionRightField},
		entity.DirectionRightCenter: {entity.PositionCenterField, entity.PositionRightField, entity.PositionSecondBase},
		entity.DirectionRight:       {entity.PositionRightField, entity.PositionCenterField, entity.PositionFirstBase},
	}

	// direction first, infield and outfield mixed
	linerPriority = priorityTable{
		entity.DirectionLeft:        {entity.PositionThirdBase, entity.PositionLeftField, entity.PositionShortstop},
		entity.DirectionLeftCenter:  {entity.PositionShortstop, entity.PositionLeftField, entity.PositionCenterField},
		entity.DirectionCenter:      {entity.PositionPitcher, entity.PositionCenterField, entity.PositionShortstop, entity.PositionSecondBase},
		entity.DirectionRightCenter: {entity.PositionSecondBase, entity.PositionRightField, entity.PositionCenterField},
		entity.DirectionRight:       {entity.PositionFirstBase, entity.PositionRightField, entity.PositionSecondBase},
	}
)

// shiftedToward returns the side of the field the infield has overloaded, or
// an empty direction when the alignment is straight up.
func shiftedToward(s entity.DefensiveShift, pullSide entity.Direction) entity.Direction {
	switch s {
	case entity.ShiftExtreme:
		return pullSide
	case entity.ShiftPullLeft:
		return entity.DirectionLeft
	case entity.ShiftPullRight:
		return entity.DirectionRight
	default:
		return ""
	}
}

// Priorities returns the positions that may field the ball, most likely first.
func Priorities(ball entity.BatBallInfo, s entity.DefensiveShift) []entity.Position {
	var table priorityTable
	switch ball.Type {
	case entity.BallGround:
		table = groundPriority
	case entity.BallFly:
		table = flyPriority
	default:
		table = linerPriority
	}

	base, ok := table[ball.Direction]
	if !ok {
		base = table[entity.DirectionCenter]
	}

	if ball.Type != entity.BallGround {
		return base
	}

	side := shiftedToward(s, ball.PullSide)
	if side == "" {
		return base
	}

	switch {
	case ball.Direction == entity.DirectionCenter && side == entity.DirectionLeft:
		// second baseman slides over behind the bag
		return []entity.Position{entity.PositionSecondBase, entity.PositionShortstop, entity.PositionPitcher, entity.PositionCenterField}
	case ball.Direction == entity.DirectionCenter:
		return []entity.Position{entity.PositionShortstop, entity.PositionSecondBase, entity.PositionPitcher, entity.PositionCenterField}
	case s == entity.ShiftExtreme && ball.Direction == entity.DirectionRightCenter && side == entity.DirectionLeft:
		// hole on the right side
		return []entity.Position{entity.PositionRightField, entity.PositionCenterField}
	case s == entity.ShiftExtreme && ball.Direction == entity.DirectionLeftCenter && side == entity.DirectionRight:
		// hole on the left side
		return []entity.Position{entity.PositionLeftField, entity.PositionCenterField}
	case side == entity.DirectionRight && ball.Direction == entity.DirectionRightCenter:
		// shortstop playing in shallow right
		return []entity.Position{entity.PositionShortstop, entity.PositionSecondBase, entity.PositionFirstBase}
	case side == entity.DirectionLeft && ball.Direction == entity.DirectionLeftCenter:
		return []entity.Position{entity.PositionSecondBase, entity.PositionShortstop, entity.PositionThirdBase}
	default:
		return base
	}
}

// assistFor returns the position taking the throw on a ground-ball play.
func assistFor(primary entity.Position, doublePlay bool) entity.Position {
	if !doublePlay {
		if primary == entity.PositionFirstBase {
			return entity.PositionPitcher
		}
		return entity.PositionFirstBase
	}
	switch primary {
	case entity.PositionShortstop, entity.PositionThirdBase, entity.PositionPitcher:
		return entity.PositionSecondBase
	default:
		return entity.PositionShortstop
	}
}
