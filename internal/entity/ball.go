package entity

type BallType string

const (
	BallGround BallType = "ground"
	BallFly    BallType = "fly"
	BallLiner  BallType = "liner"
)

// Direction is an absolute field direction seen from home plate.
type Direction string

const (
	DirectionLeft        Direction = "left"
	DirectionLeftCenter  Direction = "left_center"
	DirectionCenter      Direction = "center"
	DirectionRightCenter Direction = "right_center"
	DirectionRight       Direction = "right"
)

// Directions lists the five directions from the left-field line to the right-field line.
var Directions = []Direction{
	DirectionLeft, DirectionLeftCenter, DirectionCenter, DirectionRightCenter, DirectionRight,
}

type Strength string

const (
	StrengthWeak       Strength = "weak"
	StrengthMedium     Strength = "medium"
	StrengthStrong     Strength = "strong"
	StrengthVeryStrong Strength = "very_strong"
)

func (that Strength) Level() int {
	switch that {
	case StrengthWeak:
		return 0
	case StrengthMedium:
		return 1
	case StrengthStrong:
		return 2
	case StrengthVeryStrong:
		return 3
	default:
		return 1
	}
}

// PullSide returns the side a batter naturally pulls toward. Switch hitters
// bat from the side opposite the pitcher's throwing hand.
func PullSide(bats, pitcherThrows Hand) Direction {
	switch bats {
	case HandLeft:
		return DirectionRight
	case HandSwitch:
		if pitcherThrows == HandLeft {
			return DirectionLeft
		}
		return DirectionRight
	default:
		return DirectionLeft
	}
}

// Lean classifies a direction relative to the pull side: 1 pull, -1 opposite, 0 center.
func Lean(dir, pullSide Direction) int {
	switch dir {
	case DirectionCenter:
		return 0
	case DirectionLeft, DirectionLeftCenter:
		if pullSide == DirectionLeft {
			return 1
		}
		return -1
	case DirectionRight, DirectionRightCenter:
		if pullSide == DirectionRight {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// BatBallInfo describes contact. ExtraBasePotential is 0..100.
type BatBallInfo struct {
	Type               BallType  `json:"type"`
	Direction          Direction `json:"direction"`
	Strength           Strength  `json:"strength"`
	ExtraBasePotential float64   `json:"extra_base_potential"`
	PullSide           Direction `json:"pull_side"`
}

func (that BatBallInfo) IsPulled() bool {
	return Lean(that.Direction, that.PullSide) > 0
}

func (that BatBallInfo) IsOpposite() bool {
	return Lean(that.Direction, that.PullSide) < 0
}
