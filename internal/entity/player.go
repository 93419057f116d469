package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownRole = errors.New("unknown player role")

type Hand string

const (
	HandRight  Hand = "right"
	HandLeft   Hand = "left"
	HandSwitch Hand = "switch"
)

type Position string

const (
	PositionPitcher     Position = "P"
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionLeftField   Position = "LF"
	PositionCenterField Position = "CF"
	PositionRightField  Position = "RF"
	PositionDesignated  Position = "DH"
)

// FieldPositions lists the nine defensive positions in scorebook order.
var FieldPositions = []Position{
	PositionPitcher, PositionCatcher, PositionFirstBase, PositionSecondBase, PositionThirdBase,
	PositionShortstop, PositionLeftField, PositionCenterField, PositionRightField,
}

func (that Position) IsInfield() bool {
	switch that {
	case PositionPitcher, PositionCatcher, PositionFirstBase, PositionSecondBase, PositionThirdBase, PositionShortstop:
		return true
	default:
		return false
	}
}

func (that Position) IsOutfield() bool {
	switch that {
	case PositionLeftField, PositionCenterField, PositionRightField:
		return true
	default:
		return false
	}
}

type BattingRatings struct {
	Contact        int `json:"contact" yaml:"contact"`
	Babip          int `json:"babip" yaml:"babip"`
	GapPower       int `json:"gap_power" yaml:"gap_power"`
	Power          int `json:"power" yaml:"power"`
	Eye            int `json:"eye" yaml:"eye"`
	AvoidStrikeout int `json:"avoid_strikeout" yaml:"avoid_strikeout"`
	Bunt           int `json:"bunt" yaml:"bunt"`
}

type RunningRatings struct {
	Speed       int `json:"speed" yaml:"speed"`
	Stealing    int `json:"stealing" yaml:"stealing"`
	Baserunning int `json:"baserunning" yaml:"baserunning"`
}

type FieldingRatings struct {
	Range           int `json:"range" yaml:"range"`
	Arm             int `json:"arm" yaml:"arm"`
	ErrorResistance int `json:"error_resistance" yaml:"error_resistance"`
	TurnDoublePlay  int `json:"turn_double_play" yaml:"turn_double_play"`
}

type PitchingRatings struct {
	Stuff      int `json:"stuff" yaml:"stuff"`
	Movement   int `json:"movement" yaml:"movement"`
	Control    int `json:"control" yaml:"control"`
	Stamina    int `json:"stamina" yaml:"stamina"`
	GroundBall int `json:"ground_ball" yaml:"ground_ball"`
}

type CatcherRatings struct {
	Arm      int `json:"arm" yaml:"arm"`
	Blocking int `json:"blocking" yaml:"blocking"`
	Framing  int `json:"framing" yaml:"framing"`
}

// Role carries the ability groups that only exist for some players.
// The set of implementations is closed: PitcherRole, CatcherRole, FielderRole.
type Role interface {
	RoleName() string
}

type PitcherRole struct {
	Pitching PitchingRatings
}

type CatcherRole struct {
	Catching CatcherRatings
}

type FielderRole struct{}

func (PitcherRole) RoleName() string { return "pitcher" }
func (CatcherRole) RoleName() string { return "catcher" }
func (FielderRole) RoleName() string { return "fielder" }

// PlayerRating is immutable reference data supplied by the roster provider.
type PlayerRating struct {
	ID       string
	Name     string
	Position Position
	Bats     Hand
	Throws   Hand
	Batting  BattingRatings
	Running  RunningRatings
	Fielding FieldingRatings
	Role     Role
}

func (that PlayerRating) Pitching() (PitchingRatings, bool) {
	if role, ok := that.Role.(PitcherRole); ok {
		return role.Pitching, true
	}
	return PitchingRatings{}, false
}

func (that PlayerRating) Catching() (CatcherRatings, bool) {
	if role, ok := that.Role.(CatcherRole); ok {
		return role.Catching, true
	}
	return CatcherRatings{}, false
}

func (that PlayerRating) IsPitcher() bool {
	_, ok := that.Role.(PitcherRole)
	return ok
}

// PlayerRecord is the flat wire form of PlayerRating used by JSON and YAML stores.
type PlayerRecord struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Position Position         `json:"position" yaml:"position"`
	Bats     Hand             `json:"bats" yaml:"bats"`
	Throws   Hand             `json:"throws" yaml:"throws"`
	Role     string           `json:"role" yaml:"role"`
	Batting  BattingRatings   `json:"batting" yaml:"batting"`
	Running  RunningRatings   `json:"running" yaml:"running"`
	Fielding FieldingRatings  `json:"fielding" yaml:"fielding"`
	Pitching *PitchingRatings `json:"pitching,omitempty" yaml:"pitching,omitempty"`
	Catching *CatcherRatings  `json:"catching,omitempty" yaml:"catching,omitempty"`
}

func RecordOf(rating PlayerRating) PlayerRecord {
	record := PlayerRecord{
		ID:       rating.ID,
		Name:     rating.Name,
		Position: rating.Position,
		Bats:     rating.Bats,
		Throws:   rating.Throws,
		Role:     FielderRole{}.RoleName(),
		Batting:  rating.Batting,
		Running:  rating.Running,
		Fielding: rating.Fielding,
	}

	switch role := rating.Role.(type) {
	case PitcherRole:
		pitching := role.Pitching
		record.Role = role.RoleName()
		record.Pitching = &pitching
	case CatcherRole:
		catching := role.Catching
		record.Role = role.RoleName()
		record.Catching = &catching
	}

	return record
}

// Rating converts the record back, rejecting role/ability mismatches.
func (that PlayerRecord) Rating() (PlayerRating, error) {
	rating := PlayerRating{
		ID:       that.ID,
		Name:     that.Name,
		Position: that.Position,
		Bats:     that.Bats,
		Throws:   that.Throws,
		Batting:  that.Batting,
		Running:  that.Running,
		Fielding: that.Fielding,
	}

	switch that.Role {
	case PitcherRole{}.RoleName():
		if that.Pitching == nil {
			return PlayerRating{}, fmt.Errorf("%w: pitcher %s has no pitching ratings", ErrUnknownRole, that.ID)
		}
		rating.Role = PitcherRole{Pitching: *that.Pitching}
	case CatcherRole{}.RoleName():
		if that.Catching == nil {
			return PlayerRating{}, fmt.Errorf("%w: catcher %s has no catching ratings", ErrUnknownRole, that.ID)
		}
		rating.Role = CatcherRole{Catching: *that.Catching}
	case FielderRole{}.RoleName(), "":
		rating.Role = FielderRole{}
	default:
		return PlayerRating{}, fmt.Errorf("%w: %q", ErrUnknownRole, that.Role)
	}

	return rating, nil
}
