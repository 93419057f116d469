package engine

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// Event is a request to move the game forward. The set is closed: only the
// types in this file implement it.
type Event interface {
	Name() string
	event()
}

// SetupTeams opens team selection.
type SetupTeams struct{}

// AssignTeams hands over both in-game teams built from the rosters.
type AssignTeams struct {
	Away entity.TeamInGame
	Home entity.TeamInGame
}

// EditLineup replaces a team's batting order and defensive alignment.
type EditLineup struct {
	Side    entity.Side
	Lineup  []string
	Defense map[entity.Position]string
}

type StartGame struct{}

type BeginInning struct{}

type BeginAtBat struct{}

type SubmitOffense struct {
	Decision entity.OffensiveDecision
}

type SubmitDefense struct {
	Decision entity.DefensiveDecision
}

// ExecutePlay resolves the plate appearance with the pending instructions.
type ExecutePlay struct{}

// Continue leaves the result on display.
type Continue struct{}

type EndHalfInning struct{}

type CheckGameEnd struct{}

// Reset abandons the game and returns to idle from any phase.
type Reset struct{}

func (SetupTeams) Name() string    { return "setup_teams" }
func (AssignTeams) Name() string   { return "assign_teams" }
func (EditLineup) Name() string    { return "edit_lineup" }
func (StartGame) Name() string     { return "start_game" }
func (BeginInning) Name() string   { return "begin_inning" }
func (BeginAtBat) Name() string    { return "begin_at_bat" }
func (SubmitOffense) Name() string { return "submit_offense" }
func (SubmitDefense) Name() string { return "submit_defense" }
func (ExecutePlay) Name() string   { return "execute_play" }
func (Continue) Name() string      { return "continue" }
func (EndHalfInning) Name() string { return "end_half_inning" }
func (CheckGameEnd) Name() string  { return "check_game_end" }
func (Reset) Name() string         { return "reset" }

func (SetupTeams) event()    {}
func (AssignTeams) event()   {}
func (EditLineup) event()    {}
func (StartGame) event()     {}
func (BeginInning) event()   {}
func (BeginAtBat) event()    {}
func (SubmitOffense) event() {}
func (SubmitDefense) event() {}
func (ExecutePlay) event()   {}
func (Continue) event()      {}
func (EndHalfInning) event() {}
func (CheckGameEnd) event()  {}
func (Reset) event()         {}

// allowedIn reports whether ev may be applied in phase.
func allowedIn(ev Event, phase entity.Phase) bool {
	switch ev.(type) {
	case SetupTeams:
		return phase == entity.PhaseIdle
	case AssignTeams:
		return phase == entity.PhaseTeamSetup
	case EditLineup, StartGame:
		return phase == entity.PhaseLineupEdit
	case BeginInning:
		return phase == entity.PhaseInningStart
	case BeginAtBat:
		return phase == entity.PhaseAtBat
	case SubmitOffense, SubmitDefense, ExecutePlay:
		return phase == entity.PhaseAwaitingInstruction
	case Continue:
		return phase == entity.PhaseResultDisplay
	case EndHalfInning:
		return phase == entity.PhaseHalfInningEnd
	case CheckGameEnd:
		return phase == entity.PhaseGameEndCheck
	case Reset:
		return true
	default:
		return false
	}
}
