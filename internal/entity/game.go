package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
)

var ErrUnknownPhase = errors.New("unknown game phase")

type Phase string

const (
	PhaseIdle                Phase = "idle"
	PhaseTeamSetup           Phase = "team_setup"
	PhaseLineupEdit          Phase = "lineup_edit"
	PhaseInningStart         Phase = "inning_start"
	PhaseAtBat               Phase = "at_bat"
	PhaseAwaitingInstruction Phase = "awaiting_instruction"
	PhasePlayExecution       Phase = "play_execution"
	PhaseResultDisplay       Phase = "result_display"
	PhaseHalfInningEnd       Phase = "half_inning_end"
	PhaseGameEndCheck        Phase = "game_end_check"
	PhaseGameEnd             Phase = "game_end"
)

type Half string

const (
	HalfTop    Half = "top"
	HalfBottom Half = "bottom"
)

const MaxOuts = 3

type Count struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

// Edge is positive in hitter's counts and negative in pitcher's counts.
func (that Count) Edge() int {
	return that.Balls - that.Strikes
}

type AtBatContext struct {
	BatterID  string `json:"batter_id"`
	PitcherID string `json:"pitcher_id"`
	Count     Count  `json:"count"`
}

type EventType string

const (
	EventInning        EventType = "inning"
	EventAtBat         EventType = "at_bat"
	EventInstruction   EventType = "instruction"
	EventPitchSummary  EventType = "pitch_summary"
	EventHit           EventType = "hit"
	EventOut           EventType = "out"
	EventWalk          EventType = "walk"
	EventStrikeout     EventType = "strikeout"
	EventRun           EventType = "run"
	EventError         EventType = "error"
	EventSteal         EventType = "steal"
	EventPitcherChange EventType = "pitcher_change"
	EventShiftChange   EventType = "shift_change"
	EventSubstitution  EventType = "substitution"
	EventGameEnd       EventType = "game_end"
	EventWarning       EventType = "warning"
)

type PlayEvent struct {
	Seq         int        `json:"seq"`
	Time        time.Time  `json:"time"`
	Inning      int        `json:"inning"`
	Half        Half       `json:"half"`
	Description string     `json:"description"`
	Type        EventType  `json:"type"`
	Source      Controller `json:"source"`
}

// LineScore keeps runs per inning for both teams; index 0 is the first inning.
type LineScore struct {
	Away []int `json:"away"`
	Home []int `json:"home"`
}

func (that LineScore) Total(side Side) int {
	runs := that.Away
	if side == SideHome {
		runs = that.Home
	}

	total := 0
	for _, r := range runs {
		total += r
	}
	return total
}

// Add credits runs to a side in the given (1-based) inning, growing the line as needed.
func (that *LineScore) Add(side Side, inning, runs int) {
	if inning < 1 {
		return
	}

	line := &that.Away
	if side == SideHome {
		line = &that.Home
	}
	for len(*line) < inning {
		*line = append(*line, 0)
	}
	(*line)[inning-1] += runs
}

func (that LineScore) Clone() LineScore {
	return LineScore{
		Away: append([]int(nil), that.Away...),
		Home: append([]int(nil), that.Home...),
	}
}

type Rules struct {
	Innings         int `json:"innings"`
	MaxExtraInnings int `json:"max_extra_innings"`
	MercyInning     int `json:"mercy_inning"`
	MercyRunGap     int `json:"mercy_run_gap"`
}

func DefaultRules() Rules {
	return Rules{
		Innings:         9,
		MaxExtraInnings: 3,
		MercyInning:     5,
		MercyRunGap:     10,
	}
}

type Pending struct {
	Offense *OffensiveDecision `json:"offense,omitempty"`
	Defense *DefensiveDecision `json:"defense,omitempty"`
}

// GameState is the aggregate root. Only the state machine writes to it.
type GameState struct {
	ID        string         `json:"id"`
	Phase     Phase          `json:"phase"`
	Rules     Rules          `json:"rules"`
	Inning    int            `json:"inning"`
	Half      Half           `json:"half"`
	Outs      int            `json:"outs"`
	Away      TeamInGame     `json:"away"`
	Home      TeamInGame     `json:"home"`
	Score     LineScore      `json:"score"`
	Runners   RunnerState    `json:"runners"`
	AtBat     *AtBatContext  `json:"at_bat,omitempty"`
	Shift     DefensiveShift `json:"shift"`
	Pending   Pending        `json:"pending"`
	LastPlay  *PlayResult    `json:"last_play,omitempty"`
	Log       []PlayEvent    `json:"log"`
	Result    *GameResult    `json:"result,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewGameState(id string, rules Rules) GameState {
	return GameState{
		ID:    id,
		Phase: PhaseIdle,
		Rules: rules,
		Half:  HalfTop,
		Shift: ShiftNormal,
	}
}

// Clone returns a deep copy so transitions never alias the previous state.
func (that GameState) Clone() GameState {
	out := that
	out.Away = that.Away.Clone()
	out.Home = that.Home.Clone()
	out.Score = that.Score.Clone()
	out.Log = append([]PlayEvent(nil), that.Log...)

	if that.AtBat != nil {
		atBat := *that.AtBat
		out.AtBat = &atBat
	}
	if that.LastPlay != nil {
		play := *that.LastPlay
		play.Advances = append([]Advance(nil), that.LastPlay.Advances...)
		out.LastPlay = &play
	}
	if that.Pending.Offense != nil {
		offense := *that.Pending.Offense
		out.Pending.Offense = &offense
	}
	if that.Pending.Defense != nil {
		defense := *that.Pending.Defense
		out.Pending.Defense = &defense
	}
	if that.Result != nil {
		result := that.Result.Clone()
		out.Result = &result
	}

	return out
}

func (that GameState) BattingSide() Side {
	if that.Half == HalfBottom {
		return SideHome
	}
	return SideAway
}

func (that GameState) FieldingSide() Side {
	return that.BattingSide().Other()
}

func (that *GameState) Team(side Side) *TeamInGame {
	if side == SideHome {
		return &that.Home
	}
	return &that.Away
}

func (that *GameState) Batting() *TeamInGame {
	return that.Team(that.BattingSide())
}

func (that *GameState) Fielding() *TeamInGame {
	return that.Team(that.FieldingSide())
}

func (that GameState) Runs(side Side) int {
	return that.Score.Total(side)
}

// ScoreGap is the absolute run difference.
func (that GameState) ScoreGap() int {
	gap := that.Runs(SideHome) - that.Runs(SideAway)
	if gap < 0 {
		return -gap
	}
	return gap
}

func (that GameState) InstructionContext() InstructionContext {
	fielding := that.Away
	if that.FieldingSide() == SideHome {
		fielding = that.Home
	}

	return InstructionContext{
		Outs:           that.Outs,
		Runners:        that.Runners,
		Shift:          that.Shift,
		RelieversReady: len(fielding.Relievers()),
	}
}

func (that GameState) IsFinished() bool {
	return that.Phase == PhaseGameEnd
}

// AwaitingDecision reports whether a side still owes an instruction for the current at-bat.
func (that GameState) AwaitingDecision(side Side) bool {
	if that.Phase != PhaseAwaitingInstruction {
		return false
	}
	if side == that.BattingSide() {
		return that.Pending.Offense == nil
	}
	return that.Pending.Defense == nil
}

func (that GameState) ConfirmOngoingState() error {
	switch that.Phase {
	case PhaseIdle, PhaseTeamSetup, PhaseLineupEdit:
		return apperror.ErrGameIsNotStarted
	case PhaseGameEnd:
		return apperror.ErrGameFinished
	case PhaseInningStart, PhaseAtBat, PhaseAwaitingInstruction, PhasePlayExecution,
		PhaseResultDisplay, PhaseHalfInningEnd, PhaseGameEndCheck:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPhase, that.Phase)
	}
}
