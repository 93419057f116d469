// Package engine is the game state machine. Transition is a pure reducer:
// it takes a state and an event and returns the next state, never mutating
// its input. Everything random flows through the injected dice.Source.
package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/atbat"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/tactics"
)

type Clock func() time.Time

type Engine struct {
	logger *slog.Logger
	rng    dice.Source
	mode   atbat.Mode
	now    Clock
}

type Option func(*Engine)

func WithMode(mode atbat.Mode) Option {
	return func(e *Engine) {
		if mode == atbat.ModePitch || mode == atbat.ModeFast {
			e.mode = mode
		}
	}
}

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

func New(logger *slog.Logger, rng dice.Source, opts ...Option) *Engine {
	e := &Engine{
		logger: logger.With("component", "engine"),
		rng:    rng,
		mode:   atbat.ModeFast,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (that *Engine) Mode() atbat.Mode {
	return that.mode
}

// Apply is Transition for callers that only want the next state. Rejected
// events leave the state untouched and are logged as warnings.
func (that *Engine) Apply(state entity.GameState, ev Event) entity.GameState {
	next, err := that.Transition(state, ev)
	if err != nil {
		that.logger.Warn("event rejected",
			slog.String("game_id", state.ID),
			slog.String("event", ev.Name()),
			slog.String("phase", string(state.Phase)),
			slog.Any("error", err))
	}
	return next
}

// Transition applies ev to state.
//
// An event that the current phase does not accept returns the input state
// unchanged with apperror.ErrIllegalPhaseTransition. An invalid instruction
// is replaced by the normal one and reported with apperror.ErrInvalidInstruction;
// the returned state is still the one to keep.
func (that *Engine) Transition(state entity.GameState, ev Event) (entity.GameState, error) {
	if !allowedIn(ev, state.Phase) {
		return state, fmt.Errorf("%w: %s during %s", apperror.ErrIllegalPhaseTransition, ev.Name(), state.Phase)
	}

	next := state.Clone()
	var err error

	switch e := ev.(type) {
	case SetupTeams:
		next.Phase = entity.PhaseTeamSetup
		next.CreatedAt = that.now()
	case AssignTeams:
		next.Away = e.Away.Clone()
		next.Home = e.Home.Clone()
		next.Phase = entity.PhaseLineupEdit
	case EditLineup:
		if err = editLineup(&next, e); err != nil {
			return state, err
		}
	case StartGame:
		if err = that.startGame(&next); err != nil {
			return state, err
		}
	case BeginInning:
		that.beginInning(&next)
	case BeginAtBat:
		that.beginAtBat(&next)
	case SubmitOffense:
		err = that.submitOffense(&next, e.Decision)
	case SubmitDefense:
		err = that.submitDefense(&next, e.Decision)
	case ExecutePlay:
		that.executePlay(&next)
	case Continue:
		that.continuePlay(&next)
	case EndHalfInning:
		that.endHalfInning(&next)
	case CheckGameEnd:
		that.checkGameEnd(&next)
	case Reset:
		next = entity.NewGameState(state.ID, state.Rules)
		next.CreatedAt = state.CreatedAt
	}

	next.UpdatedAt = that.now()
	return next, err
}

func editLineup(state *entity.GameState, e EditLineup) error {
	team := state.Team(e.Side)
	edited := team.Clone()
	edited.Lineup = append([]string(nil), e.Lineup...)
	if e.Defense != nil {
		edited.Defense = make(map[entity.Position]string, len(e.Defense))
		for pos, id := range e.Defense {
			edited.Defense[pos] = id
		}
	}

	if !edited.ValidateLineup() {
		return fmt.Errorf("%w: %s team", apperror.ErrInvalidLineup, e.Side)
	}

	edited.Bench = benchOf(edited)
	*team = edited
	return nil
}

// benchOf lists players neither batting nor fielding. Previous bench order is kept,
// newcomers follow sorted by id.
func benchOf(team entity.TeamInGame) []string {
	active := make(map[string]bool, len(team.Lineup)+len(team.Defense))
	for _, id := range team.Lineup {
		active[id] = true
	}
	for _, id := range team.Defense {
		active[id] = true
	}

	bench := make([]string, 0, len(team.Players))
	for _, id := range team.Bench {
		if !active[id] {
			bench = append(bench, id)
		}
	}
	seen := make(map[string]bool, len(bench))
	for _, id := range bench {
		seen[id] = true
	}
	for _, id := range sortedIDs(team.Players) {
		if !active[id] && !seen[id] {
			bench = append(bench, id)
		}
	}
	return bench
}

func (that *Engine) startGame(state *entity.GameState) error {
	for _, side := range []entity.Side{entity.SideAway, entity.SideHome} {
		if !state.Team(side).ValidateLineup() {
			return fmt.Errorf("%w: %s team", apperror.ErrInvalidLineup, side)
		}
	}

	state.Inning = 1
	state.Half = entity.HalfTop
	state.Outs = 0
	state.Score = entity.LineScore{}
	state.Runners = entity.RunnerState{}
	state.Shift = entity.ShiftNormal
	state.AtBat = nil
	state.Pending = entity.Pending{}
	state.LastPlay = nil
	state.Result = nil
	state.Phase = entity.PhaseInningStart

	that.record(state, entity.EventInning, state.Home.Controller,
		"Play ball! %s at %s", state.Away.Name, state.Home.Name)
	return nil
}

func (that *Engine) beginInning(state *entity.GameState) {
	half := "Top"
	if state.Half == entity.HalfBottom {
		half = "Bottom"
	}
	that.record(state, entity.EventInning, state.Batting().Controller,
		"%s of the %s, %s batting", half, ordinal(state.Inning), state.Batting().Name)
	state.Phase = entity.PhaseAtBat
}

func (that *Engine) beginAtBat(state *entity.GameState) {
	batting := state.Batting()
	fielding := state.Fielding()

	batterID := batting.CurrentBatterID()
	pitcherID := fielding.PitcherID()

	if state.AtBat == nil || state.AtBat.BatterID != batterID {
		state.AtBat = &entity.AtBatContext{BatterID: batterID, PitcherID: pitcherID}

		name := batterID
		if batter, ok := batting.Player(batterID); ok {
			name = batter.Rating.Name
		}
		that.record(state, entity.EventAtBat, batting.Controller, "Now batting: %s", name)
	}
	state.AtBat.PitcherID = pitcherID
	state.Pending = entity.Pending{}
	state.Phase = entity.PhaseAwaitingInstruction
}

func (that *Engine) submitOffense(state *entity.GameState, decision entity.OffensiveDecision) error {
	if decision.Source == "" {
		decision.Source = state.Batting().Controller
	}

	var err error
	if !decision.Instruction.Valid(state.InstructionContext()) {
		err = fmt.Errorf("%w: %s", apperror.ErrInvalidInstruction, decision.Instruction)
		that.warn(state, decision.Source, "%s is not possible now, swinging away", decision.Instruction)
		decision = entity.OffensiveDecision{
			Instruction: entity.OffenseNormalSwing,
			Reason:      "Requested instruction was not possible",
			Source:      decision.Source,
		}
	}

	state.Pending.Offense = &decision
	if decision.Instruction != entity.OffenseNormalSwing {
		that.record(state, entity.EventInstruction, decision.Source, "Offense: %s. %s", decision.Instruction, decision.Reason)
	}
	return err
}

func (that *Engine) submitDefense(state *entity.GameState, decision entity.DefensiveDecision) error {
	if decision.Source == "" {
		decision.Source = state.Fielding().Controller
	}

	var err error
	if reason, ok := that.checkDefense(state, &decision); !ok {
		err = fmt.Errorf("%w: %s", apperror.ErrInvalidInstruction, reason)
		that.warn(state, decision.Source, "%s, pitching normally", reason)
		decision = entity.DefensiveDecision{
			Instruction: entity.DefenseNormal,
			Reason:      "Requested instruction was not possible",
			Source:      decision.Source,
		}
	}

	state.Pending.Defense = &decision
	if decision.Instruction != entity.DefenseNormal {
		that.record(state, entity.EventInstruction, decision.Source, "Defense: %s. %s", decision.Instruction, decision.Reason)
	}
	return err
}

// checkDefense validates a defensive decision, filling in the best reliever
// when a pitcher change names none.
func (that *Engine) checkDefense(state *entity.GameState, decision *entity.DefensiveDecision) (string, bool) {
	if !decision.Instruction.Valid(state.InstructionContext()) {
		return fmt.Sprintf("%s is not possible now", decision.Instruction), false
	}

	switch decision.Instruction {
	case entity.DefenseShiftChange:
		if !decision.Shift.Valid() {
			return fmt.Sprintf("unknown shift %q", decision.Shift), false
		}
	case entity.DefensePitcherChange:
		relievers := state.Fielding().Relievers()
		if decision.RelieverID == "" {
			best, ok := tactics.BestReliever(relievers)
			if !ok {
				return "no reliever available", false
			}
			decision.RelieverID = best.Rating.ID
			return "", true
		}
		for _, reliever := range relievers {
			if reliever.Rating.ID == decision.RelieverID {
				return "", true
			}
		}
		return fmt.Sprintf("%s cannot pitch", decision.RelieverID), false
	case entity.DefenseNormal, entity.DefenseIntentionalWalk:
	}
	return "", true
}

func (that *Engine) continuePlay(state *entity.GameState) {
	switch {
	case state.Outs >= entity.MaxOuts:
		state.Phase = entity.PhaseHalfInningEnd
	case walkOff(*state):
		state.Phase = entity.PhaseGameEndCheck
	default:
		state.Phase = entity.PhaseAtBat
	}
}

func (that *Engine) endHalfInning(state *entity.GameState) {
	batting := state.Batting()
	left := state.Runners.Count()
	batting.LeftOnBase += left

	// keeps the line score complete for scoreless halves
	state.Score.Add(state.BattingSide(), state.Inning, 0)

	that.record(state, entity.EventInning, batting.Controller,
		"Side retired, %d left on base", left)

	state.Runners = entity.RunnerState{}
	state.Outs = 0
	state.AtBat = nil
	state.Pending = entity.Pending{}
	state.Shift = entity.ShiftNormal
	state.Phase = entity.PhaseGameEndCheck
}

func (that *Engine) checkGameEnd(state *entity.GameState) {
	if kind, over := gameOver(*state); over {
		that.finish(state, kind)
		return
	}

	if state.Half == entity.HalfTop {
		state.Half = entity.HalfBottom
	} else {
		state.Half = entity.HalfTop
		state.Inning++
	}
	state.Phase = entity.PhaseInningStart
}

func (that *Engine) record(state *entity.GameState, kind entity.EventType, source entity.Controller, format string, args ...any) {
	state.Log = append(state.Log, entity.PlayEvent{
		Seq:         len(state.Log) + 1,
		Time:        that.now(),
		Inning:      state.Inning,
		Half:        state.Half,
		Description: fmt.Sprintf(format, args...),
		Type:        kind,
		Source:      source,
	})
}

func (that *Engine) warn(state *entity.GameState, source entity.Controller, format string, args ...any) {
	that.logger.Warn("instruction rejected",
		slog.String("game_id", state.ID),
		slog.String("detail", fmt.Sprintf(format, args...)))
	that.record(state, entity.EventWarning, source, format, args...)
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func sortedIDs(players map[string]entity.PlayerInGame) []string {
	return slices.Sorted(maps.Keys(players))
}
