package engine

import (
	"log/slog"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// maxSteps bounds Simulate in case a broken manager keeps the game from moving.
const maxSteps = 100000

// Manager makes the tactical calls for one side. tactics.CPU is one;
// a side without a manager is waiting on a human.
type Manager interface {
	Offense(state entity.GameState, side entity.Side) entity.OffensiveDecision
	Defense(state entity.GameState, side entity.Side) entity.DefensiveDecision
}

type Managers map[entity.Side]Manager

// Step applies the next automatic event, asking managers for any decision
// still owed. It reports false when nothing could be applied: the game has
// not started, has ended, or waits on a side without a manager.
func (that *Engine) Step(state entity.GameState, managers Managers) (entity.GameState, bool) {
	var ev Event

	switch state.Phase {
	case entity.PhaseInningStart:
		ev = BeginInning{}
	case entity.PhaseAtBat:
		ev = BeginAtBat{}
	case entity.PhaseResultDisplay:
		ev = Continue{}
	case entity.PhaseHalfInningEnd:
		ev = EndHalfInning{}
	case entity.PhaseGameEndCheck:
		ev = CheckGameEnd{}
	case entity.PhasePlayExecution:
		// not reachable between transitions; a stored state stuck here is replayed
		state.Phase = entity.PhaseAwaitingInstruction
		ev = ExecutePlay{}
	case entity.PhaseAwaitingInstruction:
		ev = nextDecision(state, managers)
		if ev == nil {
			return state, false
		}
	default:
		return state, false
	}

	next, err := that.Transition(state, ev)
	if err != nil {
		that.logger.Warn("step", slog.String("game_id", state.ID), slog.String("event", ev.Name()), slog.Any("error", err))
	}
	return next, true
}

// nextDecision returns the decision to submit next, ExecutePlay once both
// are in, or nil when a human has to decide.
func nextDecision(state entity.GameState, managers Managers) Event {
	fielding := state.FieldingSide()
	if state.Pending.Defense == nil {
		manager, ok := managers[fielding]
		if !ok || manager == nil {
			return nil
		}
		return SubmitDefense{Decision: manager.Defense(state, fielding)}
	}

	batting := state.BattingSide()
	if state.Pending.Offense == nil {
		manager, ok := managers[batting]
		if !ok || manager == nil {
			return nil
		}
		return SubmitOffense{Decision: manager.Offense(state, batting)}
	}

	return ExecutePlay{}
}

// Simulate steps the game until it ends or waits on a human.
func (that *Engine) Simulate(state entity.GameState, managers Managers) entity.GameState {
	for range maxSteps {
		next, ok := that.Step(state, managers)
		if !ok {
			return next
		}
		state = next
	}

	that.logger.Error("simulation did not settle", slog.String("game_id", state.ID), slog.Int("steps", maxSteps))
	return state
}
