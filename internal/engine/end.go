package engine

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

func regulationInnings(rules entity.Rules) int {
	if rules.Innings < 1 {
		return entity.DefaultRules().Innings
	}
	return rules.Innings
}

// walkOff reports whether the home team has taken the lead in the bottom of
// the final regulation inning or later.
func walkOff(state entity.GameState) bool {
	return state.Half == entity.HalfBottom &&
		state.Inning >= regulationInnings(state.Rules) &&
		state.Runs(entity.SideHome) > state.Runs(entity.SideAway)
}

// gameOver decides whether the game ends at this check and how it is classified.
// The at-bat context is cleared only when a half-inning ends, so a check that
// still carries one was reached mid-inning through a walk-off.
func gameOver(state entity.GameState) (entity.GameType, bool) {
	rules := state.Rules
	regulation := regulationInnings(rules)
	home, away := state.Runs(entity.SideHome), state.Runs(entity.SideAway)
	inning := state.Inning

	if state.AtBat != nil {
		return entity.GameTypeWalkOff, walkOff(state)
	}

	if inning < regulation && rules.MercyRunGap > 0 && inning >= rules.MercyInning {
		gap := state.ScoreGap()
		// the home team only skips its half when it is the one ahead
		if gap >= rules.MercyRunGap && (state.Half == entity.HalfBottom || home > away) {
			return entity.GameTypeMercy, true
		}
	}

	if inning < regulation {
		return "", false
	}

	played := entity.GameTypeRegulation
	if inning > regulation {
		played = entity.GameTypeExtraInnings
	}

	if state.Half == entity.HalfTop {
		// no bottom half needed when the home team already leads
		return played, home > away
	}

	switch {
	case home > away:
		return entity.GameTypeWalkOff, true
	case away > home:
		return played, true
	case inning >= regulation+max(0, rules.MaxExtraInnings):
		return entity.GameTypeDraw, true
	default:
		return "", false
	}
}

func (that *Engine) finish(state *entity.GameState, kind entity.GameType) {
	batting := state.Batting()
	batting.LeftOnBase += state.Runners.Count()
	state.Runners = entity.RunnerState{}
	state.AtBat = nil
	state.Pending = entity.Pending{}

	result := that.buildResult(*state, kind)
	state.Result = &result
	state.Phase = entity.PhaseGameEnd

	switch {
	case result.Draw:
		that.record(state, entity.EventGameEnd, state.Home.Controller,
			"Game over: %d-%d draw after %d innings", result.Away.Runs, result.Home.Runs, result.Innings)
	default:
		winner, _ := result.WinnerTeam()
		that.record(state, entity.EventGameEnd, state.Team(result.Winner).Controller,
			"Game over (%s): %s win %d-%d", kind, winner.Name, result.Away.Runs, result.Home.Runs)
	}
	if result.MVP != nil {
		that.record(state, entity.EventGameEnd, state.Team(result.Winner).Controller,
			"MVP: %s, %s", result.MVP.Name, result.MVP.Summary)
	}
}

func (that *Engine) buildResult(state entity.GameState, kind entity.GameType) entity.GameResult {
	result := entity.GameResult{
		GameID:     state.ID,
		Away:       teamResult(state, entity.SideAway),
		Home:       teamResult(state, entity.SideHome),
		Innings:    state.Inning,
		Type:       kind,
		FinishedAt: that.now(),
	}

	switch {
	case result.Home.Runs > result.Away.Runs:
		result.Winner = entity.SideHome
	case result.Away.Runs > result.Home.Runs:
		result.Winner = entity.SideAway
	default:
		result.Draw = true
		result.Type = entity.GameTypeDraw
	}

	if !result.Draw {
		result.MVP = selectMVP(*state.Team(result.Winner))
	}
	return result
}

func teamResult(state entity.GameState, side entity.Side) entity.TeamResult {
	team := state.Team(side)
	innings := state.Score.Away
	if side == entity.SideHome {
		innings = state.Score.Home
	}

	return entity.TeamResult{
		TeamID:     team.ID,
		Name:       team.Name,
		Runs:       state.Runs(side),
		Hits:       team.Hits,
		Errors:     team.Errors,
		LeftOnBase: team.LeftOnBase,
		Innings:    append([]int(nil), innings...),
	}
}
