package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/atbat"
	"github.com/rocketscienceinc/ballpark-backend/internal/defense"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/running"
	"github.com/rocketscienceinc/ballpark-backend/internal/shift"
)

// hitAndRunJump is the head start of a runner going with the pitch.
const hitAndRunJump = 10

// play is the engine's working set for one execution.
type play struct {
	offense  entity.OffensiveDecision
	defense  entity.DefensiveDecision
	batter   entity.Runner
	matchup  atbat.Matchup
	result   entity.PlayResult
	sequence []atbat.Pitch
	// steals are the advances that count as stolen base attempts.
	steals []entity.Advance
}

func (that *Engine) executePlay(state *entity.GameState) {
	state.Phase = entity.PhasePlayExecution

	p := &play{
		offense: entity.OffensiveDecision{Instruction: entity.OffenseNormalSwing, Source: state.Batting().Controller},
		defense: entity.DefensiveDecision{Instruction: entity.DefenseNormal, Source: state.Fielding().Controller},
	}
	if state.Pending.Offense != nil {
		p.offense = *state.Pending.Offense
	}
	if state.Pending.Defense != nil {
		p.defense = *state.Pending.Defense
	}

	if state.AtBat == nil {
		that.beginAtBat(state)
		state.Phase = entity.PhasePlayExecution
	}

	that.applyDefensiveMove(state, p.defense)
	that.prepareMatchup(state, p)

	switch {
	case p.defense.Instruction == entity.DefenseIntentionalWalk:
		p.result = running.Walk(p.batter, state.Runners, true)
	case p.offense.Instruction == entity.OffenseSteal || p.offense.Instruction == entity.OffenseDoubleSteal:
		that.steal(state, p)
	case p.offense.Instruction == entity.OffenseBunt || p.offense.Instruction == entity.OffenseSqueeze:
		that.bunt(state, p)
	default:
		that.swing(state, p)
	}

	that.commit(state, p)
	state.Phase = entity.PhaseResultDisplay
}

func (that *Engine) applyDefensiveMove(state *entity.GameState, decision entity.DefensiveDecision) {
	switch decision.Instruction {
	case entity.DefensePitcherChange:
		that.changePitcher(state, decision)
	case entity.DefenseShiftChange:
		if decision.Shift.Valid() && decision.Shift != state.Shift {
			state.Shift = decision.Shift
			that.record(state, entity.EventShiftChange, decision.Source, "Defense shifts: %s", decision.Shift)
		}
	case entity.DefenseNormal, entity.DefenseIntentionalWalk:
	}
}

// changePitcher brings in the reliever. The old pitcher is removed for the
// rest of the game and the reliever takes the same spot in the batting order.
func (that *Engine) changePitcher(state *entity.GameState, decision entity.DefensiveDecision) {
	fielding := state.Fielding()
	reliever, ok := fielding.Player(decision.RelieverID)
	if !ok || reliever.Removed || !reliever.Rating.IsPitcher() {
		that.warn(state, decision.Source, "%s cannot pitch, keeping the current pitcher", decision.RelieverID)
		return
	}

	oldID := fielding.PitcherID()
	oldName := oldID
	if old, found := fielding.Player(oldID); found {
		oldName = old.Rating.Name
	}

	fielding.Defense[entity.PositionPitcher] = reliever.Rating.ID
	fielding.Update(oldID, func(p *entity.PlayerInGame) { p.Removed = true })

	bench := fielding.Bench[:0:0]
	for _, id := range fielding.Bench {
		if id != reliever.Rating.ID {
			bench = append(bench, id)
		}
	}
	fielding.Bench = bench

	for i, id := range fielding.Lineup {
		if id == oldID {
			fielding.Lineup[i] = reliever.Rating.ID
		}
	}

	if state.AtBat != nil {
		state.AtBat.PitcherID = reliever.Rating.ID
	}
	that.record(state, entity.EventPitcherChange, decision.Source,
		"Pitching change: %s replaces %s", reliever.Rating.Name, oldName)
}

func (that *Engine) prepareMatchup(state *entity.GameState, p *play) {
	batting := state.Batting()
	fielding := state.Fielding()

	batterID := state.AtBat.BatterID
	pitcherID := fielding.PitcherID()

	batter, batterErr := participant(*batting, "batter", batterID)
	pitcher, pitcherErr := participant(*fielding, "pitcher", pitcherID)

	throws := entity.HandRight
	if pitcherErr == nil && pitcher.Rating.Throws != "" {
		throws = pitcher.Rating.Throws
	}

	if batterErr == nil {
		p.batter = entity.Runner{ID: batter.Rating.ID, Name: batter.Rating.Name}
		p.matchup.Batter = ability.EffectiveBatting(batter, throws)
	} else {
		p.batter = entity.Runner{ID: batterID, Name: batterID}
		p.matchup.Batter = ability.NeutralBatting()
		that.warn(state, batting.Controller, "%v, using neutral ratings", batterErr)
	}

	if pitcherErr == nil {
		p.matchup.Pitcher = ability.EffectivePitching(pitcher, p.matchup.Batter.Bats)
	} else {
		p.matchup.Pitcher = ability.NeutralPitching()
		that.warn(state, fielding.Controller, "%v, using neutral ratings", pitcherErr)
	}
}

// participant looks up a player the play cannot go on without.
func participant(team entity.TeamInGame, role, id string) (entity.PlayerInGame, error) {
	player, ok := team.Player(id)
	if !ok {
		return entity.PlayerInGame{}, fmt.Errorf("%w: %s %q", apperror.ErrMissingParticipant, role, id)
	}
	return player, nil
}

func (that *Engine) steal(state *entity.GameState, p *play) {
	result, ok := running.ResolveSteal(running.StealInput{
		Runners:    state.Runners,
		Outs:       state.Outs,
		Double:     p.offense.Instruction == entity.OffenseDoubleSteal,
		CatcherArm: defense.AlignmentOf(*state.Fielding()).CatcherArm(),
		Abilities:  running.AbilitiesOf(*state.Batting()),
	}, that.rng)
	if !ok {
		that.swing(state, p)
		return
	}

	result.Pitches = 1
	result.Count = takenPitch(state.AtBat.Count)
	p.result = result
	p.steals = result.Advances
}

// takenPitch is the count after the batter takes while the runner goes. The
// pitcher throws a strike to give the catcher a clean throw; with two strikes
// it misses, and a full count is fouled off.
func takenPitch(count entity.Count) entity.Count {
	switch {
	case count.Strikes < 2:
		count.Strikes++
	case count.Balls < 3:
		count.Balls++
	}
	return count
}

func (that *Engine) bunt(state *entity.GameState, p *play) {
	arm := ability.NeutralRating
	if third, ok := defense.AlignmentOf(*state.Fielding()).At(entity.PositionThirdBase); ok {
		arm = third.Ability.Arm
	}

	p.result = atbat.ResolveBunt(atbat.BuntInput{
		Matchup:    p.matchup,
		Batter:     p.batter,
		Runners:    state.Runners,
		Outs:       state.Outs,
		Squeeze:    p.offense.Instruction == entity.OffenseSqueeze,
		FielderArm: arm,
	}, that.rng)
}

func (that *Engine) swing(state *entity.GameState, p *play) {
	instruction := p.offense.Instruction
	switch instruction {
	case entity.OffenseSteal, entity.OffenseDoubleSteal, entity.OffenseBunt, entity.OffenseSqueeze:
		instruction = entity.OffenseNormalSwing
	}

	pa, err := atbat.Resolve(p.matchup, state.AtBat.Count, instruction, that.mode, that.rng)
	if err != nil {
		that.logger.Error("plate appearance not resolved", slog.String("game_id", state.ID), slog.Any("error", err))
		pa = atbat.Result{Outcome: atbat.OutcomeStrikeout, Count: entity.Count{Strikes: 3}, Pitches: 3}
	}
	p.sequence = pa.Sequence

	hitAndRun := instruction == entity.OffenseHitAndRun && state.Runners.First != nil

	switch pa.Outcome {
	case atbat.OutcomeStrikeout:
		p.result = entity.PlayResult{
			Kind:                entity.PlayStrikeout,
			Advances:            []entity.Advance{{RunnerID: p.batter.ID, Name: p.batter.Name, From: entity.BaseBatter, To: entity.BaseBatter, Out: true}},
			Outs:                1,
			Fielder:             entity.PositionCatcher,
			EndsPlateAppearance: true,
			Description:         fmt.Sprintf("%s strikes out", p.batter.Name),
		}
		if hitAndRun && state.Outs+1 < entity.MaxOuts {
			that.runOnStrikeout(state, p)
		}
	case atbat.OutcomeWalk:
		p.result = running.Walk(p.batter, state.Runners, false)
	default:
		p.result = that.ballInPlay(state, p, *pa.Ball, hitAndRun)
	}

	p.result.Pitches = pa.Pitches
	p.result.Count = pa.Count
}

// runOnStrikeout lets the runner sent on a hit-and-run finish the steal after a swing and miss.
func (that *Engine) runOnStrikeout(state *entity.GameState, p *play) {
	if state.Runners.Second != nil {
		return
	}

	steal, ok := running.ResolveSteal(running.StealInput{
		Runners:    entity.RunnerState{First: state.Runners.First},
		Outs:       state.Outs + 1,
		CatcherArm: defense.AlignmentOf(*state.Fielding()).CatcherArm(),
		Abilities:  running.AbilitiesOf(*state.Batting()),
		Jump:       hitAndRunJump,
	}, that.rng)
	if !ok {
		return
	}

	p.result.Advances = append(p.result.Advances, steal.Advances...)
	p.result.Outs += steal.Outs
	p.result.Description += ", " + steal.Description
	p.steals = steal.Advances
}

func (that *Engine) ballInPlay(state *entity.GameState, p *play, ball entity.BatBallInfo, hitAndRun bool) entity.PlayResult {
	alignment := defense.AlignmentOf(*state.Fielding())
	abilities := running.AbilitiesOf(*state.Batting())

	avgRange := alignment.OutfieldRange()
	if ball.Type == entity.BallGround {
		avgRange = alignment.InfieldRange()
	}
	pullSide := entity.PullSide(p.matchup.Batter.Bats, p.matchup.Pitcher.Throws)
	modifiers := shift.Compute(state.Shift, pullSide, avgRange)

	fielded := defense.Resolve(defense.Input{
		Ball:        ball,
		Batter:      p.batter,
		BatterSpeed: p.matchup.Batter.Speed,
		Runners:     state.Runners,
		Outs:        state.Outs,
		Shift:       state.Shift,
		Modifiers:   modifiers,
		Alignment:   alignment,
	}, that.rng)
	if fielded.Fallback {
		that.logger.Warn("fielder missing, using fallback", slog.String("game_id", state.ID), slog.String("primary", string(fielded.Primary)))
	}

	result := running.Resolve(running.Input{
		Fielding:  fielded,
		Ball:      ball,
		Batter:    p.batter,
		Runners:   state.Runners,
		Outs:      state.Outs,
		Abilities: abilities,
		Modifiers: modifiers,
		HitAndRun: hitAndRun,
	}, that.rng)
	result.Ball = &ball
	return result
}

// commit writes a resolved play into the game state: runners, outs, score,
// box score lines and the play log.
func (that *Engine) commit(state *entity.GameState, p *play) {
	result := p.result
	batting := state.Batting()
	fielding := state.Fielding()
	battingSide := state.BattingSide()

	runners, scored := state.Runners.ApplyAdvances(p.batter, result.Advances)
	state.Runners = runners
	state.Outs = min(entity.MaxOuts, state.Outs+result.Outs)
	if len(scored) > 0 {
		state.Score.Add(battingSide, state.Inning, len(scored))
	}

	if result.EndsPlateAppearance {
		batting.Update(p.batter.ID, func(b *entity.PlayerInGame) { creditBatter(&b.Batting, result) })
	}
	for _, id := range scored {
		batting.Update(id, func(r *entity.PlayerInGame) { r.Batting.Runs++ })
	}
	for _, adv := range p.steals {
		if adv.From == entity.BaseBatter {
			continue
		}
		batting.Update(adv.RunnerID, func(r *entity.PlayerInGame) {
			if adv.Out {
				r.Batting.CaughtStealing++
			} else {
				r.Batting.StolenBases++
			}
		})
	}

	fielding.Update(fielding.PitcherID(), func(pitcher *entity.PlayerInGame) {
		creditPitcher(pitcher, result, len(scored))
	})

	if result.Kind.IsHit() {
		batting.Hits++
	}
	if result.Error != entity.ErrorNone {
		fielding.Errors++
	}

	if state.AtBat != nil {
		state.AtBat.Count = result.Count
	}
	if result.EndsPlateAppearance {
		batting.AdvanceBatter()
	}

	result.Runs = len(scored)
	state.LastPlay = &result
	state.Pending = entity.Pending{}

	that.logPlay(state, p, scored)
}

func creditBatter(line *entity.BattingLine, result entity.PlayResult) {
	line.PlateAppearances++
	if result.Kind.CountsAsAtBat() {
		line.AtBats++
	}
	line.RBI += result.RBI
	line.TotalBases += result.Kind.Bases()

	switch result.Kind {
	case entity.PlaySingle, entity.PlayBuntHit:
		line.Hits++
	case entity.PlayDouble:
		line.Hits++
		line.Doubles++
	case entity.PlayTriple:
		line.Hits++
		line.Triples++
	case entity.PlayHomeRun:
		line.Hits++
		line.HomeRuns++
	case entity.PlayWalk, entity.PlayIntentionalWalk:
		line.Walks++
	case entity.PlayStrikeout:
		line.Strikeouts++
	}
}

func creditPitcher(pitcher *entity.PlayerInGame, result entity.PlayResult, runs int) {
	line := &pitcher.Pitching
	line.PitchCount += result.Pitches
	line.Outs += result.Outs
	line.Runs += runs

	if result.EndsPlateAppearance {
		line.BattersFaced++
		switch {
		case result.Kind.IsHit():
			line.Hits++
		case result.Kind == entity.PlayWalk || result.Kind == entity.PlayIntentionalWalk:
			line.Walks++
		case result.Kind == entity.PlayStrikeout:
			line.Strikeouts++
		}
	}

	stamina := ability.NeutralRating
	if ratings, ok := pitcher.Rating.Pitching(); ok {
		stamina = ability.Rating(ratings.Stamina)
	}
	pitcher.Fatigue = ability.FatigueLevelFor(line.PitchCount, stamina)
}

func (that *Engine) logPlay(state *entity.GameState, p *play, scored []string) {
	result := state.LastPlay
	batting := state.Batting()
	source := batting.Controller

	if that.mode == atbat.ModePitch && len(p.sequence) > 0 {
		pitches := make([]string, len(p.sequence))
		for i, pitch := range p.sequence {
			pitches[i] = string(pitch)
		}
		that.record(state, entity.EventPitchSummary, source, "Pitches: %s (%d-%d)",
			strings.Join(pitches, ", "), result.Count.Balls, result.Count.Strikes)
	}

	kind := entity.EventOut
	switch {
	case result.Kind == entity.PlayStrikeout:
		kind = entity.EventStrikeout
		source = state.Fielding().Controller
	case result.Kind == entity.PlayWalk || result.Kind == entity.PlayIntentionalWalk:
		kind = entity.EventWalk
	case result.Kind.IsHit():
		kind = entity.EventHit
	case result.Kind == entity.PlayError:
		kind = entity.EventError
		source = state.Fielding().Controller
	case result.Kind == entity.PlayStolenBase || result.Kind == entity.PlayCaughtStealing:
		kind = entity.EventSteal
	}

	that.record(state, kind, source, "%s", result.Description)

	for _, id := range scored {
		name := id
		if player, ok := batting.Player(id); ok {
			name = player.Rating.Name
		}
		that.record(state, entity.EventRun, batting.Controller, "%s scores (%d-%d)",
			name, state.Runs(entity.SideAway), state.Runs(entity.SideHome))
	}
}
