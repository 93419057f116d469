package atbat

import (
	"fmt"

	"github.com/rocketscienceinc/ballpark-backend/internal/ability"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// BuntInput is everything the bunt and squeeze resolver needs.
type BuntInput struct {
	Matchup Matchup
	Batter  entity.Runner
	Runners entity.RunnerState
	Outs    int
	Squeeze bool
	// FielderArm is the arm of the fielder charging the bunt.
	FielderArm float64
}

// BuntOdds returns the chance in percent that the bunt is put down fair and well placed.
func BuntOdds(in BuntInput) float64 {
	neutral := ability.NeutralRating
	success := 45 + (in.Matchup.Batter.Bunt-neutral)*0.6 - (in.Matchup.Pitcher.Stuff-neutral)*0.2
	if in.Squeeze {
		success -= 5
	}
	return ability.ClampPercent(success)
}

// ResolveBunt resolves a sacrifice bunt or a squeeze play.
//
// A good bunt is either beaten out for a hit or becomes a sacrifice that moves
// every runner up one base. The runner on third only breaks for home on a squeeze.
// A failed bunt is popped up for an out with runners holding, or on a squeeze
// the runner from third is caught in a rundown while the batter reaches first.
func ResolveBunt(in BuntInput, rng dice.Source) entity.PlayResult {
	pitches := 1
	if rng.Roll() < 35 {
		pitches = 2
	}

	if dice.Chance(rng, BuntOdds(in)) {
		hit := 8 + (in.Matchup.Batter.Speed-ability.NeutralRating)*0.4 - (in.FielderArm-ability.NeutralRating)*0.2
		if in.Runners.Empty() {
			hit += 10
		}
		if dice.Chance(rng, ability.ClampPercent(hit)) {
			return buntHit(in, pitches)
		}
		return sacrifice(in, pitches)
	}

	if in.Squeeze && in.Runners.Third != nil {
		return failedSqueeze(in, pitches)
	}

	return entity.PlayResult{
		Kind:                entity.PlayBuntOut,
		Advances:            []entity.Advance{{RunnerID: in.Batter.ID, Name: in.Batter.Name, From: entity.BaseBatter, To: entity.BaseFirst, Out: true}},
		Outs:                1,
		Pitches:             pitches,
		Fielder:             entity.PositionCatcher,
		EndsPlateAppearance: true,
		Description:         fmt.Sprintf("%s pops up the bunt attempt", in.Batter.Name),
	}
}

func buntHit(in BuntInput, pitches int) entity.PlayResult {
	advances := []entity.Advance{{RunnerID: in.Batter.ID, Name: in.Batter.Name, From: entity.BaseBatter, To: entity.BaseFirst}}
	switch {
	case in.Squeeze:
		advances = append(advances, sacrificeAdvances(in.Runners, true)...)
	case in.Runners.First != nil:
		advances = append(advances, in.Runners.ForcedAdvances()...)
	default:
		advances = append(advances, sacrificeAdvances(in.Runners, false)...)
	}

	runs := countRuns(advances)
	return entity.PlayResult{
		Kind:                entity.PlayBuntHit,
		Advances:            advances,
		Runs:                runs,
		RBI:                 runs,
		Pitches:             pitches,
		Fielder:             entity.PositionThirdBase,
		EndsPlateAppearance: true,
		Description:         fmt.Sprintf("%s beats out a bunt single", in.Batter.Name),
	}
}

func sacrifice(in BuntInput, pitches int) entity.PlayResult {
	advances := []entity.Advance{{RunnerID: in.Batter.ID, Name: in.Batter.Name, From: entity.BaseBatter, To: entity.BaseFirst, Out: true}}
	advances = append(advances, sacrificeAdvances(in.Runners, in.Squeeze)...)

	runs := 0
	if in.Outs+1 < entity.MaxOuts {
		runs = countRuns(advances)
	}

	kind := entity.PlaySacrificeBunt
	description := fmt.Sprintf("%s lays down a sacrifice bunt", in.Batter.Name)
	if in.Squeeze && runs > 0 {
		kind = entity.PlaySqueeze
		description = fmt.Sprintf("%s squeezes the run home", in.Batter.Name)
	}

	return entity.PlayResult{
		Kind:                kind,
		Advances:            advances,
		Outs:                1,
		Runs:                runs,
		RBI:                 runs,
		Pitches:             pitches,
		Fielder:             entity.PositionPitcher,
		Assist:              entity.PositionFirstBase,
		EndsPlateAppearance: true,
		Description:         description,
	}
}

func failedSqueeze(in BuntInput, pitches int) entity.PlayResult {
	third := in.Runners.Third
	advances := []entity.Advance{
		{RunnerID: third.ID, Name: third.Name, From: entity.BaseThird, To: entity.BaseHome, Out: true},
		{RunnerID: in.Batter.ID, Name: in.Batter.Name, From: entity.BaseBatter, To: entity.BaseFirst},
	}
	if adv, ok := in.Runners.Moves(entity.BaseSecond, entity.BaseThird, false); ok {
		advances = append(advances, adv)
	}
	if adv, ok := in.Runners.Moves(entity.BaseFirst, entity.BaseSecond, false); ok {
		advances = append(advances, adv)
	}

	return entity.PlayResult{
		Kind:                entity.PlayFieldersChoice,
		Advances:            advances,
		Outs:                1,
		Pitches:             pitches,
		Fielder:             entity.PositionCatcher,
		EndsPlateAppearance: true,
		Description:         fmt.Sprintf("Squeeze fails, %s is run down between third and home", third.Name),
	}
}

// sacrificeAdvances moves each runner up one base, lead runner first. The
// runner on third holds unless it is a squeeze, and a holding runner blocks
// the runners behind.
func sacrificeAdvances(runners entity.RunnerState, squeeze bool) []entity.Advance {
	var advances []entity.Advance
	blocked := false

	if runners.Third != nil {
		if squeeze {
			adv, _ := runners.Moves(entity.BaseThird, entity.BaseHome, false)
			advances = append(advances, adv)
		} else {
			blocked = true
		}
	}

	if runners.Second != nil && !blocked {
		adv, _ := runners.Moves(entity.BaseSecond, entity.BaseThird, false)
		advances = append(advances, adv)
	}

	if runners.First != nil && !(blocked && runners.Second != nil) {
		adv, _ := runners.Moves(entity.BaseFirst, entity.BaseSecond, false)
		advances = append(advances, adv)
	}

	return advances
}

func countRuns(advances []entity.Advance) int {
	runs := 0
	for _, adv := range advances {
		if adv.Scored() {
			runs++
		}
	}
	return runs
}
