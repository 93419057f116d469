package engine

import (
	"fmt"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// pitcherDominance is how far a pitcher must outscore the best batter to take the award.
const pitcherDominance = 1.5

func batterScore(line entity.BattingLine) float64 {
	extraBases := line.Doubles + 2*line.Triples + 3*line.HomeRuns
	return 2*float64(line.Hits) +
		float64(extraBases) +
		1.5*float64(line.RBI) +
		float64(line.Runs) +
		0.5*float64(line.Walks+line.StolenBases)
}

func pitcherScore(line entity.PitchingLine) float64 {
	return float64(line.PitchCount)/15 +
		float64(line.Outs)/3 +
		0.5*float64(line.Strikeouts) -
		float64(line.Runs)
}

type candidate struct {
	player entity.PlayerInGame
	score  float64
}

// selectMVP picks the most valuable player of the winning team. A batter is
// preferred unless a pitcher clearly dominates; a tie at the top picks nobody.
func selectMVP(team entity.TeamInGame) *entity.MVP {
	var batters, pitchers []candidate
	for _, id := range sortedIDs(team.Players) {
		player := team.Players[id]
		if line := player.Batting; line.PlateAppearances > 0 {
			batters = append(batters, candidate{player: player, score: batterScore(line)})
		}
		if line := player.Pitching; line.BattersFaced > 0 {
			pitchers = append(pitchers, candidate{player: player, score: pitcherScore(line)})
		}
	}

	bestBatter, batterTie := best(batters)
	bestPitcher, pitcherTie := best(pitchers)

	if bestPitcher != nil && bestPitcher.score > 0 &&
		(bestBatter == nil || bestPitcher.score > pitcherDominance*bestBatter.score) {
		if pitcherTie {
			return nil
		}
		return mvpOf(team, *bestPitcher, true)
	}

	if bestBatter == nil || bestBatter.score <= 0 || batterTie {
		return nil
	}
	return mvpOf(team, *bestBatter, false)
}

// best returns the top candidate and whether another one shares the score.
func best(candidates []candidate) (*candidate, bool) {
	var top *candidate
	tie := false
	for i := range candidates {
		c := &candidates[i]
		switch {
		case top == nil || c.score > top.score:
			top = c
			tie = false
		case c.score == top.score:
			tie = true
		}
	}
	return top, tie
}

func mvpOf(team entity.TeamInGame, c candidate, pitcher bool) *entity.MVP {
	mvp := &entity.MVP{
		PlayerID: c.player.Rating.ID,
		Name:     c.player.Rating.Name,
		TeamID:   team.ID,
		Pitcher:  pitcher,
		Score:    c.score,
	}

	if pitcher {
		line := c.player.Pitching
		mvp.Summary = fmt.Sprintf("%d.%d IP, %d K, %d R on %d pitches",
			line.Outs/3, line.Outs%3, line.Strikeouts, line.Runs, line.PitchCount)
		return mvp
	}

	line := c.player.Batting
	mvp.Summary = fmt.Sprintf("%d for %d, %d HR, %d RBI, %d R",
		line.Hits, line.AtBats, line.HomeRuns, line.RBI, line.Runs)
	return mvp
}
