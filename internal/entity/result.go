package entity

import "time"

type GameType string

const (
	GameTypeRegulation   GameType = "regulation"
	GameTypeExtraInnings GameType = "extra_innings"
	GameTypeMercy        GameType = "mercy"
	GameTypeWalkOff      GameType = "walk_off"
	GameTypeDraw         GameType = "draw"
)

type MVP struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	TeamID   string  `json:"team_id"`
	Pitcher  bool    `json:"pitcher"`
	Score    float64 `json:"score"`
	Summary  string  `json:"summary"`
}

type TeamResult struct {
	TeamID     string `json:"team_id"`
	Name       string `json:"name"`
	Runs       int    `json:"runs"`
	Hits       int    `json:"hits"`
	Errors     int    `json:"errors"`
	LeftOnBase int    `json:"left_on_base"`
	Innings    []int  `json:"innings"`
}

// GameResult is the summary handed to the match-history collaborator.
type GameResult struct {
	GameID     string     `json:"game_id"`
	Away       TeamResult `json:"away"`
	Home       TeamResult `json:"home"`
	Innings    int        `json:"innings"`
	Winner     Side       `json:"winner,omitempty"`
	Draw       bool       `json:"draw"`
	Type       GameType   `json:"type"`
	MVP        *MVP       `json:"mvp,omitempty"`
	FinishedAt time.Time  `json:"finished_at"`
}

func (that GameResult) Clone() GameResult {
	out := that
	out.Away.Innings = append([]int(nil), that.Away.Innings...)
	out.Home.Innings = append([]int(nil), that.Home.Innings...)
	if that.MVP != nil {
		mvp := *that.MVP
		out.MVP = &mvp
	}
	return out
}

func (that GameResult) WinnerTeam() (TeamResult, bool) {
	switch that.Winner {
	case SideAway:
		return that.Away, true
	case SideHome:
		return that.Home, true
	default:
		return TeamResult{}, false
	}
}
