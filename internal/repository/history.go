package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// HistoryRepository writes finished games to the match-history database.
type HistoryRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	CountWins(ctx context.Context, teamID string) (int, error)
}

type historyRepository struct {
	conn *sql.DB
}

func NewHistoryRepository(conn *sql.DB) HistoryRepository {
	return &historyRepository{
		conn: conn,
	}
}

// Save is idempotent per game id.
func (that *historyRepository) Save(ctx context.Context, result *entity.GameResult) error {
	query := `
		INSERT INTO game_results (
			game_id, away_team, home_team, away_runs, home_runs,
			innings, winner, draw, game_type, mvp_player, line_score, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (game_id) DO NOTHING`

	lineScore, err := json.Marshal(map[string][]int{
		"away": result.Away.Innings,
		"home": result.Home.Innings,
	})
	if err != nil {
		return fmt.Errorf("can't marshal line score: %w", err)
	}

	var winner, mvp sql.NullString
	if team, ok := result.WinnerTeam(); ok {
		winner = sql.NullString{String: team.TeamID, Valid: true}
	}
	if result.MVP != nil {
		mvp = sql.NullString{String: result.MVP.PlayerID, Valid: true}
	}

	_, err = that.conn.ExecContext(ctx, query,
		result.GameID, result.Away.TeamID, result.Home.TeamID, result.Away.Runs, result.Home.Runs,
		result.Innings, winner, result.Draw, string(result.Type), mvp, lineScore, result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("can't save game result: %w", err)
	}

	return nil
}

func (that *historyRepository) CountWins(ctx context.Context, teamID string) (int, error) {
	query := `SELECT COUNT(*) FROM game_results WHERE winner = $1`

	var wins int
	if err := that.conn.QueryRowContext(ctx, query, teamID).Scan(&wins); err != nil {
		return 0, fmt.Errorf("can't count wins: %w", err)
	}

	return wins, nil
}
