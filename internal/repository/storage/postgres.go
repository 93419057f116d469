package storage

import (
	"context"
	"database/sql"
	"fmt"

	// registers the postgres driver with database/sql.
	_ "github.com/lib/pq"
)

type Storage struct {
	Connection *sql.DB
}

func NewPostgresStorage(ctx context.Context, dsn string) (*Storage, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS game_results (
			game_id     TEXT PRIMARY KEY,
			away_team   TEXT NOT NULL,
			home_team   TEXT NOT NULL,
			away_runs   INTEGER NOT NULL,
			home_runs   INTEGER NOT NULL,
			innings     INTEGER NOT NULL,
			winner      TEXT,
			draw        BOOLEAN NOT NULL,
			game_type   TEXT NOT NULL,
			mvp_player  TEXT,
			line_score  JSONB NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		)`

	if _, err := that.Connection.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}
