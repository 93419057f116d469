package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// RosterRepository is the roster provider backed by redis. Players are stored
// in their flat record form so the role survives the round trip.
type RosterRepository interface {
	CreateOrUpdate(ctx context.Context, roster *entity.Roster) error
	GetByTeamID(ctx context.Context, teamID string) (*entity.Roster, error)
}

type dbRoster struct {
	client *redis.Client
}

func NewRosterRepository(client *redis.Client) RosterRepository {
	return &dbRoster{
		client: client,
	}
}

func (that *dbRoster) CreateOrUpdate(ctx context.Context, roster *entity.Roster) error {
	rosterJSON, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("failed to marshal roster: %w", err)
	}

	if err = that.client.Set(ctx, "roster:"+roster.TeamID, rosterJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set roster: %w", err)
	}

	return nil
}

func (that *dbRoster) GetByTeamID(ctx context.Context, teamID string) (*entity.Roster, error) {
	response, err := that.client.Get(ctx, "roster:"+teamID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrTeamNotFound, teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	var roster entity.Roster
	if err = json.Unmarshal(response, &roster); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}

	return &roster, nil
}
