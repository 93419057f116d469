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

// recentResults caps the "results" list of finished game ids.
const recentResults = 100

type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	Find(ctx context.Context, gameID string) (*entity.GameResult, error)
	Recent(ctx context.Context, limit int) ([]string, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, "result:"+result.GameID, resultJSON, 0)
		pipe.LPush(ctx, "results", result.GameID)
		pipe.LTrim(ctx, "results", 0, recentResults-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) Find(ctx context.Context, gameID string) (*entity.GameResult, error) {
	response, err := that.client.Get(ctx, "result:"+gameID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var result entity.GameResult
	if err = json.Unmarshal(response, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// Recent lists the ids of the latest finished games, newest first.
func (that *dbResult) Recent(ctx context.Context, limit int) ([]string, error) {
	ids, err := that.client.LRange(ctx, "results", 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	return ids, nil
}
