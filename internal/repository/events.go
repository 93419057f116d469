package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// EventPublisher appends play events to a per-game redis stream.
type EventPublisher struct {
	client *redis.Client
	maxLen int64
}

// NewEventPublisher keeps roughly maxLen entries per stream; zero keeps all.
func NewEventPublisher(client *redis.Client, maxLen int64) *EventPublisher {
	return &EventPublisher{
		client: client,
		maxLen: maxLen,
	}
}

func StreamKey(gameID string) string {
	return "games.events." + gameID
}

func (that *EventPublisher) Publish(ctx context.Context, gameID string, events []entity.PlayEvent) error {
	_, err := that.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, event := range events {
			data, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("marshaling play event: %w", err)
			}

			pipe.XAdd(ctx, &redis.XAddArgs{
				Stream: StreamKey(gameID),
				MaxLen: that.maxLen,
				Approx: that.maxLen > 0,
				Values: map[string]any{
					"data":    string(data),
					"game_id": gameID,
					"type":    string(event.Type),
					"seq":     event.Seq,
				},
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("publishing play events: %w", err)
	}

	return nil
}
