package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

var (
	errGameRequired     = errors.New("game_id is required")
	errDecisionRequired = errors.New("decision is required")
)

func (that *Server) handleGet(ctx context.Context, payload Payload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameRequired
	}
	return that.games.GetGame(ctx, payload.GameID)
}

func (that *Server) handleOffense(ctx context.Context, payload Payload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameRequired
	}
	if payload.Offense == nil {
		return nil, errDecisionRequired
	}
	return that.games.SubmitOffense(ctx, payload.GameID, *payload.Offense)
}

func (that *Server) handleDefense(ctx context.Context, payload Payload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameRequired
	}
	if payload.Defense == nil {
		return nil, errDecisionRequired
	}
	return that.games.SubmitDefense(ctx, payload.GameID, *payload.Defense)
}

func (that *Server) handleStep(ctx context.Context, payload Payload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameRequired
	}
	return that.games.Step(ctx, payload.GameID)
}
