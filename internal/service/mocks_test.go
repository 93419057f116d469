package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

type mockRosterRepo struct{ mock.Mock }

func (that *mockRosterRepo) CreateOrUpdate(ctx context.Context, roster *entity.Roster) error {
	args := that.Called(ctx, roster)
	return args.Error(0)
}

func (that *mockRosterRepo) GetByTeamID(ctx context.Context, teamID string) (*entity.Roster, error) {
	args := that.Called(ctx, teamID)
	roster, _ := args.Get(0).(*entity.Roster)
	return roster, args.Error(1)
}

type mockRosterSource struct{ mock.Mock }

func (that *mockRosterSource) GetByTeamID(ctx context.Context, teamID string) (*entity.Roster, error) {
	args := that.Called(ctx, teamID)
	roster, _ := args.Get(0).(*entity.Roster)
	return roster, args.Error(1)
}

func (that *mockRosterSource) List(ctx context.Context) ([]*entity.Roster, error) {
	args := that.Called(ctx)
	rosters, _ := args.Get(0).([]*entity.Roster)
	return rosters, args.Error(1)
}

type mockResultRepo struct{ mock.Mock }

func (that *mockResultRepo) Save(ctx context.Context, result *entity.GameResult) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

func (that *mockResultRepo) Find(ctx context.Context, gameID string) (*entity.GameResult, error) {
	args := that.Called(ctx, gameID)
	result, _ := args.Get(0).(*entity.GameResult)
	return result, args.Error(1)
}

func (that *mockResultRepo) Recent(ctx context.Context, limit int) ([]string, error) {
	args := that.Called(ctx, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockWinCounter struct{ mock.Mock }

func (that *mockWinCounter) CountWins(ctx context.Context, teamID string) (int, error) {
	args := that.Called(ctx, teamID)
	return args.Int(0), args.Error(1)
}

type mockResultSink struct{ mock.Mock }

func (that *mockResultSink) Save(ctx context.Context, result *entity.GameResult) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

type mockPublisher struct{ mock.Mock }

func (that *mockPublisher) Publish(ctx context.Context, gameID string, events []entity.PlayEvent) error {
	args := that.Called(ctx, gameID, events)
	return args.Error(0)
}

// memoryGames keeps games in a map; stored states never alias the caller's.
type memoryGames struct {
	mu    sync.Mutex
	games map[string]entity.GameState
}

func newMemoryGames() *memoryGames {
	return &memoryGames{games: make(map[string]entity.GameState)}
}

func (that *memoryGames) CreateOrUpdate(_ context.Context, game *entity.GameState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = game.Clone()
	return nil
}

func (that *memoryGames) GetByID(_ context.Context, id string) (*entity.GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, apperror.ErrGameNotFound)
	}

	game = game.Clone()
	return &game, nil
}

func (that *memoryGames) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)
	return nil
}
