package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

var errHistoryDown = errors.New("history database down")

func TestResultService_SaveResult(t *testing.T) {
	ctx := context.Background()
	result := &entity.GameResult{GameID: "g1", Type: entity.GameTypeRegulation}

	t.Run("Stores and delivers to every sink", func(t *testing.T) {
		// Given: a store and two sinks
		repo := &mockResultRepo{}
		first, second := &mockResultSink{}, &mockResultSink{}

		repo.On("Save", mock.Anything, result).Return(nil).Once()
		first.On("Save", mock.Anything, result).Return(nil).Once()
		second.On("Save", mock.Anything, result).Return(nil).Once()

		svc := NewResultService(discard(), repo, nil, first, second)

		// When: SaveResult is called
		err := svc.SaveResult(ctx, result)

		// Then: all of them received the result
		require.NoError(t, err)
		repo.AssertExpectations(t)
		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("A failing sink does not stop the others", func(t *testing.T) {
		// Given: a first sink that fails
		repo := &mockResultRepo{}
		first, second := &mockResultSink{}, &mockResultSink{}

		repo.On("Save", mock.Anything, result).Return(nil).Once()
		first.On("Save", mock.Anything, result).Return(errHistoryDown).Once()
		second.On("Save", mock.Anything, result).Return(nil).Once()

		svc := NewResultService(discard(), repo, nil, first, second)

		// When: SaveResult is called
		err := svc.SaveResult(ctx, result)

		// Then: the failure is reported and the second sink still got the result
		require.ErrorIs(t, err, errHistoryDown)
		second.AssertExpectations(t)
	})

	t.Run("Store failure skips the sinks", func(t *testing.T) {
		// Given: a store that fails
		repo := &mockResultRepo{}
		sink := &mockResultSink{}
		repo.On("Save", mock.Anything, result).Return(errHistoryDown).Once()

		svc := NewResultService(discard(), repo, nil, sink)

		// When: SaveResult is called
		err := svc.SaveResult(ctx, result)

		// Then: nothing reaches the sink
		require.ErrorIs(t, err, errHistoryDown)
		sink.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestResultService_GetResultByGameID(t *testing.T) {
	// Given: an empty store
	repo := &mockResultRepo{}
	repo.On("Find", mock.Anything, "missing").Return(nil, apperror.ErrResultNotFound).Once()

	svc := NewResultService(discard(), repo, nil)

	// When: the result is requested
	result, err := svc.GetResultByGameID(context.Background(), "missing")

	// Then: ErrResultNotFound is reported
	require.ErrorIs(t, err, apperror.ErrResultNotFound)
	assert.Nil(t, result)
}

func TestResultService_RecentResults(t *testing.T) {
	ctx := context.Background()

	t.Run("Skips expired results", func(t *testing.T) {
		// Given: three recent ids, one of which expired from the store
		repo := &mockResultRepo{}
		repo.On("Recent", mock.Anything, 3).Return([]string{"g3", "g2", "g1"}, nil).Once()
		repo.On("Find", mock.Anything, "g3").Return(&entity.GameResult{GameID: "g3"}, nil).Once()
		repo.On("Find", mock.Anything, "g2").Return(nil, apperror.ErrResultNotFound).Once()
		repo.On("Find", mock.Anything, "g1").Return(&entity.GameResult{GameID: "g1"}, nil).Once()

		svc := NewResultService(discard(), repo, nil)

		// When: the last three are requested
		results, err := svc.RecentResults(ctx, 3)

		// Then: the two still stored come back in order
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "g3", results[0].GameID)
		assert.Equal(t, "g1", results[1].GameID)
	})

	t.Run("Oversized limit is capped", func(t *testing.T) {
		repo := &mockResultRepo{}
		repo.On("Recent", mock.Anything, maxRecent).Return([]string{}, nil).Once()

		svc := NewResultService(discard(), repo, nil)

		results, err := svc.RecentResults(ctx, 1000)

		require.NoError(t, err)
		assert.Empty(t, results)
		repo.AssertExpectations(t)
	})
}

func TestResultService_TeamWins(t *testing.T) {
	ctx := context.Background()

	t.Run("Counts from the match history", func(t *testing.T) {
		// Given: a history with five harbor wins
		standings := &mockWinCounter{}
		standings.On("CountWins", mock.Anything, "harbor").Return(5, nil).Once()

		svc := NewResultService(discard(), &mockResultRepo{}, standings)

		// When: the wins are requested
		wins, err := svc.TeamWins(ctx, "harbor")

		// Then: the count is passed through
		require.NoError(t, err)
		assert.Equal(t, 5, wins)
	})

	t.Run("No match history", func(t *testing.T) {
		svc := NewResultService(discard(), &mockResultRepo{}, nil)

		_, err := svc.TeamWins(ctx, "harbor")

		require.ErrorIs(t, err, apperror.ErrHistoryDisabled)
	})
}
