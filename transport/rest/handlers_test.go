package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/service"
)

type mockGamePlay struct{ mock.Mock }

func (that *mockGamePlay) state(args mock.Arguments) (*entity.GameState, error) {
	game, _ := args.Get(0).(*entity.GameState)
	return game, args.Error(1)
}

func (that *mockGamePlay) CreateGame(ctx context.Context, req service.NewGame) (*entity.GameState, error) {
	return that.state(that.Called(ctx, req))
}

func (that *mockGamePlay) EditLineup(ctx context.Context, gameID string, side entity.Side, lineup []string, defense map[entity.Position]string) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID, side, lineup, defense))
}

func (that *mockGamePlay) StartGame(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID))
}

func (that *mockGamePlay) SubmitOffense(ctx context.Context, gameID string, decision entity.OffensiveDecision) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID, decision))
}

func (that *mockGamePlay) SubmitDefense(ctx context.Context, gameID string, decision entity.DefensiveDecision) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID, decision))
}

func (that *mockGamePlay) Step(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID))
}

func (that *mockGamePlay) Simulate(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID))
}

func (that *mockGamePlay) Reset(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID))
}

func (that *mockGamePlay) GetGame(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.state(that.Called(ctx, gameID))
}

func (that *mockGamePlay) GetResult(ctx context.Context, gameID string) (*entity.GameResult, error) {
	args := that.Called(ctx, gameID)
	result, _ := args.Get(0).(*entity.GameResult)
	return result, args.Error(1)
}

func (that *mockGamePlay) DeleteGame(ctx context.Context, gameID string) error {
	return that.Called(ctx, gameID).Error(0)
}

type mockResultBoard struct{ mock.Mock }

func (that *mockResultBoard) RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	args := that.Called(ctx, limit)
	results, _ := args.Get(0).([]*entity.GameResult)
	return results, args.Error(1)
}

func (that *mockResultBoard) TeamWins(ctx context.Context, teamID string) (int, error) {
	args := that.Called(ctx, teamID)
	return args.Int(0), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(games gamePlay) http.Handler {
	return New(discard(), games, &mockResultBoard{}, nil).Router()
}

func newResultRouter(results resultBoard) http.Handler {
	return New(discard(), &mockGamePlay{}, results, nil).Router()
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		rec := serve(newRouter(&mockGamePlay{}), http.MethodGet, "/ping", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Storage down", func(t *testing.T) {
		// Given: a store that does not answer
		down := func(context.Context) error { return io.ErrClosedPipe }
		router := New(discard(), &mockGamePlay{}, &mockResultBoard{}, down).Router()

		// When: /ping is called
		rec := serve(router, http.MethodGet, "/ping", "")

		// Then: the service reports itself unavailable
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestGameHandler_Create(t *testing.T) {
	t.Run("Creates a game", func(t *testing.T) {
		// Given: a service that creates the game
		games := &mockGamePlay{}
		game := entity.NewGameState("g1", entity.DefaultRules())
		game.Phase = entity.PhaseLineupEdit

		games.On("CreateGame", mock.Anything, service.NewGame{
			AwayTeamID: "harbor",
			HomeTeamID: "summit",
			AwayCPU:    true,
		}).Return(&game, nil).Once()

		// When: POST /games is called
		rec := serve(newRouter(games), http.MethodPost, "/games",
			`{"away_team_id":"harbor","home_team_id":"summit","away_cpu":true}`)

		// Then: the new game is returned
		require.Equal(t, http.StatusCreated, rec.Code)

		var got entity.GameState
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "g1", got.ID)
		assert.Equal(t, entity.PhaseLineupEdit, got.Phase)
		games.AssertExpectations(t)
	})

	t.Run("Missing teams", func(t *testing.T) {
		rec := serve(newRouter(&mockGamePlay{}), http.MethodPost, "/games", `{"away_team_id":"harbor"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGameHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unknown game", err: apperror.ErrGameNotFound, status: http.StatusNotFound},
		{name: "not their turn", err: apperror.ErrNotHumanTurn, status: http.StatusConflict},
		{name: "finished", err: apperror.ErrGameFinished, status: http.StatusConflict},
		{name: "storage down", err: fmt.Errorf("redis: %w", io.ErrUnexpectedEOF), status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: a service failing with the error
			games := &mockGamePlay{}
			games.On("SubmitOffense", mock.Anything, "g1", entity.OffensiveDecision{Instruction: entity.OffenseBunt}).
				Return(nil, fmt.Errorf("submit: %w", tc.err)).Once()

			// When: an offensive instruction is posted
			rec := serve(newRouter(games), http.MethodPost, "/games/g1/offense", `{"instruction":"bunt"}`)

			// Then: the error maps to the status
			assert.Equal(t, tc.status, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestGameHandler_Lineup(t *testing.T) {
	t.Run("Rejects an unknown side", func(t *testing.T) {
		rec := serve(newRouter(&mockGamePlay{}), http.MethodPut, "/games/g1/lineup", `{"side":"bench","lineup":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid lineup", func(t *testing.T) {
		// Given: a service refusing the lineup
		games := &mockGamePlay{}
		games.On("EditLineup", mock.Anything, "g1", entity.SideHome, []string{"a"}, map[entity.Position]string(nil)).
			Return(nil, apperror.ErrInvalidLineup).Once()

		// When: the lineup is submitted
		rec := serve(newRouter(games), http.MethodPut, "/games/g1/lineup", `{"side":"home","lineup":["a"]}`)

		// Then: it is unprocessable
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestGameHandler_Result(t *testing.T) {
	// Given: a finished game
	games := &mockGamePlay{}
	games.On("GetResult", mock.Anything, "g1").
		Return(&entity.GameResult{GameID: "g1", Winner: entity.SideAway, Type: entity.GameTypeMercy}, nil).Once()

	// When: its result is requested
	rec := serve(newRouter(games), http.MethodGet, "/games/g1/result", "")

	// Then: the summary is returned
	require.Equal(t, http.StatusOK, rec.Code)

	var result entity.GameResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, entity.GameTypeMercy, result.Type)
}

func TestGameHandler_Delete(t *testing.T) {
	t.Run("Deletes the game", func(t *testing.T) {
		// Given: a stored game
		games := &mockGamePlay{}
		games.On("DeleteGame", mock.Anything, "g1").Return(nil).Once()

		// When: DELETE /games/g1 is called
		rec := serve(newRouter(games), http.MethodDelete, "/games/g1", "")

		// Then: nothing is left to return
		assert.Equal(t, http.StatusNoContent, rec.Code)
		games.AssertExpectations(t)
	})

	t.Run("Unknown game", func(t *testing.T) {
		games := &mockGamePlay{}
		games.On("DeleteGame", mock.Anything, "nope").Return(fmt.Errorf("get: %w", apperror.ErrGameNotFound)).Once()

		rec := serve(newRouter(games), http.MethodDelete, "/games/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestResultHandler(t *testing.T) {
	t.Run("Recent results", func(t *testing.T) {
		// Given: two finished games
		results := &mockResultBoard{}
		results.On("RecentResults", mock.Anything, 2).
			Return([]*entity.GameResult{{GameID: "g2"}, {GameID: "g1"}}, nil).Once()

		// When: the latest two are requested
		rec := serve(newResultRouter(results), http.MethodGet, "/results?limit=2", "")

		// Then: they come back newest first
		require.Equal(t, http.StatusOK, rec.Code)
		var got []entity.GameResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "g2", got[0].GameID)
	})

	t.Run("Bad limit", func(t *testing.T) {
		rec := serve(newResultRouter(&mockResultBoard{}), http.MethodGet, "/results?limit=-3", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Team wins", func(t *testing.T) {
		results := &mockResultBoard{}
		results.On("TeamWins", mock.Anything, "harbor").Return(7, nil).Once()

		rec := serve(newResultRouter(results), http.MethodGet, "/teams/harbor/wins", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got winsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, winsResponse{TeamID: "harbor", Wins: 7}, got)
	})

	t.Run("No match history", func(t *testing.T) {
		results := &mockResultBoard{}
		results.On("TeamWins", mock.Anything, "harbor").Return(0, apperror.ErrHistoryDisabled).Once()

		rec := serve(newResultRouter(results), http.MethodGet, "/teams/harbor/wins", "")

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})
}
