package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

type gamePlay interface {
	CreateGame(ctx context.Context, req service.NewGame) (*entity.GameState, error)
	EditLineup(ctx context.Context, gameID string, side entity.Side, lineup []string, defense map[entity.Position]string) (*entity.GameState, error)
	StartGame(ctx context.Context, gameID string) (*entity.GameState, error)
	SubmitOffense(ctx context.Context, gameID string, decision entity.OffensiveDecision) (*entity.GameState, error)
	SubmitDefense(ctx context.Context, gameID string, decision entity.DefensiveDecision) (*entity.GameState, error)
	Step(ctx context.Context, gameID string) (*entity.GameState, error)
	Simulate(ctx context.Context, gameID string) (*entity.GameState, error)
	Reset(ctx context.Context, gameID string) (*entity.GameState, error)
	GetGame(ctx context.Context, gameID string) (*entity.GameState, error)
	GetResult(ctx context.Context, gameID string) (*entity.GameResult, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type resultBoard interface {
	RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error)
	TeamWins(ctx context.Context, teamID string) (int, error)
}

type Server struct {
	logger  *slog.Logger
	games   *gameHandler
	results *resultHandler
	ping    PingHandler
}

func New(logger *slog.Logger, games gamePlay, results resultBoard, ping Pinger) *Server {
	log := logger.With("component", "rest")

	return &Server{
		logger:  log,
		games:   &gameHandler{logger: log, games: games},
		results: &resultHandler{logger: log, results: results},
		ping:    NewPingHandler(log, ping),
	}
}

// Router builds the HTTP routes.
func (that *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/ping", that.ping.PingHandler)

	r.Route("/games", func(r chi.Router) {
		r.Post("/", that.games.create)

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", that.games.get)
			r.Delete("/", that.games.delete)
			r.Put("/lineup", that.games.editLineup)
			r.Post("/start", that.games.start)
			r.Post("/offense", that.games.offense)
			r.Post("/defense", that.games.defense)
			r.Post("/step", that.games.step)
			r.Post("/simulate", that.games.simulate)
			r.Post("/reset", that.games.reset)
			r.Get("/result", that.games.result)
		})
	})

	r.Get("/results", that.results.recent)
	r.Get("/teams/{teamID}/wins", that.results.wins)

	return r
}

// Start serves until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
