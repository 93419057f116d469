package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/service"
)

type newGameRequest struct {
	AwayTeamID string            `json:"away_team_id"`
	HomeTeamID string            `json:"home_team_id"`
	AwayCPU    bool              `json:"away_cpu"`
	HomeCPU    bool              `json:"home_cpu"`
	Difficulty entity.Difficulty `json:"difficulty,omitempty"`
	Rules      *entity.Rules     `json:"rules,omitempty"`
}

type lineupRequest struct {
	Side    entity.Side                `json:"side"`
	Lineup  []string                   `json:"lineup"`
	Defense map[entity.Position]string `json:"defense"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandler struct {
	logger *slog.Logger
	games  gamePlay
}

func (that *gameHandler) create(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AwayTeamID == "" || req.HomeTeamID == "" {
		respondError(w, http.StatusBadRequest, "away_team_id and home_team_id are required")
		return
	}

	game, err := that.games.CreateGame(r.Context(), service.NewGame{
		AwayTeamID: req.AwayTeamID,
		HomeTeamID: req.HomeTeamID,
		AwayCPU:    req.AwayCPU,
		HomeCPU:    req.HomeCPU,
		Difficulty: req.Difficulty,
		Rules:      req.Rules,
	})
	that.respond(w, r, http.StatusCreated, game, err)
}

func (that *gameHandler) get(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		that.respond(w, r, http.StatusNoContent, nil, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandler) editLineup(w http.ResponseWriter, r *http.Request) {
	var req lineupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Side != entity.SideAway && req.Side != entity.SideHome {
		respondError(w, http.StatusBadRequest, "side must be away or home")
		return
	}

	game, err := that.games.EditLineup(r.Context(), chi.URLParam(r, "gameID"), req.Side, req.Lineup, req.Defense)
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) start(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.StartGame(r.Context(), chi.URLParam(r, "gameID"))
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) offense(w http.ResponseWriter, r *http.Request) {
	var decision entity.OffensiveDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.games.SubmitOffense(r.Context(), chi.URLParam(r, "gameID"), decision)
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) defense(w http.ResponseWriter, r *http.Request) {
	var decision entity.DefensiveDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.games.SubmitDefense(r.Context(), chi.URLParam(r, "gameID"), decision)
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) step(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.Step(r.Context(), chi.URLParam(r, "gameID"))
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) simulate(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.Simulate(r.Context(), chi.URLParam(r, "gameID"))
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) reset(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.Reset(r.Context(), chi.URLParam(r, "gameID"))
	that.respond(w, r, http.StatusOK, game, err)
}

func (that *gameHandler) result(w http.ResponseWriter, r *http.Request) {
	result, err := that.games.GetResult(r.Context(), chi.URLParam(r, "gameID"))
	that.respond(w, r, http.StatusOK, result, err)
}

func (that *gameHandler) respond(w http.ResponseWriter, r *http.Request, status int, body any, err error) {
	respond(that.logger, w, r, status, body, err)
}

func respond(logger *slog.Logger, w http.ResponseWriter, r *http.Request, status int, body any, err error) {
	if err != nil {
		status = StatusOf(err)
		if status == http.StatusInternalServerError {
			logger.Error("request failed", "path", r.URL.Path, "error", err)
			respondError(w, status, "internal server error")
			return
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, status, body)
}

// StatusOf maps an application error to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrTeamNotFound),
		errors.Is(err, apperror.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalPhaseTransition),
		errors.Is(err, apperror.ErrNotHumanTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameIsNotStarted):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidLineup),
		errors.Is(err, apperror.ErrInvalidInstruction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrHistoryDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
