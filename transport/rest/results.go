package rest

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type winsResponse struct {
	TeamID string `json:"team_id"`
	Wins   int    `json:"wins"`
}

type resultHandler struct {
	logger  *slog.Logger
	results resultBoard
}

// recent lists finished games, newest first. ?limit= narrows the page.
func (that *resultHandler) recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	results, err := that.results.RecentResults(r.Context(), limit)
	respond(that.logger, w, r, http.StatusOK, results, err)
}

func (that *resultHandler) wins(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	wins, err := that.results.TeamWins(r.Context(), teamID)
	respond(that.logger, w, r, http.StatusOK, winsResponse{TeamID: teamID, Wins: wins}, err)
}
