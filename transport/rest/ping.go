package rest

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger reports whether a backing store answers.
type Pinger func(ctx context.Context) error

type PingHandler interface {
	PingHandler(w http.ResponseWriter, r *http.Request)
}

type pingHandler struct {
	logger *slog.Logger
	ping   Pinger
}

func NewPingHandler(logger *slog.Logger, ping Pinger) PingHandler {
	return &pingHandler{
		logger: logger,
		ping:   ping,
	}
}

func (that *pingHandler) PingHandler(w http.ResponseWriter, r *http.Request) {
	if that.ping != nil {
		if err := that.ping(r.Context()); err != nil {
			that.logger.Error("storage ping failed", "error", err)
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
