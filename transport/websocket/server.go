package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 4096
)

type gamePlay interface {
	GetGame(ctx context.Context, gameID string) (*entity.GameState, error)
	SubmitOffense(ctx context.Context, gameID string, decision entity.OffensiveDecision) (*entity.GameState, error)
	SubmitDefense(ctx context.Context, gameID string, decision entity.DefensiveDecision) (*entity.GameState, error)
	Step(ctx context.Context, gameID string) (*entity.GameState, error)
}

type handlerFunc func(ctx context.Context, payload Payload) (*entity.GameState, error)

type Server struct {
	logger *slog.Logger
	games  gamePlay

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gamePlay) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		"game:get":     server.handleGet,
		"game:offense": server.handleOffense,
		"game:defense": server.handleDefense,
		"game:step":    server.handleStep,
	}

	return server
}

func (that *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serve(ctx, w, r)
	})
	return r
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Router(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if err := srv.Close(); err != nil {
			that.logger.Error("failed to close WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serve(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serve", "remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("WebSocket connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		response := Message{Action: message.Action}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			response.Payload.Error = fmt.Sprintf("unknown action %q", message.Action)
		} else {
			game, err := handler(ctx, message.Payload)
			if err != nil {
				log.Warn("action failed", "action", message.Action, "game_id", message.Payload.GameID, "error", err)
				response.Payload.Error = err.Error()
			}
			response.Payload.Game = game
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(response); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}
