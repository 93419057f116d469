package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/engine"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// maxAdvance bounds one automatic advance; a full game takes a few thousand steps.
const maxAdvance = 100000

// NewGame describes the matchup to create.
type NewGame struct {
	AwayTeamID string
	HomeTeamID string
	AwayCPU    bool
	HomeCPU    bool
	// Difficulty and Rules override the configured defaults when set.
	Difficulty entity.Difficulty
	Rules      *entity.Rules
}

type GamePlayService interface {
	CreateGame(ctx context.Context, req NewGame) (*entity.GameState, error)
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

type eventPublisher interface {
	Publish(ctx context.Context, gameID string, events []entity.PlayEvent) error
}

type gamePlayService struct {
	logger *slog.Logger

	engine     *engine.Engine
	rules      entity.Rules
	difficulty entity.Difficulty

	gameService   GameService
	rosterService RosterService
	resultService ResultService
	botService    BotService
	publisher     eventPublisher

	locks sync.Map
}

func NewGamePlayService(
	logger *slog.Logger,
	machine *engine.Engine,
	rules entity.Rules,
	gameService GameService,
	rosterService RosterService,
	resultService ResultService,
	botService BotService,
	publisher eventPublisher,
	difficulty entity.Difficulty,
) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		engine:        machine,
		rules:         rules,
		gameService:   gameService,
		rosterService: rosterService,
		resultService: resultService,
		botService:    botService,
		publisher:     publisher,
		difficulty:    difficulty,
	}
}

func (that *gamePlayService) CreateGame(ctx context.Context, req NewGame) (*entity.GameState, error) {
	away, err := that.rosterService.GetRoster(ctx, req.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get away roster: %w", err)
	}

	home, err := that.rosterService.GetRoster(ctx, req.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get home roster: %w", err)
	}

	rules := that.rules
	if req.Rules != nil {
		rules = *req.Rules
	}

	game, err := that.gameService.CreateGame(ctx, rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = that.difficulty
	}

	return that.update(ctx, game.ID, func(state entity.GameState) (entity.GameState, error) {
		state, err := that.engine.Transition(state, engine.SetupTeams{})
		if err != nil {
			return state, err
		}
		return that.engine.Transition(state, engine.AssignTeams{
			Away: entity.NewTeamInGame(*away, controllerOf(req.AwayCPU), difficulty),
			Home: entity.NewTeamInGame(*home, controllerOf(req.HomeCPU), difficulty),
		})
	})
}

func controllerOf(cpu bool) entity.Controller {
	if cpu {
		return entity.ControllerCPU
	}
	return entity.ControllerPlayer
}

func (that *gamePlayService) EditLineup(ctx context.Context, gameID string, side entity.Side, lineup []string, defense map[entity.Position]string) (*entity.GameState, error) {
	return that.update(ctx, gameID, func(state entity.GameState) (entity.GameState, error) {
		return that.engine.Transition(state, engine.EditLineup{Side: side, Lineup: lineup, Defense: defense})
	})
}

func (that *gamePlayService) StartGame(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.update(ctx, gameID, func(state entity.GameState) (entity.GameState, error) {
		state, err := that.engine.Transition(state, engine.StartGame{})
		if err != nil {
			return state, err
		}
		return that.advance(state, false), nil
	})
}

func (that *gamePlayService) SubmitOffense(ctx context.Context, gameID string, decision entity.OffensiveDecision) (*entity.GameState, error) {
	return that.update(ctx, gameID, func(state entity.GameState) (entity.GameState, error) {
		if err := that.confirmHumanTurn(state, state.BattingSide()); err != nil {
			return state, err
		}

		decision.Source = entity.ControllerPlayer
		return that.submit(state, engine.SubmitOffense{Decision: decision})
	})
}

func (that *gamePlayService) SubmitDefense(ctx context.Context, gameID string, decision entity.DefensiveDecision) (*entity.GameState, error) {
	return that.update(ctx, gameID, func(state entity.GameState) (entity.GameState, error) {
		if err := that.confirmHumanTurn(state, state.FieldingSide()); err != nil {
			return state, err
		}

		decision.Source = entity.ControllerPlayer
		return that.submit(state, engine.SubmitDefense{Decision: decision})
	})
}

// submit applies a human decision and, once both are in, plays the pitch.
// An instruction that is not possible is replaced by the engine and only logged.
func (that *gamePlayService) submit(state entity.GameState, ev engine.Event) (entity.GameState, error) {
	next, err := that.engine.Transition(state, ev)
	if errors.Is(err, apperror.ErrInvalidInstruction) {
		that.logger.Warn("instruction replaced", "game_id", state.ID, "error", err)
		err = nil
	}
	if err != nil {
		return state, err
	}
	return that.advance(next, true), nil
}

func (that *gamePlayService) confirmHumanTurn(state entity.GameState, side entity.Side) error {
	if err := state.ConfirmOngoingState(); err != nil {
		return err
	}
	if state.Team(side).Controller != entity.ControllerPlayer {
		return fmt.Errorf("%w: %s team is managed by the cpu", apperror.ErrNotHumanTurn, side)
	}
	if !state.AwaitingDecision(side) {
		return fmt.Errorf("%w: no decision expected from the %s team during %s", apperror.ErrNotHumanTurn, side, state.Phase)
	}
	return nil
}

func (that *gamePlayService) Step(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.update(ctx, gameID, func(state entity.GameState) (entity.GameState, error) {
		if err := state.ConfirmOngoingState(); err != nil {
			return state, err
		}
		return that.advance(state, false), nil
	})
}

func (that *gamePlayService) Simulate(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.update(ctx, gameID, func(state entity.GameState) (entity.GameState, error) {
		if state.Phase == entity.PhaseLineupEdit {
			var err error
			if state, err = that.engine.Transition(state, engine.StartGame{}); err != nil {
				return state, err
			}
		}
		if err := state.ConfirmOngoingState(); err != nil {
			return state, err
		}
		return that.engine.Simulate(state, that.botService.Autopilot()), nil
	})
}

func (that *gamePlayService) Reset(ctx context.Context, gameID string) (*entity.GameState, error) {
	return that.update(ctx, gameID, func(state entity.GameState) (entity.GameState, error) {
		return that.engine.Transition(state, engine.Reset{})
	})
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.GameState, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
	return game, nil
}

func (that *gamePlayService) GetResult(ctx context.Context, gameID string) (*entity.GameResult, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Result != nil {
		return game.Result, nil
	}

	result, err := that.resultService.GetResultByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return result, nil
}

// DeleteGame drops a stored game. The result of a finished game stays with
// the result store.
func (that *gamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	mu := that.lock(gameID)
	mu.Lock()
	defer mu.Unlock()
	defer that.locks.Delete(gameID)

	if _, err := that.gameService.GetGameByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}

func (that *gamePlayService) lock(gameID string) *sync.Mutex {
	lock, _ := that.locks.LoadOrStore(gameID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// advance lets the CPU managers and the automatic phases move the game until
// a human has to decide or the game ends. With stopAtResult it also stops
// once a play is on display.
func (that *gamePlayService) advance(state entity.GameState, stopAtResult bool) entity.GameState {
	managers := that.botService.Managers(&state)

	for range maxAdvance {
		if stopAtResult && state.Phase == entity.PhaseResultDisplay {
			return state
		}

		next, ok := that.engine.Step(state, managers)
		if !ok {
			return next
		}
		state = next
	}

	that.logger.Error("game did not settle", "game_id", state.ID)
	return state
}

// update runs fn on the stored game under a per-game lock, then saves the
// new state, publishes the new play events and records a fresh result.
func (that *gamePlayService) update(ctx context.Context, gameID string, fn func(entity.GameState) (entity.GameState, error)) (*entity.GameState, error) {
	log := that.logger.With("method", "update", "game_id", gameID)

	mu := that.lock(gameID)
	mu.Lock()
	defer mu.Unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	before := *game
	next, err := fn(before.Clone())
	if err != nil {
		return nil, err
	}

	if err = that.gameService.UpdateGame(ctx, &next); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if that.publisher != nil && len(next.Log) > len(before.Log) {
		if err = that.publisher.Publish(ctx, gameID, next.Log[len(before.Log):]); err != nil {
			log.Error("failed to publish play events", "error", err)
		}
	}

	if before.Result == nil && next.Result != nil {
		if err = that.resultService.SaveResult(ctx, next.Result); err != nil {
			log.Error("failed to save result", "error", err)
		}
	}

	return &next, nil
}
