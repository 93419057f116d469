package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/ballpark-backend/internal/config"
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/engine"
	"github.com/rocketscienceinc/ballpark-backend/internal/repository"
	"github.com/rocketscienceinc/ballpark-backend/internal/repository/storage"
	"github.com/rocketscienceinc/ballpark-backend/internal/service"
	"github.com/rocketscienceinc/ballpark-backend/transport/rest"
	"github.com/rocketscienceinc/ballpark-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Signal received, closing the ballpark", "signal", sig)
		cancel()
	}()

	mode, err := conf.Engine.AtBatMode()
	if err != nil {
		return err
	}

	difficulty, err := conf.CPU.Level()
	if err != nil {
		return err
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
		Addr:     redisAddrString,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("could not open game store: %w", err)
	}

	defer func() {
		if err = redisStorage.Connection.Close(); err != nil {
			log.Error("could not close game store", "error", err)
		}
	}()

	var (
		sinks     []service.ResultSink
		standings service.WinCounter
	)
	if conf.Postgres.DSN != "" {
		postgres, pgErr := storage.NewPostgresStorage(ctx, conf.Postgres.DSN)
		if pgErr != nil {
			return fmt.Errorf("could not connect to postgres: %w", pgErr)
		}
		defer postgres.Connection.Close()

		if pgErr = postgres.Init(ctx); pgErr != nil {
			return fmt.Errorf("could not init postgres: %w", pgErr)
		}

		history := repository.NewHistoryRepository(postgres.Connection)
		sinks = append(sinks, history)
		standings = history
		log.Info("Match history enabled")
	}

	rosterService, err := newRosterService(ctx, logger, conf, redisStorage)
	if err != nil {
		return err
	}

	rng := dice.Default()
	if conf.Engine.Seed != 0 {
		rng = dice.NewSeeded(conf.Engine.Seed)
	}

	gameService := service.NewGameService(repository.NewGameRepository(redisStorage.Connection))
	resultService := service.NewResultService(logger, repository.NewResultRepository(redisStorage.Connection), standings, sinks...)
	botService := service.NewBotService(rng)
	publisher := repository.NewEventPublisher(redisStorage.Connection, conf.Redis.StreamMaxLen)

	gamePlayService := service.NewGamePlayService(
		logger,
		engine.New(logger, rng, engine.WithMode(mode)),
		conf.Engine.Rules(),
		gameService,
		rosterService,
		resultService,
		botService,
		publisher,
		difficulty,
	)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Game API listening", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gamePlayService, resultService, redisStorage.Ping).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("Game API stopped", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Play-by-play socket listening", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gamePlayService).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("Play-by-play socket stopped", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("game api: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("play-by-play socket: %w", err)
	case <-ctx.Done():
		log.Info("Ballpark closed, stored games stay resumable")
		return nil
	}
}

// newRosterService reads rosters from redis, seeded from the roster file when one is configured.
func newRosterService(ctx context.Context, logger *slog.Logger, conf *config.Config, redisStorage *storage.RedisStorage) (service.RosterService, error) {
	rosterRepo := repository.NewRosterRepository(redisStorage.Connection)
	if conf.RosterFile == "" {
		return service.NewRosterService(logger, rosterRepo, nil), nil
	}

	file, err := repository.NewRosterFile(conf.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("could not load rosters: %w", err)
	}

	rosterService := service.NewRosterService(logger, rosterRepo, file)

	seeded, err := rosterService.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not seed rosters: %w", err)
	}
	logger.Info("Rosters seeded", "teams", seeded, "file", conf.RosterFile)

	return rosterService, nil
}
