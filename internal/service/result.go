package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// maxRecent caps one page of recent results.
const maxRecent = 50

type ResultService interface {
	SaveResult(ctx context.Context, result *entity.GameResult) error
	GetResultByGameID(ctx context.Context, gameID string) (*entity.GameResult, error)
	RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error)
	TeamWins(ctx context.Context, teamID string) (int, error)
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	Find(ctx context.Context, gameID string) (*entity.GameResult, error)
	Recent(ctx context.Context, limit int) ([]string, error)
}

// WinCounter answers standings questions from the match history.
type WinCounter interface {
	CountWins(ctx context.Context, teamID string) (int, error)
}

// ResultSink receives finished games, e.g. a match-history database.
type ResultSink interface {
	Save(ctx context.Context, result *entity.GameResult) error
}

type resultService struct {
	logger *slog.Logger

	resultRepo resultRepo
	standings  WinCounter
	sinks      []ResultSink
}

// NewResultService builds the service. standings may be nil when no match
// history is configured.
func NewResultService(logger *slog.Logger, resultRepo resultRepo, standings WinCounter, sinks ...ResultSink) ResultService {
	return &resultService{
		logger:     logger.With("component", "result"),
		resultRepo: resultRepo,
		standings:  standings,
		sinks:      sinks,
	}
}

// SaveResult stores the result and hands it to every sink. A failing sink
// does not stop the others.
func (that *resultService) SaveResult(ctx context.Context, result *entity.GameResult) error {
	if err := that.resultRepo.Save(ctx, result); err != nil {
		return fmt.Errorf("could not save result: %w", err)
	}

	var errs []error
	for _, sink := range that.sinks {
		if err := sink.Save(ctx, result); err != nil {
			that.logger.Error("result sink failed", "game_id", result.GameID, "error", err)
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("could not deliver result: %w", err)
	}
	return nil
}

func (that *resultService) GetResultByGameID(ctx context.Context, gameID string) (*entity.GameResult, error) {
	result, err := that.resultRepo.Find(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("could not get result: %w", err)
	}
	return result, nil
}

// RecentResults returns the latest finished games, newest first. Results that
// expired from the store are skipped.
func (that *resultService) RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}

	ids, err := that.resultRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list recent results: %w", err)
	}

	results := make([]*entity.GameResult, 0, len(ids))
	for _, id := range ids {
		result, err := that.resultRepo.Find(ctx, id)
		if errors.Is(err, apperror.ErrResultNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not get result %s: %w", id, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (that *resultService) TeamWins(ctx context.Context, teamID string) (int, error) {
	if that.standings == nil {
		return 0, apperror.ErrHistoryDisabled
	}

	wins, err := that.standings.CountWins(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("could not count wins: %w", err)
	}
	return wins, nil
}
