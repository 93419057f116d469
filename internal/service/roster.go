package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/ballpark-backend/internal/apperror"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

type RosterService interface {
	GetRoster(ctx context.Context, teamID string) (*entity.Roster, error)
	SaveRoster(ctx context.Context, roster *entity.Roster) error
	// Seed copies every roster of the seed source into the store.
	Seed(ctx context.Context) (int, error)
}

type rosterRepo interface {
	CreateOrUpdate(ctx context.Context, roster *entity.Roster) error
	GetByTeamID(ctx context.Context, teamID string) (*entity.Roster, error)
}

type rosterSource interface {
	GetByTeamID(ctx context.Context, teamID string) (*entity.Roster, error)
	List(ctx context.Context) ([]*entity.Roster, error)
}

type rosterService struct {
	logger *slog.Logger

	rosterRepo rosterRepo
	seed       rosterSource
}

// NewRosterService reads rosters from rosterRepo. When seed is not nil, teams
// missing from the store are looked up there and cached.
func NewRosterService(logger *slog.Logger, rosterRepo rosterRepo, seed rosterSource) RosterService {
	return &rosterService{
		logger:     logger.With("component", "roster"),
		rosterRepo: rosterRepo,
		seed:       seed,
	}
}

func (that *rosterService) GetRoster(ctx context.Context, teamID string) (*entity.Roster, error) {
	roster, err := that.rosterRepo.GetByTeamID(ctx, teamID)
	if err == nil {
		return roster, nil
	}
	if !errors.Is(err, apperror.ErrTeamNotFound) || that.seed == nil {
		return nil, fmt.Errorf("get roster %s: %w", teamID, err)
	}

	roster, err = that.seed.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get roster %s from seed: %w", teamID, err)
	}

	if err = that.rosterRepo.CreateOrUpdate(ctx, roster); err != nil {
		that.logger.Warn("failed to cache seeded roster", "team", teamID, "error", err)
	}
	return roster, nil
}

func (that *rosterService) SaveRoster(ctx context.Context, roster *entity.Roster) error {
	team := entity.NewTeamInGame(*roster, entity.ControllerCPU, entity.DifficultyIntermediate)
	if !team.ValidateLineup() {
		return fmt.Errorf("%w: roster %s", apperror.ErrInvalidLineup, roster.TeamID)
	}

	if err := that.rosterRepo.CreateOrUpdate(ctx, roster); err != nil {
		return fmt.Errorf("save roster %w", err)
	}
	return nil
}

func (that *rosterService) Seed(ctx context.Context) (int, error) {
	if that.seed == nil {
		return 0, nil
	}

	rosters, err := that.seed.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list seed rosters: %w", err)
	}

	for i, roster := range rosters {
		if err = that.SaveRoster(ctx, roster); err != nil {
			return i, err
		}
	}
	return len(rosters), nil
}
