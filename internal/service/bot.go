package service

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/engine"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
	"github.com/rocketscienceinc/ballpark-backend/internal/tactics"
)

// BotService hands out CPU managers for the engine.
type BotService interface {
	// Managers covers only the CPU-controlled sides of game.
	Managers(game *entity.GameState) engine.Managers
	// Autopilot covers both sides regardless of who controls them.
	Autopilot() engine.Managers
}

type botService struct {
	cpu *tactics.CPU
}

func NewBotService(rng dice.Source) BotService {
	return &botService{
		cpu: tactics.NewCPU(rng),
	}
}

func (that *botService) Managers(game *entity.GameState) engine.Managers {
	managers := make(engine.Managers, 2)
	for _, side := range []entity.Side{entity.SideAway, entity.SideHome} {
		if game.Team(side).Controller == entity.ControllerCPU {
			managers[side] = that.cpu
		}
	}
	return managers
}

func (that *botService) Autopilot() engine.Managers {
	return engine.Managers{
		entity.SideAway: that.cpu,
		entity.SideHome: that.cpu,
	}
}
