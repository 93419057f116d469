package tactics

import (
	"github.com/rocketscienceinc/ballpark-backend/internal/dice"
	"github.com/rocketscienceinc/ballpark-backend/internal/entity"
)

// CPU manages one or both teams for the engine and the game service.
type CPU struct {
	rng dice.Source
}

func NewCPU(rng dice.Source) *CPU {
	return &CPU{rng: rng}
}

func (that *CPU) Offense(state entity.GameState, side entity.Side) entity.OffensiveDecision {
	return DecideOffense(SituationFor(state, side), that.rng)
}

func (that *CPU) Defense(state entity.GameState, side entity.Side) entity.DefensiveDecision {
	return DecideDefense(SituationFor(state, side), state.Team(side).Relievers(), that.rng)
}
