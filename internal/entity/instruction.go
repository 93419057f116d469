package entity

type OffensiveInstruction string

const (
	OffenseNormalSwing OffensiveInstruction = "normal_swing"
	OffenseWait        OffensiveInstruction = "wait"
	OffenseBunt        OffensiveInstruction = "bunt"
	OffenseSteal       OffensiveInstruction = "steal"
	OffenseHitAndRun   OffensiveInstruction = "hit_and_run"
	OffenseSqueeze     OffensiveInstruction = "squeeze"
	OffenseDoubleSteal OffensiveInstruction = "double_steal"
)

var OffensiveInstructions = []OffensiveInstruction{
	OffenseNormalSwing, OffenseWait, OffenseBunt, OffenseSteal, OffenseHitAndRun, OffenseSqueeze, OffenseDoubleSteal,
}

type DefensiveInstruction string

const (
	DefenseNormal          DefensiveInstruction = "normal"
	DefensePitcherChange   DefensiveInstruction = "pitcher_change"
	DefenseIntentionalWalk DefensiveInstruction = "intentional_walk"
	DefenseShiftChange     DefensiveInstruction = "shift_change"
)

var DefensiveInstructions = []DefensiveInstruction{
	DefenseNormal, DefensePitcherChange, DefenseIntentionalWalk, DefenseShiftChange,
}

// InstructionContext is the slice of game state instruction validity depends on.
type InstructionContext struct {
	Outs           int
	Runners        RunnerState
	Shift          DefensiveShift
	RelieversReady int
}

// StealTarget returns the base the lead eligible runner would steal, if any.
func (that InstructionContext) StealTarget() (Base, bool) {
	switch {
	case that.Runners.Second != nil && that.Runners.Third == nil:
		return BaseThird, true
	case that.Runners.First != nil && that.Runners.Second == nil:
		return BaseSecond, true
	default:
		return BaseBatter, false
	}
}

func (that OffensiveInstruction) Valid(ctx InstructionContext) bool {
	switch that {
	case OffenseNormalSwing, OffenseWait, OffenseBunt:
		return true
	case OffenseSteal:
		_, ok := ctx.StealTarget()
		return ok
	case OffenseHitAndRun:
		return ctx.Runners.First != nil && ctx.Outs < 2
	case OffenseSqueeze:
		return ctx.Runners.Third != nil && ctx.Outs < 2
	case OffenseDoubleSteal:
		r := ctx.Runners
		firstAndSecond := r.First != nil && r.Second != nil && r.Third == nil
		firstAndThird := r.First != nil && r.Second == nil && r.Third != nil
		return firstAndSecond || firstAndThird
	default:
		return false
	}
}

func (that DefensiveInstruction) Valid(ctx InstructionContext) bool {
	switch that {
	case DefenseNormal, DefenseIntentionalWalk, DefenseShiftChange:
		return true
	case DefensePitcherChange:
		return ctx.RelieversReady > 0
	default:
		return false
	}
}

type OffensiveDecision struct {
	Instruction OffensiveInstruction `json:"instruction"`
	Reason      string               `json:"reason,omitempty"`
	Source      Controller           `json:"source"`
}

type DefensiveDecision struct {
	Instruction DefensiveInstruction `json:"instruction"`
	Shift       DefensiveShift       `json:"shift,omitempty"`
	RelieverID  string               `json:"reliever_id,omitempty"`
	Reason      string               `json:"reason,omitempty"`
	Source      Controller           `json:"source"`
}
