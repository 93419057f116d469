package entity

type Base int

const (
	BaseBatter Base = iota
	BaseFirst
	BaseSecond
	BaseThird
	BaseHome
)

func (that Base) String() string {
	switch that {
	case BaseBatter:
		return "batter"
	case BaseFirst:
		return "first"
	case BaseSecond:
		return "second"
	case BaseThird:
		return "third"
	case BaseHome:
		return "home"
	default:
		return "unknown"
	}
}

// Runner is a lightweight reference; abilities are looked up from the roster.
type Runner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RunnerState holds the three bases. Runner values are never mutated in place.
type RunnerState struct {
	First  *Runner `json:"first,omitempty"`
	Second *Runner `json:"second,omitempty"`
	Third  *Runner `json:"third,omitempty"`
}

func (that RunnerState) At(base Base) *Runner {
	switch base {
	case BaseFirst:
		return that.First
	case BaseSecond:
		return that.Second
	case BaseThird:
		return that.Third
	default:
		return nil
	}
}

func (that *RunnerState) Set(base Base, runner *Runner) {
	switch base {
	case BaseFirst:
		that.First = runner
	case BaseSecond:
		that.Second = runner
	case BaseThird:
		that.Third = runner
	}
}

func (that RunnerState) Occupied(base Base) bool {
	return that.At(base) != nil
}

func (that RunnerState) Count() int {
	count := 0
	for _, base := range []Base{BaseFirst, BaseSecond, BaseThird} {
		if that.Occupied(base) {
			count++
		}
	}
	return count
}

func (that RunnerState) Empty() bool {
	return that.Count() == 0
}

func (that RunnerState) Loaded() bool {
	return that.Count() == 3
}

func (that RunnerState) InScoringPosition() bool {
	return that.Second != nil || that.Third != nil
}

// Lead returns the most advanced runner and its base, or BaseBatter if empty.
func (that RunnerState) Lead() (*Runner, Base) {
	for _, base := range []Base{BaseThird, BaseSecond, BaseFirst} {
		if runner := that.At(base); runner != nil {
			return runner, base
		}
	}
	return nil, BaseBatter
}

// Distinct reports whether no runner id appears on two bases.
func (that RunnerState) Distinct() bool {
	seen := make(map[string]bool, 3)
	for _, base := range []Base{BaseFirst, BaseSecond, BaseThird} {
		runner := that.At(base)
		if runner == nil {
			continue
		}
		if seen[runner.ID] {
			return false
		}
		seen[runner.ID] = true
	}
	return true
}

// Advance is one runner movement produced by a play. From is BaseBatter for the batter.
type Advance struct {
	RunnerID string `json:"runner_id"`
	Name     string `json:"name"`
	From     Base   `json:"from"`
	To       Base   `json:"to"`
	Out      bool   `json:"out,omitempty"`
}

func (that Advance) Scored() bool {
	return !that.Out && that.To == BaseHome
}

// ApplyAdvances moves runners according to advances. Runners without an
// advance entry stay where they are. Returns the ids that scored.
func (that RunnerState) ApplyAdvances(batter Runner, advances []Advance) (RunnerState, []string) {
	next := that
	moving := make(map[Base]bool, len(advances))
	for _, adv := range advances {
		if adv.From != BaseBatter {
			moving[adv.From] = true
		}
	}
	for base := range moving {
		next.Set(base, nil)
	}

	var scored []string
	for _, adv := range advances {
		if adv.Out {
			continue
		}

		runner := that.At(adv.From)
		if adv.From == BaseBatter {
			runner = &Runner{ID: batter.ID, Name: batter.Name}
		}
		if runner == nil {
			continue
		}

		if adv.To == BaseHome {
			scored = append(scored, runner.ID)
			continue
		}
		next.Set(adv.To, runner)
	}

	return next, scored
}

// ForcedAdvances returns the runner movements forced by the batter taking first.
// Only runners with every base behind them occupied move, one base each.
func (that RunnerState) ForcedAdvances() []Advance {
	var advances []Advance
	if that.First == nil {
		return advances
	}

	advances = append(advances, Advance{RunnerID: that.First.ID, Name: that.First.Name, From: BaseFirst, To: BaseSecond})
	if that.Second == nil {
		return advances
	}

	advances = append(advances, Advance{RunnerID: that.Second.ID, Name: that.Second.Name, From: BaseSecond, To: BaseThird})
	if that.Third == nil {
		return advances
	}

	return append(advances, Advance{RunnerID: that.Third.ID, Name: that.Third.Name, From: BaseThird, To: BaseHome})
}

// Moves returns an advance for the runner on from, or false when the base is empty.
func (that RunnerState) Moves(from, to Base, out bool) (Advance, bool) {
	runner := that.At(from)
	if runner == nil {
		return Advance{}, false
	}
	return Advance{RunnerID: runner.ID, Name: runner.Name, From: from, To: to, Out: out}, true
}
