package entity

type PlayKind string

const (
	PlayStrikeout       PlayKind = "strikeout"
	PlayWalk            PlayKind = "walk"
	PlayIntentionalWalk PlayKind = "intentional_walk"
	PlayOut             PlayKind = "out"
	PlayDoublePlay      PlayKind = "double_play"
	PlaySingle          PlayKind = "single"
	PlayDouble          PlayKind = "double"
	PlayTriple          PlayKind = "triple"
	PlayHomeRun         PlayKind = "home_run"
	PlayError           PlayKind = "error"
	PlaySacFly          PlayKind = "sac_fly"
	PlayFieldersChoice  PlayKind = "fielders_choice"
	PlaySacrificeBunt   PlayKind = "sacrifice_bunt"
	PlayBuntHit         PlayKind = "bunt_hit"
	PlayBuntOut         PlayKind = "bunt_out"
	PlaySqueeze         PlayKind = "squeeze"
	PlayStolenBase      PlayKind = "stolen_base"
	PlayCaughtStealing  PlayKind = "caught_stealing"
)

func (that PlayKind) IsHit() bool {
	switch that {
	case PlaySingle, PlayDouble, PlayTriple, PlayHomeRun, PlayBuntHit:
		return true
	default:
		return false
	}
}

// Bases returns how many bases the batter is awarded on a hit.
func (that PlayKind) Bases() int {
	switch that {
	case PlaySingle, PlayBuntHit:
		return 1
	case PlayDouble:
		return 2
	case PlayTriple:
		return 3
	case PlayHomeRun:
		return 4
	default:
		return 0
	}
}

// CountsAsAtBat reports whether the plate appearance is charged as an official at-bat.
func (that PlayKind) CountsAsAtBat() bool {
	switch that {
	case PlayWalk, PlayIntentionalWalk, PlaySacFly, PlaySacrificeBunt, PlaySqueeze, PlayStolenBase, PlayCaughtStealing:
		return false
	default:
		return true
	}
}

type ErrorKind string

const (
	ErrorNone       ErrorKind = ""
	ErrorFielding   ErrorKind = "fielding"
	ErrorThrowing   ErrorKind = "throwing"
	ErrorDroppedFly ErrorKind = "dropped_fly"
)

// PlayResult is the fully resolved outcome the state machine applies.
type PlayResult struct {
	Kind                PlayKind     `json:"kind"`
	Advances            []Advance    `json:"advances,omitempty"`
	Outs                int          `json:"outs"`
	Runs                int          `json:"runs"`
	RBI                 int          `json:"rbi"`
	Pitches             int          `json:"pitches"`
	Count               Count        `json:"count"`
	Ball                *BatBallInfo `json:"ball,omitempty"`
	Fielder             Position     `json:"fielder,omitempty"`
	Assist              Position     `json:"assist,omitempty"`
	Error               ErrorKind    `json:"error,omitempty"`
	EndsPlateAppearance bool         `json:"ends_plate_appearance"`
	Description         string       `json:"description"`
}

// Scorers returns the ids crossing home on the play.
func (that PlayResult) Scorers() []string {
	var ids []string
	for _, adv := range that.Advances {
		if adv.Scored() {
			ids = append(ids, adv.RunnerID)
		}
	}
	return ids
}

// BatterAdvance returns the advance entry for the batter, if any.
func (that PlayResult) BatterAdvance() (Advance, bool) {
	for _, adv := range that.Advances {
		if adv.From == BaseBatter {
			return adv, true
		}
	}
	return Advance{}, false
}
