package entity

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionNormal    Condition = "normal"
	ConditionPoor      Condition = "poor"
	ConditionTerrible  Condition = "terrible"
)

type FatigueLevel string

const (
	FatigueFresh     FatigueLevel = "fresh"
	FatigueNormal    FatigueLevel = "normal"
	FatigueTired     FatigueLevel = "tired"
	FatigueExhausted FatigueLevel = "exhausted"
)

type Controller string

const (
	ControllerPlayer Controller = "player"
	ControllerCPU    Controller = "cpu"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

type Side string

const (
	SideAway Side = "away"
	SideHome Side = "home"
)

func (that Side) Other() Side {
	if that == SideAway {
		return SideHome
	}
	return SideAway
}

type BattingLine struct {
	PlateAppearances int `json:"pa"`
	AtBats           int `json:"ab"`
	Hits             int `json:"h"`
	Doubles          int `json:"2b"`
	Triples          int `json:"3b"`
	HomeRuns         int `json:"hr"`
	TotalBases       int `json:"tb"`
	Runs             int `json:"r"`
	RBI              int `json:"rbi"`
	Walks            int `json:"bb"`
	Strikeouts       int `json:"so"`
	StolenBases      int `json:"sb"`
	CaughtStealing   int `json:"cs"`
}

type PitchingLine struct {
	PitchCount   int `json:"pitches"`
	BattersFaced int `json:"bf"`
	Outs         int `json:"outs"`
	Hits         int `json:"h"`
	Walks        int `json:"bb"`
	Strikeouts   int `json:"so"`
	Runs         int `json:"r"`
}

// PlayerInGame is a rating plus everything the current game accumulates for it.
type PlayerInGame struct {
	Rating    PlayerRating `json:"rating"`
	Condition Condition    `json:"condition"`
	Fatigue   FatigueLevel `json:"fatigue"`
	Batting   BattingLine  `json:"batting"`
	Pitching  PitchingLine `json:"pitching"`
	Removed   bool         `json:"removed,omitempty"`
}

func NewPlayerInGame(rating PlayerRating) PlayerInGame {
	return PlayerInGame{
		Rating:    rating,
		Condition: ConditionNormal,
		Fatigue:   FatigueFresh,
	}
}

// Roster is what the external roster provider hands over for one team.
type Roster struct {
	TeamID  string         `json:"team_id"`
	Name    string         `json:"name"`
	Players []PlayerRating `json:"players"`
	// Lineup is the starting batting order a new game opens with.
	Lineup  []string            `json:"lineup"`
	Defense map[Position]string `json:"defense"`
}

func (that Roster) Player(id string) (PlayerRating, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}
	return PlayerRating{}, false
}

const LineupSize = 9

type TeamInGame struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Controller  Controller              `json:"controller"`
	Difficulty  Difficulty              `json:"difficulty"`
	Players     map[string]PlayerInGame `json:"players"`
	Lineup      []string                `json:"lineup"`
	Defense     map[Position]string     `json:"defense"`
	Bench       []string                `json:"bench"`
	BatterIndex int                     `json:"batter_index"`
	Hits        int                     `json:"hits"`
	Errors      int                     `json:"errors"`
	LeftOnBase  int                     `json:"left_on_base"`
}

// NewTeamInGame builds the in-game team from a roster. Players outside the
// lineup and the defensive alignment form the bench.
func NewTeamInGame(roster Roster, controller Controller, difficulty Difficulty) TeamInGame {
	team := TeamInGame{
		ID:         roster.TeamID,
		Name:       roster.Name,
		Controller: controller,
		Difficulty: difficulty,
		Players:    make(map[string]PlayerInGame, len(roster.Players)),
		Lineup:     append([]string(nil), roster.Lineup...),
		Defense:    make(map[Position]string, len(roster.Defense)),
	}

	for pos, id := range roster.Defense {
		team.Defense[pos] = id
	}

	active := make(map[string]bool, len(team.Lineup)+len(team.Defense))
	for _, id := range team.Lineup {
		active[id] = true
	}
	for _, id := range team.Defense {
		active[id] = true
	}

	for _, rating := range roster.Players {
		team.Players[rating.ID] = NewPlayerInGame(rating)
		if !active[rating.ID] {
			team.Bench = append(team.Bench, rating.ID)
		}
	}

	return team
}

func (that TeamInGame) Clone() TeamInGame {
	out := that
	out.Players = make(map[string]PlayerInGame, len(that.Players))
	for id, player := range that.Players {
		out.Players[id] = player
	}
	out.Lineup = append([]string(nil), that.Lineup...)
	out.Bench = append([]string(nil), that.Bench...)
	out.Defense = make(map[Position]string, len(that.Defense))
	for pos, id := range that.Defense {
		out.Defense[pos] = id
	}
	return out
}

func (that TeamInGame) Player(id string) (PlayerInGame, bool) {
	player, ok := that.Players[id]
	return player, ok
}

// Update applies fn to the stored copy of a player. Unknown ids are ignored.
func (that *TeamInGame) Update(id string, fn func(*PlayerInGame)) {
	player, ok := that.Players[id]
	if !ok {
		return
	}
	fn(&player)
	that.Players[id] = player
}

func (that TeamInGame) CurrentBatterID() string {
	if len(that.Lineup) == 0 {
		return ""
	}
	return that.Lineup[that.BatterIndex%len(that.Lineup)]
}

func (that TeamInGame) OnDeckID() string {
	if len(that.Lineup) == 0 {
		return ""
	}
	return that.Lineup[(that.BatterIndex+1)%len(that.Lineup)]
}

func (that *TeamInGame) AdvanceBatter() {
	if len(that.Lineup) == 0 {
		return
	}
	that.BatterIndex = (that.BatterIndex + 1) % len(that.Lineup)
}

func (that TeamInGame) PitcherID() string {
	return that.Defense[PositionPitcher]
}

func (that TeamInGame) FielderID(pos Position) (string, bool) {
	id, ok := that.Defense[pos]
	return id, ok && id != ""
}

// Relievers returns bench pitchers that have not been used yet.
func (that TeamInGame) Relievers() []PlayerInGame {
	relievers := make([]PlayerInGame, 0, len(that.Bench))
	for _, id := range that.Bench {
		player, ok := that.Players[id]
		if !ok || player.Removed || !player.Rating.IsPitcher() {
			continue
		}
		relievers = append(relievers, player)
	}
	return relievers
}

// ValidateLineup checks the lineup has exactly nine distinct known batters and
// every field position is covered by a known player.
func (that TeamInGame) ValidateLineup() bool {
	if len(that.Lineup) != LineupSize {
		return false
	}

	seen := make(map[string]bool, LineupSize)
	for _, id := range that.Lineup {
		if _, ok := that.Players[id]; !ok || seen[id] {
			return false
		}
		seen[id] = true
	}

	for _, pos := range FieldPositions {
		id, ok := that.Defense[pos]
		if !ok {
			return false
		}
		if _, known := that.Players[id]; !known {
			return false
		}
	}

	return true
}
