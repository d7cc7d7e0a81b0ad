package domain

// BattleResult is the outcome of a battle (WIN or LOSS).
type BattleResult string

const (
	BattleResultWin  BattleResult = "WIN"
	BattleResultLoss BattleResult = "LOSS"
)

// Reward is a pair of currency and research amounts. The itemized textual
// form (base + named bonuses = total) collapses to the trailing total during
// parsing, so only the final figures are carried here.
type Reward struct {
	Silverlions int `json:"silverlions"`
	Research    int `json:"research"`
}

// Event is one row of a reward-category table: a single scoring action such
// as a kill, an assist or a scouting ping.
type Event struct {
	// Time is minutes since the start of the battle.
	Time int `json:"time"`
	// Kind is the header text of the table the row came from, verbatim.
	Kind    string `json:"kind"`
	Vehicle string `json:"vehicle"`
	// Enemy is empty for self-directed categories such as zone captures.
	Enemy  string `json:"enemy,omitempty"`
	Reward Reward `json:"reward"`
}

// Award is one row of the awards table.
type Award struct {
	Time   int    `json:"time"`
	Name   string `json:"name"`
	Reward Reward `json:"reward"`
}

// Vehicle is the per-vehicle summary joined positionally from the
// "Activity Time" and "Time Played" tables.
type Vehicle struct {
	Name string `json:"name"`
	// Activity is a percentage in 0..100.
	Activity int `json:"activity"`
	// TimePlayed is minutes spent in this vehicle.
	TimePlayed int    `json:"time_played"`
	Reward     Reward `json:"reward"`
}

// VehicleResearch is one "Researched unit" line.
type VehicleResearch struct {
	Name     string `json:"name"`
	Research int    `json:"research"`
}

// ModificationResearch is one "Researching progress" line.
type ModificationResearch struct {
	Vehicle  string `json:"vehicle"`
	Name     string `json:"name"`
	Research int    `json:"research"`
}

// BattleReport is the root aggregate produced by a successful parse. A
// failed parse yields no partial report. Constructed once, never mutated.
type BattleReport struct {
	SessionID   string       `json:"session_id"`
	Result      BattleResult `json:"result"`
	MissionName string       `json:"mission_name"`

	Events []Event `json:"events"`

	Awards []Award `json:"awards"`
	// WinningReward is the optional "Reward for winning" line.
	WinningReward *Reward `json:"winning_reward,omitempty"`
	OtherAwards   Reward  `json:"other_awards"`

	Vehicles []Vehicle `json:"vehicles"`

	// Activity is the overall activity percentage in 0..100.
	Activity int `json:"activity"`

	DamagedVehicles []string `json:"damaged_vehicles"`
	RepairCost      int      `json:"repair_cost"`
	AmmoAndCrewCost int      `json:"ammo_and_crew_cost"`

	VehicleResearch      []VehicleResearch      `json:"vehicle_research,omitempty"`
	ModificationResearch []ModificationResearch `json:"modification_research,omitempty"`

	// UsedItems is the raw text of the optional "Used items" block.
	UsedItems string `json:"used_items,omitempty"`

	Earned Reward `json:"earned"`
	// EarnedCRP is the convertible-currency figure on the "Earned" line.
	EarnedCRP int `json:"earned_crp"`

	// Balance holds the SL and RP figures of the trailing "Total" line.
	Balance Reward `json:"balance"`
	// TotalCRP is the convertible-currency figure on the "Total" line.
	TotalCRP int `json:"total_crp"`
}
