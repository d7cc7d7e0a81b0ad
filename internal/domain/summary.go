package domain

// VehicleTotals aggregates every appearance of one vehicle across a set of
// battle reports.
type VehicleTotals struct {
	Name    string `json:"name"`
	Battles int    `json:"battles"`
	// TimePlayed is total minutes across all battles.
	TimePlayed int `json:"time_played"`
	// MeanActivity is the average activity percentage across battles.
	MeanActivity float64 `json:"mean_activity"`
	Reward       Reward  `json:"reward"`
}

// SessionSummary provides cross-battle statistics over a set of reports.
type SessionSummary struct {
	Battles int     `json:"battles"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"win_rate"`

	Earned  Reward `json:"earned"`
	Balance Reward `json:"balance"`

	RepairCost      int `json:"repair_cost"`
	AmmoAndCrewCost int `json:"ammo_and_crew_cost"`

	// Vehicles is sorted by vehicle name for deterministic output.
	Vehicles []VehicleTotals `json:"vehicles"`
	// AwardCounts maps award name to the number of times it was received.
	AwardCounts map[string]int `json:"award_counts"`
}
