package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wt-battle-report/internal/domain"
)

func TestAwardTable(t *testing.T) {
	input := "Awards                                       14    3450 SL     100 RP    \n" +
		"    3:46     Intelligence             100 SL           \n" +
		"    7:14     Tank Rescuer             50 SL            \n" +
		"    8:18     Rank does not matter     500 SL           \n" +
		"    8:32     Multi strike!            100 SL           \n" +
		"    8:32     Without a miss           200 SL           \n" +
		"    10:35    Ground Force Rescuer     150 SL           \n" +
		"    11:47    Without a miss           200 SL           \n" +
		"    13:14    Without a miss           200 SL           \n" +
		"    13:43    Eye for Eye              300 SL           \n" +
		"    13:43    Shadow strike streak!    100 SL           \n" +
		"    13:43    Multi strike!            100 SL           \n" +
		"    13:43    Without a miss           200 SL           \n" +
		"    13:55    Final blow!              250 SL           \n" +
		"    13:55    The Best Squad           1000 SL    100 RP\n" +
		"\n"
	s := newScanner(input)

	awards, err := s.awardTable()
	require.NoError(t, err)
	require.Len(t, awards, 14)
	assert.Empty(t, s.rest())
	assert.Equal(t, domain.Award{Time: 3*60 + 46, Name: "Intelligence", Reward: domain.Reward{Silverlions: 100}}, awards[0])
	assert.Equal(t, domain.Award{Time: 13*60 + 55, Name: "The Best Squad", Reward: domain.Reward{Silverlions: 1000, Research: 100}}, awards[13])
}

func TestAwardTable_ZeroRowsIsStructuralError(t *testing.T) {
	s := newScanner("Awards                                        0     0 SL               \n\n")

	_, err := s.awardTable()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1")
}

func TestAwardTable_WrongHeader(t *testing.T) {
	s := newScanner("Honors                                        1     100 SL               \n" +
		"    3:46     Intelligence             100 SL           \n\n")

	_, err := s.awardTable()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Awards")
}

const vehicleTablesInput = "Activity Time                                 3    3152 SL     160 RP    \n" +
	"    13:54    Concept 3          730 SL     68 RP                     \n" +
	"    13:54    Sherman Firefly    522 SL     56 RP                     \n" +
	"    13:54    Wyvern S4          1900 SL    18 + (Talismans)18 = 36 RP\n" +
	"\n" +
	"Time Played                                   3               1057 RP    \n" +
	"    Concept 3          97%    8:21    680 RP                     \n" +
	"    Sherman Firefly    84%    2:51    185 RP                     \n" +
	"    Wyvern S4          67%    1:33    96 + (Talismans)96 = 192 RP\n" +
	"\n"

func TestVehicleTables_PositionalJoin(t *testing.T) {
	s := newScanner(vehicleTablesInput)

	vehicles, err := s.vehicleTables()
	require.NoError(t, err)
	require.Len(t, vehicles, 3)
	assert.Empty(t, s.rest())

	assert.Equal(t, domain.Vehicle{
		Name:       "Concept 3",
		Activity:   97,
		TimePlayed: 8*60 + 21,
		Reward:     domain.Reward{Silverlions: 730, Research: 68 + 680},
	}, vehicles[0])
	assert.Equal(t, domain.Vehicle{
		Name:       "Sherman Firefly",
		Activity:   84,
		TimePlayed: 2*60 + 51,
		Reward:     domain.Reward{Silverlions: 522, Research: 56 + 185},
	}, vehicles[1])
	assert.Equal(t, domain.Vehicle{
		Name:       "Wyvern S4",
		Activity:   67,
		TimePlayed: 1*60 + 33,
		Reward:     domain.Reward{Silverlions: 1900, Research: 36 + 192},
	}, vehicles[2])
}

func TestVehicleTables_RowCountMismatchFailsFast(t *testing.T) {
	input := "Activity Time                                 2    1252 SL     124 RP    \n" +
		"    13:54    Concept 3          730 SL     68 RP                     \n" +
		"    13:54    Sherman Firefly    522 SL     56 RP                     \n" +
		"\n" +
		"Time Played                                   3               1057 RP    \n" +
		"    Concept 3          97%    8:21    680 RP                     \n" +
		"    Sherman Firefly    84%    2:51    185 RP                     \n" +
		"    Wyvern S4          67%    1:33    192 RP\n" +
		"\n"
	s := newScanner(input)

	_, err := s.vehicleTables()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared 3 rows, activity table declared 2")
}

func TestWinningReward(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		s := newScanner("Reward for winning                                 16735 SL    \n")
		reward, err := s.winningReward()
		require.NoError(t, err)
		require.NotNil(t, reward)
		assert.Equal(t, domain.Reward{Silverlions: 16735}, *reward)
	})

	t.Run("absent", func(t *testing.T) {
		s := newScanner("Other awards                                       5295 SL     115 RP    \n\n")
		reward, err := s.winningReward()
		require.NoError(t, err)
		assert.Nil(t, reward)
		assert.Equal(t, 0, s.pos)
	})
}

func TestOtherAwards(t *testing.T) {
	s := newScanner("Other awards                                       5295 SL     115 RP    \n\n")

	reward, err := s.otherAwards()
	require.NoError(t, err)
	assert.Equal(t, domain.Reward{Silverlions: 5295, Research: 115}, reward)
	assert.Empty(t, s.rest())
}

func TestEarnedLine(t *testing.T) {
	s := newScanner("Earned: 10000 SL, 1500 CRP\n")

	earned, crp, err := s.earnedLine()
	require.NoError(t, err)
	assert.Equal(t, domain.Reward{Silverlions: 10000}, earned)
	assert.Equal(t, 1500, crp)
}

func TestActivityPercent(t *testing.T) {
	s := newScanner("Activity: 92%\n")

	percent, err := s.activityPercent()
	require.NoError(t, err)
	assert.Equal(t, 92, percent)
}

func TestDamagedVehicles(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Damaged Vehicles: Concept 3\n", []string{"Concept 3"}},
		{"Damaged Vehicles: Concept 3, Sherman Firefly, Wyvern S4\n", []string{"Concept 3", "Sherman Firefly", "Wyvern S4"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := newScanner(tt.input)
			names, err := s.damagedVehicles()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestCostLines(t *testing.T) {
	t.Run("automatic repair", func(t *testing.T) {
		s := newScanner("Automatic repair of all vehicles: -1590 SL\n")
		cost, err := s.costLine("automatic repair", repairPrefix)
		require.NoError(t, err)
		assert.Equal(t, 1590, cost)
	})

	t.Run("automatic resupply", func(t *testing.T) {
		s := newScanner("Automatic purchasing of ammo and \"Crew Replenishment\": -2433 SL\n")
		cost, err := s.costLine("automatic resupply", resupplyPrefix)
		require.NoError(t, err)
		assert.Equal(t, 2433, cost)
	})
}

func TestVehicleResearchBlock(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		s := newScanner("Researched unit: Comet I: 2743 RP\n" +
			"Researched unit: Chi-To Late: 1200 RP\n" +
			"\n")
		entries, err := s.vehicleResearchBlock()
		require.NoError(t, err)
		assert.Equal(t, []domain.VehicleResearch{
			{Name: "Comet I", Research: 2743},
			{Name: "Chi-To Late", Research: 1200},
		}, entries)
		assert.Empty(t, s.rest())
	})

	t.Run("absent", func(t *testing.T) {
		s := newScanner("Session: 8ca2b323000274e\n")
		entries, err := s.vehicleResearchBlock()
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Equal(t, 0, s.pos)
	})

	t.Run("missing terminating blank line", func(t *testing.T) {
		s := newScanner("Researched unit: Comet I: 2743 RP\nSession: 8ca2b323000274e\n")
		_, err := s.vehicleResearchBlock()
		assert.Error(t, err)
	})
}

func TestModificationResearchBlock(t *testing.T) {
	s := newScanner("Researching progress: Sherman Firefly - Sabot ammunition: 420 RP\n" +
		"Researching progress: Concept 3 - Airstrike: 96 + (Talismans)96 = 192 RP\n" +
		"\n")

	entries, err := s.modificationResearchBlock()
	require.NoError(t, err)
	assert.Equal(t, []domain.ModificationResearch{
		{Vehicle: "Sherman Firefly", Name: "Sabot ammunition", Research: 420},
		{Vehicle: "Concept 3", Name: "Airstrike", Research: 192},
	}, entries)
	assert.Empty(t, s.rest())
}

func TestUsedItemsBlock(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		s := newScanner("Used items: Booster +10% RP\n" +
			"Wager: Destroy 5 vehicles\n" +
			"\n" +
			"Session: 8ca2b323000274e\n")
		text, err := s.usedItemsBlock()
		require.NoError(t, err)
		assert.Equal(t, "Booster +10% RP\nWager: Destroy 5 vehicles", text)
		assert.True(t, s.hasPrefix("Session: "))
	})

	t.Run("absent", func(t *testing.T) {
		s := newScanner("Session: 8ca2b323000274e\n")
		text, err := s.usedItemsBlock()
		require.NoError(t, err)
		assert.Empty(t, text)
		assert.Equal(t, 0, s.pos)
	})

	t.Run("without session terminator", func(t *testing.T) {
		s := newScanner("Used items: Booster +10% RP\n")
		_, err := s.usedItemsBlock()
		assert.Error(t, err)
	})
}

func TestSessionLine(t *testing.T) {
	s := newScanner("Session: 8ca2b323000274e\n")

	id, err := s.sessionLine()
	require.NoError(t, err)
	assert.Equal(t, "8ca2b323000274e", id)
}

func TestTotalLine(t *testing.T) {
	s := newScanner("Total: 5977 SL, 1500 CRP, 1057 RP\n")

	balance, crp, err := s.totalLine()
	require.NoError(t, err)
	assert.Equal(t, domain.Reward{Silverlions: 5977, Research: 1057}, balance)
	assert.Equal(t, 1500, crp)
}

func TestEvents_StopAtAwardsTable(t *testing.T) {
	input := scoutingTable +
		"Awards                                        1     100 SL               \n" +
		"    3:46     Intelligence             100 SL           \n" +
		"\n"
	s := newScanner(input)

	events, err := s.events()
	require.NoError(t, err)
	assert.Len(t, events, 5)
	assert.True(t, s.hasPrefix("Awards"))
}

func TestEvents_NoTables(t *testing.T) {
	s := newScanner("Awards                                        1     100 SL               \n")

	events, err := s.events()
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 0, s.pos)
}

func TestEvents_MalformedTableReturnsErrorAndRestores(t *testing.T) {
	input := "Capture of zones                              2     200 SL     16 RP    \n" +
		"    5:06     Concept 3    200 SL    16 RP\n" +
		"\n"
	s := newScanner(input)

	events, err := s.events()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `table "Capture of zones" row 2 of 2`)
	assert.Empty(t, events)
	assert.Equal(t, 0, s.pos)
}
