package parser

import (
	"fmt"
	"strings"

	"wt-battle-report/internal/domain"
)

// Section literals. These headers are the only thing that distinguishes one
// section from the next; the format is not otherwise self-describing.
const (
	awardsHeader       = "Awards"
	activityTimeHeader = "Activity Time"
	timePlayedHeader   = "Time Played"

	winningLiteral     = "Reward for winning"
	otherAwardsLiteral = "Other awards"

	earnedPrefix   = "Earned: "
	activityLine   = "Activity: "
	damagedPrefix  = "Damaged Vehicles: "
	repairPrefix   = "Automatic repair of all vehicles: -"
	resupplyPrefix = "Automatic purchasing of ammo and \"Crew Replenishment\": -"

	researchedUnitPrefix   = "Researched unit: "
	researchProgressPrefix = "Researching progress: "
	usedItemsPrefix        = "Used items: "
	sessionPrefix          = "Session: "
	totalPrefix            = "Total: "
)

// events parses zero or more reward-category tables, stopping at the awards
// table. Rows are flattened into a single ordered list. When the loop stops
// on a table that fails to parse rather than on the awards header, the input
// is restored and the failure is returned so the caller can report it if the
// awards table does not parse either.
func (s *scanner) events() ([]domain.Event, error) {
	events := []domain.Event{}
	for !s.hasPrefix(awardsHeader) {
		m := s.mark()
		table, err := s.eventTable()
		if err != nil {
			s.restore(m)
			return events, err
		}
		events = append(events, table...)
	}
	return events, nil
}

// awardTable parses the "Awards" table in short-row form. Unlike event
// tables, an awards table declaring zero rows is a structural error.
func (s *scanner) awardTable() ([]domain.Award, error) {
	header, err := s.tableHeader()
	if err != nil {
		return nil, fmt.Errorf("table header: %w", err)
	}
	if header.name != awardsHeader {
		return nil, s.errorf("awards table", "expected %q header, found %q", awardsHeader, header.name)
	}
	if header.count < 1 {
		return nil, s.errorf("awards table", "declared row count must be at least 1, got %d", header.count)
	}
	awards := make([]domain.Award, 0, header.count)
	for i := 0; i < header.count; i++ {
		row, err := s.shortRow()
		if err != nil {
			return nil, fmt.Errorf("award row %d of %d: %w", i+1, header.count, err)
		}
		awards = append(awards, domain.Award{Time: row.time, Name: row.name, Reward: row.reward})
	}
	if err := s.lineEnding("awards table end"); err != nil {
		return nil, fmt.Errorf("awards table declared %d rows: %w", header.count, err)
	}
	return awards, nil
}

// timePlayedRow is one line of the "Time Played" table: vehicle name,
// activity percentage, time played and a research-only reward.
type timePlayedRow struct {
	name       string
	activity   int
	timePlayed int
	research   int
}

func (s *scanner) parseTimePlayedRow() (timePlayedRow, error) {
	if err := s.literal("row indent", indent); err != nil {
		return timePlayedRow{}, err
	}
	name, err := s.column("vehicle column")
	if err != nil {
		return timePlayedRow{}, err
	}
	if err := s.rowSeparator("vehicle column"); err != nil {
		return timePlayedRow{}, err
	}
	activity, err := s.integer("activity column")
	if err != nil {
		return timePlayedRow{}, err
	}
	if err := s.literal("activity column", "%"); err != nil {
		return timePlayedRow{}, err
	}
	if err := s.rowSeparator("activity column"); err != nil {
		return timePlayedRow{}, err
	}
	timePlayed, err := s.timestamp("time played column")
	if err != nil {
		return timePlayedRow{}, err
	}
	if err := s.rowSeparator("time played column"); err != nil {
		return timePlayedRow{}, err
	}
	research, err := s.amount("RP")
	if err != nil {
		return timePlayedRow{}, fmt.Errorf("research column: %w", err)
	}
	if err := s.rowEnding("research column"); err != nil {
		return timePlayedRow{}, err
	}
	return timePlayedRow{name: name, activity: activity, timePlayed: timePlayed, research: research}, nil
}

// vehicleTables parses the "Activity Time" and "Time Played" tables and
// joins them positionally: row i of both tables describes the same vehicle
// by construction of the source format, so no name reconciliation happens.
// The Time Played name is authoritative; the combined research figure is
// the sum of both rows.
func (s *scanner) vehicleTables() ([]domain.Vehicle, error) {
	header, err := s.tableHeader()
	if err != nil {
		return nil, fmt.Errorf("activity table header: %w", err)
	}
	if header.name != activityTimeHeader {
		return nil, s.errorf("activity table", "expected %q header, found %q", activityTimeHeader, header.name)
	}
	activityRows := make([]shortRow, 0, header.count)
	for i := 0; i < header.count; i++ {
		row, err := s.shortRow()
		if err != nil {
			return nil, fmt.Errorf("activity row %d of %d: %w", i+1, header.count, err)
		}
		activityRows = append(activityRows, row)
	}
	if err := s.lineEnding("activity table end"); err != nil {
		return nil, fmt.Errorf("activity table declared %d rows: %w", header.count, err)
	}

	if err := s.literal("time played header", timePlayedHeader); err != nil {
		return nil, err
	}
	if s.spaces() == 0 {
		return nil, s.errorf("time played header", "expected spacing after %q", timePlayedHeader)
	}
	count, err := s.integer("time played row count")
	if err != nil {
		return nil, err
	}
	if count != header.count {
		return nil, s.errorf("time played table", "declared %d rows, activity table declared %d", count, header.count)
	}
	if err := s.rowSeparator("time played row count"); err != nil {
		return nil, err
	}
	if _, err := s.amount("RP"); err != nil {
		return nil, fmt.Errorf("time played total: %w", err)
	}
	if err := s.rowEnding("time played header"); err != nil {
		return nil, err
	}
	playedRows := make([]timePlayedRow, 0, count)
	for i := 0; i < count; i++ {
		row, err := s.parseTimePlayedRow()
		if err != nil {
			return nil, fmt.Errorf("time played row %d of %d: %w", i+1, count, err)
		}
		playedRows = append(playedRows, row)
	}
	if err := s.lineEnding("time played table end"); err != nil {
		return nil, fmt.Errorf("time played table declared %d rows: %w", count, err)
	}

	vehicles := make([]domain.Vehicle, 0, count)
	for i, played := range playedRows {
		vehicles = append(vehicles, domain.Vehicle{
			Name:       played.name,
			Activity:   played.activity,
			TimePlayed: played.timePlayed,
			Reward: domain.Reward{
				Silverlions: activityRows[i].reward.Silverlions,
				Research:    activityRows[i].reward.Research + played.research,
			},
		})
	}
	return vehicles, nil
}

// winningReward parses the optional "Reward for winning" line.
func (s *scanner) winningReward() (*domain.Reward, error) {
	if !s.hasPrefix(winningLiteral) {
		return nil, nil
	}
	if err := s.literal("reward for winning", winningLiteral); err != nil {
		return nil, err
	}
	if err := s.rowSeparator("reward for winning"); err != nil {
		return nil, err
	}
	reward, err := s.reward()
	if err != nil {
		return nil, err
	}
	if err := s.rowEnding("reward for winning"); err != nil {
		return nil, err
	}
	return &reward, nil
}

// otherAwards parses the "Other awards" line and the blank line closing the
// reward block.
func (s *scanner) otherAwards() (domain.Reward, error) {
	if err := s.literal("other awards", otherAwardsLiteral); err != nil {
		return domain.Reward{}, err
	}
	if err := s.rowSeparator("other awards"); err != nil {
		return domain.Reward{}, err
	}
	reward, err := s.reward()
	if err != nil {
		return domain.Reward{}, err
	}
	if err := s.rowEnding("other awards"); err != nil {
		return domain.Reward{}, err
	}
	if err := s.lineEnding("other awards"); err != nil {
		return domain.Reward{}, err
	}
	return reward, nil
}

// earnedLine parses `Earned: <n> SL, <m> CRP`.
func (s *scanner) earnedLine() (domain.Reward, int, error) {
	if err := s.literal("earned", earnedPrefix); err != nil {
		return domain.Reward{}, 0, err
	}
	sl, err := s.simpleAmount("SL")
	if err != nil {
		return domain.Reward{}, 0, err
	}
	if err := s.literal("earned", ", "); err != nil {
		return domain.Reward{}, 0, err
	}
	crp, err := s.simpleAmount("CRP")
	if err != nil {
		return domain.Reward{}, 0, err
	}
	if err := s.rowEnding("earned"); err != nil {
		return domain.Reward{}, 0, err
	}
	return domain.Reward{Silverlions: sl}, crp, nil
}

// activityPercent parses `Activity: <n>%`.
func (s *scanner) activityPercent() (int, error) {
	if err := s.literal("activity", activityLine); err != nil {
		return 0, err
	}
	percent, err := s.integer("activity")
	if err != nil {
		return 0, err
	}
	if err := s.literal("activity", "%"); err != nil {
		return 0, err
	}
	if err := s.rowEnding("activity"); err != nil {
		return 0, err
	}
	return percent, nil
}

// damagedVehicles parses the comma-separated `Damaged Vehicles:` line.
func (s *scanner) damagedVehicles() ([]string, error) {
	if err := s.literal("damaged vehicles", damagedPrefix); err != nil {
		return nil, err
	}
	names := strings.Split(s.remainderOfLine(), ", ")
	for i, name := range names {
		names[i] = strings.TrimRight(name, " ")
	}
	if len(names) == 1 && names[0] == "" {
		return nil, s.errorf("damaged vehicles", "expected at least one vehicle name")
	}
	if err := s.lineEnding("damaged vehicles"); err != nil {
		return nil, err
	}
	return names, nil
}

// costLine parses a `<prefix><n> SL` deduction line such as the automatic
// repair and resupply costs.
func (s *scanner) costLine(rule, prefix string) (int, error) {
	if err := s.literal(rule, prefix); err != nil {
		return 0, err
	}
	cost, err := s.simpleAmount("SL")
	if err != nil {
		return 0, err
	}
	if err := s.rowEnding(rule); err != nil {
		return 0, err
	}
	return cost, nil
}

// vehicleResearchBlock parses the optional run of `Researched unit:` lines.
// When at least one line is present the block must end with a blank line.
func (s *scanner) vehicleResearchBlock() ([]domain.VehicleResearch, error) {
	var entries []domain.VehicleResearch
	for s.hasPrefix(researchedUnitPrefix) {
		if err := s.literal("researched unit", researchedUnitPrefix); err != nil {
			return nil, err
		}
		name, err := s.upTo("researched unit", ": ")
		if err != nil {
			return nil, err
		}
		research, err := s.amount("RP")
		if err != nil {
			return nil, fmt.Errorf("researched unit %q: %w", name, err)
		}
		if err := s.rowEnding("researched unit"); err != nil {
			return nil, err
		}
		entries = append(entries, domain.VehicleResearch{Name: name, Research: research})
	}
	if len(entries) > 0 {
		if err := s.lineEnding("researched unit block end"); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// modificationResearchBlock parses the optional run of `Researching
// progress:` lines. The vehicle and modification names are split on the
// first " - " occurrence.
func (s *scanner) modificationResearchBlock() ([]domain.ModificationResearch, error) {
	var entries []domain.ModificationResearch
	for s.hasPrefix(researchProgressPrefix) {
		if err := s.literal("researching progress", researchProgressPrefix); err != nil {
			return nil, err
		}
		vehicle, err := s.upTo("researching progress", " - ")
		if err != nil {
			return nil, err
		}
		name, err := s.upTo("researching progress", ": ")
		if err != nil {
			return nil, err
		}
		research, err := s.amount("RP")
		if err != nil {
			return nil, fmt.Errorf("researching progress %q: %w", name, err)
		}
		if err := s.rowEnding("researching progress"); err != nil {
			return nil, err
		}
		entries = append(entries, domain.ModificationResearch{Vehicle: vehicle, Name: name, Research: research})
	}
	if len(entries) > 0 {
		if err := s.lineEnding("researching progress block end"); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// usedItemsBlock parses the optional "Used items" block. Its contents are
// opaque and consumed verbatim up to the "Session:" literal.
func (s *scanner) usedItemsBlock() (string, error) {
	if !s.hasPrefix(usedItemsPrefix) {
		return "", nil
	}
	if err := s.literal("used items", usedItemsPrefix); err != nil {
		return "", err
	}
	idx := strings.Index(s.rest(), sessionPrefix)
	if idx < 0 {
		return "", s.errorf("used items", "expected %q after used items block", sessionPrefix)
	}
	text := s.rest()[:idx]
	s.pos += idx
	return strings.TrimRight(text, " \r\n"), nil
}

// sessionLine parses `Session: <hex id>`.
func (s *scanner) sessionLine() (string, error) {
	if err := s.literal("session", sessionPrefix); err != nil {
		return "", err
	}
	start := s.pos
	for s.pos < len(s.src) && isHexDigit(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", s.errorf("session", "expected hexadecimal session id")
	}
	id := s.src[start:s.pos]
	if err := s.rowEnding("session"); err != nil {
		return "", err
	}
	return id, nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// totalLine parses `Total: <n> SL, <m> CRP, <k> RP`. Input past this line
// is left unconsumed.
func (s *scanner) totalLine() (domain.Reward, int, error) {
	if err := s.literal("total", totalPrefix); err != nil {
		return domain.Reward{}, 0, err
	}
	sl, err := s.simpleAmount("SL")
	if err != nil {
		return domain.Reward{}, 0, err
	}
	if err := s.literal("total", ", "); err != nil {
		return domain.Reward{}, 0, err
	}
	crp, err := s.simpleAmount("CRP")
	if err != nil {
		return domain.Reward{}, 0, err
	}
	if err := s.literal("total", ", "); err != nil {
		return domain.Reward{}, 0, err
	}
	rp, err := s.simpleAmount("RP")
	if err != nil {
		return domain.Reward{}, 0, err
	}
	return domain.Reward{Silverlions: sl, Research: rp}, crp, nil
}
