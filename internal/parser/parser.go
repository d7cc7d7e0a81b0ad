// Package parser turns the plain-text battle report screen exported by the
// game into a domain.BattleReport. The input is consumed left to right in a
// single pass: each section parser takes a prefix of the remaining text, and
// the first failure aborts the whole parse with a positioned error. There is
// no partial result.
package parser

import (
	"fmt"

	"wt-battle-report/internal/domain"
)

// Parse parses a complete battle report. On failure the returned error
// chain names every enclosing grammar rule and wraps a *ParseError carrying
// the line and column of the failure.
func Parse(input string) (*domain.BattleReport, error) {
	s := newScanner(input)

	result, mission, err := s.resultLine()
	if err != nil {
		return nil, fmt.Errorf("result line: %w", err)
	}
	events, eventsErr := s.events()
	awards, err := s.awardTable()
	if err != nil {
		// A malformed event table ends the events loop early and leaves the
		// scanner on its header, so the awards failure alone would blame the
		// wrong table.
		if eventsErr != nil {
			return nil, fmt.Errorf("awards: %v (events: %w)", err, eventsErr)
		}
		return nil, fmt.Errorf("awards: %w", err)
	}
	vehicles, err := s.vehicleTables()
	if err != nil {
		return nil, fmt.Errorf("activity and time played: %w", err)
	}
	winning, err := s.winningReward()
	if err != nil {
		return nil, fmt.Errorf("reward for winning: %w", err)
	}
	otherAwards, err := s.otherAwards()
	if err != nil {
		return nil, fmt.Errorf("other awards: %w", err)
	}
	earned, earnedCRP, err := s.earnedLine()
	if err != nil {
		return nil, fmt.Errorf("earned: %w", err)
	}
	activity, err := s.activityPercent()
	if err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}
	damaged, err := s.damagedVehicles()
	if err != nil {
		return nil, fmt.Errorf("damaged vehicles: %w", err)
	}
	repairCost, err := s.costLine("automatic repair", repairPrefix)
	if err != nil {
		return nil, fmt.Errorf("automatic repair: %w", err)
	}
	resupplyCost, err := s.costLine("automatic resupply", resupplyPrefix)
	if err != nil {
		return nil, fmt.Errorf("automatic resupply: %w", err)
	}
	if err := s.lineEnding("cost block end"); err != nil {
		return nil, fmt.Errorf("cost block: %w", err)
	}
	vehicleResearch, err := s.vehicleResearchBlock()
	if err != nil {
		return nil, fmt.Errorf("researched units: %w", err)
	}
	modificationResearch, err := s.modificationResearchBlock()
	if err != nil {
		return nil, fmt.Errorf("researching progress: %w", err)
	}
	usedItems, err := s.usedItemsBlock()
	if err != nil {
		return nil, fmt.Errorf("used items: %w", err)
	}
	sessionID, err := s.sessionLine()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	balance, totalCRP, err := s.totalLine()
	if err != nil {
		return nil, fmt.Errorf("total: %w", err)
	}

	return &domain.BattleReport{
		SessionID:            sessionID,
		Result:               result,
		MissionName:          mission,
		Events:               events,
		Awards:               awards,
		WinningReward:        winning,
		OtherAwards:          otherAwards,
		Vehicles:             vehicles,
		Activity:             activity,
		DamagedVehicles:      damaged,
		RepairCost:           repairCost,
		AmmoAndCrewCost:      resupplyCost,
		VehicleResearch:      vehicleResearch,
		ModificationResearch: modificationResearch,
		UsedItems:            usedItems,
		Earned:               earned,
		EarnedCRP:            earnedCRP,
		Balance:              balance,
		TotalCRP:             totalCRP,
	}, nil
}

// resultLine parses `Victory in the <mission> mission!` (or `Defeat ...`)
// followed by an empty line.
func (s *scanner) resultLine() (domain.BattleResult, string, error) {
	var result domain.BattleResult
	switch {
	case s.hasPrefix("Victory"):
		s.pos += len("Victory")
		result = domain.BattleResultWin
	case s.hasPrefix("Defeat"):
		s.pos += len("Defeat")
		result = domain.BattleResultLoss
	default:
		return "", "", s.errorf("battle result", "expected %q or %q", "Victory", "Defeat")
	}
	if err := s.literal("battle result", " in the "); err != nil {
		return "", "", err
	}
	mission, err := s.upTo("mission name", " mission!")
	if err != nil {
		return "", "", err
	}
	if err := s.lineEnding("result line"); err != nil {
		return "", "", err
	}
	if err := s.lineEnding("result line"); err != nil {
		return "", "", err
	}
	return result, mission, nil
}
