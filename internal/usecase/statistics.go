package usecase

import (
	"context"
	"fmt"
	"sort"

	"wt-battle-report/internal/domain"
)

// StatisticsUseCase folds a set of battle reports into cross-battle
// statistics.
type StatisticsUseCase struct {
	repo ReportRepository
}

// NewStatisticsUseCase creates a new instance of the usecase.
func NewStatisticsUseCase(repo ReportRepository) *StatisticsUseCase {
	return &StatisticsUseCase{repo: repo}
}

// Summarize loads every report in dir and aggregates it into a
// SessionSummary. Vehicle totals are merged by vehicle name and sorted by
// name; reports keep the order the repository returns them in.
func (uc *StatisticsUseCase) Summarize(ctx context.Context, dir string) (*domain.SessionSummary, error) {
	reports, err := uc.repo.GetReports(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("could not load battle reports: %w", err)
	}

	summary := &domain.SessionSummary{
		AwardCounts: make(map[string]int),
	}

	type vehicleAccumulator struct {
		totals      domain.VehicleTotals
		activitySum int
	}
	vehicles := make(map[string]*vehicleAccumulator)

	for _, report := range reports {
		summary.Battles++
		if report.Result == domain.BattleResultWin {
			summary.Wins++
		} else {
			summary.Losses++
		}

		summary.Earned.Silverlions += report.Earned.Silverlions
		summary.Earned.Research += report.Earned.Research
		summary.Balance.Silverlions += report.Balance.Silverlions
		summary.Balance.Research += report.Balance.Research
		summary.RepairCost += report.RepairCost
		summary.AmmoAndCrewCost += report.AmmoAndCrewCost

		for _, award := range report.Awards {
			summary.AwardCounts[award.Name]++
		}

		for _, vehicle := range report.Vehicles {
			acc, ok := vehicles[vehicle.Name]
			if !ok {
				acc = &vehicleAccumulator{totals: domain.VehicleTotals{Name: vehicle.Name}}
				vehicles[vehicle.Name] = acc
			}
			acc.totals.Battles++
			acc.totals.TimePlayed += vehicle.TimePlayed
			acc.totals.Reward.Silverlions += vehicle.Reward.Silverlions
			acc.totals.Reward.Research += vehicle.Reward.Research
			acc.activitySum += vehicle.Activity
		}
	}

	if summary.Battles > 0 {
		summary.WinRate = float64(summary.Wins) / float64(summary.Battles)
	}

	summary.Vehicles = make([]domain.VehicleTotals, 0, len(vehicles))
	for _, acc := range vehicles {
		acc.totals.MeanActivity = float64(acc.activitySum) / float64(acc.totals.Battles)
		summary.Vehicles = append(summary.Vehicles, acc.totals)
	}
	sort.Slice(summary.Vehicles, func(i, j int) bool {
		return summary.Vehicles[i].Name < summary.Vehicles[j].Name
	})

	return summary, nil
}
