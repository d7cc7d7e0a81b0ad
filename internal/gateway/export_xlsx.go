package gateway

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"wt-battle-report/internal/domain"
)

// ExportSummaryXLSX writes a session summary to an xlsx workbook with an
// Overview sheet and a per-vehicle Vehicles sheet.
func ExportSummaryXLSX(path string, summary *domain.SessionSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return fmt.Errorf("failed to rename overview sheet: %w", err)
	}

	overviewRows := [][]interface{}{
		{"Battles", summary.Battles},
		{"Wins", summary.Wins},
		{"Losses", summary.Losses},
		{"Win rate", summary.WinRate},
		{"Earned SL", summary.Earned.Silverlions},
		{"Earned RP", summary.Earned.Research},
		{"Balance SL", summary.Balance.Silverlions},
		{"Balance RP", summary.Balance.Research},
		{"Repair cost", summary.RepairCost},
		{"Ammo and crew cost", summary.AmmoAndCrewCost},
	}
	for i, row := range overviewRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(overview, cell, &row); err != nil {
			return fmt.Errorf("failed to write overview row %d: %w", i+1, err)
		}
	}

	const vehicles = "Vehicles"
	if _, err := f.NewSheet(vehicles); err != nil {
		return fmt.Errorf("failed to create vehicles sheet: %w", err)
	}
	header := []interface{}{"Vehicle", "Battles", "Time played (min)", "Mean activity", "SL", "RP"}
	if err := f.SetSheetRow(vehicles, "A1", &header); err != nil {
		return fmt.Errorf("failed to write vehicles header: %w", err)
	}
	for i, totals := range summary.Vehicles {
		row := []interface{}{
			totals.Name,
			totals.Battles,
			totals.TimePlayed,
			totals.MeanActivity,
			totals.Reward.Silverlions,
			totals.Reward.Research,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(vehicles, cell, &row); err != nil {
			return fmt.Errorf("failed to write vehicle row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
