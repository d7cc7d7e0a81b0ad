package usecase

import (
	"context"

	"wt-battle-report/internal/domain"
)

// ReportRepository defines the interface for loading battle reports.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go ReportRepository
type ReportRepository interface {
	GetReport(ctx context.Context, path string) (*domain.BattleReport, error)
	GetReports(ctx context.Context, dir string) ([]domain.BattleReport, error)
}
