package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"wt-battle-report/internal/domain"
	"wt-battle-report/internal/parser"
)

// FileReportRepository implements the ReportRepository interface over plain
// battle report files exported by the game.
type FileReportRepository struct{}

// NewFileReportRepository creates a new repository instance.
func NewFileReportRepository() *FileReportRepository {
	return &FileReportRepository{}
}

// GetReport reads and parses a single battle report file.
func (r *FileReportRepository) GetReport(ctx context.Context, path string) (*domain.BattleReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read battle report file %s: %w", path, err)
	}

	report, err := parser.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse battle report %s: %w", path, err)
	}
	return report, nil
}

// GetReports reads and parses every regular file in the given directory, in
// lexical filename order. The first unreadable or malformed report aborts
// the whole read.
func (r *FileReportRepository) GetReports(ctx context.Context, dir string) ([]domain.BattleReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory %s: %w", dir, err)
	}

	var reports []domain.BattleReport
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		report, err := r.GetReport(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}
