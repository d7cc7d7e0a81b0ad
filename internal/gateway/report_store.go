package gateway

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"wt-battle-report/internal/domain"
)

// ReportStore persists parsed battle reports to a SQLite database so that
// statistics can be queried across sessions.
type ReportStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	result TEXT NOT NULL,
	mission_name TEXT NOT NULL,
	activity INTEGER NOT NULL,
	repair_cost INTEGER NOT NULL,
	ammo_and_crew_cost INTEGER NOT NULL,
	earned_silverlions INTEGER NOT NULL,
	earned_crp INTEGER NOT NULL,
	balance_silverlions INTEGER NOT NULL,
	balance_research INTEGER NOT NULL,
	total_crp INTEGER NOT NULL,
	UNIQUE(session_id)
);

CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id INTEGER NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	time INTEGER NOT NULL,
	kind TEXT NOT NULL,
	vehicle TEXT NOT NULL,
	enemy TEXT NOT NULL,
	silverlions INTEGER NOT NULL,
	research INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS awards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id INTEGER NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	time INTEGER NOT NULL,
	name TEXT NOT NULL,
	silverlions INTEGER NOT NULL,
	research INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS vehicles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id INTEGER NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	activity INTEGER NOT NULL,
	time_played INTEGER NOT NULL,
	silverlions INTEGER NOT NULL,
	research INTEGER NOT NULL
);
`

// OpenReportStore opens (creating if necessary) a report database at the
// given path and ensures the schema exists.
func OpenReportStore(path string) (*ReportStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open report database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create report schema: %w", err)
	}
	return &ReportStore{db: db}, nil
}

// Close closes the underlying database.
func (s *ReportStore) Close() error {
	return s.db.Close()
}

// SaveReport stores one report and its events, awards and vehicles in a
// single transaction, returning the new report id.
func (s *ReportStore) SaveReport(ctx context.Context, report *domain.BattleReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO reports (
			session_id, result, mission_name, activity,
			repair_cost, ammo_and_crew_cost,
			earned_silverlions, earned_crp,
			balance_silverlions, balance_research, total_crp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.SessionID, string(report.Result), report.MissionName, report.Activity,
		report.RepairCost, report.AmmoAndCrewCost,
		report.Earned.Silverlions, report.EarnedCRP,
		report.Balance.Silverlions, report.Balance.Research, report.TotalCRP,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report %s: %w", report.SessionID, err)
	}
	reportID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read report id: %w", err)
	}

	for _, event := range report.Events {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO events (report_id, time, kind, vehicle, enemy, silverlions, research)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			reportID, event.Time, event.Kind, event.Vehicle, event.Enemy,
			event.Reward.Silverlions, event.Reward.Research,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert event: %w", err)
		}
	}
	for _, award := range report.Awards {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO awards (report_id, time, name, silverlions, research)
			VALUES (?, ?, ?, ?, ?)`,
			reportID, award.Time, award.Name,
			award.Reward.Silverlions, award.Reward.Research,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert award: %w", err)
		}
	}
	for _, vehicle := range report.Vehicles {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vehicles (report_id, name, activity, time_played, silverlions, research)
			VALUES (?, ?, ?, ?, ?, ?)`,
			reportID, vehicle.Name, vehicle.Activity, vehicle.TimePlayed,
			vehicle.Reward.Silverlions, vehicle.Reward.Research,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert vehicle: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit report %s: %w", report.SessionID, err)
	}
	return reportID, nil
}

// CountReports reports how many battle reports are stored.
func (s *ReportStore) CountReports(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// SessionIDs returns the stored session identifiers in insertion order.
func (s *ReportStore) SessionIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id FROM reports ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
