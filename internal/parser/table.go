package parser

import (
	"fmt"

	"wt-battle-report/internal/domain"
)

// marker is the glyph that flags a row as already counted elsewhere.
const marker = "×" // ×

// tableHeader is the first line of every table: the table name, the number
// of rows that follow, and the aggregate reward for the whole table.
type tableHeader struct {
	name   string
	count  int
	reward domain.Reward
}

func (s *scanner) tableHeader() (tableHeader, error) {
	name, err := s.column("table name")
	if err != nil {
		return tableHeader{}, err
	}
	if err := s.rowSeparator("table name"); err != nil {
		return tableHeader{}, err
	}
	count, err := s.integer("row count")
	if err != nil {
		return tableHeader{}, err
	}
	if err := s.rowSeparator("row count"); err != nil {
		return tableHeader{}, err
	}
	reward, err := s.reward()
	if err != nil {
		return tableHeader{}, fmt.Errorf("total reward: %w", err)
	}
	if err := s.rowEnding("table header"); err != nil {
		return tableHeader{}, err
	}
	return tableHeader{name: name, count: count, reward: reward}, nil
}

// detailRow is one line of a reward-category table. The opponent column is
// absent for self-directed categories such as zone captures.
type detailRow struct {
	time    int
	vehicle string
	enemy   string
	reward  domain.Reward
}

func (s *scanner) detailRow() (detailRow, error) {
	if err := s.literal("row indent", indent); err != nil {
		return detailRow{}, err
	}
	time, err := s.timestamp("time column")
	if err != nil {
		return detailRow{}, err
	}
	if err := s.rowSeparator("time column"); err != nil {
		return detailRow{}, err
	}
	vehicle, err := s.column("vehicle column")
	if err != nil {
		return detailRow{}, err
	}
	if err := s.rowSeparator("vehicle column"); err != nil {
		return detailRow{}, err
	}

	// Greedily try the opponent shape; fall back to the self-directed
	// shape where the reward follows the actor column directly.
	m := s.mark()
	if row, err := s.opponentTail(time, vehicle); err == nil {
		return row, nil
	}
	s.restore(m)

	reward, err := s.reward()
	if err != nil {
		return detailRow{}, fmt.Errorf("reward column: %w", err)
	}
	if err := s.rowEnding("reward column"); err != nil {
		return detailRow{}, err
	}
	return detailRow{time: time, vehicle: vehicle, reward: reward}, nil
}

func (s *scanner) opponentTail(time int, vehicle string) (detailRow, error) {
	enemy, err := s.column("enemy vehicle column")
	if err != nil {
		return detailRow{}, err
	}
	if err := s.rowSeparator("enemy vehicle column"); err != nil {
		return detailRow{}, err
	}
	m := s.mark()
	if err := s.literal("marker", marker); err == nil {
		if err := s.rowSeparator("marker"); err != nil {
			return detailRow{}, err
		}
	} else {
		s.restore(m)
	}
	reward, err := s.reward()
	if err != nil {
		return detailRow{}, fmt.Errorf("reward column: %w", err)
	}
	if err := s.rowEnding("reward column"); err != nil {
		return detailRow{}, err
	}
	return detailRow{time: time, vehicle: vehicle, enemy: enemy, reward: reward}, nil
}

// shortRow is a table line naming a single entity, used by the awards and
// activity tables.
type shortRow struct {
	time   int
	name   string
	reward domain.Reward
}

func (s *scanner) shortRow() (shortRow, error) {
	if err := s.literal("row indent", indent); err != nil {
		return shortRow{}, err
	}
	time, err := s.timestamp("time column")
	if err != nil {
		return shortRow{}, err
	}
	if err := s.rowSeparator("time column"); err != nil {
		return shortRow{}, err
	}
	name, err := s.column("name column")
	if err != nil {
		return shortRow{}, err
	}
	if err := s.rowSeparator("name column"); err != nil {
		return shortRow{}, err
	}
	reward, err := s.reward()
	if err != nil {
		return shortRow{}, fmt.Errorf("reward column: %w", err)
	}
	if err := s.rowEnding("reward column"); err != nil {
		return shortRow{}, err
	}
	return shortRow{time: time, name: name, reward: reward}, nil
}

// eventTable parses one reward-category table: a header, exactly the
// declared number of detail rows, and a blank separator line. Every row
// becomes an Event tagged with the table name. A declared count of zero is
// legal and yields a table with no rows.
func (s *scanner) eventTable() ([]domain.Event, error) {
	header, err := s.tableHeader()
	if err != nil {
		return nil, fmt.Errorf("table header: %w", err)
	}
	events := make([]domain.Event, 0, header.count)
	for i := 0; i < header.count; i++ {
		row, err := s.detailRow()
		if err != nil {
			return nil, fmt.Errorf("table %q row %d of %d: %w", header.name, i+1, header.count, err)
		}
		events = append(events, domain.Event{
			Time:    row.time,
			Kind:    header.name,
			Vehicle: row.vehicle,
			Enemy:   row.enemy,
			Reward:  row.reward,
		})
	}
	if err := s.lineEnding("table end"); err != nil {
		return nil, fmt.Errorf("table %q declared %d rows: %w", header.name, header.count, err)
	}
	return events, nil
}
