package parser

import (
	"fmt"

	"wt-battle-report/internal/domain"
)

// amount parses one reward figure for the given unit suffix ("SL" or "RP").
// Two textual shapes collapse to the same value:
//
//	413 RP
//	10 + (PA)10 + (Booster)10 + (Talismans)10 = 40 RP
//
// In the itemized shape the trailing "= N" figure is authoritative; the
// listed bonus terms are not re-summed.
func (s *scanner) amount(unit string) (int, error) {
	m := s.mark()
	if n, err := s.simpleAmount(unit); err == nil {
		return n, nil
	}
	s.restore(m)
	n, err := s.itemizedAmount(unit)
	if err != nil {
		s.restore(m)
		return 0, err
	}
	return n, nil
}

func (s *scanner) simpleAmount(unit string) (int, error) {
	n, err := s.integer(unit + " amount")
	if err != nil {
		return 0, err
	}
	if err := s.literal(unit+" amount", " "+unit); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *scanner) itemizedAmount(unit string) (int, error) {
	rule := "itemized " + unit + " amount"
	if _, err := s.integer(rule); err != nil {
		return 0, err
	}
	terms := 0
	for {
		m := s.mark()
		if err := s.literal(rule, " + ("); err != nil {
			s.restore(m)
			break
		}
		if err := s.bonusLabel(rule); err != nil {
			return 0, err
		}
		if err := s.literal(rule, ")"); err != nil {
			return 0, err
		}
		if _, err := s.integer(rule); err != nil {
			return 0, err
		}
		terms++
	}
	if terms == 0 {
		return 0, s.errorf(rule, "expected at least one bonus term")
	}
	if err := s.literal(rule, " = "); err != nil {
		return 0, err
	}
	return s.simpleAmount(unit)
}

func (s *scanner) bonusLabel(rule string) error {
	start := s.pos
	for s.pos < len(s.src) && isLetter(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return s.errorf(rule, "expected bonus label")
	}
	return nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// reward parses a currency amount optionally followed by a research amount:
//
//	5820 SL     413 RP
//	1000 SL
//	505 SL    10 + (PA)10 + (Booster)10 + (Talismans)10 = 40 RP
//
// A missing research part yields research = 0.
func (s *scanner) reward() (domain.Reward, error) {
	sl, err := s.amount("SL")
	if err != nil {
		return domain.Reward{}, fmt.Errorf("silverlions: %w", err)
	}
	m := s.mark()
	if s.spaces() > 0 {
		if rp, err := s.amount("RP"); err == nil {
			return domain.Reward{Silverlions: sl, Research: rp}, nil
		}
	}
	s.restore(m)
	return domain.Reward{Silverlions: sl}, nil
}
