package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// indent is the fixed four-column indent that delimits table columns.
// Name columns are read up to the next occurrence of this sequence, so
// vehicle and award names may themselves contain single spaces.
const indent = "    "

// ParseError reports the grammar rule that failed and where in the input it
// failed. It is the base of every error chain returned by Parse; outer rules
// add context through fmt.Errorf wrapping, so errors.As recovers it.
type ParseError struct {
	Rule    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Rule, e.Line, e.Column, e.Message)
}

// scanner is a cursor over the report text. Parsing functions consume a
// prefix and advance pos; alternatives save the position with mark and roll
// back with restore.
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) rest() string {
	return s.src[s.pos:]
}

func (s *scanner) mark() int {
	return s.pos
}

func (s *scanner) restore(m int) {
	s.pos = m
}

func (s *scanner) errorf(rule, format string, args ...interface{}) error {
	consumed := s.src[:s.pos]
	line := strings.Count(consumed, "\n") + 1
	// Count runes, not bytes, so multi-byte characters such as the ×
	// destruction marker do not shift the reported column.
	column := utf8.RuneCountInString(consumed[strings.LastIndexByte(consumed, '\n')+1:]) + 1
	return &ParseError{
		Rule:    rule,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (s *scanner) hasPrefix(lit string) bool {
	return strings.HasPrefix(s.rest(), lit)
}

// literal consumes the exact string lit.
func (s *scanner) literal(rule, lit string) error {
	if !s.hasPrefix(lit) {
		return s.errorf(rule, "expected %q", lit)
	}
	s.pos += len(lit)
	return nil
}

// lineEnding consumes "\n" or "\r\n".
func (s *scanner) lineEnding(rule string) error {
	switch {
	case s.hasPrefix("\r\n"):
		s.pos += 2
	case s.hasPrefix("\n"):
		s.pos++
	default:
		return s.errorf(rule, "expected end of line")
	}
	return nil
}

// spaces consumes a run of plain spaces and reports how many were consumed.
func (s *scanner) spaces() int {
	n := 0
	for s.pos < len(s.src) && s.src[s.pos] == ' ' {
		s.pos++
		n++
	}
	return n
}

// rowSeparator is the gap between two table columns: the fixed indent
// followed by any additional padding.
func (s *scanner) rowSeparator(rule string) error {
	if err := s.literal(rule, indent); err != nil {
		return err
	}
	s.spaces()
	return nil
}

// rowEnding is trailing padding followed by a line terminator.
func (s *scanner) rowEnding(rule string) error {
	s.spaces()
	return s.lineEnding(rule)
}

// integer consumes a run of ASCII digits.
func (s *scanner) integer(rule string) (int, error) {
	end := s.pos
	for end < len(s.src) && s.src[end] >= '0' && s.src[end] <= '9' {
		end++
	}
	if end == s.pos {
		return 0, s.errorf(rule, "expected integer")
	}
	n, err := strconv.Atoi(s.src[s.pos:end])
	if err != nil {
		return 0, s.errorf(rule, "integer out of range: %v", err)
	}
	s.pos = end
	return n, nil
}

// timestamp consumes "H:MM" and yields total minutes.
func (s *scanner) timestamp(rule string) (int, error) {
	hours, err := s.integer(rule)
	if err != nil {
		return 0, err
	}
	if err := s.literal(rule, ":"); err != nil {
		return 0, err
	}
	minutes, err := s.integer(rule)
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// column consumes text up to the next occurrence of the indent sequence on
// the current line. The indent itself is not consumed.
func (s *scanner) column(rule string) (string, error) {
	rest := s.rest()
	idx := strings.Index(rest, indent)
	if idx < 0 || strings.ContainsAny(rest[:idx], "\r\n") {
		return "", s.errorf(rule, "expected text delimited by %q", indent)
	}
	s.pos += idx
	return rest[:idx], nil
}

// upTo consumes text up to and including lit, which must occur on the
// current line. The text before lit is returned.
func (s *scanner) upTo(rule, lit string) (string, error) {
	rest := s.rest()
	idx := strings.Index(rest, lit)
	if idx < 0 || strings.ContainsAny(rest[:idx], "\r\n") {
		return "", s.errorf(rule, "expected %q before end of line", lit)
	}
	s.pos += idx + len(lit)
	return rest[:idx], nil
}

// remainderOfLine consumes the text up to the next line terminator, leaving
// the terminator itself unconsumed.
func (s *scanner) remainderOfLine() string {
	rest := s.rest()
	idx := strings.IndexAny(rest, "\r\n")
	if idx < 0 {
		idx = len(rest)
	}
	s.pos += idx
	return rest[:idx]
}
