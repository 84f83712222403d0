package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// The ingredients and flavor_profile columns hold serialized values. Newer
// exports write JSON; the shipped dataset writes Python literals with
// single-quoted strings ("['onion', 'garlic']", "{'spicy': 7, ...}"). Both
// forms are accepted; anything else fails the load.

// parseStringList decodes a serialized list of strings.
func parseStringList(cell string) ([]string, error) {
	cell = strings.TrimSpace(cell)
	var out []string
	if err := json.Unmarshal([]byte(cell), &out); err == nil {
		return out, nil
	}

	s := &literalScanner{input: []rune(cell)}
	s.skipSpace()
	if err := s.expect('['); err != nil {
		return nil, err
	}
	list := []string{}
	s.skipSpace()
	if s.peek() == ']' {
		s.next()
		return list, s.expectEnd()
	}
	for {
		item, err := s.scanString()
		if err != nil {
			return nil, err
		}
		list = append(list, item)
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.next()
			s.skipSpace()
		case ']':
			s.next()
			return list, s.expectEnd()
		default:
			return nil, s.errorf("expected ',' or ']'")
		}
	}
}

// parseFlavorProfile decodes a serialized flavor record into a FlavorVector.
// Missing components default to zero; unknown keys are ignored.
func parseFlavorProfile(cell string) (FlavorVector, error) {
	cell = strings.TrimSpace(cell)
	values := make(map[string]float64)
	if err := json.Unmarshal([]byte(cell), &values); err != nil {
		var perr error
		values, perr = parseLiteralMap(cell)
		if perr != nil {
			return FlavorVector{}, perr
		}
	}
	return FlavorVector{
		Spicy: values["spicy"],
		Sweet: values["sweet"],
		Umami: values["umami"],
		Sour:  values["sour"],
		Salty: values["salty"],
	}, nil
}

// parseLiteralMap decodes a Python dict literal of string keys to numbers.
func parseLiteralMap(cell string) (map[string]float64, error) {
	s := &literalScanner{input: []rune(cell)}
	s.skipSpace()
	if err := s.expect('{'); err != nil {
		return nil, err
	}
	values := make(map[string]float64)
	s.skipSpace()
	if s.peek() == '}' {
		s.next()
		return values, s.expectEnd()
	}
	for {
		key, err := s.scanString()
		if err != nil {
			return nil, err
		}
		s.skipSpace()
		if err := s.expect(':'); err != nil {
			return nil, err
		}
		s.skipSpace()
		val, err := s.scanNumber()
		if err != nil {
			return nil, err
		}
		values[key] = val
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.next()
			s.skipSpace()
		case '}':
			s.next()
			return values, s.expectEnd()
		default:
			return nil, s.errorf("expected ',' or '}'")
		}
	}
}

// literalScanner walks a Python literal rune by rune.
type literalScanner struct {
	input []rune
	pos   int
}

func (s *literalScanner) peek() rune {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *literalScanner) next() rune {
	r := s.peek()
	s.pos++
	return r
}

func (s *literalScanner) skipSpace() {
	for s.pos < len(s.input) && unicode.IsSpace(s.input[s.pos]) {
		s.pos++
	}
}

func (s *literalScanner) expect(r rune) error {
	if s.peek() != r {
		return s.errorf("expected %q", r)
	}
	s.pos++
	return nil
}

func (s *literalScanner) expectEnd() error {
	s.skipSpace()
	if s.pos != len(s.input) {
		return s.errorf("trailing content")
	}
	return nil
}

func (s *literalScanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("literal offset %d: %s", s.pos, fmt.Sprintf(format, args...))
}

// scanString reads a single- or double-quoted string with backslash escapes.
func (s *literalScanner) scanString() (string, error) {
	quote := s.peek()
	if quote != '\'' && quote != '"' {
		return "", s.errorf("expected quoted string")
	}
	s.next()
	var b strings.Builder
	for {
		if s.pos >= len(s.input) {
			return "", s.errorf("unterminated string")
		}
		r := s.next()
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			esc := s.next()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(r)
		}
	}
}

// scanNumber reads an int or float literal.
func (s *literalScanner) scanNumber() (float64, error) {
	start := s.pos
	for s.pos < len(s.input) {
		r := s.input[s.pos]
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' {
			s.pos++
			continue
		}
		break
	}
	if s.pos == start {
		return 0, s.errorf("expected number")
	}
	val, err := strconv.ParseFloat(string(s.input[start:s.pos]), 64)
	if err != nil {
		return 0, s.errorf("bad number %q", string(s.input[start:s.pos]))
	}
	return val, nil
}
