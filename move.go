package cubestate

import (
	"fmt"
	"strings"
)

// layerName binds a notation letter to the layer it turns and the
// direction of its clockwise turn. Clockwise is judged looking at the
// named face; M follows L, E follows D and S follows F.
type layerName struct {
	letter    byte
	axis      Axis
	layer     int
	clockwise int
}

var layerNames = []layerName{
	{'U', Y, 1, -1},
	{'D', Y, -1, 1},
	{'R', X, 1, -1},
	{'L', X, -1, 1},
	{'F', Z, 1, -1},
	{'B', Z, -1, 1},
	{'M', X, 0, 1},
	{'E', Y, 0, 1},
	{'S', Z, 0, -1},
}

func lookupLetter(b byte) (layerName, bool) {
	for _, n := range layerNames {
		if n.letter == b {
			return n, true
		}
	}
	return layerName{}, false
}

func lookupLayer(axis Axis, layer int) (layerName, bool) {
	for _, n := range layerNames {
		if n.axis == axis && n.layer == layer {
			return n, true
		}
	}
	return layerName{}, false
}

// Notation returns the standard notation for m.
// Examples: R, R', Rw, Rw', M, S'
func (m Move) Notation() string {
	n, ok := lookupLayer(m.Axis, m.Layer)
	if !ok || m.Validate() != nil {
		return fmt.Sprintf("?(%v,%d,%+d)", m.Axis, m.Layer, m.Direction)
	}
	s := string(n.letter)
	if m.Wide {
		s += "w"
	}
	if m.Direction != n.clockwise {
		s += "'"
	}
	return s
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses one notation token. A half turn ("R2") yields two
// quarter turns; everything else yields one.
//
// Accepted: U D R L F B M E S, a "w" suffix or lowercase outer letter for
// wide moves (Rw, r), then an optional ' or ` for counter-clockwise and 2
// for a half turn.
func ParseMove(s string) ([]Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, ErrInvalidNotation
	}

	letter := s[0]
	wide := false
	if letter >= 'a' && letter <= 'z' {
		upper := letter - 'a' + 'A'
		if strings.IndexByte("UDRLFB", upper) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		letter = upper
		wide = true
	}
	n, ok := lookupLetter(letter)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	rest := s[1:]
	if strings.HasPrefix(rest, "w") {
		if wide || n.layer == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		wide = true
		rest = rest[1:]
	}

	m := Move{Axis: n.axis, Layer: n.layer, Direction: n.clockwise, Wide: wide}
	switch rest {
	case "":
		return []Move{m}, nil
	case "'", "`":
		return []Move{m.Inverse()}, nil
	case "2", "2'", "2`":
		return []Move{m, m}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		ms, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, ms...)
	}

	return moves, nil
}

// FormatMoves formats moves as a space-separated notation string. Two
// identical quarter turns in a row are written as one half turn.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, 0, len(moves))
	for i := 0; i < len(moves); i++ {
		m := moves[i]
		if i+1 < len(moves) && moves[i+1] == m {
			n, ok := lookupLayer(m.Axis, m.Layer)
			if ok && m.Validate() == nil {
				half := string(n.letter)
				if m.Wide {
					half += "w"
				}
				parts = append(parts, half+"2")
				i++
				continue
			}
		}
		parts = append(parts, m.Notation())
	}

	return strings.Join(parts, " ")
}
