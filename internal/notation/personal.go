package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubestate"
)

// Plain-language names for a clockwise and counter-clockwise turn of each
// layer, seen with white on top and green in front.
var personal = map[string][2]string{
	"R": {"R up", "R down"},
	"L": {"L down", "L up"},
	"M": {"M down", "M up"},
	"U": {"T rotate right", "T rotate left"},
	"D": {"B rotate right", "B rotate left"},
	"E": {"E rotate right", "E rotate left"},
	"F": {"F rotate clockwise", "F rotate anti-clockwise"},
	"B": {"Back rotate clockwise", "Back rotate anti-clockwise"},
	"S": {"S rotate clockwise", "S rotate anti-clockwise"},
}

// Describe converts a move to plain language, e.g. R' -> "R down" and
// Uw -> "wide T rotate right".
func Describe(m cubestate.Move) string {
	n := m.Notation()
	prime := strings.HasSuffix(n, "'")
	layer := n[:1]
	names, ok := personal[layer]
	if !ok {
		return n
	}

	out := names[0]
	if prime {
		out = names[1]
	}
	if m.Wide {
		out = "wide " + out
	}
	return out
}

// DescribeSequence formats moves as a comma-separated plain-language string.
func DescribeSequence(moves []cubestate.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = Describe(m)
	}
	return strings.Join(parts, ", ")
}
