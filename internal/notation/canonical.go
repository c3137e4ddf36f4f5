// Package notation provides move sequence utilities beyond parsing.
package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubestate"
)

// NormalizeTurn reduces a signed count of positive quarter turns to
// the range [-1, 2]: -3 -> 1, -2 -> 2, 3 -> -1, 4 -> 0.
func NormalizeTurn(turn int) int {
	turn = ((turn % 4) + 4) % 4
	if turn == 3 {
		turn = -1
	}
	return turn
}

type group struct {
	proto cubestate.Move // direction ignored
	turn  int
}

func sameLayer(a, b cubestate.Move) bool {
	return a.Axis == b.Axis && a.Layer == b.Layer && a.Wide == b.Wide
}

// Simplify merges runs of turns of the same layer and drops runs that
// cancel out. R R R becomes R', R U U' R' becomes nothing. Half turns come
// back as two quarter turns in the layer's clockwise direction.
// Moves must be valid. The result is equivalent to the input for every
// starting state.
func Simplify(moves []cubestate.Move) []cubestate.Move {
	var stack []group

	for _, m := range moves {
		if n := len(stack); n > 0 && sameLayer(stack[n-1].proto, m) {
			stack[n-1].turn = NormalizeTurn(stack[n-1].turn + m.Direction)
			if stack[n-1].turn == 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, group{proto: m, turn: NormalizeTurn(m.Direction)})
	}

	var out []cubestate.Move
	for _, g := range stack {
		m := g.proto
		switch g.turn {
		case 1, -1:
			m.Direction = g.turn
			out = append(out, m)
		case 2:
			m.Direction = clockwise(m)
			out = append(out, m, m)
		}
	}
	return out
}

// clockwise returns the direction that is a clockwise turn of m's layer
// in standard notation.
func clockwise(m cubestate.Move) int {
	m.Direction = 1
	if strings.HasSuffix(m.Notation(), "'") {
		return -1
	}
	return 1
}

// Canonical formats moves after simplification.
func Canonical(moves []cubestate.Move) string {
	return cubestate.FormatMoves(Simplify(moves))
}
