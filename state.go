package cubestate

import (
	"fmt"
	"strings"
)

// cubeletCount is the number of lattice cells in a 3x3x3 puzzle.
const cubeletCount = 27

// State is a snapshot of all 27 cubelets.
//
// State is a value: assigning or passing it copies every cubelet, so a
// State held by a caller never changes when a later move is applied.
// Two States compare equal with == exactly when every cubelet has the
// same position and orientation.
type State struct {
	cubelets [cubeletCount]Cubelet
}

// NewState returns the solved configuration: every cubelet in its home
// cell with the identity orientation.
func NewState() State {
	var s State
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				id := Vec{x, y, z}
				s.cubelets[index(id)] = Cubelet{
					ID:          id,
					Position:    id,
					Orientation: Identity,
				}
			}
		}
	}
	return s
}

// index orders cubelets by ID: x major, then y, then z.
func index(id Vec) int {
	return (id.X+1)*9 + (id.Y+1)*3 + (id.Z + 1)
}

// Cubelets returns a copy of the cubelets, ordered by ID.
func (s State) Cubelets() []Cubelet {
	out := make([]Cubelet, cubeletCount)
	copy(out, s.cubelets[:])
	return out
}

// Cubelet returns the cubelet born at id.
func (s State) Cubelet(id Vec) (Cubelet, bool) {
	if !id.InLattice() {
		return Cubelet{}, false
	}
	return s.cubelets[index(id)], true
}

// At returns the cubelet currently occupying pos.
func (s State) At(pos Vec) (Cubelet, bool) {
	for _, c := range s.cubelets {
		if c.Position == pos {
			return c, true
		}
	}
	return Cubelet{}, false
}

// Validate checks the structural invariants: every lattice cell is
// occupied exactly once and every orientation is a cube rotation
// consistent with its position.
func (s State) Validate() error {
	var seen [cubeletCount]bool
	for i, c := range s.cubelets {
		if index(c.ID) != i {
			return fmt.Errorf("%w: cubelet %v stored at slot %d", ErrInvalidState, c.ID, i)
		}
		if !c.Position.InLattice() {
			return fmt.Errorf("%w: cubelet %v at %v outside lattice", ErrInvalidState, c.ID, c.Position)
		}
		if seen[index(c.Position)] {
			return fmt.Errorf("%w: cell %v occupied twice", ErrInvalidState, c.Position)
		}
		seen[index(c.Position)] = true
		if !c.Orientation.Valid() {
			return fmt.Errorf("%w: cubelet %v has orientation %v", ErrInvalidState, c.ID, c.Orientation)
		}
		if c.Orientation.Apply(c.ID) != c.Position {
			return fmt.Errorf("%w: cubelet %v orientation disagrees with position %v", ErrInvalidState, c.ID, c.Position)
		}
	}
	return nil
}

// String lists every cubelet that is away from home.
func (s State) String() string {
	var b strings.Builder
	b.WriteString("State{")
	first := true
	for _, c := range s.cubelets {
		if c.Home() {
			continue
		}
		if !first {
			b.WriteString(" ")
		}
		first = false
		fmt.Fprintf(&b, "%v->%v", c.ID, c.Position)
		if !c.Orientation.IsIdentity() {
			b.WriteString("*")
		}
	}
	b.WriteString("}")
	return b.String()
}
