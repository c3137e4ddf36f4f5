package cubestate

import "fmt"

// Move describes one quarter turn of one layer (or two, for wide moves).
//
// Layer selects the slice along Axis: -1 and 1 are outer layers, 0 is the
// middle slice. Direction +1 turns the layer 90 degrees in the right-hand
// sense about Axis, -1 the other way. Wide also turns the middle slice
// together with the requested outer layer.
type Move struct {
	Axis      Axis
	Layer     int
	Direction int
	Wide      bool
}

// Validate reports whether m is a well-formed descriptor. Wide slice
// moves are rejected rather than silently treated as plain slice moves.
func (m Move) Validate() error {
	if !m.Axis.Valid() {
		return fmt.Errorf("%w: axis %v", ErrInvalidMove, m.Axis)
	}
	if !inUnit(m.Layer) {
		return fmt.Errorf("%w: layer %d not in {-1,0,1}", ErrInvalidMove, m.Layer)
	}
	if m.Direction != 1 && m.Direction != -1 {
		return fmt.Errorf("%w: direction %d not in {+1,-1}", ErrInvalidMove, m.Direction)
	}
	if m.Wide && m.Layer == 0 {
		return fmt.Errorf("%w: wide flag on middle slice", ErrInvalidMove)
	}
	return nil
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	m.Direction = -m.Direction
	return m
}

// Rotation returns the quarter turn m applies to its layer.
func (m Move) Rotation() Rotation {
	return QuarterTurn(m.Axis, m.Direction)
}

// Selects reports whether a cubelet at pos turns with m.
func (m Move) Selects(pos Vec) bool {
	c := pos.Component(m.Axis)
	return c == m.Layer || (m.Wide && c == 0)
}

// Apply returns the state after m. On an invalid descriptor it returns s
// unchanged together with an error wrapping ErrInvalidMove.
func Apply(s State, m Move) (State, error) {
	if err := m.Validate(); err != nil {
		return s, err
	}
	r := m.Rotation()
	next := s
	for i, c := range next.cubelets {
		if m.Selects(c.Position) {
			next.cubelets[i] = c.rotated(r)
		}
	}
	return next, nil
}

// Apply is the method form of Apply.
func (s State) Apply(m Move) (State, error) {
	return Apply(s, m)
}

// ApplyAll applies moves in order. It stops at the first invalid move and
// returns the state reached before it.
func ApplyAll(s State, moves ...Move) (State, error) {
	for i, m := range moves {
		next, err := Apply(s, m)
		if err != nil {
			return s, fmt.Errorf("move %d: %w", i, err)
		}
		s = next
	}
	return s, nil
}

// Invert returns the sequence that undoes moves.
func Invert(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}
