package cubestate

// Cubelet is one of the 27 sub-cubes.
//
// ID is the cubelet's home coordinate and never changes. Position is where
// it currently sits, Orientation the accumulated rotation of its body axes:
// applying Orientation to a painted direction gives the world direction
// that face now points in.
type Cubelet struct {
	ID          Vec
	Position    Vec
	Orientation Rotation
}

// Home reports whether the cubelet is in its home cell with its original
// orientation.
func (c Cubelet) Home() bool {
	return c.Position == c.ID && c.Orientation.IsIdentity()
}

// Painted reports whether the face pointing along dir in the cubelet's own
// frame was on the outside of the puzzle when it was built.
func (c Cubelet) Painted(dir Vec) bool {
	return dir.Dot(c.ID) == 1 && dir.Dot(dir) == 1
}

// rotated returns the cubelet after r has been applied to it.
func (c Cubelet) rotated(r Rotation) Cubelet {
	c.Position = r.Apply(c.Position)
	c.Orientation = r.Mul(c.Orientation)
	return c
}
