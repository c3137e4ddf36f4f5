package cubestate

import "fmt"

// Axis is one of the three principal axes of the puzzle.
type Axis int

const (
	X Axis = iota // Left to right
	Y             // Bottom to top
	Z             // Back to front
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a == X || a == Y || a == Z
}

// Vec is a lattice coordinate or axis direction. Components are
// always in {-1, 0, 1} for anything stored in a State.
type Vec struct {
	X, Y, Z int
}

// V is shorthand for Vec{x, y, z}.
func V(x, y, z int) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Component returns the coordinate of v along a.
func (v Vec) Component(a Axis) int {
	switch a {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

// Neg returns -v.
func (v Vec) Neg() Vec {
	return Vec{-v.X, -v.Y, -v.Z}
}

// Dot returns the scalar product of v and w.
func (v Vec) Dot(w Vec) int {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// InLattice reports whether every component is in {-1, 0, 1}.
func (v Vec) InLattice() bool {
	return inUnit(v.X) && inUnit(v.Y) && inUnit(v.Z)
}

func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

func (v Vec) array() [3]int {
	return [3]int{v.X, v.Y, v.Z}
}

func inUnit(n int) bool {
	return n >= -1 && n <= 1
}

// Rotation is a 3x3 integer rotation matrix. Every Rotation produced by
// this package is one of the 24 proper rotations of the cube, so
// composition is exact and never needs snapping.
type Rotation [3][3]int

// Identity is the rotation that leaves every vector unchanged.
var Identity = Rotation{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// QuarterTurn returns the 90 degree rotation about axis in the
// right-hand sense when direction is +1, and its inverse when -1.
func QuarterTurn(axis Axis, direction int) Rotation {
	s := direction
	switch axis {
	case X:
		return Rotation{
			{1, 0, 0},
			{0, 0, -s},
			{0, s, 0},
		}
	case Y:
		return Rotation{
			{0, 0, s},
			{0, 1, 0},
			{-s, 0, 0},
		}
	default:
		return Rotation{
			{0, -s, 0},
			{s, 0, 0},
			{0, 0, 1},
		}
	}
}

// Apply rotates v.
func (r Rotation) Apply(v Vec) Vec {
	a := v.array()
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = r[i][0]*a[0] + r[i][1]*a[1] + r[i][2]*a[2]
	}
	return Vec{out[0], out[1], out[2]}
}

// Mul returns r*o: the rotation that applies o first, then r.
func (r Rotation) Mul(o Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[i][0]*o[0][j] + r[i][1]*o[1][j] + r[i][2]*o[2][j]
		}
	}
	return out
}

// Inverse returns the inverse rotation, which for an orthonormal matrix
// is its transpose.
func (r Rotation) Inverse() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// IsIdentity reports whether r is the identity rotation.
func (r Rotation) IsIdentity() bool {
	return r == Identity
}

// Valid reports whether r is a member of the cube rotation group:
// a signed permutation matrix with determinant +1.
func (r Rotation) Valid() bool {
	for i := 0; i < 3; i++ {
		nonzero := 0
		for j := 0; j < 3; j++ {
			switch r[i][j] {
			case 0:
			case 1, -1:
				nonzero++
			default:
				return false
			}
		}
		if nonzero != 1 {
			return false
		}
	}
	for j := 0; j < 3; j++ {
		nonzero := 0
		for i := 0; i < 3; i++ {
			if r[i][j] != 0 {
				nonzero++
			}
		}
		if nonzero != 1 {
			return false
		}
	}
	return r.det() == 1
}

func (r Rotation) det() int {
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

func (r Rotation) String() string {
	return fmt.Sprintf("[%v %v %v]", r[0], r[1], r[2])
}

var rotationGroup = buildRotationGroup()

// buildRotationGroup closes {X, Y} quarter turns under composition.
func buildRotationGroup() []Rotation {
	group := []Rotation{Identity}
	seen := map[Rotation]bool{Identity: true}
	gens := []Rotation{QuarterTurn(X, 1), QuarterTurn(Y, 1)}
	for i := 0; i < len(group); i++ {
		for _, g := range gens {
			next := g.Mul(group[i])
			if !seen[next] {
				seen[next] = true
				group = append(group, next)
			}
		}
	}
	return group
}

// RotationGroup returns the 24 rotations of the cube, identity first.
func RotationGroup() []Rotation {
	out := make([]Rotation, len(rotationGroup))
	copy(out, rotationGroup)
	return out
}
