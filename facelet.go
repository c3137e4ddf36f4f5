package cubestate

import (
	"fmt"
	"strings"
)

// Face identifies one of the six faces, in facelet string order.
type Face int

const (
	FaceU Face = iota // Up
	FaceR             // Right
	FaceF             // Front
	FaceD             // Down
	FaceL             // Left
	FaceB             // Back
)

// Faces lists the faces in facelet string order.
var Faces = [6]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// FaceletCount is the length of a facelet string.
const FaceletCount = 54

const faceLabels = "URFDLB"

func (f Face) String() string {
	if f < FaceU || f > FaceB {
		return "?"
	}
	return faceLabels[f : f+1]
}

// Label returns the character used for f in a facelet string.
func (f Face) Label() byte {
	return faceLabels[f]
}

// Normal returns the outward unit normal of f.
func (f Face) Normal() Vec {
	switch f {
	case FaceU:
		return Vec{0, 1, 0}
	case FaceR:
		return Vec{1, 0, 0}
	case FaceF:
		return Vec{0, 0, 1}
	case FaceD:
		return Vec{0, -1, 0}
	case FaceL:
		return Vec{-1, 0, 0}
	default:
		return Vec{0, 0, -1}
	}
}

// Color returns the sticker color f carries when solved: white on top,
// green in front.
func (f Face) Color() Color {
	switch f {
	case FaceU:
		return White
	case FaceR:
		return Red
	case FaceF:
		return Green
	case FaceD:
		return Yellow
	case FaceL:
		return Orange
	default:
		return Blue
	}
}

// FaceFromLabel maps a facelet character back to its face.
func FaceFromLabel(b byte) (Face, bool) {
	i := strings.IndexByte(faceLabels, b)
	if i < 0 {
		return 0, false
	}
	return Face(i), true
}

// faceForDirection maps a unit axis direction to the face whose normal
// it is.
func faceForDirection(d Vec) (Face, bool) {
	for _, f := range Faces {
		if f.Normal() == d {
			return f, true
		}
	}
	return 0, false
}

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// FaceletPosition returns the lattice cell behind sticker idx (0..8,
// row-major) of face f, as seen looking straight at that face:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// U is seen from above with B at the top, D from below with F at the
// top, and the side faces with U at the top.
func FaceletPosition(f Face, idx int) Vec {
	r, c := idx/3, idx%3
	switch f {
	case FaceU:
		return Vec{c - 1, 1, r - 1}
	case FaceR:
		return Vec{1, 1 - r, 1 - c}
	case FaceF:
		return Vec{c - 1, 1 - r, 1}
	case FaceD:
		return Vec{c - 1, -1, 1 - r}
	case FaceL:
		return Vec{-1, 1 - r, c - 1}
	default:
		return Vec{1 - c, 1 - r, -1}
	}
}

// Project derives the 54-character facelet string from s. Each character
// names the face whose color is showing at that sticker.
//
// Colors are not stored; they are recovered from geometry. The cubelet at
// the sticker's cell is looked up by position, the face normal is pulled
// back through the inverse of its orientation, and the resulting body
// direction names the face it was painted for.
func Project(s State) (string, error) {
	var out [FaceletCount]byte
	for fi, f := range Faces {
		n := f.Normal()
		for i := 0; i < 9; i++ {
			pos := FaceletPosition(f, i)
			c, ok := s.At(pos)
			if !ok {
				return "", fmt.Errorf("%w: no cubelet at %v", ErrInvalidState, pos)
			}
			painted := c.Orientation.Inverse().Apply(n)
			if !c.Painted(painted) {
				return "", fmt.Errorf("%w: cubelet %v shows unpainted side %v on %v", ErrInvalidState, c.ID, painted, f)
			}
			orig, ok := faceForDirection(painted)
			if !ok {
				return "", fmt.Errorf("%w: cubelet %v has non-axis direction %v", ErrInvalidState, c.ID, painted)
			}
			out[fi*9+i] = orig.Label()
		}
	}
	return string(out[:]), nil
}

// Facelets is the method form of Project.
func (s State) Facelets() (string, error) {
	return Project(s)
}

// FaceBlock returns the 9 characters of face f in a facelet string.
func FaceBlock(facelets string, f Face) string {
	return facelets[int(f)*9 : int(f)*9+9]
}

// ValidateFacelets checks the shape of a facelet string: length 54,
// alphabet URFDLB and nine stickers of each label. It does not check that
// the string describes a reachable cube.
func ValidateFacelets(facelets string) error {
	if len(facelets) != FaceletCount {
		return fmt.Errorf("%w: length %d", ErrInvalidFacelets, len(facelets))
	}
	var counts [6]int
	for i := 0; i < len(facelets); i++ {
		f, ok := FaceFromLabel(facelets[i])
		if !ok {
			return fmt.Errorf("%w: character %q at %d", ErrInvalidFacelets, facelets[i], i)
		}
		counts[f]++
	}
	for f, n := range counts {
		if n != 9 {
			return fmt.Errorf("%w: %d stickers labelled %v", ErrInvalidFacelets, n, Face(f))
		}
	}
	return nil
}

// Relabel rewrites a facelet string so that every face's label matches the
// sticker at its center. Slice and wide moves carry centers away from
// their home face; a solver that assumes fixed centers needs the string
// expressed relative to where the centers are now.
func Relabel(facelets string) (string, error) {
	if err := ValidateFacelets(facelets); err != nil {
		return "", err
	}
	var mapping [256]byte
	for _, f := range Faces {
		center := facelets[int(f)*9+4]
		if mapping[center] != 0 {
			return "", fmt.Errorf("%w: two centers labelled %c", ErrInvalidFacelets, center)
		}
		mapping[center] = f.Label()
	}
	out := []byte(facelets)
	for i := range out {
		out[i] = mapping[out[i]]
	}
	return string(out), nil
}
