// Package render draws facelet strings as an unfolded cube net.
//
// The net puts U on top, the L F R B belt in the middle and D below:
//
//	      U U U
//	      U U U
//	      U U U
//	L L L F F F R R R B B B
//	...
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubestate"
)

var belt = []cubestate.Face{cubestate.FaceL, cubestate.FaceF, cubestate.FaceR, cubestate.FaceB}

// stickerStyles maps sticker colors to terminal backgrounds.
var stickerStyles = map[cubestate.Color]lipgloss.Style{
	cubestate.White:  sticker("15", "0"),
	cubestate.Yellow: sticker("226", "0"),
	cubestate.Green:  sticker("34", "0"),
	cubestate.Blue:   sticker("27", "15"),
	cubestate.Red:    sticker("196", "15"),
	cubestate.Orange: sticker("208", "0"),
}

func sticker(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1)
}

// Net renders facelets as plain text using face letters.
func Net(facelets string) (string, error) {
	if err := cubestate.ValidateFacelets(facelets); err != nil {
		return "", err
	}
	return layout(facelets, "      ", func(label byte) string {
		return string(label) + " "
	}), nil
}

// ColorNet renders facelets as colored stickers labeled with their color
// letter. Labels are mapped through the solved color scheme.
func ColorNet(facelets string) (string, error) {
	if err := cubestate.ValidateFacelets(facelets); err != nil {
		return "", err
	}
	return layout(facelets, "         ", func(label byte) string {
		face, _ := cubestate.FaceFromLabel(label)
		c := face.Color()
		return stickerStyles[c].Render(c.String())
	}), nil
}

// State renders a cube state as a colored net.
func State(s cubestate.State) (string, error) {
	facelets, err := cubestate.Project(s)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return ColorNet(facelets)
}

func layout(facelets, indent string, cell func(label byte) string) string {
	var b strings.Builder

	row := func(f cubestate.Face, r int) {
		block := cubestate.FaceBlock(facelets, f)
		for c := 0; c < 3; c++ {
			b.WriteString(cell(block[r*3+c]))
		}
	}

	for r := 0; r < 3; r++ {
		b.WriteString(indent)
		row(cubestate.FaceU, r)
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		for _, f := range belt {
			row(f, r)
		}
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(indent)
		row(cubestate.FaceD, r)
		b.WriteString("\n")
	}

	return b.String()
}
