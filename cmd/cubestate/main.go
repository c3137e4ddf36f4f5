// cubestate - a virtual 3x3x3 twisty puzzle for the terminal and the web.
package main

import (
	"github.com/SeamusWaldron/cubestate/internal/cli"
)

func main() {
	cli.Execute()
}
