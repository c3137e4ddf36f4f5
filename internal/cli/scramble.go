package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/scramble"
)

var (
	scrambleLength int
	scrambleSeed   int64
	scrambleShow   bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a random scramble",
	Long: `Generate a random scramble of outer-layer quarter turns. The same face is
never turned twice in a row.

Examples:
  cubestate scramble
  cubestate scramble --length 30 --seed 42 --show`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleLength, "length", "n", 0, "Number of moves (default from config)")
	scrambleCmd.Flags().Int64Var(&scrambleSeed, "seed", 0, "Random seed (default: time based)")
	scrambleCmd.Flags().BoolVar(&scrambleShow, "show", false, "Print the scrambled cube")
}

func runScramble(cmd *cobra.Command, args []string) error {
	n := scrambleLength
	if n <= 0 {
		n = cfg.Scramble.Length
	}

	moves := scramble.NewGenerator(scrambleSeed).Generate(n)
	fmt.Println(cubestate.FormatMoves(moves))

	if !scrambleShow {
		return nil
	}
	state, err := cubestate.ApplyAll(cubestate.NewState(), moves...)
	if err != nil {
		return err
	}
	facelets, err := cubestate.Project(state)
	if err != nil {
		return err
	}
	fmt.Println()
	return printCube(facelets, cubestate.IsSolved(state))
}
