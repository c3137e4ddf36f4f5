package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/recorder"
	"github.com/SeamusWaldron/cubestate/internal/render"
)

var (
	applyPlain    bool
	applyFacelets bool
	applyDescribe bool
	applyRecord   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [moves...]",
	Short: "Apply moves to a solved cube and print the result",
	Long: `Apply a move sequence in standard notation to a solved cube and print
the resulting net and facelet string.

Notation: U D R L F B M E S, w or lowercase for wide moves (Rw, r),
' for counter-clockwise and 2 for a half turn.

Examples:
  cubestate apply "R U R' U'"
  cubestate apply R U2 M' --facelets
  cubestate apply "R U R' U'" --record`,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyPlain, "plain", false, "Print the net without colors")
	applyCmd.Flags().BoolVarP(&applyFacelets, "facelets", "f", false, "Print only the facelet string")
	applyCmd.Flags().BoolVar(&applyDescribe, "describe", false, "Also print the moves simplified and in plain language")
	applyCmd.Flags().BoolVar(&applyRecord, "record", false, "Journal the sequence as a session")
}

// applyNotation applies a notation string to a solved cube.
func applyNotation(notation string) (cubestate.State, []cubestate.Move, error) {
	moves, err := cubestate.ParseMoves(notation)
	if err != nil {
		return cubestate.State{}, nil, err
	}
	state, err := cubestate.ApplyAll(cubestate.NewState(), moves...)
	if err != nil {
		return cubestate.State{}, nil, err
	}
	return state, moves, nil
}

func runApply(cmd *cobra.Command, args []string) error {
	state, moves, err := applyNotation(strings.Join(args, " "))
	if err != nil {
		return err
	}
	logger.Debug("applied moves", "count", len(moves))

	facelets, err := cubestate.Project(state)
	if err != nil {
		return err
	}
	if applyRecord {
		if err := recordApply(moves, state); err != nil {
			return err
		}
	}
	if applyFacelets {
		fmt.Println(facelets)
		return nil
	}
	if applyDescribe {
		simplified := notation.Simplify(moves)
		fmt.Printf("Moves:      %s\n", cubestate.FormatMoves(moves))
		fmt.Printf("Simplified: %s\n", notation.Canonical(moves))
		fmt.Printf("In words:   %s\n\n", notation.DescribeSequence(simplified))
	}

	return printCube(facelets, cubestate.IsSolved(state))
}

// recordApply journals a command-line sequence as its own session.
func recordApply(moves []cubestate.Move, final cubestate.State) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec := recorder.New(db, logger)
	id, err := rec.Start("apply", version)
	if err != nil {
		return err
	}
	if err := rec.RecordSequence(moves); err != nil {
		return err
	}
	if err := rec.End(final); err != nil {
		return err
	}
	logger.Info("sequence journaled", "session", id, "moves", len(moves))
	return nil
}

func printCube(facelets string, solved bool) error {
	var net string
	var err error
	if applyPlain {
		net, err = render.Net(facelets)
	} else {
		net, err = render.ColorNet(facelets)
	}
	if err != nil {
		return err
	}

	fmt.Println(net)
	fmt.Printf("Facelets: %s\n", facelets)
	fmt.Printf("Solved:   %v\n", solved)
	return nil
}
