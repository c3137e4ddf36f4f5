package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/solver"
)

var (
	solveFacelets string
	solveURL      string
)

var solveCmd = &cobra.Command{
	Use:   "solve [moves...]",
	Short: "Ask the solving service for a solution",
	Long: `Apply moves to a solved cube, send the resulting facelet string to the
solving service and print the solution it returns.

Use --facelets to send a facelet string directly instead.

Examples:
  cubestate solve "R U R' U'"
  cubestate solve --facelets UUFUUFUUFRRRRRRRRRFFDFFDFFDDDBDDBDDBLLLLLLLLLUBBUBBUBB`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveFacelets, "facelets", "", "Facelet string to solve")
	solveCmd.Flags().StringVar(&solveURL, "url", "", "Solver service URL (default from config)")
}

func newSolver() *solver.HTTPClient {
	url := solveURL
	if url == "" {
		url = cfg.Solver.URL
	}
	return solver.NewHTTPClient(url, cfg.Solver.Timeout)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Solver.Timeout)
	defer cancel()

	if solveFacelets != "" {
		facelets, err := cubestate.Relabel(solveFacelets)
		if err != nil {
			return err
		}
		solution, err := newSolver().Solve(ctx, facelets)
		if err != nil {
			return err
		}
		fmt.Println(solution)
		return nil
	}

	state, _, err := applyNotation(strings.Join(args, " "))
	if err != nil {
		return err
	}

	moves, err := solver.SolveState(ctx, newSolver(), state)
	if err != nil {
		return err
	}
	logger.Debug("solver answered", "moves", len(moves))
	fmt.Println(cubestate.FormatMoves(moves))

	if after, err := cubestate.ApplyAll(state, moves...); err == nil && !cubestate.IsSolved(after) {
		logger.Warn("solution leaves the cube unsolved; centers may have moved")
	}
	return nil
}
