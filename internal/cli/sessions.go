package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/analysis"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/render"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var (
	listLimit     int
	showLast      bool
	patternsLimit int
	deleteLast    bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect journaled sessions",
	Long:  `Commands for listing and inspecting sessions recorded by play and serve.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Long:  `Display a list of recent sessions with basic statistics.`,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show details of a session",
	Long: `Display detailed information about a session including:
- Session metadata (duration, moves, scramble)
- The journaled move sequence
- Solver requests
- The final cube

Use --last to show the most recent session.`,
	RunE: runSessionsShow,
}

var sessionsPatternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Find repeated move sequences across sessions",
	Long:  `Mine the most frequent move sequences of 3 to 8 moves across recent sessions.`,
	RunE:  runSessionsPatterns,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session and its moves",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsDeleteCmd.Flags().BoolVar(&deleteLast, "last", false, "Delete the most recent session")

	sessionsCmd.AddCommand(sessionsPatternsCmd)
	sessionsPatternsCmd.Flags().IntVarP(&patternsLimit, "limit", "n", 20, "Number of sessions to scan")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsListCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "Number of sessions to show")

	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent session")
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	moveRepo := storage.NewMoveRepository(db)

	sessions, err := sessionRepo.List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet")
		fmt.Println("Start one with: cubestate play")
		return nil
	}

	fmt.Printf("Recent sessions (showing %d):\n", len(sessions))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-10s  %-6s  %-6s  %s\n", "ID", "Started", "Duration", "Moves", "Solved", "Notes")
	fmt.Println("------------------------------------  --------------------  ----------  ------  ------  -----")

	for _, s := range sessions {
		duration := "-"
		moves := "-"
		solved := "-"

		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
		}
		if n, _ := moveRepo.Count(s.SessionID); n > 0 {
			moves = fmt.Sprintf("%d", n)
		}
		if s.Solved != nil {
			solved = "no"
			if *s.Solved {
				solved = "yes"
			}
		}

		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}

		status := ""
		if s.EndedAt == nil {
			status = " (open)"
		}

		fmt.Printf("%-36s  %-20s  %-10s  %-6s  %-6s  %s%s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			moves,
			solved,
			notes,
			status,
		)
	}

	return nil
}

// resolveSessionID picks the session named by args or --last.
func resolveSessionID(repo *storage.SessionRepository, args []string, last bool) (string, error) {
	if last {
		s, err := repo.GetLast()
		if err != nil {
			return "", fmt.Errorf("failed to get latest session: %w", err)
		}
		if s == nil {
			return "", fmt.Errorf("no sessions found")
		}
		return s.SessionID, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	return "", fmt.Errorf("please provide a session ID or use --last")
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	id, err := resolveSessionID(sessionRepo, args, deleteLast)
	if err != nil {
		return err
	}
	if err := deleteSession(sessionRepo, id); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", id)
	return nil
}

// deleteSession removes a session after checking it exists; moves and
// solver runs go with it.
func deleteSession(repo *storage.SessionRepository, id string) error {
	s, err := repo.Get(id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("session not found: %s", id)
	}
	return repo.Delete(id)
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessionRepo := storage.NewSessionRepository(db)
	moveRepo := storage.NewMoveRepository(db)
	solverRepo := storage.NewSolverRunRepository(db)

	sessionID, err := resolveSessionID(sessionRepo, args, showLast)
	if err != nil {
		return err
	}

	session, err := sessionRepo.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	moves, err := moveRepo.GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	runs, err := solverRepo.GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get solver runs: %w", err)
	}

	fmt.Println("Session Details")
	fmt.Println("===============")
	fmt.Println()

	fmt.Printf("ID:       %s\n", session.SessionID)
	fmt.Printf("Started:  %s\n", session.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if session.EndedAt != nil {
		fmt.Printf("Ended:    %s\n", session.EndedAt.Local().Format("2006-01-02 15:04:05"))
	}
	if session.DurationMs != nil {
		fmt.Printf("Duration: %s\n", formatDuration(time.Duration(*session.DurationMs)*time.Millisecond))
	}
	if session.Notes != nil {
		fmt.Printf("Notes:    %s\n", *session.Notes)
	}
	if session.ScrambleText != nil {
		fmt.Printf("Scramble: %s\n", *session.ScrambleText)
	}
	fmt.Println()

	timed, undos := timedMoves(moves)
	fmt.Printf("Moves: %d (%d undo)\n", len(moves), undos)
	if len(moves) > 0 {
		for i, m := range moves {
			if i > 0 {
				fmt.Print(" ")
			}
			if m.IsUndo {
				fmt.Printf("(%s)", m.Notation)
			} else {
				fmt.Print(m.Notation)
			}
		}
		fmt.Println()

		executed := make([]cubestate.Move, len(timed))
		for i, tm := range timed {
			executed[i] = tm.Move
		}
		simplified := notation.Simplify(executed)
		fmt.Printf("Simplified (%d): %s\n", len(simplified), notation.Canonical(executed))
		fmt.Println()

		var durationMs int64
		if session.DurationMs != nil {
			durationMs = *session.DurationMs
		}
		printSummary(analysis.Summarize(session.SessionID, timed, undos, durationMs, len(simplified)))
		printTools(analysis.FindTools(timed, analysis.AllTools))
		printNGrams(analysis.MineNGrams(timed, 3, 8, 3))
	}
	fmt.Println()

	if len(runs) > 0 {
		fmt.Println("Solver requests")
		fmt.Println("---------------")
		for _, run := range runs {
			at := formatDuration(time.Duration(run.TsMs) * time.Millisecond)
			switch {
			case run.Error != nil:
				fmt.Printf("  %8s  error: %s\n", at, *run.Error)
			case run.Solution != nil:
				fmt.Printf("  %8s  %s\n", at, *run.Solution)
			default:
				fmt.Printf("  %8s  already solved\n", at)
			}
		}
		fmt.Println()
	}

	if session.FinalFacelets != nil {
		fmt.Printf("Final facelets: %s\n", *session.FinalFacelets)
		if net, err := render.ColorNet(*session.FinalFacelets); err == nil {
			fmt.Println(net)
		}
		if session.Solved != nil && *session.Solved {
			fmt.Println("Finished solved.")
		}
	}

	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

// timedMoves converts journal records to the moves that were executed.
func timedMoves(records []storage.MoveRecord) ([]analysis.TimedMove, int) {
	out := make([]analysis.TimedMove, len(records))
	undos := 0
	for i, r := range records {
		out[i] = analysis.TimedMove{Move: r.Move(), TsMs: r.TsMs}
		if r.IsUndo {
			undos++
		}
	}
	return out, undos
}

func printSummary(s *analysis.SessionSummary) {
	fmt.Println("Statistics")
	fmt.Println("----------")
	if s.TPSOverall > 0 {
		fmt.Printf("TPS:           %.2f\n", s.TPSOverall)
	}
	fmt.Printf("Avg per move:  %.0fms\n", s.AvgMoveDurationMs)
	fmt.Printf("Longest pause: %s\n", formatDuration(time.Duration(s.LongestPauseMs)*time.Millisecond))
	fmt.Printf("Pauses >1.5s:  %d\n", s.PauseCountOver1500)
	if layers := s.Profile.MostUsedLayers(); len(layers) > 0 {
		if len(layers) > 5 {
			layers = layers[:5]
		}
		fmt.Print("Most used:    ")
		for _, l := range layers {
			fmt.Printf(" %s(%d)", l, s.Profile.LayerCounts[l])
		}
		fmt.Println()
	}
	fmt.Println()
}

func printTools(r *analysis.ToolReport) {
	if len(r.Matches) == 0 {
		return
	}
	fmt.Println("Algorithms")
	fmt.Println("----------")
	for _, m := range r.Matches {
		fmt.Printf("  %-12s moves %d-%d at %s\n", m.ToolName, m.StartIndex+1, m.EndIndex+1,
			formatDuration(time.Duration(m.TsMs)*time.Millisecond))
	}
	fmt.Printf("  %d of %d moves outside known algorithms\n", r.UnmatchedMoves, r.MoveCount)
	fmt.Println()
}

func printNGrams(r *analysis.NGramReport) {
	printed := false
	for n := 8; n >= 3; n-- {
		for _, ng := range r.TopNGrams[n] {
			if !printed {
				fmt.Println("Repeated sequences")
				fmt.Println("------------------")
				printed = true
			}
			fmt.Printf("  %dx  %s\n", ng.Count, strings.Join(ng.Sequence, " "))
		}
	}
	if printed {
		fmt.Println()
	}
}

func runSessionsPatterns(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(patternsLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	moveRepo := storage.NewMoveRepository(db)

	reports := make(map[string]*analysis.NGramReport)
	for _, s := range sessions {
		records, err := moveRepo.GetBySession(s.SessionID)
		if err != nil {
			return fmt.Errorf("failed to get moves: %w", err)
		}
		timed, _ := timedMoves(records)
		reports[s.SessionID] = analysis.MineNGrams(timed, 3, 8, 10)
	}

	merged := analysis.MineNGramsAcrossSessions(reports, 5)
	if len(merged.TopNGrams) == 0 {
		fmt.Printf("No repeated sequences in the last %d sessions\n", len(sessions))
		return nil
	}

	fmt.Printf("Repeated sequences across %d sessions:\n\n", len(sessions))
	printNGrams(merged)
	return nil
}
