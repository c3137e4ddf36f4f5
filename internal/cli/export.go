package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var (
	exportSessionID string
	exportFormat    string
	exportOutput    string
	exportLast      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journaled data",
	Long:  `Export journaled session data in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export moves from a session",
	Long: `Export the journaled move sequence of a session in text or JSON format.
Undo entries appear as the inverse move that was applied.

Examples:
  cubestate export moves --last
  cubestate export moves --id <session_id> --format json
  cubestate export moves --id <session_id> --format txt -o moves.txt`,
	RunE: runExportMoves,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVar(&exportSessionID, "id", "", "Session ID to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last session")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

type moveJSON struct {
	MoveIndex int    `json:"move_index"`
	TsMs      int64  `json:"ts_ms"`
	Notation  string `json:"notation"`
	Axis      string `json:"axis"`
	Layer     int    `json:"layer"`
	Direction int    `json:"direction"`
	Wide      bool   `json:"wide"`
	Undo      bool   `json:"undo"`
}

func formatMoveRecords(moves []storage.MoveRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		notations := make([]string, 0, len(moves))
		for _, m := range moves {
			notations = append(notations, m.Notation)
		}
		return strings.Join(notations, " "), nil

	case "json":
		out := make([]moveJSON, 0, len(moves))
		for _, m := range moves {
			mv := m.Move()
			out = append(out, moveJSON{
				MoveIndex: m.MoveIndex,
				TsMs:      m.TsMs,
				Notation:  m.Notation,
				Axis:      strings.ToLower(mv.Axis.String()),
				Layer:     mv.Layer,
				Direction: mv.Direction,
				Wide:      mv.Wide,
				Undo:      m.IsUndo,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	if exportSessionID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var idArgs []string
	if exportSessionID != "" {
		idArgs = []string{exportSessionID}
	}
	sessionID, err := resolveSessionID(storage.NewSessionRepository(db), idArgs, exportLast)
	if err != nil {
		return err
	}

	moves, err := storage.NewMoveRepository(db).GetBySession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get moves: %w", err)
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves found for session %s", sessionID)
	}

	output, err := formatMoveRecords(moves, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}
