package analysis

import (
	"github.com/SeamusWaldron/cubestate"
)

// Tool is a named algorithm to look for in a move sequence. Half turns
// are written as two quarter turns, matching how moves are journaled.
type Tool struct {
	Name     string
	Sequence []cubestate.Move
}

func mustParse(s string) []cubestate.Move {
	moves, err := cubestate.ParseMoves(s)
	if err != nil {
		panic(err)
	}
	return moves
}

var (
	// Sune: R U R' U R U2 R'
	Sune = Tool{Name: "Sune", Sequence: mustParse("R U R' U R U2 R'")}

	// AntiSune: R U2 R' U' R U' R'
	AntiSune = Tool{Name: "Anti-Sune", Sequence: mustParse("R U2 R' U' R U' R'")}

	// LeftSune: L' U' L U' L' U2 L
	LeftSune = Tool{Name: "Left Sune", Sequence: mustParse("L' U' L U' L' U2 L")}

	// Sexy: R U R' U'
	Sexy = Tool{Name: "Sexy", Sequence: mustParse("R U R' U'")}

	// Sledgehammer: R' F R F'
	Sledgehammer = Tool{Name: "Sledgehammer", Sequence: mustParse("R' F R F'")}

	// TPerm: R U R' U' R' F R2 U' R' U' R U R' F'
	TPerm = Tool{Name: "T-Perm", Sequence: mustParse("R U R' U' R' F R2 U' R' U' R U R' F'")}
)

// AllTools lists the known tools, longest first so that a T-Perm is not
// reported as a Sexy move followed by leftovers.
var AllTools = []Tool{TPerm, Sune, AntiSune, LeftSune, Sexy, Sledgehammer}

// ToolMatch represents a detected tool usage.
type ToolMatch struct {
	ToolName   string `json:"tool_name"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
	TsMs       int64  `json:"ts_ms"`
}

// ToolReport summarizes algorithm usage in a sequence.
type ToolReport struct {
	MoveCount          int            `json:"move_count"`
	Counts             map[string]int `json:"counts"`
	Matches            []ToolMatch    `json:"matches"`
	ConsecutiveRepeats int            `json:"consecutive_repeats"`
	TimeBetweenToolsMs []int64        `json:"time_between_tools_ms"`
	AvgTimeBetweenMs   float64        `json:"avg_time_between_tools_ms"`
	UnmatchedMoves     int            `json:"unmatched_moves"`
}

// FindTools scans moves for non-overlapping occurrences of tools, taking
// the first tool in list order that matches at each position.
func FindTools(moves []TimedMove, tools []Tool) *ToolReport {
	report := &ToolReport{
		MoveCount: len(moves),
		Counts:    make(map[string]int),
		Matches:   []ToolMatch{},
	}

	matched := make([]bool, len(moves))
	lastMatchEnd := -1
	var lastMatchTs int64

	for i := 0; i < len(moves); i++ {
		for _, tool := range tools {
			if !matchesTool(moves, i, tool.Sequence) {
				continue
			}

			end := i + len(tool.Sequence) - 1
			report.Matches = append(report.Matches, ToolMatch{
				ToolName:   tool.Name,
				StartIndex: i,
				EndIndex:   end,
				TsMs:       moves[i].TsMs,
			})
			report.Counts[tool.Name]++

			for j := i; j <= end; j++ {
				matched[j] = true
			}

			if lastMatchEnd >= 0 {
				if lastMatchEnd == i-1 {
					report.ConsecutiveRepeats++
				}
				report.TimeBetweenToolsMs = append(report.TimeBetweenToolsMs, moves[i].TsMs-lastMatchTs)
			}

			lastMatchEnd = end
			lastMatchTs = moves[end].TsMs
			i = end
			break
		}
	}

	for _, m := range matched {
		if !m {
			report.UnmatchedMoves++
		}
	}

	if len(report.TimeBetweenToolsMs) > 0 {
		var total int64
		for _, t := range report.TimeBetweenToolsMs {
			total += t
		}
		report.AvgTimeBetweenMs = float64(total) / float64(len(report.TimeBetweenToolsMs))
	}

	return report
}

func matchesTool(moves []TimedMove, start int, tool []cubestate.Move) bool {
	if start+len(tool) > len(moves) {
		return false
	}
	for i, t := range tool {
		if moves[start+i].Move != t {
			return false
		}
	}
	return true
}
