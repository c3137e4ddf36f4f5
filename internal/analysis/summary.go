package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/cubestate"
)

// SessionSummary contains statistics for one journaled session.
type SessionSummary struct {
	SessionID          string   `json:"session_id"`
	DurationMs         int64    `json:"duration_ms"`
	TotalMoves         int      `json:"total_moves"`
	UndoCount          int      `json:"undo_count"`
	SimplifiedMoves    int      `json:"simplified_moves"`
	TPSOverall         float64  `json:"tps_overall"`
	LongestPauseMs     int64    `json:"longest_pause_ms"`
	PauseCountOver1500 int      `json:"pause_count_over_1500ms"`
	AvgMoveDurationMs  float64  `json:"avg_move_duration_ms"`
	Profile            *Profile `json:"profile"`
}

// PauseInfo represents a pause between two moves.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// Summarize computes a summary. simplified is the length of the sequence
// after cancellation, computed by the caller.
func Summarize(sessionID string, moves []TimedMove, undos int, durationMs int64, simplified int) *SessionSummary {
	return &SessionSummary{
		SessionID:          sessionID,
		DurationMs:         durationMs,
		TotalMoves:         len(moves),
		UndoCount:          undos,
		SimplifiedMoves:    simplified,
		TPSOverall:         CalculateTPS(moves, durationMs),
		LongestPauseMs:     FindLongestPause(moves),
		PauseCountOver1500: CountPausesOver(moves, 1500),
		AvgMoveDurationMs:  CalculateAvgMoveDuration(moves),
		Profile:            AnalyzeProfile(moves),
	}
}

// AnalyzePauses finds all pauses of at least thresholdMs.
func AnalyzePauses(moves []TimedMove, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           moves[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second for a move sequence.
func CalculateTPS(moves []TimedMove, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(len(moves)) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(moves []TimedMove) float64 {
	if len(moves) < 2 {
		return 0
	}

	totalGap := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(totalGap) / float64(len(moves)-1)
}

// FindLongestPause finds the longest pause in a move sequence.
func FindLongestPause(moves []TimedMove) int64 {
	var longest int64

	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}

	return longest
}

// CountPausesOver counts pauses over a threshold.
func CountPausesOver(moves []TimedMove, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].TsMs-moves[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

// Profile counts which layers are turned and how.
type Profile struct {
	LayerCounts      map[string]int `json:"layer_counts"` // keyed by layer name, e.g. "R", "Rw", "M"
	Clockwise        int            `json:"clockwise"`
	CounterClockwise int            `json:"counter_clockwise"`
	LayerPairs       map[string]int `json:"layer_pairs"` // e.g. "RU" -> count
}

// layerName strips the direction suffix from a move's notation.
func layerName(m cubestate.Move) (name string, prime bool) {
	n := m.Notation()
	if strings.HasSuffix(n, "'") {
		return strings.TrimSuffix(n, "'"), true
	}
	return n, false
}

// AnalyzeProfile analyzes which layers and directions are most used.
func AnalyzeProfile(moves []TimedMove) *Profile {
	p := &Profile{
		LayerCounts: make(map[string]int),
		LayerPairs:  make(map[string]int),
	}

	prev := ""
	for i, tm := range moves {
		name, prime := layerName(tm.Move)
		p.LayerCounts[name]++
		if prime {
			p.CounterClockwise++
		} else {
			p.Clockwise++
		}
		if i > 0 {
			p.LayerPairs[prev+name]++
		}
		prev = name
	}

	return p
}

// MostUsedLayers returns layer names ordered by count, ties by name.
func (p *Profile) MostUsedLayers() []string {
	names := make([]string, 0, len(p.LayerCounts))
	for n := range p.LayerCounts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := p.LayerCounts[names[i]], p.LayerCounts[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}
