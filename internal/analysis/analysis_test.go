package analysis

import (
	"testing"

	"github.com/SeamusWaldron/cubestate"
)

func timed(t *testing.T, notation string, stepMs int64) []TimedMove {
	t.Helper()
	moves, err := cubestate.ParseMoves(notation)
	if err != nil {
		t.Fatalf("ParseMoves(%q): %v", notation, err)
	}
	out := make([]TimedMove, len(moves))
	for i, m := range moves {
		out[i] = TimedMove{Move: m, TsMs: int64(i) * stepMs}
	}
	return out
}

func TestMineNGrams(t *testing.T) {
	moves := timed(t, "R U R' U' F R U R' U' B R U R' U'", 100)

	report := MineNGrams(moves, 2, 4, 3)
	top4 := report.TopNGrams[4]
	if len(top4) == 0 {
		t.Fatal("no 4-grams found")
	}
	if top4[0].Count != 3 {
		t.Errorf("top 4-gram count = %d, want 3", top4[0].Count)
	}
	want := []string{"R", "U", "R'", "U'"}
	for i, w := range want {
		if top4[0].Sequence[i] != w {
			t.Fatalf("top 4-gram = %v, want %v", top4[0].Sequence, want)
		}
	}
	if len(top4[0].Occurrences) != 3 || top4[0].Occurrences[1].StartIndex != 5 {
		t.Errorf("occurrences = %+v", top4[0].Occurrences)
	}
	if top4[0].Occurrences[2].TsMs != 1000 {
		t.Errorf("third occurrence ts = %d, want 1000", top4[0].Occurrences[2].TsMs)
	}

	for _, ng := range report.TopNGrams[2] {
		if ng.Count < 2 {
			t.Errorf("n-gram %v reported with count %d", ng.Sequence, ng.Count)
		}
	}
}

func TestMineNGramsShortInput(t *testing.T) {
	report := MineNGrams(timed(t, "R U", 10), 4, 6, 5)
	if len(report.TopNGrams) != 0 {
		t.Errorf("expected empty report, got %v", report.TopNGrams)
	}
}

func TestMineNGramsDistinguishesWideAndSlice(t *testing.T) {
	// Same letters, different layers: must not be merged.
	moves := timed(t, "R Rw R Rw M r", 10)
	report := MineNGrams(moves, 2, 2, 5)
	for _, ng := range report.TopNGrams[2] {
		if ng.Sequence[0] == "R" && ng.Sequence[1] == "Rw" && ng.Count != 2 {
			t.Errorf("R Rw count = %d, want 2", ng.Count)
		}
	}
}

func TestMineNGramsAcrossSessions(t *testing.T) {
	a := MineNGrams(timed(t, "R U R' U' R U R' U'", 10), 4, 4, 5)
	b := MineNGrams(timed(t, "R U R' U' F R U R' U'", 10), 4, 4, 5)

	merged := MineNGramsAcrossSessions(map[string]*NGramReport{"a": a, "b": b}, 5)
	top := merged.TopNGrams[4]
	if len(top) == 0 || top[0].Count != 4 {
		t.Fatalf("merged top = %+v", top)
	}
	if top[0].Occurrences[0].SessionID != "a" {
		t.Errorf("first occurrence session = %q, want a", top[0].Occurrences[0].SessionID)
	}
}

func TestSummarize(t *testing.T) {
	moves := []TimedMove{
		{cubestate.R, 0},
		{cubestate.U, 500},
		{cubestate.RPrime, 2500},
		{cubestate.UPrime, 3000},
	}

	s := Summarize("id", moves, 1, 4000, 4)
	if s.TotalMoves != 4 || s.UndoCount != 1 || s.SimplifiedMoves != 4 {
		t.Errorf("counts = %+v", s)
	}
	if s.TPSOverall != 1.0 {
		t.Errorf("TPS = %v, want 1", s.TPSOverall)
	}
	if s.LongestPauseMs != 2000 {
		t.Errorf("longest pause = %d, want 2000", s.LongestPauseMs)
	}
	if s.PauseCountOver1500 != 1 {
		t.Errorf("pauses over 1500 = %d, want 1", s.PauseCountOver1500)
	}
	if s.AvgMoveDurationMs != 1000 {
		t.Errorf("avg move duration = %v, want 1000", s.AvgMoveDurationMs)
	}

	if s.Profile.Clockwise != 2 || s.Profile.CounterClockwise != 2 {
		t.Errorf("profile directions = %d/%d", s.Profile.Clockwise, s.Profile.CounterClockwise)
	}
	if s.Profile.LayerCounts["R"] != 2 || s.Profile.LayerPairs["RU"] != 2 {
		t.Errorf("profile = %+v", s.Profile)
	}
	if got := s.Profile.MostUsedLayers(); len(got) != 2 || got[0] != "R" {
		t.Errorf("MostUsedLayers() = %v", got)
	}

	pauses := AnalyzePauses(moves, 500)
	if len(pauses) != 3 || pauses[1].AfterMoveIndex != 1 || pauses[1].DurationMs != 2000 {
		t.Errorf("pauses = %+v", pauses)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("id", nil, 0, 0, 0)
	if s.TPSOverall != 0 || s.LongestPauseMs != 0 || s.AvgMoveDurationMs != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestFindTools(t *testing.T) {
	moves := timed(t, "F R U R' U R U2 R' R U R' U' B R U R' U' R' F R2 U' R' U' R U R' F'", 100)

	report := FindTools(moves, AllTools)
	if report.Counts["Sune"] != 1 {
		t.Errorf("Sune count = %d, want 1", report.Counts["Sune"])
	}
	if report.Counts["Sexy"] != 1 {
		t.Errorf("Sexy count = %d, want 1", report.Counts["Sexy"])
	}
	if report.Counts["T-Perm"] != 1 {
		t.Errorf("T-Perm count = %d, want 1", report.Counts["T-Perm"])
	}
	if report.UnmatchedMoves != 2 {
		t.Errorf("unmatched = %d, want 2 (F and B)", report.UnmatchedMoves)
	}
	if report.ConsecutiveRepeats != 1 {
		t.Errorf("consecutive repeats = %d, want 1", report.ConsecutiveRepeats)
	}
	if len(report.Matches) != 3 || report.Matches[0].StartIndex != 1 || report.Matches[0].EndIndex != 8 {
		t.Errorf("matches = %+v", report.Matches)
	}
}

func TestToolsAreValidSequences(t *testing.T) {
	for _, tool := range AllTools {
		s, err := cubestate.ApplyAll(cubestate.NewState(), tool.Sequence...)
		if err != nil {
			t.Errorf("%s: %v", tool.Name, err)
		}
		if s.IsSolved() {
			t.Errorf("%s leaves the cube solved", tool.Name)
		}
	}
}
