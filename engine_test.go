package cubestate

import (
	"errors"
	"math/rand"
	"testing"
)

const solvedFacelets = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

// allMoves enumerates every well-formed descriptor.
func allMoves() []Move {
	var moves []Move
	for _, axis := range []Axis{X, Y, Z} {
		for layer := -1; layer <= 1; layer++ {
			for _, dir := range []int{1, -1} {
				moves = append(moves, Move{Axis: axis, Layer: layer, Direction: dir})
				if layer != 0 {
					moves = append(moves, Move{Axis: axis, Layer: layer, Direction: dir, Wide: true})
				}
			}
		}
	}
	return moves
}

func mustApply(t *testing.T, s State, moves ...Move) State {
	t.Helper()
	next, err := ApplyAll(s, moves...)
	if err != nil {
		t.Fatalf("ApplyAll(%v) failed: %v", FormatMoves(moves), err)
	}
	return next
}

func TestNewStateIsSolved(t *testing.T) {
	s := NewState()
	if !s.IsSolved() {
		t.Error("New state should be solved")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("New state invalid: %v", err)
	}
	for _, c := range s.Cubelets() {
		if c.ID != c.Position {
			t.Errorf("cubelet %v starts at %v", c.ID, c.Position)
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	for _, m := range allMoves() {
		s := mustApply(t, NewState(), m)
		if s.IsSolved() {
			t.Errorf("State should not be solved after %+v", m)
		}
	}
}

func TestFourQuarterTurnsReturnToStart(t *testing.T) {
	start := mustApply(t, NewState(), TPerm...)
	for _, m := range allMoves() {
		s := mustApply(t, start, m, m, m, m)
		if s != start {
			t.Errorf("%+v x 4 should return to start", m)
		}
	}
}

func TestMoveThenInverseIsIdentity(t *testing.T) {
	start := mustApply(t, NewState(), SexyMove...)
	for _, m := range allMoves() {
		s := mustApply(t, start, m, m.Inverse())
		if s != start {
			t.Errorf("%+v then inverse should return to start", m)
		}
	}
}

func TestSixFacesThenInversesReturnToSolved(t *testing.T) {
	s := mustApply(t, NewState(), OuterMoves...)
	if s.IsSolved() {
		t.Fatal("U R F D L B should not be solved")
	}
	s = mustApply(t, s, Invert(OuterMoves)...)
	if s != NewState() {
		t.Errorf("Inverse sequence should restore solved state, got %v", s)
	}
	if !s.IsSolved() {
		t.Error("IsSolved should be true after undoing all moves")
	}
}

func TestSexyMove6TimesReturnsToSolved(t *testing.T) {
	s := NewState()
	for i := 0; i < 6; i++ {
		s = mustApply(t, s, SexyMove...)
	}
	if !s.IsSolved() {
		t.Errorf("Sexy move x 6 should return to solved, got %v", s)
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	moves := allMoves()
	s := NewState()
	for i := 0; i < 500; i++ {
		m := moves[rng.Intn(len(moves))]
		var err error
		s, err = s.Apply(m)
		if err != nil {
			t.Fatalf("Apply(%+v): %v", m, err)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("after %d moves: %v", i+1, err)
		}
		if _, err := Project(s); err != nil {
			t.Fatalf("Project after %d moves: %v", i+1, err)
		}
	}
}

func TestOutOfRangeLayerRejected(t *testing.T) {
	start := mustApply(t, NewState(), R, U)
	bad := []Move{
		{Axis: Y, Layer: 2, Direction: 1},
		{Axis: Y, Layer: -2, Direction: 1},
		{Axis: Axis(3), Layer: 1, Direction: 1},
		{Axis: X, Layer: 1, Direction: 0},
		{Axis: X, Layer: 1, Direction: 2},
		{Axis: Z, Layer: 0, Direction: 1, Wide: true},
	}
	for _, m := range bad {
		s, err := Apply(start, m)
		if !errors.Is(err, ErrInvalidMove) {
			t.Errorf("Apply(%+v) error = %v, want ErrInvalidMove", m, err)
		}
		if s != start {
			t.Errorf("Apply(%+v) changed the state", m)
		}
	}
}

func TestApplyAllStopsAtFirstError(t *testing.T) {
	want := mustApply(t, NewState(), R)
	got, err := ApplyAll(NewState(), R, Move{Axis: X, Layer: 5, Direction: 1}, U)
	if !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("error = %v, want ErrInvalidMove", err)
	}
	if got != want {
		t.Errorf("ApplyAll should return state before the bad move")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	before := NewState()
	cubelets := before.Cubelets()
	after := mustApply(t, before, R)

	if !before.IsSolved() {
		t.Error("Applying a move modified the previous snapshot")
	}
	cubelets[0].Position = V(1, 1, 1)
	if !before.IsSolved() {
		t.Error("Mutating Cubelets() result modified the snapshot")
	}
	if after == before {
		t.Error("States before and after R should differ")
	}
}

func TestTwistedAtHomeIsNotSolved(t *testing.T) {
	// After U the U center is still in its cell but rotated.
	s := mustApply(t, NewState(), U)
	c, ok := s.Cubelet(V(0, 1, 0))
	if !ok {
		t.Fatal("missing U center")
	}
	if c.Position != c.ID {
		t.Fatalf("U center moved to %v", c.Position)
	}
	if c.Orientation.IsIdentity() {
		t.Fatal("U center should be twisted")
	}
	if s.IsSolved() {
		t.Error("State with a twisted cubelet must not be solved")
	}
}

func TestSliceMoveTurnsCore(t *testing.T) {
	s := mustApply(t, NewState(), M)
	core, _ := s.Cubelet(V(0, 0, 0))
	if core.Position != V(0, 0, 0) || core.Orientation.IsIdentity() {
		t.Errorf("core after M = %+v", core)
	}
	s = mustApply(t, s, M, M, M)
	if !s.IsSolved() {
		t.Error("M x 4 should return to solved")
	}
}

func TestWideMoveEqualsOuterPlusSlice(t *testing.T) {
	cases := []struct {
		wide  Move
		parts []Move
	}{
		{Rw, []Move{R, MPrime}},
		{Lw, []Move{L, M}},
		{Uw, []Move{U, EPrime}},
		{Dw, []Move{D, E}},
		{Fw, []Move{F, S}},
		{Bw, []Move{B, SPrime}},
	}
	for _, tc := range cases {
		got := mustApply(t, NewState(), tc.wide)
		want := mustApply(t, NewState(), tc.parts...)
		if got != want {
			t.Errorf("%v != %v", tc.wide, FormatMoves(tc.parts))
		}
	}
}

func TestSelectionRule(t *testing.T) {
	m := Move{Axis: X, Layer: 1, Direction: 1}
	if !m.Selects(V(1, -1, 0)) || m.Selects(V(0, 1, 1)) {
		t.Error("plain move selection wrong")
	}
	m.Wide = true
	if !m.Selects(V(0, 1, 1)) || m.Selects(V(-1, 0, 0)) {
		t.Error("wide move selection wrong")
	}
}
