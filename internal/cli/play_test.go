package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/config"
)

type stubSolver struct {
	solution string
	err      error
}

func (s stubSolver) Solve(context.Context, string) (string, error) {
	return s.solution, s.err
}

func newTestModel(t *testing.T, s stubSolver) (*playModel, *cubestate.Session) {
	t.Helper()
	cfg = config.Default()
	logger = log.New(io.Discard)
	cube := cubestate.NewSession()
	m := newPlayModel(cube, nil, s)
	t.Cleanup(m.cancel)
	return m, cube
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMoveForKey(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want cubestate.Move
	}{
		{runes("u"), cubestate.U},
		{runes("U"), cubestate.UPrime},
		{runes("r"), cubestate.R},
		{runes("R"), cubestate.RPrime},
		{runes("m"), cubestate.M},
		{runes("S"), cubestate.SPrime},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r"), Alt: true}, cubestate.Rw},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("F"), Alt: true}, cubestate.Fw.Inverse()},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok, err := moveForKey(tt.key)
			if !ok || err != nil {
				t.Fatalf("moveForKey() ok=%v err=%v", ok, err)
			}
			if got != tt.want {
				t.Errorf("moveForKey() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, ok, _ := moveForKey(runes("x")); ok {
		t.Error("x should not map to a move")
	}
	if _, ok, _ := moveForKey(tea.KeyMsg{Type: tea.KeyEnter}); ok {
		t.Error("enter should not map to a move")
	}
	_, ok, err := moveForKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m"), Alt: true})
	if !ok || !errors.Is(err, cubestate.ErrInvalidNotation) {
		t.Errorf("alt+m = ok %v, err %v; want rejected", ok, err)
	}
}

func TestPlayTurnHeldUntilDone(t *testing.T) {
	m, cube := newTestModel(t, stubSolver{})

	m.Update(runes("r"))
	if !cube.Busy() {
		t.Fatal("turn should be in flight after key press")
	}

	// A second key during the turn is rejected.
	m.Update(runes("u"))
	if !errors.Is(m.err, cubestate.ErrMoveInFlight) {
		t.Errorf("err = %v, want ErrMoveInFlight", m.err)
	}

	tr := <-m.events
	m.Update(transitionMsg(tr))
	if m.pending != tr.Seq {
		t.Fatalf("pending = %d, want %d", m.pending, tr.Seq)
	}

	// A stale tick does nothing.
	m.Update(turnDoneMsg{seq: tr.Seq + 1})
	if !cube.Busy() {
		t.Error("stale tick ended the turn")
	}

	m.Update(turnDoneMsg{seq: tr.Seq})
	if cube.Busy() {
		t.Error("turn still in flight after its tick")
	}
	if got := strings.Join(m.last, " "); got != "R" {
		t.Errorf("last moves = %q, want R", got)
	}
}

func TestPlayIgnoresMoveKeysDuringSequence(t *testing.T) {
	m, cube := newTestModel(t, stubSolver{})
	m.busy = "scrambling"

	m.Update(runes("r"))
	if cube.Busy() || len(cube.Moves()) != 0 {
		t.Errorf("move key applied during a sequence: busy=%v moves=%v", cube.Busy(), cube.Moves())
	}
	if m.err != nil {
		t.Errorf("err = %v, want nil", m.err)
	}
}

func TestPlayUndoAndReset(t *testing.T) {
	m, cube := newTestModel(t, stubSolver{})

	cube.Apply(cubestate.F)
	m.Update(transitionMsg(<-m.events))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	m.Update(transitionMsg(<-m.events))
	if !cube.IsSolved() {
		t.Error("cube not solved after undo")
	}
	if got := strings.Join(m.last, " "); got != "F (F')" {
		t.Errorf("last moves = %q", got)
	}

	cube.Apply(cubestate.B)
	m.Update(transitionMsg(<-m.events))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m.Update(transitionMsg(<-m.events))
	if !cube.IsSolved() || len(m.last) != 0 {
		t.Errorf("after reset solved=%v last=%v", cube.IsSolved(), m.last)
	}
	if !strings.Contains(m.View(), "SOLVED") {
		t.Error("view does not report solved cube")
	}
}

func TestPlaySolutionErrors(t *testing.T) {
	m, _ := newTestModel(t, stubSolver{})

	m.Update(solutionMsg{err: errors.New("boom")})
	if m.err == nil || m.busy != "" {
		t.Errorf("solver error not surfaced: err=%v busy=%q", m.err, m.busy)
	}

	m.Update(solutionMsg{})
	if m.status != "Already solved" || m.busy != "" {
		t.Errorf("empty solution: status=%q busy=%q", m.status, m.busy)
	}
}

func TestPlayRequestSolution(t *testing.T) {
	m, cube := newTestModel(t, stubSolver{solution: "R'"})
	cube.Apply(cubestate.R)
	<-m.events

	cmd := m.requestSolution()
	msg, ok := cmd().(solutionMsg)
	if !ok {
		t.Fatal("requestSolution did not produce a solutionMsg")
	}
	if msg.err != nil || cubestate.FormatMoves(msg.moves) != "R'" {
		t.Errorf("solution = %v, %v", msg.moves, msg.err)
	}
}
