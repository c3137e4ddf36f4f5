package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/recorder"
	"github.com/SeamusWaldron/cubestate/internal/render"
	"github.com/SeamusWaldron/cubestate/internal/scramble"
	"github.com/SeamusWaldron/cubestate/internal/solver"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive cube in the terminal",
	Long: `Start an interactive TUI with a virtual cube.

Keyboard shortcuts:
  u d l r f b   - Turn an outer layer clockwise
  m e s         - Turn a middle slice
  Shift+key     - Turn counter-clockwise
  Alt+key       - Wide turn (outer layer and adjacent slice)
  ctrl+s        - Scramble
  ?             - Ask the solving service and play the solution
  ctrl+z        - Undo
  ctrl+r        - Reset to solved
  q/Esc         - Quit

Each turn is shown for a moment; keys pressed during a turn are rejected.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type transitionMsg cubestate.Transition
type turnDoneMsg struct{ seq uint64 }
type sequenceDoneMsg struct {
	what    string
	applied int
	err     error
}
type solutionMsg struct {
	moves []cubestate.Move
	err   error
}

// Model
type playModel struct {
	cube   *cubestate.Session
	rec    *recorder.Recorder
	solver solver.Solver

	events chan cubestate.Transition
	done   chan struct{}

	turn          time.Duration
	scrambleLen   int
	scrambleDelay time.Duration
	solveTimeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	// State
	pending   uint64 // seq of the turn awaiting Done
	busy      string // running sequence: "scrambling" or "solving"
	last      []string
	lastWords string
	status    string
	err       error

	quitting bool
}

func newPlayModel(cube *cubestate.Session, rec *recorder.Recorder, s solver.Solver) *playModel {
	ctx, cancel := context.WithCancel(context.Background())
	m := &playModel{
		cube:          cube,
		rec:           rec,
		solver:        s,
		events:        make(chan cubestate.Transition, 64),
		done:          make(chan struct{}),
		turn:          cfg.Play.TurnDuration,
		scrambleLen:   cfg.Scramble.Length,
		scrambleDelay: cfg.Scramble.Delay,
		solveTimeout:  cfg.Solver.Timeout,
		ctx:           ctx,
		cancel:        cancel,
	}
	cube.OnTransition(func(t cubestate.Transition) {
		select {
		case m.events <- t:
		case <-m.done:
		}
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	return m.listenForTransitions()
}

func (m *playModel) listenForTransitions() tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-m.events:
			return transitionMsg(t)
		case <-m.done:
			return nil
		}
	}
}

func (m *playModel) turnDone(seq uint64) tea.Cmd {
	return tea.Tick(m.turn, func(time.Time) tea.Msg {
		return turnDoneMsg{seq: seq}
	})
}

// moveForKey maps a key press to a move: the letter names the layer,
// shift inverts it and alt makes it wide.
func moveForKey(k tea.KeyMsg) (cubestate.Move, bool, error) {
	if k.Type != tea.KeyRunes || len(k.Runes) != 1 {
		return cubestate.Move{}, false, nil
	}
	r := k.Runes[0]
	letter := unicode.ToUpper(r)
	if !strings.ContainsRune("UDLRFBMES", letter) {
		return cubestate.Move{}, false, nil
	}

	notation := string(letter)
	if k.Alt {
		notation += "w"
	}
	if unicode.IsUpper(r) {
		notation += "'"
	}
	moves, err := cubestate.ParseMove(notation)
	if err != nil {
		return cubestate.Move{}, true, err
	}
	return moves[0], true, nil
}

// runSequence plays moves one turn at a time.
func (m *playModel) runSequence(what string, moves []cubestate.Move) tea.Cmd {
	m.busy = what
	ctx, delay := m.ctx, m.scrambleDelay
	return func() tea.Msg {
		n, err := scramble.Run(ctx, m.cube, moves, delay)
		return sequenceDoneMsg{what: what, applied: n, err: err}
	}
}

func (m *playModel) startScramble() tea.Cmd {
	moves := scramble.NewGenerator(0).Generate(m.scrambleLen)
	if m.rec != nil {
		if err := m.rec.SetScramble(moves); err != nil {
			logger.Warn("failed to journal scramble", "err", err)
		}
	}
	m.status = "Scramble: " + cubestate.FormatMoves(moves)
	return m.runSequence("scrambling", moves)
}

func (m *playModel) requestSolution() tea.Cmd {
	m.busy = "solving"
	m.status = "Asking solver..."
	state := m.cube.State()
	ctx, timeout := m.ctx, m.solveTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		moves, err := solver.SolveState(ctx, m.solver, state)
		if m.rec != nil {
			facelets, _ := cubestate.Project(state)
			if rerr := m.rec.RecordSolverRun(facelets, moves, err); rerr != nil {
				logger.Warn("failed to journal solver run", "err", rerr)
			}
		}
		return solutionMsg{moves: moves, err: err}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.cancel()
			close(m.done)
			return m, tea.Quit

		case "ctrl+s":
			if m.busy != "" {
				return m, nil
			}
			return m, m.startScramble()

		case "?":
			if m.busy != "" {
				return m, nil
			}
			return m, m.requestSolution()

		case "ctrl+z":
			if m.busy != "" {
				return m, nil
			}
			if _, err := m.cube.Undo(); err != nil {
				m.err = err
			}
			return m, nil

		case "ctrl+r":
			if m.busy != "" {
				return m, nil
			}
			m.cube.Reset()
			return m, nil
		}

		mv, ok, err := moveForKey(msg)
		if !ok || m.busy != "" {
			return m, nil
		}
		if err == nil {
			_, err = m.cube.Begin(mv)
		}
		if err != nil {
			m.err = err
		}
		return m, nil

	case transitionMsg:
		t := cubestate.Transition(msg)
		switch {
		case t.Reset:
			m.pending = 0
			m.last = nil
			m.lastWords = ""
			m.status = "Reset"
		case t.Undo:
			m.last = append(m.last, "("+t.Move.Notation()+")")
			m.lastWords = "undo: " + notation.Describe(t.Move)
		default:
			m.last = append(m.last, t.Move.Notation())
			m.lastWords = notation.Describe(t.Move)
		}
		cmds := []tea.Cmd{m.listenForTransitions()}
		if t.InFlight {
			m.pending = t.Seq
			cmds = append(cmds, m.turnDone(t.Seq))
		}
		return m, tea.Batch(cmds...)

	case turnDoneMsg:
		if msg.seq == m.pending {
			m.pending = 0
			m.cube.Done()
		}
		return m, nil

	case solutionMsg:
		if msg.err != nil {
			m.busy = ""
			m.status = ""
			m.err = msg.err
			return m, nil
		}
		if len(msg.moves) == 0 {
			m.busy = ""
			m.status = "Already solved"
			return m, nil
		}
		m.status = "Solution: " + cubestate.FormatMoves(msg.moves)
		return m, m.runSequence("solving", msg.moves)

	case sequenceDoneMsg:
		m.busy = ""
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil
	}

	return m, nil
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubestate"))
	b.WriteString("\n\n")

	state := m.cube.State()
	if net, err := render.State(state); err == nil {
		b.WriteString(net)
	} else {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if cubestate.IsSolved(state) {
		b.WriteString(phaseStyle.Render("SOLVED"))
	} else {
		b.WriteString(statusStyle.Render("scrambled"))
	}
	if m.busy != "" {
		b.WriteString("  ")
		b.WriteString(phaseStyle.Render(strings.ToUpper(m.busy)))
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Moves: %d\n", len(m.last)))
	if len(m.last) > 0 {
		start := 0
		if len(m.last) > 20 {
			start = len(m.last) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(strings.Join(m.last[start:], " ")))
		b.WriteString("\n")
	}
	if m.lastWords != "" {
		b.WriteString(statusStyle.Render(m.lastWords))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("udlrfbmes: turn  shift: inverse  alt: wide  ctrl+s: scramble  ?: solve  ctrl+z: undo  ctrl+r: reset  q: quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cube := cubestate.NewSession(cubestate.WithLogger(logger))

	db, err := openJournal()
	if err != nil {
		return err
	}
	var rec *recorder.Recorder
	if db != nil {
		defer db.Close()
		rec = recorder.New(db, logger)
		rec.Attach(cube)
		if _, err := rec.Start("play", version); err != nil {
			return err
		}
	}

	model := newPlayModel(cube, rec, newSolver())
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if rec != nil {
		if err := rec.End(cube.State()); err != nil {
			return err
		}
		fmt.Printf("Session saved: %s\n", rec.SessionID())
	}
	return nil
}
