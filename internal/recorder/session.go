// Package recorder journals cube sessions to storage.
package recorder

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

// ErrNotRecording is returned when an operation needs an active recording.
var ErrNotRecording = errors.New("recorder: no session in progress")

// ErrAlreadyRecording is returned by Start while a recording is active.
var ErrAlreadyRecording = errors.New("recorder: session already in progress")

// State represents the current state of a recorder.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the recorder state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Recorder writes every transition of a cube session to the journal.
type Recorder struct {
	logger *log.Logger

	mu        sync.Mutex
	state     State
	sessionID string
	startTime time.Time
	moveIndex int
	err       error

	sessionRepo *storage.SessionRepository
	moveRepo    *storage.MoveRepository
	solverRepo  *storage.SolverRunRepository
}

// New creates a recorder writing to db. A nil logger discards output.
func New(db *storage.DB, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		logger:      logger,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		moveRepo:    storage.NewMoveRepository(db),
		solverRepo:  storage.NewSolverRunRepository(db),
	}
}

// Attach subscribes the recorder to cube's transitions.
func (r *Recorder) Attach(cube *cubestate.Session) {
	cube.OnTransition(r.HandleTransition)
}

// State returns the current recorder state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SessionID returns the ID of the current or last recording.
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

// MoveCount returns the number of journaled moves, undos included.
func (r *Recorder) MoveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveIndex
}

// Err returns the first journal write error, if any. Transitions keep
// flowing to the cube even when the journal fails.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Start begins a new recording.
func (r *Recorder) Start(notes, appVersion string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording {
		return "", ErrAlreadyRecording
	}

	id, err := r.sessionRepo.Create(notes, "", appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	r.sessionID = id
	r.startTime = time.Now()
	r.moveIndex = 0
	r.err = nil
	r.state = StateRecording
	r.logger.Info("recording started", "session", id)

	return id, nil
}

// SetScramble records the scramble used for the current recording.
func (r *Recorder) SetScramble(moves []cubestate.Move) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNotRecording
	}
	return r.sessionRepo.SetScramble(r.sessionID, cubestate.FormatMoves(moves))
}

// HandleTransition journals one transition. Resets are not journaled as
// moves; the final facelets recorded by End cover them.
func (r *Recorder) HandleTransition(t cubestate.Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return
	}
	if t.Reset {
		r.logger.Debug("reset not journaled", "session", r.sessionID, "seq", t.Seq)
		return
	}

	tsMs := time.Since(r.startTime).Milliseconds()
	if _, err := r.moveRepo.Create(r.sessionID, r.moveIndex, tsMs, t.Move, t.Undo); err != nil {
		r.logger.Error("failed to journal move", "session", r.sessionID, "move", t.Move, "err", err)
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.moveIndex++
}

// RecordSequence journals moves applied in one step outside a session,
// such as a whole sequence given on the command line. The moves follow
// whatever the session already holds.
func (r *Recorder) RecordSequence(moves []cubestate.Move) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNotRecording
	}

	next, err := r.moveRepo.GetNextIndex(r.sessionID)
	if err != nil {
		return err
	}
	tsMs := time.Since(r.startTime).Milliseconds()
	if err := r.moveRepo.CreateBatch(r.sessionID, moves, next, tsMs); err != nil {
		return fmt.Errorf("failed to journal sequence: %w", err)
	}
	r.moveIndex = next + len(moves)
	return nil
}

// RecordSolverRun journals a request to the solving service.
func (r *Recorder) RecordSolverRun(facelets string, solution []cubestate.Move, solveErr error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNotRecording
	}

	var errMsg string
	if solveErr != nil {
		errMsg = solveErr.Error()
	}
	tsMs := time.Since(r.startTime).Milliseconds()
	_, err := r.solverRepo.Create(r.sessionID, tsMs, facelets, cubestate.FormatMoves(solution), errMsg)
	return err
}

// End finishes the recording with the cube's final state.
func (r *Recorder) End(final cubestate.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return ErrNotRecording
	}

	facelets, err := cubestate.Project(final)
	if err != nil {
		return fmt.Errorf("failed to project final state: %w", err)
	}
	if err := r.sessionRepo.End(r.sessionID, facelets, cubestate.IsSolved(final)); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	r.state = StateEnded
	r.logger.Info("recording ended", "session", r.sessionID, "moves", r.moveIndex)
	return nil
}
