package cubestate

import (
	"context"
	"sync"
)

// Transition is published to subscribers after every state change.
// Prev and Next are independent snapshots; presentation code may hold
// on to them while it animates. InFlight is set for moves started with
// Begin; the session accepts nothing else until Done is called.
type Transition struct {
	Seq      uint64
	Move     Move
	Prev     State
	Next     State
	Undo     bool
	Reset    bool
	InFlight bool
}

// Session owns one cube state and serializes every change to it.
//
// Moves are applied in submission order. A move started with Begin stays
// in flight until Done is called; until then further moves are rejected
// with ErrMoveInFlight, so a presentation layer can finish showing one
// turn before the next is accepted.
type Session struct {
	cfg *config

	mu       sync.Mutex
	state    State
	history  []Move
	seq      uint64
	inFlight bool
	idle     chan struct{}
	subs     []func(Transition)

	// notifyMu keeps subscriber callbacks in submission order without
	// holding mu while they run.
	notifyMu sync.Mutex
}

// NewSession creates a session starting from the solved state.
func NewSession(opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Session{
		cfg:   cfg,
		state: NewState(),
	}
}

// OnTransition registers a callback for every state change. Callbacks run
// synchronously on the goroutine that changed the state and must not call
// Apply, Begin or Undo themselves.
func (s *Session) OnTransition(cb func(Transition)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, cb)
}

// Apply applies m and returns the new state. An invalid move leaves the
// session untouched.
func (s *Session) Apply(m Move) (State, error) {
	t, err := s.apply(fixed(m), false, false)
	if err != nil {
		return s.State(), err
	}
	return t.Next, nil
}

// Begin applies m and marks it in flight until Done is called.
func (s *Session) Begin(m Move) (Transition, error) {
	return s.apply(fixed(m), true, false)
}

// Done ends the move started by Begin. It is a no-op when nothing is in
// flight.
func (s *Session) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight {
		return
	}
	s.inFlight = false
	close(s.idle)
	s.idle = nil
}

// Busy reports whether a move is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// WaitIdle blocks until no move is in flight or ctx is done.
func (s *Session) WaitIdle(ctx context.Context) error {
	s.mu.Lock()
	if !s.inFlight {
		s.mu.Unlock()
		return nil
	}
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Undo reverts the most recent move in the history.
func (s *Session) Undo() (State, error) {
	t, err := s.apply(func(history []Move) (Move, error) {
		if len(history) == 0 {
			return Move{}, ErrNothingToUndo
		}
		return history[len(history)-1].Inverse(), nil
	}, false, true)
	if err != nil {
		return s.State(), err
	}
	return t.Next, nil
}

func fixed(m Move) func([]Move) (Move, error) {
	return func([]Move) (Move, error) { return m, nil }
}

// apply picks the move under the lock so Undo cannot race a concurrent
// Apply for the last history entry.
func (s *Session) apply(pick func(history []Move) (Move, error), hold, undo bool) (Transition, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return Transition{}, ErrMoveInFlight
	}
	m, err := pick(s.history)
	if err != nil {
		s.mu.Unlock()
		return Transition{}, err
	}
	next, err := Apply(s.state, m)
	if err != nil {
		s.mu.Unlock()
		s.cfg.logger.Debug("move rejected", "move", m, "error", err)
		return Transition{}, err
	}

	s.seq++
	t := Transition{Seq: s.seq, Move: m, Prev: s.state, Next: next, Undo: undo, InFlight: hold}
	s.state = next
	if s.cfg.history {
		if undo {
			s.history = s.history[:len(s.history)-1]
		} else {
			s.history = append(s.history, m)
		}
	}
	if hold {
		s.inFlight = true
		s.idle = make(chan struct{})
	}
	subs := make([]func(Transition), len(s.subs))
	copy(subs, s.subs)

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.cfg.logger.Debug("move applied", "seq", t.Seq, "move", m.Notation(), "undo", undo)
	for _, cb := range subs {
		cb(t)
	}
	return t, nil
}

// Reset returns the session to the solved state and clears history.
// A pending in-flight move is abandoned.
func (s *Session) Reset() {
	s.mu.Lock()
	prev := s.state
	s.state = NewState()
	s.history = nil
	if s.inFlight {
		s.inFlight = false
		close(s.idle)
		s.idle = nil
	}
	s.seq++
	t := Transition{Seq: s.seq, Prev: prev, Next: s.state, Reset: true}
	subs := make([]func(Transition), len(s.subs))
	copy(subs, s.subs)

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.cfg.logger.Debug("session reset", "seq", t.Seq)
	for _, cb := range subs {
		cb(t)
	}
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current state together with the sequence number
// of the transition that produced it. Zero means no transition yet.
func (s *Session) Snapshot() (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.seq
}

// Moves returns the applied moves still in history, oldest first.
func (s *Session) Moves() []Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Move, len(s.history))
	copy(out, s.history)
	return out
}

// IsSolved reports whether the current state is solved.
func (s *Session) IsSolved() bool {
	return IsSolved(s.State())
}

// Facelets returns the facelet string of the current state.
func (s *Session) Facelets() (string, error) {
	return Project(s.State())
}
