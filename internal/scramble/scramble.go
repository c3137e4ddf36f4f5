// Package scramble generates random scrambles and feeds them to a session
// at presentation pace.
package scramble

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/SeamusWaldron/cubestate"
)

// DefaultLength is the number of quarter turns in a scramble.
const DefaultLength = 25

// Generator produces scrambles of outer-layer quarter turns. The same
// face is never turned twice in a row.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. A zero seed uses the current time.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate returns n moves.
func (g *Generator) Generate(n int) []cubestate.Move {
	moves := make([]cubestate.Move, 0, n)
	last := -1
	for len(moves) < n {
		i := g.rng.Intn(len(cubestate.OuterMoves))
		if i == last {
			continue
		}
		last = i
		m := cubestate.OuterMoves[i]
		if g.rng.Intn(2) == 0 {
			m = m.Inverse()
		}
		moves = append(moves, m)
	}
	return moves
}

// Submitter is the part of a session the driver needs.
type Submitter interface {
	Begin(m cubestate.Move) (cubestate.Transition, error)
	WaitIdle(ctx context.Context) error
}

// Run submits moves one at a time, waiting for the presentation of the
// previous turn to finish and then delay before the next. It returns the
// number of moves applied.
//
// Run only starts turns; whoever presents them calls Done. Moves rejected
// with ErrMoveInFlight are retried once the session is idle.
func Run(ctx context.Context, s Submitter, moves []cubestate.Move, delay time.Duration) (int, error) {
	applied := 0
	for _, m := range moves {
		for {
			if err := s.WaitIdle(ctx); err != nil {
				return applied, err
			}
			_, err := s.Begin(m)
			if err == nil {
				break
			}
			if !errors.Is(err, cubestate.ErrMoveInFlight) {
				return applied, fmt.Errorf("scramble move %d (%v): %w", applied, m, err)
			}
		}
		applied++

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return applied, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return applied, nil
}
