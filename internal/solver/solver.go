// Package solver talks to the external two-phase solving service.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubestate"
)

// Sentinel errors for solver failures. Neither ever affects cube state.
var (
	ErrSolverUnavailable = errors.New("solver: service unavailable")
	ErrSolverRejected    = errors.New("solver: request rejected")
)

// Solver turns a facelet string into a move sequence in notation.
type Solver interface {
	Solve(ctx context.Context, facelets string) (string, error)
}

// HTTPClient calls a solving service over HTTP:
//
//	POST {BaseURL}/api/solve {"faceletString": "..."}
//	200 {"solution": "R U R' ..."}
//	4xx/5xx {"error": "..."}
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

type solveRequest struct {
	FaceletString string `json:"faceletString"`
}

type solveResponse struct {
	Solution string `json:"solution"`
	Error    string `json:"error"`
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Solve implements Solver.
func (c *HTTPClient) Solve(ctx context.Context, facelets string) (string, error) {
	body, err := json.Marshal(solveRequest{FaceletString: facelets})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/solve", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSolverUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrSolverUnavailable, err)
	}

	var out solveResponse
	if err := json.Unmarshal(data, &out); err != nil {
		if resp.StatusCode >= 500 {
			return "", fmt.Errorf("%w: status %d", ErrSolverUnavailable, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: malformed response: %v", ErrSolverRejected, err)
	}
	if resp.StatusCode != http.StatusOK || out.Error != "" {
		msg := out.Error
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("%w: %s", ErrSolverRejected, msg)
	}
	return strings.TrimSpace(out.Solution), nil
}

// SolveState asks s for a solution to state. The facelets are relabelled
// by their centers first, so states reached with slice or wide moves are
// solved relative to where the centers are now.
func SolveState(ctx context.Context, s Solver, state cubestate.State) ([]cubestate.Move, error) {
	raw, err := cubestate.Project(state)
	if err != nil {
		return nil, err
	}
	facelets, err := cubestate.Relabel(raw)
	if err != nil {
		return nil, err
	}

	solution, err := s.Solve(ctx, facelets)
	if err != nil {
		return nil, err
	}
	moves, err := cubestate.ParseMoves(solution)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable solution %q: %v", ErrSolverRejected, solution, err)
	}
	return moves, nil
}
