package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubestate"
)

// fakeService answers with the inverse of the moves it was told about,
// standing in for a real solver.
func fakeService(t *testing.T, scramble []cubestate.Move) *httptest.Server {
	t.Helper()
	state, err := cubestate.ApplyAll(cubestate.NewState(), scramble...)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := cubestate.Project(state)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/solve" {
			http.NotFound(w, r)
			return
		}
		var req solveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FaceletString == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(solveResponse{Error: "faceletString is required"})
			return
		}
		if req.FaceletString != want {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(solveResponse{Error: "Error 8"})
			return
		}
		json.NewEncoder(w).Encode(solveResponse{Solution: cubestate.FormatMoves(cubestate.Invert(scramble))})
	}))
}

func TestSolveStateRoundTrip(t *testing.T) {
	scramble, _ := cubestate.ParseMoves("R U2 F' L D B2")
	srv := fakeService(t, scramble)
	defer srv.Close()

	state, _ := cubestate.ApplyAll(cubestate.NewState(), scramble...)
	moves, err := SolveState(context.Background(), NewHTTPClient(srv.URL+"/", time.Second), state)
	if err != nil {
		t.Fatalf("SolveState: %v", err)
	}
	solved, err := cubestate.ApplyAll(state, moves...)
	if err != nil {
		t.Fatal(err)
	}
	if !solved.IsSolved() {
		t.Errorf("solution %s does not solve the cube", cubestate.FormatMoves(moves))
	}
}

func TestSolveRejected(t *testing.T) {
	srv := fakeService(t, []cubestate.Move{cubestate.R})
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).Solve(context.Background(), "garbage")
	if !errors.Is(err, ErrSolverRejected) {
		t.Errorf("err = %v, want ErrSolverRejected", err)
	}
}

func TestSolveUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url, time.Second).Solve(context.Background(), "UUU")
	if !errors.Is(err, ErrSolverUnavailable) {
		t.Errorf("err = %v, want ErrSolverUnavailable", err)
	}
}

func TestSolveBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).Solve(context.Background(), "UUU")
	if !errors.Is(err, ErrSolverUnavailable) {
		t.Errorf("err = %v, want ErrSolverUnavailable", err)
	}
}

type staticSolver string

func (s staticSolver) Solve(context.Context, string) (string, error) {
	return string(s), nil
}

func TestSolveStateUnparseableSolution(t *testing.T) {
	_, err := SolveState(context.Background(), staticSolver("R Q"), cubestate.NewState())
	if !errors.Is(err, ErrSolverRejected) {
		t.Errorf("err = %v, want ErrSolverRejected", err)
	}
}
