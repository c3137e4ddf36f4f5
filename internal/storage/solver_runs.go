package storage

import "fmt"

// SolverRun is one request to the solving service.
type SolverRun struct {
	RunID     int64
	SessionID string
	TsMs      int64
	Facelets  string
	Solution  *string
	Error     *string
}

// SolverRunRepository stores solver requests and their outcome.
type SolverRunRepository struct {
	db *DB
}

// NewSolverRunRepository creates a new solver run repository.
func NewSolverRunRepository(db *DB) *SolverRunRepository {
	return &SolverRunRepository{db: db}
}

// Create records a solver request. Exactly one of solution and errMsg is
// normally set.
func (r *SolverRunRepository) Create(sessionID string, tsMs int64, facelets, solution, errMsg string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO solver_runs (session_id, ts_ms, facelets, solution, error)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, tsMs, facelets, optional(solution), optional(errMsg))
	if err != nil {
		return 0, fmt.Errorf("failed to create solver run: %w", err)
	}
	return result.LastInsertId()
}

// GetBySession retrieves the solver runs of a session in order.
func (r *SolverRunRepository) GetBySession(sessionID string) ([]SolverRun, error) {
	rows, err := r.db.Query(`
		SELECT run_id, session_id, ts_ms, facelets, solution, error
		FROM solver_runs
		WHERE session_id = ?
		ORDER BY run_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get solver runs: %w", err)
	}
	defer rows.Close()

	var runs []SolverRun
	for rows.Next() {
		var run SolverRun
		if err := rows.Scan(&run.RunID, &run.SessionID, &run.TsMs, &run.Facelets, &run.Solution, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan solver run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
