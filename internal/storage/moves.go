package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubestate"
)

// MoveRecord represents a journaled move.
type MoveRecord struct {
	MoveID    int64
	SessionID string
	MoveIndex int
	TsMs      int64
	Notation  string
	Axis      int
	Layer     int
	Direction int
	Wide      bool
	IsUndo    bool
}

// Move converts the record back to a descriptor.
func (m MoveRecord) Move() cubestate.Move {
	return cubestate.Move{
		Axis:      cubestate.Axis(m.Axis),
		Layer:     m.Layer,
		Direction: m.Direction,
		Wide:      m.Wide,
	}
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (session_id, move_index, ts_ms, notation, axis, layer, direction, wide, is_undo)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Create stores a move and returns its ID.
func (r *MoveRepository) Create(sessionID string, moveIndex int, tsMs int64, move cubestate.Move, undo bool) (int64, error) {
	result, err := r.db.Exec(insertMove,
		sessionID, moveIndex, tsMs, move.Notation(),
		int(move.Axis), move.Layer, move.Direction, move.Wide, undo)

	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}

	return id, nil
}

// CreateBatch stores consecutive moves in a single transaction.
func (r *MoveRepository) CreateBatch(sessionID string, moves []cubestate.Move, startIndex int, tsMs int64) error {
	return r.db.inTx(func(tx *sql.Tx) error {
		for i, move := range moves {
			_, err := tx.Exec(insertMove,
				sessionID, startIndex+i, tsMs, move.Notation(),
				int(move.Axis), move.Layer, move.Direction, move.Wide, false)
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all moves for a session in order.
func (r *MoveRepository) GetBySession(sessionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, session_id, move_index, ts_ms, notation, axis, layer, direction, wide, is_undo
		FROM moves
		WHERE session_id = ?
		ORDER BY move_index
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(&m.MoveID, &m.SessionID, &m.MoveIndex, &m.TsMs, &m.Notation,
			&m.Axis, &m.Layer, &m.Direction, &m.Wide, &m.IsUndo)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// GetNextIndex returns the next move index for a session.
func (r *MoveRepository) GetNextIndex(sessionID string) (int, error) {
	var maxIndex int
	err := r.db.QueryRow(`
		SELECT COALESCE(MAX(move_index), -1) FROM moves WHERE session_id = ?
	`, sessionID).Scan(&maxIndex)
	if err != nil {
		return 0, fmt.Errorf("failed to get max move index: %w", err)
	}
	return maxIndex + 1, nil
}

// Count returns the number of moves for a session.
func (r *MoveRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}
