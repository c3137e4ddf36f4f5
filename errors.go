package cubestate

import "errors"

// Sentinel errors for the cubestate package.
var (
	// Descriptor errors
	ErrInvalidMove     = errors.New("cubestate: invalid move descriptor")
	ErrInvalidNotation = errors.New("cubestate: invalid move notation")

	// State errors
	ErrInvalidState    = errors.New("cubestate: invalid cube state")
	ErrInvalidFacelets = errors.New("cubestate: invalid facelet string")

	// Session errors
	ErrMoveInFlight  = errors.New("cubestate: move already in flight")
	ErrNothingToUndo = errors.New("cubestate: nothing to undo")
)
