// Package cubestate tracks the state of a 3x3x3 puzzle cube under layer
// turns and derives the facelet string used by two-phase solvers.
//
// # Model
//
// The cube is 27 cubelets on the lattice {-1,0,1}^3 with +X right, +Y up
// and +Z front. Each cubelet keeps its home coordinate as its ID, its
// current position, and its orientation as one of the 24 cube rotations.
// A move turns every cubelet in one layer (two for wide moves) by a
// quarter turn about a principal axis. All arithmetic is on integer
// matrices, so states never drift.
//
// # Quick Start
//
//	s := cubestate.NewState()
//	s, _ = cubestate.ApplyAll(s, cubestate.R, cubestate.U, cubestate.RPrime, cubestate.UPrime)
//
//	facelets, _ := s.Facelets() // "UULUUFUUFRRUBRRURRFF..."
//	fmt.Println("Solved:", s.IsSolved())
//
// Or from notation:
//
//	moves, _ := cubestate.ParseMoves("F B2 L' Rw M")
//	s, _ = cubestate.ApplyAll(s, moves...)
//
// # Facelet Strings
//
// Facelet strings are 54 characters over URFDLB, face order U R F D L B,
// nine stickers per face read row by row while facing that face. Each
// character names the face whose color is showing.
//
// # Sessions
//
// A Session owns one state for an interactive shell. It applies moves in
// order, keeps history for undo, publishes Transition snapshots to
// subscribers, and supports a Begin/Done handshake so a presentation
// layer can animate one turn before the next is accepted.
package cubestate
