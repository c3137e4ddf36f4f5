package ws

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubestate"
)

// Message types.
const (
	TypeState      = "state"
	TypeTransition = "transition"
	TypeError      = "error"

	TypeMove  = "move"
	TypeUndo  = "undo"
	TypeReset = "reset"
)

// Base carries the type of every message.
type Base struct {
	Type string `json:"type"`
}

// DecodeBase reads only the type of a message.
func DecodeBase(b []byte) (Base, error) {
	var base Base
	if err := json.Unmarshal(b, &base); err != nil {
		return Base{}, err
	}
	return base, nil
}

// StateMsg is sent when a client connects. Transitions with a Seq at or
// below it are already reflected in Facelets.
type StateMsg struct {
	Type     string   `json:"type"`
	Seq      uint64   `json:"seq"`
	Facelets string   `json:"facelets"`
	Solved   bool     `json:"solved"`
	Moves    []string `json:"moves"`
}

// TransitionMsg is sent for every change to the cube.
type TransitionMsg struct {
	Type     string          `json:"type"`
	Seq      uint64          `json:"seq"`
	Move     *MoveDescriptor `json:"move,omitempty"`
	Undo     bool            `json:"undo,omitempty"`
	Reset    bool            `json:"reset,omitempty"`
	Facelets string          `json:"facelets"`
	Solved   bool            `json:"solved"`
}

// ErrorMsg reports a rejected command to the client that sent it.
type ErrorMsg struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// MoveDescriptor is the wire form of a move.
type MoveDescriptor struct {
	Notation  string `json:"notation,omitempty"`
	Axis      string `json:"axis"`
	Layer     int    `json:"layer"`
	Direction int    `json:"direction"`
	Wide      bool   `json:"wide,omitempty"`
}

// MoveMsg asks the server to apply moves. Notation takes precedence; when
// it is empty the raw descriptor fields are used.
type MoveMsg struct {
	Type      string `json:"type"`
	Notation  string `json:"notation,omitempty"`
	Axis      string `json:"axis,omitempty"`
	Layer     int    `json:"layer,omitempty"`
	Direction int    `json:"direction,omitempty"`
	Wide      bool   `json:"wide,omitempty"`
}

func describe(m cubestate.Move) *MoveDescriptor {
	return &MoveDescriptor{
		Notation:  m.Notation(),
		Axis:      strings.ToLower(m.Axis.String()),
		Layer:     m.Layer,
		Direction: m.Direction,
		Wide:      m.Wide,
	}
}

func parseAxis(s string) (cubestate.Axis, error) {
	switch strings.ToLower(s) {
	case "x":
		return cubestate.X, nil
	case "y":
		return cubestate.Y, nil
	case "z":
		return cubestate.Z, nil
	default:
		return 0, fmt.Errorf("%w: axis %q", cubestate.ErrInvalidMove, s)
	}
}

// Moves resolves the message to the moves it names.
func (m MoveMsg) Moves() ([]cubestate.Move, error) {
	if m.Notation != "" {
		return cubestate.ParseMoves(m.Notation)
	}
	axis, err := parseAxis(m.Axis)
	if err != nil {
		return nil, err
	}
	mv := cubestate.Move{Axis: axis, Layer: m.Layer, Direction: m.Direction, Wide: m.Wide}
	if err := mv.Validate(); err != nil {
		return nil, err
	}
	return []cubestate.Move{mv}, nil
}
