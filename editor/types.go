package editor

import (
	"errors"

	"github.com/katalvlaran/wirelath/geom"
)

// ErrIllegalCommit names a commit attempted while the current proposed
// start or end is not legal. OnEvent does not return it: a LeftClick on an
// illegal start or end is ignored, with a nil error and no state change.
var ErrIllegalCommit = errors.New("editor: commit attempted on an illegal target")

// State is the Editor's current mode.
type State int

const (
	Idle State = iota
	Connecting
	Deleting
)

// String renders State for diagnostics.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Deleting:
		return "deleting"
	default:
		return "unknown"
	}
}

// EventKind enumerates the input events OnEvent reacts to: the three
// that the state machine actually branches on.
type EventKind int

const (
	// LeftClick commits the current Idle/Connecting/Deleting proposal.
	LeftClick EventKind = iota
	// RightClick cancels Connecting/Deleting back to Idle without effect.
	RightClick
	// ToggleDelete switches between Idle and Deleting: a dedicated event
	// rather than overloading a mouse button already meaningful in
	// Connecting. Deleting's commit follows the same single-target
	// pattern as Connecting's start, but erases instead of proposing.
	ToggleDelete
)

// Event is a single input event passed to OnEvent.
type Event struct {
	Kind EventKind
}

// snapClamp clamps a rounded world coordinate into [0, size).
func snapClamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

// clampVec clamps both axes of v into the block's [0,size) grid.
func clampVec(v geom.Vec, size int) geom.Vec {
	return geom.Vec{X: snapClamp(v.X, size), Y: snapClamp(v.Y, size)}
}
