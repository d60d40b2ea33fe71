package core

import "math"

// Mode identifies the propagation mode of an elastic body wave.
type Mode int

const (
	// P is the compressional (primary) wave mode.
	P Mode = iota + 1
	// S is the shear (secondary) wave mode.
	S
)

// String returns the conventional lower-case letter for the mode.
func (m Mode) String() string {
	switch m {
	case P:
		return "p"
	case S:
		return "s"
	default:
		return "?"
	}
}

// Direction identifies the vertical sense of wave propagation.
// Depth grows downward, so Down means toward greater depth.
type Direction int

const (
	// Down propagation, toward greater depth.
	Down Direction = 1
	// Up propagation, toward the surface.
	Up Direction = -1
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction { return -d }

// String returns "downward" or "upward".
func (d Direction) String() string {
	if d == Down {
		return "downward"
	}

	return "upward"
}

// Side names the side an incoming ray arrives from: a downward-moving ray
// hits from above, an upward-moving one from below.
func (d Direction) Side() string {
	if d == Down {
		return "above"
	}

	return "below"
}

// Angle conversion constants: degrees per radian and its inverse.
const (
	R2D = 180.0 / math.Pi
	D2R = 1.0 / R2D
)

// Km is one kilometer in meters. Depths and radii are in meters throughout.
const Km = 1000.0

// ZEps is the tolerance [m] for depth comparisons: two depths closer than
// this are treated as coincident.
const ZEps = 0.01

