package model

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/layercake/core"
)

// ErrBadPotIntCoefs indicates a numerically unstable potential
// interpolation fit. It is recovered locally: the affected layer falls
// back to flat-earth integration.
var ErrBadPotIntCoefs = errors.New("model: unstable potential interpolation coefficients")

// ErrDoesNotTurn is returned when a turning depth is requested from a
// layer without a usable potential interpolation fit.
var ErrDoesNotTurn = errors.New("model: layer has no turning depth for this ray")

// ErrBottomReached signals that a traversal fell off the bottom of the model.
var ErrBottomReached = errors.New("model: bottom of model reached")

// ErrSurfaceReached signals that a traversal fell off the top of the model.
var ErrSurfaceReached = errors.New("model: surface of model reached")

// ErrOutOfBounds signals a depth outside every layer of the model.
var ErrOutOfBounds = errors.New("model: depth is outside of model")

// ErrBadScanlines indicates a malformed (depth, material, name) sequence.
var ErrBadScanlines = errors.New("model: invalid scanline sequence")

// CannotPropagateError reports that a ray cannot enter a layer in the
// requested direction at its ray parameter.
type CannotPropagateError struct {
	Direction core.Direction
	Layer     int
}

func (e *CannotPropagateError) Error() string {
	return fmt.Sprintf("model: cannot enter layer %d from %s", e.Layer, e.Direction.Side())
}

// DiscontinuityNotFoundError reports a failed discontinuity lookup.
type DiscontinuityNotFoundError struct {
	DepthOrName string
}

func (e *DiscontinuityNotFoundError) Error() string {
	return fmt.Sprintf("model: cannot find discontinuity from given depth or name: %s", e.DepthOrName)
}
