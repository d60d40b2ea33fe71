package trace

import (
	"errors"

	"github.com/katalvlaran/layercake/model"
)

var (
	// ErrTrapped is returned by Path when a wave is caught in a cycle of
	// free reflections and would bounce forever.
	ErrTrapped = errors.New("trace: wave is trapped")

	// ErrMaxDepthReached is returned by Path when a ray dives below the
	// maximum depth allowed for the current leg.
	ErrMaxDepthReached = errors.New("trace: maximum depth for leg reached")

	// ErrMinDepthReached is returned by Path when a ray stays above the
	// minimum depth required for the current leg.
	ErrMinDepthReached = errors.New("trace: minimum depth for leg not reached")

	// ErrNotPhaseConform is returned by Path when the ray terminates with
	// unconsumed knees in the phase definition.
	ErrNotPhaseConform = errors.New("trace: ray does not conform to phase definition")

	// ErrPRangeNotSet is returned by RayPath queries that need the valid
	// ray parameter range before it has been attached by GatherPaths.
	ErrPRangeNotSet = errors.New("trace: ray parameter range has not been set")
)

// expectedFailure reports whether an error from Path merely discards one
// probed ray parameter during fan discovery, as opposed to a real problem
// with the model or the query.
func expectedFailure(err error) bool {
	var cpe *model.CannotPropagateError
	return errors.Is(err, ErrTrapped) ||
		errors.Is(err, ErrMaxDepthReached) ||
		errors.Is(err, ErrMinDepthReached) ||
		errors.Is(err, ErrNotPhaseConform) ||
		errors.Is(err, model.ErrBottomReached) ||
		errors.Is(err, model.ErrSurfaceReached) ||
		errors.As(err, &cpe)
}
