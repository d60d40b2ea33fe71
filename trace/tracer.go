package trace

import (
	"fmt"
	"math"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/model"
	"github.com/katalvlaran/layercake/phase"
)

// trapKey identifies a recurring free interaction state; revisiting one
// without phase knees left means the wave is trapped.
type trapKey struct {
	discont   int
	direction core.Direction
	mode      core.Mode
}

// Path traces a ray through the model for the given spherical ray
// parameter p [s/rad], phase definition, source depth zstart and receiver
// depth zstop [m].
//
// When the ray cannot realize the phase, the error is one of ErrTrapped,
// ErrMaxDepthReached, ErrMinDepthReached, ErrNotPhaseConform,
// model.ErrBottomReached, model.ErrSurfaceReached or a
// *model.CannotPropagateError.
func Path(m *model.LayeredModel, p float64, ph *phase.Def, zstart, zstop float64) (*RayPath, error) {
	adapted, err := m.AdaptPhase(ph)
	if err != nil {
		return nil, err
	}

	knees := adapted.Knees()
	legs := adapted.Legs()
	if len(legs) == 0 {
		return nil, fmt.Errorf("%w: phase definition has no legs", ErrNotPhaseConform)
	}

	ik, il := 0, 0
	var nextKnee *phase.Knee
	if len(knees) > 0 {
		nextKnee = knees[0]
		ik = 1
	}
	leg := legs[0]
	il = 1

	direction := leg.Departure
	directionStop := adapted.ArrivalDirection()
	mode := leg.Mode
	modeStop := adapted.LastLeg().Mode

	walker := m.Walker([]float64{zstart, zstop})
	if err := walker.Goto(zstart, direction.Flip()); err != nil {
		return nil, err
	}
	current := walker.Current()
	z := zstart

	usedPhase := phase.NewDef()
	usedPhase.Append(&phase.Leg{Departure: direction, Mode: mode})

	path := newRayPath(m, adapted, zstart, zstop)
	trapdetect := make(map[trapKey]struct{})

	for {
		if d, ok := current.(model.Discontinuity); ok {
			if nextKnee == nil {
				k := trapKey{discont: d.Index(), direction: direction, mode: mode}
				if _, seen := trapdetect[k]; seen {
					return nil, ErrTrapped
				}
				trapdetect[k] = struct{}{}
			}

			oldMode, oldDirection := mode, direction
			if nextKnee != nil && nextKnee.Matches(z, d.Name(), mode, direction) {
				direction = nextKnee.OutDirection()
				mode = nextKnee.OutMode
				if ik < len(knees) {
					nextKnee = knees[ik]
					ik++
				} else {
					nextKnee = nil
				}
				if il >= len(legs) {
					return nil, fmt.Errorf("%w: no leg after knee", ErrNotPhaseConform)
				}
				leg = legs[il]
				il++
			} else {
				// implicit reflection/transmission
				direction = d.Propagate(p, mode, direction)
			}

			if oldMode != mode || oldDirection != direction {
				kd := phase.NumericDepth(z)
				if _, atSurface := d.(*model.Surface); atSurface {
					kd = phase.SurfaceDepth()
				}
				usedPhase.Append(phase.NewKnee(kd, oldDirection, oldDirection != direction, oldMode, mode))
				usedPhase.Append(&phase.Leg{Departure: direction, Mode: mode})
			}

			path.append(&Kink{
				inDirection:  oldDirection,
				outDirection: direction,
				inMode:       oldMode,
				outMode:      mode,
				discont:      d,
			})
		}

		if l, ok := current.(model.Layer); ok {
			if l.AtBottom(z) && direction == core.Down {
				return nil, model.ErrBottomReached
			}
			if l.AtTop(z) && direction == core.Up {
				return nil, model.ErrSurfaceReached
			}

			directionIn := direction
			direction, err = l.Propagate(p, mode, directionIn)
			if err != nil {
				return nil, err
			}

			if leg.DepthMin != nil || leg.DepthMax != nil {
				if err := checkLegDepths(l, leg, p, mode, directionIn != direction); err != nil {
					return nil, err
				}
			}

			path.append(&Straight{
				directionIn:  directionIn,
				directionOut: direction,
				mode:         mode,
				layer:        l,
			})
		}

		if direction == core.Down {
			z = current.ZBot()
			if nextKnee == nil && math.Abs(z-zstop) < core.ZEps &&
				mode == modeStop && direction == directionStop {
				break
			}
			if err := walker.Down(); err != nil {
				return nil, err
			}
		} else {
			z = current.ZTop()
			if nextKnee == nil && math.Abs(z-zstop) < core.ZEps &&
				mode == modeStop && direction == directionStop {
				break
			}
			if err := walker.Up(); err != nil {
				return nil, err
			}
		}
		current = walker.Current()
	}

	if nextKnee != nil {
		return nil, ErrNotPhaseConform
	}

	usedPhase.SetArrivalDirection(directionStop)
	path.usedPhase = usedPhase

	return path, nil
}

// checkLegDepths enforces the depth window of the current leg: a turning
// segment is checked at its turning depth, a crossing segment against the
// layer boundaries.
func checkLegDepths(l model.Layer, leg *phase.Leg, p float64, mode core.Mode, turned bool) error {
	if turned {
		zturn, err := l.ZTurn(p, mode)
		if err != nil {
			return err
		}
		if leg.DepthMin != nil && zturn < leg.DepthMin.Z() {
			return ErrMinDepthReached
		}
		if leg.DepthMax != nil && zturn > leg.DepthMax.Z() {
			return ErrMaxDepthReached
		}

		return nil
	}

	if leg.DepthMin != nil && l.ZTop() < leg.DepthMin.Z() {
		return ErrMinDepthReached
	}
	if leg.DepthMax != nil && l.ZBot() > leg.DepthMax.Z() {
		return ErrMaxDepthReached
	}

	return nil
}
