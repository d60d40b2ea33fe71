package phase

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/layercake/core"
)

// Knee is a change in wave propagation between two legs: a reflection
// and/or a mode conversion at the surface, at a named interface, or at a
// literal depth. Knees are to be treated as read-only once their Def has
// been built; model adaptation works on deep copies.
type Knee struct {
	// Depth locates the conversion/reflection.
	Depth Depth

	// Direction is the incoming propagation direction.
	Direction core.Direction

	// InMode and OutMode are the propagation modes before and after.
	InMode  core.Mode
	OutMode core.Mode

	// Reflection reports whether the interaction reverses the direction.
	Reflection bool
}

func (*Knee) isEvent() {}

// NewKnee assembles a fully specified knee, as the tracer does when it
// records the phase a ray actually realized.
func NewKnee(depth Depth, direction core.Direction, reflection bool, inMode, outMode core.Mode) *Knee {
	return &Knee{
		Depth:      depth,
		Direction:  direction,
		InMode:     inMode,
		OutMode:    outMode,
		Reflection: reflection,
	}
}

// Copy returns an independent copy of the knee.
func (k *Knee) Copy() *Knee {
	c := *k

	return &c
}

// Conversion reports whether the knee changes the propagation mode.
func (k *Knee) Conversion() bool { return k.InMode != k.OutMode }

// AtSurface reports whether the knee happens at the free surface.
func (k *Knee) AtSurface() bool { return k.Depth.IsSurface() }

// OutDirection returns the outgoing direction: flipped for reflections,
// unchanged for transmissions.
func (k *Knee) OutDirection() core.Direction {
	if k.Reflection {
		return k.Direction.Flip()
	}

	return k.Direction
}

// Matches reports whether the knee applies to a discontinuity identified
// by depth z and name, hit in the given mode and direction. Numeric knee
// depths compare within core.ZEps; named (and surface) knees compare by
// name.
func (k *Knee) Matches(z float64, name string, mode core.Mode, direction core.Direction) bool {
	if k.Depth.IsNumeric() {
		if math.Abs(k.Depth.Z()-z) > core.ZEps {
			return false
		}
	} else if k.Depth.Name() != name {
		return false
	}

	return k.Direction == direction && k.InMode == mode
}

// String describes the knee the way phase listings do.
func (k *Knee) String() string {
	var x []string
	if k.Reflection {
		if k.AtSurface() {
			x = append(x, "surface")
		} else if k.Direction == core.Up {
			x = append(x, "underside")
		} else {
			x = append(x, "upperside")
		}
	}

	switch {
	case k.Reflection && k.Conversion():
		x = append(x, fmt.Sprintf("reflection with conversion from %s to %s", k.InMode, k.OutMode))
	case k.Reflection:
		x = append(x, "reflection")
	case k.Conversion():
		x = append(x, fmt.Sprintf("conversion from %s to %s", k.InMode, k.OutMode))
	}

	if k.Depth.IsNumeric() {
		x = append(x, fmt.Sprintf("at interface in %g km depth", k.Depth.Z()/core.Km))
	} else if !k.AtSurface() {
		x = append(x, fmt.Sprintf("at %s", k.Depth.Name()))
	}

	if !k.Reflection {
		if k.Direction == core.Up {
			x = append(x, "on upgoing path")
		} else {
			x = append(x, "on downgoing path")
		}
	}

	return strings.Join(x, " ")
}

// kneeBuilder accumulates knee fields during parsing. Each field may be
// set at most once; re-setting fails with ErrInvalidKneeDef. Unset fields
// fall back to context-dependent defaults when the knee is finished:
// at the surface an interaction defaults to a reflection, at depth to a
// transmission, and the incoming direction defaults to upward unless a
// transmitting conversion pins it to the departure of the outgoing leg.
type kneeBuilder struct {
	depth      *Depth
	direction  *core.Direction
	reflection *bool
}

func (b *kneeBuilder) setDepth(d Depth) error {
	if b.depth != nil {
		return fmt.Errorf("%w: depth has already been set", ErrInvalidKneeDef)
	}
	b.depth = &d

	return nil
}

func (b *kneeBuilder) setDirection(d core.Direction) error {
	if b.direction != nil {
		return fmt.Errorf("%w: direction has already been set", ErrInvalidKneeDef)
	}
	b.direction = &d

	return nil
}

func (b *kneeBuilder) setReflection(r bool) error {
	if b.reflection != nil {
		return fmt.Errorf("%w: reflection has already been set", ErrInvalidKneeDef)
	}
	b.reflection = &r

	return nil
}

// finish resolves defaults, validates the knee against its adjacent legs
// and produces the immutable record.
func (b *kneeBuilder) finish(inLeg, outLeg *Leg) (*Knee, error) {
	depth := SurfaceDepth()
	if b.depth != nil {
		depth = *b.depth
	}

	reflection := depth.IsSurface() // surface default: reflect; at depth: transmit
	if b.reflection != nil {
		reflection = *b.reflection
	}

	conversion := inLeg.Mode != outLeg.Mode

	direction := core.Up
	if b.direction != nil {
		direction = *b.direction
	} else if !reflection && conversion {
		// A transmitting conversion continues in the direction the next
		// leg departs in.
		direction = outLeg.Departure
	}

	what := "conversion"
	if reflection {
		what = "reflection"
	}
	if outLeg.Departure == core.Up && ((direction == core.Up) == reflection) {
		return nil, fmt.Errorf("%w: cannot enter %s from %s and emit ray upwards",
			ErrInvalidKneeDef, what, direction.Side())
	}
	if outLeg.Departure == core.Down && ((direction == core.Down) == reflection) {
		return nil, fmt.Errorf("%w: cannot enter %s from %s and emit ray downwards",
			ErrInvalidKneeDef, what, direction.Side())
	}
	if inLeg.Mode == outLeg.Mode && !reflection {
		return nil, fmt.Errorf("%w: mode of propagation should change at a conversion", ErrInvalidKneeDef)
	}

	return &Knee{
		Depth:      depth,
		Direction:  direction,
		InMode:     inLeg.Mode,
		OutMode:    outLeg.Mode,
		Reflection: reflection,
	}, nil
}
