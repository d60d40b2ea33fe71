package trace

import (
	"encoding/binary"
	"hash"
	"math"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/model"
)

// pathElement is one entry of a RayPath: a Straight or a Kink.
type pathElement interface {
	hashInto(h hash.Hash64)
}

// Straight is a ray segment representing wave propagation through one
// layer. Entry and exit direction differ for segments containing a
// turning point.
type Straight struct {
	directionIn  core.Direction
	directionOut core.Direction
	mode         core.Mode
	layer        model.Layer
}

// Mode is the propagation mode of the segment.
func (s *Straight) Mode() core.Mode { return s.mode }

// DirectionIn and DirectionOut are the propagation directions at entry
// and exit of the segment.
func (s *Straight) DirectionIn() core.Direction  { return s.directionIn }
func (s *Straight) DirectionOut() core.Direction { return s.directionOut }

// Layer is the traversed layer.
func (s *Straight) Layer() model.Layer { return s.layer }

// ZIn is the depth at which the segment enters its layer [m].
func (s *Straight) ZIn() float64 {
	if s.directionIn == core.Up {
		return s.layer.ZBot()
	}

	return s.layer.ZTop()
}

// ZOut is the depth at which the segment leaves its layer [m].
func (s *Straight) ZOut() float64 {
	if s.directionOut == core.Down {
		return s.layer.ZBot()
	}

	return s.layer.ZTop()
}

// PFlatIn and PFlatOut convert a spherical ray parameter to the local
// flat ray parameter at the entry and exit depths [s/m].
func (s *Straight) PFlatIn(p float64) float64  { return p / (s.layer.EarthRadius() - s.ZIn()) }
func (s *Straight) PFlatOut(p float64) float64 { return p / (s.layer.EarthRadius() - s.ZOut()) }

// UIn and UOut are the slownesses at the entry and exit depths [s/m].
func (s *Straight) UIn() float64 {
	utop, ubot := s.layer.Us(s.mode)
	if s.directionIn == core.Up {
		return ubot
	}

	return utop
}

func (s *Straight) UOut() float64 {
	utop, ubot := s.layer.Us(s.mode)
	if s.directionOut == core.Down {
		return ubot
	}

	return utop
}

// AngleIn is the angle between the incoming ray and the downward normal
// at the entry depth [deg].
func (s *Straight) AngleIn(p float64) float64 {
	pf := s.PFlatIn(p)
	vtop, vbot := s.layer.Vs(s.mode)
	if s.directionIn == core.Down {
		return math.Asin(vtop*pf) * core.R2D
	}

	return 180.0 - math.Asin(vbot*pf)*core.R2D
}

// AngleOut is the angle of the outgoing ray at the exit depth [deg].
func (s *Straight) AngleOut(p float64) float64 {
	pf := s.PFlatOut(p)
	vtop, vbot := s.layer.Vs(s.mode)
	v, o := vtop, 0.0
	if s.directionOut == core.Down {
		v, o = vbot, 90.0
	}

	return o + math.Asin(v*pf)*core.R2D
}

// ZTurn is the turning depth of the segment's layer for ray parameter p.
func (s *Straight) ZTurn(p float64) (float64, error) {
	return s.layer.ZTurn(p, s.mode)
}

// XT integrates epicentral distance [deg] and travel time [s] over the
// full segment.
func (s *Straight) XT(p float64) (x, t float64) {
	return s.layer.XT(p, s.mode)
}

// XTPart restricts the integral to the [z1, z2] part of the layer.
func (s *Straight) XTPart(p, z1, z2 float64) (x, t float64) {
	return s.layer.XTPart(p, s.mode, z1, z2)
}

func (s *Straight) hashInto(h hash.Hash64) {
	_ = binary.Write(h, binary.LittleEndian, []uint64{
		uint64(int64(s.directionIn)),
		uint64(int64(s.directionOut)),
		uint64(s.mode),
		uint64(int64(s.layer.Index())),
		math.Float64bits(s.layer.ZTop()),
		math.Float64bits(s.layer.ZBot()),
	})
}

// Kink is an interaction of a ray with a discontinuity: a reflection, a
// transmission, a mode conversion, or a combination thereof.
type Kink struct {
	inDirection  core.Direction
	outDirection core.Direction
	inMode       core.Mode
	outMode      core.Mode
	discont      model.Discontinuity
}

// InDirection, OutDirection, InMode and OutMode describe the interaction.
func (k *Kink) InDirection() core.Direction  { return k.inDirection }
func (k *Kink) OutDirection() core.Direction { return k.outDirection }
func (k *Kink) InMode() core.Mode            { return k.inMode }
func (k *Kink) OutMode() core.Mode           { return k.outMode }

// Discontinuity is where the interaction happens.
func (k *Kink) Discontinuity() model.Discontinuity { return k.discont }

// Reflection reports whether the interaction reverses the direction.
func (k *Kink) Reflection() bool { return k.inDirection != k.outDirection }

// Conversion reports whether the interaction changes the mode.
func (k *Kink) Conversion() bool { return k.inMode != k.outMode }

// Efficiency is the energy normalized scattering coefficient of the
// interaction for ray parameter p.
func (k *Kink) Efficiency(p float64) float64 {
	return k.discont.Efficiency(k.inDirection, k.outDirection, k.inMode, k.outMode, p)
}

// String renders the interaction symbol used in path listings: "|" for a
// reflection, "~" for a conversion, "|~" for both and "_" for a plain
// transmission.
func (k *Kink) String() string {
	r, c := k.Reflection(), k.Conversion()
	switch {
	case r && c:
		return "|~"
	case r:
		return "|"
	case c:
		return "~"
	default:
		return "_"
	}
}

func (k *Kink) hashInto(h hash.Hash64) {
	_ = binary.Write(h, binary.LittleEndian, []uint64{
		uint64(int64(k.inDirection)),
		uint64(int64(k.outDirection)),
		uint64(k.inMode),
		uint64(k.outMode),
		uint64(int64(k.discont.Index())),
		math.Float64bits(k.discont.Z()),
	})
}
