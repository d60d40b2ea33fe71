package model

import (
	"fmt"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
)

// Discontinuity is a zero-thickness element of a layered model: the free
// Surface on top, or an Interface between two layers.
type Discontinuity interface {
	Element

	// Z is the depth of the discontinuity [m].
	Z() float64
	// Name is the discontinuity name; the surface is always "surface".
	Name() string
	// Index is the position of the discontinuity in its model.
	Index() int

	// PFlat converts a spherical ray parameter to the local flat ray
	// parameter at the discontinuity [s/m].
	PFlat(p float64) float64

	// Propagate applies the implicit interaction rule for a ray hitting
	// the discontinuity without an explicit phase knee: pass-through if
	// the mode can exist on the far side, reflection otherwise.
	Propagate(p float64, mode core.Mode, direction core.Direction) core.Direction

	// Efficiency is the energy-normalized scattering coefficient for the
	// given interaction at spherical ray parameter p.
	Efficiency(inDirection, outDirection core.Direction, inMode, outMode core.Mode, p float64) float64

	String() string

	setIndex(i int)
}

// baseDiscontinuity carries the geometry shared by Surface and Interface.
type baseDiscontinuity struct {
	z     float64
	r     float64 // earth radius [m]
	index int
}

func (d *baseDiscontinuity) Z() float64            { return d.z }
func (d *baseDiscontinuity) ZTop() float64         { return d.z }
func (d *baseDiscontinuity) ZBot() float64         { return d.z }
func (d *baseDiscontinuity) Index() int            { return d.index }
func (d *baseDiscontinuity) setIndex(i int)        { d.index = i }
func (d *baseDiscontinuity) PFlat(p float64) float64 { return p / (d.r - d.z) }

// Surface is the free surface on top of a layered model.
type Surface struct {
	baseDiscontinuity
	mBelow material.Material
}

// NewSurface builds the surface discontinuity at depth z (normally 0).
func NewSurface(z float64, mBelow material.Material, earthRadius float64) *Surface {
	return &Surface{
		baseDiscontinuity: baseDiscontinuity{z: z, r: earthRadius},
		mBelow:            mBelow,
	}
}

// Name returns "surface".
func (*Surface) Name() string { return "surface" }

// MBelow is the material directly below the surface.
func (s *Surface) MBelow() material.Material { return s.mBelow }

// Propagate never reflects implicitly: an upgoing ray passes through, so
// that it can terminate at a surface receiver. Surface reflections happen
// only through explicit phase knees.
func (*Surface) Propagate(_ float64, _ core.Mode, direction core.Direction) core.Direction {
	return direction
}

// Efficiency is the energy-normalized free-surface scattering coefficient.
func (s *Surface) Efficiency(_, _ core.Direction, inMode, outMode core.Mode, p float64) float64 {
	i, j := PsvSurfaceIndex(inMode, outMode)

	return PsvSurfaceEnergy(s.mBelow, s.PFlat(p))[i][j]
}

func (*Surface) String() string { return "surface" }

// Interface is a first-order discontinuity between two layers.
type Interface struct {
	baseDiscontinuity
	name   string
	mAbove material.Material
	mBelow material.Material
}

// NewInterface builds an interface at depth z with the materials directly
// above and below.
func NewInterface(z float64, mAbove, mBelow material.Material, name string, earthRadius float64) *Interface {
	return &Interface{
		baseDiscontinuity: baseDiscontinuity{z: z, r: earthRadius},
		name:              name,
		mAbove:            mAbove,
		mBelow:            mBelow,
	}
}

// Name returns the interface name ("" if unnamed).
func (i *Interface) Name() string { return i.name }

// MAbove and MBelow are the materials on either side.
func (i *Interface) MAbove() material.Material { return i.mAbove }
func (i *Interface) MBelow() material.Material { return i.mBelow }

// us returns the slownesses of the mode above and below; a zero velocity
// (vacuum or fluid shear) yields an invalid slowness.
func (i *Interface) us(mode core.Mode) (uAbove, uBelow float64, okAbove, okBelow bool) {
	vAbove, vBelow := i.mAbove.Vp, i.mBelow.Vp
	if mode == core.S {
		vAbove, vBelow = i.mAbove.Vs, i.mBelow.Vs
	}
	if vAbove != 0 {
		uAbove, okAbove = 1.0/vAbove, true
	}
	if vBelow != 0 {
		uBelow, okBelow = 1.0/vBelow, true
	}

	return uAbove, uBelow, okAbove, okBelow
}

// Propagate transmits the ray if the mode can exist on the far side at
// this ray parameter, and reflects it implicitly otherwise.
func (i *Interface) Propagate(p float64, mode core.Mode, direction core.Direction) core.Direction {
	uAbove, uBelow, okAbove, okBelow := i.us(mode)
	if direction == core.Down {
		if okBelow && uBelow*(i.r-i.z)-p >= 0 {
			return direction
		}

		return direction.Flip()
	}
	if okAbove && uAbove*(i.r-i.z)-p >= 0 {
		return direction
	}

	return direction.Flip()
}

// Efficiency is the energy-normalized solid-solid scattering coefficient.
func (i *Interface) Efficiency(inDirection, outDirection core.Direction, inMode, outMode core.Mode, p float64) float64 {
	r, c := PsvSolidIndex(inDirection, outDirection, inMode, outMode)

	return PsvSolidEnergy(i.mAbove, i.mBelow, i.PFlat(p))[r][c]
}

func (i *Interface) String() string {
	if i.name == "" {
		return "interface"
	}

	return fmt.Sprintf("interface %q", i.name)
}
