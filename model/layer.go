package model

import (
	"math"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
)

// Element is one entry of a layered model: a Layer or a Discontinuity.
type Element interface {
	// ZTop is the depth of the top of the element [m].
	ZTop() float64
	// ZBot is the depth of the bottom of the element [m]. For
	// discontinuities ZTop == ZBot.
	ZBot() float64
}

// Layer is one depth interval of a layered model. The two implementations
// are HomogeneousLayer and GradientLayer; both integrate travel time and
// distance analytically, preferring the potential interpolation fit and
// falling back to flat-earth formulas where the fit is unstable.
//
// Ray parameters are spherical (s/rad); distances come back in degrees,
// times in seconds.
type Layer interface {
	Element

	// Index is the position of the layer in its model. Both halves of a
	// split layer keep the original index.
	Index() int
	// Name is the optional layer name ("" if unnamed).
	Name() string
	// ZMid is the mid depth of the layer [m].
	ZMid() float64
	// EarthRadius is the model radius the layer was built with [m].
	EarthRadius() float64

	// Contains tolerantly checks whether z lies within the layer,
	// boundaries included; Inner excludes the boundaries.
	Contains(z float64) bool
	Inner(z float64) bool
	// AtTop and AtBottom tolerantly test the boundaries themselves.
	AtTop(z float64) bool
	AtBottom(z float64) bool

	// MTop and MBot are the materials at the layer boundaries (equal for
	// homogeneous layers); MaterialAt interpolates at depth z.
	MTop() material.Material
	MBot() material.Material
	MaterialAt(z float64) material.Material

	// U is the slowness [s/m] of the mode at depth z; Us and Vs return
	// (top, bottom) slowness and velocity pairs.
	U(mode core.Mode, z float64) float64
	Us(mode core.Mode) (utop, ubot float64)
	Vs(mode core.Mode) (vtop, vbot float64)

	// PFlat converts a spherical ray parameter to the local flat ray
	// parameter at depth z [s/m].
	PFlat(p, z float64) float64

	// XT integrates epicentral distance [deg] and travel time [s] for a
	// full traversal (doubled for turning rays); XTPart restricts the
	// integral to the [z1, z2] part of the layer.
	XT(p float64, mode core.Mode) (x, t float64)
	XTPart(p float64, mode core.Mode, z1, z2 float64) (x, t float64)

	// Test checks whether the mode can exist at depth z for ray
	// parameter p.
	Test(p float64, mode core.Mode, z float64) bool

	// ZTurn is the turning depth inside the layer; ErrDoesNotTurn if the
	// layer cannot produce one.
	ZTurn(p float64, mode core.Mode) (float64, error)

	// Propagate tests traversal in the given entry direction. It returns
	// the exit direction: unchanged for a crossing, flipped for a turning
	// ray. If the ray cannot even enter, it fails with
	// *CannotPropagateError.
	Propagate(p float64, mode core.Mode, direction core.Direction) (core.Direction, error)

	// Split cuts the layer at an interior depth z, preserving the index
	// on both halves.
	Split(z float64) (Layer, Layer)

	String() string

	setIndex(i int)
}

// baseLayer carries the geometry and materials shared by both layer kinds
// and the potential interpolation machinery.
type baseLayer struct {
	ztop, zbot, zmid float64
	name             string
	index            int
	r                float64 // earth radius [m]

	mtop, mbot material.Material

	ppic, spic potIntCoefs
	usePotInt  bool
}

func newBaseLayer(ztop, zbot float64, mtop, mbot material.Material, name string, earthRadius float64) baseLayer {
	b := baseLayer{
		ztop: ztop,
		zbot: zbot,
		zmid: 0.5 * (ztop + zbot),
		name: name,
		r:    earthRadius,
		mtop: mtop,
		mbot: mbot,
	}
	b.updatePotIntCoefs()

	return b
}

// updatePotIntCoefs fits both wave modes; an unstable fit switches the
// layer to flat-earth fallback integration.
func (b *baseLayer) updatePotIntCoefs() {
	ppic, errP := newPotIntCoefs(b.mbot.Vp, b.mtop.Vp, b.radius(b.zbot), b.radius(b.ztop))
	spic, errS := newPotIntCoefs(b.mbot.Vs, b.mtop.Vs, b.radius(b.zbot), b.radius(b.ztop))
	if errP != nil || errS != nil {
		b.usePotInt = false

		return
	}
	b.ppic, b.spic = ppic, spic
	b.usePotInt = true
}

func (b *baseLayer) potIntCoefs(mode core.Mode) potIntCoefs {
	if mode == core.P {
		return b.ppic
	}

	return b.spic
}

func (b *baseLayer) radius(z float64) float64 { return b.r - z }

func (b *baseLayer) ZTop() float64        { return b.ztop }
func (b *baseLayer) ZBot() float64        { return b.zbot }
func (b *baseLayer) ZMid() float64        { return b.zmid }
func (b *baseLayer) Name() string         { return b.name }
func (b *baseLayer) Index() int           { return b.index }
func (b *baseLayer) EarthRadius() float64 { return b.r }
func (b *baseLayer) setIndex(i int)       { b.index = i }

func (b *baseLayer) MTop() material.Material { return b.mtop }
func (b *baseLayer) MBot() material.Material { return b.mbot }

// Contains tolerantly checks if z is within the layer, boundaries included.
func (b *baseLayer) Contains(z float64) bool {
	return (b.ztop <= z && z <= b.zbot) || b.AtBottom(z) || b.AtTop(z)
}

// Inner tolerantly checks if z is within the layer, boundaries excluded.
func (b *baseLayer) Inner(z float64) bool {
	return b.ztop <= z && z <= b.zbot && !b.AtBottom(z) && !b.AtTop(z)
}

// AtBottom tolerantly checks if z is at the bottom boundary.
func (b *baseLayer) AtBottom(z float64) bool { return math.Abs(b.zbot-z) < core.ZEps }

// AtTop tolerantly checks if z is at the top boundary.
func (b *baseLayer) AtTop(z float64) bool { return math.Abs(b.ztop-z) < core.ZEps }

// PFlat converts the spherical ray parameter to the local flat ray
// parameter at depth z.
func (b *baseLayer) PFlat(p, z float64) float64 { return p / (b.r - z) }

// Us returns the boundary slownesses (top, bottom) for the mode.
func (b *baseLayer) Us(mode core.Mode) (utop, ubot float64) {
	vtop, vbot := b.Vs(mode)

	return 1.0 / vtop, 1.0 / vbot
}

// Vs returns the boundary velocities (top, bottom) for the mode.
func (b *baseLayer) Vs(mode core.Mode) (vtop, vbot float64) {
	if mode == core.P {
		return b.mtop.Vp, b.mbot.Vp
	}

	return b.mtop.Vs, b.mbot.Vs
}

// xtPotInt evaluates the closed-form distance/time integrals for the
// potential interpolation c(z) = a*(R-z)^b, doubling the contribution of
// turning rays. With hasPart, the integral is restricted to [z1, z2].
func (b *baseLayer) xtPotInt(p float64, mode core.Mode, hasPart bool, z1, z2 float64) (x, t float64) {
	utop, ubot := b.Us(mode)
	pic := b.potIntCoefs(mode)
	ztop, zbot := b.ztop, b.zbot
	if hasPart {
		ztop, zbot = z1, z2
		utop = 1.0 / (pic.a * math.Pow(b.radius(ztop), pic.b))
		ubot = 1.0 / (pic.a * math.Pow(b.radius(zbot), pic.b))
	}

	r1 := b.radius(zbot)
	r2 := b.radius(ztop)
	eta1 := r1 * ubot
	eta2 := r2 * utop

	if pic.b != 1 {
		cpe := func(eta float64) float64 {
			return math.Acos(math.Min(p/math.Max(eta, p/2), 1.0))
		}
		sep := func(eta float64) float64 {
			return math.Sqrt(math.Max(eta*eta-p*p, 0.0))
		}
		x = (cpe(eta2) - cpe(eta1)) / (1 - pic.b)
		t = (sep(eta2) - sep(eta1)) / (1 - pic.b)
	} else {
		lr := math.Log(r2 / r1)
		sap := math.Sqrt(1/(pic.a*pic.a) - p*p)
		x = p / sap * lr
		t = 1. / (pic.a * pic.a * sap)
	}

	if r2*utop-p < 0 || r1*ubot-p < 0 {
		x *= 2
		t *= 2
	}

	return x * core.R2D, t
}

// zturnPotInt is the closed-form turning depth of the potential
// interpolation fit.
func (b *baseLayer) zturnPotInt(p float64, mode core.Mode) float64 {
	pic := b.potIntCoefs(mode)
	r := math.Exp(math.Log(pic.a*p) / (1 - pic.b))

	return b.r - r
}

// layerTest checks whether the mode can exist at depth z for ray
// parameter p, via the local slowness.
func layerTest(l Layer, p float64, mode core.Mode, z float64) bool {
	return l.U(mode, z)*(l.EarthRadius()-z)-p >= 0
}

// layerPropagate implements the shared entry/exit rule: rejection when the
// ray cannot enter, direction reversal when it enters but cannot reach the
// far boundary (turning ray).
func layerPropagate(l Layer, p float64, mode core.Mode, direction core.Direction) (core.Direction, error) {
	zin, zout := l.ZTop(), l.ZBot()
	if direction == core.Up {
		zin, zout = zout, zin
	}

	if !l.Test(p, mode, zin) {
		return 0, &CannotPropagateError{Direction: direction, Layer: l.Index()}
	}
	if !l.Test(p, mode, zout) {
		return direction.Flip(), nil
	}

	return direction, nil
}
