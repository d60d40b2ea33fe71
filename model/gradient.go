package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
)

// GradientLayer is a layer whose material properties interpolate linearly
// between its top and bottom materials.
type GradientLayer struct {
	baseLayer
}

// NewGradientLayer builds a gradient layer between ztop and zbot.
func NewGradientLayer(ztop, zbot float64, mtop, mbot material.Material, name string, earthRadius float64) *GradientLayer {
	return &GradientLayer{
		baseLayer: newBaseLayer(ztop, zbot, mtop, mbot, name, earthRadius),
	}
}

// interpolate maps depth z linearly between a top and bottom property value.
func (l *GradientLayer) interpolate(z, ptop, pbot float64) float64 {
	return ptop + (z-l.ztop)*(pbot-ptop)/(l.zbot-l.ztop)
}

// MaterialAt interpolates all five material properties at depth z.
func (l *GradientLayer) MaterialAt(z float64) material.Material {
	return material.Material{
		Vp:  l.interpolate(z, l.mtop.Vp, l.mbot.Vp),
		Vs:  l.interpolate(z, l.mtop.Vs, l.mbot.Vs),
		Rho: l.interpolate(z, l.mtop.Rho, l.mbot.Rho),
		Qp:  l.interpolate(z, l.mtop.Qp, l.mbot.Qp),
		Qs:  l.interpolate(z, l.mtop.Qs, l.mbot.Qs),
	}
}

// U returns the slowness of the mode at depth z.
func (l *GradientLayer) U(mode core.Mode, z float64) float64 {
	if mode == core.P {
		return 1.0 / l.interpolate(z, l.mtop.Vp, l.mbot.Vp)
	}

	return 1.0 / l.interpolate(z, l.mtop.Vs, l.mbot.Vs)
}

// Test checks if the wave mode can exist at depth z for ray parameter p.
func (l *GradientLayer) Test(p float64, mode core.Mode, z float64) bool {
	return layerTest(l, p, mode, z)
}

// XT integrates distance [deg] and time [s] across the layer.
func (l *GradientLayer) XT(p float64, mode core.Mode) (x, t float64) {
	if l.usePotInt {
		return l.xtPotInt(p, mode, false, 0, 0)
	}

	return l.xtFlat(p, mode, false, 0, 0)
}

// XTPart integrates over the [z1, z2] part of the layer.
func (l *GradientLayer) XTPart(p float64, mode core.Mode, z1, z2 float64) (x, t float64) {
	if l.usePotInt {
		return l.xtPotInt(p, mode, true, z1, z2)
	}

	return l.xtFlat(p, mode, true, z1, z2)
}

// xtFlat is the flat-earth gradient fallback (constant velocity gradient).
func (l *GradientLayer) xtFlat(p float64, mode core.Mode, hasPart bool, z1, z2 float64) (x, t float64) {
	utop, ubot := l.Us(mode)
	b := (1.0/ubot - 1.0/utop) / (l.zbot - l.ztop)
	pflat := l.PFlat(p, l.zbot)
	if hasPart {
		utop = l.U(mode, z1)
		ubot = l.U(mode, z2)
	}

	const peps = 1e-16
	pdp := pflat + peps
	eval := func(u float64) (xx, tt float64) {
		eta := math.Sqrt(math.Max(u*u-pflat*pflat, 0.0))
		xx = eta / u
		if pflat <= u {
			tt = math.Log(u+eta) - math.Log(pdp) - eta/u
		}

		return xx, tt
	}

	xxtop, tttop := eval(utop)
	xxbot, ttbot := eval(ubot)

	x = (xxtop - xxbot) / (b * pdp)
	t = (tttop-ttbot)/b + pflat*x

	if utop-pflat <= 0 || ubot-pflat <= 0 {
		x *= 2
		t *= 2
	}

	return x * core.R2D / (l.r - l.zmid), t
}

// ZTurn returns the turning depth of the layer for ray parameter p.
func (l *GradientLayer) ZTurn(p float64, mode core.Mode) (float64, error) {
	if l.usePotInt {
		return l.zturnPotInt(p, mode), nil
	}

	pflat := l.PFlat(p, l.zbot)
	vtop, vbot := l.Vs(mode)

	return (1.0/pflat-vtop)*(l.zbot-l.ztop)/(vbot-vtop) + l.ztop, nil
}

// Propagate tests traversal of the layer in the given entry direction.
func (l *GradientLayer) Propagate(p float64, mode core.Mode, direction core.Direction) (core.Direction, error) {
	return layerPropagate(l, p, mode, direction)
}

// Split cuts the layer at an interior depth, both halves keeping the
// index; the cut material is interpolated at the split depth.
func (l *GradientLayer) Split(z float64) (Layer, Layer) {
	mmid := l.MaterialAt(z)
	upper := NewGradientLayer(l.ztop, z, l.mtop, mmid, l.name, l.r)
	lower := NewGradientLayer(z, l.zbot, mmid, l.mbot, l.name, l.r)
	upper.index = l.index
	lower.index = l.index

	return upper, lower
}

// String renders the layer with its calculation-mode tag: [P] potential
// interpolation, [G] gradient flat-earth fallback.
func (l *GradientLayer) String() string {
	name := ""
	if l.name != "" {
		name = l.name + " "
	}
	calcmode := "G"
	if l.usePotInt {
		calcmode = "P"
	}

	return fmt.Sprintf("  (%d) gradient layer %s(%g km - %g km) [%s]\n    %s\n    %s",
		l.index, name, l.ztop/core.Km, l.zbot/core.Km, calcmode, l.mtop, l.mbot)
}
