package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
)

// HomogeneousLayer is a layer of constant material.
type HomogeneousLayer struct {
	baseLayer
	m material.Material
}

// NewHomogeneousLayer builds a homogeneous layer between ztop and zbot.
func NewHomogeneousLayer(ztop, zbot float64, m material.Material, name string, earthRadius float64) *HomogeneousLayer {
	return &HomogeneousLayer{
		baseLayer: newBaseLayer(ztop, zbot, m, m, name, earthRadius),
		m:         m,
	}
}

// MaterialAt returns the layer material, independent of depth.
func (l *HomogeneousLayer) MaterialAt(float64) material.Material { return l.m }

// U returns the constant slowness of the mode, independent of depth.
func (l *HomogeneousLayer) U(mode core.Mode, _ float64) float64 {
	if mode == core.P {
		return 1.0 / l.m.Vp
	}

	return 1.0 / l.m.Vs
}

// Test checks if the wave mode can exist at depth z for ray parameter p.
func (l *HomogeneousLayer) Test(p float64, mode core.Mode, z float64) bool {
	return layerTest(l, p, mode, z)
}

// XT integrates distance [deg] and time [s] across the layer.
func (l *HomogeneousLayer) XT(p float64, mode core.Mode) (x, t float64) {
	if l.usePotInt {
		return l.xtPotInt(p, mode, false, 0, 0)
	}

	return l.xtFlat(p, mode, l.zbot-l.ztop)
}

// XTPart integrates over the [z1, z2] part of the layer.
func (l *HomogeneousLayer) XTPart(p float64, mode core.Mode, z1, z2 float64) (x, t float64) {
	if l.usePotInt {
		return l.xtPotInt(p, mode, true, z1, z2)
	}

	return l.xtFlat(p, mode, math.Abs(z2-z1))
}

// xtFlat is the flat-earth fallback for layers without a usable potential
// interpolation fit.
func (l *HomogeneousLayer) xtFlat(p float64, mode core.Mode, dz float64) (x, t float64) {
	u := l.U(mode, 0)
	pflat := l.PFlat(p, l.zbot)
	eps := u * 0.001
	denom := math.Sqrt(u*u-pflat*pflat) + eps

	x = core.R2D * pflat / (l.r - l.zmid) * dz / denom
	t = u * u * dz / denom

	return x, t
}

// ZTurn returns the turning depth; a homogeneous layer only turns rays
// through the spherical potential interpolation fit.
func (l *HomogeneousLayer) ZTurn(p float64, mode core.Mode) (float64, error) {
	if !l.usePotInt {
		return 0, ErrDoesNotTurn
	}

	return l.zturnPotInt(p, mode), nil
}

// Propagate tests traversal of the layer in the given entry direction.
func (l *HomogeneousLayer) Propagate(p float64, mode core.Mode, direction core.Direction) (core.Direction, error) {
	return layerPropagate(l, p, mode, direction)
}

// Split cuts the layer at an interior depth, both halves keeping the index.
func (l *HomogeneousLayer) Split(z float64) (Layer, Layer) {
	upper := NewHomogeneousLayer(l.ztop, z, l.m, l.name, l.r)
	lower := NewHomogeneousLayer(z, l.zbot, l.m, l.name, l.r)
	upper.index = l.index
	lower.index = l.index

	return upper, lower
}

// String renders the layer with its calculation-mode tag: [P] potential
// interpolation, [H] homogeneous flat-earth fallback.
func (l *HomogeneousLayer) String() string {
	name := ""
	if l.name != "" {
		name = l.name + " "
	}
	calcmode := "H"
	if l.usePotInt {
		calcmode = "P"
	}

	return fmt.Sprintf("  (%d) homogeneous layer %s(%g km - %g km) [%s]\n    %s",
		l.index, name, l.ztop/core.Km, l.zbot/core.Km, calcmode, l.m)
}
