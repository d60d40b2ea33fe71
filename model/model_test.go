package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
	"github.com/katalvlaran/layercake/model"
	"github.com/katalvlaran/layercake/phase"
)

func crustMaterial() material.Material {
	return material.MustNew(
		material.WithVp(6000), material.WithVs(3464), material.WithRho(2700))
}

func mantleMaterial() material.Material {
	return material.MustNew(
		material.WithVp(8000), material.WithVs(4600), material.WithRho(3300))
}

// crustModel is a 35 km homogeneous crust over a homogeneous half space,
// separated by a named moho.
func crustModel(t *testing.T) *model.LayeredModel {
	t.Helper()
	crust, mantle := crustMaterial(), mantleMaterial()
	m, err := model.FromScanlines([]model.Scanline{
		{Z: 0, Material: crust},
		{Z: 35 * core.Km, Material: crust},
		{Z: 35 * core.Km, Material: mantle, Name: "moho"},
		{Z: 250 * core.Km, Material: mantle},
	})
	require.NoError(t, err)

	return m
}

// TestFromScanlines_Structure checks element ordering and kinds.
func TestFromScanlines_Structure(t *testing.T) {
	m := crustModel(t)

	assert.Equal(t, 2, m.NLayers())

	discos := m.Discontinuities()
	require.Len(t, discos, 2)
	assert.Equal(t, "surface", discos[0].Name())
	assert.Equal(t, "moho", discos[1].Name())
	assert.InDelta(t, 35*core.Km, discos[1].Z(), 1e-9)

	layers := m.Layers(core.Down)
	require.Len(t, layers, 2)
	assert.IsType(t, &model.HomogeneousLayer{}, layers[0])
	assert.Equal(t, 0, layers[0].Index())
	assert.Equal(t, 1, layers[1].Index())
	assert.InDelta(t, 250*core.Km, layers[1].ZBot(), 1e-9)

	up := m.Layers(core.Up)
	assert.Equal(t, layers[1].Index(), up[0].Index())
}

// TestFromScanlines_GradientLayer builds a gradient where materials differ
// across a depth step.
func TestFromScanlines_GradientLayer(t *testing.T) {
	m, err := model.FromScanlines([]model.Scanline{
		{Z: 0, Material: crustMaterial()},
		{Z: 35 * core.Km, Material: mantleMaterial()},
	})
	require.NoError(t, err)

	layers := m.Layers(core.Down)
	require.Len(t, layers, 1)
	assert.IsType(t, &model.GradientLayer{}, layers[0])
}

// TestFromScanlines_BadDepthOrder rejects profiles going back up.
func TestFromScanlines_BadDepthOrder(t *testing.T) {
	_, err := model.FromScanlines([]model.Scanline{
		{Z: 0, Material: crustMaterial()},
		{Z: 35 * core.Km, Material: crustMaterial()},
		{Z: 10 * core.Km, Material: crustMaterial()},
	})
	assert.ErrorIs(t, err, model.ErrBadScanlines)
}

// TestLayeredModel_MaterialLookup resolves the material at an interface
// depth according to the traversal direction.
func TestLayeredModel_MaterialLookup(t *testing.T) {
	m := crustModel(t)

	down, err := m.Material(35*core.Km, core.Down)
	require.NoError(t, err)
	assert.InDelta(t, 6000.0, down.Vp, 1e-9, "downward lookup sees the crust side")

	up, err := m.Material(35*core.Km, core.Up)
	require.NoError(t, err)
	assert.InDelta(t, 8000.0, up.Vp, 1e-9, "upward lookup sees the mantle side")

	_, err = m.Material(400*core.Km, core.Down)
	assert.ErrorIs(t, err, model.ErrOutOfBounds)
}

// TestLayeredModel_MinMax scans material extremes over all layers.
func TestLayeredModel_MinMax(t *testing.T) {
	m := crustModel(t)
	assert.InDelta(t, 6000.0, m.Min(model.ParamVp), 1e-9)
	assert.InDelta(t, 8000.0, m.Max(model.ParamVp), 1e-9)
	assert.InDelta(t, 2700.0, m.Min(model.ParamRho), 1e-9)
}

// TestLayeredModel_DiscontinuityLookup finds discontinuities by name and by
// nearest depth.
func TestLayeredModel_DiscontinuityLookup(t *testing.T) {
	m := crustModel(t)

	d, err := m.DiscontinuityByName("moho")
	require.NoError(t, err)
	assert.InDelta(t, 35*core.Km, d.Z(), 1e-9)

	near, err := m.DiscontinuityNear(30 * core.Km)
	require.NoError(t, err)
	assert.Equal(t, "moho", near.Name())

	_, err = m.DiscontinuityByName("cmb")
	var nf *model.DiscontinuityNotFoundError
	assert.ErrorAs(t, err, &nf)
}

// TestLayeredModel_AdaptPhase resolves named and numeric knee depths to the
// literal depths of model discontinuities.
func TestLayeredModel_AdaptPhase(t *testing.T) {
	m := crustModel(t)

	adapted, err := m.AdaptPhase(phase.MustParse("Pv(moho)p"))
	require.NoError(t, err)
	knees := adapted.Knees()
	require.Len(t, knees, 1)
	assert.True(t, knees[0].Depth.IsNumeric())
	assert.InDelta(t, 35*core.Km, knees[0].Depth.Z(), 1e-9)

	snapped, err := m.AdaptPhase(phase.MustParse("Pv33p"))
	require.NoError(t, err)
	assert.InDelta(t, 35*core.Km, snapped.Knees()[0].Depth.Z(), 1e-9,
		"numeric knee snaps to the nearest discontinuity")

	_, err = m.AdaptPhase(phase.MustParse("Pv(cmb)p"))
	var nf *model.DiscontinuityNotFoundError
	assert.ErrorAs(t, err, &nf)
}

// TestHomogeneousLayer_VerticalTravelTime checks the p=0 limit against the
// closed form dz/v.
func TestHomogeneousLayer_VerticalTravelTime(t *testing.T) {
	m := crustModel(t)
	l := m.Layers(core.Down)[0]

	x, tt := l.XT(0, core.P)
	assert.InDelta(t, 0.0, x, 1e-12)
	assert.InDelta(t, 35000.0/6000.0, tt, 1e-6)

	assert.Contains(t, l.String(), "[P]", "constant velocity fits the potential interpolation")
}

// TestHomogeneousLayer_XTPart restricts the integral to part of the layer.
func TestHomogeneousLayer_XTPart(t *testing.T) {
	m := crustModel(t)
	l := m.Layers(core.Down)[0]

	_, full := l.XT(0, core.P)
	_, upper := l.XTPart(0, core.P, 0, 17.5*core.Km)
	_, lower := l.XTPart(0, core.P, 17.5*core.Km, 35*core.Km)
	assert.InDelta(t, full, upper+lower, 1e-6)
}

// TestGradientLayer_ZTurn places the turning depth where the interpolated
// velocity matches the ray parameter.
func TestGradientLayer_ZTurn(t *testing.T) {
	l := model.NewGradientLayer(0, 35*core.Km, crustMaterial(), mantleMaterial(),
		"", model.DefaultEarthRadius)
	assert.Contains(t, l.String(), "[G]", "steep gradient falls back to flat-earth integration")

	// 1/pflat equals the velocity at 20 km depth.
	p := (model.DefaultEarthRadius - 35*core.Km) / (6000.0 + 20.0/35.0*2000.0)
	zturn, err := l.ZTurn(p, core.P)
	require.NoError(t, err)
	assert.InDelta(t, 20*core.Km, zturn, 1.0)

	v := 1.0 / l.U(core.P, zturn)
	assert.InDelta(t, 1.0/l.PFlat(p, 35*core.Km), v, 1e-6)
}

// TestGradientLayer_Propagate covers crossing, turning and rejection.
func TestGradientLayer_Propagate(t *testing.T) {
	l := model.NewGradientLayer(0, 35*core.Km, crustMaterial(), mantleMaterial(),
		"", model.DefaultEarthRadius)

	out, err := l.Propagate(500, core.P, core.Down)
	require.NoError(t, err)
	assert.Equal(t, core.Down, out, "small ray parameter crosses")

	out, err = l.Propagate(900, core.P, core.Down)
	require.NoError(t, err)
	assert.Equal(t, core.Up, out, "intermediate ray parameter turns")

	_, err = l.Propagate(1100, core.P, core.Down)
	var cpe *model.CannotPropagateError
	assert.ErrorAs(t, err, &cpe)
}

// TestPsvSurfaceEnergy_NormalIncidence reflects all energy back into the
// incident mode at vertical incidence.
func TestPsvSurfaceEnergy_NormalIncidence(t *testing.T) {
	e := model.PsvSurfaceEnergy(crustMaterial(), 0)

	ip, jp := model.PsvSurfaceIndex(core.P, core.P)
	ips, jps := model.PsvSurfaceIndex(core.P, core.S)
	assert.InDelta(t, 1.0, e[ip][jp], 1e-2)
	assert.InDelta(t, 0.0, e[ips][jps], 1e-6)

	is, js := model.PsvSurfaceIndex(core.S, core.S)
	assert.InDelta(t, 1.0, e[is][js], 1e-2)
}

// TestPsvSolidEnergy_IdenticalMaterials transmits everything across a
// contrast-free interface.
func TestPsvSolidEnergy_IdenticalMaterials(t *testing.T) {
	m := crustMaterial()
	e := model.PsvSolidEnergy(m, m, 1e-5)

	it, jt := model.PsvSolidIndex(core.Down, core.Down, core.P, core.P)
	ir, jr := model.PsvSolidIndex(core.Down, core.Up, core.P, core.P)
	assert.InDelta(t, 1.0, e[it][jt], 1e-2, "full transmission")
	assert.InDelta(t, 0.0, e[ir][jr], 1e-4, "no reflection")
}

// TestInterface_Propagate respects the slowness condition on the far side.
func TestInterface_Propagate(t *testing.T) {
	m := crustModel(t)
	moho, err := m.DiscontinuityByName("moho")
	require.NoError(t, err)

	// Crossing into the faster mantle requires p below its critical value.
	pc := (model.DefaultEarthRadius - 35*core.Km) / 8000.0
	assert.Equal(t, core.Down, moho.Propagate(pc*0.9, core.P, core.Down))
	assert.Equal(t, core.Up, moho.Propagate(pc*1.1, core.P, core.Down),
		"supercritical ray is turned back")
	assert.Equal(t, core.Up, moho.Propagate(pc*1.1, core.P, core.Up),
		"going up into the slower crust always works")
}

// TestSurface_Propagate never changes the direction.
func TestSurface_Propagate(t *testing.T) {
	m := crustModel(t)
	surf, err := m.DiscontinuityByName("surface")
	require.NoError(t, err)
	assert.Equal(t, core.Up, surf.Propagate(500, core.P, core.Up))
}

// TestWalker_Goto positions the cursor on the layer containing a depth.
func TestWalker_Goto(t *testing.T) {
	m := crustModel(t)
	w := m.Walker(nil)

	require.NoError(t, w.Goto(10*core.Km, core.Down))
	l, ok := w.Current().(model.Layer)
	require.True(t, ok)
	assert.Equal(t, 0, l.Index())

	require.NoError(t, w.Goto(100*core.Km, core.Down))
	l = w.Current().(model.Layer)
	assert.Equal(t, 1, l.Index())

	assert.ErrorIs(t, w.Goto(400*core.Km, core.Down), model.ErrOutOfBounds)
}

// TestWalker_Bounds reports the model edges.
func TestWalker_Bounds(t *testing.T) {
	m := crustModel(t)
	w := m.Walker(nil)

	assert.ErrorIs(t, w.Up(), model.ErrSurfaceReached)
	for w.Down() == nil {
	}
	assert.ErrorIs(t, w.Down(), model.ErrBottomReached)
}

// TestWalker_Splits inserts boundaries at the requested depths, keeping
// layer indices stable.
func TestWalker_Splits(t *testing.T) {
	m := crustModel(t)

	w := m.Walker([]float64{10 * core.Km})
	require.NoError(t, w.Goto(5*core.Km, core.Down))
	l := w.Current().(model.Layer)
	assert.Equal(t, 0, l.Index())
	assert.InDelta(t, 10*core.Km, l.ZBot(), 1e-9)

	// A break at an existing boundary splits nothing.
	w2 := m.Walker([]float64{35 * core.Km})
	require.NoError(t, w2.Goto(5*core.Km, core.Down))
	assert.InDelta(t, 35*core.Km, w2.Current().(model.Layer).ZBot(), 1e-9)
}

// TestLayeredModel_String lists all elements.
func TestLayeredModel_String(t *testing.T) {
	s := crustModel(t).String()
	assert.True(t, strings.HasPrefix(s, "surface"))
	assert.Contains(t, s, "moho")
	assert.Contains(t, s, "homogeneous layer")
}
