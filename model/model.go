package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
	"github.com/katalvlaran/layercake/phase"
)

// DefaultEarthRadius is the mean Earth radius [m] used unless a model is
// built with WithEarthRadius.
const DefaultEarthRadius = 6371.0 * core.Km

// Options configure model construction.
type Options struct {
	// EarthRadius is the body radius [m].
	EarthRadius float64
}

// DefaultOptions returns the standard Earth configuration.
func DefaultOptions() Options {
	return Options{EarthRadius: DefaultEarthRadius}
}

// Option mutates Options.
type Option func(*Options)

// WithEarthRadius overrides the body radius [m], for non-Earth bodies.
func WithEarthRadius(r float64) Option {
	return func(o *Options) { o.EarthRadius = r }
}

// LayeredModel is a layer cake model: an ordered sequence of elements,
// surface first, layers alternating with discontinuities. It is built
// once with Append or FromScanlines and read-only afterwards.
type LayeredModel struct {
	radius   float64
	elements []Element

	nLayers int
	nDiscos int

	split map[string][]Element
}

// New creates an empty model.
func New(opts ...Option) *LayeredModel {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &LayeredModel{
		radius: o.EarthRadius,
		split:  make(map[string][]Element),
	}
}

// EarthRadius is the body radius the model was built with [m].
func (m *LayeredModel) EarthRadius() float64 { return m.radius }

// Radius is the radius at depth z [m].
func (m *LayeredModel) Radius(z float64) float64 { return m.radius - z }

// NLayers is the number of layers appended so far.
func (m *LayeredModel) NLayers() int { return m.nLayers }

// zeq tolerantly compares two depths.
func (m *LayeredModel) zeq(z1, z2 float64) bool { return math.Abs(z1-z2) < core.ZEps }

// Append adds a layer or discontinuity at the bottom of the model,
// assigning its stable index.
func (m *LayeredModel) Append(el Element) {
	switch e := el.(type) {
	case Layer:
		e.setIndex(m.nLayers)
		m.nLayers++
	case Discontinuity:
		e.setIndex(m.nDiscos)
		m.nDiscos++
	}
	m.elements = append(m.elements, el)
}

// Layers returns the layers in top-down (Down) or bottom-up (Up) order.
func (m *LayeredModel) Layers(direction core.Direction) []Layer {
	layers := make([]Layer, 0, m.nLayers)
	for _, el := range m.elements {
		if l, ok := el.(Layer); ok {
			layers = append(layers, l)
		}
	}
	if direction == core.Up {
		for i, j := 0, len(layers)-1; i < j; i, j = i+1, j-1 {
			layers[i], layers[j] = layers[j], layers[i]
		}
	}

	return layers
}

// LayerAt returns the first layer touching depth z with respect to the
// traversal order, or ErrOutOfBounds.
func (m *LayeredModel) LayerAt(z float64, direction core.Direction) (Layer, error) {
	for _, l := range m.Layers(direction) {
		if l.Contains(z) {
			return l, nil
		}
	}

	return nil, ErrOutOfBounds
}

// Material returns the material at depth z. At an interface, the material
// of the first layer in traversal order wins.
func (m *LayeredModel) Material(z float64, direction core.Direction) (material.Material, error) {
	l, err := m.LayerAt(z, direction)
	if err != nil {
		return material.Material{}, err
	}

	return l.MaterialAt(z), nil
}

// Discontinuities returns the discontinuities of the model, top down.
func (m *LayeredModel) Discontinuities() []Discontinuity {
	discos := make([]Discontinuity, 0, m.nDiscos)
	for _, el := range m.elements {
		if d, ok := el.(Discontinuity); ok {
			discos = append(discos, d)
		}
	}

	return discos
}

// DiscontinuityByName finds a discontinuity by name ("surface" included).
func (m *LayeredModel) DiscontinuityByName(name string) (Discontinuity, error) {
	for _, d := range m.Discontinuities() {
		if d.Name() == name {
			return d, nil
		}
	}

	return nil, &DiscontinuityNotFoundError{DepthOrName: name}
}

// DiscontinuityNear finds the discontinuity closest to depth z.
func (m *LayeredModel) DiscontinuityNear(z float64) (Discontinuity, error) {
	var best Discontinuity
	bestDist := math.Inf(1)
	for _, d := range m.Discontinuities() {
		if dist := math.Abs(d.Z() - z); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == nil {
		return nil, &DiscontinuityNotFoundError{DepthOrName: fmt.Sprintf("%g", z)}
	}

	return best, nil
}

// resolveDiscontinuity maps a phase depth onto a model discontinuity.
func (m *LayeredModel) resolveDiscontinuity(d phase.Depth) (Discontinuity, error) {
	if d.IsNumeric() {
		return m.DiscontinuityNear(d.Z())
	}

	return m.DiscontinuityByName(d.Name())
}

// Walker returns a fresh traversal cursor over the model with layers
// split at the given depths (depths at existing boundaries split
// nothing). The split element sequences are cached per sorted break set.
func (m *LayeredModel) Walker(breaks []float64) *Walker {
	sorted := append([]float64(nil), breaks...)
	sort.Float64s(sorted)

	var sb strings.Builder
	for _, br := range sorted {
		sb.WriteString(strconv.FormatFloat(br, 'g', -1, 64))
		sb.WriteByte(',')
	}
	key := sb.String()

	elements, ok := m.split[key]
	if !ok {
		elements = append([]Element(nil), m.elements...)
		for _, br := range sorted {
			for il, el := range elements {
				l, isLayer := el.(Layer)
				if !isLayer || !l.Inner(br) {
					continue
				}
				upper, lower := l.Split(br)
				rest := append([]Element{upper, lower}, elements[il+1:]...)
				elements = append(elements[:il:il], rest...)

				break
			}
		}
		m.split[key] = elements
	}

	return &Walker{elements: elements}
}

// AdaptPhase adapts a phase definition for use with this model: named
// knee depths and leg depth limits are resolved to the literal depths of
// the model's discontinuities, numeric knee depths are snapped to the
// nearest discontinuity. The given phase is left untouched.
func (m *LayeredModel) AdaptPhase(ph *phase.Def) (*phase.Def, error) {
	adapted := ph.Copy()
	for _, knee := range adapted.Knees() {
		if knee.AtSurface() {
			continue
		}
		d, err := m.resolveDiscontinuity(knee.Depth)
		if err != nil {
			return nil, err
		}
		knee.Depth = phase.NumericDepth(d.Z())
	}
	for _, leg := range adapted.Legs() {
		for _, dp := range []**phase.Depth{&leg.DepthMin, &leg.DepthMax} {
			if *dp == nil || !(*dp).IsNamed() {
				continue
			}
			d, err := m.resolveDiscontinuity(**dp)
			if err != nil {
				return nil, err
			}
			resolved := phase.NumericDepth(d.Z())
			*dp = &resolved
		}
	}

	return adapted, nil
}

// Param selects a material property for Min/Max queries.
type Param int

const (
	ParamVp Param = iota
	ParamVs
	ParamRho
	ParamQp
	ParamQs
)

func (p Param) get(m material.Material) float64 {
	switch p {
	case ParamVp:
		return m.Vp
	case ParamVs:
		return m.Vs
	case ParamRho:
		return m.Rho
	case ParamQp:
		return m.Qp
	default:
		return m.Qs
	}
}

// Min is the minimum value of the material property over the model.
func (m *LayeredModel) Min(param Param) float64 {
	v := math.Inf(1)
	for _, l := range m.Layers(core.Down) {
		v = math.Min(v, math.Min(param.get(l.MTop()), param.get(l.MBot())))
	}

	return v
}

// Max is the maximum value of the material property over the model.
func (m *LayeredModel) Max(param Param) float64 {
	v := math.Inf(-1)
	for _, l := range m.Layers(core.Down) {
		v = math.Max(v, math.Max(param.get(l.MTop()), param.get(l.MBot())))
	}

	return v
}

// String renders the model, one element per line.
func (m *LayeredModel) String() string {
	lines := make([]string, 0, len(m.elements))
	for _, el := range m.elements {
		lines = append(lines, fmt.Sprint(el))
	}

	return strings.Join(lines, "\n")
}

// Scanline is one sample of a velocity profile: the material reached at
// depth z, optionally naming the element it tops.
type Scanline struct {
	Z        float64
	Material material.Material
	Name     string
}

// FromScanlines builds a model from a depth-ordered velocity profile.
// The surface is implicit at depth 0. Consecutive entries at the same
// depth produce an Interface; a depth step produces a HomogeneousLayer
// when the adjacent materials match and a GradientLayer otherwise.
func FromScanlines(lines []Scanline, opts ...Option) (*LayeredModel, error) {
	m := New(opts...)
	for _, ln := range lines {
		if len(m.elements) == 0 {
			m.Append(NewSurface(0.0, ln.Material, m.radius))
			if !m.zeq(ln.Z, 0.0) {
				m.Append(NewHomogeneousLayer(0.0, ln.Z, ln.Material, ln.Name, m.radius))
			}

			continue
		}

		last := m.elements[len(m.elements)-1]
		if m.zeq(last.ZBot(), ln.Z) {
			l, ok := last.(Layer)
			if !ok {
				return nil, fmt.Errorf("%w: repeated depth %g without a layer in between", ErrBadScanlines, ln.Z)
			}
			m.Append(NewInterface(ln.Z, l.MBot(), ln.Material, ln.Name, m.radius))

			continue
		}
		if ln.Z < last.ZBot() {
			return nil, fmt.Errorf("%w: depth %g goes back up", ErrBadScanlines, ln.Z)
		}

		ztop := last.ZBot()
		var mtop material.Material
		switch e := last.(type) {
		case interface{ MBelow() material.Material }:
			mtop = e.MBelow()
		case Layer:
			mtop = e.MBot()
		}

		if mtop.Equal(ln.Material) {
			m.Append(NewHomogeneousLayer(ztop, ln.Z, ln.Material, ln.Name, m.radius))
		} else {
			m.Append(NewGradientLayer(ztop, ln.Z, mtop, ln.Material, ln.Name, m.radius))
		}
	}

	return m, nil
}
