package trace

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/internal/xmath"
	"github.com/katalvlaran/layercake/model"
	"github.com/katalvlaran/layercake/phase"
)

// PXT is one interpolated solution: epicentral distance [deg], spherical
// ray parameter [s/rad] and travel time [s].
type PXT struct {
	X float64
	P float64
	T float64
}

// ZXT is one point of a depth profile along a ray path: depth [m] with the
// accumulated distance [deg] and travel time [s] down to it.
type ZXT struct {
	Z float64
	X float64
	T float64
}

// RayPath is a fan of rays running through a common sequence of layers and
// discontinuity interactions. Paths are produced by Path and GatherPaths;
// the valid ray parameter range is attached during fan discovery.
type RayPath struct {
	model     *model.LayeredModel
	phase     *phase.Def
	usedPhase *phase.Def
	zstart    float64
	zstop     float64

	elements []pathElement

	havePRange bool
	pmin, pmax float64
	prangeDP   float64

	// sampled fan, filled lazily by analyse
	p, x, t                []float64
	xmin, xmax, tmin, tmax float64
	monotonX, monotonT     int

	splinePX, splinePT *pSpline
}

func newRayPath(m *model.LayeredModel, ph *phase.Def, zstart, zstop float64) *RayPath {
	return &RayPath{
		model:  m,
		phase:  ph,
		zstart: zstart,
		zstop:  zstop,
	}
}

func (r *RayPath) append(el pathElement) { r.elements = append(r.elements, el) }

// Phase is the (model adapted) phase definition the path was traced with.
func (r *RayPath) Phase() *phase.Def { return r.phase }

// UsedPhase is the phase the ray actually realized, with implicit
// interactions made explicit.
func (r *RayPath) UsedPhase() *phase.Def { return r.usedPhase }

// ZStart and ZStop are the source and receiver depths [m].
func (r *RayPath) ZStart() float64 { return r.zstart }
func (r *RayPath) ZStop() float64  { return r.zstop }

// SetPRange attaches the valid ray parameter range and the fan sampling
// step, invalidating any previous analysis.
func (r *RayPath) SetPRange(pmin, pmax, dp float64) {
	r.pmin, r.pmax, r.prangeDP = pmin, pmax, dp
	r.havePRange = true
	r.p, r.x, r.t = nil, nil, nil
	r.splinePX, r.splinePT = nil, nil
}

// PMin and PMax are the bounds of the valid ray parameter range [s/rad].
func (r *RayPath) PMin() (float64, error) {
	if !r.havePRange {
		return 0, ErrPRangeNotSet
	}

	return r.pmin, nil
}

func (r *RayPath) PMax() (float64, error) {
	if !r.havePRange {
		return 0, ErrPRangeNotSet
	}

	return r.pmax, nil
}

// XMin, XMax, TMin and TMax are the distance and travel time extremes over
// the sampled fan.
func (r *RayPath) XMin() (float64, error) { return r.analysed(&r.xmin) }
func (r *RayPath) XMax() (float64, error) { return r.analysed(&r.xmax) }
func (r *RayPath) TMin() (float64, error) { return r.analysed(&r.tmin) }
func (r *RayPath) TMax() (float64, error) { return r.analysed(&r.tmax) }

func (r *RayPath) analysed(v *float64) (float64, error) {
	if err := r.analyse(); err != nil {
		return 0, err
	}

	return *v, nil
}

// Straights returns the ray segments of the path, in order.
func (r *RayPath) Straights() []*Straight {
	var out []*Straight
	for _, el := range r.elements {
		if s, ok := el.(*Straight); ok {
			out = append(out, s)
		}
	}

	return out
}

// Kinks returns the discontinuity interactions of the path, in order.
func (r *RayPath) Kinks() []*Kink {
	var out []*Kink
	for _, el := range r.elements {
		if k, ok := el.(*Kink); ok {
			out = append(out, k)
		}
	}

	return out
}

// FirstStraight and LastStraight return the boundary segments, nil on an
// empty path.
func (r *RayPath) FirstStraight() *Straight {
	for _, el := range r.elements {
		if s, ok := el.(*Straight); ok {
			return s
		}
	}

	return nil
}

func (r *RayPath) LastStraight() *Straight {
	for i := len(r.elements) - 1; i >= 0; i-- {
		if s, ok := r.elements[i].(*Straight); ok {
			return s
		}
	}

	return nil
}

// XT accumulates distance [deg] and travel time [s] over all segments for
// ray parameter p.
func (r *RayPath) XT(p float64) (x, t float64) {
	for _, s := range r.Straights() {
		sx, st := s.XT(p)
		x += sx
		t += st
	}

	return x, t
}

// ZXT samples the depth profile of the path for ray parameter p: the
// entry depth of every segment with the distance and time accumulated so
// far, closed by the exit point of the last segment.
func (r *RayPath) ZXT(p float64) []ZXT {
	straights := r.Straights()
	if len(straights) == 0 {
		return nil
	}

	out := make([]ZXT, 0, len(straights)+1)
	var sx, st float64
	for _, s := range straights {
		out = append(out, ZXT{Z: s.ZIn(), X: sx, T: st})
		x, t := s.XT(p)
		sx += x
		st += t
	}
	out = append(out, ZXT{Z: straights[len(straights)-1].ZOut(), X: sx, T: st})

	return out
}

// Efficiency is the product of all scattering coefficients along the path.
func (r *RayPath) Efficiency(p float64) float64 {
	eff := 1.0
	for _, k := range r.Kinks() {
		eff *= k.Efficiency(p)
	}

	return eff
}

// Spreading is the geometrical spreading factor of the ray tube around
// ray parameter p. It returns NaN for a fan too narrow to form a tube.
func (r *RayPath) Spreading(p float64) (float64, error) {
	if !r.havePRange {
		return 0, ErrPRangeNotSet
	}
	dp := r.prangeDP * 0.01
	if r.pmax-r.pmin <= dp {
		return math.NaN(), nil
	}
	if p+dp > r.pmax {
		p -= dp
	}

	x0, _ := r.XT(p)
	x1, _ := r.XT(p + dp)
	x0 *= core.D2R
	x1 *= core.D2R
	dpdx := dp / (x1 - x0)

	x := x0
	if x == 0 {
		x = x1
		p = dp
	}

	first := r.FirstStraight()
	last := r.LastStraight()
	radius := r.model.EarthRadius()
	uin := first.UIn()
	denom := 4.0 * math.Pi * math.Sin(x) *
		(radius - first.ZIn()) * math.Pow(radius-last.ZOut(), 2) *
		uin * uin *
		math.Abs(math.Cos(first.AngleIn(p)*core.D2R)) *
		math.Abs(math.Cos(last.AngleOut(p)*core.D2R))

	return math.Abs(dpdx) * first.PFlatIn(p) / denom, nil
}

// makeP samples the valid ray parameter range with at least nmin points.
func (r *RayPath) makeP(nmin int) []float64 {
	n := int(math.Round((r.pmax-r.pmin)/r.prangeDP)) + 1
	if n < nmin {
		n = nmin
	}
	pp := make([]float64, n)
	floats.Span(pp, r.pmin, r.pmax)

	return pp
}

// analyse samples the fan once and classifies the monotonicity of the
// distance and travel time curves.
func (r *RayPath) analyse() error {
	if r.p != nil {
		return nil
	}
	if !r.havePRange {
		return ErrPRangeNotSet
	}

	p := r.makeP(10)
	x := make([]float64, len(p))
	t := make([]float64, len(p))
	for i, pv := range p {
		x[i], t[i] = r.XT(pv)
	}
	r.p, r.x, r.t = p, x, t
	r.xmin, r.xmax = floats.Min(x), floats.Max(x)
	r.tmin, r.tmax = floats.Min(t), floats.Max(t)
	r.monotonX = xmath.Monotony(xmath.Diffs(x))
	r.monotonT = xmath.Monotony(xmath.Diffs(t))

	return nil
}

// interpolateAt solves grid(p) == v by linear interpolation and evaluates
// a and b at each solution. Monotone grids yield at most one solution;
// non-monotone grids are scanned interval by interval and may yield
// several.
func interpolateAt(v float64, grid, a, b []float64, mono int) [][2]float64 {
	switch mono {
	case 1, -1:
		g, av, bv := grid, a, b
		if mono == -1 {
			g, av, bv = xmath.Reversed(grid), xmath.Reversed(a), xmath.Reversed(b)
		}
		ra := xmath.Interp(v, g, av)
		if math.IsNaN(ra) {
			return nil
		}

		return [][2]float64{{ra, xmath.Interp(v, g, bv)}}
	default:
		var out [][2]float64
		for i := 0; i+1 < len(grid); i++ {
			lo, hi := grid[i], grid[i+1]
			if lo == hi {
				continue
			}
			if (lo <= v && v < hi) || (hi <= v && v < lo) {
				w := (v - lo) / (hi - lo)
				out = append(out, [2]float64{
					(1-w)*a[i] + w*a[i+1],
					(1-w)*b[i] + w*b[i+1],
				})
			}
		}

		return out
	}
}

// InterpolateX2PTLinear finds the rays of the fan arriving at the given
// distances [deg] by piecewise linear interpolation of the sampled fan.
func (r *RayPath) InterpolateX2PTLinear(xs []float64) ([]PXT, error) {
	if err := r.analyse(); err != nil {
		return nil, err
	}

	var out []PXT
	for _, x := range xs {
		for _, pt := range interpolateAt(x, r.x, r.p, r.t, r.monotonX) {
			out = append(out, PXT{X: x, P: pt[0], T: pt[1]})
		}
	}

	return out, nil
}

// InterpolateT2PXLinear finds the rays of the fan arriving at the given
// travel times [s].
func (r *RayPath) InterpolateT2PXLinear(ts []float64) ([]PXT, error) {
	if err := r.analyse(); err != nil {
		return nil, err
	}

	var out []PXT
	for _, t := range ts {
		for _, px := range interpolateAt(t, r.t, r.p, r.x, r.monotonT) {
			out = append(out, PXT{X: px[1], P: px[0], T: t})
		}
	}

	return out, nil
}

// Fingerprint identifies the layer/interaction sequence of the path. Two
// paths with equal fingerprints belong to the same fan.
func (r *RayPath) Fingerprint() uint64 {
	h := fnv.New64a()
	for _, el := range r.elements {
		el.hashInto(h)
	}
	_, _ = h.Write([]byte(r.phase.Definition()))

	return h.Sum64()
}

// Equal reports whether two paths run through the same layer and
// interaction sequence.
func (r *RayPath) Equal(other *RayPath) bool {
	return len(r.elements) == len(other.elements) && r.Fingerprint() == other.Fingerprint()
}

// String renders the path as the phase definition, the realized phase and
// the sequence of traversed layer indices with interaction symbols, turning
// layers marked as (start-turn-end).
func (r *RayPath) String() string {
	var b strings.Builder
	startI, endI, turnI := -1, -1, -1

	appendLayers := func() {
		switch {
		case startI == endI && (turnI < 0 || turnI == startI):
			fmt.Fprintf(&b, "%d", startI)
		case turnI >= 0:
			fmt.Fprintf(&b, "(%d-%d-%d)", startI, turnI, endI)
		default:
			fmt.Fprintf(&b, "(%d-%d)", startI, endI)
		}
	}

	for _, el := range r.elements {
		switch e := el.(type) {
		case *Straight:
			if startI < 0 {
				startI = e.layer.Index()
			}
			if e.directionIn != e.directionOut {
				turnI = e.layer.Index()
			}
			endI = e.layer.Index()
		case *Kink:
			if startI >= 0 {
				appendLayers()
				startI, turnI = -1, -1
			}
			b.WriteString(e.String())
		}
	}
	if startI >= 0 {
		appendLayers()
	}

	used := ""
	if r.usedPhase != nil {
		used = fmt.Sprintf("(%s)", r.usedPhase.UsedRepr())
	}

	return fmt.Sprintf("%-15s %-17s %s", r.phase.Definition(), used, b.String())
}

// Describe summarizes the path with its distance, time and ray parameter
// ranges.
func (r *RayPath) Describe() (string, error) {
	if err := r.analyse(); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s\n - x range: %g %g\n - t range: %g %g\n - p range: %g %g\n",
		r, r.xmin, r.xmax, r.tmin, r.tmax, r.pmin, r.pmax), nil
}
