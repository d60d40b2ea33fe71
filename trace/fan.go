package trace

import (
	"sort"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/model"
	"github.com/katalvlaran/layercake/phase"
)

// FanOptions control ray path fan discovery.
type FanOptions struct {
	// NP controls the granularity of fan drafting: the ray parameter
	// sampling step attached to discovered paths is pmax/(NP-1).
	NP int

	// MaxDepth caps the recursive bisection of the ray parameter interval.
	MaxDepth int

	// AbandonDepth is the recursion depth below which an interval whose
	// both endpoints fail to produce a path is abandoned.
	AbandonDepth int
}

// DefaultFanOptions returns the standard fan discovery configuration.
func DefaultFanOptions() FanOptions {
	return FanOptions{NP: 1000, MaxDepth: 18, AbandonDepth: 7}
}

func (o FanOptions) normalized() FanOptions {
	d := DefaultFanOptions()
	if o.NP < 2 {
		o.NP = d.NP
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.AbandonDepth <= 0 {
		o.AbandonDepth = d.AbandonDepth
	}

	return o
}

// Interpolation selects how Arrivals inverts the sampled distance curve.
type Interpolation int

const (
	// Linear interpolates piecewise linearly between fan samples.
	Linear Interpolation = iota
	// Spline fits natural cubic splines through the fan samples.
	Spline
)

// ArrivalOptions control arrival computation on top of fan discovery.
type ArrivalOptions struct {
	Fan FanOptions

	// Refine sharpens interpolated arrivals by bisection.
	Refine bool

	// Interpolation is the inversion method, Linear by default.
	Interpolation Interpolation
}

// DefaultArrivalOptions returns the standard arrival configuration.
func DefaultArrivalOptions() ArrivalOptions {
	return ArrivalOptions{Fan: DefaultFanOptions(), Refine: true, Interpolation: Linear}
}

// fanProbe memoizes Path outcomes during the recursive bisection of one
// phase's ray parameter interval.
type fanProbe struct {
	m      *model.LayeredModel
	ph     *phase.Def
	zstart float64
	zstop  float64

	cached map[float64]*RayPath
	paths  map[uint64]*fanEntry
	order  []uint64
	err    error
}

type fanEntry struct {
	path *RayPath
	ps   []float64
}

func (f *fanProbe) pToPath(p float64) *RayPath {
	if f.err != nil {
		return nil
	}
	if path, ok := f.cached[p]; ok {
		return path
	}

	path, err := Path(f.m, p, f.ph, f.zstart, f.zstop)
	if err != nil {
		if !expectedFailure(err) {
			f.err = err
		}
		f.cached[p] = nil

		return nil
	}

	fp := path.Fingerprint()
	entry, ok := f.paths[fp]
	if !ok {
		entry = &fanEntry{path: path}
		f.paths[fp] = entry
		f.order = append(f.order, fp)
	}
	entry.ps = append(entry.ps, p)
	f.cached[p] = entry.path

	return entry.path
}

func (f *fanProbe) recurse(pmin, pmax float64, depth int, opt FanOptions) {
	if depth > opt.MaxDepth || f.err != nil {
		return
	}
	path1 := f.pToPath(pmin)
	path2 := f.pToPath(pmax)
	if path1 == nil && path2 == nil && depth > opt.AbandonDepth {
		return
	}
	if path1 == nil || path2 == nil || path1.Fingerprint() != path2.Fingerprint() {
		mid := 0.5 * (pmin + pmax)
		f.recurse(pmin, mid, depth+1, opt)
		f.recurse(mid, pmax, depth+1, opt)
	}
}

// GatherPaths finds all distinct ray paths the given phases can take
// between fixed source and receiver depths, with their valid ray parameter
// ranges attached. Paths are sorted by minimum ray parameter.
func GatherPaths(m *model.LayeredModel, phases []*phase.Def, zstart, zstop float64, opt FanOptions) ([]*RayPath, error) {
	opt = opt.normalized()

	var out []*RayPath
	for _, ph := range phases {
		first := ph.FirstLeg()
		if first == nil {
			return nil, ErrNotPhaseConform
		}

		mat, err := m.Material(zstart, first.Departure.Flip())
		if err != nil {
			return nil, err
		}
		v := mat.Vp
		if first.Mode == core.S {
			v = mat.Vs
		}
		pmax := m.Radius(zstart) / v

		probe := &fanProbe{
			m:      m,
			ph:     ph,
			zstart: zstart,
			zstop:  zstop,
			cached: make(map[float64]*RayPath),
			paths:  make(map[uint64]*fanEntry),
		}
		probe.recurse(0.0, pmax, 0, opt)
		if probe.err != nil {
			return nil, probe.err
		}

		dp := pmax / float64(opt.NP-1)
		for _, fp := range probe.order {
			entry := probe.paths[fp]
			pmin, pmaxPath := entry.ps[0], entry.ps[0]
			for _, p := range entry.ps[1:] {
				if p < pmin {
					pmin = p
				}
				if p > pmaxPath {
					pmaxPath = p
				}
			}
			entry.path.SetPRange(pmin, pmaxPath, dp)
			out = append(out, entry.path)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].pmin < out[j].pmin })

	return out, nil
}

// Arrivals computes rays and travel times for the given epicentral
// distances [deg], sorted by distance then travel time.
func Arrivals(m *model.LayeredModel, distances []float64, phases []*phase.Def, zstart, zstop float64, opt ArrivalOptions) ([]*Ray, error) {
	paths, err := GatherPaths(m, phases, zstart, zstop, opt.Fan.normalized())
	if err != nil {
		return nil, err
	}

	var arrivals []*Ray
	for _, path := range paths {
		var solutions []PXT
		switch opt.Interpolation {
		case Spline:
			solutions, err = path.InterpolateX2PTSpline(distances)
		default:
			solutions, err = path.InterpolateX2PTLinear(distances)
		}
		if err != nil {
			return nil, err
		}
		for _, s := range solutions {
			arrivals = append(arrivals, &Ray{Path: path, P: s.P, X: s.X, T: s.T})
		}
	}

	if opt.Refine {
		for _, ray := range arrivals {
			if _, err := ray.Refine(); err != nil {
				return nil, err
			}
		}
	}

	SortRays(arrivals)

	return arrivals, nil
}
