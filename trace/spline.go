package trace

import (
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/katalvlaran/layercake/internal/xmath"
)

// splineRootRefine is the oversampling factor used when scanning a fitted
// spline for roots.
const splineRootRefine = 10

func (r *RayPath) updateSplines() error {
	if err := r.analyse(); err != nil {
		return err
	}
	if r.splinePX != nil {
		return nil
	}

	px := &pSpline{}
	if err := px.fit(r.p, r.x); err != nil {
		return err
	}
	pt := &pSpline{}
	if err := pt.fit(r.p, r.t); err != nil {
		return err
	}
	r.splinePX, r.splinePT = px, pt

	return nil
}

// InterpolateX2PTSpline finds the rays of the fan arriving at the given
// distances [deg] on natural cubic splines fitted through the sampled fan,
// which resolves multiple branches smoothly where the linear variant
// staircases.
func (r *RayPath) InterpolateX2PTSpline(xs []float64) ([]PXT, error) {
	if err := r.analyse(); err != nil {
		return nil, err
	}
	if r.pmax <= r.pmin {
		// a degenerate fan has no invertible distance curve
		return nil, nil
	}
	if err := r.updateSplines(); err != nil {
		return nil, err
	}

	var out []PXT
	for _, x := range xs {
		for _, p := range r.splinePX.roots(x, splineRootRefine*len(r.p)) {
			out = append(out, PXT{
				X: r.splinePX.at(p),
				P: p,
				T: r.splinePT.at(p),
			})
		}
	}

	return out, nil
}

// pSpline is a natural cubic spline y(p) over the sampled ray parameter
// grid, with root finding for y(p) == target.
type pSpline struct {
	nc         interp.NaturalCubic
	pmin, pmax float64
}

func (s *pSpline) fit(p, y []float64) error {
	if err := s.nc.Fit(p, y); err != nil {
		return err
	}
	s.pmin, s.pmax = p[0], p[len(p)-1]

	return nil
}

func (s *pSpline) at(p float64) float64 { return s.nc.Predict(p) }

// roots scans n intervals of the fitted range for sign changes of
// y(p) - target and sharpens each bracket by bisection.
func (s *pSpline) roots(target float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	f := func(p float64) float64 { return s.nc.Predict(p) - target }

	var roots []float64
	dp := (s.pmax - s.pmin) / float64(n)
	if dp <= 0 {
		return nil
	}
	prev := f(s.pmin)
	for i := 1; i <= n; i++ {
		p := s.pmin + float64(i)*dp
		cur := f(p)
		switch {
		case prev == 0:
			roots = append(roots, p-dp)
		case (prev > 0) != (cur > 0):
			root, _, err := xmath.Bisect(f, p-dp, p, 0)
			if err == nil {
				roots = append(roots, root)
			}
		case i == n && cur == 0:
			roots = append(roots, p)
		}
		prev = cur
	}

	// Neighbouring brackets can resolve to the same root.
	var dedup []float64
	for _, rt := range roots {
		if len(dedup) == 0 || math.Abs(rt-dedup[len(dedup)-1]) > dp*1e-6 {
			dedup = append(dedup, rt)
		}
	}

	return dedup
}
