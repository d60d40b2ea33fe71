// Package xmath collects the small numeric helpers shared by the public
// packages: scalar bisection root finding, monotonicity classification and
// generic linear interpolation.
package xmath

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// ErrNoBracket is returned by Bisect when f(a) and f(b) have the same sign.
var ErrNoBracket = errors.New("xmath: root is not bracketed by the given interval")

// defaultXTol is the interval width at which Bisect stops subdividing.
const defaultXTol = 1e-12

// Bisect finds a root of f within [a, b] by interval halving.
// f(a) and f(b) must have opposite signs (an exact zero at either endpoint
// is accepted). The returned count is the number of f evaluations spent.
func Bisect(f func(float64) float64, a, b float64, xtol float64) (root float64, count int, err error) {
	if xtol <= 0 {
		xtol = defaultXTol
	}

	fa := f(a)
	fb := f(b)
	count = 2
	if fa == 0 {
		return a, count, nil
	}
	if fb == 0 {
		return b, count, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, count, ErrNoBracket
	}

	for math.Abs(b-a) > xtol {
		mid := 0.5 * (a + b)
		fm := f(mid)
		count++
		if fm == 0 {
			return mid, count, nil
		}
		if (fm > 0) == (fa > 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}

	return 0.5 * (a + b), count, nil
}

// Monotony classifies a difference sequence: it returns +1 if all elements
// are positive (strictly increasing parent sequence), -1 if all are negative,
// and 0 otherwise.
func Monotony[F constraints.Float](diffs []F) int {
	n := len(diffs)
	p := 0
	for _, d := range diffs {
		switch {
		case d > 0:
			p++
		case d < 0:
			p--
		}
	}
	if p == n {
		return 1
	}
	if p == -n {
		return -1
	}

	return 0
}

// Diffs returns the first-difference sequence x[i+1]-x[i].
func Diffs[F constraints.Float](x []F) []F {
	if len(x) < 2 {
		return nil
	}
	d := make([]F, len(x)-1)
	for i := range d {
		d[i] = x[i+1] - x[i]
	}

	return d
}

// Interp linearly interpolates fp at x over the strictly increasing grid xp.
// Outside the grid it returns NaN, mirroring numpy.interp with NaN fill.
func Interp[F constraints.Float](x F, xp, fp []F) F {
	n := len(xp)
	if n == 0 || x < xp[0] || x > xp[n-1] {
		return F(math.NaN())
	}
	// Binary search for the bracketing interval.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xp[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	if xp[hi] == xp[lo] {
		return fp[lo]
	}
	w := (x - xp[lo]) / (xp[hi] - xp[lo])

	return (1-w)*fp[lo] + w*fp[hi]
}

// Reversed returns a reversed copy of x.
func Reversed[F constraints.Float](x []F) []F {
	r := make([]F, len(x))
	for i, v := range x {
		r[len(x)-1-i] = v
	}

	return r
}
