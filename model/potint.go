package model

import "math"

// potIntCoefs are the coefficients (a, b) of a potential interpolation
// c(z) = a*(R-z)^b fitted through two (radius, velocity) samples.
type potIntCoefs struct {
	a, b float64
}

// newPotIntCoefs fits c(r) = a*r^b through (r1, c1) and (r2, c2), r2 > r1.
// Fits with |b| > 10 are numerically unusable and fail with
// ErrBadPotIntCoefs, as do degenerate velocity pairs (one velocity zero).
func newPotIntCoefs(c1, c2, r1, r2 float64) (potIntCoefs, error) {
	eps := r2 * 1e-9
	c1c2 := 1.0
	if c1 != 0 || c2 != 0 {
		c1c2 = c1 / c2
	}
	b := math.Log(c1c2) / math.Log((r1+eps)/r2)
	if math.IsNaN(b) || math.Abs(b) > 10 {
		return potIntCoefs{}, ErrBadPotIntCoefs
	}
	a := c1 / math.Pow(r1+eps, b)

	return potIntCoefs{a: a, b: b}, nil
}
