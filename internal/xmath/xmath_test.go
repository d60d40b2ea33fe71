package xmath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/layercake/internal/xmath"
)

// TestBisect_SimpleRoot verifies convergence on a plain sign change.
func TestBisect_SimpleRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	root, count, err := xmath.Bisect(f, 0, 2, 1e-12)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, root, 1e-10, "root of x^2-2 on [0,2] is sqrt(2)")
	assert.Greater(t, count, 2, "iterations should have been spent")
}

// TestBisect_NoBracket verifies the same-sign rejection.
func TestBisect_NoBracket(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	_, _, err := xmath.Bisect(f, -1, 1, 0)
	assert.ErrorIs(t, err, xmath.ErrNoBracket)
}

// TestMonotony_Classification covers the three classes.
func TestMonotony_Classification(t *testing.T) {
	assert.Equal(t, 1, xmath.Monotony(xmath.Diffs([]float64{1, 2, 3, 4})))
	assert.Equal(t, -1, xmath.Monotony(xmath.Diffs([]float64{4, 3, 2, 1})))
	assert.Equal(t, 0, xmath.Monotony(xmath.Diffs([]float64{1, 3, 2})))
	assert.Equal(t, 0, xmath.Monotony(xmath.Diffs([]float64{1, 1, 2})), "flat steps break strictness")
}

// TestInterp_GridAndBounds checks interior interpolation and NaN fill.
func TestInterp_GridAndBounds(t *testing.T) {
	xp := []float64{0, 1, 2}
	fp := []float64{0, 10, 40}
	assert.InDelta(t, 5.0, xmath.Interp(0.5, xp, fp), 1e-12)
	assert.InDelta(t, 25.0, xmath.Interp(1.5, xp, fp), 1e-12)
	assert.True(t, math.IsNaN(xmath.Interp(-0.1, xp, fp)))
	assert.True(t, math.IsNaN(xmath.Interp(2.1, xp, fp)))
}

// TestReversed returns the slice back-to-front without touching the input.
func TestReversed(t *testing.T) {
	x := []float64{1, 2, 3}
	assert.Equal(t, []float64{3, 2, 1}, xmath.Reversed(x))
	assert.Equal(t, []float64{1, 2, 3}, x)
}
