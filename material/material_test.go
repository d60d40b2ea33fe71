package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/layercake/material"
)

// TestNew_Defaults verifies the standard crustal fallbacks.
func TestNew_Defaults(t *testing.T) {
	m, err := material.New()
	require.NoError(t, err)
	assert.Equal(t, 5800.0, m.Vp)
	assert.InDelta(t, 0.25, m.Poisson(), 1e-12, "default Poisson ratio")
	assert.Equal(t, 2600.0, m.Rho)
	assert.Equal(t, 1456.0, m.Qp)
	assert.Equal(t, 600.0, m.Qs)
}

// TestNew_ConflictingCombinations walks the rejection table.
func TestNew_ConflictingCombinations(t *testing.T) {
	cases := []struct {
		name string
		opts []material.Option
	}{
		{"velocities+poisson", []material.Option{material.WithVp(6000), material.WithVs(3500), material.WithPoisson(0.25)}},
		{"velocities+lame", []material.Option{material.WithVp(6000), material.WithVs(3500), material.WithLame(1e10, 1e10)}},
		{"lame+poisson", []material.Option{material.WithLame(1e10, 1e10), material.WithPoisson(0.3)}},
		{"vp+lame", []material.Option{material.WithVp(6000), material.WithLame(1e10, 1e10)}},
		{"vs+lame", []material.Option{material.WithVs(3500), material.WithLame(1e10, 1e10)}},
		{"qp+qk", []material.Option{material.WithQp(1000), material.WithQk(500)}},
		{"qs+qmu", []material.Option{material.WithQs(500), material.WithQmu(400)}},
		{"qk alone", []material.Option{material.WithQk(500)}},
		{"qmu alone", []material.Option{material.WithQmu(400)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := material.New(tc.opts...)
			assert.ErrorIs(t, err, material.ErrInvalidArguments)
		})
	}
}

// TestNew_SingleVelocityPoisson derives the missing velocity.
func TestNew_SingleVelocityPoisson(t *testing.T) {
	m, err := material.New(material.WithVp(6000), material.WithPoisson(0.25))
	require.NoError(t, err)
	assert.InDelta(t, 6000.0/m.VpVsRatio(), m.Vs, 1e-9)
	assert.InDelta(t, 0.25, m.Poisson(), 1e-12)

	m2, err := material.New(material.WithVs(3464))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, m2.Poisson(), 1e-12, "default Poisson when only vs given")
}

// TestNew_QkQmu derives qp/qs from bulk and shear attenuation.
func TestNew_QkQmu(t *testing.T) {
	m, err := material.New(
		material.WithVp(8000), material.WithVs(4600),
		material.WithQk(1000), material.WithQmu(300))
	require.NoError(t, err)
	assert.Equal(t, 300.0, m.Qs)
	assert.InDelta(t, 1000.0, m.QK(), 1e-6, "Qk round-trips through the derivation")
	assert.InDelta(t, 300.0, m.QMu(), 1e-12)
}

// TestLame_RoundTrip rebuilds a material from its own Lamé parameters and
// recovers the original velocities.
func TestLame_RoundTrip(t *testing.T) {
	m, err := material.New(material.WithVp(6200), material.WithVs(3600), material.WithRho(2750))
	require.NoError(t, err)

	lam, mu := m.Lame()
	back, err := material.New(material.WithLame(lam, mu), material.WithRho(2750))
	require.NoError(t, err)
	assert.InDelta(t, m.Vp, back.Vp, 1e-8)
	assert.InDelta(t, m.Vs, back.Vs, 1e-8)
}

// TestRayleigh_HalfspaceWindow pins the Rayleigh velocity of a standard
// mantle halfspace into its physical window below vs.
func TestRayleigh_HalfspaceWindow(t *testing.T) {
	m, err := material.New(
		material.WithVp(8000), material.WithVs(4600), material.WithRho(3000))
	require.NoError(t, err)

	cr := m.Rayleigh()
	assert.Greater(t, cr, 0.9*m.Vs)
	assert.Less(t, cr, 0.96*m.Vs)
}

// TestDerived_Moduli sanity-checks the modulus relations against each other.
func TestDerived_Moduli(t *testing.T) {
	m, err := material.New(material.WithVp(6000), material.WithVs(3500), material.WithRho(2700))
	require.NoError(t, err)

	lam, mu := m.Lame()
	assert.InDelta(t, m.ShearModulus(), mu, 1e-6)
	assert.InDelta(t, lam+2*mu/3, m.Bulk(), 1e-6)
	assert.InDelta(t, mu*(3*lam+2*mu)/(lam+mu), m.Youngs(), 1e-6)
}

// TestEqual compares by value tuple.
func TestEqual(t *testing.T) {
	a := material.MustNew(material.WithVp(6000), material.WithVs(3500))
	b := material.MustNew(material.WithVp(6000), material.WithVs(3500))
	c := material.MustNew(material.WithVp(6100), material.WithVs(3500))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

// TestCastagna pins the mudrock line.
func TestCastagna(t *testing.T) {
	assert.InDelta(t, 1360.0, material.CastagnaVsToVp(0), 1e-12)
	assert.InDelta(t, 2520.0, material.CastagnaVsToVp(1000), 1e-12)
}
