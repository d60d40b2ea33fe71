package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/layercake/internal/xmath"
)

// ErrInvalidArguments indicates a contradictory or ambiguous combination of
// construction options.
var ErrInvalidArguments = errors.New("material: invalid combination of input parameters")

// Standard crustal defaults used when nothing more specific is given.
const (
	DefaultVp      = 5800.0 // [m/s]
	DefaultRho     = 2600.0 // [kg/m^3]
	DefaultPoisson = 0.25
	DefaultQp      = 1456.0
	DefaultQs      = 600.0
)

// Material is an isotropic elastic material. All units are SI: velocities
// in m/s, density in kg/m^3, moduli in Pa. The five fields are the
// independent properties; everything else is derived by the methods below.
type Material struct {
	Vp  float64 // P-wave velocity [m/s]
	Vs  float64 // S-wave velocity [m/s]
	Rho float64 // density [kg/m^3]
	Qp  float64 // P-wave attenuation
	Qs  float64 // S-wave attenuation
}

// params accumulates construction options before validation.
type params struct {
	vp, vs, rho, qp, qs *float64
	poisson, qk, qmu    *float64
	lam, mu             *float64
}

// Option configures New.
type Option func(*params)

// WithVp sets the P-wave velocity [m/s].
func WithVp(v float64) Option { return func(p *params) { p.vp = &v } }

// WithVs sets the S-wave velocity [m/s].
func WithVs(v float64) Option { return func(p *params) { p.vs = &v } }

// WithRho sets the density [kg/m^3].
func WithRho(v float64) Option { return func(p *params) { p.rho = &v } }

// WithQp sets the P-wave attenuation factor.
func WithQp(v float64) Option { return func(p *params) { p.qp = &v } }

// WithQs sets the S-wave attenuation factor.
func WithQs(v float64) Option { return func(p *params) { p.qs = &v } }

// WithPoisson sets the Poisson ratio used to derive the missing velocity.
func WithPoisson(v float64) Option { return func(p *params) { p.poisson = &v } }

// WithLame sets the Lamé parameter lambda and the shear modulus [Pa].
func WithLame(lam, mu float64) Option {
	return func(p *params) { p.lam, p.mu = &lam, &mu }
}

// WithQk sets the bulk attenuation factor Qk.
func WithQk(v float64) Option { return func(p *params) { p.qk = &v } }

// WithQmu sets the shear attenuation factor Qmu.
func WithQmu(v float64) Option { return func(p *params) { p.qmu = &v } }

// vpOverVs is the vp/vs ratio implied by a Poisson ratio.
func vpOverVs(poisson float64) float64 {
	return math.Sqrt(2.0 * (1.0 - poisson) / (1.0 - 2.0*poisson))
}

// New builds a Material from exactly one consistent combination of options.
//
// Velocity combinations:
//   - vp and vs given: Poisson ratio and Lamé parameters must not be given.
//   - nothing given: standard crust, vp=5800 m/s, Poisson 0.25.
//   - Lamé parameters given: velocities derived from lambda, mu and rho;
//     a Poisson ratio must not be given.
//   - only vp (or only vs) given: the other velocity is derived via the
//     Poisson ratio (default 0.25); Lamé parameters must not be given.
//
// Attenuation combinations:
//   - qp or qs given: qk and qmu must not be given; the missing one of
//     qp/qs falls back to its default.
//   - nothing given: qp=1456, qs=600.
//   - qk and qmu both given: qp and qs are derived.
//
// Any other combination fails with ErrInvalidArguments.
func New(opts ...Option) (Material, error) {
	var p params
	for _, opt := range opts {
		opt(&p)
	}

	m := Material{Rho: DefaultRho}
	if p.rho != nil {
		m.Rho = *p.rho
	}

	switch {
	case p.vp != nil && p.vs != nil:
		if p.poisson != nil || p.lam != nil {
			return Material{}, fmt.Errorf("%w: vp and vs leave no room for poisson ratio or lame parameters", ErrInvalidArguments)
		}
		m.Vp, m.Vs = *p.vp, *p.vs

	case p.vp == nil && p.vs == nil && p.lam == nil:
		poisson := DefaultPoisson
		if p.poisson != nil {
			poisson = *p.poisson
		}
		m.Vp = DefaultVp
		m.Vs = m.Vp / vpOverVs(poisson)

	case p.vp == nil && p.vs == nil:
		if p.poisson != nil {
			return Material{}, fmt.Errorf("%w: poisson ratio must not accompany lame parameters", ErrInvalidArguments)
		}
		m.Vp = math.Sqrt((*p.lam + 2.0**p.mu) / m.Rho)
		m.Vs = math.Sqrt(*p.mu / m.Rho)

	case p.vp != nil:
		if p.lam != nil {
			return Material{}, fmt.Errorf("%w: vp must not accompany lame parameters", ErrInvalidArguments)
		}
		poisson := DefaultPoisson
		if p.poisson != nil {
			poisson = *p.poisson
		}
		m.Vp = *p.vp
		m.Vs = m.Vp / vpOverVs(poisson)

	case p.vs != nil:
		if p.lam != nil {
			return Material{}, fmt.Errorf("%w: vs must not accompany lame parameters", ErrInvalidArguments)
		}
		poisson := DefaultPoisson
		if p.poisson != nil {
			poisson = *p.poisson
		}
		m.Vs = *p.vs
		m.Vp = m.Vs * vpOverVs(poisson)

	default:
		return Material{}, ErrInvalidArguments
	}

	switch {
	case p.qp != nil || p.qs != nil:
		if p.qk != nil || p.qmu != nil {
			return Material{}, fmt.Errorf("%w: qp/qs must not accompany qk/qmu", ErrInvalidArguments)
		}
		m.Qp, m.Qs = DefaultQp, DefaultQs
		if p.qp != nil {
			m.Qp = *p.qp
		}
		if p.qs != nil {
			m.Qs = *p.qs
		}

	case p.qk == nil && p.qmu == nil:
		m.Qp, m.Qs = DefaultQp, DefaultQs

	case p.qk != nil && p.qmu != nil:
		l := (4.0 / 3.0) * (m.Vs / m.Vp) * (m.Vs / m.Vp)
		m.Qp = 1.0 / (l*(1.0 / *p.qmu) + (1.0-l)*(1.0 / *p.qk))
		m.Qs = *p.qmu

	default:
		return Material{}, fmt.Errorf("%w: qk and qmu must be given together", ErrInvalidArguments)
	}

	return m, nil
}

// MustNew is New for static material tables; it panics on invalid input.
func MustNew(opts ...Option) Material {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// Equal reports value equality over the five independent properties.
func (m Material) Equal(o Material) bool {
	return m.Vp == o.Vp && m.Vs == o.Vs && m.Rho == o.Rho && m.Qp == o.Qp && m.Qs == o.Qs
}

// Lame returns Lamé's parameter lambda and the shear modulus mu [Pa].
func (m Material) Lame() (lam, mu float64) {
	mu = m.Vs * m.Vs * m.Rho
	lam = m.Vp*m.Vp*m.Rho - 2.0*mu

	return lam, mu
}

// LameLambda returns Lamé's parameter lambda [Pa].
func (m Material) LameLambda() float64 {
	lam, _ := m.Lame()

	return lam
}

// ShearModulus returns the shear modulus [Pa].
func (m Material) ShearModulus() float64 { return m.Vs * m.Vs * m.Rho }

// Poisson returns Poisson's ratio.
func (m Material) Poisson() float64 {
	lam, mu := m.Lame()

	return lam / (2.0 * (lam + mu))
}

// Bulk returns the bulk modulus [Pa].
func (m Material) Bulk() float64 {
	lam, mu := m.Lame()

	return lam + 2.0*mu/3.0
}

// Youngs returns Young's modulus [Pa].
func (m Material) Youngs() float64 {
	lam, mu := m.Lame()

	return mu * (3.0*lam + 2.0*mu) / (lam + mu)
}

// VpVsRatio returns vp/vs.
func (m Material) VpVsRatio() float64 { return m.Vp / m.Vs }

// QMu returns the shear attenuation factor Qmu.
func (m Material) QMu() float64 { return m.Qs }

// QK returns the bulk attenuation factor Qk.
func (m Material) QK() float64 {
	l := (4.0 / 3.0) * (m.Vs / m.Vp) * (m.Vs / m.Vp)

	return (1.0 - l) / ((1.0 / m.Qp) - l*(1.0/m.Qs))
}

// rayleighEquation is the characteristic equation whose root in
// (0, vs) is the Rayleigh wave velocity of a homogeneous halfspace.
func (m Material) rayleighEquation(cr float64) float64 {
	crA := (cr / m.Vp) * (cr / m.Vp)
	crB := (cr / m.Vs) * (cr / m.Vs)

	return (2.0-crB)*(2.0-crB) - 4.0*math.Sqrt(1.0-crA)*math.Sqrt(1.0-crB)
}

// Rayleigh returns the Rayleigh wave velocity [m/s] assuming a homogeneous
// halfspace of this material, found by bisection over [0.001*vs, vs].
func (m Material) Rayleigh() float64 {
	root, _, err := xmath.Bisect(m.rayleighEquation, 0.001*m.Vs, m.Vs, 0)
	if err != nil {
		return math.NaN()
	}

	return root
}

// Describe returns a readable multi-line listing of the material properties.
func (m Material) Describe() string {
	lam, mu := m.Lame()
	template := `P wave velocity     [km/s]    : %12g
S wave velocity     [km/s]    : %12g
P/S wave vel. ratio           : %12g
Lame lambda         [GPa]     : %12g
Lame shear modulus  [GPa]     : %12g
Poisson ratio                 : %12g
Bulk modulus        [GPa]     : %12g
Young's modulus     [GPa]     : %12g
Rayleigh wave vel.  [km/s]    : %12g
Density             [g/cm**3] : %12g
Qp                            : %12g
Qs = Qmu                      : %12g
Qk                            : %12g`

	return fmt.Sprintf(template,
		m.Vp/1000., m.Vs/1000., m.VpVsRatio(),
		lam*1e-9, mu*1e-9, m.Poisson(),
		m.Bulk()*1e-9, m.Youngs()*1e-9, m.Rayleigh()/1000.,
		m.Rho/1000., m.Qp, m.Qs, m.QK())
}

// String returns a compact one-line rendering in km/s and g/cm^3.
func (m Material) String() string {
	return fmt.Sprintf("%10g km/s  %10g km/s %10g g/cm^3 %10g %10g",
		m.Vp/1000., m.Vs/1000., m.Rho/1000., m.Qp, m.Qs)
}

// CastagnaVsToVp estimates vp [m/s] from vs using Castagna's mudrock
// relation for siliciclastic rocks: vp = 1.16*vs + 1360 m/s.
func CastagnaVsToVp(vs float64) float64 { return vs*1.16 + 1360.0 }
