package trace

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/internal/xmath"
)

// Ray is a specific ray of a fan: one (ray parameter, distance, travel
// time) choice on a RayPath.
type Ray struct {
	// Path is the complete propagation history the ray belongs to.
	Path *RayPath

	// P is the spherical ray parameter [s/rad].
	P float64

	// X is the epicentral distance [deg].
	X float64

	// T is the travel time [s].
	T float64
}

// Refine sharpens the interpolated (p, t) pair by bisection until the
// distance computed from p matches X. It returns the number of travel
// time evaluations spent. Rays whose ray parameter falls outside the
// sampled fan are left untouched.
func (r *Ray) Refine() (int, error) {
	x, _ := r.Path.XT(r.P)
	xeps := r.X / 10000.0
	if math.Abs(r.X-x) <= xeps {
		return 0, nil
	}

	if err := r.Path.analyse(); err != nil {
		return 0, err
	}
	pp := r.Path.p
	ip := sort.SearchFloat64s(pp, r.P)
	if ip <= 0 || ip >= len(pp) {
		return 0, nil
	}
	pl, ph := pp[ip-1], pp[ip]

	f := func(p float64) float64 {
		x, _ := r.Path.XT(p)
		dx := r.X - x
		if math.Abs(dx) < xeps {
			return 0.0
		}

		return dx
	}

	root, count, err := xmath.Bisect(f, pl, ph, 0)
	if err != nil {
		// No sign change in the bracket; the linear estimate is kept.
		return count, nil
	}
	_, r.T = r.Path.XT(root)
	r.P = root

	return count, nil
}

// TakeoffAngle is the angle of the ray against the downward normal at the
// source [deg].
func (r *Ray) TakeoffAngle() float64 {
	return r.Path.FirstStraight().AngleIn(r.P)
}

// IncidenceAngle is the angle of the ray at the receiver [deg].
func (r *Ray) IncidenceAngle() float64 {
	return r.Path.LastStraight().AngleOut(r.P)
}

// Efficiency is the product of the scattering coefficients along the ray.
func (r *Ray) Efficiency() float64 {
	return r.Path.Efficiency(r.P)
}

// Spreading is the geometrical spreading factor of the ray.
func (r *Ray) Spreading() (float64, error) {
	return r.Path.Spreading(r.P)
}

// SurfaceSphere is the surface area of a sphere with the source/receiver
// chord as diameter, the geometric counterpart to Spreading.
func (r *Ray) SurfaceSphere() float64 {
	radius := r.Path.model.EarthRadius()
	x1, y1 := 0.0, radius-r.Path.zstart
	r2 := radius - r.Path.zstop
	xrad := r.X * core.D2R
	x2, y2 := r2*math.Sin(xrad), r2*math.Cos(xrad)

	return (math.Pow(x2-x1, 2) + math.Pow(y2-y1, 2)) * 4.0 * math.Pi
}

// String renders the ray as one table row: ray parameter, distance, travel
// time, takeoff and incidence angles, efficiency, spreading and path.
func (r *Ray) String() string {
	radius := r.Path.model.EarthRadius()
	sd := fmt.Sprintf("%7.5g km", r.X*core.D2R*radius/core.Km)
	spreading, err := r.Spreading()
	if err != nil {
		spreading = math.NaN()
	}

	return fmt.Sprintf("%7.5g s/deg %s %6.4g s %5.1f %5.1f %3.0f%% %3.0f%% %s",
		r.P/core.R2D, sd, r.T, r.TakeoffAngle(), r.IncidenceAngle(),
		100*r.Efficiency(), 100*spreading*r.SurfaceSphere(), r.Path)
}

// SortRays orders rays by distance, then travel time.
func SortRays(rays []*Ray) {
	sort.SliceStable(rays, func(i, j int) bool {
		if rays[i].X != rays[j].X {
			return rays[i].X < rays[j].X
		}

		return rays[i].T < rays[j].T
	})
}
