// Package layercake is an in-memory toolkit for seismic ray theory in
// radially layered spherical earth models, from material elasticity up
// to travel time tables.
//
// 🚀 What is layercake?
//
//	A pure-Go library that brings together:
//		• Materials: isotropic elastic media with flexible construction
//		  (velocities, Poisson ratio, Lamé parameters, attenuation)
//		• Models: layer cake earth models built from velocity profiles,
//		  with homogeneous and gradient layers and named discontinuities
//		• Phases: a compact grammar for seismic phase definitions
//		  ("P", "Pv(moho)p", "PS", depth limits and explicit knees)
//		• Tracing: analytic distance/time integration per layer, P-SV
//		  scattering coefficients, ray path fans and arrival tables
//
// ✨ Why choose layercake?
//
//   - Exact per-layer integrals: spherical potential interpolation with
//     flat-earth fallbacks, no numeric quadrature in the hot path
//   - Clear failure modes: every way a ray can fail to realize a phase
//     is a distinct, testable error
//   - Extensible: build models programmatically or from scanline
//     profiles, define phases from text or from code
//
// Everything is organized under four subpackages:
//
//	material/ - elastic material parameters and derived quantities
//	model/    - layers, discontinuities and the LayeredModel container
//	phase/    - the phase definition grammar and parser
//	trace/    - ray tracing, fans, arrivals, spreading and efficiency
//
// Units: depths in meters, velocities in m/s, spherical ray parameters
// in s/rad, distances in degrees, travel times in seconds.
package layercake
