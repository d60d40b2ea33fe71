// Package material defines isotropic elastic materials.
//
// A Material carries the five independent properties of an isotropic
// elastic medium (P and S wave velocity, density and the two attenuation
// factors Qp and Qs), all in SI units. Every other elastic property
// (Lamé parameters, bulk/Young's modulus, Poisson ratio, Rayleigh wave
// velocity) is derived on demand.
//
// Construction goes through New with exactly one consistent combination of
// options: velocities directly, one velocity plus a Poisson ratio, Lamé
// parameters, or attenuation via Qk/Qmu. Contradictory combinations fail
// with ErrInvalidArguments.
package material
