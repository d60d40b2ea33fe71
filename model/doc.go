// Package model represents radially layered, spherically symmetric earth
// models ("layer cake" models) and the elementary ray computations on them.
//
// A LayeredModel is an ordered, append-only sequence of elements, surface
// first: Discontinuity (the Surface, or an Interface between two layers)
// alternating with Layer (HomogeneousLayer or GradientLayer). Each layer
// knows how to integrate travel time and epicentral distance for a ray
// crossing or turning inside it; each discontinuity knows its implicit
// transmission rule and its P-SV reflection/transmission/conversion
// coefficients.
//
// Layers prefer closed-form "potential interpolation" integrals, fitting
// the velocity profile to c(z) = a*(R-z)^b; where that fit is unstable
// they fall back to flat-earth approximations.
//
// The earth radius is explicit model configuration (WithEarthRadius), so
// non-Earth bodies need no code change. Models are built once - via
// Append or FromScanlines - and are read-only afterwards; Walker views
// with extra split depths (for source/receiver depths inside a layer) are
// created on demand and cached per split-depth set.
package model
