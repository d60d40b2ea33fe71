// Package trace computes ray paths, travel times and amplitudes through
// layered earth models.
//
// Path follows a single ray parameter through a model under the control of
// a phase definition and records the traversed layers (Straight elements)
// and discontinuity interactions (Kink elements) as a RayPath. GatherPaths
// discovers the complete fan of distinct ray paths a phase can take, and
// Arrivals turns the fan into concrete rays at requested epicentral
// distances, with optional bisection refinement and a choice of linear or
// spline interpolation.
//
// Ray parameters are spherical [s/rad], distances are in degrees, travel
// times in seconds and depths in meters.
package trace
