// Package phase parses and represents seismic phase definitions.
//
// A phase describes the propagation history of a wave as an alternating
// sequence of legs (continuous propagation in one mode and departure
// direction) and knees (conversion and/or reflection events at the surface,
// at a named interface, or at a numeric depth).
//
// The textual grammar is a compact single-line syntax:
//
//   - ``P``, ``p``, ``S``, ``s`` denote legs; upper case departs downward,
//     lower case upward.
//   - ``(name)`` or a bare number (in km) gives the depth of the knee
//     between two legs; two consecutive leg letters imply a surface knee.
//   - ``v`` marks a top-side reflection, ``^`` an underside reflection.
//   - ``<DEPTH``/``<(name)`` and ``>DEPTH``/``>(name)`` bound the maximum
//     and minimum turning depth of the preceding leg.
//   - a trailing ``\`` makes the ray arrive at the receiver from above.
//
// Examples: ``P``, ``pP``, ``P(moho)s``, ``Pv12p``, ``P^(conrad)P``,
// ``P<(moho)``.
//
// Parse runs a single left-to-right pass driven by an explicit state
// machine and yields an immutable Def; malformed input fails with a
// ParseError carrying the offending character position.
package phase
