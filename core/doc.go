// Package core holds the shared vocabulary of the layercake module:
// the wave propagation Mode (P or S), the vertical Direction (Up or Down)
// and the angle conversion constants used by every other package.
//
// It is a leaf package with no dependencies; material, phase, model and
// trace all build on it.
package core
