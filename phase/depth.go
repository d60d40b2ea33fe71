package phase

import (
	"fmt"

	"github.com/katalvlaran/layercake/core"
)

type depthKind int

const (
	depthSurface depthKind = iota
	depthNamed
	depthNumeric
)

// Depth locates a knee or a leg depth limit: the free surface, a named
// interface, or a literal depth in meters.
type Depth struct {
	kind depthKind
	name string
	z    float64
}

// SurfaceDepth returns the Depth designating the free surface.
func SurfaceDepth() Depth { return Depth{kind: depthSurface} }

// NamedDepth returns a Depth referring to an interface by name.
func NamedDepth(name string) Depth { return Depth{kind: depthNamed, name: name} }

// NumericDepth returns a literal Depth at z meters.
func NumericDepth(z float64) Depth { return Depth{kind: depthNumeric, z: z} }

// IsSurface reports whether the depth designates the free surface.
func (d Depth) IsSurface() bool { return d.kind == depthSurface }

// IsNamed reports whether the depth refers to a named interface.
func (d Depth) IsNamed() bool { return d.kind == depthNamed }

// IsNumeric reports whether the depth is a literal depth.
func (d Depth) IsNumeric() bool { return d.kind == depthNumeric }

// Name returns the interface name, or "surface" for the free surface.
// It is meaningless for numeric depths.
func (d Depth) Name() string {
	if d.kind == depthSurface {
		return "surface"
	}

	return d.name
}

// Z returns the literal depth in meters; only meaningful for numeric depths.
func (d Depth) Z() float64 { return d.z }

// String renders numeric depths in km and named depths by name.
func (d Depth) String() string {
	switch d.kind {
	case depthSurface:
		return "surface"
	case depthNamed:
		return fmt.Sprintf("interface %s", d.name)
	default:
		return fmt.Sprintf("%g km", d.z/core.Km)
	}
}
