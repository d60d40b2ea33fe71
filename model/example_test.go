package model_test

import (
	"fmt"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
	"github.com/katalvlaran/layercake/model"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleFromScanlines
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A 35 km homogeneous crust over a homogeneous mantle, separated by an
//	interface named "moho". Scanlines list depth/material samples from the
//	surface down; a repeated depth with a new material opens an interface.
//
// ExampleFromScanlines assembles a two-layer crust model.
func ExampleFromScanlines() {
	crust := material.MustNew(material.WithVp(6000), material.WithVs(3500), material.WithRho(2700))
	mantle := material.MustNew(material.WithVp(8000), material.WithVs(4600), material.WithRho(3300))

	m, err := model.FromScanlines([]model.Scanline{
		{Z: 0, Material: crust},
		{Z: 35 * core.Km, Material: crust},
		{Z: 35 * core.Km, Material: mantle, Name: "moho"},
		{Z: 250 * core.Km, Material: mantle},
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	fmt.Println("layers:", len(m.Layers(core.Down)))
	for _, d := range m.Discontinuities() {
		fmt.Printf("discontinuity %q at %g km\n", d.Name(), d.Z()/core.Km)
	}
	// Output:
	// layers: 2
	// discontinuity "surface" at 0 km
	// discontinuity "moho" at 35 km
}
