package trace_test

import (
	"fmt"

	"github.com/katalvlaran/layercake/core"
	"github.com/katalvlaran/layercake/material"
	"github.com/katalvlaran/layercake/model"
	"github.com/katalvlaran/layercake/phase"
	"github.com/katalvlaran/layercake/trace"
)

func exampleModel() *model.LayeredModel {
	crust := material.MustNew(material.WithVp(6000), material.WithVs(3500), material.WithRho(2700))
	mantle := material.MustNew(material.WithVp(8000), material.WithVs(4600), material.WithRho(3300))
	m, err := model.FromScanlines([]model.Scanline{
		{Z: 0, Material: crust},
		{Z: 35 * core.Km, Material: crust},
		{Z: 35 * core.Km, Material: mantle, Name: "moho"},
		{Z: 250 * core.Km, Material: mantle},
	})
	if err != nil {
		panic(err)
	}

	return m
}

// //////////////////////////////////////////////////////////////////////////////
// ExamplePath
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Trace a single ray with ray parameter p = 900 s/rad through a crust
//	over mantle model, asking for a P reflection off the moho. The named
//	depth resolves to 35 km, so the phase actually used reads "Pv35p".
//
// ExamplePath traces one moho underside bounce.
func ExamplePath() {
	m := exampleModel()
	path, err := trace.Path(m, 900, phase.MustParse("Pv(moho)p"), 0, 0)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("phase=%s straights=%d kinks=%d\n",
		path.UsedPhase().UsedRepr(), len(path.Straights()), len(path.Kinks()))
	// Output:
	// phase=Pv35p straights=2 kinks=1
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleArrivals
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Find all P arrivals at 5 degrees epicentral distance for a surface
//	source. The fan discovery walks the ray-parameter range, and each
//	surviving path is inverted for the requested distance and refined.
//
// ExampleArrivals collects refined arrivals at a single distance.
func ExampleArrivals() {
	m := exampleModel()
	rays, err := trace.Arrivals(m, []float64{5.0}, []*phase.Def{phase.MustParse("P")},
		0, 0, trace.DefaultArrivalOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println("found arrivals:", len(rays) > 0)
	// Output:
	// found arrivals: true
}
