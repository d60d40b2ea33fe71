package material_test

import (
	"fmt"

	"github.com/katalvlaran/layercake/material"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleNew_poissonDefault
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Only vp is known. The shear velocity is derived from the default
//	Poisson ratio of 0.25, so vp/vs comes out as sqrt(3).
//
// ExampleNew_poissonDefault builds a material from vp alone.
func ExampleNew_poissonDefault() {
	m := material.MustNew(material.WithVp(6000))
	fmt.Printf("poisson=%.2f vp/vs=%.4f\n", m.Poisson(), m.VpVsRatio())
	// Output:
	// poisson=0.25 vp/vs=1.7321
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleCastagnaVsToVp
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A shear log gives vs = 2000 m/s in a siliciclastic section; estimate
//	vp with Castagna's mudrock line vp = 1.16*vs + 1360.
//
// ExampleCastagnaVsToVp applies the empirical mudrock relation.
func ExampleCastagnaVsToVp() {
	fmt.Printf("%.0f m/s\n", material.CastagnaVsToVp(2000))
	// Output:
	// 3680 m/s
}
