package phase_test

import (
	"fmt"

	"github.com/katalvlaran/layercake/phase"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleParse_mohoReflection
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	"Pv(moho)p" is a P wave going down, reflecting off the upper side of
//	the discontinuity named "moho", and returning to the surface as P.
//
// ExampleParse_mohoReflection parses a named reflection phase.
func ExampleParse_mohoReflection() {
	d, err := phase.Parse("Pv(moho)p")
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("repr=%s legs=%d knees=%d\n", d.UsedRepr(), len(d.Legs()), len(d.Knees()))
	// Output:
	// repr=Pv(moho)p legs=2 knees=1
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleParse_invalid
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	"Pf" uses a letter outside the leg alphabet, so parsing fails with a
//	ParseError carrying the offending position.
//
// ExampleParse_invalid shows rejection of a malformed definition.
func ExampleParse_invalid() {
	_, err := phase.Parse("Pf")
	fmt.Println(err != nil)
	// Output:
	// true
}
