package core_test

import (
	"fmt"

	"github.com/katalvlaran/layercake/core"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleMode_String
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Render the two body-wave modes the way phase listings do.
//
// ExampleMode_String prints the conventional lower-case mode letters.
func ExampleMode_String() {
	fmt.Println(core.P, core.S)
	// Output:
	// p s
}

// //////////////////////////////////////////////////////////////////////////////
// ExampleDirection_Flip
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A downward-moving ray hits an interface from above; after reflection
//	it moves upward.
//
// ExampleDirection_Flip shows direction negation and the arrival side.
func ExampleDirection_Flip() {
	d := core.Down
	fmt.Println(d, d.Side())
	fmt.Println(d.Flip(), d.Flip().Side())
	// Output:
	// downward above
	// upward below
}
