package layout_test

import (
	"fmt"

	"github.com/katalvlaran/lvshield/layout"
)

// ExampleCompute builds the reference four-layer assembly around a
// 230×450×230 mm crystal.
func ExampleCompute() {
	lay, err := layout.Compute(
		layout.Box{HalfX: 115, HalfY: 225, HalfZ: 115},
		layout.Vec3{X: 50, Y: 10, Z: 50},
		[]layout.Thickness{
			{Name: "Cu1", Value: 5},
			{Name: "Cu2", Value: 20},
			{Name: "Pb1", Value: 50},
			{Name: "Pb2", Value: 150},
		},
	)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, s := range lay.Shells {
		fmt.Printf("%s inner=%g outer=%g\n", s.Name, s.Inner, s.Outer)
	}
	// Output:
	// Cu1 inner=235 outer=240
	// Cu2 inner=240 outer=260
	// Pb1 inner=260 outer=310
	// Pb2 inner=310 outer=460
}
