package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/measure/response"
)

func ExampleCompute() {
	impulse := make([]float64, 1024)
	impulse[0] = 1
	h, err := reverb.Comb(impulse, 4, 0.5)
	if err != nil {
		panic(err)
	}

	r, err := response.Compute(h, 48000, 0)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.0f Hz: %.3f\n", r.Frequency(0), r.Magnitude[0])
	fmt.Printf("%.0f Hz: %.3f\n", r.Frequency(128), r.Magnitude[128])
	// Output:
	// 0 Hz: 2.000
	// 6000 Hz: 0.667
}
