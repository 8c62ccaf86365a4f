package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Plain runs input through a one-pole decaying reverberator and returns a
// new slice of len(input) samples.
//
//	y[0] = x[0]
//	y[i] = x[i] + decay * y[i-1]
//
// |decay| must be < 1.
func Plain(input []float64, decay float64) ([]float64, error) {
	if err := validateDecay(decay, false); err != nil {
		return nil, err
	}
	out := make([]float64, len(input))
	plainRun(out, input, decay)
	if err := checkFinite("plain reverb", out); err != nil {
		return nil, err
	}
	return out, nil
}

func validateDecay(decay float64, unstable bool) error {
	if !core.IsFinite(decay) {
		return invalidf("plain reverb decay must be finite: %f", decay)
	}
	if !unstable && math.Abs(decay) >= 1 {
		return invalidf("plain reverb decay must satisfy |d| < 1: %f", decay)
	}
	return nil
}

func plainRun(dst, input []float64, decay float64) {
	if len(input) == 0 {
		return
	}
	dst[0] = input[0]
	for i := 1; i < len(input); i++ {
		dst[i] = input[i] + decay*dst[i-1]
	}
}
