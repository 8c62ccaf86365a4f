package reverb

import (
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Attenuate returns input scaled by factor.
func Attenuate(input []float64, factor float64) ([]float64, error) {
	if err := validateAttenuation(factor); err != nil {
		return nil, err
	}
	out := make([]float64, len(input))
	if len(input) > 0 {
		vecmath.ScaleBlock(out, input, factor)
	}
	return out, nil
}

func validateAttenuation(factor float64) error {
	if !core.IsFinite(factor) {
		return invalidf("attenuation must be finite: %f", factor)
	}
	return nil
}
