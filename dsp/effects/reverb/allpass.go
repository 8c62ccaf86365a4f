package reverb

// Allpass runs input through a Schroeder allpass filter with the given delay
// (in samples) and gain and returns a new slice of len(input) samples.
//
//	y[i] = gain*x[i] + x[i-delay] - gain*y[i-delay]
//
// The magnitude spectrum is preserved while the phase is smeared, which
// thickens the echo density of a comb bank without colouring it. With
// gain 0 the filter is a plain delay of delay samples.
func Allpass(input []float64, delay int, gain float64) ([]float64, error) {
	return Stage{Delay: delay, Gain: gain}.Allpass(input)
}

// Allpass applies the stage as an allpass filter. See Allpass.
func (s Stage) Allpass(input []float64) ([]float64, error) {
	if err := s.validate("allpass", false); err != nil {
		return nil, err
	}

	work := make([]float64, len(input)+s.Delay)
	copy(work, input)
	allpassRun(work, input, s.Delay, s.Gain)

	out := make([]float64, len(input))
	copy(out, work)
	if err := checkFinite("allpass", out); err != nil {
		return nil, err
	}
	return out, nil
}

// allpassRun applies the allpass recursion in place. work holds input
// followed by delay samples of zero padding; at index i, work[i] still holds
// the copied input sample when it is read, and work[i-delay] already holds
// the filter output.
func allpassRun(work, input []float64, delay int, gain float64) {
	// No history before the first delay samples.
	head := min(delay, len(work))
	for i := range head {
		work[i] *= gain
	}
	for i := delay; i < len(work); i++ {
		work[i] = -gain*work[i-delay] + input[i-delay] + gain*work[i]
	}
}
