package reverb

// Comb runs input through a feedback comb filter with the given delay (in
// samples) and feedback gain and returns a new slice of len(input) samples.
//
//	y[i] = x[i] + gain * y[i-delay]
//
// An impulse produces echoes every delay samples, each gain times the
// previous one.
func Comb(input []float64, delay int, gain float64) ([]float64, error) {
	return Stage{Delay: delay, Gain: gain}.Comb(input)
}

// Comb applies the stage as a feedback comb filter. See Comb.
func (s Stage) Comb(input []float64) ([]float64, error) {
	if err := s.validate("comb", false); err != nil {
		return nil, err
	}

	work := make([]float64, len(input)+s.Delay)
	copy(work, input)
	combRun(work, s.Delay, s.Gain)

	out := make([]float64, len(input))
	copy(out, work)
	if err := checkFinite("comb", out); err != nil {
		return nil, err
	}
	return out, nil
}

// combRun applies the comb recursion in place. work holds the input followed
// by delay samples of zero padding.
func combRun(work []float64, delay int, gain float64) {
	for i := delay; i < len(work); i++ {
		work[i] += gain * work[i-delay]
	}
}
