package window

import "github.com/cwbudde/algo-vecmath"

// LinearFadeOut returns n coefficients descending linearly from 1 to 0 with
// both endpoints included. A single-sample fade is [0] so the faded buffer
// always ends in silence.
func LinearFadeOut(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	last := float64(n - 1)
	for i := range out {
		out[i] = 1 - float64(i)/last
	}
	return out
}

// ApplyFadeOut multiplies the last n samples of buf in place by
// LinearFadeOut(n). A zero-length fade leaves buf untouched.
func ApplyFadeOut(buf []float64, n int) error {
	if err := validateFade(len(buf), n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	vecmath.MulBlockInPlace(buf[len(buf)-n:], LinearFadeOut(n))
	return nil
}
