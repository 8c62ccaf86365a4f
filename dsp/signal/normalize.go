package signal

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrSilent is returned by Normalize when the input has no non-zero sample,
// so there is no peak to scale against.
var ErrSilent = errors.New("signal: cannot normalize silent input")

// Normalize scales data so its peak absolute value equals targetPeak and
// returns a new slice. For silent (all-zero or empty) input the result is an
// all-zero slice of the same length together with ErrSilent; the result is
// never NaN.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 || !core.IsFinite(targetPeak) {
		return nil, fmt.Errorf("normalize target peak must be finite and >= 0: %f", targetPeak)
	}

	out := make([]float64, len(data))
	peak := core.PeakAbs(data)
	if peak == 0 {
		return out, ErrSilent
	}
	if !core.IsFinite(peak) {
		return nil, fmt.Errorf("normalize input peak is not finite: %f", peak)
	}
	if targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out, nil
}
