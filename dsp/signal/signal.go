package signal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// ErrInvalidSampleRate is returned when a sample rate is not finite and positive.
var ErrInvalidSampleRate = errors.New("signal: sample rate must be positive and finite")

// Signal is a mono PCM buffer with the sample rate it was recorded at.
//
// Processing stages never mutate a Signal they receive; they return a new
// Signal carrying the same SampleRate.
type Signal struct {
	Samples    []float64
	SampleRate float64
}

// New wraps samples in a Signal after validating the sample rate.
// The slice is not copied.
func New(samples []float64, sampleRate float64) (Signal, error) {
	if err := ValidateSampleRate(sampleRate); err != nil {
		return Signal{}, err
	}
	return Signal{Samples: samples, SampleRate: sampleRate}, nil
}

// ValidateSampleRate reports ErrInvalidSampleRate for zero, negative or
// non-finite rates.
func ValidateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the playing time of the signal.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / s.SampleRate * float64(time.Second))
}

// Clone returns a deep copy of s.
func (s Signal) Clone() Signal {
	return Signal{Samples: core.Clone(s.Samples), SampleRate: s.SampleRate}
}

// WithSamples returns a Signal holding samples at the sample rate of s.
func (s Signal) WithSamples(samples []float64) Signal {
	return Signal{Samples: samples, SampleRate: s.SampleRate}
}

// SecondsToSamples converts a duration in seconds to a sample count at
// sampleRate, rounding to the nearest sample.
func SecondsToSamples(seconds, sampleRate float64) int {
	return int(math.Round(seconds * sampleRate))
}
