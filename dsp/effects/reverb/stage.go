package reverb

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Stage holds the parameters of one delay-based filter instance.
type Stage struct {
	// Delay is the feedback delay in samples. Must be >= 1.
	Delay int
	// Gain is the feedback gain. |Gain| < 1 keeps the recursion stable.
	Gain float64
}

func (s Stage) validate(kind string, unstable bool) error {
	if s.Delay < 1 {
		return invalidf("%s delay must be >= 1: %d", kind, s.Delay)
	}
	if !core.IsFinite(s.Gain) {
		return invalidf("%s gain must be finite: %f", kind, s.Gain)
	}
	if !unstable && math.Abs(s.Gain) >= 1 {
		return invalidf("%s gain must satisfy |g| < 1: %f", kind, s.Gain)
	}
	return nil
}
