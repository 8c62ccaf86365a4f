package reverb

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/signal"
)

const (
	defaultStageGain      = 0.9
	defaultAttenuation    = 0.8
	defaultDecay          = 0.9
	defaultFadeOutSeconds = 0.5
)

// Chapel preset delays in samples.
var (
	chapelCombDelays    = []int{1500, 2000, 2500, 3000}
	chapelAllpassDelays = []int{1000, 1500, 2000}
)

// Config holds the parameters of one Engine run.
type Config struct {
	// Combs run in parallel on the input; their outputs are summed.
	Combs []Stage
	// Allpasses run in sequence on the comb sum.
	Allpasses []Stage
	// Attenuation scales the diffused signal before the tail is mixed in.
	Attenuation float64
	// Decay is the feedback coefficient of the plain reverb tail.
	Decay float64
	// FadeOutSeconds is the length of the linear fade applied to the end of
	// the plain reverb tail. It is converted to samples with the input's
	// sample rate.
	FadeOutSeconds float64
}

// DefaultConfig returns the "chapel" preset.
func DefaultConfig() Config {
	cfg := Config{
		Attenuation:    defaultAttenuation,
		Decay:          defaultDecay,
		FadeOutSeconds: defaultFadeOutSeconds,
	}
	for _, d := range chapelCombDelays {
		cfg.Combs = append(cfg.Combs, Stage{Delay: d, Gain: defaultStageGain})
	}
	for _, d := range chapelAllpassDelays {
		cfg.Allpasses = append(cfg.Allpasses, Stage{Delay: d, Gain: defaultStageGain})
	}
	return cfg
}

// SingleConfig returns the reduced parameter set of the interactive surface:
// one comb and one allpass sharing delay and gain, with the chapel fade-out.
func SingleConfig(delay int, gain, attenuation, decay float64) Config {
	return Config{
		Combs:          []Stage{{Delay: delay, Gain: gain}},
		Allpasses:      []Stage{{Delay: delay, Gain: gain}},
		Attenuation:    attenuation,
		Decay:          decay,
		FadeOutSeconds: defaultFadeOutSeconds,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Combs = slices.Clone(c.Combs)
	c.Allpasses = slices.Clone(c.Allpasses)
	return c
}

// Validate reports the first invalid parameter, treating feedback gains and
// decay with magnitude >= 1 as invalid.
func (c Config) Validate() error {
	return c.validate(false)
}

func (c Config) validate(unstable bool) error {
	for _, s := range c.Combs {
		if err := s.validate("comb", unstable); err != nil {
			return err
		}
	}
	for _, s := range c.Allpasses {
		if err := s.validate("allpass", unstable); err != nil {
			return err
		}
	}
	if err := validateAttenuation(c.Attenuation); err != nil {
		return err
	}
	if err := validateDecay(c.Decay, unstable); err != nil {
		return err
	}
	if c.FadeOutSeconds < 0 || !core.IsFinite(c.FadeOutSeconds) {
		return invalidf("fade-out must be finite and >= 0 seconds: %f", c.FadeOutSeconds)
	}
	return nil
}

// FadeOutSamples returns the fade-out length in samples at sampleRate.
func (c Config) FadeOutSamples(sampleRate float64) int {
	return signal.SecondsToSamples(c.FadeOutSeconds, sampleRate)
}

// MaxDelay returns the longest comb or allpass delay in samples.
func (c Config) MaxDelay() int {
	longest := 0
	for _, s := range c.Combs {
		longest = max(longest, s.Delay)
	}
	for _, s := range c.Allpasses {
		longest = max(longest, s.Delay)
	}
	return longest
}

// MillisToSamples converts a delay in milliseconds to whole samples at
// sampleRate, rounding to the nearest sample.
func MillisToSamples(ms, sampleRate float64) (int, error) {
	if err := signal.ValidateSampleRate(sampleRate); err != nil {
		return 0, invalidf("%v", err)
	}
	if ms < 0 || !core.IsFinite(ms) {
		return 0, invalidf("delay must be finite and >= 0 ms: %f", ms)
	}
	return int(math.Round(ms * sampleRate / 1000)), nil
}
