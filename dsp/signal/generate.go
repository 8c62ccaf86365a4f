package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Impulse generates a unit impulse at sample 0 followed by silence.
// Feeding it through a processor yields the processor's impulse response.
func (g *Generator) Impulse(samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	out[0] = 1
	return g.wrap(out), nil
}

// DC generates a constant-valued signal.
func (g *Generator) DC(value float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("dc samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = value
	}
	return g.wrap(out), nil
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return g.wrap(out), nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return Signal{}, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return g.wrap(out), nil
}

// Burst generates a noise burst of burstSamples followed by silence up to
// samples in total, a common probe for hearing a reverb tail.
func (g *Generator) Burst(amplitude float64, burstSamples, samples int) (Signal, error) {
	if burstSamples <= 0 || burstSamples > samples {
		return Signal{}, fmt.Errorf("burst samples must be in [1, %d]: %d", samples, burstSamples)
	}
	noise, err := g.WhiteNoise(amplitude, burstSamples)
	if err != nil {
		return Signal{}, err
	}
	out := make([]float64, samples)
	copy(out, noise.Samples)
	return g.wrap(out), nil
}

func (g *Generator) wrap(samples []float64) Signal {
	return Signal{Samples: samples, SampleRate: g.cfg.SampleRate}
}
