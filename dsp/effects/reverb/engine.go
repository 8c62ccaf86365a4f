package reverb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-reverb/dsp/buffer"
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/cwbudde/algo-reverb/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Engine runs the full Schroeder pipeline over whole mono buffers.
//
// An Engine holds no audio state between runs; SetConfig may be called
// between (or concurrently with) calls to Process.
type Engine struct {
	mu       sync.RWMutex
	cfg      Config
	unstable bool
	pool     *buffer.Pool
}

// Option configures an Engine.
type Option func(*Engine)

// WithUnstableFeedback accepts feedback gains and decay with magnitude >= 1.
// Such settings grow without bound; runs still fail with
// ErrNumericInstability once a sample overflows.
func WithUnstableFeedback() Option {
	return func(e *Engine) {
		e.unstable = true
	}
}

// WithBufferPool shares a scratch pool between engines.
func WithBufferPool(p *buffer.Pool) Option {
	return func(e *Engine) {
		if p != nil {
			e.pool = p
		}
	}
}

// Stages holds the intermediate buffers of one run. All slices have the
// input's length. Diffused aliases CombSum when no allpass is configured.
type Stages struct {
	CombSum  []float64
	Diffused []float64
	Wet      []float64
	Tail     []float64
	Mix      []float64
	Output   signal.Signal
}

// NewEngine validates cfg and returns an Engine for it.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.pool == nil {
		e.pool = buffer.NewPool()
	}
	if err := cfg.validate(e.unstable); err != nil {
		return nil, err
	}
	e.cfg = cfg.Clone()
	return e, nil
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}

// SetConfig validates cfg and makes it active for subsequent runs. On error
// the previous configuration stays active.
func (e *Engine) SetConfig(cfg Config) error {
	if err := cfg.validate(e.unstable); err != nil {
		return err
	}
	e.mu.Lock()
	e.cfg = cfg.Clone()
	e.mu.Unlock()
	return nil
}

// Process runs the pipeline and returns the peak-normalized output.
func (e *Engine) Process(in signal.Signal) (signal.Signal, error) {
	st, err := e.ProcessStages(in)
	if err != nil {
		return signal.Signal{}, err
	}
	return st.Output, nil
}

// ImpulseResponse renders the engine's normalized response to a unit impulse
// of length samples at sampleRate.
func (e *Engine) ImpulseResponse(sampleRate float64, length int) (signal.Signal, error) {
	if err := signal.ValidateSampleRate(sampleRate); err != nil {
		return signal.Signal{}, invalidf("%v", err)
	}
	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	imp, err := gen.Impulse(length)
	if err != nil {
		return signal.Signal{}, invalidf("%v", err)
	}
	return e.Process(imp)
}

// ProcessStages runs the pipeline and returns every intermediate buffer.
func (e *Engine) ProcessStages(in signal.Signal) (Stages, error) {
	cfg := e.Config()

	if err := signal.ValidateSampleRate(in.SampleRate); err != nil {
		return Stages{}, invalidf("%v", err)
	}
	x := in.Samples
	n := len(x)
	if n == 0 {
		empty := []float64{}
		return Stages{
			CombSum: empty, Diffused: empty, Wet: empty, Tail: empty, Mix: empty,
			Output: in.WithSamples(empty),
		}, nil
	}
	if err := checkFinite("input", x); err != nil {
		return Stages{}, err
	}
	fadeN := cfg.FadeOutSamples(in.SampleRate)
	if fadeN > n {
		return Stages{}, fmt.Errorf("%w: fade-out %d samples, signal %d samples", ErrBufferUnderflow, fadeN, n)
	}

	var (
		st  Stages
		err error
	)
	if st.CombSum, err = e.combBank(x, cfg.Combs); err != nil {
		return Stages{}, err
	}
	if st.Diffused, err = e.allpassCascade(st.CombSum, cfg.Allpasses); err != nil {
		return Stages{}, err
	}
	if st.Wet, err = Attenuate(st.Diffused, cfg.Attenuation); err != nil {
		return Stages{}, err
	}
	if err = checkFinite("attenuator", st.Wet); err != nil {
		return Stages{}, err
	}

	st.Tail = make([]float64, n)
	plainRun(st.Tail, x, cfg.Decay)
	if err = checkFinite("plain reverb", st.Tail); err != nil {
		return Stages{}, err
	}
	if err = window.ApplyFadeOut(st.Tail, fadeN); err != nil {
		return Stages{}, fmt.Errorf("%w: %w", ErrBufferUnderflow, err)
	}

	st.Mix = core.Clone(st.Wet)
	vecmath.AddBlockInPlace(st.Mix, st.Tail)
	if err = checkFinite("mixer", st.Mix); err != nil {
		return Stages{}, err
	}

	// Silent input degenerates to silent output.
	out, err := Normalize(st.Mix)
	if err != nil && !errors.Is(err, ErrSilentInput) {
		return Stages{}, err
	}
	st.Output = in.WithSamples(out)
	return st, nil
}

// combBank runs every comb on x and sums their outputs.
func (e *Engine) combBank(x []float64, combs []Stage) ([]float64, error) {
	n := len(x)
	sum := make([]float64, n)
	for _, s := range combs {
		work := e.pool.Working(x, s.Delay)
		combRun(work.Samples(), s.Delay, s.Gain)
		vecmath.AddBlockInPlace(sum, work.Samples()[:n])
		e.pool.Put(work)
	}
	if err := checkFinite("comb bank", sum); err != nil {
		return nil, err
	}
	return sum, nil
}

// allpassCascade feeds x through each allpass in order.
func (e *Engine) allpassCascade(x []float64, allpasses []Stage) ([]float64, error) {
	n := len(x)
	cur := x
	for i, s := range allpasses {
		work := e.pool.Working(cur, s.Delay)
		allpassRun(work.Samples(), cur, s.Delay, s.Gain)
		next := make([]float64, n)
		copy(next, work.Samples())
		e.pool.Put(work)
		if err := checkFinite(fmt.Sprintf("allpass %d", i), next); err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
