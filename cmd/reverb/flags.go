package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

var errUsage = errors.New("usage: reverb [options] input [output.wav]")

// stageSpec is one delay:gain pair as typed on the command line. The delay
// is in samples, or in milliseconds with -ms.
type stageSpec struct {
	delay float64
	gain  float64
}

type options struct {
	input, output string

	combs, allpasses []stageSpec
	attenuation      float64
	decay            float64
	fadeOut          float64

	// Single-stage parameters; delay > 0 selects them over the stage lists.
	delay float64
	gain  float64

	ms       bool
	unsafe   bool
	bitDepth int
	play     bool
	analyze  bool
	verbose  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	def := reverb.DefaultConfig()
	opts := &options{}

	fs := flag.NewFlagSet("reverb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	combs := fs.String("comb", formatStages(def.Combs), "Parallel comb filters as delay:gain,...")
	allpasses := fs.String("allpass", formatStages(def.Allpasses), "Cascaded allpass filters as delay:gain,...")
	fs.Float64Var(&opts.attenuation, "atten", def.Attenuation, "Attenuation applied after the allpass cascade")
	fs.Float64Var(&opts.decay, "decay", def.Decay, "Plain reverb decay factor")
	fs.Float64Var(&opts.fadeOut, "fade", def.FadeOutSeconds, "Fade-out length of the plain reverb tail in seconds")
	fs.Float64Var(&opts.delay, "delay", 0, "Single comb and allpass delay (overrides -comb and -allpass)")
	fs.Float64Var(&opts.gain, "gain", 0.9, "Single comb and allpass gain, used with -delay")
	fs.BoolVar(&opts.ms, "ms", false, "Interpret delays as milliseconds at the input sample rate")
	fs.BoolVar(&opts.unsafe, "unsafe", false, "Allow feedback gains and decay with magnitude >= 1")
	fs.IntVar(&opts.bitDepth, "bits", 16, "Output bit depth: 16, 24 or 32")
	fs.BoolVar(&opts.play, "play", false, "Play the result on the default audio device")
	fs.BoolVar(&opts.analyze, "analyze", false, "Print decay times of the configured reverb")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%v\n\nOptions:\n", errUsage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	switch len(rest) {
	case 1:
		opts.input = rest[0]
	case 2:
		opts.input, opts.output = rest[0], rest[1]
	default:
		fs.Usage()
		return nil, errUsage
	}
	if opts.output == "" && !opts.play && !opts.analyze {
		return nil, fmt.Errorf("%w: nothing to do without an output file, -play or -analyze", errUsage)
	}

	var err error
	if opts.combs, err = parseStages(*combs); err != nil {
		return nil, fmt.Errorf("-comb: %w", err)
	}
	if opts.allpasses, err = parseStages(*allpasses); err != nil {
		return nil, fmt.Errorf("-allpass: %w", err)
	}
	return opts, nil
}

// parseStages parses "delay:gain,delay:gain". An empty list is allowed.
func parseStages(s string) ([]stageSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]stageSpec, 0, len(parts))
	for _, part := range parts {
		d, g, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("stage %q: want delay:gain", part)
		}
		delay, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			return nil, fmt.Errorf("stage %q: delay: %w", part, err)
		}
		gain, err := strconv.ParseFloat(strings.TrimSpace(g), 64)
		if err != nil {
			return nil, fmt.Errorf("stage %q: gain: %w", part, err)
		}
		out = append(out, stageSpec{delay: delay, gain: gain})
	}
	return out, nil
}

func formatStages(stages []reverb.Stage) string {
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = strconv.Itoa(s.Delay) + ":" + strconv.FormatFloat(s.Gain, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// config builds the engine configuration, converting millisecond delays with
// the input's sample rate.
func (o *options) config(sampleRate float64) (reverb.Config, error) {
	if o.delay > 0 {
		d, err := o.samples(o.delay, sampleRate)
		if err != nil {
			return reverb.Config{}, err
		}
		cfg := reverb.SingleConfig(d, o.gain, o.attenuation, o.decay)
		cfg.FadeOutSeconds = o.fadeOut
		return cfg, nil
	}

	cfg := reverb.Config{
		Attenuation:    o.attenuation,
		Decay:          o.decay,
		FadeOutSeconds: o.fadeOut,
	}
	var err error
	if cfg.Combs, err = o.stages(o.combs, sampleRate); err != nil {
		return reverb.Config{}, err
	}
	if cfg.Allpasses, err = o.stages(o.allpasses, sampleRate); err != nil {
		return reverb.Config{}, err
	}
	return cfg, nil
}

func (o *options) stages(specs []stageSpec, sampleRate float64) ([]reverb.Stage, error) {
	out := make([]reverb.Stage, len(specs))
	for i, s := range specs {
		d, err := o.samples(s.delay, sampleRate)
		if err != nil {
			return nil, err
		}
		out[i] = reverb.Stage{Delay: d, Gain: s.gain}
	}
	return out, nil
}

func (o *options) samples(delay, sampleRate float64) (int, error) {
	if o.ms {
		return reverb.MillisToSamples(delay, sampleRate)
	}
	if delay != math.Trunc(delay) || math.Abs(delay) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: delay %v is not a whole number of samples", reverb.ErrInvalidParameter, delay)
	}
	return int(delay), nil
}
