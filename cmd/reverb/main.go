// Command reverb applies a Schroeder reverberator to an audio file.
//
// Usage:
//
//	reverb input.wav output.wav                        # chapel preset
//	reverb -delay 1200 -gain 0.8 input.mp3 output.wav  # one comb and one allpass
//	reverb -ms -comb 30:0.8,40:0.8 -allpass 5:0.7 in.ogg out.wav
//	reverb -play -analyze input.wav                    # listen and report decay times
//
// The input is decoded as mono; the output is a mono PCM WAV file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/algo-reverb/audiofile"
	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/cwbudde/algo-reverb/measure/ir"
	"github.com/cwbudde/algo-reverb/measure/level"
)

// analyzeSeconds is the minimum impulse response length rendered for -analyze.
const analyzeSeconds = 5.0

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("Input: %s", opts.input)
		if opts.output != "" {
			log.Printf("Output: %s (%d-bit)", opts.output, opts.bitDepth)
		}
	}

	in, err := audiofile.Load(opts.input)
	if err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("Decoded %d samples at %.0f Hz (%v)", in.Len(), in.SampleRate, in.Duration())
		logLevel("Input", in.Samples)
	}

	cfg, err := opts.config(in.SampleRate)
	if err != nil {
		return err
	}
	var engineOpts []reverb.Option
	if opts.unsafe {
		engineOpts = append(engineOpts, reverb.WithUnstableFeedback())
	}
	eng, err := reverb.NewEngine(cfg, engineOpts...)
	if err != nil {
		return err
	}
	if opts.verbose {
		log.Printf("Combs: %s", formatStages(cfg.Combs))
		log.Printf("Allpasses: %s", formatStages(cfg.Allpasses))
		log.Printf("Attenuation %.3g, decay %.3g, fade-out %.3g s", cfg.Attenuation, cfg.Decay, cfg.FadeOutSeconds)
	}

	out, err := eng.Process(in)
	if err != nil {
		return fmt.Errorf("reverb failed: %w", err)
	}
	if opts.verbose {
		logLevel("Output", out.Samples)
	}

	if opts.output != "" {
		if err := audiofile.Save(opts.output, out, opts.bitDepth); err != nil {
			return err
		}
		if opts.verbose {
			log.Printf("Wrote %s", opts.output)
		}
	}

	if opts.analyze {
		if err := report(stdout, eng, in.SampleRate); err != nil {
			return err
		}
	}

	if opts.play {
		if opts.verbose {
			log.Printf("Playing %v", out.Duration())
		}
		if err := play(out); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	}
	return nil
}

// report renders the engine's impulse response and prints its decay metrics.
func report(w io.Writer, eng *reverb.Engine, sampleRate float64) error {
	length := max(
		signal.SecondsToSamples(analyzeSeconds, sampleRate),
		eng.Config().FadeOutSamples(sampleRate),
	)
	resp, err := eng.ImpulseResponse(sampleRate, length)
	if err != nil {
		return fmt.Errorf("impulse response: %w", err)
	}
	m, err := ir.NewAnalyzer(sampleRate).Analyze(resp.Samples)
	if err != nil {
		return fmt.Errorf("decay analysis: %w", err)
	}

	fmt.Fprintf(w, "RT60: %s\n", formatSeconds(m.RT60))
	fmt.Fprintf(w, "EDT:  %s\n", formatSeconds(m.EDT))
	fmt.Fprintf(w, "T20:  %s\n", formatSeconds(m.T20))
	fmt.Fprintf(w, "T30:  %s\n", formatSeconds(m.T30))
	fmt.Fprintf(w, "C80:  %.1f dB\n", m.C80)
	fmt.Fprintf(w, "Ts:   %.1f ms\n", m.CenterTime*1000)
	return nil
}

func formatSeconds(s float64) string {
	if s == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f s", s)
}

func logLevel(name string, samples []float64) {
	st := level.Measure(samples)
	log.Printf("%s level: peak %.1f dBFS, RMS %.1f dBFS, crest %.1f dB", name, st.PeakDB, st.RMSdB, st.CrestFactorDB)
}
