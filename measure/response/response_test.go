package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-reverb/internal/testutil"
)

func TestAllpassResponseIsFlat(t *testing.T) {
	for _, gain := range []float64{0.3, 0.7, -0.5} {
		h, err := reverb.Allpass(testutil.Impulse(4096, 0), 50, gain)
		if err != nil {
			t.Fatalf("Allpass() error = %v", err)
		}
		r, err := Compute(h, 44100, 0)
		if err != nil {
			t.Fatalf("Compute() error = %v", err)
		}
		if r.FFTSize != 4096 {
			t.Fatalf("FFTSize = %d, want 4096", r.FFTSize)
		}
		if ripple := r.Ripple(); ripple > 1e-9 {
			t.Fatalf("gain %v: ripple = %g dB, want flat", gain, ripple)
		}
	}
}

func TestCombResponsePeaks(t *testing.T) {
	h, err := reverb.Comb(testutil.Impulse(1024, 0), 4, 0.5)
	if err != nil {
		t.Fatalf("Comb() error = %v", err)
	}
	r, err := Compute(h, 48000, 0)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	tests := []struct {
		bin  int
		want float64
	}{
		{bin: 0, want: 2},
		{bin: 128, want: 1 / 1.5},
		{bin: 256, want: 2},
		{bin: 512, want: 2},
	}
	for _, tt := range tests {
		if got := r.Magnitude[tt.bin]; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Magnitude[%d] = %v, want %v", tt.bin, got, tt.want)
		}
	}
	if got := r.Frequency(128); got != 6000 {
		t.Errorf("Frequency(128) = %v, want 6000", got)
	}
}

func TestDelayGroupDelay(t *testing.T) {
	h, err := reverb.Allpass(testutil.Impulse(64, 0), 5, 0)
	if err != nil {
		t.Fatalf("Allpass() error = %v", err)
	}
	r, err := Compute(h, 1000, 0)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for i, d := range r.GroupDelay() {
		if math.Abs(d-5) > 1e-9 {
			t.Fatalf("GroupDelay[%d] = %v, want 5", i, d)
		}
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name    string
		ir      []float64
		rate    float64
		fftSize int
		want    error
	}{
		{name: "empty", ir: nil, rate: 1000, want: ErrEmptyIR},
		{name: "bad rate", ir: []float64{1}, rate: -1, want: ErrInvalidSampleRate},
		{name: "not power of two", ir: []float64{1}, rate: 1000, fftSize: 100, want: ErrInvalidFFTSize},
		{name: "too short", ir: make([]float64, 20), rate: 1000, fftSize: 16, want: ErrInvalidFFTSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.ir, tt.rate, tt.fftSize)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compute() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[int]int{0: 2, 1: 2, 3: 4, 4: 4, 5: 8, 1000: 1024, 1024: 1024}
	for n, want := range tests {
		if got := NextPowerOfTwo(n); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}
