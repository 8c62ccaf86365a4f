package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by Compute.
var (
	ErrEmptyIR           = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidFFTSize    = errors.New("response: fft size must be a power of two covering the impulse response")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	buf.data = core.EnsureLen(buf.data, 2*n)
	return buf.data[:n], buf.data[n:], buf
}

// Response holds the non-negative frequency bins [0..Nyquist] of an FFT.
type Response struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64
	Phase      []float64 // unwrapped, radians
}

// Compute transforms ir with an FFT of fftSize points. fftSize 0 selects the
// smallest power of two that holds ir; the impulse response is zero-padded.
func Compute(ir []float64, sampleRate float64, fftSize int) (Response, error) {
	if len(ir) == 0 {
		return Response{}, ErrEmptyIR
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return Response{}, ErrInvalidSampleRate
	}
	if fftSize == 0 {
		fftSize = NextPowerOfTwo(len(ir))
	}
	if fftSize < len(ir) || fftSize < 2 || bits.OnesCount(uint(fftSize)) != 1 {
		return Response{}, fmt.Errorf("%w: %d for %d samples", ErrInvalidFFTSize, fftSize, len(ir))
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Response{}, fmt.Errorf("response: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Response{}, fmt.Errorf("response: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re, im, buf := getScratch(bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	r := Response{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Magnitude:  make([]float64, bins),
		Phase:      make([]float64, bins),
	}
	vecmath.Magnitude(r.Magnitude, re, im)
	for i := range bins {
		r.Phase[i] = math.Atan2(im[i], re[i])
	}
	scratchPool.Put(buf)
	unwrap(r.Phase)
	return r, nil
}

// Frequency returns the centre frequency of bin in Hz.
func (r Response) Frequency(bin int) float64 {
	return float64(bin) * r.SampleRate / float64(r.FFTSize)
}

// MagnitudeDB returns the magnitude of every bin in dB.
func (r Response) MagnitudeDB() []float64 {
	out := make([]float64, len(r.Magnitude))
	for i, m := range r.Magnitude {
		out[i] = core.LinearToDB(m)
	}
	return out
}

// Ripple returns the peak-to-peak magnitude deviation in dB.
func (r Response) Ripple() float64 {
	if len(r.Magnitude) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, db := range r.MagnitudeDB() {
		lo = min(lo, db)
		hi = max(hi, db)
	}
	return hi - lo
}

// GroupDelay returns the group delay of every bin in samples, using a centred
// difference of the unwrapped phase and one-sided differences at the ends.
func (r Response) GroupDelay() []float64 {
	n := len(r.Phase)
	if n < 2 {
		return nil
	}
	dw := 2 * math.Pi / float64(r.FFTSize)
	out := make([]float64, n)
	for i := range out {
		var dphi float64
		switch i {
		case 0:
			dphi = r.Phase[1] - r.Phase[0]
		case n - 1:
			dphi = r.Phase[i] - r.Phase[i-1]
		default:
			dphi = (r.Phase[i+1] - r.Phase[i-1]) / 2
		}
		out[i] = -dphi / dw
	}
	return out
}

// NextPowerOfTwo returns the smallest power of two >= n (and >= 2).
func NextPowerOfTwo(n int) int {
	if n <= 2 {
		return 2
	}
	return 1 << bits.Len(uint(n-1))
}

// unwrap removes +/-2*pi discontinuities in place.
func unwrap(phase []float64) {
	offset := 0.0
	prev := 0.0
	for i, p := range phase {
		if i > 0 {
			switch d := p - prev; {
			case d > math.Pi:
				offset -= 2 * math.Pi
			case d < -math.Pi:
				offset += 2 * math.Pi
			}
		}
		prev = p
		phase[i] = p + offset
	}
}
