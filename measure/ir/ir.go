package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by IR analysis functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// schroederFloorDB is the value used for points whose remaining energy is zero.
const schroederFloorDB = -200

// Metrics holds impulse response analysis results. Times are in seconds;
// a zero time means the response did not decay far enough to measure it.
type Metrics struct {
	RT60       float64 // T30 when available, otherwise T20
	EDT        float64 // early decay time (0 to -10 dB)
	T20        float64 // -5 to -25 dB slope extrapolated to -60 dB
	T30        float64 // -5 to -35 dB slope extrapolated to -60 dB
	C80        float64 // clarity at 80 ms in dB
	CenterTime float64 // energy centroid
	PeakIndex  int     // sample index of the absolute maximum
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if a.SampleRate <= 0 || !core.IsFinite(a.SampleRate) {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze computes all metrics, measuring from the IR peak onwards.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peakIdx := findPeak(ir)
	tail := ir[peakIdx:]
	curve := schroederIntegral(tail)

	m := Metrics{
		PeakIndex:  peakIdx,
		CenterTime: a.centerTime(tail),
		C80:        a.clarity(tail, 0.080),
		EDT:        a.reverbTime(curve, 0, -10),
		T20:        a.reverbTime(curve, -5, -25),
		T30:        a.reverbTime(curve, -5, -35),
	}
	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}
	return m, nil
}

// RT60 returns the reverberation time of ir, preferring T30 over T20.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	m, err := a.Analyze(ir)
	if err != nil {
		return 0, err
	}
	if m.RT60 == 0 {
		return 0, ErrNoDecay
	}
	return m.RT60, nil
}

// SchroederIntegral returns the Schroeder backward integral of ir in dB,
// normalized to 0 dB at the first sample.
//
//	S(t) = 10*log10( ∫_t^∞ h²(τ) dτ / ∫_0^∞ h²(τ) dτ )
func SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return schroederIntegral(ir), nil
}

func schroederIntegral(ir []float64) []float64 {
	result := make([]float64, len(ir))

	var cum float64
	for i := len(ir) - 1; i >= 0; i-- {
		cum += ir[i] * ir[i]
		result[i] = cum
	}

	total := result[0]
	if total <= 0 {
		for i := range result {
			result[i] = schroederFloorDB
		}
		return result
	}
	for i, v := range result {
		if v <= 0 {
			result[i] = schroederFloorDB
			continue
		}
		result[i] = core.LinearPowerToDB(v / total)
	}
	return result
}

// reverbTime fits a line to the Schroeder curve between startDB and endDB
// and extrapolates it to -60 dB.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	startIdx, endIdx := -1, -1
	for i, v := range curve {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}
		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}
	if startIdx < 0 || endIdx-startIdx < 1 {
		return 0
	}

	n := endIdx - startIdx + 1
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, curve[startIdx:endIdx+1], nil, false)
	if slope >= 0 || math.IsNaN(slope) {
		return 0
	}
	return -60 / (slope * a.SampleRate)
}

// clarity returns the early-to-late energy ratio in dB at boundarySec.
func (a *Analyzer) clarity(ir []float64, boundarySec float64) float64 {
	boundary := int(math.Round(boundarySec * a.SampleRate))
	if boundary <= 0 {
		return math.Inf(-1)
	}
	if boundary >= len(ir) {
		return math.Inf(1)
	}

	var early, late float64
	for i, v := range ir {
		if i < boundary {
			early += v * v
		} else {
			late += v * v
		}
	}
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(early / late)
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64
	for i, v := range ir {
		e := v * v
		num += float64(i) / a.SampleRate * e
		den += e
	}
	if den <= 0 {
		return 0
	}
	return num / den
}

func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}
	return peakIdx
}
