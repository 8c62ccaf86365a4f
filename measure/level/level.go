// Package level computes time-domain level statistics of a signal.
package level

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds level statistics. Decibel values are relative to full scale
// (1.0) and are -Inf for silence.
type Stats struct {
	Length        int
	DC            float64
	RMS           float64
	RMSdB         float64
	Peak          float64
	PeakDB        float64
	PeakPos       int
	CrestFactor   float64 // peak / RMS; 0 for silence
	CrestFactorDB float64
	ZeroCrossings int
}

// Measure computes Stats for x. An empty slice yields zero values with
// -Inf levels.
func Measure(x []float64) Stats {
	st := Stats{
		Length:  len(x),
		RMSdB:   math.Inf(-1),
		PeakDB:  math.Inf(-1),
		PeakPos: -1,
	}
	if len(x) == 0 {
		return st
	}

	st.DC = stat.Mean(x, nil)
	st.RMS = RMS(x)
	st.RMSdB = core.LinearToDB(st.RMS)

	maxIdx, minIdx := floats.MaxIdx(x), floats.MinIdx(x)
	st.PeakPos = maxIdx
	if -x[minIdx] > x[maxIdx] {
		st.PeakPos = minIdx
	}
	st.Peak = math.Abs(x[st.PeakPos])
	st.PeakDB = core.LinearToDB(st.Peak)

	if st.RMS > 0 {
		st.CrestFactor = st.Peak / st.RMS
		st.CrestFactorDB = core.LinearToDB(st.CrestFactor)
	}
	st.ZeroCrossings = ZeroCrossings(x)
	return st
}

// RMS returns the root-mean-square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

// ZeroCrossings counts sign changes between consecutive samples. Zero
// samples carry no sign and are skipped.
func ZeroCrossings(x []float64) int {
	count := 0
	prev := 0.0
	for _, v := range x {
		if v == 0 {
			continue
		}
		if prev != 0 && (v > 0) != (prev > 0) {
			count++
		}
		prev = v
	}
	return count
}
