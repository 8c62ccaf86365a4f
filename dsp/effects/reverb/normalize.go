package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/signal"
)

// Normalize returns input scaled to a peak absolute value of exactly 1.
//
// Silent input has no peak to scale against: the result is then an all-zero
// slice of the same length together with ErrSilentInput.
func Normalize(input []float64) ([]float64, error) {
	out, err := signal.Normalize(input, 1)
	switch {
	case errors.Is(err, signal.ErrSilent):
		return out, ErrSilentInput
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrNumericInstability, err)
	}
	return out, nil
}
