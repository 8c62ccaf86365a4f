package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/signal"
)

// Errors returned by the reverb stages and engine. Detail is attached with
// %w wrapping; match with errors.Is.
var (
	ErrInvalidParameter   = errors.New("reverb: invalid parameter")
	ErrBufferUnderflow    = errors.New("reverb: fade-out longer than tail")
	ErrSilentInput        = fmt.Errorf("reverb: silent input: %w", signal.ErrSilent)
	ErrNumericInstability = errors.New("reverb: numeric instability")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// checkFinite reports ErrNumericInstability for the first NaN or ±Inf sample
// produced by the named stage.
func checkFinite(stage string, buf []float64) error {
	idx := core.FirstNonFinite(buf)
	if idx < 0 {
		return nil
	}
	return fmt.Errorf("%w: %s produced %v at sample %d", ErrNumericInstability, stage, buf[idx], idx)
}
