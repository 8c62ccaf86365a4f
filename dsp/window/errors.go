package window

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeLength is returned for window lengths below zero.
	ErrNegativeLength = errors.New("window: length must be >= 0")
	// ErrFadeTooLong is returned when a fade window does not fit in the buffer.
	ErrFadeTooLong = errors.New("window: fade longer than buffer")
)

func validateFade(bufLen, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if n > bufLen {
		return fmt.Errorf("%w: fade %d samples, buffer %d samples", ErrFadeTooLong, n, bufLen)
	}
	return nil
}
