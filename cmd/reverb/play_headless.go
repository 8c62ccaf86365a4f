//go:build headless

package main

import (
	"errors"

	"github.com/cwbudde/algo-reverb/dsp/signal"
)

func play(signal.Signal) error {
	return errors.New("audio output is not available in headless builds")
}
