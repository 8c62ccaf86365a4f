//go:build !headless

package main

import (
	"math"
	"time"

	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/cwbudde/algo-reverb/playback"
	"github.com/ebitengine/oto/v3"
)

// play blocks until s has been played on the default output device.
func play(s signal.Signal) error {
	op := &oto.NewContextOptions{
		SampleRate:   int(math.Round(s.SampleRate)),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return err
	}
	<-ready

	player := ctx.NewPlayer(playback.NewReader(s))
	defer func() { _ = player.Close() }()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Err()
}
