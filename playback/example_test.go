package playback_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/cwbudde/algo-reverb/playback"
)

func ExampleReader_ReadFrame() {
	s := signal.Signal{Samples: []float64{0.5, 0.25, -0.5}, SampleRate: 44100}
	r := playback.NewReader(s, core.WithBlockSize(2))

	frame := make([]float32, r.FrameSize())
	for {
		n, err := r.ReadFrame(frame)
		if err != nil {
			break
		}
		fmt.Println(n, frame)
	}
	// Output:
	// 2 [0.5 0.25]
	// 1 [-0.5 0]
}
