package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cwbudde/algo-reverb/dsp/signal"
	gomp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces interleaved stereo 16-bit little-endian PCM.
const mp3Channels = 2

// MP3Decoder decodes MPEG-1/2 Layer III streams.
type MP3Decoder struct{}

// Decode implements Decoder.
func (MP3Decoder) Decode(r io.ReadSeeker) (signal.Signal, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("mp3: %w", err)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("mp3: %w", err)
	}
	return monoSignal(pcm16ToFloat(pcm), mp3Channels, dec.SampleRate())
}

// pcm16ToFloat converts little-endian int16 samples to [-1, 1).
// A trailing odd byte is ignored.
func pcm16ToFloat(b []byte) []float64 {
	out := make([]float64, len(b)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(b[2*i:]))
		out[i] = float64(v) / 32768
	}
	return out
}
