package audiofile

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis streams.
type VorbisDecoder struct{}

// Decode implements Decoder.
func (VorbisDecoder) Decode(r io.ReadSeeker) (signal.Signal, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("vorbis: %w", err)
	}
	samples := make([]float64, len(data))
	for i, v := range data {
		samples[i] = float64(v)
	}
	return monoSignal(samples, format.Channels, format.SampleRate)
}
