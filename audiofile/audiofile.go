package audiofile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cwbudde/algo-reverb/dsp/signal"
)

// Decoder turns an encoded stream into a mono signal.
type Decoder interface {
	Decode(r io.ReadSeeker) (signal.Signal, error)
}

var decoders = map[string]Decoder{
	".wav":  WAVDecoder{},
	".wave": WAVDecoder{},
	".mp3":  MP3Decoder{},
	".ogg":  VorbisDecoder{},
	".oga":  VorbisDecoder{},
}

// DecoderFor returns the decoder registered for the extension of path.
func DecoderFor(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return dec, nil
}

// Extensions lists the supported file extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Load decodes the file at path as a mono signal.
func Load(path string) (signal.Signal, error) {
	dec, err := DecoderFor(path)
	if err != nil {
		return signal.Signal{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := dec.Decode(f)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Downmix averages each frame of interleaved samples into one mono sample.
func Downmix(interleaved []float64, channels int) ([]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidChannels, channels)
	}
	if len(interleaved)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrInvalidChannels, len(interleaved), channels)
	}
	if channels == 1 {
		return slices.Clone(interleaved), nil
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	inv := 1 / float64(channels)
	for i := range out {
		var sum float64
		for _, v := range interleaved[i*channels : (i+1)*channels] {
			sum += v
		}
		out[i] = sum * inv
	}
	return out, nil
}

func monoSignal(interleaved []float64, channels, sampleRate int) (signal.Signal, error) {
	if len(interleaved) == 0 {
		return signal.Signal{}, ErrEmptyAudio
	}
	mono, err := Downmix(interleaved, channels)
	if err != nil {
		return signal.Signal{}, err
	}
	return signal.New(mono, float64(sampleRate))
}
