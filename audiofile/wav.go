package audiofile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WAVDecoder decodes integer PCM WAV files of 16, 24 or 32 bits.
type WAVDecoder struct{}

// Decode implements Decoder.
func (WAVDecoder) Decode(r io.ReadSeeker) (signal.Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return signal.Signal{}, ErrInvalidWAV
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return signal.Signal{}, fmt.Errorf("%w: WAV audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	bitDepth := int(dec.BitDepth)
	scale, err := pcmScale(bitDepth)
	if err != nil {
		return signal.Signal{}, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	samples := make([]float64, len(buf.Data))
	inv := 1 / scale
	for i, v := range buf.Data {
		samples[i] = float64(v) * inv
	}
	return monoSignal(samples, int(dec.NumChans), int(dec.SampleRate))
}

// WriteWAV encodes s as a mono integer PCM WAV stream. Samples are clipped
// to [-1, 1] and the sample rate is rounded to whole hertz.
func WriteWAV(w io.WriteSeeker, s signal.Signal, bitDepth int) error {
	if err := signal.ValidateSampleRate(s.SampleRate); err != nil {
		return err
	}
	scale, err := pcmScale(bitDepth)
	if err != nil {
		return err
	}
	rate := int(math.Round(s.SampleRate))

	data := make([]int, len(s.Samples))
	for i, v := range s.Samples {
		data[i] = int(math.Round(max(-1, min(1, v)) * scale))
	}

	enc := wav.NewEncoder(w, rate, bitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return nil
}

// Save writes s to path as a mono PCM WAV file.
func Save(path string, s signal.Signal, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteWAV(f, s, bitDepth); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// pcmScale returns the full-scale integer value for bitDepth.
func pcmScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return math.MaxInt16, nil
	case 24:
		return 1<<23 - 1, nil
	case 32:
		return math.MaxInt32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}
