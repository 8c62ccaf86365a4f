package audiofile

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	in := signal.Signal{Samples: []float64{0, 0.5, -0.5, 1, -1, 0.25}, SampleRate: 44100}

	for _, depth := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "out.wav")
		require.NoError(t, Save(path, in, depth))

		out, err := Load(path)
		require.NoError(t, err, "bit depth %d", depth)
		assert.Equal(t, in.SampleRate, out.SampleRate)
		require.Len(t, out.Samples, len(in.Samples))
		for i := range in.Samples {
			assert.InDelta(t, in.Samples[i], out.Samples[i], 1e-4, "depth %d sample %d", depth, i)
		}
	}
}

func TestSaveClipsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	in := signal.Signal{Samples: []float64{2, -3}, SampleRate: 8000}
	require.NoError(t, Save(path, in, 16))

	out, err := Load(path)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, -1}, out.Samples, 1e-9)
}

func TestLoadDownmixesStereoWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 22050, 16, 2, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 22050},
		Data:           []int{32767, 0, 0, -32767, 16384, 16384},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 22050.0, out.SampleRate)
	assert.InDeltaSlice(t, []float64{0.5, -0.5, 16384.0 / 32767}, out.Samples, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.wav"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")

	_, err = Load(filepath.Join(dir, "song.flac"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	garbage := filepath.Join(dir, "garbage.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("not a wav file"), 0o644))
	_, err = Load(garbage)
	require.ErrorIs(t, err, ErrInvalidWAV)
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	s := signal.Signal{Samples: []float64{0}, SampleRate: 44100}

	err := Save(filepath.Join(dir, "a.wav"), s, 8)
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)

	err = Save(filepath.Join(dir, "b.wav"), signal.Signal{Samples: []float64{0}}, 16)
	require.ErrorIs(t, err, signal.ErrInvalidSampleRate)

	err = Save(filepath.Join(dir, "missing", "c.wav"), s, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestDecoderFor(t *testing.T) {
	tests := []struct {
		path string
		want Decoder
	}{
		{path: "a.wav", want: WAVDecoder{}},
		{path: "B.WAV", want: WAVDecoder{}},
		{path: "c.mp3", want: MP3Decoder{}},
		{path: "d.ogg", want: VorbisDecoder{}},
	}
	for _, tt := range tests {
		dec, err := DecoderFor(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, dec, tt.path)
	}

	_, err := DecoderFor("noext")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, Extensions(), ".mp3")
}

func TestDownmix(t *testing.T) {
	got, err := Downmix([]float64{1, 0, 0.5, 0.5, -1, -0.5}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, -0.75}, got)

	mono := []float64{1, 2}
	got, err = Downmix(mono, 1)
	require.NoError(t, err)
	assert.Equal(t, mono, got)
	got[0] = 9
	assert.Equal(t, 1.0, mono[0], "mono downmix must copy")

	_, err = Downmix([]float64{1, 2, 3}, 2)
	require.ErrorIs(t, err, ErrInvalidChannels)
	_, err = Downmix(mono, 0)
	require.ErrorIs(t, err, ErrInvalidChannels)
}

func TestPCM16ToFloat(t *testing.T) {
	got := pcm16ToFloat([]byte{0x00, 0x80, 0xff, 0x7f, 0x00, 0x00, 0x01})
	require.Len(t, got, 3)
	assert.Equal(t, -1.0, got[0])
	assert.InDelta(t, 32767.0/32768, got[1], 1e-12)
	assert.Equal(t, 0.0, got[2])
}

func TestCompressedDecodersRejectEmptyStreams(t *testing.T) {
	for _, dec := range []Decoder{MP3Decoder{}, VorbisDecoder{}} {
		_, err := dec.Decode(bytes.NewReader(nil))
		assert.Error(t, err, "%T", dec)
	}
}

func TestMonoSignalRejectsEmpty(t *testing.T) {
	_, err := monoSignal(nil, 2, 44100)
	require.ErrorIs(t, err, ErrEmptyAudio)

	_, err = monoSignal([]float64{math.Pi}, 1, 0)
	require.ErrorIs(t, err, signal.ErrInvalidSampleRate)
}
