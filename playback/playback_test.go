package playback

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignal(n int) signal.Signal {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i+1) / 8
	}
	return signal.Signal{Samples: s, SampleRate: 8}
}

func TestReadFrame(t *testing.T) {
	r := NewReader(testSignal(6), core.WithBlockSize(4))
	require.Equal(t, 4, r.FrameSize())

	dst := make([]float32, 8)
	n, err := r.ReadFrame(dst)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []float32{0.125, 0.25, 0.375, 0.5}, dst[:4])

	dst[3] = 99
	n, err = r.ReadFrame(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float32{0.625, 0.75, 0, 0}, dst[:4], "short frame is zero padded")

	n, err = r.ReadFrame(dst)
	require.ErrorIs(t, err, io.EOF)
	assert.Zero(t, n)
	assert.Equal(t, []float32{0, 0, 0, 0}, dst[:4])
}

func TestReadProducesFloat32LE(t *testing.T) {
	in := testSignal(5)
	data, err := io.ReadAll(NewReader(in))
	require.NoError(t, err)
	require.Len(t, data, 5*BytesPerSample)

	for i, want := range in.Samples {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[i*BytesPerSample:]))
		assert.InDelta(t, want, float64(got), 1e-7)
	}
}

func TestReadWholeSamplesOnly(t *testing.T) {
	r := NewReader(testSignal(3))

	n, err := r.Read(make([]byte, 2))
	require.ErrorIs(t, err, io.ErrShortBuffer)
	assert.Zero(t, n)

	n, err = r.Read(make([]byte, 7))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 1, r.Position())

	n, err = r.Read(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReadEmptySignal(t *testing.T) {
	r := NewReader(signal.Signal{SampleRate: 44100})
	_, err := r.Read(make([]byte, 16))
	require.ErrorIs(t, err, io.EOF)
}

func TestSeekAndRewind(t *testing.T) {
	r := NewReader(testSignal(16))

	require.NoError(t, r.Seek(8))
	assert.Equal(t, 8, r.Remaining())
	assert.Equal(t, time.Second, r.Elapsed())

	require.ErrorIs(t, r.Seek(17), ErrSeekOutOfRange)
	require.ErrorIs(t, r.Seek(-1), ErrSeekOutOfRange)
	assert.Equal(t, 8, r.Position())

	r.Rewind()
	assert.Zero(t, r.Position())
	assert.Equal(t, 16, r.Remaining())
}

func TestConcurrentFramesCoverSignal(t *testing.T) {
	const total = 10000
	r := NewReader(testSignal(total), core.WithBlockSize(64))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		read int
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dst := make([]float32, 64)
			for {
				n, err := r.ReadFrame(dst)
				if err != nil {
					return
				}
				mu.Lock()
				read += n
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, total, read)
	assert.Zero(t, r.Remaining())
}

func TestReaderDoesNotModifySignal(t *testing.T) {
	in := testSignal(4)
	want := append([]float64(nil), in.Samples...)
	r := NewReader(in, core.WithBlockSize(2))
	_, _ = io.ReadAll(r)
	r.Rewind()
	_, _ = r.ReadFrame(make([]float32, 2))
	assert.Equal(t, want, in.Samples)
}
