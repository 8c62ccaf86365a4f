// Package playback streams a finished signal to an audio device.
//
// A Reader owns a read cursor over a rendered buffer; the device pulls
// fixed-size frames (ReadFrame) or raw float32 little-endian PCM (Read)
// while the buffer itself is never modified.
package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
	"time"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/signal"
)

// BytesPerSample is the size of one float32 PCM sample.
const BytesPerSample = 4

var ErrSeekOutOfRange = errors.New("playback: seek position out of range")

// Reader is a pull-based cursor over a mono signal.
type Reader struct {
	mu         sync.Mutex
	samples    []float64
	sampleRate float64
	frameSize  int
	pos        int
}

// NewReader returns a Reader positioned at the start of s. The frame size
// is taken from core.WithBlockSize.
func NewReader(s signal.Signal, opts ...core.ProcessorOption) *Reader {
	cfg := core.ApplyProcessorOptions(opts...)
	return &Reader{
		samples:    s.Samples,
		sampleRate: s.SampleRate,
		frameSize:  cfg.BlockSize,
	}
}

// SampleRate returns the rate of the underlying signal.
func (r *Reader) SampleRate() float64 { return r.sampleRate }

// FrameSize returns the number of samples ReadFrame delivers per call.
func (r *Reader) FrameSize() int { return r.frameSize }

// ReadFrame fills dst[:FrameSize()] with the next samples. When fewer remain,
// the rest of the frame is zeroed. It returns the number of signal samples
// copied and io.EOF once the cursor has reached the end.
func (r *Reader) ReadFrame(dst []float32) (int, error) {
	frame := dst[:min(len(dst), r.frameSize)]

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pos >= len(r.samples) {
		clear(frame)
		return 0, io.EOF
	}
	n := min(len(frame), len(r.samples)-r.pos)
	for i, v := range r.samples[r.pos : r.pos+n] {
		frame[i] = float32(v)
	}
	clear(frame[n:])
	r.pos += n
	return n, nil
}

// Read implements io.Reader, producing float32 little-endian PCM. Only whole
// samples are written.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) < BytesPerSample {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pos >= len(r.samples) {
		return 0, io.EOF
	}
	n := min(len(p)/BytesPerSample, len(r.samples)-r.pos)
	for i, v := range r.samples[r.pos : r.pos+n] {
		binary.LittleEndian.PutUint32(p[i*BytesPerSample:], math.Float32bits(float32(v)))
	}
	r.pos += n
	return n * BytesPerSample, nil
}

// Position returns the cursor in samples.
func (r *Reader) Position() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

// Remaining returns the number of samples not yet read.
func (r *Reader) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples) - r.pos
}

// Elapsed returns the cursor position as playback time.
func (r *Reader) Elapsed() time.Duration {
	if r.sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(r.Position()) / r.sampleRate * float64(time.Second))
}

// Seek moves the cursor to sample pos.
func (r *Reader) Seek(pos int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pos < 0 || pos > len(r.samples) {
		return ErrSeekOutOfRange
	}
	r.pos = pos
	return nil
}

// Rewind moves the cursor back to the start.
func (r *Reader) Rewind() {
	r.mu.Lock()
	r.pos = 0
	r.mu.Unlock()
}
