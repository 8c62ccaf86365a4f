package buffer

import (
	"sync"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Pool provides sync.Pool-based Buffer reuse for per-run scratch storage.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns a Buffer with the requested length. The buffer is zeroed.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Resize(length)
	b.Zero()
	return b
}

// Working returns a Buffer of length len(src)+pad holding a copy of src
// followed by pad zero samples. This is the layout every delay-based stage
// starts from: the input followed by room for the stage's tail.
func (p *Pool) Working(src []float64, pad int) *Buffer {
	pad = max(pad, 0)
	b := p.pool.Get().(*Buffer)
	b.Resize(len(src) + pad)
	n := core.CopyInto(b.samples, src)
	b.ZeroRange(n, len(b.samples))
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
