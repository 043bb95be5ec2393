// Package pool provides typed wrappers around sync.Pool for the buffers the
// corpus reader and the counting driver allocate per document and per batch.
package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// Buffers larger than this are dropped instead of pooled so one huge
// document does not pin its memory for the rest of the run.
const maxPooledBuffer = 4 << 20

// Pool is a generic object pool.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) bool

	gets atomic.Int64
	puts atomic.Int64
	news atomic.Int64
}

// NewPool creates a pool. reset prepares an object for reuse and reports
// whether it may be pooled at all; a nil reset pools everything as is.
func NewPool[T any](newFunc func() T, reset func(T) bool) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() any {
		p.news.Add(1)
		return newFunc()
	}
	return p
}

// Get retrieves an object from the pool.
func (p *Pool[T]) Get() T {
	p.gets.Add(1)
	return p.pool.Get().(T)
}

// Put returns an object to the pool.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil && !p.reset(obj) {
		return
	}
	p.puts.Add(1)
	p.pool.Put(obj)
}

// Stats returns pool statistics.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Gets: p.gets.Load(),
		Puts: p.puts.Load(),
		News: p.news.Load(),
	}
}

// Stats contains pool statistics.
type Stats struct {
	Gets int64 `json:"gets"`
	Puts int64 `json:"puts"`
	News int64 `json:"news"`
}

// HitRate returns the share of Gets served without allocating.
func (s Stats) HitRate() float64 {
	if s.Gets == 0 {
		return 0
	}
	return float64(s.Gets-s.News) / float64(s.Gets)
}

// ByteBufferPool provides read buffers for document contents.
var ByteBufferPool = NewPool(
	func() *bytes.Buffer {
		return bytes.NewBuffer(make([]byte, 0, 64<<10))
	},
	func(b *bytes.Buffer) bool {
		if b.Cap() > maxPooledBuffer {
			return false
		}
		b.Reset()
		return true
	},
)

// SlicePool provides pooled slices.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates a new slice pool.
func NewSlicePool[T any](initSize int) *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, initSize)
				return &s
			},
		},
	}
}

// Get retrieves an empty slice from the pool.
func (p *SlicePool[T]) Get() []T {
	return (*p.pool.Get().(*[]T))[:0]
}

// Put returns a slice to the pool. Elements are zeroed so pooled slices do
// not keep document text alive.
func (p *SlicePool[T]) Put(s []T) {
	clear(s)
	s = s[:0]
	p.pool.Put(&s)
}
