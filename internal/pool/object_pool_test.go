package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_ResetAndStats(t *testing.T) {
	t.Parallel()

	p := NewPool(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		func(b *bytes.Buffer) bool { b.Reset(); return true },
	)

	b := p.Get()
	b.WriteString("document")
	p.Put(b)

	again := p.Get()
	assert.Equal(t, 0, again.Len())

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Gets)
	assert.Equal(t, int64(1), stats.Puts)
	assert.GreaterOrEqual(t, stats.News, int64(1))
	assert.LessOrEqual(t, stats.HitRate(), 0.5)
}

func TestPool_RejectedObjectsAreNotPooled(t *testing.T) {
	t.Parallel()

	p := NewPool(
		func() []byte { return nil },
		func([]byte) bool { return false },
	)
	p.Put(make([]byte, 8))
	assert.Equal(t, int64(0), p.Stats().Puts)
}

func TestByteBufferPool_DropsHugeBuffers(t *testing.T) {
	big := bytes.NewBuffer(make([]byte, 0, maxPooledBuffer+1))
	before := ByteBufferPool.Stats().Puts
	ByteBufferPool.Put(big)
	assert.Equal(t, before, ByteBufferPool.Stats().Puts)
}

func TestSlicePool(t *testing.T) {
	t.Parallel()

	p := NewSlicePool[string](4)
	s := p.Get()
	assert.Empty(t, s)
	s = append(s, "a", "b")
	p.Put(s)

	assert.Empty(t, p.Get())
}

func TestStats_HitRateEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, Stats{}.HitRate())
}
