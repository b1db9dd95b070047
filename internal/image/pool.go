package image

import (
	"bytes"
	"image/png"
	"sync"
)

// encoderPool implements png.EncoderBufferPool so repeated exports reuse
// the encoder's scanline buffers.
//
// Thread safety: All methods are safe for concurrent use.
type encoderPool struct {
	pool sync.Pool
}

// Get retrieves an encoder buffer from the pool, or nil when empty
// (png.Encoder allocates a fresh one in that case).
func (p *encoderPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

// Put returns an encoder buffer to the pool.
func (p *encoderPool) Put(b *png.EncoderBuffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}

var encoderBuffers = &encoderPool{}

// maxPooledBuffer bounds the capacity of byte buffers kept for reuse.
const maxPooledBuffer = 64 << 20

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// GetBuffer returns an empty byte buffer from the package pool.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the package pool. Buffers larger than
// maxPooledBuffer are dropped.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}
