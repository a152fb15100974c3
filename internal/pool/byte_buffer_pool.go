package pool

import "sync"

const (
	// PayloadBufferDefaultSize is the initial capacity of pooled buffers,
	// sized for a typical single-column segment payload.
	PayloadBufferDefaultSize = 16 * 1024
	// PayloadBufferMaxThreshold is the largest buffer returned to the pool;
	// bigger ones are dropped so one huge payload does not pin memory.
	PayloadBufferMaxThreshold = 128 * 1024
)

// ByteBuffer is a growable byte slice with an amortized growth strategy,
// pooled to avoid per-encode allocations.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// AppendByte appends a single byte to the buffer.
func (bb *ByteBuffer) AppendByte(b byte) {
	bb.B = append(bb.B, b)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by the pool default size, larger ones by
// 25% of capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := PayloadBufferDefaultSize
	if cap(bb.B) > 4*PayloadBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

var payloadBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(PayloadBufferDefaultSize)
	},
}

// GetPayloadBuffer obtains a reset ByteBuffer from the pool.
func GetPayloadBuffer() *ByteBuffer {
	bb, _ := payloadBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutPayloadBuffer returns a ByteBuffer to the pool, dropping oversized ones.
func PutPayloadBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > PayloadBufferMaxThreshold {
		return
	}
	payloadBufferPool.Put(bb)
}
