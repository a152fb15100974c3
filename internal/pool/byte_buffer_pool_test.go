package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("hello"))
	bb.AppendByte('!')
	require.Equal(t, 6, bb.Len())
	require.Equal(t, "hello!", string(bb.Bytes()))

	bb.Reset()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, cap(bb.B), 8)
}

func TestByteBuffer_GrowKeepsContents(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("abcd"))
	bb.Grow(1 << 16)
	require.Equal(t, "abcd", string(bb.Bytes()))
	require.GreaterOrEqual(t, cap(bb.B)-bb.Len(), 1<<16)
}

func TestPayloadBufferPool(t *testing.T) {
	bb := GetPayloadBuffer()
	require.Zero(t, bb.Len())
	bb.MustWrite([]byte("payload"))
	PutPayloadBuffer(bb)

	again := GetPayloadBuffer()
	require.Zero(t, again.Len())
	PutPayloadBuffer(again)
}
