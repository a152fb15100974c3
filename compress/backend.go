package compress

import (
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/format"
)

// Compressor compresses one chunk of atom bytes.
//
// Memory management:
//   - Returned slice is owned by the caller; NoOpCompressor returns the
//     input slice itself rather than a new allocation
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores one chunk of atom bytes. Implementations validate
// the chunk format and fail on corrupted or incompatible data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression backend.
type Codec interface {
	Compressor
	Decompressor
}

// NewBackend creates the Codec for a compression backend at the given level.
// The level is the codec-kit scale (0 to MaxLevel); backends without level
// support ignore it.
func NewBackend(ct format.CompressionType, level int) (Codec, error) {
	if level < 0 || level > MaxLevel {
		return nil, errs.Invalid("compression level %d out of range [0, %d]", level, MaxLevel)
	}
	switch ct {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(level), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, errs.Invalid("unknown compression backend 0x%02X", uint8(ct))
	}
}
