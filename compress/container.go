package compress

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pancake-db/pancake-core/endian"
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/format"
)

// Atom container framing. The container is self-delimiting: a reader
// consumes the header and chunks up to the terminator and reports how many
// bytes it used, so a rep-level container can be followed directly by an
// atom container in one payload.
//
//	u16  magic (big-endian)
//	u8   backend (format.CompressionType)
//	u8   level
//	uvarint atom count
//	repeat: uvarint chunk length > 0, u64 xxhash64 of chunk (big-endian),
//	        chunk bytes
//	uvarint 0 terminator
const (
	containerMagic uint16 = 0xA110

	// maxChunkBytes bounds how much raw data one chunk holds, so decoders
	// never need more than one chunk in flight.
	maxChunkBytes = 1 << 20

	// DefaultLevel is the compression level used when callers do not choose
	// one. It matches the server encoder's default.
	DefaultLevel = 7
	// MaxLevel is the top of the codec-kit level scale.
	MaxLevel = 12
)

var engine = endian.GetBigEndianEngine()

// EncodeContainer appends a container holding raw to dst. atomCount records
// how many atoms (or repetition levels) the raw bytes represent; the decoder
// returns it so callers can validate shape without knowing the backend.
func EncodeContainer(dst, raw []byte, atomCount int, backend format.CompressionType, level int) ([]byte, error) {
	codec, err := NewBackend(backend, level)
	if err != nil {
		return nil, err
	}

	dst = engine.AppendUint16(dst, containerMagic)
	dst = append(dst, byte(backend), byte(level)) //nolint:gosec
	dst = binary.AppendUvarint(dst, uint64(atomCount))

	for len(raw) > 0 {
		chunk := raw
		if len(chunk) > maxChunkBytes {
			chunk = chunk[:maxChunkBytes]
		}
		raw = raw[len(chunk):]

		comp, err := codec.Compress(chunk)
		if err != nil {
			return nil, errs.Other(err)
		}
		dst = binary.AppendUvarint(dst, uint64(len(comp)))
		dst = engine.AppendUint64(dst, xxhash.Sum64(comp))
		dst = append(dst, comp...)
	}

	return binary.AppendUvarint(dst, 0), nil
}

// DecodeContainer reads one container from the front of src. It returns the
// raw (decompressed) bytes, the recorded atom count, and how many bytes of
// src the container occupied.
func DecodeContainer(src []byte) (raw []byte, atomCount int, consumed int, err error) {
	if len(src) < 4 {
		return nil, 0, 0, errs.Corrupt("atom container truncated at header")
	}
	if magic := engine.Uint16(src[:2]); magic != containerMagic {
		return nil, 0, 0, errs.Corrupt("bad atom container magic 0x%04X", magic)
	}
	backend := format.CompressionType(src[2])
	level := int(src[3])
	codec, err := NewBackend(backend, level)
	if err != nil {
		return nil, 0, 0, err
	}

	pos := 4
	count, n := binary.Uvarint(src[pos:])
	if n <= 0 {
		return nil, 0, 0, errs.Corrupt("atom container truncated at atom count")
	}
	pos += n

	for {
		chunkLen, n := binary.Uvarint(src[pos:])
		if n <= 0 {
			return nil, 0, 0, errs.Corrupt("atom container truncated at chunk length")
		}
		pos += n
		if chunkLen == 0 {
			break
		}
		remaining := uint64(len(src) - pos)
		if chunkLen > remaining || remaining-chunkLen < 8 {
			return nil, 0, 0, errs.Corrupt("atom container truncated inside chunk")
		}
		sum := engine.Uint64(src[pos : pos+8])
		pos += 8
		chunk := src[pos : pos+int(chunkLen)] //nolint:gosec
		pos += int(chunkLen)                  //nolint:gosec
		if xxhash.Sum64(chunk) != sum {
			return nil, 0, 0, errs.Corrupt("atom container chunk checksum mismatch")
		}
		plain, err := codec.Decompress(chunk)
		if err != nil {
			return nil, 0, 0, errs.Corrupt("atom container chunk does not decompress: %v", err)
		}
		raw = append(raw, plain...)
	}

	return raw, int(count), pos, nil //nolint:gosec
}

// CompressRepLevels encodes a repetition-level stream into its own
// container, one byte per level.
func CompressRepLevels(levels []uint8, backend format.CompressionType, level int) ([]byte, error) {
	return EncodeContainer(nil, levels, len(levels), backend, level)
}

// DecompressRepLevels reads a rep-level container from the front of data and
// reports the offset of the first byte past it.
func DecompressRepLevels(data []byte) (levels []uint8, consumed int, err error) {
	raw, count, consumed, err := DecodeContainer(data)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) != count {
		return nil, 0, errs.Corrupt("rep-level container holds %d levels, header says %d", len(raw), count)
	}

	return raw, consumed, nil
}
