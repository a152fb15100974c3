// Package deletion implements the codec for a segment's deletion bitmap,
// the bool-per-row-ID sequence marking deleted rows.
package deletion

import (
	"github.com/pancake-db/pancake-core/compress"
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/format"
)

// CompressDeletions encodes the bitmap. The codec is pure: compressing the
// same bitmap twice yields the same bytes.
func CompressDeletions(isDeleted []bool) ([]byte, error) {
	raw := make([]byte, len(isDeleted))
	for i, d := range isDeleted {
		if d {
			raw[i] = 0x01
		}
	}

	return compress.EncodeContainer(nil, raw, len(raw), format.CompressionZstd, compress.DefaultLevel)
}

// DecompressDeletions decodes a bitmap. Empty input means no deletions and
// decodes to an empty bitmap.
func DecompressDeletions(data []byte) ([]bool, error) {
	if len(data) == 0 {
		return []bool{}, nil
	}

	raw, count, consumed, err := compress.DecodeContainer(data)
	if err != nil {
		return nil, err
	}
	if consumed != len(data) {
		return nil, errs.Corrupt("%d trailing bytes after the deletion bitmap", len(data)-consumed)
	}
	if len(raw) != count {
		return nil, errs.Corrupt("deletion bitmap holds %d rows, header says %d", len(raw), count)
	}

	isDeleted := make([]bool, len(raw))
	for i, b := range raw {
		isDeleted[i] = b != 0x00
	}

	return isDeleted, nil
}
