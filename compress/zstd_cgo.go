//go:build gozstd

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress compresses the chunk with the libzstd binding.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, c.nativeLevel()), nil
}

// Decompress restores a Zstd-compressed chunk with the libzstd binding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
