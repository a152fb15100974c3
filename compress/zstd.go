package compress

// ZstdCompressor is the default backend for both codec families. It favors
// compression ratio, which suits cold column payloads read back rarely and
// shipped over the network.
type ZstdCompressor struct {
	level int
}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a Zstd backend at the given codec-kit level
// (0 to MaxLevel). DefaultLevel matches the server's encoder default.
func NewZstdCompressor(level int) ZstdCompressor {
	return ZstdCompressor{level: level}
}

// nativeLevel maps the codec-kit level scale onto zstd's native scale,
// which starts at 1.
func (c ZstdCompressor) nativeLevel() int {
	if c.level < 1 {
		return 1
	}

	return c.level
}
