// Package compress implements the compressed form of column payloads: the
// self-delimiting atom container, the byte-compression backends that fill
// its chunks, and the ValueCodec that composes a repetition-level stream
// with a compressed atom stream.
//
// Two codec families exist, named on the wire next to the payload:
//
//   - "Q" for atomic data types (i64, f32, f64, bool, timestamp) and for
//     every repetition-level stream
//   - "Z" for string and bytes columns, whose values flatten to u8 atoms
//
// Both families share the container framing, so a decoder needs nothing but
// the payload bytes: the header records the backend and level, chunks carry
// their own lengths and checksums, and a terminator marks the first byte
// past the container.
package compress
