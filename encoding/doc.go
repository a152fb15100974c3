// Package encoding implements the value-level wire format for a single
// column: canonical atom serialization, the repetition-level stream that
// describes nulls and list nesting, and the escape-framed encoding used for
// uncompressed column regions.
//
// A column of declared nested list depth D stores each top-level value as a
// run of repetition levels followed by atom bytes. For atomic data types the
// levels range over {0..D+1}; string and bytes values count as one extra
// list nesting of u8 atoms, so their levels range over {0..D+2}.
//
// The escape-framed form (Encoder/Decoder) is byte-oriented and reserves
// three marker bytes, so streams can be concatenated across chunk boundaries
// without a trailing length header.
package encoding
