package encoding

import (
	"encoding/binary"

	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/field"
	"github.com/pancake-db/pancake-core/format"
	"github.com/pancake-db/pancake-core/internal/pool"
)

// Reserved marker bytes of the escape-framed encoding. Raw bytes equal to
// any marker are emitted as EscapeByte followed by the literal byte.
const (
	EscapeByte byte = 0xFF
	CountByte  byte = 0xFE
	NullByte   byte = 0xFD
)

// Encoder writes values of one column in the escape-framed (uncompressed)
// form. Streams produced by successive Encode calls may be concatenated.
type Encoder struct {
	dt    format.DataType
	depth uint8
}

// NewEncoder creates an escape-framed encoder for the given data type and
// declared nested list depth.
func NewEncoder(dt format.DataType, depth uint8) *Encoder {
	return &Encoder{dt: dt, depth: depth}
}

// Encode renders the values as one contiguous escape-framed byte stream.
func (e *Encoder) Encode(values []field.Value) ([]byte, error) {
	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)

	for _, v := range values {
		if err := e.encodeNode(buf, v, 0); err != nil {
			return nil, err
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func (e *Encoder) encodeNode(buf *pool.ByteBuffer, v field.Value, d int) error {
	if v.IsNull() {
		if d > 0 {
			return errs.Invalid("null value nested inside a list")
		}
		buf.AppendByte(NullByte)
		return nil
	}

	if d < int(e.depth) {
		if v.Kind != field.KindList {
			return errs.Invalid("expected a list at depth %d, got %v value", d+1, v.Kind)
		}
		writeCount(buf, uint64(len(v.List)))
		for _, inner := range v.List {
			if err := e.encodeNode(buf, inner, d+1); err != nil {
				return err
			}
		}
		return nil
	}

	atoms, err := AppendLeafAtoms(nil, e.dt, v)
	if err != nil {
		return err
	}
	if !e.dt.IsAtomic() {
		writeCount(buf, uint64(len(atoms)))
	}
	writeEscaped(buf, atoms)

	return nil
}

// writeCount emits the CountByte marker followed by the escape-framed
// unsigned integer form of n.
func writeCount(buf *pool.ByteBuffer, n uint64) {
	buf.AppendByte(CountByte)
	var tmp [binary.MaxVarintLen64]byte
	writeEscaped(buf, tmp[:binary.PutUvarint(tmp[:], n)])
}

func writeEscaped(buf *pool.ByteBuffer, raw []byte) {
	for _, b := range raw {
		if b >= NullByte {
			buf.AppendByte(EscapeByte)
		}
		buf.AppendByte(b)
	}
}

// Decoder reads the escape-framed form back into values. It can additionally
// report the starting byte offset of every decoded top-level value, which
// supports skipping without re-decoding.
type Decoder struct {
	dt    format.DataType
	depth uint8
}

// NewDecoder creates an escape-framed decoder for the given data type and
// declared nested list depth.
func NewDecoder(dt format.DataType, depth uint8) *Decoder {
	return &Decoder{dt: dt, depth: depth}
}

// Decode consumes the whole stream and returns the top-level values.
func (d *Decoder) Decode(data []byte) ([]field.Value, error) {
	values, _, err := d.DecodeIndexed(data)
	return values, err
}

// DecodeIndexed decodes like Decode and also returns, per top-level value,
// its starting byte offset in data.
func (d *Decoder) DecodeIndexed(data []byte) ([]field.Value, []int, error) {
	r := &escapeReader{data: data}
	values := make([]field.Value, 0)
	offsets := make([]int, 0)
	for !r.done() {
		offsets = append(offsets, r.pos)
		v, err := d.decodeNode(r, 0)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, v)
	}

	return values, offsets, nil
}

func (d *Decoder) decodeNode(r *escapeReader, depth int) (field.Value, error) {
	if depth == 0 && r.peek() == NullByte {
		r.pos++
		return field.Null(), nil
	}

	if depth < int(d.depth) {
		n, err := r.readCount()
		if err != nil {
			return field.Value{}, err
		}
		if n > uint64(len(r.data)-r.pos) {
			return field.Value{}, errs.Corrupt("list count %d exceeds remaining stream", n)
		}
		items := make([]field.Value, 0, n)
		for range n {
			inner, err := d.decodeNode(r, depth+1)
			if err != nil {
				return field.Value{}, err
			}
			items = append(items, inner)
		}
		return field.ListValue(items...), nil
	}

	if d.dt.IsAtomic() {
		atom, err := r.readEscaped(d.dt.AtomSize())
		if err != nil {
			return field.Value{}, err
		}
		return DecodeAtom(d.dt, atom)
	}

	n, err := r.readCount()
	if err != nil {
		return field.Value{}, err
	}
	if n > uint64(len(r.data)-r.pos) {
		return field.Value{}, errs.Corrupt("leaf length %d exceeds remaining stream", n)
	}
	raw, err := r.readEscaped(int(n)) //nolint:gosec
	if err != nil {
		return field.Value{}, err
	}

	return LeafFromBytes(d.dt, raw)
}

type escapeReader struct {
	data []byte
	pos  int
}

func (r *escapeReader) done() bool {
	return r.pos >= len(r.data)
}

func (r *escapeReader) peek() byte {
	if r.done() {
		return 0
	}

	return r.data[r.pos]
}

// readEscapedByte reads one raw byte, resolving the escape marker. Bare
// CountByte or NullByte in raw-byte position is corrupt.
func (r *escapeReader) readEscapedByte() (byte, error) {
	if r.done() {
		return 0, errs.Corrupt("escape-framed stream truncated")
	}
	b := r.data[r.pos]
	r.pos++
	switch b {
	case EscapeByte:
		if r.done() {
			return 0, errs.Corrupt("escape-framed stream ends with a dangling escape")
		}
		b = r.data[r.pos]
		r.pos++
		return b, nil
	case CountByte, NullByte:
		return 0, errs.Corrupt("unescaped marker byte 0x%02X inside raw data", b)
	default:
		return b, nil
	}
}

func (r *escapeReader) readEscaped(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range n {
		b, err := r.readEscapedByte()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}

	return out, nil
}

// readCount expects the CountByte marker followed by an escape-framed
// unsigned varint.
func (r *escapeReader) readCount() (uint64, error) {
	if r.done() {
		return 0, errs.Corrupt("escape-framed stream truncated before count marker")
	}
	if b := r.data[r.pos]; b != CountByte {
		return 0, errs.Corrupt("expected count marker, got byte 0x%02X", b)
	}
	r.pos++

	var n uint64
	var shift uint
	for {
		b, err := r.readEscapedByte()
		if err != nil {
			return 0, err
		}
		if shift >= 64 {
			return 0, errs.Corrupt("count varint overflows 64 bits")
		}
		n |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return n, nil
		}
		shift += 7
	}
}
