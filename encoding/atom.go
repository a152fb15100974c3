package encoding

import (
	"math"
	"unicode/utf8"

	"github.com/pancake-db/pancake-core/endian"
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/field"
	"github.com/pancake-db/pancake-core/format"
)

var engine = endian.GetBigEndianEngine()

// AppendLeafAtoms appends the canonical big-endian atom bytes of one leaf
// value. Atomic data types contribute exactly one fixed-size atom; string and
// bytes values contribute one u8 atom per byte.
func AppendLeafAtoms(dst []byte, dt format.DataType, v field.Value) ([]byte, error) {
	switch dt {
	case format.Int64:
		if v.Kind != field.KindInt64 {
			return nil, errs.Invalid("cannot read i64 from %v value", v.Kind)
		}
		return engine.AppendUint64(dst, uint64(v.Int64)), nil //nolint:gosec
	case format.Float32:
		if v.Kind != field.KindFloat32 {
			return nil, errs.Invalid("cannot read f32 from %v value", v.Kind)
		}
		return engine.AppendUint32(dst, math.Float32bits(v.Float32)), nil
	case format.Float64:
		if v.Kind != field.KindFloat64 {
			return nil, errs.Invalid("cannot read f64 from %v value", v.Kind)
		}
		return engine.AppendUint64(dst, math.Float64bits(v.Float64)), nil
	case format.Bool:
		if v.Kind != field.KindBool {
			return nil, errs.Invalid("cannot read bool from %v value", v.Kind)
		}
		if v.Bool {
			return append(dst, 0x01), nil
		}
		return append(dst, 0x00), nil
	case format.TimestampMicros:
		if v.Kind != field.KindTimestamp {
			return nil, errs.Invalid("cannot read timestamp from %v value", v.Kind)
		}
		dst = engine.AppendUint64(dst, uint64(v.Time.Seconds)) //nolint:gosec
		return engine.AppendUint32(dst, v.Time.Nanos), nil
	case format.String:
		if v.Kind != field.KindString {
			return nil, errs.Invalid("cannot read string from %v value", v.Kind)
		}
		return append(dst, v.Str...), nil
	case format.Bytes:
		if v.Kind != field.KindBytes {
			return nil, errs.Invalid("cannot read bytes from %v value", v.Kind)
		}
		return append(dst, v.Bytes...), nil
	default:
		return nil, errs.Invalid("unknown data type %s", dt)
	}
}

// DecodeAtom decodes one fixed-size atom of an atomic data type. The slice
// length must equal the type's atom size.
func DecodeAtom(dt format.DataType, b []byte) (field.Value, error) {
	if size := dt.AtomSize(); len(b) != size {
		return field.Value{}, errs.Invalid("atom slice has %d bytes, %s needs %d", len(b), dt, size)
	}
	switch dt {
	case format.Int64:
		return field.Int64Value(int64(engine.Uint64(b))), nil //nolint:gosec
	case format.Float32:
		return field.Float32Value(math.Float32frombits(engine.Uint32(b))), nil
	case format.Float64:
		return field.Float64Value(math.Float64frombits(engine.Uint64(b))), nil
	case format.Bool:
		return field.BoolValue(b[0] != 0x00), nil
	case format.TimestampMicros:
		return field.TimestampValue(field.Timestamp{
			Seconds: int64(engine.Uint64(b[:8])), //nolint:gosec
			Nanos:   engine.Uint32(b[8:12]),
		}), nil
	default:
		return field.Value{}, errs.Invalid("data type %s is not atomic", dt)
	}
}

// LeafFromBytes assembles a variable-length leaf value from its u8 atoms.
// String leaves must be valid UTF-8.
func LeafFromBytes(dt format.DataType, b []byte) (field.Value, error) {
	switch dt {
	case format.String:
		if !utf8.Valid(b) {
			return field.Value{}, errs.Corrupt("string atoms are not valid UTF-8")
		}
		return field.StringValue(string(b)), nil
	case format.Bytes:
		out := make([]byte, len(b))
		copy(out, b)
		return field.BytesValue(out), nil
	default:
		return field.Value{}, errs.Invalid("data type %s has no variable-length leaf form", dt)
	}
}
