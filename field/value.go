// Package field defines the PancakeDB value model: the FieldValue tagged
// union, rows, partition values, timestamps, and table schemas, together
// with their protobuf-JSON wire forms.
package field

// Kind tags the variant held by a Value or PartitionValue.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindBytes
	KindTimestamp
	KindList
)

// Value is a tagged union over the PancakeDB value set. The zero Value is
// null. Lists may nest to a column's declared depth; only the field selected
// by Kind is meaningful.
type Value struct {
	Kind    Kind
	Int64   int64
	Float32 float32
	Float64 float64
	Bool    bool
	Str     string
	Bytes   []byte
	Time    Timestamp
	List    []Value
}

// Null returns the explicit null value.
func Null() Value {
	return Value{}
}

// Int64Value returns a Value holding an i64.
func Int64Value(v int64) Value {
	return Value{Kind: KindInt64, Int64: v}
}

// Float32Value returns a Value holding an f32.
func Float32Value(v float32) Value {
	return Value{Kind: KindFloat32, Float32: v}
}

// Float64Value returns a Value holding an f64.
func Float64Value(v float64) Value {
	return Value{Kind: KindFloat64, Float64: v}
}

// BoolValue returns a Value holding a bool.
func BoolValue(v bool) Value {
	return Value{Kind: KindBool, Bool: v}
}

// StringValue returns a Value holding a UTF-8 string.
func StringValue(v string) Value {
	return Value{Kind: KindString, Str: v}
}

// BytesValue returns a Value holding raw bytes.
func BytesValue(v []byte) Value {
	return Value{Kind: KindBytes, Bytes: v}
}

// TimestampValue returns a Value holding a timestamp.
func TimestampValue(v Timestamp) Value {
	return Value{Kind: KindTimestamp, Time: v}
}

// ListValue returns a Value holding a list of inner values. An empty or nil
// slice is a present, empty list, distinct from null.
func ListValue(vals ...Value) Value {
	if vals == nil {
		vals = []Value{}
	}

	return Value{Kind: KindList, List: vals}
}

// IsNull reports whether the value is the explicit null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Equal reports deep equality of two values, including list structure.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindInt64:
		return v.Int64 == other.Int64
	case KindFloat32:
		return v.Float32 == other.Float32
	case KindFloat64:
		return v.Float64 == other.Float64
	case KindBool:
		return v.Bool == other.Bool
	case KindString:
		return v.Str == other.Str
	case KindBytes:
		if len(v.Bytes) != len(other.Bytes) {
			return false
		}
		for i := range v.Bytes {
			if v.Bytes[i] != other.Bytes[i] {
				return false
			}
		}
		return true
	case KindTimestamp:
		return v.Time == other.Time
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
