package field

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// The wire form of values follows protobuf JSON: a oneof renders as a single
// camelCase key, i64 renders as a decimal string, bytes as standard base64,
// and timestamps as RFC 3339.

type listWire struct {
	Vals []Value `json:"vals"`
}

// MarshalJSON renders the value in protobuf-JSON oneof form. Null renders as
// an empty object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("{}"), nil
	case KindInt64:
		return json.Marshal(map[string]string{"int64Val": strconv.FormatInt(v.Int64, 10)})
	case KindFloat32:
		return json.Marshal(map[string]float32{"float32Val": v.Float32})
	case KindFloat64:
		return json.Marshal(map[string]float64{"float64Val": v.Float64})
	case KindBool:
		return json.Marshal(map[string]bool{"boolVal": v.Bool})
	case KindString:
		return json.Marshal(map[string]string{"stringVal": v.Str})
	case KindBytes:
		return json.Marshal(map[string]string{"bytesVal": base64.StdEncoding.EncodeToString(v.Bytes)})
	case KindTimestamp:
		return json.Marshal(map[string]string{"timestampVal": v.Time.Time().Format(time.RFC3339Nano)})
	case KindList:
		return json.Marshal(map[string]listWire{"listVal": {Vals: v.List}})
	default:
		return nil, fmt.Errorf("unknown value kind %d", v.Kind)
	}
}

// UnmarshalJSON parses the protobuf-JSON oneof form produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*v = Value{}
		return nil
	}
	if len(raw) > 1 {
		return fmt.Errorf("field value must hold at most one variant, got %d", len(raw))
	}

	for key, body := range raw {
		switch key {
		case "int64Val":
			n, err := unmarshalInt64(body)
			if err != nil {
				return err
			}
			*v = Int64Value(n)
		case "float32Val":
			var f float32
			if err := json.Unmarshal(body, &f); err != nil {
				return err
			}
			*v = Float32Value(f)
		case "float64Val":
			var f float64
			if err := json.Unmarshal(body, &f); err != nil {
				return err
			}
			*v = Float64Value(f)
		case "boolVal":
			var b bool
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*v = BoolValue(b)
		case "stringVal":
			var s string
			if err := json.Unmarshal(body, &s); err != nil {
				return err
			}
			*v = StringValue(s)
		case "bytesVal":
			var s string
			if err := json.Unmarshal(body, &s); err != nil {
				return err
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return err
			}
			*v = BytesValue(b)
		case "timestampVal":
			ts, err := unmarshalTimestamp(body)
			if err != nil {
				return err
			}
			*v = TimestampValue(ts)
		case "listVal":
			var lw listWire
			if err := json.Unmarshal(body, &lw); err != nil {
				return err
			}
			*v = ListValue(lw.Vals...)
		default:
			return fmt.Errorf("unknown field value variant %q", key)
		}
	}

	return nil
}

// MarshalJSON renders the partition value in protobuf-JSON oneof form.
func (p PartitionValue) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindInt64:
		return json.Marshal(map[string]string{"int64Val": strconv.FormatInt(p.Int64, 10)})
	case KindBool:
		return json.Marshal(map[string]bool{"boolVal": p.Bool})
	case KindString:
		return json.Marshal(map[string]string{"stringVal": p.Str})
	case KindTimestamp:
		return json.Marshal(map[string]string{"timestampVal": p.Time.Time().Format(time.RFC3339Nano)})
	default:
		return nil, fmt.Errorf("unknown partition value kind %d", p.Kind)
	}
}

// UnmarshalJSON parses the protobuf-JSON oneof form produced by MarshalJSON.
func (p *PartitionValue) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("partition value must hold exactly one variant, got %d", len(raw))
	}

	for key, body := range raw {
		switch key {
		case "int64Val":
			n, err := unmarshalInt64(body)
			if err != nil {
				return err
			}
			*p = PartitionInt64(n)
		case "boolVal":
			var b bool
			if err := json.Unmarshal(body, &b); err != nil {
				return err
			}
			*p = PartitionBool(b)
		case "stringVal":
			var s string
			if err := json.Unmarshal(body, &s); err != nil {
				return err
			}
			*p = PartitionString(s)
		case "timestampVal":
			ts, err := unmarshalTimestamp(body)
			if err != nil {
				return err
			}
			*p = PartitionTimestamp(ts)
		default:
			return fmt.Errorf("unknown partition value variant %q", key)
		}
	}

	return nil
}

// unmarshalInt64 accepts both the canonical string form and a bare number.
func unmarshalInt64(body []byte) (int64, error) {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strconv.ParseInt(s, 10, 64)
	}
	var n int64
	err := json.Unmarshal(body, &n)

	return n, err
}

func unmarshalTimestamp(body []byte) (Timestamp, error) {
	var s string
	if err := json.Unmarshal(body, &s); err != nil {
		return Timestamp{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, err
	}

	return TimestampFromTime(t), nil
}
