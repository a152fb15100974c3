package format

import "fmt"

type (
	// DataType enumerates the primitive column types supported by PancakeDB.
	DataType uint8
	// CompressionType identifies the byte-compression backend used inside an
	// atom container.
	CompressionType uint8
	// SchemaMode controls how CreateTable behaves when the table already exists.
	SchemaMode uint8
)

const (
	Int64           DataType = 0x1 // 64-bit signed integer
	Float32         DataType = 0x2 // 32-bit IEEE-754 float
	Float64         DataType = 0x3 // 64-bit IEEE-754 float
	Bool            DataType = 0x4 // boolean
	String          DataType = 0x5 // UTF-8 string (variable length)
	Bytes           DataType = 0x6 // raw bytes (variable length)
	TimestampMicros DataType = 0x7 // timestamp with microsecond precision

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	FailIfExists      SchemaMode = 0x0 // fail when the table already exists
	OkIfExactElseFail SchemaMode = 0x1 // succeed only when the existing schema matches exactly
	AddNewColumns     SchemaMode = 0x2 // add columns missing from the existing schema
)

// Codec names carried on the wire alongside compressed column payloads.
// An empty codec name denotes an uncompressed (escape-framed) region.
const (
	CodecQ = "Q" // range/entropy codec for atomic data types and rep levels
	CodecZ = "Z" // byte compressor for string and bytes columns
)

// IsAtomic reports whether values of this data type serialize to exactly one
// fixed-size atom. String and Bytes values flatten to a variable-length
// sequence of u8 atoms instead.
func (d DataType) IsAtomic() bool {
	switch d {
	case String, Bytes:
		return false
	default:
		return true
	}
}

// AtomSize returns the canonical byte width of one atom of this data type.
func (d DataType) AtomSize() int {
	switch d {
	case Int64, Float64:
		return 8
	case Float32:
		return 4
	case Bool:
		return 1
	case String, Bytes:
		return 1
	case TimestampMicros:
		return 12
	default:
		return 0
	}
}

func (d DataType) String() string {
	switch d {
	case Int64:
		return "INT64"
	case Float32:
		return "FLOAT32"
	case Float64:
		return "FLOAT64"
	case Bool:
		return "BOOL"
	case String:
		return "STRING"
	case Bytes:
		return "BYTES"
	case TimestampMicros:
		return "TIMESTAMP_MICROS"
	default:
		return "Unknown"
	}
}

// MarshalText renders the data type in its wire (IDL enum) spelling.
func (d DataType) MarshalText() ([]byte, error) {
	if d < Int64 || d > TimestampMicros {
		return nil, fmt.Errorf("unknown data type %d", uint8(d))
	}

	return []byte(d.String()), nil
}

// UnmarshalText parses the wire (IDL enum) spelling of a data type.
func (d *DataType) UnmarshalText(text []byte) error {
	for dt := Int64; dt <= TimestampMicros; dt++ {
		if dt.String() == string(text) {
			*d = dt
			return nil
		}
	}

	return fmt.Errorf("unknown data type %q", string(text))
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (m SchemaMode) String() string {
	switch m {
	case FailIfExists:
		return "FAIL_IF_EXISTS"
	case OkIfExactElseFail:
		return "OK_IF_EXACT_ELSE_FAIL"
	case AddNewColumns:
		return "ADD_NEW_COLUMNS"
	default:
		return "Unknown"
	}
}

// MarshalText renders the schema mode in its wire (IDL enum) spelling.
func (m SchemaMode) MarshalText() ([]byte, error) {
	if m > AddNewColumns {
		return nil, fmt.Errorf("unknown schema mode %d", uint8(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText parses the wire (IDL enum) spelling of a schema mode.
func (m *SchemaMode) UnmarshalText(text []byte) error {
	for mode := FailIfExists; mode <= AddNewColumns; mode++ {
		if mode.String() == string(text) {
			*m = mode
			return nil
		}
	}

	return fmt.Errorf("unknown schema mode %q", string(text))
}
