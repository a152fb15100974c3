package compress

import (
	"github.com/pancake-db/pancake-core/encoding"
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/field"
	"github.com/pancake-db/pancake-core/format"
	"github.com/pancake-db/pancake-core/internal/options"
)

// ValueCodec compresses a sequence of column values into a payload of
// rep-level container followed by atom container, and back.
type ValueCodec interface {
	// Compress flattens the values for a column of the given nested list
	// depth and returns the compressed payload.
	Compress(values []field.Value, depth uint8) ([]byte, error)

	// DecompressRepLevels peels only the leading rep-level container and
	// returns the levels together with the untouched byte suffix.
	DecompressRepLevels(data []byte) (*RepLevelsAndBytes, error)

	// Decompress restores the full value sequence from a payload.
	Decompress(data []byte, depth uint8) ([]field.Value, error)
}

// RepLevelsAndBytes is a decoded rep-level stream plus the payload suffix
// the atom decoder starts at.
type RepLevelsAndBytes struct {
	Levels         []uint8
	RemainingBytes []byte
}

// CodecOption configures a ValueCodec at construction time.
type CodecOption = options.Option[*valueCodec]

// WithBackend selects the compression backend filling container chunks.
// The default is Zstd for both codec families.
func WithBackend(ct format.CompressionType) CodecOption {
	return options.NoError(func(c *valueCodec) {
		c.backend = ct
	})
}

// WithLevel selects the compression level, 0 to MaxLevel.
func WithLevel(level int) CodecOption {
	return options.New(func(c *valueCodec) error {
		if level < 0 || level > MaxLevel {
			return errs.Invalid("compression level %d out of range [0, %d]", level, MaxLevel)
		}
		c.level = level

		return nil
	})
}

// ChooseCodec returns the default wire codec name for a data type: "Q" for
// atomic types, "Z" for string and bytes.
func ChooseCodec(dt format.DataType) string {
	if dt.IsAtomic() {
		return format.CodecQ
	}

	return format.CodecZ
}

// NewValueCodec builds the ValueCodec for a (data type, wire codec name)
// pair. Unknown names and mismatched pairs are invalid.
func NewValueCodec(dt format.DataType, codec string, opts ...CodecOption) (ValueCodec, error) {
	switch codec {
	case format.CodecQ:
		if !dt.IsAtomic() {
			return nil, errs.Invalid("compression codec %s unavailable for data type %s", codec, dt)
		}
	case format.CodecZ:
		if dt.IsAtomic() {
			return nil, errs.Invalid("compression codec %s unavailable for data type %s", codec, dt)
		}
	default:
		return nil, errs.Invalid("compression codec %s unavailable for data type %s", codec, dt)
	}

	vc := &valueCodec{
		dt:      dt,
		backend: format.CompressionZstd,
		level:   DefaultLevel,
	}
	if err := options.Apply(vc, opts...); err != nil {
		return nil, err
	}

	return vc, nil
}

type valueCodec struct {
	dt      format.DataType
	backend format.CompressionType
	level   int
}

func (c *valueCodec) Compress(values []field.Value, depth uint8) ([]byte, error) {
	flat, err := encoding.ExtractLevelsAndAtoms(values, c.dt, depth)
	if err != nil {
		return nil, err
	}

	out, err := CompressRepLevels(flat.Levels, c.backend, c.level)
	if err != nil {
		return nil, err
	}

	return EncodeContainer(out, flat.Atoms, flat.AtomCount(c.dt), c.backend, c.level)
}

func (c *valueCodec) DecompressRepLevels(data []byte) (*RepLevelsAndBytes, error) {
	levels, consumed, err := DecompressRepLevels(data)
	if err != nil {
		return nil, err
	}

	return &RepLevelsAndBytes{
		Levels:         levels,
		RemainingBytes: data[consumed:],
	}, nil
}

func (c *valueCodec) Decompress(data []byte, depth uint8) ([]field.Value, error) {
	rl, err := c.DecompressRepLevels(data)
	if err != nil {
		return nil, err
	}

	atoms, atomCount, consumed, err := DecodeContainer(rl.RemainingBytes)
	if err != nil {
		return nil, err
	}
	if consumed != len(rl.RemainingBytes) {
		return nil, errs.Corrupt("%d trailing bytes after the atom container", len(rl.RemainingBytes)-consumed)
	}
	size := c.dt.AtomSize()
	if len(atoms)%size != 0 || atomCount != len(atoms)/size {
		return nil, errs.Corrupt("atom container holds %d bytes for %d atoms of width %d",
			len(atoms), atomCount, size)
	}

	nester, err := encoding.NewAtomNester(rl.Levels, atoms, c.dt, depth)
	if err != nil {
		return nil, err
	}

	return nester.NestedValues()
}
