package encoding

import (
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/field"
	"github.com/pancake-db/pancake-core/format"
)

// MaxNestedListDepth is the largest declared list depth the rep-level
// encoding accepts. It keeps every repetition level representable in one
// byte even for string and bytes columns, which use one extra level.
const MaxNestedListDepth = 253

// RepLevelsAndAtoms is the flattened form of a sequence of top-level values:
// one repetition level per event plus the canonical atom bytes, in order.
type RepLevelsAndAtoms struct {
	Levels []uint8
	Atoms  []byte
}

// AtomCount returns the number of atoms in the atom byte stream.
func (r *RepLevelsAndAtoms) AtomCount(dt format.DataType) int {
	return len(r.Atoms) / dt.AtomSize()
}

// atomDepth returns the effective nesting depth of the atom stream: the
// declared depth, plus one for variable-length leaves whose u8 atoms form
// one more implicit list level.
func atomDepth(dt format.DataType, depth uint8) int {
	if dt.IsAtomic() {
		return int(depth)
	}

	return int(depth) + 1
}

// ExtractLevelsAndAtoms walks the value trees in order and emits, per the
// rep-level grammar: level 0 for a null top value, level L when the list at
// depth L closes, and level E+1 before each atom, where E is the effective
// atom depth.
func ExtractLevelsAndAtoms(values []field.Value, dt format.DataType, depth uint8) (*RepLevelsAndAtoms, error) {
	if depth > MaxNestedListDepth {
		return nil, errs.Invalid("nested list depth %d exceeds maximum %d", depth, MaxNestedListDepth)
	}

	ex := &extractor{
		dt:    dt,
		depth: int(depth),
		e:     atomDepth(dt, depth),
	}
	for _, v := range values {
		if v.IsNull() {
			ex.res.Levels = append(ex.res.Levels, 0)
			continue
		}
		if err := ex.walk(v, 0); err != nil {
			return nil, err
		}
	}

	return &ex.res, nil
}

type extractor struct {
	dt    format.DataType
	depth int
	e     int
	res   RepLevelsAndAtoms
}

// walk emits the levels and atoms of one non-null node sitting at nesting
// depth d (the top-level value is at depth 0).
func (ex *extractor) walk(v field.Value, d int) error {
	if v.IsNull() {
		return errs.Invalid("null value nested inside a list")
	}

	if d == ex.depth {
		return ex.leaf(v)
	}

	if v.Kind != field.KindList {
		return errs.Invalid("expected a list at depth %d, got %v value", d+1, v.Kind)
	}
	for _, inner := range v.List {
		if err := ex.walk(inner, d+1); err != nil {
			return err
		}
	}
	// the list at depth d+1 terminates here
	ex.res.Levels = append(ex.res.Levels, uint8(d+1)) //nolint:gosec

	return nil
}

func (ex *extractor) leaf(v field.Value) error {
	atoms, err := AppendLeafAtoms(nil, ex.dt, v)
	if err != nil {
		return err
	}

	atomLevel := uint8(ex.e + 1) //nolint:gosec
	if ex.dt.IsAtomic() {
		ex.res.Levels = append(ex.res.Levels, atomLevel)
		ex.res.Atoms = append(ex.res.Atoms, atoms...)
		return nil
	}

	// variable-length leaf: one level per u8 atom, then the implicit list
	// of atoms closes at depth E
	for range atoms {
		ex.res.Levels = append(ex.res.Levels, atomLevel)
	}
	ex.res.Atoms = append(ex.res.Atoms, atoms...)
	ex.res.Levels = append(ex.res.Levels, uint8(ex.e)) //nolint:gosec

	return nil
}

// AtomNester rebuilds the value sequence from repetition levels and atom
// bytes. It is the inverse of ExtractLevelsAndAtoms.
type AtomNester struct {
	dt     format.DataType
	depth  int
	e      int
	levels []uint8
	atoms  []byte
	li     int
	ai     int
}

// NewAtomNester creates a nester over the given level and atom streams for a
// column of the given type and declared depth.
func NewAtomNester(levels []uint8, atoms []byte, dt format.DataType, depth uint8) (*AtomNester, error) {
	if depth > MaxNestedListDepth {
		return nil, errs.Invalid("nested list depth %d exceeds maximum %d", depth, MaxNestedListDepth)
	}

	return &AtomNester{
		dt:     dt,
		depth:  int(depth),
		e:      atomDepth(dt, depth),
		levels: levels,
		atoms:  atoms,
	}, nil
}

// NestedValues consumes the full streams and returns the top-level values.
// Inconsistent levels or leftover atoms are corrupt.
func (n *AtomNester) NestedValues() ([]field.Value, error) {
	res := make([]field.Value, 0)
	for n.li < len(n.levels) {
		if n.levels[n.li] == 0 {
			n.li++
			res = append(res, field.Null())
			continue
		}
		v, err := n.nest(0)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	if n.ai != len(n.atoms) {
		return nil, errs.Corrupt("%d atom bytes left over after nesting", len(n.atoms)-n.ai)
	}

	return res, nil
}

// nest builds the non-null node at depth d from the level cursor onward.
func (n *AtomNester) nest(d int) (field.Value, error) {
	if d == n.depth {
		return n.leaf(d)
	}

	// a list at depth d+1: children until its close level
	closeLevel := uint8(d + 1) //nolint:gosec
	items := []field.Value{}
	for {
		if n.li >= len(n.levels) {
			return field.Value{}, errs.Corrupt("rep levels ended before the list at depth %d closed", d+1)
		}
		l := n.levels[n.li]
		if l == closeLevel {
			n.li++
			break
		}
		if l < closeLevel {
			return field.Value{}, errs.Corrupt("rep level %d closes no open list at depth %d", l, d+1)
		}
		item, err := n.nest(d + 1)
		if err != nil {
			return field.Value{}, err
		}
		items = append(items, item)
	}

	return field.ListValue(items...), nil
}

func (n *AtomNester) leaf(d int) (field.Value, error) {
	atomLevel := uint8(n.e + 1) //nolint:gosec
	if n.dt.IsAtomic() {
		if n.li >= len(n.levels) || n.levels[n.li] != atomLevel {
			return field.Value{}, errs.Corrupt("expected atom level %d at position %d", atomLevel, n.li)
		}
		n.li++
		size := n.dt.AtomSize()
		if n.ai+size > len(n.atoms) {
			return field.Value{}, errs.Corrupt("leaf level with no remaining atoms")
		}
		v, err := DecodeAtom(n.dt, n.atoms[n.ai:n.ai+size])
		if err != nil {
			return field.Value{}, err
		}
		n.ai += size

		return v, nil
	}

	// variable-length leaf: u8 atoms until the implicit list closes at E
	start := n.ai
	for {
		if n.li >= len(n.levels) {
			return field.Value{}, errs.Corrupt("rep levels ended inside a variable-length leaf")
		}
		l := n.levels[n.li]
		if l == uint8(n.e) { //nolint:gosec
			n.li++
			break
		}
		if l != atomLevel {
			return field.Value{}, errs.Corrupt("unexpected rep level %d inside a variable-length leaf", l)
		}
		if n.ai >= len(n.atoms) {
			return field.Value{}, errs.Corrupt("leaf level with no remaining atoms")
		}
		n.li++
		n.ai++
	}

	return LeafFromBytes(n.dt, n.atoms[start:n.ai])
}
