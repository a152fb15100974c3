package field

import "github.com/pancake-db/pancake-core/format"

// ColumnMeta declares the shape of one column: its leaf data type and how
// many levels of list nesting wrap it. Depth 0 means scalar; depth D means a
// value is either null or a D-times-nested list with leaves of Dtype.
type ColumnMeta struct {
	Dtype           format.DataType `json:"dtype"`
	NestedListDepth uint8           `json:"nestedListDepth,omitempty"`
}

// Schema is the full column set of a table.
type Schema struct {
	Columns map[string]ColumnMeta `json:"columns,omitempty"`
}

// Equal reports whether two schemas declare exactly the same columns.
func (s Schema) Equal(other Schema) bool {
	if len(s.Columns) != len(other.Columns) {
		return false
	}
	for name, meta := range s.Columns {
		if other.Columns[name] != meta {
			return false
		}
	}

	return true
}
