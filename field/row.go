package field

// Row maps column names to field values. An absent key is equivalent to an
// explicit null in that column.
type Row struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

// NewRow returns an empty row ready for Set calls:
//
//	row := field.NewRow().
//	    Set("i", field.Int64Value(33)).
//	    Set("s", field.ListValue(field.StringValue("item 0")))
func NewRow() Row {
	return Row{Fields: make(map[string]Value)}
}

// Set stores a value under the given column name and returns the row for
// chaining.
func (r Row) Set(name string, v Value) Row {
	if r.Fields == nil {
		r.Fields = make(map[string]Value)
	}
	r.Fields[name] = v

	return r
}

// Get returns the value for the column, or null when the key is absent.
func (r Row) Get(name string) Value {
	return r.Fields[name]
}
