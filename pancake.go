// Package pancake provides the PancakeDB client and the core codec kit for
// its columnar storage format.
//
// PancakeDB stores tables whose rows are partitioned and grouped into
// segments; each segment holds one file per column plus a deletion bitmap.
// Column files encode nested, nullable values as a repetition-level stream
// followed by atom bytes. Reading a segment means issuing correlated,
// chunk-streamed read requests and decoding the reassembled payloads back
// into rows.
//
// # Basic usage
//
//	c, err := pancake.NewClient("http://127.0.0.1:3842")
//	if err != nil {
//	    return err
//	}
//
//	_, err = c.CreateTable(ctx, &client.CreateTableRequest{
//	    TableName: "events",
//	    Schema: field.Schema{Columns: map[string]field.ColumnMeta{
//	        "i": {Dtype: format.Int64},
//	        "s": {Dtype: format.String, NestedListDepth: 1},
//	    }},
//	})
//
//	_, err = c.WriteToPartition(ctx, &client.WriteToPartitionRequest{
//	    TableName: "events",
//	    Rows: []field.Row{
//	        field.NewRow().Set("i", field.Int64Value(33)),
//	    },
//	})
//
//	rows, err := c.DecodeSegment(ctx, &client.SegmentKey{
//	    TableName: "events",
//	    SegmentID: segmentID,
//	}, schema.Columns)
//
// # Package structure
//
// The client package drives the read protocol and the API surface. The
// codec kit underneath is usable on its own: encoding (atoms, repetition
// levels, escape framing), compress (codec families and the atom
// container), and deletion (deletion bitmaps).
package pancake

import "github.com/pancake-db/pancake-core/client"

// NewClient creates a PancakeDB client for the server at baseURL.
func NewClient(baseURL string, opts ...client.Option) (*client.Client, error) {
	return client.New(baseURL, opts...)
}

// NewCorrelationID generates a correlation ID for one logical segment read.
// See client.NewCorrelationID for the reuse rules.
func NewCorrelationID() string {
	return client.NewCorrelationID()
}
