package client

import (
	"github.com/pancake-db/pancake-core/field"
	"github.com/pancake-db/pancake-core/format"
)

// MaxRowsPerWrite is the server-enforced cap on rows per WriteToPartition
// call. The client does not split larger batches; callers must.
const MaxRowsPerWrite = 256

// SegmentKey fully specifies one segment: table name, partition, and segment
// ID. It is the unit of addressing for reads.
type SegmentKey struct {
	TableName string
	Partition field.Partition
	SegmentID string
}

// Segment is one entry of a ListSegments response.
type Segment struct {
	SegmentID string           `json:"segmentId"`
	Partition field.Partition  `json:"partition,omitempty"`
	Metadata  *SegmentMetadata `json:"metadata,omitempty"`
}

// SegmentMetadata is the optional per-segment detail returned when
// ListSegmentsRequest.IncludeMetadata is set.
type SegmentMetadata struct {
	RowCount uint32 `json:"rowCount"`
}

// CreateTableRequest declares a table. Mode controls behavior when the
// table already exists.
type CreateTableRequest struct {
	TableName string            `json:"tableName"`
	Schema    field.Schema      `json:"schema"`
	Mode      format.SchemaMode `json:"mode,omitempty"`
}

type CreateTableResponse struct {
	AlreadyExists bool `json:"alreadyExists,omitempty"`
}

// AlterTableRequest adds columns to an existing table.
type AlterTableRequest struct {
	TableName  string                      `json:"tableName"`
	NewColumns map[string]field.ColumnMeta `json:"newColumns"`
}

type AlterTableResponse struct{}

type DropTableRequest struct {
	TableName string `json:"tableName"`
}

type DropTableResponse struct{}

type GetSchemaRequest struct {
	TableName string `json:"tableName"`
}

type GetSchemaResponse struct {
	Schema field.Schema `json:"schema"`
}

// ListSegmentsRequest lists the segments of a table, optionally restricted
// to partitions matching the filter exactly.
type ListSegmentsRequest struct {
	TableName       string          `json:"tableName"`
	PartitionFilter field.Partition `json:"partitionFilter,omitempty"`
	IncludeMetadata bool            `json:"includeMetadata,omitempty"`
}

type ListSegmentsResponse struct {
	Segments []Segment `json:"segments"`
}

type ListTablesRequest struct{}

type ListTablesResponse struct {
	TableNames []string `json:"tableNames"`
}

// WriteToPartitionRequest appends rows to a partition. The server accepts at
// most 256 rows per call; the client passes rows through without splitting.
type WriteToPartitionRequest struct {
	TableName string          `json:"tableName"`
	Partition field.Partition `json:"partition,omitempty"`
	Rows      []field.Row     `json:"rows"`
}

type WriteToPartitionResponse struct{}

// DeleteFromSegmentRequest marks rows of one segment deleted by row ID.
// Deleting an already-deleted row is a no-op, so the call is idempotent.
type DeleteFromSegmentRequest struct {
	TableName string          `json:"tableName"`
	SegmentID string          `json:"segmentId"`
	Partition field.Partition `json:"partition,omitempty"`
	RowIDs    []uint32        `json:"rowIds"`
}

type DeleteFromSegmentResponse struct{}

// ReadSegmentDeletionsRequest reads a segment's deletion bitmap. The
// correlation ID must match the one used for the segment's column reads.
type ReadSegmentDeletionsRequest struct {
	TableName     string          `json:"tableName"`
	SegmentID     string          `json:"segmentId"`
	Partition     field.Partition `json:"partition,omitempty"`
	CorrelationID string          `json:"correlationId"`
}

// ReadSegmentDeletionsResponse carries the compressed bitmap in Data, split
// off the hybrid JSON+binary response body.
type ReadSegmentDeletionsResponse struct {
	Data []byte `json:"-"`
}

// ReadSegmentColumnRequest reads one chunk of one column file. An empty
// continuation token starts the read; the server's token from the previous
// response continues it.
type ReadSegmentColumnRequest struct {
	TableName         string          `json:"tableName"`
	SegmentID         string          `json:"segmentId"`
	Partition         field.Partition `json:"partition,omitempty"`
	ColumnName        string          `json:"columnName"`
	CorrelationID     string          `json:"correlationId"`
	ContinuationToken string          `json:"continuationToken,omitempty"`
}

// ReadSegmentColumnResponse is one chunk of a column read. Codec names the
// compression of Data ("" means the chunk belongs to the uncompressed,
// escape-framed region), ImplicitNullsCount conveys the run of nulls decoded
// after the compressed values and before the uncompressed ones, and an empty
// ContinuationToken ends the read.
type ReadSegmentColumnResponse struct {
	Codec              string `json:"codec,omitempty"`
	ImplicitNullsCount uint32 `json:"implicitNullsCount,omitempty"`
	ContinuationToken  string `json:"continuationToken,omitempty"`
	Data               []byte `json:"-"`
}
