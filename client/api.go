package client

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pancake-db/pancake-core/errs"
)

// jsonCall sends req as JSON and parses the whole response body as JSON.
func jsonCall[Req, Resp any](ctx context.Context, c *Client, method, endpoint string, req *Req) (*Resp, error) {
	content, err := c.rawCall(ctx, method, endpoint, req)
	if err != nil {
		return nil, err
	}

	resp := new(Resp)
	if err := json.Unmarshal(content, resp); err != nil {
		return nil, errs.Other(err)
	}

	return resp, nil
}

// rawCall sends req as JSON and returns the raw success body.
func (c *Client) rawCall(ctx context.Context, method, endpoint string, req any) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errs.Other(err)
	}

	c.logger.Debug("sending request", zap.String("endpoint", endpoint))
	status, content, err := c.transport.Do(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &errs.StatusError{Status: status, Body: content}
	}

	return content, nil
}

// hybridCall sends req and splits the hybrid JSON+binary response.
func hybridCall[Req, Resp any](ctx context.Context, c *Client, endpoint string, req *Req) (*Resp, []byte, error) {
	content, err := c.rawCall(ctx, http.MethodGet, endpoint, req)
	if err != nil {
		return nil, nil, err
	}

	prefix, data, err := splitHybridResponse(content)
	if err != nil {
		return nil, nil, err
	}
	resp := new(Resp)
	if err := json.Unmarshal(prefix, resp); err != nil {
		return nil, nil, errs.Other(err)
	}

	return resp, data, nil
}

// CreateTable creates a table with the given schema.
func (c *Client) CreateTable(ctx context.Context, req *CreateTableRequest) (*CreateTableResponse, error) {
	return jsonCall[CreateTableRequest, CreateTableResponse](ctx, c, http.MethodPost, "create_table", req)
}

// AlterTable adds columns to a table.
func (c *Client) AlterTable(ctx context.Context, req *AlterTableRequest) (*AlterTableResponse, error) {
	return jsonCall[AlterTableRequest, AlterTableResponse](ctx, c, http.MethodPost, "alter_table", req)
}

// DropTable removes a table. A NOT_FOUND response (check errs.IsNotFound)
// means the table was already absent.
func (c *Client) DropTable(ctx context.Context, req *DropTableRequest) (*DropTableResponse, error) {
	return jsonCall[DropTableRequest, DropTableResponse](ctx, c, http.MethodPost, "drop_table", req)
}

// GetSchema fetches a table's current schema.
func (c *Client) GetSchema(ctx context.Context, req *GetSchemaRequest) (*GetSchemaResponse, error) {
	return jsonCall[GetSchemaRequest, GetSchemaResponse](ctx, c, http.MethodGet, "get_schema", req)
}

// ListSegments lists a table's segments.
func (c *Client) ListSegments(ctx context.Context, req *ListSegmentsRequest) (*ListSegmentsResponse, error) {
	return jsonCall[ListSegmentsRequest, ListSegmentsResponse](ctx, c, http.MethodGet, "list_segments", req)
}

// ListTables lists all table names.
func (c *Client) ListTables(ctx context.Context, req *ListTablesRequest) (*ListTablesResponse, error) {
	return jsonCall[ListTablesRequest, ListTablesResponse](ctx, c, http.MethodGet, "list_tables", req)
}

// WriteToPartition appends rows to a partition, at most MaxRowsPerWrite per
// call. Callers issuing many writes concurrently should bound themselves to
// around 16 outstanding requests, or the server may start refusing
// connections.
func (c *Client) WriteToPartition(ctx context.Context, req *WriteToPartitionRequest) (*WriteToPartitionResponse, error) {
	return jsonCall[WriteToPartitionRequest, WriteToPartitionResponse](ctx, c, http.MethodPost, "write_to_partition", req)
}

// DeleteFromSegment marks rows deleted by row ID; repeating a delete is a
// no-op.
func (c *Client) DeleteFromSegment(ctx context.Context, req *DeleteFromSegmentRequest) (*DeleteFromSegmentResponse, error) {
	return jsonCall[DeleteFromSegmentRequest, DeleteFromSegmentResponse](ctx, c, http.MethodPost, "delete_from_segment", req)
}

// ReadSegmentDeletions reads a segment's compressed deletion bitmap.
func (c *Client) ReadSegmentDeletions(ctx context.Context, req *ReadSegmentDeletionsRequest) (*ReadSegmentDeletionsResponse, error) {
	resp, data, err := hybridCall[ReadSegmentDeletionsRequest, ReadSegmentDeletionsResponse](ctx, c, "read_segment_deletions", req)
	if err != nil {
		return nil, err
	}
	resp.Data = data

	return resp, nil
}

// ReadSegmentColumn reads one chunk of a segment's column file.
func (c *Client) ReadSegmentColumn(ctx context.Context, req *ReadSegmentColumnRequest) (*ReadSegmentColumnResponse, error) {
	resp, data, err := hybridCall[ReadSegmentColumnRequest, ReadSegmentColumnResponse](ctx, c, "read_segment_column", req)
	if err != nil {
		return nil, err
	}
	resp.Data = data

	return resp, nil
}
